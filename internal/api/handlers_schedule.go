package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/veldwijk/crewplan/internal/db"
	"github.com/veldwijk/crewplan/internal/models"
	"github.com/veldwijk/crewplan/internal/services"
)

// restPeriodLookaround bounds the window of existing shifts loaded per
// assignee. It comfortably covers the widest rest requirement plus the
// longest allowed shift on either side of the candidate.
const restPeriodLookaround = 48 * time.Hour

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, duplicate := seen[id]; duplicate {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func schedulePermissionData(shift *models.Schedule) *services.PermissionData {
	companyID := shift.CompanyID
	return &services.PermissionData{
		UserID:    shift.UserID,
		CompanyID: &companyID,
		Finalized: shift.Finalized,
	}
}

// ListSchedules returns the company's shifts for one week. The week is
// addressed by any instant inside it via ?week=RFC3339; absent, the current
// week is used.
func (handler *Handler) ListSchedules(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}

	data := &services.PermissionData{UserID: user.ID, CompanyID: user.CompanyID}
	if !services.HasPermission(user, services.ResourceSchedule, services.ActionView, data) {
		return forbidden(c)
	}

	reference := time.Now()
	if raw := c.Query("week"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "week must be an RFC3339 timestamp")
		}
		reference = parsed
	}

	weekStart, weekEnd := services.WeekBounds(reference)
	shifts, err := handler.repositories.Schedules.ListForCompanyBetween(*user.CompanyID, weekStart, weekEnd)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not list schedules")
	}

	return c.JSON(fiber.Map{
		"week_start": weekStart.Format(time.RFC3339),
		"week_end":   weekEnd.Format(time.RFC3339),
		"schedules":  scheduleListView(shifts),
	})
}

type scheduleCreateInput struct {
	AssigneeIDs []uint    `json:"assignee_ids"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Category    string    `json:"category"`
}

// CreateSchedules creates one shift per assignee in a single transaction.
// The constraint validator runs first and a rejection reports every
// per-assignee failure; nothing is persisted unless all assignees pass.
func (handler *Handler) CreateSchedules(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}

	input := scheduleCreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Category == "" {
		input.Category = models.ScheduleCategoryPaid
	}
	if !models.IsValidScheduleCategory(input.Category) {
		return apiError(c, fiber.StatusBadRequest, "category must be paid or unpaid")
	}
	if len(input.AssigneeIDs) == 0 {
		return apiError(c, fiber.StatusBadRequest, "at least one assignee is required")
	}
	input.AssigneeIDs = dedupeIDs(input.AssigneeIDs)

	for _, assigneeID := range input.AssigneeIDs {
		data := &services.PermissionData{UserID: assigneeID, CompanyID: user.CompanyID}
		if !services.HasPermission(user, services.ResourceSchedule, services.ActionCreate, data) {
			return forbidden(c)
		}
	}

	assignees, err := handler.repositories.Users.FindCompanyMembers(*user.CompanyID, input.AssigneeIDs)
	if err != nil {
		return forbidden(c)
	}

	start := services.TruncateToMinute(input.Start)
	end := services.TruncateToMinute(input.End)

	contexts := make([]services.AssigneeContext, 0, len(assignees))
	for index := range assignees {
		assignee := &assignees[index]
		existing, err := handler.repositories.Schedules.ListForUserBetween(
			assignee.ID,
			start.Add(-restPeriodLookaround),
			end.Add(restPeriodLookaround),
		)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "could not load existing shifts")
		}
		contexts = append(contexts, services.AssigneeContext{
			UserID:         assignee.ID,
			Age:            assignee.Age,
			ExistingShifts: existing,
		})
	}

	candidate := services.ShiftCandidate{
		CompanyID: *user.CompanyID,
		Start:     start,
		End:       end,
		Category:  input.Category,
	}
	result, err := services.ValidateScheduleCreation(candidate, contexts, handler.curfewLocation)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if !result.Accepted {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}

	shifts := make([]models.Schedule, 0, len(assignees))
	for index := range assignees {
		shifts = append(shifts, models.Schedule{
			UserID:    assignees[index].ID,
			CompanyID: *user.CompanyID,
			Start:     start,
			End:       end,
			Category:  input.Category,
		})
	}
	if err := handler.repositories.Schedules.CreateBatch(shifts); err != nil {
		if errors.Is(err, db.ErrShiftConflict) {
			return apiError(c, fiber.StatusConflict, "a conflicting shift was created concurrently")
		}
		return apiError(c, fiber.StatusInternalServerError, "could not create schedules")
	}

	return c.Status(fiber.StatusCreated).JSON(scheduleListView(shifts))
}

type scheduleUpdateInput struct {
	Start    *time.Time `json:"start"`
	End      *time.Time `json:"end"`
	Category *string    `json:"category"`
}

func (handler *Handler) loadAuthorizedSchedule(c *fiber.Ctx, action services.Action) (*models.User, *models.Schedule, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, errDenied
	}

	scheduleID, err := c.ParamsInt("id")
	if err != nil || scheduleID <= 0 {
		return nil, nil, errInvalidID
	}

	shift, err := handler.repositories.Schedules.FindByID(uint(scheduleID))
	if err != nil {
		return nil, nil, errDenied
	}

	if !services.HasPermission(user, services.ResourceSchedule, action, schedulePermissionData(&shift)) {
		return nil, nil, errDenied
	}
	return user, &shift, nil
}

// UpdateSchedule re-validates the changed shift against the assignee's other
// shifts before persisting. The finalized lock for employees is enforced by
// the permission evaluator, not here.
func (handler *Handler) UpdateSchedule(c *fiber.Ctx) error {
	_, shift, err := handler.loadAuthorizedSchedule(c, services.ActionUpdate)
	if err != nil {
		return respondLoadError(c, err, "schedule")
	}

	input := scheduleUpdateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if input.Start != nil {
		shift.Start = services.TruncateToMinute(*input.Start)
	}
	if input.End != nil {
		shift.End = services.TruncateToMinute(*input.End)
	}
	if input.Category != nil {
		if !models.IsValidScheduleCategory(*input.Category) {
			return apiError(c, fiber.StatusBadRequest, "category must be paid or unpaid")
		}
		shift.Category = *input.Category
	}

	assignee, err := handler.repositories.Users.FindByID(shift.UserID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load assignee")
	}
	existing, err := handler.repositories.Schedules.ListForUserBetween(
		shift.UserID,
		shift.Start.Add(-restPeriodLookaround),
		shift.End.Add(restPeriodLookaround),
	)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load existing shifts")
	}
	others := make([]models.Schedule, 0, len(existing))
	for _, other := range existing {
		if other.ID != shift.ID {
			others = append(others, other)
		}
	}

	candidate := services.ShiftCandidate{
		CompanyID: shift.CompanyID,
		Start:     shift.Start,
		End:       shift.End,
		Category:  shift.Category,
	}
	contexts := []services.AssigneeContext{{
		UserID:         assignee.ID,
		Age:            assignee.Age,
		ExistingShifts: others,
	}}
	result, err := services.ValidateScheduleCreation(candidate, contexts, handler.curfewLocation)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	if !result.Accepted {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}

	if err := handler.repositories.Schedules.Update(shift); err != nil {
		if errors.Is(err, db.ErrShiftConflict) {
			return apiError(c, fiber.StatusConflict, "a conflicting shift was created concurrently")
		}
		return apiError(c, fiber.StatusInternalServerError, "could not update schedule")
	}
	return c.JSON(scheduleView(shift))
}

func (handler *Handler) FinalizeSchedule(c *fiber.Ctx) error {
	_, shift, err := handler.loadAuthorizedSchedule(c, services.ActionFinalize)
	if err != nil {
		return respondLoadError(c, err, "schedule")
	}

	if err := handler.repositories.Schedules.SetFinalized(shift.ID, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not finalize schedule")
	}
	shift.Finalized = true
	return c.JSON(scheduleView(shift))
}

func (handler *Handler) DeleteSchedule(c *fiber.Ctx) error {
	_, shift, err := handler.loadAuthorizedSchedule(c, services.ActionDelete)
	if err != nil {
		return respondLoadError(c, err, "schedule")
	}

	if err := handler.repositories.Schedules.Delete(shift.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not delete schedule")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
