package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/veldwijk/crewplan/internal/models"
	"github.com/veldwijk/crewplan/internal/services"
)

type submissionInput struct {
	Answers []models.SubmissionAnswer `json:"answers"`
}

// SubmitTraining evaluates the caller's answers, stores the submission (one
// row per user and training, overwritten on re-submission) and clears the
// progress marker. The score report is returned immediately.
func (handler *Handler) SubmitTraining(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}

	trainingID, err := c.ParamsInt("id")
	if err != nil || trainingID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid training id")
	}

	training, err := handler.repositories.Trainings.FindByID(uint(trainingID))
	if err != nil {
		return forbidden(c)
	}

	companyID := training.CompanyID
	data := &services.PermissionData{
		UserID:    user.ID,
		CompanyID: &companyID,
		Role:      training.Role,
	}
	if !services.HasPermission(user, services.ResourceSubmission, services.ActionCreate, data) {
		return forbidden(c)
	}

	input := submissionInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	report := services.EvaluateSubmission(training.Questions, input.Answers)

	submission := models.Submission{
		UserID:     user.ID,
		TrainingID: training.ID,
		CompanyID:  training.CompanyID,
		Answers:    input.Answers,
	}
	if err := handler.repositories.Submissions.Upsert(&submission); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not store submission")
	}

	return c.JSON(report)
}

// GetOwnSubmission returns the caller's stored submission for a training,
// alongside the score report recomputed against the current answer key.
func (handler *Handler) GetOwnSubmission(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return forbidden(c)
	}

	trainingID, err := c.ParamsInt("id")
	if err != nil || trainingID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid training id")
	}

	submission, err := handler.repositories.Submissions.FindByUserAndTraining(user.ID, uint(trainingID))
	if err != nil {
		return forbidden(c)
	}

	submissionCompanyID := submission.CompanyID
	data := &services.PermissionData{UserID: submission.UserID, CompanyID: &submissionCompanyID}
	if !services.HasPermission(user, services.ResourceSubmission, services.ActionView, data) {
		return forbidden(c)
	}

	training, err := handler.repositories.Trainings.FindByID(submission.TrainingID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not load training")
	}
	report := services.EvaluateSubmission(training.Questions, submission.Answers)

	return c.JSON(fiber.Map{
		"submission": submissionView(&submission),
		"report":     report,
	})
}

// ListCompanySubmissions is the leader/owner audit view over every
// submission in the company.
func (handler *Handler) ListCompanySubmissions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}

	data := &services.PermissionData{CompanyID: user.CompanyID}
	if !services.HasPermission(user, services.ResourceSubmission, services.ActionView, data) {
		return forbidden(c)
	}
	if !isTrainingManager(user) {
		return forbidden(c)
	}

	submissions, err := handler.repositories.Submissions.ListByCompany(*user.CompanyID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not list submissions")
	}

	views := make([]fiber.Map, 0, len(submissions))
	for index := range submissions {
		views = append(views, submissionView(&submissions[index]))
	}
	return c.JSON(views)
}
