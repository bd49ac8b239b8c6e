package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/veldwijk/crewplan/internal/models"
	"github.com/veldwijk/crewplan/internal/services"
)

func trainingPermissionData(training *models.Training) *services.PermissionData {
	companyID := training.CompanyID
	return &services.PermissionData{
		CompanyID: &companyID,
		Role:      training.Role,
	}
}

func isTrainingManager(user *models.User) bool {
	return user.Role == models.RoleLeader || user.Role == models.RoleOwner
}

func (handler *Handler) loadAuthorizedTraining(c *fiber.Ctx, action services.Action) (*models.User, *models.Training, error) {
	user, ok := currentUser(c)
	if !ok {
		return nil, nil, errDenied
	}

	trainingID, err := c.ParamsInt("id")
	if err != nil || trainingID <= 0 {
		return nil, nil, errInvalidID
	}

	training, err := handler.repositories.Trainings.FindByID(uint(trainingID))
	if err != nil {
		return nil, nil, errDenied
	}

	if !services.HasPermission(user, services.ResourceTraining, action, trainingPermissionData(&training)) {
		return nil, nil, errDenied
	}
	return user, &training, nil
}

// ListTrainings returns the company's trainings. Employees only see
// trainings aimed at their role, and never the question content.
func (handler *Handler) ListTrainings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}

	var (
		trainings []models.Training
		err       error
	)
	if isTrainingManager(user) {
		trainings, err = handler.repositories.Trainings.ListByCompany(*user.CompanyID)
	} else {
		trainings, err = handler.repositories.Trainings.ListByCompanyAndRole(*user.CompanyID, user.Role)
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not list trainings")
	}

	views := make([]fiber.Map, 0, len(trainings))
	for index := range trainings {
		views = append(views, trainingView(&trainings[index], false, false))
	}
	return c.JSON(views)
}

type trainingQuestionInput struct {
	Name            string   `json:"name"`
	Answers         []string `json:"answers"`
	CorrectIndexes  []int    `json:"correct_indexes"`
	MultipleCorrect bool     `json:"multiple_correct"`
}

type trainingInput struct {
	Role        string                  `json:"role"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Questions   []trainingQuestionInput `json:"questions"`
}

func validateTrainingInput(input *trainingInput) string {
	if strings.TrimSpace(input.Name) == "" {
		return "name is required"
	}
	if input.Role != models.RoleEmployee && input.Role != models.RoleLeader {
		return "role must be employee or leader"
	}
	for _, question := range input.Questions {
		if strings.TrimSpace(question.Name) == "" {
			return "every question needs a name"
		}
		if len(question.Answers) < 2 {
			return "every question needs at least two answers"
		}
		if len(question.CorrectIndexes) == 0 {
			return "every question needs a correct answer"
		}
		if !question.MultipleCorrect && len(question.CorrectIndexes) > 1 {
			return "single-answer question cannot have multiple correct indexes"
		}
		for _, index := range question.CorrectIndexes {
			if index < 0 || index >= len(question.Answers) {
				return "correct index out of range"
			}
		}
	}
	return ""
}

func buildTrainingQuestions(inputs []trainingQuestionInput) []models.TrainingQuestion {
	questions := make([]models.TrainingQuestion, 0, len(inputs))
	for position, input := range inputs {
		questions = append(questions, models.TrainingQuestion{
			Position:        position,
			Name:            strings.TrimSpace(input.Name),
			Answers:         input.Answers,
			CorrectIndexes:  input.CorrectIndexes,
			MultipleCorrect: input.MultipleCorrect,
		})
	}
	return questions
}

func (handler *Handler) CreateTraining(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.CompanyID == nil {
		return forbidden(c)
	}

	data := &services.PermissionData{CompanyID: user.CompanyID}
	if !services.HasPermission(user, services.ResourceTraining, services.ActionCreate, data) {
		return forbidden(c)
	}

	input := trainingInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if message := validateTrainingInput(&input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	training := models.Training{
		CompanyID:   *user.CompanyID,
		Role:        input.Role,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Questions:   buildTrainingQuestions(input.Questions),
	}
	if err := handler.repositories.Trainings.Create(&training); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not create training")
	}
	return c.Status(fiber.StatusCreated).JSON(trainingView(&training, true, true))
}

// GetTraining hides question content from employees until they have started
// the training, and never exposes the answer key to them.
func (handler *Handler) GetTraining(c *fiber.Ctx) error {
	user, training, err := handler.loadAuthorizedTraining(c, services.ActionView)
	if err != nil {
		return respondLoadError(c, err, "training")
	}

	if isTrainingManager(user) {
		return c.JSON(trainingView(training, true, true))
	}

	started, err := handler.repositories.Trainings.HasProgress(user.ID, training.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not check progress")
	}
	return c.JSON(trainingView(training, started, false))
}

func (handler *Handler) UpdateTraining(c *fiber.Ctx) error {
	_, training, err := handler.loadAuthorizedTraining(c, services.ActionUpdate)
	if err != nil {
		return respondLoadError(c, err, "training")
	}

	input := trainingInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if message := validateTrainingInput(&input); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	training.Role = input.Role
	training.Name = strings.TrimSpace(input.Name)
	training.Description = input.Description
	training.Questions = buildTrainingQuestions(input.Questions)
	for index := range training.Questions {
		training.Questions[index].TrainingID = training.ID
	}

	if err := handler.repositories.Trainings.Update(training); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not update training")
	}
	return c.JSON(trainingView(training, true, true))
}

func (handler *Handler) DeleteTraining(c *fiber.Ctx) error {
	_, training, err := handler.loadAuthorizedTraining(c, services.ActionDelete)
	if err != nil {
		return respondLoadError(c, err, "training")
	}

	if err := handler.repositories.Trainings.Delete(training.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not delete training")
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// StartTraining creates the progress marker that unlocks question content
// for the caller. Starting an already started training is a no-op.
func (handler *Handler) StartTraining(c *fiber.Ctx) error {
	user, training, err := handler.loadAuthorizedTraining(c, services.ActionView)
	if err != nil {
		return respondLoadError(c, err, "training")
	}

	if err := handler.repositories.Trainings.StartProgress(user.ID, training.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "could not start training")
	}

	includeAnswers := isTrainingManager(user)
	return c.JSON(trainingView(training, true, includeAnswers))
}
