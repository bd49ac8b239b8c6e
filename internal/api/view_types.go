package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/veldwijk/crewplan/internal/models"
)

func userView(user *models.User) fiber.Map {
	return fiber.Map{
		"id":         user.ID,
		"company_id": user.CompanyID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"verified":   user.Verified,
		"age":        user.Age,
	}
}

func companyView(company *models.Company) fiber.Map {
	return fiber.Map{
		"id":   company.ID,
		"name": company.Name,
		"code": company.Code,
	}
}

func ticketView(ticket *models.Ticket) fiber.Map {
	responses := make([]fiber.Map, 0, len(ticket.Responses))
	for index := range ticket.Responses {
		response := &ticket.Responses[index]
		responses = append(responses, fiber.Map{
			"id":         response.ID,
			"user_id":    response.UserID,
			"content":    response.Content,
			"created_at": response.CreatedAt,
		})
	}
	return fiber.Map{
		"id":              ticket.ID,
		"user_id":         ticket.UserID,
		"company_id":      ticket.CompanyID,
		"title":           ticket.Title,
		"content":         ticket.Content,
		"attachment_name": ticket.AttachmentName,
		"closed":          ticket.Closed,
		"responses":       responses,
		"created_at":      ticket.CreatedAt,
	}
}

func ticketListView(tickets []models.Ticket) []fiber.Map {
	views := make([]fiber.Map, 0, len(tickets))
	for index := range tickets {
		views = append(views, ticketView(&tickets[index]))
	}
	return views
}

func scheduleView(shift *models.Schedule) fiber.Map {
	return fiber.Map{
		"id":         shift.ID,
		"user_id":    shift.UserID,
		"company_id": shift.CompanyID,
		"start":      shift.Start.UTC().Format(time.RFC3339),
		"end":        shift.End.UTC().Format(time.RFC3339),
		"category":   shift.Category,
		"finalized":  shift.Finalized,
	}
}

func scheduleListView(shifts []models.Schedule) []fiber.Map {
	views := make([]fiber.Map, 0, len(shifts))
	for index := range shifts {
		views = append(views, scheduleView(&shifts[index]))
	}
	return views
}

// trainingView renders a training. Question content is included only when
// includeQuestions is set, and correct indexes only when includeAnswers is
// set; employees never receive the answer key.
func trainingView(training *models.Training, includeQuestions bool, includeAnswers bool) fiber.Map {
	view := fiber.Map{
		"id":          training.ID,
		"company_id":  training.CompanyID,
		"role":        training.Role,
		"name":        training.Name,
		"description": training.Description,
	}
	if !includeQuestions {
		return view
	}

	questions := make([]fiber.Map, 0, len(training.Questions))
	for index := range training.Questions {
		question := &training.Questions[index]
		entry := fiber.Map{
			"id":               question.ID,
			"position":         question.Position,
			"name":             question.Name,
			"answers":          question.Answers,
			"multiple_correct": question.MultipleCorrect,
		}
		if includeAnswers {
			entry["correct_indexes"] = question.CorrectIndexes
		}
		questions = append(questions, entry)
	}
	view["questions"] = questions
	return view
}

func submissionView(submission *models.Submission) fiber.Map {
	return fiber.Map{
		"id":          submission.ID,
		"user_id":     submission.UserID,
		"training_id": submission.TrainingID,
		"company_id":  submission.CompanyID,
		"answers":     submission.Answers,
		"created_at":  submission.CreatedAt,
		"updated_at":  submission.UpdatedAt,
	}
}
