package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	company := api.Group("/company", handler.AuthRequired)
	company.Get("", handler.GetCompany)
	company.Patch("", handler.UpdateCompany)
	company.Get("/members", handler.ListCompanyMembers)
	company.Post("/members/:id/role", handler.UpdateMemberRole)
	company.Post("/regenerate-code", handler.RegenerateCompanyCode)
	company.Get("/submissions", handler.ListCompanySubmissions)

	tickets := api.Group("/tickets", handler.AuthRequired)
	tickets.Get("", handler.ListTickets)
	tickets.Post("", handler.CreateTicket)
	tickets.Get("/:id", handler.GetTicket)
	tickets.Post("/:id/responses", handler.RespondToTicket)
	tickets.Post("/:id/close", handler.CloseTicket)
	tickets.Delete("/:id", handler.DeleteTicket)

	schedules := api.Group("/schedules", handler.AuthRequired)
	schedules.Get("", handler.ListSchedules)
	schedules.Post("", handler.CreateSchedules)
	schedules.Patch("/:id", handler.UpdateSchedule)
	schedules.Post("/:id/finalize", handler.FinalizeSchedule)
	schedules.Delete("/:id", handler.DeleteSchedule)

	trainings := api.Group("/trainings", handler.AuthRequired)
	trainings.Get("", handler.ListTrainings)
	trainings.Post("", handler.CreateTraining)
	trainings.Get("/:id", handler.GetTraining)
	trainings.Patch("/:id", handler.UpdateTraining)
	trainings.Delete("/:id", handler.DeleteTraining)
	trainings.Post("/:id/start", handler.StartTraining)
	trainings.Post("/:id/submit", handler.SubmitTraining)
	trainings.Get("/:id/submission", handler.GetOwnSubmission)
}
