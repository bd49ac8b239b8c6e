package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Companies   *CompanyRepository
	Tickets     *TicketRepository
	Schedules   *ScheduleRepository
	Trainings   *TrainingRepository
	Submissions *SubmissionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Companies:   NewCompanyRepository(database),
		Tickets:     NewTicketRepository(database),
		Schedules:   NewScheduleRepository(database),
		Trainings:   NewTrainingRepository(database),
		Submissions: NewSubmissionRepository(database),
	}
}
