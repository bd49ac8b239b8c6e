package db

import (
	"testing"

	"github.com/veldwijk/crewplan/internal/models"
)

func createTestTraining(t *testing.T, repo *TrainingRepository, companyID uint, role string, name string) models.Training {
	t.Helper()

	training := models.Training{
		CompanyID: companyID,
		Role:      role,
		Name:      name,
		Questions: []models.TrainingQuestion{
			{Position: 0, Name: "Eerste vraag", Answers: []string{"A", "B"}, CorrectIndexes: []int{0}},
			{Position: 1, Name: "Tweede vraag", Answers: []string{"A", "B", "C"}, CorrectIndexes: []int{1, 2}, MultipleCorrect: true},
		},
	}
	if err := repo.Create(&training); err != nil {
		t.Fatalf("create training: %v", err)
	}
	return training
}

func TestTrainingFindByIDOrdersQuestions(t *testing.T) {
	t.Parallel()
	database := openTestDatabase(t)
	repo := NewTrainingRepository(database)
	company := createTestCompany(t, database, "Bedrijf", "TRAINEN2")

	training := models.Training{
		CompanyID: company.ID,
		Role:      models.RoleEmployee,
		Name:      "Volgorde",
		Questions: []models.TrainingQuestion{
			{Position: 2, Name: "Laatste", Answers: []string{"A", "B"}, CorrectIndexes: []int{0}},
			{Position: 0, Name: "Eerste", Answers: []string{"A", "B"}, CorrectIndexes: []int{0}},
			{Position: 1, Name: "Midden", Answers: []string{"A", "B"}, CorrectIndexes: []int{0}},
		},
	}
	if err := repo.Create(&training); err != nil {
		t.Fatalf("create training: %v", err)
	}

	loaded, err := repo.FindByID(training.ID)
	if err != nil {
		t.Fatalf("find training: %v", err)
	}
	if len(loaded.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(loaded.Questions))
	}
	for index, wantName := range []string{"Eerste", "Midden", "Laatste"} {
		if loaded.Questions[index].Name != wantName {
			t.Fatalf("question %d should be %q, got %q", index, wantName, loaded.Questions[index].Name)
		}
	}
}

func TestTrainingListByCompanyAndRoleFilters(t *testing.T) {
	t.Parallel()
	database := openTestDatabase(t)
	repo := NewTrainingRepository(database)
	company := createTestCompany(t, database, "Bedrijf", "TRAINEN3")
	other := createTestCompany(t, database, "Ander", "TRAINEN4")

	createTestTraining(t, repo, company.ID, models.RoleEmployee, "Voor medewerkers")
	createTestTraining(t, repo, company.ID, models.RoleLeader, "Voor leiders")
	createTestTraining(t, repo, other.ID, models.RoleEmployee, "Ander bedrijf")

	employeeTrainings, err := repo.ListByCompanyAndRole(company.ID, models.RoleEmployee)
	if err != nil {
		t.Fatalf("list by company and role: %v", err)
	}
	if len(employeeTrainings) != 1 || employeeTrainings[0].Name != "Voor medewerkers" {
		t.Fatalf("unexpected role-filtered list: %+v", employeeTrainings)
	}

	all, err := repo.ListByCompany(company.ID)
	if err != nil {
		t.Fatalf("list by company: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 trainings for the company, got %d", len(all))
	}
}

func TestTrainingUpdateReplacesQuestionSet(t *testing.T) {
	t.Parallel()
	database := openTestDatabase(t)
	repo := NewTrainingRepository(database)
	company := createTestCompany(t, database, "Bedrijf", "TRAINEN5")

	training := createTestTraining(t, repo, company.ID, models.RoleEmployee, "Origineel")

	training.Name = "Herzien"
	training.Questions = []models.TrainingQuestion{
		{TrainingID: training.ID, Position: 0, Name: "Enige vraag", Answers: []string{"Ja", "Nee"}, CorrectIndexes: []int{0}},
	}
	if err := repo.Update(&training); err != nil {
		t.Fatalf("update training: %v", err)
	}

	loaded, err := repo.FindByID(training.ID)
	if err != nil {
		t.Fatalf("find training: %v", err)
	}
	if loaded.Name != "Herzien" {
		t.Fatalf("expected renamed training, got %q", loaded.Name)
	}
	if len(loaded.Questions) != 1 || loaded.Questions[0].Name != "Enige vraag" {
		t.Fatalf("old questions should be gone: %+v", loaded.Questions)
	}

	var questionCount int64
	if err := database.Model(&models.TrainingQuestion{}).Where("training_id = ?", training.ID).Count(&questionCount).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if questionCount != 1 {
		t.Fatalf("expected 1 stored question row, got %d", questionCount)
	}
}

func TestStartProgressIsIdempotent(t *testing.T) {
	t.Parallel()
	database := openTestDatabase(t)
	repo := NewTrainingRepository(database)
	company := createTestCompany(t, database, "Bedrijf", "TRAINEN6")
	user := createTestUser(t, database, "cursist@bedrijf.nl", models.RoleEmployee, &company.ID)
	training := createTestTraining(t, repo, company.ID, models.RoleEmployee, "Start")

	if err := repo.StartProgress(user.ID, training.ID); err != nil {
		t.Fatalf("start progress: %v", err)
	}
	if err := repo.StartProgress(user.ID, training.ID); err != nil {
		t.Fatalf("second start should be a no-op: %v", err)
	}

	var markerCount int64
	if err := database.Model(&models.TrainingProgress{}).
		Where("user_id = ? AND training_id = ?", user.ID, training.ID).
		Count(&markerCount).Error; err != nil {
		t.Fatalf("count markers: %v", err)
	}
	if markerCount != 1 {
		t.Fatalf("expected a single progress marker, got %d", markerCount)
	}

	started, err := repo.HasProgress(user.ID, training.ID)
	if err != nil || !started {
		t.Fatalf("expected progress to exist, got %v / %v", started, err)
	}
}

func TestTrainingDeleteCascades(t *testing.T) {
	t.Parallel()
	database := openTestDatabase(t)
	repo := NewTrainingRepository(database)
	company := createTestCompany(t, database, "Bedrijf", "TRAINEN7")
	user := createTestUser(t, database, "wisser@bedrijf.nl", models.RoleEmployee, &company.ID)
	training := createTestTraining(t, repo, company.ID, models.RoleEmployee, "Weg ermee")

	if err := repo.StartProgress(user.ID, training.ID); err != nil {
		t.Fatalf("start progress: %v", err)
	}
	submission := models.Submission{UserID: user.ID, TrainingID: training.ID, CompanyID: company.ID}
	if err := database.Create(&submission).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}

	if err := repo.Delete(training.ID); err != nil {
		t.Fatalf("delete training: %v", err)
	}

	for _, check := range []struct {
		name  string
		model interface{}
	}{
		{"questions", &models.TrainingQuestion{}},
		{"progress markers", &models.TrainingProgress{}},
		{"submissions", &models.Submission{}},
	} {
		var remaining int64
		if err := database.Model(check.model).Where("training_id = ?", training.ID).Count(&remaining).Error; err != nil {
			t.Fatalf("count %s: %v", check.name, err)
		}
		if remaining != 0 {
			t.Fatalf("expected no %s after delete, got %d", check.name, remaining)
		}
	}
}
