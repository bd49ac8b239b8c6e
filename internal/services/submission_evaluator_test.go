package services

import (
	"testing"

	"github.com/veldwijk/crewplan/internal/models"
)

func safetyQuestions() []models.TrainingQuestion {
	return []models.TrainingQuestion{
		{
			ID:             1,
			Name:           "Maximum ladder height without a spotter?",
			Answers:        []string{"2m", "4m", "6m"},
			CorrectIndexes: []int{0},
		},
		{
			ID:              2,
			Name:            "Which items are mandatory in the stockroom?",
			Answers:         []string{"Helmet", "Gloves", "Sandals", "Hi-vis vest"},
			CorrectIndexes:  []int{0, 1, 3},
			MultipleCorrect: true,
		},
		{
			ID:             3,
			Name:           "Who signs off an incident report?",
			Answers:        []string{"Any colleague", "The shift leader"},
			CorrectIndexes: []int{1},
		},
	}
}

func TestEvaluateSubmissionPerfectScore(t *testing.T) {
	t.Parallel()

	answers := []models.SubmissionAnswer{
		{QuestionID: 1, Answers: []string{"2m"}},
		{QuestionID: 2, Answers: []string{"Hi-vis vest", "Helmet", "Gloves"}},
		{QuestionID: 3, Answers: []string{"The shift leader"}},
	}

	report := EvaluateSubmission(safetyQuestions(), answers)
	if report.TotalQuestions != 3 {
		t.Fatalf("expected 3 total questions, got %d", report.TotalQuestions)
	}
	if report.CorrectCount != report.TotalQuestions {
		t.Fatalf("expected a perfect score, got %d/%d", report.CorrectCount, report.TotalQuestions)
	}
	if report.IncorrectCount != 0 {
		t.Fatalf("expected no incorrect answers, got %d", report.IncorrectCount)
	}
	for _, question := range report.Questions {
		if !question.Correct {
			t.Fatalf("expected question %d to be correct, got %+v", question.QuestionID, question)
		}
	}
}

func TestEvaluateSubmissionMultiAnswerSetEquality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		answers []string
		correct bool
	}{
		{"exact set any order", []string{"Gloves", "Hi-vis vest", "Helmet"}, true},
		{"missing member", []string{"Helmet", "Gloves"}, false},
		{"extra member", []string{"Helmet", "Gloves", "Hi-vis vest", "Sandals"}, false},
		{"wrong member same size", []string{"Helmet", "Gloves", "Sandals"}, false},
		{"empty", nil, false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			report := EvaluateSubmission(safetyQuestions(), []models.SubmissionAnswer{
				{QuestionID: 2, Answers: test.answers},
			})
			if len(report.Questions) != 1 {
				t.Fatalf("expected one scored question, got %d", len(report.Questions))
			}
			if report.Questions[0].Correct != test.correct {
				t.Fatalf("correct = %v, want %v for answers %v", report.Questions[0].Correct, test.correct, test.answers)
			}
		})
	}
}

func TestEvaluateSubmissionSingleAnswerExactText(t *testing.T) {
	t.Parallel()

	report := EvaluateSubmission(safetyQuestions(), []models.SubmissionAnswer{
		{QuestionID: 1, Answers: []string{"4m"}},
		{QuestionID: 3, Answers: []string{"The shift leader", "Any colleague"}},
	})

	if report.CorrectCount != 0 {
		t.Fatalf("expected no correct answers, got %d", report.CorrectCount)
	}
	if report.IncorrectCount != 2 {
		t.Fatalf("expected 2 incorrect answers, got %d", report.IncorrectCount)
	}
}

func TestEvaluateSubmissionSkipsUnansweredQuestions(t *testing.T) {
	t.Parallel()

	// Intentional leniency for partial legacy submissions: an unanswered
	// question is neither correct nor incorrect.
	report := EvaluateSubmission(safetyQuestions(), []models.SubmissionAnswer{
		{QuestionID: 1, Answers: []string{"2m"}},
	})

	if report.TotalQuestions != 3 {
		t.Fatalf("expected 3 total questions, got %d", report.TotalQuestions)
	}
	if report.CorrectCount != 1 || report.IncorrectCount != 0 {
		t.Fatalf("expected 1 correct / 0 incorrect, got %d/%d", report.CorrectCount, report.IncorrectCount)
	}
	if len(report.Questions) != 1 {
		t.Fatalf("expected only the answered question in the report, got %d", len(report.Questions))
	}
}

func TestEvaluateSubmissionExposesReviewDetail(t *testing.T) {
	t.Parallel()

	report := EvaluateSubmission(safetyQuestions(), []models.SubmissionAnswer{
		{QuestionID: 3, Answers: []string{"Any colleague"}},
	})

	if len(report.Questions) != 1 {
		t.Fatalf("expected one scored question, got %d", len(report.Questions))
	}
	scored := report.Questions[0]
	if scored.Correct {
		t.Fatal("expected incorrect answer")
	}
	if len(scored.CorrectAnswers) != 1 || scored.CorrectAnswers[0] != "The shift leader" {
		t.Fatalf("expected correct answer text for review, got %v", scored.CorrectAnswers)
	}
	if len(scored.UserAnswers) != 1 || scored.UserAnswers[0] != "Any colleague" {
		t.Fatalf("expected submitted answer echoed back, got %v", scored.UserAnswers)
	}
}

func TestEvaluateSubmissionIgnoresUnknownQuestionIDs(t *testing.T) {
	t.Parallel()

	report := EvaluateSubmission(safetyQuestions(), []models.SubmissionAnswer{
		{QuestionID: 999, Answers: []string{"2m"}},
	})
	if report.CorrectCount != 0 || report.IncorrectCount != 0 || len(report.Questions) != 0 {
		t.Fatalf("expected empty scoring for unknown question id, got %+v", report)
	}
}
