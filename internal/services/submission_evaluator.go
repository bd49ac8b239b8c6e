package services

import (
	"sort"

	"github.com/veldwijk/crewplan/internal/models"
)

type QuestionScore struct {
	QuestionID     uint     `json:"question_id"`
	Question       string   `json:"question"`
	CorrectAnswers []string `json:"correct_answers"`
	UserAnswers    []string `json:"user_answers"`
	Correct        bool     `json:"correct"`
}

// ScoreReport is the evaluation of one submission against a training's
// answer key. CorrectCount plus IncorrectCount can be less than
// TotalQuestions: questions with no matching answer are skipped, not marked
// incorrect, to tolerate partial legacy submissions.
type ScoreReport struct {
	TotalQuestions int             `json:"total_questions"`
	CorrectCount   int             `json:"correct_count"`
	IncorrectCount int             `json:"incorrect_count"`
	Questions      []QuestionScore `json:"questions"`
}

// EvaluateSubmission scores user answers against the answer key. Pure and
// deterministic; callers persist the submission separately.
func EvaluateSubmission(questions []models.TrainingQuestion, answers []models.SubmissionAnswer) ScoreReport {
	answersByQuestion := make(map[uint][]string, len(answers))
	for _, answer := range answers {
		answersByQuestion[answer.QuestionID] = answer.Answers
	}

	report := ScoreReport{
		TotalQuestions: len(questions),
		Questions:      make([]QuestionScore, 0, len(questions)),
	}

	for _, question := range questions {
		userAnswers, answered := answersByQuestion[question.ID]
		if !answered {
			continue
		}

		correctAnswers := question.CorrectAnswerTexts()
		correct := false
		if question.MultipleCorrect {
			correct = sameAnswerSet(userAnswers, correctAnswers)
		} else {
			correct = len(userAnswers) == 1 && len(correctAnswers) == 1 && userAnswers[0] == correctAnswers[0]
		}

		if correct {
			report.CorrectCount++
		} else {
			report.IncorrectCount++
		}
		report.Questions = append(report.Questions, QuestionScore{
			QuestionID:     question.ID,
			Question:       question.Name,
			CorrectAnswers: correctAnswers,
			UserAnswers:    userAnswers,
			Correct:        correct,
		})
	}

	return report
}

// sameAnswerSet demands exact set equality: same size, same members, no
// partial credit.
func sameAnswerSet(left, right []string) bool {
	if len(left) != len(right) {
		return false
	}
	sortedLeft := append([]string(nil), left...)
	sortedRight := append([]string(nil), right...)
	sort.Strings(sortedLeft)
	sort.Strings(sortedRight)
	for index := range sortedLeft {
		if sortedLeft[index] != sortedRight[index] {
			return false
		}
	}
	return true
}
