package app

import "github.com/SSHRIHARI006/GyanForge/internal/domain"

// Grade scores a quiz submission by exact, case-sensitive comparison against
// the stored correct answers. Pure function: no clock, no I/O.
//
// answers maps question index to the submitted answer; absent indices count
// as wrong. An empty quiz scores 0 with a single diagnostic feedback entry.
func Grade(quiz domain.Quiz, answers map[int]string) domain.GradeResult {
	total := len(quiz.Questions)
	if total == 0 {
		return domain.GradeResult{
			Score: 0,
			Feedback: []domain.QuestionFeedback{{
				Question:    "",
				Correct:     false,
				Explanation: "quiz contains no questions",
			}},
		}
	}

	correct := 0
	feedback := make([]domain.QuestionFeedback, 0, total)
	for i, question := range quiz.Questions {
		submitted, answered := answers[i]
		isCorrect := answered && submitted == question.CorrectAnswer
		if isCorrect {
			correct++
		}
		feedback = append(feedback, domain.QuestionFeedback{
			Question:      question.Text,
			Submitted:     submitted,
			CorrectAnswer: question.CorrectAnswer,
			Correct:       isCorrect,
			Explanation:   question.Explanation,
		})
	}

	return domain.GradeResult{
		Score:    100 * float64(correct) / float64(total),
		Feedback: feedback,
	}
}

// NextStep maps a quiz score to guidance for the learner. Advancement
// threshold is 80.
func NextStep(score float64) (message string, advance bool) {
	switch {
	case score >= 80:
		return "Great job! You're ready to move on to the next topic.", true
	case score >= 50:
		return "You're getting there! Try some practice exercises before moving on.", false
	default:
		return "It looks like you need more practice with this topic. Try reviewing the material again.", false
	}
}
