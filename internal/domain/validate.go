package domain

import "fmt"

// Validate checks the structural invariants of a generated quiz: 2-5
// questions, no empty text or answers, and for multiple-choice questions the
// correct answer must be one of the options.
func (q Quiz) Validate() error {
	if len(q.Questions) < 2 || len(q.Questions) > 5 {
		return fmt.Errorf("%w: quiz has %d questions, want 2-5", ErrValidationFailed, len(q.Questions))
	}
	for i, question := range q.Questions {
		if question.Text == "" {
			return fmt.Errorf("%w: question %d has no text", ErrValidationFailed, i)
		}
		if question.CorrectAnswer == "" {
			return fmt.Errorf("%w: question %d has no correct answer", ErrValidationFailed, i)
		}
		switch question.Type {
		case QuestionMultipleChoice:
			if len(question.Options) < 2 {
				return fmt.Errorf("%w: question %d has %d options", ErrValidationFailed, i, len(question.Options))
			}
			if !contains(question.Options, question.CorrectAnswer) {
				return fmt.Errorf("%w: question %d correct answer not among options", ErrValidationFailed, i)
			}
		case QuestionTrueFalse:
			// no options required
		default:
			return fmt.Errorf("%w: question %d has unknown type %q", ErrValidationFailed, i, question.Type)
		}
	}
	return nil
}

// Validate checks that a lesson is complete before it may be persisted or
// cached. Video links are excluded: recommendation failures degrade to an
// empty list and are attached after content resolution.
func (l LessonContent) Validate() error {
	if l.Title == "" {
		return fmt.Errorf("%w: empty title", ErrValidationFailed)
	}
	if l.Description == "" {
		return fmt.Errorf("%w: empty description", ErrValidationFailed)
	}
	if l.Body == "" {
		return fmt.Errorf("%w: empty content body", ErrValidationFailed)
	}
	if l.AssignmentLatex == "" {
		return fmt.Errorf("%w: empty assignment source", ErrValidationFailed)
	}
	if l.DifficultyLevel < 1 || l.DifficultyLevel > MaxDifficultyLevel {
		return fmt.Errorf("%w: difficulty level %d out of range", ErrValidationFailed, l.DifficultyLevel)
	}
	if len(l.Prerequisites) == 0 {
		return fmt.Errorf("%w: no prerequisites", ErrValidationFailed)
	}
	return l.Quiz.Validate()
}

func contains(options []string, want string) bool {
	for _, opt := range options {
		if opt == want {
			return true
		}
	}
	return false
}
