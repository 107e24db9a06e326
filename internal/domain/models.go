package domain

import "time"

// QuestionType discriminates how a quiz question is answered.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
)

// Question is a single quiz item. Options are present only for
// multiple-choice questions; the correct answer must always be one of them.
type Question struct {
	Text          string       `json:"question"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation"`
}

// Quiz is an ordered collection of questions attached to a lesson.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// VideoRef points at a recommended video for a lesson topic.
type VideoRef struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Thumbnail      string  `json:"thumbnail"`
	Duration       string  `json:"duration"` // free-text mm:ss or hh:mm:ss
	RelevanceScore float64 `json:"relevance_score,omitempty"`
}

// VideoCandidate is raw metadata from a video search backend, before ranking.
type VideoCandidate struct {
	ID          string
	Title       string
	Description string
	Thumbnail   string
	Duration    string
	Views       string
	Channel     string
	URL         string
}

// LessonContent is the complete generated learning module. Every field is
// populated after generation; a partial lesson is never persisted.
type LessonContent struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Body            string     `json:"content"`
	AssignmentLatex string     `json:"assignment_latex"`
	Quiz            Quiz       `json:"quiz"`
	DifficultyLevel int        `json:"difficulty_level"`
	Prerequisites   []string   `json:"prerequisites"`
	VideoLinks      []VideoRef `json:"video_links"`
}

// Module is a persisted lesson owned by a user.
type Module struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userId"`
	Lesson    LessonContent `json:"lesson"`
	CreatedAt time.Time     `json:"createdAt"`
}

// User is a registered learner.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"fullName"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Progress records a user's quiz outcome for a module.
type Progress struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	ModuleID        int64      `json:"moduleId"`
	QuizScore       *float64   `json:"quizScore,omitempty"`
	QuizCompletedAt *time.Time `json:"quizCompletedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// CompletedModule is the compact prior-progress summary embedded into
// generation prompts.
type CompletedModule struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// QuestionFeedback explains the grading outcome for one question.
type QuestionFeedback struct {
	Question      string `json:"question"`
	Submitted     string `json:"submitted,omitempty"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
}

// GradeResult is the outcome of grading one quiz submission.
type GradeResult struct {
	Score    float64            `json:"score"`
	Feedback []QuestionFeedback `json:"feedback"`
}

// PathStage is one step of a suggested learning path.
type PathStage struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	EstimatedTime string `json:"estimated_time"`
}

// LearningPath is an ordered plan toward a learning goal.
type LearningPath struct {
	Goal      string      `json:"goal"`
	Stages    []PathStage `json:"stages"`
	Reasoning string      `json:"reasoning"`
}

// ChatReply is the assistant's answer to one chat message.
type ChatReply struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions,omitempty"`
	Source      string   `json:"source"`
}

// Exchange is one user/assistant turn kept in conversation history.
type Exchange struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	At        time.Time `json:"at"`
}
