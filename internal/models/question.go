package models

import (
	"time"

	"gorm.io/gorm"
)

// Question is a structured multiple-choice message from one friend to
// another. It is created unanswered, transitions to answered at most once and
// is immutable afterwards; the answered-once guarantee is enforced by a
// conditional update in the repository, not by application-side checks.
type Question struct {
	gorm.Model
	FromUserID    uint       `json:"from_user_id" gorm:"index"`
	ToUserID      uint       `json:"to_user_id" gorm:"index"`
	ApplicationID *uint      `json:"application_id,omitempty" gorm:"index"`
	Text          string     `json:"text"`
	Options       []string   `json:"options" gorm:"serializer:json"`
	Answer        *string    `json:"answer,omitempty"`
	AnsweredAt    *time.Time `json:"answered_at,omitempty"`
}

// Answered reports whether q already carries an answer.
func (q *Question) Answered() bool {
	return q.Answer != nil
}

// HasOption reports whether answer is one of q's options.
func (q *Question) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}

// SendQuestionRequest defines the request body for sending a question
type SendQuestionRequest struct {
	ToUserID      uint     `json:"to_user_id" validate:"required"`
	Text          string   `json:"text" validate:"required,max=1000"`
	Options       []string `json:"options" validate:"required,min=1,dive,required,max=200"`
	ApplicationID *uint    `json:"application_id,omitempty"`
}

// AnswerQuestionRequest defines the request body for answering a question
type AnswerQuestionRequest struct {
	Answer string `json:"answer" validate:"required,max=200"`
}

// QuestionView is a question joined with the counterpart's profile: the
// sender's profile on received questions, the addressee's on sent ones.
type QuestionView struct {
	Question
	User UserProfile `json:"user"`
}

// QuestionsPartition groups the caller's questions by direction.
type QuestionsPartition struct {
	Sent     []QuestionView `json:"sent"`
	Received []QuestionView `json:"received"`
}
