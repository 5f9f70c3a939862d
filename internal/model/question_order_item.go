package model

import (
	"time"
)

// QuestionOrderItem maps a contest sequence position (question number) to a
// question. Keeping the sequence in its own table means questions can be
// reordered or removed without touching users who already progressed past
// them. Both fields are unique: a number maps to exactly one question and a
// question appears at most once in the sequence.
type QuestionOrderItem struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	QuestionNumber int       `json:"question_number" gorm:"not null;uniqueIndex"`
	QuestionID     uint      `json:"question_id" gorm:"not null;uniqueIndex"`
	Question       Question  `json:"question" gorm:"constraint:OnDelete:CASCADE"`
	UpdatedAt      time.Time `json:"updated_at"`
}
