package model

import (
	"time"
)

// User is a contest participant or an administrator. QuestionNumber is the
// position of the question currently shown to the user; its resolution goes
// through QuestionOrderItem. Rank is denormalized and recomputed in bulk on
// every rank-affecting mutation, never per user.
type User struct {
	ID                      uint      `gorm:"primarykey" json:"id"`
	FullName                string    `json:"full_name" gorm:"not null;index"`
	Email                   string    `json:"email" gorm:"not null;uniqueIndex"`
	Username                string    `json:"username" gorm:"not null;uniqueIndex"`
	HashedPassword          string    `json:"-" gorm:"not null"`
	IsSuperuser             bool      `json:"is_superuser" gorm:"not null;default:false"`
	QuestionNumber          int       `json:"question_number" gorm:"not null;default:1"`
	QuestionNumberUpdatedAt time.Time `json:"question_number_updated_at" gorm:"not null"`
	Rank                    int       `json:"rank"`
}
