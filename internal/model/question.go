package model

import (
	"time"
)

// Question holds a puzzle image and its expected answer. The answer is stored
// normalized: lowercase with all non-alphanumeric characters stripped.
type Question struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Answer      string    `json:"answer" gorm:"not null;uniqueIndex"`
	Content     []byte    `json:"content" gorm:"type:bytea;not null"`
	ContentType string    `json:"content_type" gorm:"not null"` // "image/jpeg" or "image/png"
	UpdatedAt   time.Time `json:"updated_at"`
}
