package dto

import "time"

type UserResponse struct {
	ID             uint   `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	IsSuperuser    bool   `json:"is_superuser"`
	QuestionNumber int    `json:"question_number"`
	Rank           int    `json:"rank"`
}

type LeaderboardEntryResponse struct {
	FullName       string `json:"full_name"`
	Username       string `json:"username"`
	QuestionNumber int    `json:"question_number"`
	Rank           int    `json:"rank"`
}

// QuestionResponse is the list-item shape: answer and metadata, no image payload.
type QuestionResponse struct {
	ID          uint      `json:"id"`
	Answer      string    `json:"answer"`
	ContentType string    `json:"content_type"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// QuestionDetailResponse carries the image payload; Content marshals as base64.
type QuestionDetailResponse struct {
	ID          uint      `json:"id"`
	Answer      string    `json:"answer"`
	Content     []byte    `json:"content"`
	ContentType string    `json:"content_type"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type QuestionOrderItemResponse struct {
	ID             uint             `json:"id"`
	QuestionNumber int              `json:"question_number"`
	QuestionID     uint             `json:"question_id"`
	Question       QuestionResponse `json:"question"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CurrentQuestionResponse is what a participant sees: the image and its
// position, never the answer.
type CurrentQuestionResponse struct {
	QuestionNumber int    `json:"question_number"`
	Content        []byte `json:"content"`
	ContentType    string `json:"content_type"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TimestampResponse struct {
	Timestamp *time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
