package dto

// LoginRequest carries OAuth2-password-flow style form fields. The username
// field holds the user's email address.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type CreateUserRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Password    string `json:"password" binding:"required,min=8"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UpdateUserRequest is the superuser-facing update. Nil fields are left
// untouched. Setting QuestionNumber also refreshes the progression timestamp
// and triggers a rank recompute.
type UpdateUserRequest struct {
	FullName       *string `json:"full_name"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Password       *string `json:"password" binding:"omitempty,min=8"`
	QuestionNumber *int    `json:"question_number" binding:"omitempty,min=1"`
	IsSuperuser    *bool   `json:"is_superuser"`
}

// UpdateMeRequest is the self-service update. Users cannot touch their own
// question number or superuser flag.
type UpdateMeRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type UpdateQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type CreateQuestionOrderItemRequest struct {
	QuestionNumber int  `json:"question_number" binding:"required,min=1"`
	QuestionID     uint `json:"question_id" binding:"required"`
}

type UpdateQuestionOrderItemRequest struct {
	QuestionNumber *int  `json:"question_number" binding:"omitempty,min=1"`
	QuestionID     *uint `json:"question_id"`
}
