package models

import "encoding/json"

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// ResumeResponse is the polling view of a resume record. Info and
// ScoreDetail are the stored JSON blobs passed through verbatim.
type ResumeResponse struct {
	ID             string          `json:"id"`
	Filename       string          `json:"filename"`
	FileSize       int64           `json:"file_size"`
	Status         string          `json:"status"`
	Name           *string         `json:"name"`
	SchoolName     *string         `json:"school_name"`
	SchoolCity     *string         `json:"school_city"`
	EducationLevel *string         `json:"education_level"`
	Major          *string         `json:"major"`
	GraduationYear *string         `json:"graduation_year"`
	Phone          *string         `json:"phone"`
	Email          *string         `json:"email"`
	Summary        *string         `json:"summary"`
	Info           json.RawMessage `json:"extracted_info,omitempty"`
	Score          *int            `json:"score"`
	ScoreDetail    json.RawMessage `json:"score_detail,omitempty"`
	Error          *string         `json:"error,omitempty"`
	CreatedAt      string          `json:"created_at"`
	ProcessedAt    *string         `json:"processed_at,omitempty"`
}

type ResumeListResponse struct {
	Items []ResumeResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
