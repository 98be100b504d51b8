package models

import (
	"time"

	"github.com/google/uuid"
)

type ResumeStatus string

const (
	StatusUploaded   ResumeStatus = "uploaded"
	StatusProcessing ResumeStatus = "processing"
	StatusCompleted  ResumeStatus = "completed"
	StatusFailed     ResumeStatus = "failed"
)

// Resume is the persisted record for one uploaded resume document and
// everything the processing pipeline derives from it. The nullable columns
// are only populated once processing reaches a terminal state: text, info
// and score fields when status is completed, ProcessingError when failed.
type Resume struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Filename string    `gorm:"type:text;not null" json:"filename"`
	FileSize int64     `gorm:"not null" json:"file_size"`
	FilePath string    `gorm:"type:text;not null" json:"-"`

	Content       *string `gorm:"type:text" json:"-"`
	ExtractedInfo *string `gorm:"type:jsonb" json:"-"`

	// Columns lifted out of the extracted-info blob for querying.
	Name           *string `gorm:"type:varchar(100)" json:"name"`
	SchoolName     *string `gorm:"type:varchar(200)" json:"school_name"`
	SchoolCity     *string `gorm:"type:varchar(100)" json:"school_city"`
	EducationLevel *string `gorm:"type:varchar(50)" json:"education_level"`
	Major          *string `gorm:"type:varchar(100)" json:"major"`
	GraduationYear *string `gorm:"type:varchar(10)" json:"graduation_year"`
	Phone          *string `gorm:"type:varchar(20)" json:"phone"`
	Email          *string `gorm:"type:varchar(100)" json:"email"`
	WorkExperience *string `gorm:"type:jsonb" json:"-"`
	Projects       *string `gorm:"type:jsonb" json:"-"`
	Skills         *string `gorm:"type:jsonb" json:"-"`
	Summary        *string `gorm:"type:text" json:"summary"`

	Score       *int    `gorm:"type:integer" json:"score"`
	ScoreDetail *string `gorm:"type:jsonb" json:"-"`

	Status          ResumeStatus `gorm:"type:varchar(20);not null;default:'uploaded'" json:"status"`
	ProcessingError *string      `gorm:"type:text" json:"processing_error,omitempty"`
	CreatedAt       time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	ProcessedAt     *time.Time   `json:"processed_at,omitempty"`
}

func (Resume) TableName() string {
	return "resumes"
}
