package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/krinol/resume-analyzer/internal/models"
)

// ResumeRepository is the record-storage boundary the processing pipeline
// writes through. UpdateStatus and UpdateContent are the only mutations the
// pipeline performs; everything else serves the HTTP layer.
type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByUser(userID uuid.UUID, offset, limit int) ([]models.Resume, int64, error)
	UpdateStatus(id uuid.UUID, status models.ResumeStatus, errMsg string) error
	UpdateContent(id uuid.UUID, content string, info *models.ExtractedInfo, score *models.ResumeScore) error
	Delete(id uuid.UUID) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resume not found")
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}
	return &resume, nil
}

func (r *resumeRepository) FindByUser(userID uuid.UUID, offset, limit int) ([]models.Resume, int64, error) {
	var resumes []models.Resume
	var total int64

	q := r.db.Model(&models.Resume{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count resumes: %w", err)
	}

	err := q.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&resumes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resumes: %w", err)
	}

	return resumes, total, nil
}

func (r *resumeRepository) UpdateStatus(id uuid.UUID, status models.ResumeStatus, errMsg string) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if status == models.StatusFailed {
		updates["processing_error"] = errMsg
		updates["processed_at"] = time.Now()
	} else {
		updates["processing_error"] = nil
	}

	result := r.db.Model(&models.Resume{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found")
	}
	return nil
}

// UpdateContent persists the full pipeline result in one write: extracted
// text, the structured info mapped onto named columns, the score, and the
// completed status with its timestamp.
func (r *resumeRepository) UpdateContent(id uuid.UUID, content string, info *models.ExtractedInfo, score *models.ResumeScore) error {
	infoJSON, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal extracted info: %w", err)
	}
	workJSON, err := json.Marshal(info.WorkExperience)
	if err != nil {
		return fmt.Errorf("failed to marshal work experience: %w", err)
	}
	projectsJSON, err := json.Marshal(info.Projects)
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}
	skillsJSON, err := json.Marshal(info.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	detailJSON, err := json.Marshal(score.ScoreDetail)
	if err != nil {
		return fmt.Errorf("failed to marshal score detail: %w", err)
	}

	updates := map[string]interface{}{
		"content":          content,
		"extracted_info":   string(infoJSON),
		"name":             info.Name,
		"school_name":      info.SchoolName,
		"school_city":      info.SchoolCity,
		"education_level":  info.EducationLevel,
		"major":            info.Major,
		"graduation_year":  info.GraduationYear,
		"phone":            info.Phone,
		"email":            info.Email,
		"work_experience":  string(workJSON),
		"projects":         string(projectsJSON),
		"skills":           string(skillsJSON),
		"summary":          info.Summary,
		"score":            score.TotalScore,
		"score_detail":     string(detailJSON),
		"status":           models.StatusCompleted,
		"processing_error": nil,
		"processed_at":     time.Now(),
	}

	result := r.db.Model(&models.Resume{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found")
	}
	return nil
}

func (r *resumeRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Resume{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found")
	}
	return nil
}
