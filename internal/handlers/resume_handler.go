package handlers

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krinol/resume-analyzer/internal/middleware"
	"github.com/krinol/resume-analyzer/internal/models"
	"github.com/krinol/resume-analyzer/internal/repositories"
	"github.com/krinol/resume-analyzer/internal/services"
)

type ResumeHandler struct {
	resumeRepo repositories.ResumeRepository
	storage    services.StorageService
	log        *zap.Logger
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storage services.StorageService,
	log *zap.Logger,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo: resumeRepo,
		storage:    storage,
		log:        log,
	}
}

func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(uuid.UUID)

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	resumes, total, err := h.resumeRepo.FindByUser(userID, (page-1)*limit, limit)
	if err != nil {
		h.log.Error("failed to list resumes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list resumes",
		})
	}

	items := make([]models.ResumeResponse, 0, len(resumes))
	for i := range resumes {
		items = append(items, toResumeResponse(&resumes[i]))
	}

	return c.JSON(models.ResumeListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// HandleGet is the polling endpoint: clients observe the processing outcome
// through the status and error fields of the returned record.
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	resume, status, errMsg := h.findOwned(c)
	if resume == nil {
		return c.Status(status).JSON(fiber.Map{"error": errMsg})
	}

	return c.JSON(toResumeResponse(resume))
}

func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	resume, status, errMsg := h.findOwned(c)
	if resume == nil {
		return c.Status(status).JSON(fiber.Map{"error": errMsg})
	}

	if err := h.storage.DeleteFile(filepath.Base(resume.FilePath)); err != nil {
		h.log.Warn("failed to delete stored file", zap.Error(err))
	}

	if err := h.resumeRepo.Delete(resume.ID); err != nil {
		h.log.Error("failed to delete resume", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete resume",
		})
	}

	return c.JSON(fiber.Map{"message": "resume deleted"})
}

func (h *ResumeHandler) findOwned(c *fiber.Ctx) (*models.Resume, int, string) {
	userID := c.Locals(middleware.UserIDKey).(uuid.UUID)

	resumeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, "invalid resume id"
	}

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil {
		return nil, fiber.StatusNotFound, "resume not found"
	}

	if resume.UserID != userID {
		return nil, fiber.StatusForbidden, "no access to this resume"
	}

	return resume, fiber.StatusOK, ""
}

func toResumeResponse(r *models.Resume) models.ResumeResponse {
	resp := models.ResumeResponse{
		ID:             r.ID.String(),
		Filename:       r.Filename,
		FileSize:       r.FileSize,
		Status:         string(r.Status),
		Name:           r.Name,
		SchoolName:     r.SchoolName,
		SchoolCity:     r.SchoolCity,
		EducationLevel: r.EducationLevel,
		Major:          r.Major,
		GraduationYear: r.GraduationYear,
		Phone:          r.Phone,
		Email:          r.Email,
		Summary:        r.Summary,
		Score:          r.Score,
		Error:          r.ProcessingError,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}

	if r.ExtractedInfo != nil {
		resp.Info = json.RawMessage(*r.ExtractedInfo)
	}
	if r.ScoreDetail != nil {
		resp.ScoreDetail = json.RawMessage(*r.ScoreDetail)
	}
	if r.ProcessedAt != nil {
		processed := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processed
	}

	return resp
}
