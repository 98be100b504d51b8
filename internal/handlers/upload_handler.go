package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krinol/resume-analyzer/internal/middleware"
	"github.com/krinol/resume-analyzer/internal/models"
	"github.com/krinol/resume-analyzer/internal/repositories"
	"github.com/krinol/resume-analyzer/internal/services"
)

type UploadHandler struct {
	resumeRepo  repositories.ResumeRepository
	storage     services.StorageService
	worker      services.Worker
	maxFileSize int64
	log         *zap.Logger
}

func NewUploadHandler(
	resumeRepo repositories.ResumeRepository,
	storage services.StorageService,
	worker services.Worker,
	maxFileSize int64,
	log *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		resumeRepo:  resumeRepo,
		storage:     storage,
		worker:      worker,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// HandleUpload stores the file, creates the record in the uploaded state,
// and queues background processing. The response is sent once the record
// write has completed; processing outcomes are only observable by polling.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(uuid.UUID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no file uploaded, expected multipart field 'file'",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large, max size: %d bytes", h.maxFileSize),
		})
	}

	storedName, filePath, err := h.storage.SaveFile(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	resume := &models.Resume{
		ID:        uuid.New(),
		UserID:    userID,
		Filename:  fileHeader.Filename,
		FileSize:  fileHeader.Size,
		FilePath:  filePath,
		Status:    models.StatusUploaded,
		CreatedAt: time.Now(),
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		if derr := h.storage.DeleteFile(storedName); derr != nil {
			h.log.Warn("failed to clean up stored file", zap.Error(derr))
		}
		h.log.Error("failed to create resume record", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save resume record",
		})
	}

	h.worker.Enqueue(resume.ID, resume.FilePath)

	return c.Status(fiber.StatusCreated).JSON(models.UploadResponse{
		ID:       resume.ID.String(),
		Filename: resume.Filename,
		Status:   string(models.StatusUploaded),
	})
}
