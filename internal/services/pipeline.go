package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/krinol/resume-analyzer/internal/models"
	"github.com/krinol/resume-analyzer/internal/repositories"
)

// Pipeline owns the per-document lifecycle: uploaded → processing →
// completed/failed. Stage order within one document is strict; documents
// are fully independent of one another.
type Pipeline struct {
	resumeRepo repositories.ResumeRepository
	extractor  TextExtractor
	fields     *FieldExtractor
	scorer     *Scorer
	log        *zap.Logger
}

func NewPipeline(
	resumeRepo repositories.ResumeRepository,
	extractor TextExtractor,
	fields *FieldExtractor,
	scorer *Scorer,
	log *zap.Logger,
) *Pipeline {
	return &Pipeline{
		resumeRepo: resumeRepo,
		extractor:  extractor,
		fields:     fields,
		scorer:     scorer,
		log:        log,
	}
}

// Process runs one document to a terminal state. Text extraction failure is
// fatal for the document; field extraction and scoring substitute their
// default records and the document still completes. The record always ends
// up failed or completed, never stuck: panics are caught here because the
// pipeline runs detached and has no caller to report to.
func (p *Pipeline) Process(ctx context.Context, resumeID uuid.UUID, filePath string) (err error) {
	log := p.log.With(zap.String("resume_id", resumeID.String()))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected processing failure: %v", r)
			log.Error("resume processing panicked", zap.Any("panic", r))
			p.markFailed(resumeID, err.Error(), log)
		}
	}()

	if err := p.resumeRepo.UpdateStatus(resumeID, models.StatusProcessing, ""); err != nil {
		log.Error("failed to mark resume as processing", zap.Error(err))
		return fmt.Errorf("failed to mark resume as processing: %w", err)
	}

	log.Info("resume processing started", zap.String("file", filePath))

	text, err := p.extractor.ExtractMarkdown(filePath)
	if err != nil {
		log.Error("text extraction failed", zap.Error(err))
		p.markFailed(resumeID, err.Error(), log)
		return fmt.Errorf("text extraction failed: %w", err)
	}

	info := p.fields.Extract(ctx, text)
	score := p.scorer.Score(ctx, text, info)

	if err := p.resumeRepo.UpdateContent(resumeID, text, info, score); err != nil {
		log.Error("failed to persist processing result", zap.Error(err))
		p.markFailed(resumeID, err.Error(), log)
		return fmt.Errorf("failed to persist processing result: %w", err)
	}

	log.Info("resume processing completed", zap.Int("score", score.TotalScore))
	return nil
}

func (p *Pipeline) markFailed(resumeID uuid.UUID, reason string, log *zap.Logger) {
	if err := p.resumeRepo.UpdateStatus(resumeID, models.StatusFailed, reason); err != nil {
		log.Error("failed to mark resume as failed", zap.Error(err))
	}
}
