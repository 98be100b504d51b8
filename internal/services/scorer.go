package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/krinol/resume-analyzer/internal/llm"
	"github.com/krinol/resume-analyzer/internal/models"
)

var scoreDimensions = []string{
	"region", "school_tier", "major_match", "highlight", "experience", "quality",
}

// Scorer produces the weighted six-dimension resume score via one model
// call. Like the field extractor it never returns an error: any failure
// degrades to the zero-score record, and the pipeline still completes.
type Scorer struct {
	client llm.Client
	rules  *RuleData
	opts   llm.Options
	log    *zap.Logger
}

func NewScorer(client llm.Client, rules *RuleData, opts llm.Options, log *zap.Logger) *Scorer {
	return &Scorer{client: client, rules: rules, opts: opts, log: log}
}

func (s *Scorer) Score(ctx context.Context, markdown string, info *models.ExtractedInfo) *models.ResumeScore {
	infoJSON, err := json.Marshal(info)
	if err != nil {
		s.log.Warn("failed to encode extracted info for scoring, using zero score", zap.Error(err))
		return models.DefaultResumeScore()
	}

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: scoringSystemPrompt},
		{Role: llm.RoleUser, Content: BuildScoringPrompt(markdown, string(infoJSON), s.rules)},
	}

	response, err := s.client.ChatCompletion(ctx, messages, s.opts)
	if err != nil {
		s.log.Warn("scoring call failed, using zero score", zap.Error(err))
		return models.DefaultResumeScore()
	}

	score, err := parseScoreResponse(response)
	if err != nil {
		s.log.Warn("scoring response unusable, using zero score",
			zap.Error(err),
			zap.String("response", truncate(response, 300)))
		return models.DefaultResumeScore()
	}

	return score
}

// parseScoreResponse validates that the model returned a total and all six
// dimension sub-records before decoding; anything less falls back whole.
func parseScoreResponse(response string) (*models.ResumeScore, error) {
	cleaned := stripCodeFence(response)
	if !gjson.Valid(cleaned) {
		return nil, errors.New("model response is not valid JSON")
	}

	root := gjson.Parse(cleaned)
	if !root.IsObject() {
		return nil, errors.New("model response is not a JSON object")
	}
	if !root.Get("total_score").Exists() {
		return nil, errors.New("model response is missing total_score")
	}

	details := root.Get("score_details")
	if !details.IsObject() {
		return nil, errors.New("model response is missing score_details")
	}
	for _, dim := range scoreDimensions {
		if !details.Get(dim).IsObject() {
			return nil, fmt.Errorf("model response is missing dimension %q", dim)
		}
	}

	var score models.ResumeScore
	if err := json.Unmarshal([]byte(cleaned), &score); err != nil {
		return nil, fmt.Errorf("failed to decode score response: %w", err)
	}

	return &score, nil
}
