package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/krinol/resume-analyzer/internal/llm"
	"github.com/krinol/resume-analyzer/internal/models"
)

// FieldExtractor derives the structured candidate record from resume text
// via one model call. It never returns an error: any transport or parse
// failure degrades to the default all-null record.
type FieldExtractor struct {
	client llm.Client
	opts   llm.Options
	log    *zap.Logger
}

func NewFieldExtractor(client llm.Client, opts llm.Options, log *zap.Logger) *FieldExtractor {
	return &FieldExtractor{client: client, opts: opts, log: log}
}

func (e *FieldExtractor) Extract(ctx context.Context, markdown string) *models.ExtractedInfo {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: extractionSystemPrompt},
		{Role: llm.RoleUser, Content: BuildExtractionPrompt(markdown)},
	}

	response, err := e.client.ChatCompletion(ctx, messages, e.opts)
	if err != nil {
		e.log.Warn("field extraction call failed, using default record", zap.Error(err))
		return models.DefaultExtractedInfo()
	}

	info, err := parseExtractionResponse(response)
	if err != nil {
		e.log.Warn("field extraction response unusable, using default record",
			zap.Error(err),
			zap.String("response", truncate(response, 300)))
		return models.DefaultExtractedInfo()
	}

	return info
}

// parseExtractionResponse maps the model's JSON output onto the fixed
// record shape. Individual fields degrade to null rather than failing the
// whole record; only a non-object top level is rejected.
func parseExtractionResponse(response string) (*models.ExtractedInfo, error) {
	cleaned := stripCodeFence(response)
	if !gjson.Valid(cleaned) {
		return nil, errors.New("model response is not valid JSON")
	}

	root := gjson.Parse(cleaned)
	if !root.IsObject() {
		return nil, errors.New("model response is not a JSON object")
	}

	info := models.DefaultExtractedInfo()
	info.Name = stringField(root, "name")
	info.SchoolName = stringField(root, "school_name")
	info.SchoolCity = stringField(root, "school_city")
	info.EducationLevel = stringField(root, "education_level")
	info.Major = stringField(root, "major")
	info.GraduationYear = stringField(root, "graduation_year")
	info.Phone = stringField(root, "phone")
	info.Email = stringField(root, "email")
	info.Summary = stringField(root, "summary")

	if arr := root.Get("work_experience"); arr.IsArray() {
		if err := json.Unmarshal([]byte(arr.Raw), &info.WorkExperience); err != nil {
			info.WorkExperience = []models.WorkExperience{}
		}
	}
	if arr := root.Get("projects"); arr.IsArray() {
		if err := json.Unmarshal([]byte(arr.Raw), &info.Projects); err != nil {
			info.Projects = []models.Project{}
		}
	}
	if arr := root.Get("skills"); arr.IsArray() {
		if err := json.Unmarshal([]byte(arr.Raw), &info.Skills); err != nil {
			info.Skills = []string{}
		}
	}

	return info, nil
}

// stringField reads a nullable string field; numbers are accepted and
// rendered as their string form (models return years both ways).
func stringField(root gjson.Result, key string) *string {
	value := root.Get(key)
	if !value.Exists() || value.Type == gjson.Null {
		return nil
	}
	s := strings.TrimSpace(value.String())
	if s == "" {
		return nil
	}
	return &s
}

func truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
