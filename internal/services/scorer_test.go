package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krinol/resume-analyzer/internal/llm"
	"github.com/krinol/resume-analyzer/internal/models"
)

const validScoreResponse = `{
	"total_score": 23,
	"score_details": {
		"region": {"score": 3, "reason": "学校在一线城市"},
		"school_tier": {"score": 8, "reason": "一类院校"},
		"major_match": {"score": 6, "reason": "计算机相关核心专业"},
		"highlight": {"score": 2, "reason": "有校级竞赛获奖"},
		"experience": {"score": 2, "reason": "一段短期实习"},
		"quality": {"score": 2, "reason": "结构清晰"}
	}
}`

func testRules(t *testing.T) *RuleData {
	t.Helper()
	path := writeRulesFile(t, `{
		"tier1_universities": ["清华大学", "北京大学"],
		"tier2_universities": ["深圳大学"],
		"major_rules": {
			"computer_related": {"core": ["计算机科学与技术"], "extended": ["数据科学"]},
			"related_stem": {"core": ["数学"], "extended": ["物理学"]}
		}
	}`)
	return LoadRuleData(path, zap.NewNop())
}

func TestScorerScore(t *testing.T) {
	t.Run("parses a valid six dimension response", func(t *testing.T) {
		client := &stubModelClient{response: validScoreResponse}
		scorer := NewScorer(client, testRules(t), llm.Options{}, zap.NewNop())

		score := scorer.Score(context.Background(), "resume text", models.DefaultExtractedInfo())

		assert.Equal(t, 23, score.TotalScore)
		assert.Equal(t, 8, score.ScoreDetail.SchoolTier.Score)
		assert.Equal(t, "一类院校", score.ScoreDetail.SchoolTier.Reason)
		assert.Equal(t, score.TotalScore, score.ScoreDetail.Sum())

		assert.LessOrEqual(t, score.ScoreDetail.Region.Score, models.MaxRegionScore)
		assert.LessOrEqual(t, score.ScoreDetail.SchoolTier.Score, models.MaxSchoolTierScore)
		assert.LessOrEqual(t, score.ScoreDetail.MajorMatch.Score, models.MaxMajorMatchScore)
		assert.LessOrEqual(t, score.ScoreDetail.Highlight.Score, models.MaxHighlightScore)
		assert.LessOrEqual(t, score.ScoreDetail.Experience.Score, models.MaxExperienceScore)
		assert.LessOrEqual(t, score.ScoreDetail.Quality.Score, models.MaxQualityScore)
	})

	t.Run("fenced response parses the same way", func(t *testing.T) {
		client := &stubModelClient{response: "```json\n" + validScoreResponse + "\n```"}
		scorer := NewScorer(client, testRules(t), llm.Options{}, zap.NewNop())

		score := scorer.Score(context.Background(), "resume text", models.DefaultExtractedInfo())

		assert.Equal(t, 23, score.TotalScore)
	})

	t.Run("missing dimension falls back to the zero score record", func(t *testing.T) {
		client := &stubModelClient{response: `{
			"total_score": 10,
			"score_details": {
				"region": {"score": 3, "reason": "ok"},
				"school_tier": {"score": 7, "reason": "ok"}
			}
		}`}
		scorer := NewScorer(client, testRules(t), llm.Options{}, zap.NewNop())

		score := scorer.Score(context.Background(), "resume text", models.DefaultExtractedInfo())

		assert.Equal(t, 0, score.TotalScore)
		assert.Equal(t, models.ScoreFailedReason, score.ScoreDetail.Region.Reason)
		assert.Equal(t, models.ScoreFailedReason, score.ScoreDetail.Quality.Reason)
	})

	t.Run("missing total_score falls back to the zero score record", func(t *testing.T) {
		client := &stubModelClient{response: `{"score_details": {}}`}
		scorer := NewScorer(client, testRules(t), llm.Options{}, zap.NewNop())

		score := scorer.Score(context.Background(), "resume text", models.DefaultExtractedInfo())

		assert.Equal(t, models.DefaultResumeScore(), score)
	})

	t.Run("transport failure falls back without a second attempt", func(t *testing.T) {
		client := &stubModelClient{err: errors.New("context deadline exceeded")}
		scorer := NewScorer(client, testRules(t), llm.Options{}, zap.NewNop())

		score := scorer.Score(context.Background(), "resume text", models.DefaultExtractedInfo())

		assert.Equal(t, models.DefaultResumeScore(), score)
		assert.Equal(t, 1, client.callCount())
	})

	t.Run("prompt carries the rubric material", func(t *testing.T) {
		client := &stubModelClient{response: validScoreResponse}
		scorer := NewScorer(client, testRules(t), llm.Options{}, zap.NewNop())

		name := "王五"
		info := models.DefaultExtractedInfo()
		info.Name = &name
		scorer.Score(context.Background(), "简历原文在这里", info)

		prompt := client.lastPrompt()
		assert.Contains(t, prompt, "清华大学、北京大学")
		assert.Contains(t, prompt, "深圳大学")
		assert.Contains(t, prompt, "计算机科学与技术")
		assert.Contains(t, prompt, "王五")
		assert.Contains(t, prompt, "简历原文在这里")
	})
}

func TestDefaultResumeScore(t *testing.T) {
	score := models.DefaultResumeScore()

	require.Equal(t, 0, score.TotalScore)
	assert.Equal(t, score.TotalScore, score.ScoreDetail.Sum())
	for _, d := range []models.DimensionScore{
		score.ScoreDetail.Region,
		score.ScoreDetail.SchoolTier,
		score.ScoreDetail.MajorMatch,
		score.ScoreDetail.Highlight,
		score.ScoreDetail.Experience,
		score.ScoreDetail.Quality,
	} {
		assert.Equal(t, 0, d.Score)
		assert.Equal(t, models.ScoreFailedReason, d.Reason)
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`  {"a":1}  `))
}
