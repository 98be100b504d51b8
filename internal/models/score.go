package models

// Maximum points per scoring dimension. Quality is the only dimension that
// accumulates multiple credited items up to its cap; highlight takes the
// single highest-scoring item and is never summed.
const (
	MaxRegionScore     = 5
	MaxSchoolTierScore = 10
	MaxMajorMatchScore = 8
	MaxHighlightScore  = 10
	MaxExperienceScore = 10
	MaxQualityScore    = 3
)

// ScoreFailedReason is the justification written into every dimension when
// scoring falls back to the zero-score record.
const ScoreFailedReason = "评分失败"

// DimensionScore is one rubric dimension: the awarded points and a short
// justification from the model.
type DimensionScore struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// ScoreDetail holds the six fixed rubric dimensions.
type ScoreDetail struct {
	Region     DimensionScore `json:"region"`
	SchoolTier DimensionScore `json:"school_tier"`
	MajorMatch DimensionScore `json:"major_match"`
	Highlight  DimensionScore `json:"highlight"`
	Experience DimensionScore `json:"experience"`
	Quality    DimensionScore `json:"quality"`
}

// ResumeScore is the scoring stage result. TotalScore is the sum of the six
// dimension scores.
type ResumeScore struct {
	TotalScore  int         `json:"total_score"`
	ScoreDetail ScoreDetail `json:"score_details"`
}

// Sum adds up the six dimension scores.
func (d ScoreDetail) Sum() int {
	return d.Region.Score + d.SchoolTier.Score + d.MajorMatch.Score +
		d.Highlight.Score + d.Experience.Score + d.Quality.Score
}

// DefaultResumeScore is the zero-score fallback substituted when scoring
// fails for any reason.
func DefaultResumeScore() *ResumeScore {
	failed := DimensionScore{Score: 0, Reason: ScoreFailedReason}
	return &ResumeScore{
		TotalScore: 0,
		ScoreDetail: ScoreDetail{
			Region:     failed,
			SchoolTier: failed,
			MajorMatch: failed,
			Highlight:  failed,
			Experience: failed,
			Quality:    failed,
		},
	}
}
