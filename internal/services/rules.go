package services

import (
	"encoding/json"
	"os"
	"strings"

	"go.uber.org/zap"
)

// MajorRule holds the keyword lists classifying majors into one bucket.
type MajorRule struct {
	Core     []string `json:"core"`
	Extended []string `json:"extended"`
}

// RuleData is the static lookup material used by the scorer: institution
// tier lists and major-classification keywords. It is loaded once at startup
// and read-only afterwards.
type RuleData struct {
	TierOneSchools []string             `json:"tier1_universities"`
	TierTwoSchools []string             `json:"tier2_universities"`
	MajorRules     map[string]MajorRule `json:"major_rules"`

	tierOneSet map[string]struct{}
	tierTwoSet map[string]struct{}
}

// LoadRuleData reads the scoring rules file. A missing or corrupt file is
// not fatal: the scorer runs with empty rule sets instead of blocking
// startup.
func LoadRuleData(path string, log *zap.Logger) *RuleData {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("scoring rules not loaded, continuing with empty rule sets",
			zap.String("path", path),
			zap.Error(err))
		return emptyRuleData()
	}

	var rules RuleData
	if err := json.Unmarshal(data, &rules); err != nil {
		log.Warn("scoring rules file is invalid, continuing with empty rule sets",
			zap.String("path", path),
			zap.Error(err))
		return emptyRuleData()
	}

	rules.buildIndexes()
	log.Info("scoring rules loaded",
		zap.Int("tier1_universities", len(rules.TierOneSchools)),
		zap.Int("tier2_universities", len(rules.TierTwoSchools)),
		zap.Int("major_buckets", len(rules.MajorRules)))

	return &rules
}

func emptyRuleData() *RuleData {
	rules := &RuleData{MajorRules: map[string]MajorRule{}}
	rules.buildIndexes()
	return rules
}

func (r *RuleData) buildIndexes() {
	r.tierOneSet = make(map[string]struct{}, len(r.TierOneSchools))
	for _, name := range r.TierOneSchools {
		r.tierOneSet[strings.TrimSpace(name)] = struct{}{}
	}
	r.tierTwoSet = make(map[string]struct{}, len(r.TierTwoSchools))
	for _, name := range r.TierTwoSchools {
		r.tierTwoSet[strings.TrimSpace(name)] = struct{}{}
	}
	if r.MajorRules == nil {
		r.MajorRules = map[string]MajorRule{}
	}
}

func (r *RuleData) IsTierOne(school string) bool {
	_, ok := r.tierOneSet[strings.TrimSpace(school)]
	return ok
}

func (r *RuleData) IsTierTwo(school string) bool {
	_, ok := r.tierTwoSet[strings.TrimSpace(school)]
	return ok
}
