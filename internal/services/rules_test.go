package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scoring_rules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRuleData(t *testing.T) {
	t.Run("loads a valid rules file", func(t *testing.T) {
		path := writeRulesFile(t, `{
			"tier1_universities": ["清华大学", "北京大学"],
			"tier2_universities": ["深圳大学"],
			"major_rules": {
				"computer_related": {"core": ["计算机科学与技术"], "extended": ["数据科学"]}
			}
		}`)

		rules := LoadRuleData(path, zap.NewNop())

		assert.True(t, rules.IsTierOne("清华大学"))
		assert.True(t, rules.IsTierOne(" 北京大学 "))
		assert.False(t, rules.IsTierOne("深圳大学"))
		assert.True(t, rules.IsTierTwo("深圳大学"))
		assert.Equal(t, []string{"计算机科学与技术"}, rules.MajorRules["computer_related"].Core)
	})

	t.Run("missing file degrades to empty rule sets", func(t *testing.T) {
		rules := LoadRuleData("/nonexistent/rules.json", zap.NewNop())

		require.NotNil(t, rules)
		assert.Empty(t, rules.TierOneSchools)
		assert.False(t, rules.IsTierOne("清华大学"))
		assert.NotNil(t, rules.MajorRules)
	})

	t.Run("malformed file degrades to empty rule sets", func(t *testing.T) {
		path := writeRulesFile(t, `{"tier1_universities": [`)

		rules := LoadRuleData(path, zap.NewNop())

		require.NotNil(t, rules)
		assert.Empty(t, rules.TierOneSchools)
		assert.False(t, rules.IsTierTwo("深圳大学"))
	})
}

func TestShippedRulesFile(t *testing.T) {
	rules := LoadRuleData("../../configs/scoring_rules.json", zap.NewNop())

	assert.NotEmpty(t, rules.TierOneSchools)
	assert.NotEmpty(t, rules.TierTwoSchools)
	assert.Contains(t, rules.MajorRules, "computer_related")
	assert.Contains(t, rules.MajorRules, "related_stem")
	assert.True(t, rules.IsTierOne("清华大学"))
}
