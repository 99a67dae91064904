package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyFixture(t *testing.T, loops, emotions, biases, traits string) *VerifyResult {
	t.Helper()
	dir := t.TempDir()
	writeDataset(t, dir, loops, emotions, biases, traits)
	atlas, err := LoadDir(dir)
	require.NoError(t, err)
	return atlas.Verify()
}

func findingMessages(findings []Finding) string {
	var sb strings.Builder
	for _, f := range findings {
		sb.WriteString(f.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestVerifyEmbeddedDatasetIsClean(t *testing.T) {
	result := Default().Verify()
	assert.Empty(t, result.Findings,
		"embedded dataset must verify clean, got:\n%s", findingMessages(result.Findings))
}

func TestVerifyMinimalFixtureIsClean(t *testing.T) {
	result := verifyFixture(t, minimalLoops, minimalEmotions, minimalBiases, minimalTraits)
	assert.Empty(t, result.Findings, findingMessages(result.Findings))
	assert.False(t, result.HasErrors())
	assert.Empty(t, result.Error())
}

func TestVerifyDuplicateLoopID(t *testing.T) {
	loops := strings.Replace(minimalLoops, `"id": 2,`, `"id": 1,`, 1)
	result := verifyFixture(t, loops, minimalEmotions, minimalBiases, minimalTraits)

	require.True(t, result.HasErrors())
	assert.Contains(t, findingMessages(result.Errors()), "duplicate loop id")
	assert.Contains(t, result.Error(), "verification failed")
}

func TestVerifyScoreOutOfRange(t *testing.T) {
	loops := strings.Replace(minimalLoops, `"evidence_strength": 0.9`, `"evidence_strength": 1.9`, 1)
	result := verifyFixture(t, loops, minimalEmotions, minimalBiases, minimalTraits)

	require.True(t, result.HasErrors())
	assert.Contains(t, findingMessages(result.Errors()), "evidence_strength")
	assert.Contains(t, findingMessages(result.Errors()), "outside range [0, 1]")
}

func TestVerifyDifficultyOutOfRange(t *testing.T) {
	loops := strings.Replace(minimalLoops, `"difficulty": 3,`, `"difficulty": 0,`, 1)
	result := verifyFixture(t, loops, minimalEmotions, minimalBiases, minimalTraits)

	require.True(t, result.HasErrors())
	assert.Contains(t, findingMessages(result.Errors()), "difficulty")
}

func TestVerifyMetadataDriftIsWarning(t *testing.T) {
	loops := strings.Replace(minimalLoops, `"total_loops": 2`, `"total_loops": 7`, 1)
	result := verifyFixture(t, loops, minimalEmotions, minimalBiases, minimalTraits)

	assert.False(t, result.HasErrors(), "drift must not be an error")
	require.NotEmpty(t, result.Warnings())
	assert.Contains(t, findingMessages(result.Warnings()), "total_loops")
	assert.Empty(t, result.Error(), "Error() reports only error severity")
}

func TestVerifyUnknownOriginIsWarning(t *testing.T) {
	loops := strings.Replace(minimalLoops, `"origin": "social"`, `"origin": "martian"`, 1)
	result := verifyFixture(t, loops, minimalEmotions, minimalBiases, minimalTraits)

	assert.False(t, result.HasErrors())
	assert.Contains(t, findingMessages(result.Warnings()), `unknown origin "martian"`)
}

func TestVerifyDanglingCrossReferences(t *testing.T) {
	biases := `{
  "_metadata": {"version": "0.0.1", "count": 1},
  "test-bias": {"name": "Test Bias", "definition": "d", "category": "belief",
    "related_biases": ["no-such-bias"], "related_loops": [99]}
}`
	result := verifyFixture(t, minimalLoops, minimalEmotions, biases, minimalTraits)

	assert.False(t, result.HasErrors(), "dangling references are warnings")
	messages := findingMessages(result.Warnings())
	assert.Contains(t, messages, `related bias "no-such-bias" does not exist`)
	assert.Contains(t, messages, "related loop 99 does not exist")
}

func TestVerifyEmptyNames(t *testing.T) {
	loops := strings.Replace(minimalLoops, `"name": "Test Loop Two",`, `"name": "",`, 1)
	result := verifyFixture(t, loops, minimalEmotions, minimalBiases, minimalTraits)

	require.True(t, result.HasErrors())
	assert.Contains(t, findingMessages(result.Errors()), "empty name")
}
