package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const loopsTemplate = `{
  "metadata": {"name": "Fixture Atlas", "version": "0.0.1", "total_loops": 1, "total_categories": 1},
  "categories": [
    {
      "id": "fixture-category",
      "number": 1,
      "name": "Fixture Category",
      "description": "Fixture category",
      "loops": [
        {
          "id": 1,
          "name": "Fixture Loop",
          "trigger_condition": "a condition",
          "event": "an event",
          "behavior": "a behavior",
          "outcome": "an outcome",
          "classification": {"origin": "genetic", "modality": "cognitive", "mutability": "low", "valence": ["fear"]},
          "mechanism": "a mechanism",
          "scores": {"evidence_strength": 0.5, "social_reinforcement": 0.5, "amplification_potential": 0.5, "change_resistance": 0.5},
          "intervention": {"difficulty": %d, "approach": "an approach", "first_step": "a step"},
          "metadata": {"tags": ["alpha"]}
        }
      ]
    }
  ]
}`

// fixtureLoops renders a single-category loop document whose one loop
// carries the given intervention difficulty.
func fixtureLoops(difficulty int) string {
	return fmt.Sprintf(loopsTemplate, difficulty)
}

const emptyEmotions = `{"primary": [], "secondary": [], "tertiary": []}`

// danglingBiases references a loop id the fixture dataset does not
// contain, which verification reports as a warning.
const danglingBiases = `{
  "test-bias": {"name": "Test Bias", "definition": "d", "category": "belief", "related_loops": [99]}
}`

// writeDataset lays out a dataset directory from the given documents.
func writeDataset(t *testing.T, loops, emotions, biases, traits string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"loops.json":    loops,
		"emotions.json": emotions,
		"biases.json":   biases,
		"traits.json":   traits,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestValidateEmbeddedDataset(t *testing.T) {
	output, err := executeCommand(t, "validate")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if !strings.Contains(output, "Verifying embedded dataset:") {
		t.Errorf("Output should name the verification target, got:\n%s", output)
	}
	if !strings.Contains(output, "✓ 26 loops across 6 categories") {
		t.Errorf("Output should summarize the loop counts, got:\n%s", output)
	}
	if !strings.Contains(output, "✓ Dataset is valid!") {
		t.Errorf("Output should report a valid dataset, got:\n%s", output)
	}
}

func TestValidateDirectory(t *testing.T) {
	// The embedded documents also live on disk in the taxonomy package.
	output, err := executeCommand(t, "validate", filepath.Join("..", "..", "taxonomy", "data"))
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if !strings.Contains(output, "✓ Dataset is valid!") {
		t.Errorf("Output should report a valid dataset, got:\n%s", output)
	}
}

func TestValidateBrokenDataset(t *testing.T) {
	dir := writeDataset(t, fixtureLoops(99), emptyEmotions, `{}`, `{}`)

	output, err := executeCommand(t, "validate", dir)
	if err == nil {
		t.Fatal("Expected error for broken dataset, got nil")
	}
	if !strings.Contains(err.Error(), "verification failed with 1 error(s)") {
		t.Errorf("Error should count the findings, got: %v", err)
	}

	if !strings.Contains(output, "✗ Verification failed") {
		t.Errorf("Output should report the failure, got:\n%s", output)
	}
	if !strings.Contains(output, "intervention difficulty 99 outside range") {
		t.Errorf("Output should name the finding, got:\n%s", output)
	}
}

func TestValidateDatasetWithWarnings(t *testing.T) {
	dir := writeDataset(t, fixtureLoops(5), emptyEmotions, danglingBiases, `{}`)

	output, err := executeCommand(t, "validate", dir)
	if err != nil {
		t.Fatalf("Warnings should not fail verification, got: %v", err)
	}

	if !strings.Contains(output, "1 curation finding(s)") {
		t.Errorf("Output should contain the warning block, got:\n%s", output)
	}
	if !strings.Contains(output, `related loop 99 does not exist`) {
		t.Errorf("Output should name the dangling reference, got:\n%s", output)
	}
	if !strings.Contains(output, "✓ Dataset is valid with 1 warning(s)") {
		t.Errorf("Output should report validity with warnings, got:\n%s", output)
	}
}

func TestValidateMissingDirectory(t *testing.T) {
	output, err := executeCommand(t, "validate", filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatal("Expected error for missing directory, got nil")
	}
	if !strings.Contains(output, "✗ Failed to load dataset") {
		t.Errorf("Output should report the load failure, got:\n%s", output)
	}
}

func TestValidateWatchRequiresDirectory(t *testing.T) {
	_, err := executeCommand(t, "validate", "--watch")
	if err == nil {
		t.Fatal("Expected error for --watch without a directory, got nil")
	}
	if !strings.Contains(err.Error(), "--watch requires a dataset directory") {
		t.Errorf("Error should explain the missing directory, got: %v", err)
	}
}
