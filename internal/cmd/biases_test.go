package cmd

import (
	"strings"
	"testing"
)

func TestBiasesCommand(t *testing.T) {
	output, err := executeCommand(t, "biases")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if !strings.Contains(output, "confirmation-bias") {
		t.Errorf("Output should contain confirmation-bias, got:\n%s", output)
	}
	if !strings.Contains(output, "Confirmation Bias") {
		t.Errorf("Output should contain the bias name, got:\n%s", output)
	}
	if !strings.Contains(output, "Definition") {
		t.Errorf("Output should contain the Definition column header, got:\n%s", output)
	}
}

func TestBiasesByCategory(t *testing.T) {
	output, err := executeCommand(t, "biases", "--category", "memory")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	for _, id := range []string{"hindsight-bias", "recency-bias", "peak-end-rule"} {
		if !strings.Contains(output, id) {
			t.Errorf("Output should contain %q, got:\n%s", id, output)
		}
	}
	if strings.Contains(output, "confirmation-bias") {
		t.Errorf("Output should not contain biases from other categories, got:\n%s", output)
	}
}

func TestBiasesUnknownCategory(t *testing.T) {
	output, err := executeCommand(t, "biases", "--category", "astrology")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if !strings.Contains(output, "No biases found") {
		t.Errorf("Output should report no matches, got:\n%s", output)
	}
}
