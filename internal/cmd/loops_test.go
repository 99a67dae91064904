package cmd

import (
	"strings"
	"testing"
)

// Every loop name in the dataset ends in "Loop" and the table headers
// do not contain the word, so counting occurrences counts rows.
func countLoopRows(output string) int {
	return strings.Count(output, "Loop")
}

func TestLoopsCommandListsAll(t *testing.T) {
	output, err := executeCommand(t, "loops")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if got := countLoopRows(output); got != 26 {
		t.Errorf("Expected 26 loop rows, got %d", got)
	}
	if !strings.Contains(output, "Threat Vigilance Loop") {
		t.Errorf("Output should contain the first loop, got:\n%s", output)
	}
	if !strings.Contains(output, "Legacy Accumulation Loop") {
		t.Errorf("Output should contain the last loop, got:\n%s", output)
	}
}

func TestLoopsByCategory(t *testing.T) {
	output, err := executeCommand(t, "loops", "--category", "digital-cognitive")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if got := countLoopRows(output); got != 5 {
		t.Errorf("Expected 5 loop rows for digital-cognitive, got %d", got)
	}
	if !strings.Contains(output, "Doomscrolling Loop") {
		t.Errorf("Output should contain Doomscrolling Loop, got:\n%s", output)
	}
	if !strings.Contains(output, "Curated Comparison Loop") {
		t.Errorf("Output should contain Curated Comparison Loop, got:\n%s", output)
	}
	if strings.Contains(output, "Threat Vigilance Loop") {
		t.Errorf("Output should not contain loops from other categories, got:\n%s", output)
	}
}

func TestLoopsByCategoryNotFound(t *testing.T) {
	_, err := executeCommand(t, "loops", "--category", "nonexistent")
	if err == nil {
		t.Fatal("Expected error for unknown category, got nil")
	}
	if !strings.Contains(err.Error(), `category "nonexistent" not found`) {
		t.Errorf("Error should name the unknown category, got: %v", err)
	}
}

func TestLoopsByOrigin(t *testing.T) {
	output, err := executeCommand(t, "loops", "--origin", "social")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	// Five loops in the social category plus the socially driven
	// Curated Comparison Loop filed under digital-cognitive.
	if got := countLoopRows(output); got != 6 {
		t.Errorf("Expected 6 loop rows for origin social, got %d", got)
	}
	if !strings.Contains(output, "Curated Comparison Loop") {
		t.Errorf("Output should contain the crossover loop, got:\n%s", output)
	}
	if strings.Contains(output, "Doomscrolling Loop") {
		t.Errorf("Output should not contain digital-origin loops, got:\n%s", output)
	}
}

func TestLoopsByTag(t *testing.T) {
	output, err := executeCommand(t, "loops", "--tag", "trust")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if got := countLoopRows(output); got != 2 {
		t.Errorf("Expected 2 loop rows for tag trust, got %d", got)
	}
	if !strings.Contains(output, "Approval-Seeking Loop") {
		t.Errorf("Output should contain Approval-Seeking Loop, got:\n%s", output)
	}
	if !strings.Contains(output, "Reciprocity Debt Loop") {
		t.Errorf("Output should contain Reciprocity Debt Loop, got:\n%s", output)
	}
}

func TestLoopsSearch(t *testing.T) {
	output, err := executeCommand(t, "loops", "--search", "scroll")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if got := countLoopRows(output); got != 2 {
		t.Errorf("Expected 2 loop rows for search scroll, got %d", got)
	}
	if !strings.Contains(output, "Doomscrolling Loop") {
		t.Errorf("Output should contain Doomscrolling Loop, got:\n%s", output)
	}
	if !strings.Contains(output, "Curated Comparison Loop") {
		t.Errorf("Output should contain Curated Comparison Loop, got:\n%s", output)
	}
}

func TestLoopsSearchNoMatches(t *testing.T) {
	output, err := executeCommand(t, "loops", "--search", "zzzzzz")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}
	if !strings.Contains(output, "No loops found") {
		t.Errorf("Output should report no matches, got:\n%s", output)
	}
}

func TestLoopsFiltersMutuallyExclusive(t *testing.T) {
	_, err := executeCommand(t, "loops", "--origin", "social", "--tag", "trust")
	if err == nil {
		t.Fatal("Expected error for combined filters, got nil")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("Error should mention mutual exclusion, got: %v", err)
	}
}

func TestLoopsLimit(t *testing.T) {
	output, err := executeCommand(t, "loops", "--limit", "5")
	if err != nil {
		t.Fatalf("Execute() returned error: %v", err)
	}

	if got := countLoopRows(output); got != 5 {
		t.Errorf("Expected 5 loop rows with --limit 5, got %d", got)
	}
	if !strings.Contains(output, "Threat Vigilance Loop") {
		t.Errorf("Limit should keep the leading rows, got:\n%s", output)
	}
}

func TestLoopsNegativeLimit(t *testing.T) {
	_, err := executeCommand(t, "loops", "--limit", "-1")
	if err == nil {
		t.Fatal("Expected error for negative limit, got nil")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Error should mention invalid configuration, got: %v", err)
	}
}
