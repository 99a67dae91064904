//go:build ignore
// +build ignore

// Demo script that walks the public taxonomy API against the embedded
// dataset. Run with: go run scripts/demo-atlas.go
package main

import (
	"fmt"
	"strings"

	"github.com/harrison/loopatlas/taxonomy"
)

func main() {
	atlas := taxonomy.Default()
	meta := atlas.Metadata()

	fmt.Println(strings.Repeat("=", 61))
	fmt.Printf("%s %s Demo\n", meta.Name, meta.Version)
	fmt.Println(strings.Repeat("=", 61))
	fmt.Println()

	// Demo 1: Categories
	banner("Demo 1: Categories")
	for _, category := range atlas.Categories() {
		fmt.Printf("%d. %-28s %2d loops\n", category.Number, category.Name, len(category.Loops))
	}
	fmt.Println()

	// Demo 2: Filters
	banner("Demo 2: Filters")
	fmt.Printf("Origin social:       %2d loops\n", len(atlas.LoopsByOrigin("social")))
	fmt.Printf("Tag attention:       %2d loops\n", len(atlas.LoopsByTag("attention")))
	fmt.Printf("Search \"scroll\":     %2d loops\n", len(atlas.SearchLoops("scroll")))
	for _, loop := range atlas.SearchLoops("scroll") {
		fmt.Printf("  %2d. %s\n", loop.ID, loop.Name)
	}
	fmt.Println()

	// Demo 3: One loop in full
	banner("Demo 3: One Loop in Full")
	if loop, ok := atlas.LoopByID(20); ok {
		fmt.Printf("Loop %d: %s\n", loop.ID, loop.Name)
		fmt.Printf("  Trigger:  %s\n", loop.TriggerCondition)
		fmt.Printf("  Event:    %s\n", loop.Event)
		fmt.Printf("  Behavior: %s\n", loop.Behavior)
		fmt.Printf("  Outcome:  %s\n", loop.Outcome)
		fmt.Printf("  Escape:   %s\n", loop.Intervention.FirstStep)
	}
	fmt.Println()

	// Demo 4: Statistics and verification
	banner("Demo 4: Statistics and Verification")
	stats := atlas.Stats()
	fmt.Printf("Loops: %d  Categories: %d  Average difficulty: %.1f/10\n",
		stats.TotalLoops, stats.TotalCategories, stats.AverageInterventionDifficulty)

	result := atlas.Verify()
	fmt.Printf("Verification: %d error(s), %d warning(s)\n",
		len(result.Errors()), len(result.Warnings()))
}

func banner(title string) {
	fmt.Println(strings.Repeat("-", 61))
	fmt.Println(title)
	fmt.Println(strings.Repeat("-", 61))
}
