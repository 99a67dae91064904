package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harrison/loopatlas/taxonomy"
)

// buildMarkdown renders the full atlas as a GitHub-flavored markdown
// report: overview, per-category loop tables, then the emotion, bias,
// and trait catalogs.
func (e *Exporter) buildMarkdown(manifest Manifest) string {
	var sb strings.Builder

	meta := e.atlas.Metadata()
	stats := e.atlas.Stats()

	fmt.Fprintf(&sb, "# %s\n\n", meta.Name)
	if meta.Description != "" {
		sb.WriteString(meta.Description + "\n\n")
	}
	fmt.Fprintf(&sb, "> Dataset version %s, updated %s. Export `%s` taken %s.\n\n",
		meta.Version, meta.Updated, manifest.ExportID, manifest.CreatedAt)

	sb.WriteString("## Overview\n\n")
	fmt.Fprintf(&sb, "- **Loops:** %d across %d categories\n", stats.TotalLoops, stats.TotalCategories)
	fmt.Fprintf(&sb, "- **Emotions:** %d\n", manifest.Counts.Emotions)
	fmt.Fprintf(&sb, "- **Cognitive biases:** %d\n", manifest.Counts.Biases)
	fmt.Fprintf(&sb, "- **Personality traits:** %d\n", manifest.Counts.Traits)
	fmt.Fprintf(&sb, "- **Average intervention difficulty:** %.1f\n\n", stats.AverageInterventionDifficulty)

	sb.WriteString("### Loops by origin\n\n")
	sb.WriteString("| Origin | Loops |\n|---|---|\n")
	for _, origin := range sortedKeys(stats.LoopsByOrigin) {
		fmt.Fprintf(&sb, "| %s | %d |\n", origin, stats.LoopsByOrigin[origin])
	}
	sb.WriteString("\n")

	sb.WriteString("## Categories\n\n")
	for _, category := range e.atlas.Categories() {
		fmt.Fprintf(&sb, "### %d. %s\n\n", category.Number, category.Name)
		if category.Description != "" {
			sb.WriteString(category.Description + "\n\n")
		}
		sb.WriteString("| ID | Loop | Origin | Mutability | Difficulty |\n|---|---|---|---|---|\n")
		for _, loop := range category.Loops {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | %d |\n",
				loop.ID, loop.Name, loop.Classification.Origin,
				loop.Classification.Mutability, loop.Intervention.Difficulty)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Emotions\n\n")
	for _, level := range []string{taxonomy.LevelPrimary, taxonomy.LevelSecondary, taxonomy.LevelTertiary} {
		emotions := e.atlas.EmotionsByLevel(level)
		if len(emotions) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "### %s\n\n", titleCase(level))
		sb.WriteString("| Emotion | Valence | Arousal | Related |\n|---|---|---|---|\n")
		for _, emotion := range emotions {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				emotion.Name, emotion.Valence, emotion.Arousal, strings.Join(emotion.Related, ", "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Cognitive Biases\n\n")
	for _, category := range biasCategories(e.atlas.Biases()) {
		fmt.Fprintf(&sb, "### %s\n\n", titleCase(category))
		sb.WriteString("| Bias | Definition |\n|---|---|\n")
		for _, bias := range e.atlas.BiasesByCategory(category) {
			fmt.Fprintf(&sb, "| %s | %s |\n", bias.Name, bias.Definition)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Personality Traits\n\n")
	sb.WriteString("| Trait | Dimension | Definition |\n|---|---|---|\n")
	for _, trait := range e.atlas.Traits() {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", trait.Name, trait.Dimension, trait.Definition)
	}
	sb.WriteString("\n")

	return sb.String()
}

// sortedKeys returns the map keys in alphabetical order.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// biasCategories returns the distinct bias categories in alphabetical
// order.
func biasCategories(biases []taxonomy.CognitiveBias) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, bias := range biases {
		if !seen[bias.Category] {
			seen[bias.Category] = true
			categories = append(categories, bias.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// titleCase uppercases the first letter of an ASCII word.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
