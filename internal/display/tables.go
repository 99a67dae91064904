// Package display formats atlas records for terminal output.
//
// Formatters return rows as []string so callers control the writer.
// Color is applied only when the caller passes colorOutput true; the
// cmd layer decides that from TTY detection.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/loopatlas/taxonomy"
)

// FormatCategoryTable formats categories as table rows with loop counts.
func FormatCategoryTable(categories []taxonomy.BehavioralCategory, colorOutput bool) []string {
	if len(categories) == 0 {
		return []string{"No categories found"}
	}

	widths := map[string]int{
		"number": 3, // "No."
		"id":     2, // "ID"
		"name":   4, // "Name"
		"loops":  5, // "Loops"
	}
	for _, category := range categories {
		if len(category.ID) > widths["id"] {
			widths["id"] = len(category.ID)
		}
		if len(category.Name) > widths["name"] {
			widths["name"] = len(category.Name)
		}
	}

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		widths["number"], "No.",
		widths["id"], "ID",
		widths["name"], "Name",
		widths["loops"], "Loops")

	rows := []string{header, strings.Repeat("-", len(header))}

	for _, category := range categories {
		row := fmt.Sprintf("%-*d  %-*s  %-*s  %-*d",
			widths["number"], category.Number,
			widths["id"], category.ID,
			widths["name"], category.Name,
			widths["loops"], len(category.Loops))
		if colorOutput {
			row = color.CyanString(row)
		}
		rows = append(rows, row)
	}

	return rows
}

// FormatLoopTable formats loops as table rows. When color is enabled,
// rows are colored by intervention difficulty: green through 3, yellow
// through 6, red above.
func FormatLoopTable(loops []taxonomy.BehavioralLoop, colorOutput bool) []string {
	if len(loops) == 0 {
		return []string{"No loops found"}
	}

	widths := map[string]int{
		"id":         2,  // "ID"
		"name":       4,  // "Name"
		"origin":     6,  // "Origin"
		"mutability": 10, // "Mutability"
		"diff":       4,  // "Diff"
		"tags":       30,
	}
	for _, loop := range loops {
		if len(loop.Name) > widths["name"] {
			widths["name"] = len(loop.Name)
		}
		if len(loop.Classification.Origin) > widths["origin"] {
			widths["origin"] = len(loop.Classification.Origin)
		}
	}

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s  %-*s",
		widths["id"], "ID",
		widths["name"], "Name",
		widths["origin"], "Origin",
		widths["mutability"], "Mutability",
		widths["diff"], "Diff",
		widths["tags"], "Tags")

	rows := []string{header, strings.Repeat("-", len(header))}

	for _, loop := range loops {
		tags := strings.Join(loop.Metadata.Tags, ", ")
		if len(tags) > widths["tags"] {
			tags = tags[:widths["tags"]-3] + "..."
		}

		row := fmt.Sprintf("%-*d  %-*s  %-*s  %-*s  %-*d  %-*s",
			widths["id"], loop.ID,
			widths["name"], loop.Name,
			widths["origin"], loop.Classification.Origin,
			widths["mutability"], loop.Classification.Mutability,
			widths["diff"], loop.Intervention.Difficulty,
			widths["tags"], tags)

		if colorOutput {
			switch {
			case loop.Intervention.Difficulty <= 3:
				row = color.GreenString(row)
			case loop.Intervention.Difficulty <= 6:
				row = color.YellowString(row)
			default:
				row = color.RedString(row)
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// FormatEmotionTable formats emotions as table rows. When color is
// enabled, rows are colored by valence: positive green, negative red,
// anything else yellow.
func FormatEmotionTable(emotions []taxonomy.Emotion, colorOutput bool) []string {
	if len(emotions) == 0 {
		return []string{"No emotions found"}
	}

	widths := map[string]int{
		"id":      2, // "ID"
		"name":    4, // "Name"
		"level":   9, // "secondary"
		"valence": 8, // "positive"
		"arousal": 7, // "Arousal"
	}
	for _, emotion := range emotions {
		if len(emotion.ID) > widths["id"] {
			widths["id"] = len(emotion.ID)
		}
		if len(emotion.Name) > widths["name"] {
			widths["name"] = len(emotion.Name)
		}
	}

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s",
		widths["id"], "ID",
		widths["name"], "Name",
		widths["level"], "Level",
		widths["valence"], "Valence",
		widths["arousal"], "Arousal")

	rows := []string{header, strings.Repeat("-", len(header))}

	for _, emotion := range emotions {
		row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s",
			widths["id"], emotion.ID,
			widths["name"], emotion.Name,
			widths["level"], emotion.Level,
			widths["valence"], emotion.Valence,
			widths["arousal"], emotion.Arousal)

		if colorOutput {
			switch emotion.Valence {
			case "positive":
				row = color.GreenString(row)
			case "negative":
				row = color.RedString(row)
			default:
				row = color.YellowString(row)
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// FormatBiasTable formats biases as table rows with truncated definitions.
func FormatBiasTable(biases []taxonomy.CognitiveBias, colorOutput bool) []string {
	if len(biases) == 0 {
		return []string{"No biases found"}
	}

	widths := map[string]int{
		"id":         2,  // "ID"
		"name":       4,  // "Name"
		"category":   8,  // "Category"
		"definition": 50,
	}
	for _, bias := range biases {
		if len(bias.ID) > widths["id"] {
			widths["id"] = len(bias.ID)
		}
		if len(bias.Name) > widths["name"] {
			widths["name"] = len(bias.Name)
		}
	}

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		widths["id"], "ID",
		widths["name"], "Name",
		widths["category"], "Category",
		widths["definition"], "Definition")

	rows := []string{header, strings.Repeat("-", len(header))}

	for _, bias := range biases {
		definition := bias.Definition
		if len(definition) > widths["definition"] {
			definition = definition[:widths["definition"]-3] + "..."
		}

		row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
			widths["id"], bias.ID,
			widths["name"], bias.Name,
			widths["category"], bias.Category,
			widths["definition"], definition)
		if colorOutput {
			row = color.CyanString(row)
		}
		rows = append(rows, row)
	}

	return rows
}

// FormatTraitTable formats traits as table rows with truncated definitions.
func FormatTraitTable(traits []taxonomy.PersonalityTrait, colorOutput bool) []string {
	if len(traits) == 0 {
		return []string{"No traits found"}
	}

	widths := map[string]int{
		"id":         2,  // "ID"
		"name":       4,  // "Name"
		"dimension":  9,  // "Dimension"
		"definition": 50,
	}
	for _, trait := range traits {
		if len(trait.ID) > widths["id"] {
			widths["id"] = len(trait.ID)
		}
		if len(trait.Name) > widths["name"] {
			widths["name"] = len(trait.Name)
		}
		if len(trait.Dimension) > widths["dimension"] {
			widths["dimension"] = len(trait.Dimension)
		}
	}

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
		widths["id"], "ID",
		widths["name"], "Name",
		widths["dimension"], "Dimension",
		widths["definition"], "Definition")

	rows := []string{header, strings.Repeat("-", len(header))}

	for _, trait := range traits {
		definition := trait.Definition
		if len(definition) > widths["definition"] {
			definition = definition[:widths["definition"]-3] + "..."
		}

		row := fmt.Sprintf("%-*s  %-*s  %-*s  %-*s",
			widths["id"], trait.ID,
			widths["name"], trait.Name,
			widths["dimension"], trait.Dimension,
			widths["definition"], definition)
		if colorOutput {
			row = color.CyanString(row)
		}
		rows = append(rows, row)
	}

	return rows
}

// FormatLoopDetail formats one loop as a full card: the cycle, its
// classification, scores, and intervention guidance.
func FormatLoopDetail(loop taxonomy.BehavioralLoop, colorOutput bool) []string {
	title := fmt.Sprintf("Loop %d: %s", loop.ID, loop.Name)
	if colorOutput {
		title = color.New(color.Bold).Sprint(title)
	}

	label := func(s string) string {
		if colorOutput {
			return color.CyanString(s)
		}
		return s
	}

	rows := []string{
		title,
		strings.Repeat("-", len(fmt.Sprintf("Loop %d: %s", loop.ID, loop.Name))),
		fmt.Sprintf("%s %s", label("Trigger:  "), loop.TriggerCondition),
		fmt.Sprintf("%s %s", label("Event:    "), loop.Event),
		fmt.Sprintf("%s %s", label("Behavior: "), loop.Behavior),
		fmt.Sprintf("%s %s", label("Outcome:  "), loop.Outcome),
		"",
		fmt.Sprintf("%s %s", label("Mechanism:"), loop.Mechanism),
		fmt.Sprintf("%s origin=%s modality=%s mutability=%s valence=%s",
			label("Class:    "),
			loop.Classification.Origin,
			loop.Classification.Modality,
			loop.Classification.Mutability,
			strings.Join(loop.Classification.Valence, ",")),
		fmt.Sprintf("%s evidence=%.2f social=%.2f amplification=%.2f resistance=%.2f",
			label("Scores:   "),
			loop.Scores.EvidenceStrength,
			loop.Scores.SocialReinforcement,
			loop.Scores.AmplificationPotential,
			loop.Scores.ChangeResistance),
		"",
		fmt.Sprintf("%s %d/10", label("Difficulty:"), loop.Intervention.Difficulty),
		fmt.Sprintf("%s %s", label("Approach:  "), loop.Intervention.Approach),
		fmt.Sprintf("%s %s", label("First step:"), loop.Intervention.FirstStep),
	}

	if len(loop.Metadata.Tags) > 0 {
		rows = append(rows, fmt.Sprintf("%s %s", label("Tags:      "),
			strings.Join(loop.Metadata.Tags, ", ")))
	}
	if len(loop.Metadata.RelatedArchetypes) > 0 {
		rows = append(rows, fmt.Sprintf("%s %s", label("Archetypes:"),
			strings.Join(loop.Metadata.RelatedArchetypes, ", ")))
	}
	if len(loop.Metadata.RelatedFields) > 0 {
		rows = append(rows, fmt.Sprintf("%s %s", label("Fields:    "),
			strings.Join(loop.Metadata.RelatedFields, ", ")))
	}

	return rows
}

// FormatStats formats aggregate statistics. Breakdown counts are listed
// in descending order with ties broken alphabetically; the difficulty
// distribution is listed in ascending difficulty with a bar per loop.
func FormatStats(stats taxonomy.AtlasStats, colorOutput bool) []string {
	title := "Atlas Statistics"
	if colorOutput {
		title = color.New(color.Bold).Sprint(title)
	}

	rows := []string{
		title,
		strings.Repeat("-", len("Atlas Statistics")),
		fmt.Sprintf("Total loops:        %d", stats.TotalLoops),
		fmt.Sprintf("Total categories:   %d", stats.TotalCategories),
		fmt.Sprintf("Average difficulty: %.1f/10", stats.AverageInterventionDifficulty),
	}

	rows = append(rows, "", "Loops by origin:")
	rows = appendCountRows(rows, stats.LoopsByOrigin, colorOutput)

	rows = append(rows, "", "Loops by category:")
	rows = appendCountRows(rows, stats.LoopsByCategory, colorOutput)

	rows = append(rows, "", "Difficulty distribution:")
	for difficulty := 1; difficulty <= 10; difficulty++ {
		count, ok := stats.DifficultyDistribution[difficulty]
		if !ok {
			continue
		}
		row := fmt.Sprintf("  %2d  %s %d", difficulty, strings.Repeat("█", count), count)
		if colorOutput {
			row = color.CyanString(row)
		}
		rows = append(rows, row)
	}

	return rows
}

// appendCountRows renders one label-to-count breakdown, largest count
// first, ties alphabetical, labels padded to the longest.
func appendCountRows(rows []string, counts map[string]int, colorOutput bool) []string {
	type countRow struct {
		label string
		count int
	}
	sorted := make([]countRow, 0, len(counts))
	width := 0
	for label, count := range counts {
		sorted = append(sorted, countRow{label, count})
		if len(label) > width {
			width = len(label)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].label < sorted[j].label
	})

	for _, cr := range sorted {
		row := fmt.Sprintf("  %-*s %d", width+1, cr.label, cr.count)
		if colorOutput {
			row = color.CyanString(row)
		}
		rows = append(rows, row)
	}
	return rows
}
