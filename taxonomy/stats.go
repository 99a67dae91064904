package taxonomy

import "math"

// AtlasStats aggregates the loop dataset. TotalLoops and TotalCategories
// come from the declared metadata rather than a recount, so a drifted
// document reports its declared totals here; Verify flags the drift.
// The breakdown maps are recomputed from the documents.
type AtlasStats struct {
	TotalLoops                    int            `json:"total_loops"`
	TotalCategories               int            `json:"total_categories"`
	LoopsByOrigin                 map[string]int `json:"loops_by_origin"`
	LoopsByCategory               map[string]int `json:"loops_by_category"`
	DifficultyDistribution        map[int]int    `json:"difficulty_distribution"`
	AverageInterventionDifficulty float64        `json:"average_intervention_difficulty"`
}

// Stats computes aggregate statistics over the loop dataset. The mean
// intervention difficulty is rounded to one decimal place; an atlas with
// no loops reports zero.
func (a *Atlas) Stats() AtlasStats {
	stats := AtlasStats{
		TotalLoops:             a.loops.Metadata.TotalLoops,
		TotalCategories:        a.loops.Metadata.TotalCategories,
		LoopsByOrigin:          make(map[string]int),
		LoopsByCategory:        make(map[string]int),
		DifficultyDistribution: make(map[int]int),
	}

	for _, category := range a.loops.Categories {
		stats.LoopsByCategory[category.ID] = len(category.Loops)
	}

	difficultySum := 0
	for _, loop := range a.flat {
		stats.LoopsByOrigin[loop.Classification.Origin]++
		stats.DifficultyDistribution[loop.Intervention.Difficulty]++
		difficultySum += loop.Intervention.Difficulty
	}

	if len(a.flat) > 0 {
		mean := float64(difficultySum) / float64(len(a.flat))
		stats.AverageInterventionDifficulty = math.Round(mean*10) / 10
	}

	return stats
}
