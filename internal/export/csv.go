package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/harrison/loopatlas/internal/filelock"
)

// csvHeader is the flattened loop row layout. One row per loop, with
// the owning category denormalized onto each row.
var csvHeader = []string{
	"id", "name", "category_id", "category_name",
	"origin", "modality", "mutability", "valence",
	"evidence_strength", "social_reinforcement", "amplification_potential", "change_resistance",
	"difficulty", "approach", "tags",
}

func (e *Exporter) writeCSV(path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, category := range e.atlas.Categories() {
		for _, loop := range category.Loops {
			row := []string{
				strconv.Itoa(loop.ID),
				loop.Name,
				category.ID,
				category.Name,
				loop.Classification.Origin,
				loop.Classification.Modality,
				loop.Classification.Mutability,
				strings.Join(loop.Classification.Valence, "|"),
				formatScore(loop.Scores.EvidenceStrength),
				formatScore(loop.Scores.SocialReinforcement),
				formatScore(loop.Scores.AmplificationPotential),
				formatScore(loop.Scores.ChangeResistance),
				strconv.Itoa(loop.Intervention.Difficulty),
				loop.Intervention.Approach,
				strings.Join(loop.Metadata.Tags, "|"),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write csv row for loop %d: %w", loop.ID, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return filelock.LockAndWrite(path, buf.Bytes())
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
