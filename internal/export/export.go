// Package export writes atlas snapshots to distributable artifacts.
// Every artifact carries a manifest identifying the export, the dataset
// version it was taken from, and the record counts it contains.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/loopatlas/internal/filelock"
	"github.com/harrison/loopatlas/internal/logger"
	"github.com/harrison/loopatlas/taxonomy"
)

// Supported artifact formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatCSV      = "csv"
	FormatSQLite   = "sqlite"
)

// Formats lists every supported export format in display order.
var Formats = []string{FormatJSON, FormatMarkdown, FormatHTML, FormatCSV, FormatSQLite}

// IsValidFormat reports whether format names a supported export format.
func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if format == f {
			return true
		}
	}
	return false
}

// DefaultFileName returns the artifact file name used when the caller
// does not choose one.
func DefaultFileName(format string) string {
	switch format {
	case FormatMarkdown:
		return "loop-atlas.md"
	case FormatHTML:
		return "loop-atlas.html"
	case FormatCSV:
		return "loop-atlas.csv"
	case FormatSQLite:
		return "loop-atlas.db"
	default:
		return "loop-atlas.json"
	}
}

// Counts records how many entries of each kind an artifact contains.
type Counts struct {
	Loops      int `json:"loops"`      // Flattened loops across all categories
	Categories int `json:"categories"` // Behavioral loop categories
	Emotions   int `json:"emotions"`   // Emotions across all levels
	Biases     int `json:"biases"`     // Cognitive biases
	Traits     int `json:"traits"`     // Personality traits
}

// Manifest identifies a single export artifact.
type Manifest struct {
	ExportID       string `json:"export_id"`       // Unique id for this export run
	Format         string `json:"format"`          // Artifact format
	CreatedAt      string `json:"created_at"`      // RFC 3339 UTC timestamp
	DatasetName    string `json:"dataset_name"`    // From dataset metadata
	DatasetVersion string `json:"dataset_version"` // From dataset metadata
	Counts         Counts `json:"counts"`          // Record counts in the artifact
}

// Exporter writes snapshots of one atlas.
type Exporter struct {
	atlas *taxonomy.Atlas
	log   logger.Logger

	Compact bool // Write JSON artifacts without indentation
}

// New creates an Exporter for the given atlas. A nil log discards
// progress messages.
func New(atlas *taxonomy.Atlas, log logger.Logger) *Exporter {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Exporter{atlas: atlas, log: log}
}

// Export writes the atlas to path in the given format and returns the
// artifact manifest. Concurrent exports to the same path serialize on
// a lock file next to the target.
func (e *Exporter) Export(format, path string) (Manifest, error) {
	if !IsValidFormat(format) {
		return Manifest{}, fmt.Errorf("unknown export format %q, must be one of: %v", format, Formats)
	}

	manifest := e.newManifest(format)

	var err error
	switch format {
	case FormatJSON:
		err = e.writeJSON(path, manifest)
	case FormatMarkdown:
		err = filelock.LockAndWrite(path, []byte(e.buildMarkdown(manifest)))
	case FormatHTML:
		err = e.writeHTML(path, manifest)
	case FormatCSV:
		err = e.writeCSV(path)
	case FormatSQLite:
		err = e.writeSQLite(path, manifest)
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("export %s: %w", format, err)
	}

	e.log.LogInfo(fmt.Sprintf("exported %d loops to %s (%s)", manifest.Counts.Loops, path, format))
	return manifest, nil
}

// newManifest stamps a manifest for an export starting now.
func (e *Exporter) newManifest(format string) Manifest {
	meta := e.atlas.Metadata()
	return Manifest{
		ExportID:       uuid.New().String(),
		Format:         format,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		DatasetName:    meta.Name,
		DatasetVersion: meta.Version,
		Counts: Counts{
			Loops:      len(e.atlas.AllLoops()),
			Categories: len(e.atlas.Categories()),
			Emotions:   len(e.atlas.Emotions()),
			Biases:     len(e.atlas.Biases()),
			Traits:     len(e.atlas.Traits()),
		},
	}
}

// snapshotDocument is the JSON artifact layout.
type snapshotDocument struct {
	Manifest   Manifest                      `json:"manifest"`
	Metadata   taxonomy.DatasetMetadata      `json:"metadata"`
	Categories []taxonomy.BehavioralCategory `json:"categories"`
	Emotions   []taxonomy.Emotion            `json:"emotions"`
	Biases     []taxonomy.CognitiveBias      `json:"biases"`
	Traits     []taxonomy.PersonalityTrait   `json:"traits"`
	Stats      taxonomy.AtlasStats           `json:"stats"`
}

func (e *Exporter) writeJSON(path string, manifest Manifest) error {
	doc := snapshotDocument{
		Manifest:   manifest,
		Metadata:   e.atlas.Metadata(),
		Categories: e.atlas.Categories(),
		Emotions:   e.atlas.Emotions(),
		Biases:     e.atlas.Biases(),
		Traits:     e.atlas.Traits(),
		Stats:      e.atlas.Stats(),
	}

	var data []byte
	var err error
	if e.Compact {
		data, err = json.Marshal(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	return filelock.LockAndWrite(path, data)
}
