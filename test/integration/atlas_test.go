package integration

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/loopatlas/internal/export"
	"github.com/harrison/loopatlas/taxonomy"
)

// TestVerifyExportPipeline walks the full pipeline: verify the embedded
// dataset, export it in every supported format, and check that each
// artifact lands with its own manifest.
func TestVerifyExportPipeline(t *testing.T) {
	atlas := taxonomy.Default()

	result := atlas.Verify()
	require.False(t, result.HasErrors(), "embedded dataset must verify cleanly: %s", result.Error())

	dir := t.TempDir()
	exporter := export.New(atlas, nil)

	seen := make(map[string]bool)
	for _, format := range export.Formats {
		path := filepath.Join(dir, export.DefaultFileName(format))

		manifest, err := exporter.Export(format, path)
		require.NoError(t, err, "export %s", format)

		info, err := os.Stat(path)
		require.NoError(t, err, "artifact for %s should exist", format)
		assert.Greater(t, info.Size(), int64(0), "artifact for %s should not be empty", format)

		assert.Equal(t, format, manifest.Format)
		assert.Equal(t, atlas.Metadata().Name, manifest.DatasetName)
		assert.Equal(t, atlas.Metadata().Version, manifest.DatasetVersion)
		assert.Equal(t, len(atlas.AllLoops()), manifest.Counts.Loops)

		assert.False(t, seen[manifest.ExportID], "export ids must be unique per artifact")
		seen[manifest.ExportID] = true
	}
}

// TestSQLiteArtifactRoundTrip exports the snapshot database and reads
// it back, comparing table contents against the in-memory accessors.
func TestSQLiteArtifactRoundTrip(t *testing.T) {
	atlas := taxonomy.Default()
	path := filepath.Join(t.TempDir(), "atlas.db")

	_, err := export.New(atlas, nil).Export(export.FormatSQLite, path)
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	counts := map[string]int{
		"loops":      len(atlas.AllLoops()),
		"categories": len(atlas.Categories()),
		"emotions":   len(atlas.Emotions()),
		"biases":     len(atlas.Biases()),
		"traits":     len(atlas.Traits()),
	}
	for table, want := range counts {
		var got int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&got))
		assert.Equal(t, want, got, "row count for %s", table)
	}

	loop, ok := atlas.LoopByID(1)
	require.True(t, ok)

	var name, origin string
	var difficulty int
	err = db.QueryRow("SELECT name, origin, difficulty FROM loops WHERE id = 1").
		Scan(&name, &origin, &difficulty)
	require.NoError(t, err)
	assert.Equal(t, loop.Name, name)
	assert.Equal(t, loop.Classification.Origin, origin)
	assert.Equal(t, loop.Intervention.Difficulty, difficulty)
}

// TestExportedJSONDocumentShape checks the JSON snapshot against the
// dataset it was taken from.
func TestExportedJSONDocumentShape(t *testing.T) {
	atlas := taxonomy.Default()
	path := filepath.Join(t.TempDir(), "atlas.json")

	manifest, err := export.New(atlas, nil).Export(export.FormatJSON, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Manifest export.Manifest `json:"manifest"`
		Stats    struct {
			TotalLoops int `json:"total_loops"`
		} `json:"stats"`
		Categories []json.RawMessage `json:"categories"`
		Emotions   []json.RawMessage `json:"emotions"`
		Biases     []json.RawMessage `json:"biases"`
		Traits     []json.RawMessage `json:"traits"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, manifest.ExportID, doc.Manifest.ExportID)
	assert.Equal(t, len(atlas.AllLoops()), doc.Stats.TotalLoops)
	assert.Len(t, doc.Categories, len(atlas.Categories()))
	assert.Len(t, doc.Emotions, len(atlas.Emotions()))
	assert.Len(t, doc.Biases, len(atlas.Biases()))
	assert.Len(t, doc.Traits, len(atlas.Traits()))
}
