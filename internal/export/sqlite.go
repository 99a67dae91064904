package export

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/loopatlas/internal/filelock"
	"github.com/harrison/loopatlas/taxonomy"
)

//go:embed schema.sql
var schemaSQL string

// writeSQLite builds the snapshot database at a temporary path next to
// the target and renames it into place once complete, so readers never
// open a half-built database.
func (e *Exporter) writeSQLite(path string, manifest Manifest) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	return filelock.WithLock(path+".lock", func() error {
		tmpPath := path + ".tmp"
		// A stale temp database from a crashed export would make
		// sql.Open attach to old content.
		os.Remove(tmpPath)

		if err := e.buildSnapshotDB(tmpPath, manifest); err != nil {
			os.Remove(tmpPath)
			return err
		}

		if err := os.Rename(tmpPath, path); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("rename snapshot to %s: %w", path, err)
		}
		return nil
	})
}

// buildSnapshotDB creates the schema and loads every catalog in one
// transaction.
func (e *Exporter) buildSnapshotDB(dbPath string, manifest Manifest) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSnapshotInfo(tx, e.atlas.Metadata(), manifest); err != nil {
		return err
	}
	if err := insertLoops(tx, e.atlas.Categories()); err != nil {
		return err
	}
	if err := insertEmotions(tx, e.atlas.Emotions()); err != nil {
		return err
	}
	if err := insertBiases(tx, e.atlas.Biases()); err != nil {
		return err
	}
	if err := insertTraits(tx, e.atlas.Traits()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func insertSnapshotInfo(tx *sql.Tx, meta taxonomy.DatasetMetadata, manifest Manifest) error {
	_, err := tx.Exec(
		`INSERT INTO snapshot_info (export_id, created_at, dataset_name, dataset_version, dataset_updated, license)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		manifest.ExportID, manifest.CreatedAt, meta.Name, meta.Version, meta.Updated, meta.License,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot info: %w", err)
	}
	return nil
}

func insertLoops(tx *sql.Tx, categories []taxonomy.BehavioralCategory) error {
	for _, category := range categories {
		_, err := tx.Exec(
			`INSERT INTO categories (id, number, name, description) VALUES (?, ?, ?, ?)`,
			category.ID, category.Number, category.Name, category.Description,
		)
		if err != nil {
			return fmt.Errorf("insert category %s: %w", category.ID, err)
		}

		for _, loop := range category.Loops {
			valence, err := jsonStrings(loop.Classification.Valence)
			if err != nil {
				return fmt.Errorf("marshal valence for loop %d: %w", loop.ID, err)
			}

			_, err = tx.Exec(
				`INSERT INTO loops
				 (id, category_id, name, trigger_condition, event, behavior, outcome, mechanism,
				  origin, modality, mutability, valence,
				  evidence_strength, social_reinforcement, amplification_potential, change_resistance,
				  difficulty, approach, first_step)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				loop.ID, category.ID, loop.Name,
				loop.TriggerCondition, loop.Event, loop.Behavior, loop.Outcome, loop.Mechanism,
				loop.Classification.Origin, loop.Classification.Modality, loop.Classification.Mutability, valence,
				loop.Scores.EvidenceStrength, loop.Scores.SocialReinforcement,
				loop.Scores.AmplificationPotential, loop.Scores.ChangeResistance,
				loop.Intervention.Difficulty, loop.Intervention.Approach, loop.Intervention.FirstStep,
			)
			if err != nil {
				return fmt.Errorf("insert loop %d: %w", loop.ID, err)
			}

			for _, tag := range loop.Metadata.Tags {
				if _, err := tx.Exec(`INSERT INTO loop_tags (loop_id, tag) VALUES (?, ?)`, loop.ID, tag); err != nil {
					return fmt.Errorf("insert tag %q for loop %d: %w", tag, loop.ID, err)
				}
			}
		}
	}
	return nil
}

func insertEmotions(tx *sql.Tx, emotions []taxonomy.Emotion) error {
	for _, emotion := range emotions {
		related, err := jsonStrings(emotion.Related)
		if err != nil {
			return fmt.Errorf("marshal related for emotion %s: %w", emotion.ID, err)
		}

		_, err = tx.Exec(
			`INSERT INTO emotions (id, name, description, level, valence, arousal, related)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			emotion.ID, emotion.Name, emotion.Description, emotion.Level,
			emotion.Valence, emotion.Arousal, related,
		)
		if err != nil {
			return fmt.Errorf("insert emotion %s: %w", emotion.ID, err)
		}
	}
	return nil
}

func insertBiases(tx *sql.Tx, biases []taxonomy.CognitiveBias) error {
	for _, bias := range biases {
		relatedBiases, err := jsonStrings(bias.RelatedBiases)
		if err != nil {
			return fmt.Errorf("marshal related biases for %s: %w", bias.ID, err)
		}
		relatedLoops, err := jsonInts(bias.RelatedLoops)
		if err != nil {
			return fmt.Errorf("marshal related loops for %s: %w", bias.ID, err)
		}

		_, err = tx.Exec(
			`INSERT INTO biases (id, name, definition, category, related_biases, related_loops)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			bias.ID, bias.Name, bias.Definition, bias.Category, relatedBiases, relatedLoops,
		)
		if err != nil {
			return fmt.Errorf("insert bias %s: %w", bias.ID, err)
		}
	}
	return nil
}

func insertTraits(tx *sql.Tx, traits []taxonomy.PersonalityTrait) error {
	for _, trait := range traits {
		relatedTraits, err := jsonStrings(trait.RelatedTraits)
		if err != nil {
			return fmt.Errorf("marshal related traits for %s: %w", trait.ID, err)
		}
		relatedBiases, err := jsonStrings(trait.RelatedBiases)
		if err != nil {
			return fmt.Errorf("marshal related biases for %s: %w", trait.ID, err)
		}

		_, err = tx.Exec(
			`INSERT INTO traits (id, name, definition, dimension, related_traits, related_biases)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			trait.ID, trait.Name, trait.Definition, trait.Dimension, relatedTraits, relatedBiases,
		)
		if err != nil {
			return fmt.Errorf("insert trait %s: %w", trait.ID, err)
		}
	}
	return nil
}

// jsonStrings marshals a string list to JSON array text, mapping nil
// to the empty array.
func jsonStrings(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// jsonInts is jsonStrings for int lists.
func jsonInts(items []int) (string, error) {
	if items == nil {
		items = []int{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
