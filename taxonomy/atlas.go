package taxonomy

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed data/*.json
var embeddedFS embed.FS

// File names an atlas directory must contain. LoadFromFS and LoadDir
// read exactly these four documents.
const (
	LoopsFile    = "loops.json"
	EmotionsFile = "emotions.json"
	BiasesFile   = "biases.json"
	TraitsFile   = "traits.json"
)

// sentinelPrefix marks dictionary keys that carry document metadata
// rather than records, such as the "_metadata" entry in biases.json.
const sentinelPrefix = "_"

// Atlas holds the four datasets after normalization. The zero value is
// not usable; obtain one from Default, LoadFromFS, or LoadDir.
type Atlas struct {
	loops      LoopDataset
	flat       []BehavioralLoop
	loopIndex  map[int]int
	emotions   []Emotion
	emotionIdx map[string]int
	biases     []CognitiveBias
	biasIdx    map[string]int
	traits     []PersonalityTrait
	traitIdx   map[string]int
}

var (
	defaultOnce  sync.Once
	defaultAtlas *Atlas
)

// Default returns the atlas built from the embedded datasets. The first
// call decodes and normalizes the documents; later calls return the same
// instance. It panics if the embedded data cannot be decoded, which
// indicates a broken build rather than a runtime condition.
func Default() *Atlas {
	defaultOnce.Do(func() {
		atlas, err := LoadEmbedded()
		if err != nil {
			panic(fmt.Sprintf("taxonomy: embedded dataset is invalid: %v", err))
		}
		defaultAtlas = atlas
	})
	return defaultAtlas
}

// LoadEmbedded builds an atlas from the datasets compiled into the
// binary. Most callers want Default instead, which memoizes the result.
func LoadEmbedded() (*Atlas, error) {
	sub, err := fs.Sub(embeddedFS, "data")
	if err != nil {
		return nil, fmt.Errorf("open embedded data: %w", err)
	}
	return LoadFromFS(sub)
}

// LoadDir builds an atlas from the four dataset documents in dir.
func LoadDir(dir string) (*Atlas, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat dataset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset path %s is not a directory", dir)
	}
	return LoadFromFS(os.DirFS(dir))
}

// LoadFromFS builds an atlas from a filesystem containing loops.json,
// emotions.json, biases.json, and traits.json at its root. Decoding is
// lenient: unknown fields are ignored, matching the source documents'
// tolerance for annotation keys.
func LoadFromFS(fsys fs.FS) (*Atlas, error) {
	var loops LoopDataset
	if err := readJSON(fsys, LoopsFile, &loops); err != nil {
		return nil, err
	}

	var emotionDoc emotionDocument
	if err := readJSON(fsys, EmotionsFile, &emotionDoc); err != nil {
		return nil, err
	}

	var biasDoc map[string]json.RawMessage
	if err := readJSON(fsys, BiasesFile, &biasDoc); err != nil {
		return nil, err
	}

	var traitDoc map[string]json.RawMessage
	if err := readJSON(fsys, TraitsFile, &traitDoc); err != nil {
		return nil, err
	}

	atlas := &Atlas{loops: loops}
	atlas.flat = flattenLoops(loops.Categories)
	atlas.emotions = normalizeEmotions(emotionDoc)

	biases, err := normalizeBiases(biasDoc)
	if err != nil {
		return nil, err
	}
	atlas.biases = biases

	traits, err := normalizeTraits(traitDoc)
	if err != nil {
		return nil, err
	}
	atlas.traits = traits

	atlas.buildIndexes()
	return atlas, nil
}

func readJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// emotionDocument mirrors the on-disk shape of emotions.json, where
// entries are nested under their level instead of carrying it as a field.
type emotionDocument struct {
	Primary   []Emotion `json:"primary"`
	Secondary []Emotion `json:"secondary"`
	Tertiary  []Emotion `json:"tertiary"`
}

// flattenLoops concatenates every category's loops into one list,
// preserving category order and the curated order within each category.
func flattenLoops(categories []BehavioralCategory) []BehavioralLoop {
	var flat []BehavioralLoop
	for _, category := range categories {
		flat = append(flat, category.Loops...)
	}
	return flat
}

// normalizeEmotions joins the per-level lists into one list in level
// order, stamping each entry with the level it was authored under.
func normalizeEmotions(doc emotionDocument) []Emotion {
	levels := []struct {
		name    string
		entries []Emotion
	}{
		{LevelPrimary, doc.Primary},
		{LevelSecondary, doc.Secondary},
		{LevelTertiary, doc.Tertiary},
	}

	var emotions []Emotion
	for _, level := range levels {
		for _, emotion := range level.entries {
			emotion.Level = level.name
			emotions = append(emotions, emotion)
		}
	}
	return emotions
}

// normalizeBiases turns the bias dictionary into a list sorted by id,
// stamping each record with its key and skipping sentinel entries.
func normalizeBiases(doc map[string]json.RawMessage) ([]CognitiveBias, error) {
	biases := make([]CognitiveBias, 0, len(doc))
	for key, raw := range doc {
		if strings.HasPrefix(key, sentinelPrefix) {
			continue
		}
		var bias CognitiveBias
		if err := json.Unmarshal(raw, &bias); err != nil {
			return nil, fmt.Errorf("parse bias %q: %w", key, err)
		}
		bias.ID = key
		biases = append(biases, bias)
	}
	sort.Slice(biases, func(i, j int) bool { return biases[i].ID < biases[j].ID })
	return biases, nil
}

// normalizeTraits turns the trait dictionary into a list sorted by id,
// stamping each record with its key.
func normalizeTraits(doc map[string]json.RawMessage) ([]PersonalityTrait, error) {
	traits := make([]PersonalityTrait, 0, len(doc))
	for key, raw := range doc {
		if strings.HasPrefix(key, sentinelPrefix) {
			continue
		}
		var trait PersonalityTrait
		if err := json.Unmarshal(raw, &trait); err != nil {
			return nil, fmt.Errorf("parse trait %q: %w", key, err)
		}
		trait.ID = key
		traits = append(traits, trait)
	}
	sort.Slice(traits, func(i, j int) bool { return traits[i].ID < traits[j].ID })
	return traits, nil
}

func (a *Atlas) buildIndexes() {
	a.loopIndex = make(map[int]int, len(a.flat))
	for i, loop := range a.flat {
		a.loopIndex[loop.ID] = i
	}
	a.emotionIdx = make(map[string]int, len(a.emotions))
	for i, emotion := range a.emotions {
		a.emotionIdx[emotion.ID] = i
	}
	a.biasIdx = make(map[string]int, len(a.biases))
	for i, bias := range a.biases {
		a.biasIdx[bias.ID] = i
	}
	a.traitIdx = make(map[string]int, len(a.traits))
	for i, trait := range a.traits {
		a.traitIdx[trait.ID] = i
	}
}

// Metadata returns the loop dataset's declared metadata.
func (a *Atlas) Metadata() DatasetMetadata {
	return a.loops.Metadata
}

// Loops returns the full loop document, metadata and nested categories,
// exactly as normalized at load time.
func (a *Atlas) Loops() LoopDataset {
	return a.loops
}

// Categories returns every category in curated order.
func (a *Atlas) Categories() []BehavioralCategory {
	return append([]BehavioralCategory(nil), a.loops.Categories...)
}

// Category returns the category with the given id. The second return
// value reports whether it exists.
func (a *Atlas) Category(id string) (BehavioralCategory, bool) {
	for _, category := range a.loops.Categories {
		if category.ID == id {
			return category, true
		}
	}
	return BehavioralCategory{}, false
}

// AllLoops returns every loop across all categories, in category order
// and curated order within each category.
func (a *Atlas) AllLoops() []BehavioralLoop {
	return append([]BehavioralLoop(nil), a.flat...)
}

// LoopsByCategory returns the loops of one category. An unknown id
// yields an empty result, not an error.
func (a *Atlas) LoopsByCategory(categoryID string) []BehavioralLoop {
	category, ok := a.Category(categoryID)
	if !ok {
		return nil
	}
	return append([]BehavioralLoop(nil), category.Loops...)
}

// LoopByID returns the loop with the given numeric id. The second
// return value reports whether it exists.
func (a *Atlas) LoopByID(id int) (BehavioralLoop, bool) {
	i, ok := a.loopIndex[id]
	if !ok {
		return BehavioralLoop{}, false
	}
	return a.flat[i], true
}

// Emotions returns the emotion catalog in level order: primary, then
// secondary, then tertiary, preserving the curated order within each.
func (a *Atlas) Emotions() []Emotion {
	return append([]Emotion(nil), a.emotions...)
}

// EmotionsByLevel returns the emotions of one level. An unknown level
// yields an empty result.
func (a *Atlas) EmotionsByLevel(level string) []Emotion {
	var matched []Emotion
	for _, emotion := range a.emotions {
		if emotion.Level == level {
			matched = append(matched, emotion)
		}
	}
	return matched
}

// EmotionByID returns the emotion with the given id. The second return
// value reports whether it exists.
func (a *Atlas) EmotionByID(id string) (Emotion, bool) {
	i, ok := a.emotionIdx[id]
	if !ok {
		return Emotion{}, false
	}
	return a.emotions[i], true
}

// Biases returns the bias catalog sorted by id.
func (a *Atlas) Biases() []CognitiveBias {
	return append([]CognitiveBias(nil), a.biases...)
}

// BiasesByCategory returns the biases of one category. An unknown
// category yields an empty result.
func (a *Atlas) BiasesByCategory(category string) []CognitiveBias {
	var matched []CognitiveBias
	for _, bias := range a.biases {
		if bias.Category == category {
			matched = append(matched, bias)
		}
	}
	return matched
}

// BiasByID returns the bias with the given id. The second return value
// reports whether it exists.
func (a *Atlas) BiasByID(id string) (CognitiveBias, bool) {
	i, ok := a.biasIdx[id]
	if !ok {
		return CognitiveBias{}, false
	}
	return a.biases[i], true
}

// Traits returns the trait catalog sorted by id.
func (a *Atlas) Traits() []PersonalityTrait {
	return append([]PersonalityTrait(nil), a.traits...)
}

// TraitsByDimension returns the traits of one dimension. An unknown
// dimension yields an empty result.
func (a *Atlas) TraitsByDimension(dimension string) []PersonalityTrait {
	var matched []PersonalityTrait
	for _, trait := range a.traits {
		if trait.Dimension == dimension {
			matched = append(matched, trait)
		}
	}
	return matched
}

// TraitByID returns the trait with the given id. The second return
// value reports whether it exists.
func (a *Atlas) TraitByID(id string) (PersonalityTrait, bool) {
	i, ok := a.traitIdx[id]
	if !ok {
		return PersonalityTrait{}, false
	}
	return a.traits[i], true
}
