package taxonomy

// DatasetMetadata describes the loop dataset as a whole. The declared
// totals are carried verbatim from the source document; Verify reports
// when they drift from the actual counts.
type DatasetMetadata struct {
	Name            string `json:"name"`             // human-readable dataset title
	Version         string `json:"version"`          // semantic version of the dataset content
	Updated         string `json:"updated"`          // last revision date, YYYY-MM-DD
	License         string `json:"license"`          // content license identifier
	TotalLoops      int    `json:"total_loops"`      // declared loop count across all categories
	TotalCategories int    `json:"total_categories"` // declared category count
	Description     string `json:"description"`      // one-paragraph summary of the dataset
}

// LoopDataset is the top-level loop document: dataset metadata plus the
// nested category structure exactly as authored.
type LoopDataset struct {
	Metadata   DatasetMetadata      `json:"metadata"`
	Categories []BehavioralCategory `json:"categories"`
}

// BehavioralCategory groups loops that share a common pressure source,
// such as evolutionary survival machinery or attention-economy design.
type BehavioralCategory struct {
	ID          string           `json:"id"`          // stable slug, e.g. "digital-cognitive"
	Number      int              `json:"number"`      // display ordinal within the atlas
	Name        string           `json:"name"`        // human-readable category name
	Description string           `json:"description"` // what binds the loops in this category
	Loops       []BehavioralLoop `json:"loops"`       // member loops in curated order
}

// BehavioralLoop is a single self-reinforcing loop record: the cycle it
// describes, how it is classified, scored dimensions, and intervention
// guidance.
type BehavioralLoop struct {
	ID               int            `json:"id"`                // unique numeric identifier across the atlas
	Name             string         `json:"name"`              // human-readable loop name
	TriggerCondition string         `json:"trigger_condition"` // standing state that arms the loop
	Event            string         `json:"event"`             // proximate cue that fires it
	Behavior         string         `json:"behavior"`          // the response the loop produces
	Outcome          string         `json:"outcome"`           // how the response feeds back into the trigger
	Classification   Classification `json:"classification"`
	Mechanism        string         `json:"mechanism"` // psychological or neural mechanism at work
	Scores           LoopScores     `json:"scores"`
	Intervention     Intervention   `json:"intervention"`
	Metadata         LoopMetadata   `json:"metadata"`
}

// Classification places a loop along the atlas's descriptive axes.
type Classification struct {
	Origin     string   `json:"origin"`     // pressure source: genetic, developmental, social, narrative, digital, existential
	Modality   string   `json:"modality"`   // dominant channel: interoceptive, visual, auditory, social, cognitive, mixed
	Mutability string   `json:"mutability"` // how workable the loop is: low, moderate, high
	Valence    []string `json:"valence"`    // affective pulls the loop trades in
}

// LoopScores are curated ratings in the range [0, 1].
type LoopScores struct {
	EvidenceStrength       float64 `json:"evidence_strength"`       // how well documented the loop is in the literature
	SocialReinforcement    float64 `json:"social_reinforcement"`    // how strongly other people feed the loop
	AmplificationPotential float64 `json:"amplification_potential"` // how much modern environments can intensify it
	ChangeResistance       float64 `json:"change_resistance"`       // how hard the loop fights interruption
}

// Intervention describes how to start working against a loop.
type Intervention struct {
	Difficulty int    `json:"difficulty"` // 1 (easy) to 10 (near-immovable)
	Approach   string `json:"approach"`   // general intervention strategy
	FirstStep  string `json:"first_step"` // smallest concrete action to begin with
}

// LoopMetadata carries free-form annotations attached to a loop.
type LoopMetadata struct {
	Tags              []string `json:"tags"`                         // lowercase search tags
	RelatedArchetypes []string `json:"related_archetypes,omitempty"` // narrative archetypes the loop tends to produce
	RelatedFields     []string `json:"related_fields,omitempty"`     // research fields that study the loop
}

// Emotion is one entry from the emotion catalog. Level is not present in
// the source document; it is stamped from the nesting level the entry was
// authored under.
type Emotion struct {
	ID          string   `json:"id"`                // stable slug, e.g. "anticipation"
	Name        string   `json:"name"`              // human-readable emotion name
	Description string   `json:"description"`       // what the emotion signals
	Level       string   `json:"level"`             // primary, secondary, or tertiary
	Valence     string   `json:"valence"`           // positive, negative, or mixed
	Arousal     string   `json:"arousal"`           // low, medium, or high
	Related     []string `json:"related,omitempty"` // ids of adjacent emotions
}

// CognitiveBias is one entry from the bias catalog. ID is not present in
// the source record; it is stamped from the dictionary key the record was
// authored under.
type CognitiveBias struct {
	ID            string   `json:"id"`                       // stable slug, e.g. "anchoring"
	Name          string   `json:"name"`                     // human-readable bias name
	Definition    string   `json:"definition"`               // what the bias does to judgment
	Category      string   `json:"category"`                 // belief, memory, social, decision, probability, or attention
	RelatedBiases []string `json:"related_biases,omitempty"` // ids of adjacent biases
	RelatedLoops  []int    `json:"related_loops,omitempty"`  // numeric ids of loops the bias feeds
}

// PersonalityTrait is one entry from the trait catalog. ID is stamped
// from the dictionary key, as with CognitiveBias.
type PersonalityTrait struct {
	ID            string   `json:"id"`                       // stable slug, e.g. "industriousness"
	Name          string   `json:"name"`                     // human-readable trait name
	Definition    string   `json:"definition"`               // what the trait describes
	Dimension     string   `json:"dimension"`                // model placement: big-five, hexaco, or a parent domain slug
	RelatedTraits []string `json:"related_traits,omitempty"` // ids of adjacent traits
	RelatedBiases []string `json:"related_biases,omitempty"` // ids of biases the trait amplifies
}

// Origin values used by Classification.Origin.
const (
	OriginGenetic       = "genetic"
	OriginDevelopmental = "developmental"
	OriginSocial        = "social"
	OriginNarrative     = "narrative"
	OriginDigital       = "digital"
	OriginExistential   = "existential"
)

// Emotion catalog levels, in catalog order.
const (
	LevelPrimary   = "primary"
	LevelSecondary = "secondary"
	LevelTertiary  = "tertiary"
)
