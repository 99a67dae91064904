package taxonomy

// Package-level accessors delegate to the embedded default atlas. They
// exist for callers that want the shipped dataset without carrying an
// *Atlas around; everything here is a thin forwarder.

// Metadata returns the embedded dataset's declared metadata.
func Metadata() DatasetMetadata { return Default().Metadata() }

// Loops returns the embedded loop document, metadata and categories.
func Loops() LoopDataset { return Default().Loops() }

// Categories returns the embedded categories in curated order.
func Categories() []BehavioralCategory { return Default().Categories() }

// Category returns one embedded category by id.
func Category(id string) (BehavioralCategory, bool) { return Default().Category(id) }

// AllLoops returns every embedded loop in flattened order.
func AllLoops() []BehavioralLoop { return Default().AllLoops() }

// LoopsByCategory returns the embedded loops of one category.
func LoopsByCategory(categoryID string) []BehavioralLoop {
	return Default().LoopsByCategory(categoryID)
}

// LoopByID returns one embedded loop by numeric id.
func LoopByID(id int) (BehavioralLoop, bool) { return Default().LoopByID(id) }

// LoopsByTag returns embedded loops matching a tag query.
func LoopsByTag(query string) []BehavioralLoop { return Default().LoopsByTag(query) }

// LoopsByOrigin returns embedded loops with the given origin.
func LoopsByOrigin(origin string) []BehavioralLoop { return Default().LoopsByOrigin(origin) }

// SearchLoops searches embedded loops by name, behavior, and outcome.
func SearchLoops(query string) []BehavioralLoop { return Default().SearchLoops(query) }

// Emotions returns the embedded emotion catalog in level order.
func Emotions() []Emotion { return Default().Emotions() }

// EmotionsByLevel returns the embedded emotions of one level.
func EmotionsByLevel(level string) []Emotion { return Default().EmotionsByLevel(level) }

// EmotionByID returns one embedded emotion by id.
func EmotionByID(id string) (Emotion, bool) { return Default().EmotionByID(id) }

// Biases returns the embedded bias catalog sorted by id.
func Biases() []CognitiveBias { return Default().Biases() }

// BiasesByCategory returns the embedded biases of one category.
func BiasesByCategory(category string) []CognitiveBias {
	return Default().BiasesByCategory(category)
}

// BiasByID returns one embedded bias by id.
func BiasByID(id string) (CognitiveBias, bool) { return Default().BiasByID(id) }

// Traits returns the embedded trait catalog sorted by id.
func Traits() []PersonalityTrait { return Default().Traits() }

// TraitsByDimension returns the embedded traits of one dimension.
func TraitsByDimension(dimension string) []PersonalityTrait {
	return Default().TraitsByDimension(dimension)
}

// TraitByID returns one embedded trait by id.
func TraitByID(id string) (PersonalityTrait, bool) { return Default().TraitByID(id) }

// Stats computes aggregate statistics over the embedded loop dataset.
func Stats() AtlasStats { return Default().Stats() }
