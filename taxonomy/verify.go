package taxonomy

import (
	"fmt"
	"strings"
)

// Severity classifies a Finding. Errors are contract violations such as
// duplicate ids or out-of-range scores; warnings are curation defects
// such as drifted declared totals or dangling cross-references.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding reports one integrity problem discovered by Verify.
type Finding struct {
	Severity Severity // error or warning
	Entity   string   // which record the finding concerns, e.g. "loop 12"
	Message  string   // what is wrong with it
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Entity, f.Message)
}

// VerifyResult collects every finding from one Verify pass.
type VerifyResult struct {
	Findings []Finding
}

// HasErrors reports whether any finding has error severity.
func (r *VerifyResult) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the findings with error severity.
func (r *VerifyResult) Errors() []Finding {
	return r.filter(SeverityError)
}

// Warnings returns the findings with warning severity.
func (r *VerifyResult) Warnings() []Finding {
	return r.filter(SeverityWarning)
}

func (r *VerifyResult) filter(severity Severity) []Finding {
	var matched []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			matched = append(matched, f)
		}
	}
	return matched
}

// Error returns an aggregated message over the error-severity findings,
// or the empty string if there are none.
func (r *VerifyResult) Error() string {
	errs := r.Errors()
	if len(errs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("dataset verification failed with %d error(s):\n", len(errs)))
	for _, f := range errs {
		sb.WriteString(fmt.Sprintf("  - %s\n", f.String()))
	}
	return sb.String()
}

func (r *VerifyResult) add(severity Severity, entity, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Severity: severity,
		Entity:   entity,
		Message:  fmt.Sprintf(format, args...),
	})
}

var knownOrigins = map[string]bool{
	OriginGenetic:       true,
	OriginDevelopmental: true,
	OriginSocial:        true,
	OriginNarrative:     true,
	OriginDigital:       true,
	OriginExistential:   true,
}

// Verify checks the atlas for internal consistency: unique identifiers,
// scores and difficulties within their documented ranges, declared
// totals matching actual counts, and cross-references that resolve.
// Verification is a separate pass; loading never runs it.
func (a *Atlas) Verify() *VerifyResult {
	result := &VerifyResult{}
	a.verifyMetadata(result)
	a.verifyCategories(result)
	a.verifyLoops(result)
	a.verifyEmotions(result)
	a.verifyBiases(result)
	a.verifyTraits(result)
	return result
}

// verifyMetadata compares declared totals against actual counts. Drift
// is a curation defect, not a load failure, so it surfaces as warnings.
func (a *Atlas) verifyMetadata(result *VerifyResult) {
	if declared, actual := a.loops.Metadata.TotalLoops, len(a.flat); declared != actual {
		result.add(SeverityWarning, "metadata",
			"declared total_loops is %d but %d loops are present", declared, actual)
	}
	if declared, actual := a.loops.Metadata.TotalCategories, len(a.loops.Categories); declared != actual {
		result.add(SeverityWarning, "metadata",
			"declared total_categories is %d but %d categories are present", declared, actual)
	}
}

func (a *Atlas) verifyCategories(result *VerifyResult) {
	seen := make(map[string]bool, len(a.loops.Categories))
	for _, category := range a.loops.Categories {
		entity := fmt.Sprintf("category %q", category.ID)
		if category.ID == "" {
			result.add(SeverityError, "category", "category has an empty id")
			continue
		}
		if seen[category.ID] {
			result.add(SeverityError, entity, "duplicate category id")
		}
		seen[category.ID] = true
		if category.Name == "" {
			result.add(SeverityError, entity, "category has an empty name")
		}
	}
}

func (a *Atlas) verifyLoops(result *VerifyResult) {
	seen := make(map[int]bool, len(a.flat))
	for _, loop := range a.flat {
		entity := fmt.Sprintf("loop %d", loop.ID)
		if loop.ID < 1 {
			result.add(SeverityError, entity, "loop id must be positive")
		}
		if seen[loop.ID] {
			result.add(SeverityError, entity, "duplicate loop id")
		}
		seen[loop.ID] = true
		if loop.Name == "" {
			result.add(SeverityError, entity, "loop has an empty name")
		}
		if !knownOrigins[loop.Classification.Origin] {
			result.add(SeverityWarning, entity,
				"unknown origin %q", loop.Classification.Origin)
		}
		verifyScore(result, entity, "evidence_strength", loop.Scores.EvidenceStrength)
		verifyScore(result, entity, "social_reinforcement", loop.Scores.SocialReinforcement)
		verifyScore(result, entity, "amplification_potential", loop.Scores.AmplificationPotential)
		verifyScore(result, entity, "change_resistance", loop.Scores.ChangeResistance)
		if d := loop.Intervention.Difficulty; d < 1 || d > 10 {
			result.add(SeverityError, entity,
				"intervention difficulty %d outside range [1, 10]", d)
		}
	}
}

func verifyScore(result *VerifyResult, entity, field string, value float64) {
	if value < 0 || value > 1 {
		result.add(SeverityError, entity, "%s score %.2f outside range [0, 1]", field, value)
	}
}

func (a *Atlas) verifyEmotions(result *VerifyResult) {
	seen := make(map[string]bool, len(a.emotions))
	for _, emotion := range a.emotions {
		entity := fmt.Sprintf("emotion %q", emotion.ID)
		if emotion.ID == "" {
			result.add(SeverityError, "emotion", "emotion has an empty id")
			continue
		}
		if seen[emotion.ID] {
			result.add(SeverityError, entity, "duplicate emotion id")
		}
		seen[emotion.ID] = true
		if emotion.Name == "" {
			result.add(SeverityError, entity, "emotion has an empty name")
		}
		for _, related := range emotion.Related {
			if _, ok := a.emotionIdx[related]; !ok {
				result.add(SeverityWarning, entity,
					"related emotion %q does not exist", related)
			}
		}
	}
}

func (a *Atlas) verifyBiases(result *VerifyResult) {
	for _, bias := range a.biases {
		entity := fmt.Sprintf("bias %q", bias.ID)
		if bias.Name == "" {
			result.add(SeverityError, entity, "bias has an empty name")
		}
		if bias.Definition == "" {
			result.add(SeverityError, entity, "bias has an empty definition")
		}
		for _, related := range bias.RelatedBiases {
			if _, ok := a.biasIdx[related]; !ok {
				result.add(SeverityWarning, entity,
					"related bias %q does not exist", related)
			}
		}
		for _, loopID := range bias.RelatedLoops {
			if _, ok := a.loopIndex[loopID]; !ok {
				result.add(SeverityWarning, entity,
					"related loop %d does not exist", loopID)
			}
		}
	}
}

func (a *Atlas) verifyTraits(result *VerifyResult) {
	for _, trait := range a.traits {
		entity := fmt.Sprintf("trait %q", trait.ID)
		if trait.Name == "" {
			result.add(SeverityError, entity, "trait has an empty name")
		}
		if trait.Definition == "" {
			result.add(SeverityError, entity, "trait has an empty definition")
		}
		for _, related := range trait.RelatedTraits {
			if _, ok := a.traitIdx[related]; !ok {
				result.add(SeverityWarning, entity,
					"related trait %q does not exist", related)
			}
		}
		for _, related := range trait.RelatedBiases {
			if _, ok := a.biasIdx[related]; !ok {
				result.add(SeverityWarning, entity,
					"related bias %q does not exist", related)
			}
		}
	}
}
