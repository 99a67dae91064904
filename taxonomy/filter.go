package taxonomy

import "strings"

// LoopsByTag returns loops whose tag list contains the query as a
// case-insensitive substring. An empty query matches any loop that has
// at least one tag.
func (a *Atlas) LoopsByTag(query string) []BehavioralLoop {
	needle := strings.ToLower(query)
	var matched []BehavioralLoop
	for _, loop := range a.flat {
		if tagsContain(loop.Metadata.Tags, needle) {
			matched = append(matched, loop)
		}
	}
	return matched
}

// LoopsByOrigin returns loops whose classification origin equals the
// given origin exactly. Origins are a closed lowercase vocabulary, so
// the match is case-sensitive.
func (a *Atlas) LoopsByOrigin(origin string) []BehavioralLoop {
	var matched []BehavioralLoop
	for _, loop := range a.flat {
		if loop.Classification.Origin == origin {
			matched = append(matched, loop)
		}
	}
	return matched
}

// SearchLoops returns loops whose name, behavior, or outcome contains
// the query as a case-insensitive substring. An empty query matches
// every loop. Trigger and mechanism text is not searched.
func (a *Atlas) SearchLoops(query string) []BehavioralLoop {
	needle := strings.ToLower(query)
	var matched []BehavioralLoop
	for _, loop := range a.flat {
		if loopMatches(loop, needle) {
			matched = append(matched, loop)
		}
	}
	return matched
}

func loopMatches(loop BehavioralLoop, needle string) bool {
	return strings.Contains(strings.ToLower(loop.Name), needle) ||
		strings.Contains(strings.ToLower(loop.Behavior), needle) ||
		strings.Contains(strings.ToLower(loop.Outcome), needle)
}

func tagsContain(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
