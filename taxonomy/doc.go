// Package taxonomy provides read-only access to the behavioral loop
// atlas, a curated dataset of self-reinforcing behavioral loops together
// with companion catalogs of emotions, cognitive biases, and personality
// traits.
//
// The datasets ship embedded in the binary. Call Default for the embedded
// atlas, or LoadDir / LoadFromFS to read the same four JSON documents
// from an external location:
//
//	atlas := taxonomy.Default()
//	for _, loop := range atlas.LoopsByCategory("digital-cognitive") {
//	    fmt.Println(loop.ID, loop.Name)
//	}
//
// All accessors are safe for concurrent use. Queries that match nothing
// return empty slices, and lookups by identifier report absence through
// a boolean second return value; accessors never return errors. Callers
// must treat returned slices and structs as read-only.
package taxonomy
