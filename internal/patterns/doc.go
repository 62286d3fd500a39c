// Package patterns holds the pure text matchers of the trip document
// convention. Every matcher takes already flattened text and reports either
// the captured fields or no match.
package patterns
