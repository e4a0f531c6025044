// Package ident allocates human-readable slug identifiers for layout nodes.
//
// Identifiers have the form "<slug>-<n>", for example "input-text-3": the
// slug is derived from the element type key and n comes from a per-slug
// counter that only ever grows. An [Allocator] is explicit state: every
// designer owns its own allocator, so several independent trees can live in
// one process without sharing counters.
//
//	a := ident.New()
//	a.Allocate("input-text") // "input-text-1"
//	a.Allocate("input-text") // "input-text-2"
//	a.Allocate("Row")        // "row-1"
//
// After importing a tree, [Allocator.Rehydrate] raises counters past every
// identifier already in use, so fresh identifiers never collide with
// imported ones.
package ident

import (
	"iter"
	"regexp"
	"strconv"
	"strings"
)

// fallbackSlug is used when a type key slugifies to nothing.
const fallbackSlug = "node"

// Allocator hands out collision-free identifiers per type key.
// The zero value is not usable; use New.
// Allocator is not safe for concurrent use.
type Allocator struct {
	counters map[string]int
}

// New creates an allocator with all counters at zero.
func New() *Allocator {
	return &Allocator{counters: make(map[string]int)}
}

// Allocate returns Slugify(typeKey) + "-" + n where n is the incremented
// counter for that slug. The first identifier for a slug ends in "-1".
func (a *Allocator) Allocate(typeKey string) string {
	slug := Slugify(typeKey)
	a.counters[slug]++
	return slug + "-" + strconv.Itoa(a.counters[slug])
}

// Peek returns the current counter for typeKey without changing it.
func (a *Allocator) Peek(typeKey string) int {
	return a.counters[Slugify(typeKey)]
}

// Observe raises the counter for id's slug to at least its numeric suffix.
// Identifiers that do not look like "slug-<int>" are ignored.
func (a *Allocator) Observe(id string) {
	slug, n, ok := Parse(id)
	if !ok {
		return
	}
	if n > a.counters[slug] {
		a.counters[slug] = n
	}
}

// Rehydrate resets every counter and then observes each identifier in ids.
// Counters end up at the highest suffix seen per slug.
func (a *Allocator) Rehydrate(ids iter.Seq[string]) {
	clear(a.counters)
	for id := range ids {
		a.Observe(id)
	}
}

var idPattern = regexp.MustCompile(`^([a-z0-9]+(?:-[a-z0-9]+)*?)-([0-9]+)$`)

// Parse splits an identifier into its slug and numeric suffix.
func Parse(id string) (slug string, n int, ok bool) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s, collapses every run of other characters into a
// single dash and trims dashes at both ends.
func Slugify(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}
