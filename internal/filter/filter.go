// Package filter derives the eligible subset of the conjugation table from
// the user's facet selections.
package filter

import (
	"sort"

	"github.com/example/coniugatore/internal/conjugation"
	"github.com/example/coniugatore/pkg/models"
)

// Selection holds the selected values per facet. An empty facet means no
// restriction. Facets combine with AND; values within a facet with OR.
type Selection struct {
	Modes      []string
	Tenses     []string
	TenseNames []string
	Pronouns   []string
	Genders    []string
	Verbs      []string
}

// ActiveVerbs returns the selected verbs, or the full vocabulary when the
// verb facet is unrestricted.
func (s Selection) ActiveVerbs() []string {
	if len(s.Verbs) == 0 {
		return conjugation.Verbs
	}
	return s.Verbs
}

func (s Selection) matches(r models.ConjugationRow) bool {
	return member(s.Modes, r.Modo) &&
		member(s.Tenses, r.Tiempo) &&
		member(s.TenseNames, r.Nombre) &&
		member(s.Pronouns, r.Pronombre) &&
		member(s.Genders, r.Genere)
}

func member(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Apply returns the table rows satisfying every active facet constraint.
// An empty result is a valid state, not an error.
func Apply(t *conjugation.Table, sel Selection) []models.ConjugationRow {
	var rows []models.ConjugationRow
	for _, r := range t.Rows {
		if sel.matches(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// Options is the set of facet values reachable under the current selection,
// computed all-but-self so cascading controls never offer a zero-row option.
type Options struct {
	Modes      []string
	Tenses     []string
	TenseNames []string
	Pronouns   []string
	Genders    []string
}

// FacetOptions computes the reachable option list for each facet, ignoring
// that facet's own selection.
func FacetOptions(t *conjugation.Table, sel Selection) Options {
	return Options{
		Modes:      facetValues(t, sel, func(s *Selection) { s.Modes = nil }, func(r models.ConjugationRow) string { return r.Modo }, false),
		Tenses:     facetValues(t, sel, func(s *Selection) { s.Tenses = nil }, func(r models.ConjugationRow) string { return r.Tiempo }, false),
		TenseNames: facetValues(t, sel, func(s *Selection) { s.TenseNames = nil }, func(r models.ConjugationRow) string { return r.Nombre }, false),
		Pronouns:   facetValues(t, sel, func(s *Selection) { s.Pronouns = nil }, func(r models.ConjugationRow) string { return r.Pronombre }, true),
		Genders:    facetValues(t, sel, func(s *Selection) { s.Genders = nil }, func(r models.ConjugationRow) string { return r.Genere }, false),
	}
}

func facetValues(t *conjugation.Table, sel Selection, clear func(*Selection), value func(models.ConjugationRow) string, pronounOrder bool) []string {
	clear(&sel)
	seen := make(map[string]bool)
	var values []string
	for _, r := range Apply(t, sel) {
		v := value(r)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	if pronounOrder {
		sort.SliceStable(values, func(i, j int) bool {
			ri, rj := conjugation.PronounRank(values[i]), conjugation.PronounRank(values[j])
			if ri != rj {
				return ri < rj
			}
			return values[i] < values[j]
		})
	} else {
		sort.Strings(values)
	}
	return values
}
