package conjugation

import (
	"sort"

	"github.com/example/coniugatore/pkg/models"
)

// Verbs is the fixed drill vocabulary, in display order.
var Verbs = []string{"essere", "avere", "mangiare", "credere", "dormire"}

// PronounOrder is the fixed ordering of subject pronouns.
var PronounOrder = []string{"Io", "Tu", "Lui", "Noi", "Voi", "Loro"}

var pronounRank = buildPronounRank()

func buildPronounRank() map[string]int {
	rank := make(map[string]int, len(PronounOrder))
	for i, p := range PronounOrder {
		rank[p] = i
	}
	return rank
}

// PronounRank returns the position of a pronoun in the fixed order. Unknown
// pronouns sort after the known ones.
func PronounRank(p string) int {
	if r, ok := pronounRank[p]; ok {
		return r
	}
	return len(PronounOrder)
}

// Table is the immutable in-memory reference data, loaded once per process.
type Table struct {
	Rows []models.ConjugationRow
}

// SortForReview orders rows for tabular browsing: by Tiempo, Nombre, Modo and
// then pronoun order.
func SortForReview(rows []models.ConjugationRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Tiempo != b.Tiempo {
			return a.Tiempo < b.Tiempo
		}
		if a.Nombre != b.Nombre {
			return a.Nombre < b.Nombre
		}
		if a.Modo != b.Modo {
			return a.Modo < b.Modo
		}
		return PronounRank(a.Pronombre) < PronounRank(b.Pronombre)
	})
}
