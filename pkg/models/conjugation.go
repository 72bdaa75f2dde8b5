package models

import "strings"

// ConjugationRow is one row of the reference table: a grammatical combination
// plus the conjugated form of every supported verb for it.
type ConjugationRow struct {
	Modo      string            `json:"modo"`
	Tiempo    string            `json:"tiempo"`
	Nombre    string            `json:"nombre"`
	Pronombre string            `json:"pronombre"`
	Genere    string            `json:"genere"`
	Forms     map[string]string `json:"forms"`
}

// Key returns the identity key of this row combined with a verb.
func (r ConjugationRow) Key(verb string) string {
	return strings.Join([]string{r.Modo, r.Tiempo, r.Nombre, r.Pronombre, r.Genere, verb}, "|")
}
