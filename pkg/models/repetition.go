package models

import "strings"

// RepeatItem is a previously missed combination scheduled for re-asking.
type RepeatItem struct {
	Modo        string `json:"modo"`
	Tiempo      string `json:"tiempo"`
	Nombre      string `json:"nombre"`
	Pronombre   string `json:"pronombre"`
	Genere      string `json:"genere"`
	Verb        string `json:"verb"`
	Correct     string `json:"correct"`
	ScheduledAt int    `json:"scheduled_at"`
	Attempts    int    `json:"attempts"`
}

// Key returns the identity key of the scheduled combination.
func (it RepeatItem) Key() string {
	return strings.Join([]string{it.Modo, it.Tiempo, it.Nombre, it.Pronombre, it.Genere, it.Verb}, "|")
}

// Question converts the item back into an askable question.
func (it RepeatItem) Question() Question {
	return Question{
		Tiempo:    it.Tiempo,
		Nombre:    it.Nombre,
		Modo:      it.Modo,
		Pronombre: it.Pronombre,
		Genere:    it.Genere,
		Verb:      it.Verb,
		Correct:   it.Correct,
		IsRepeat:  true,
	}
}
