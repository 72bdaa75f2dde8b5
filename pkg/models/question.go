package models

import "strings"

// Question is the live prompt for one turn. It is consumed by the presentation
// layer and the answer check, then discarded; it is never persisted.
type Question struct {
	Tiempo    string
	Nombre    string
	Modo      string
	Pronombre string
	Genere    string
	Verb      string
	Correct   string
	IsRepeat  bool
}

// Key returns the identity key of the asked combination.
func (q Question) Key() string {
	return strings.Join([]string{q.Modo, q.Tiempo, q.Nombre, q.Pronombre, q.Genere, q.Verb}, "|")
}
