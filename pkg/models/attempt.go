package models

// Attempt is one recorded answer, correct or not.
type Attempt struct {
	Verb      string `json:"verb"`
	Modo      string `json:"modo"`
	Tiempo    string `json:"tiempo"`
	Nombre    string `json:"nombre"`
	Pronombre string `json:"pronombre"`
	Provided  string `json:"provided"`
	Correct   string `json:"correct"`
	IsRepeat  bool   `json:"is_repeat"`
}
