package models

// SessionStats summarizes the current session.
type SessionStats struct {
	Questions int     `json:"questions"`
	Score     int     `json:"score"`
	Accuracy  float64 `json:"accuracy"`
}

// TenseNameStat is the per-tense-name performance breakdown.
type TenseNameStat struct {
	Nombre   string  `json:"nombre"`
	Attempts int     `json:"attempts"`
	Corrects int     `json:"corrects"`
	Errors   int     `json:"errors"`
	Accuracy float64 `json:"accuracy"`
}
