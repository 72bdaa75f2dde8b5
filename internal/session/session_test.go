package session

import (
	"path/filepath"
	"testing"

	"github.com/example/coniugatore/internal/conjugation"
	"github.com/example/coniugatore/internal/filter"
	"github.com/example/coniugatore/internal/progress"
	"github.com/example/coniugatore/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(tiempo, nombre, pronombre string, forms map[string]string) models.ConjugationRow {
	return models.ConjugationRow{
		Modo:      "Indicativo",
		Tiempo:    tiempo,
		Nombre:    nombre,
		Pronombre: pronombre,
		Genere:    "M",
		Forms:     forms,
	}
}

func singleRowTable() *conjugation.Table {
	return &conjugation.Table{Rows: []models.ConjugationRow{
		row("Presente", "Presente", "Io", map[string]string{"essere": "sono"}),
	}}
}

func twoRowTable() *conjugation.Table {
	return &conjugation.Table{Rows: []models.ConjugationRow{
		row("Presente", "Presente", "Io", map[string]string{"essere": "sono"}),
		row("Presente", "Presente", "Tu", map[string]string{"essere": "sei"}),
	}}
}

func essereOnly() filter.Selection {
	return filter.Selection{Verbs: []string{"essere"}}
}

func TestSingleRowDrillScenario(t *testing.T) {
	store := progress.NewStore(filepath.Join(t.TempDir(), "progress.json"))
	s := New(singleRowTable(), store)
	s.SetSelection(essereOnly())

	q, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "sono", q.Correct)
	assert.False(t, q.IsRepeat)

	// A miss schedules a repeat three questions out and is persisted.
	res, err := s.Submit("sei")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "sono", res.Expected)

	data := store.Load()
	require.Len(t, data.RepeatQueue, 1)
	assert.Equal(t, 3, data.RepeatQueue[0].ScheduledAt)
	assert.Equal(t, 1, data.RepeatQueue[0].Attempts)
	require.Len(t, data.ErrorLog, 1)
	assert.Equal(t, "sei", data.ErrorLog[0].Provided)

	// Two more questions pass before the repeat comes due.
	q, err = s.Next()
	require.NoError(t, err)
	assert.False(t, q.IsRepeat)

	q, err = s.Next()
	require.NoError(t, err)
	assert.True(t, q.IsRepeat)
	assert.Equal(t, "sono", q.Correct)

	// Correctly answering the repeat empties the queue for good.
	res, err = s.Submit("Sono")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Empty(t, store.Load().RepeatQueue)

	// The only combination is now mastered: completion, not an error state.
	_, err = s.Next()
	assert.ErrorIs(t, err, ErrAllCompleted)
}

func TestSubmitIsAccentAndCaseInsensitive(t *testing.T) {
	s := New(singleRowTable(), nil)
	s.SetSelection(essereOnly())

	_, err := s.Next()
	require.NoError(t, err)
	res, err := s.Submit("Sono ")
	require.NoError(t, err)
	assert.True(t, res.Correct, "case and trailing whitespace must not count against the answer")

	stats := s.Stats()
	assert.Equal(t, 1, stats.Questions)
	assert.Equal(t, 1, stats.Score)
	assert.Equal(t, 1.0, stats.Accuracy)
}

func TestSubmitRejectsBlankAnswer(t *testing.T) {
	s := New(singleRowTable(), nil)
	s.SetSelection(essereOnly())

	q, err := s.Next()
	require.NoError(t, err)

	_, err = s.Submit("   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	assert.Equal(t, q, s.Current(), "a rejected submission keeps the question live")
	assert.Zero(t, s.Stats().Questions)
}

func TestSubmitWithoutQuestion(t *testing.T) {
	s := New(singleRowTable(), nil)
	_, err := s.Submit("sono")
	assert.ErrorIs(t, err, ErrNoQuestion)
}

func TestNoFilterMatchIsDistinctFromCompletion(t *testing.T) {
	s := New(singleRowTable(), nil)
	s.SetSelection(filter.Selection{Modes: []string{"Congiuntivo"}})

	_, err := s.Next()
	assert.ErrorIs(t, err, ErrNoFilterMatch)
	assert.NotErrorIs(t, err, ErrAllCompleted)
}

func TestNeverRepeatsMasteredCombinations(t *testing.T) {
	s := New(twoRowTable(), nil)
	s.SetSelection(essereOnly())

	q, err := s.Next()
	require.NoError(t, err)
	mastered := q.Key()
	_, err = s.Submit(q.Correct)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		q, err = s.Next()
		require.NoError(t, err)
		assert.NotEqual(t, mastered, q.Key(), "a correctly answered key must never be re-emitted")
	}
}

func TestRecentHistoryAvoidedWhenAlternativesExist(t *testing.T) {
	s := New(twoRowTable(), nil)
	s.SetSelection(essereOnly())

	first, err := s.Next()
	require.NoError(t, err)
	second, err := s.Next()
	require.NoError(t, err)
	assert.NotEqual(t, first.Key(), second.Key())
}

func TestRepeatMissIncrementsAttempts(t *testing.T) {
	store := progress.NewStore(filepath.Join(t.TempDir(), "progress.json"))
	s := New(singleRowTable(), store)
	s.SetSelection(essereOnly())

	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Submit("sei")
	require.NoError(t, err)

	_, err = s.Next()
	require.NoError(t, err)
	q, err := s.Next()
	require.NoError(t, err)
	require.True(t, q.IsRepeat)

	_, err = s.Submit("siete")
	require.NoError(t, err)

	data := store.Load()
	require.Len(t, data.RepeatQueue, 1)
	assert.Equal(t, 2, data.RepeatQueue[0].Attempts)
	assert.Equal(t, 5, data.RepeatQueue[0].ScheduledAt)
}

func TestQueueRestoredFromStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store := progress.NewStore(path)

	s := New(singleRowTable(), store)
	s.SetSelection(essereOnly())
	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Submit("sei")
	require.NoError(t, err)

	// A fresh session over the same file picks the queue back up.
	restored := New(singleRowTable(), progress.NewStore(path))
	restored.SetSelection(essereOnly())
	assert.Equal(t, 0, restored.PendingRepeats(), "scheduled three questions out, not due yet")

	q, err := restored.Next()
	require.NoError(t, err)
	assert.False(t, q.IsRepeat)
	q, err = restored.Next()
	require.NoError(t, err)
	q, err = restored.Next()
	require.NoError(t, err)
	assert.True(t, q.IsRepeat)
}

func TestTenseNameStatsWorstFirst(t *testing.T) {
	table := &conjugation.Table{Rows: []models.ConjugationRow{
		row("Presente", "Presente", "Io", map[string]string{"essere": "sono"}),
		row("Imperfetto", "Imperfetto", "Io", map[string]string{"essere": "ero"}),
	}}
	s := New(table, nil)

	s.SetSelection(filter.Selection{Tenses: []string{"Presente"}, Verbs: []string{"essere"}})
	q, err := s.Next()
	require.NoError(t, err)
	_, err = s.Submit(q.Correct)
	require.NoError(t, err)

	s.SetSelection(filter.Selection{Tenses: []string{"Imperfetto"}, Verbs: []string{"essere"}})
	q, err = s.Next()
	require.NoError(t, err)
	_, err = s.Submit("sbagliato")
	require.NoError(t, err)

	stats := s.TenseNameStats()
	require.Len(t, stats, 2)
	assert.Equal(t, "Imperfetto", stats[0].Nombre)
	assert.Equal(t, 0.0, stats[0].Accuracy)
	assert.Equal(t, "Presente", stats[1].Nombre)
	assert.Equal(t, 1.0, stats[1].Accuracy)

	total := s.Stats()
	assert.Equal(t, 2, total.Questions)
	assert.Equal(t, 1, total.Score)
	assert.Equal(t, 0.5, total.Accuracy)
}

func TestResetClearsSessionState(t *testing.T) {
	s := New(singleRowTable(), nil)
	s.SetSelection(essereOnly())

	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Submit("sei")
	require.NoError(t, err)

	s.Reset()
	assert.Zero(t, s.Stats().Questions)
	assert.Nil(t, s.Current())
	assert.Empty(t, s.TenseNameStats())

	// The mastered/history sets are gone too: drilling starts over.
	q, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "sono", q.Correct)
	assert.False(t, q.IsRepeat)
}

func TestReviewSortsRows(t *testing.T) {
	table := &conjugation.Table{Rows: []models.ConjugationRow{
		row("Presente", "Presente", "Tu", map[string]string{"essere": "sei"}),
		row("Presente", "Presente", "Io", map[string]string{"essere": "sono"}),
	}}
	s := New(table, nil)

	rows := s.Review()
	require.Len(t, rows, 2)
	assert.Equal(t, "Io", rows[0].Pronombre)
	assert.Equal(t, "Tu", rows[1].Pronombre)
}
