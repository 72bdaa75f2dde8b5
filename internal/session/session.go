// Package session owns all mutable state of one practice session and
// implements the question selector.
package session

import (
	"errors"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/example/coniugatore/internal/conjugation"
	"github.com/example/coniugatore/internal/filter"
	"github.com/example/coniugatore/internal/normalize"
	"github.com/example/coniugatore/internal/progress"
	"github.com/example/coniugatore/internal/repetition"
	"github.com/example/coniugatore/pkg/models"
)

const (
	// historyCap bounds the recent-history window used to avoid repeats.
	historyCap = 50
	// sampleBudget bounds the rejection-sampling loop before the exhaustive
	// fallback kicks in.
	sampleBudget = 200
)

// First-class selector states and submission rejections.
var (
	// ErrNoFilterMatch means the active filters match no combination at all.
	ErrNoFilterMatch = errors.New("no combination matches the active filters")
	// ErrAllCompleted means every eligible combination has been answered
	// correctly. This is the success terminal state.
	ErrAllCompleted = errors.New("all combinations completed")
	// ErrEmptyAnswer rejects blank submissions before scoring.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrNoQuestion means there is no live question to answer.
	ErrNoQuestion = errors.New("no active question")
)

// Result is the outcome of one answer submission.
type Result struct {
	Correct  bool
	Expected string
	Question models.Question
}

// Session holds one user's drill state. It is single-threaded by design:
// each interaction is handled to completion. Concurrent users must each own
// their own Session.
type Session struct {
	table     *conjugation.Table
	store     *progress.Store
	selection filter.Selection

	queue       *repetition.Queue
	corrects    []models.Attempt
	errs        []models.Attempt
	errorLog    []models.Attempt
	correctKeys map[string]bool
	history     []string

	completed int
	questions int
	score     int

	current         *models.Question
	currentAttempts int

	rnd *rand.Rand
}

// New creates a session over the reference table. The store may be nil for a
// purely in-memory session; otherwise the persisted repeat queue and error
// log are restored at start.
func New(table *conjugation.Table, store *progress.Store) *Session {
	s := &Session{
		table:       table,
		store:       store,
		queue:       repetition.New(),
		correctKeys: make(map[string]bool),
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if store != nil {
		data := store.Load()
		s.queue = repetition.Restore(data.RepeatQueue)
		s.errorLog = data.ErrorLog
	}
	return s
}

// SetSelection replaces the facet selection. The live question, if any, is
// kept; it simply no longer counts for future filters.
func (s *Session) SetSelection(sel filter.Selection) {
	s.selection = sel
}

// Selection returns the current facet selection.
func (s *Session) Selection() filter.Selection {
	return s.selection
}

// Options returns the cascading facet option lists for the current selection.
func (s *Session) Options() filter.Options {
	return filter.FacetOptions(s.table, s.selection)
}

// Current returns the live question, or nil.
func (s *Session) Current() *models.Question {
	return s.current
}

// Next selects and emits the next question. A live unanswered question is
// discarded without recording an attempt. Returns ErrNoFilterMatch when the
// filters match nothing and ErrAllCompleted when the combination space is
// used up.
func (s *Session) Next() (*models.Question, error) {
	if s.current != nil {
		// A skipped question still counts toward repeat scheduling, so
		// skipping cannot starve the queue.
		s.completed++
		s.current = nil
		s.currentAttempts = 0
	}

	rows := filter.Apply(s.table, s.selection)
	if len(rows) == 0 {
		return nil, ErrNoFilterMatch
	}
	verbs := s.selection.ActiveVerbs()
	next := s.completed + 1

	if item := s.queue.TakeDue(next, eligibleKeys(rows, verbs), s.correctKeys); item != nil {
		q := item.Question()
		s.emit(&q, item.Attempts)
		s.save()
		return s.current, nil
	}

	for i := 0; i < sampleBudget; i++ {
		row := rows[s.rnd.Intn(len(rows))]
		shuffled := append([]string(nil), verbs...)
		s.rnd.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		for _, verb := range shuffled {
			if _, ok := row.Forms[verb]; !ok {
				continue
			}
			key := row.Key(verb)
			if s.correctKeys[key] || s.inHistory(key) {
				continue
			}
			q := questionFor(row, verb)
			s.emit(&q, 0)
			return s.current, nil
		}
	}

	// Exhaustive fallback: everything not yet answered correctly. The
	// recent-history exclusion is relaxed when it would leave nothing,
	// otherwise a small table would report completion prematurely.
	var fresh, unanswered []models.Question
	for _, row := range rows {
		for _, verb := range verbs {
			if _, ok := row.Forms[verb]; !ok {
				continue
			}
			key := row.Key(verb)
			if s.correctKeys[key] {
				continue
			}
			q := questionFor(row, verb)
			unanswered = append(unanswered, q)
			if !s.inHistory(key) {
				fresh = append(fresh, q)
			}
		}
	}
	pool := fresh
	if len(pool) == 0 {
		pool = unanswered
	}
	if len(pool) == 0 {
		return nil, ErrAllCompleted
	}
	q := pool[s.rnd.Intn(len(pool))]
	s.emit(&q, 0)
	return s.current, nil
}

// Submit checks the answer against the live question and records the outcome.
func (s *Session) Submit(answer string) (*Result, error) {
	if s.current == nil {
		return nil, ErrNoQuestion
	}
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}

	q := *s.current
	attempt := models.Attempt{
		Verb:      q.Verb,
		Modo:      q.Modo,
		Tiempo:    q.Tiempo,
		Nombre:    q.Nombre,
		Pronombre: q.Pronombre,
		Provided:  strings.TrimSpace(answer),
		Correct:   q.Correct,
		IsRepeat:  q.IsRepeat,
	}
	result := &Result{Expected: q.Correct, Question: q}

	if normalize.Equal(answer, q.Correct) {
		result.Correct = true
		s.score++
		s.questions++
		s.corrects = append(s.corrects, attempt)
		s.correctKeys[q.Key()] = true
		if s.queue.Purge(q.Key()) > 0 {
			s.save()
		}
	} else {
		s.questions++
		s.errs = append(s.errs, attempt)
		s.errorLog = append(s.errorLog, attempt)
		attempts := 1
		if q.IsRepeat {
			attempts = s.currentAttempts + 1
		}
		s.queue.Enqueue(models.RepeatItem{
			Modo:        q.Modo,
			Tiempo:      q.Tiempo,
			Nombre:      q.Nombre,
			Pronombre:   q.Pronombre,
			Genere:      q.Genere,
			Verb:        q.Verb,
			Correct:     q.Correct,
			ScheduledAt: s.completed + repetition.Interval,
			Attempts:    attempts,
		})
		s.save()
	}

	s.completed++
	s.current = nil
	s.currentAttempts = 0
	return result, nil
}

// Reset clears the in-memory session state: ledgers, queue, history window
// and counters. The durable store is left untouched.
func (s *Session) Reset() {
	s.queue = repetition.New()
	s.corrects = nil
	s.errs = nil
	s.correctKeys = make(map[string]bool)
	s.history = nil
	s.completed = 0
	s.questions = 0
	s.score = 0
	s.current = nil
	s.currentAttempts = 0
}

// Stats returns the session totals.
func (s *Session) Stats() models.SessionStats {
	stats := models.SessionStats{Questions: s.questions, Score: s.score}
	if stats.Questions > 0 {
		stats.Accuracy = float64(stats.Score) / float64(stats.Questions)
	}
	return stats
}

// TenseNameStats groups the ledgers by tense name, worst accuracy first.
func (s *Session) TenseNameStats() []models.TenseNameStat {
	byName := make(map[string]*models.TenseNameStat)
	record := func(attempt models.Attempt, correct bool) {
		stat, ok := byName[attempt.Nombre]
		if !ok {
			stat = &models.TenseNameStat{Nombre: attempt.Nombre}
			byName[attempt.Nombre] = stat
		}
		stat.Attempts++
		if correct {
			stat.Corrects++
		} else {
			stat.Errors++
		}
	}
	for _, a := range s.corrects {
		record(a, true)
	}
	for _, a := range s.errs {
		record(a, false)
	}

	stats := make([]models.TenseNameStat, 0, len(byName))
	for _, stat := range byName {
		if stat.Attempts > 0 {
			stat.Accuracy = float64(stat.Corrects) / float64(stat.Attempts)
		}
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Accuracy != stats[j].Accuracy {
			return stats[i].Accuracy < stats[j].Accuracy
		}
		return stats[i].Nombre < stats[j].Nombre
	})
	return stats
}

// Review returns the filtered rows sorted for tabular browsing.
func (s *Session) Review() []models.ConjugationRow {
	rows := filter.Apply(s.table, s.selection)
	conjugation.SortForReview(rows)
	return rows
}

// PendingRepeats returns how many queued items are already due.
func (s *Session) PendingRepeats() int {
	return s.queue.DueCount(s.completed + 1)
}

func (s *Session) emit(q *models.Question, attempts int) {
	s.pushHistory(q.Key())
	s.current = q
	s.currentAttempts = attempts
}

func (s *Session) pushHistory(key string) {
	s.history = append(s.history, key)
	if len(s.history) > historyCap {
		s.history = s.history[len(s.history)-historyCap:]
	}
}

func (s *Session) inHistory(key string) bool {
	for _, k := range s.history {
		if k == key {
			return true
		}
	}
	return false
}

// save persists the queue and error log best-effort; failures are logged and
// the session continues in memory.
func (s *Session) save() {
	if s.store == nil {
		return
	}
	data := progress.Data{RepeatQueue: s.queue.Items(), ErrorLog: s.errorLog}
	if err := s.store.Save(data); err != nil {
		log.Printf("Warning: failed to save progress: %v", err)
	}
}

func eligibleKeys(rows []models.ConjugationRow, verbs []string) map[string]bool {
	keys := make(map[string]bool, len(rows)*len(verbs))
	for _, row := range rows {
		for _, verb := range verbs {
			if _, ok := row.Forms[verb]; ok {
				keys[row.Key(verb)] = true
			}
		}
	}
	return keys
}

func questionFor(row models.ConjugationRow, verb string) models.Question {
	return models.Question{
		Tiempo:    row.Tiempo,
		Nombre:    row.Nombre,
		Modo:      row.Modo,
		Pronombre: row.Pronombre,
		Genere:    row.Genere,
		Verb:      verb,
		Correct:   row.Forms[verb],
	}
}
