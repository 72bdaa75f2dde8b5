// Package repetition holds the fixed-interval requeue of missed combinations.
package repetition

import "github.com/example/coniugatore/pkg/models"

// Interval is the number of questions before a missed combination comes back.
// Kept constant regardless of the attempt count.
const Interval = 3

// Queue is an ordered collection of repeat items, consulted and mutated only
// by the question selector and the answer-recording step.
type Queue struct {
	items []models.RepeatItem
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Restore creates a queue from previously persisted items, keeping their order.
func Restore(items []models.RepeatItem) *Queue {
	q := &Queue{}
	q.items = append(q.items, items...)
	return q
}

// Enqueue appends an item to the queue.
func (q *Queue) Enqueue(item models.RepeatItem) {
	q.items = append(q.items, item)
}

// TakeDue scans in insertion order and removes and returns the first item
// that is due at question number next, still eligible under the active
// filters, and not already answered correctly this session. Items whose key
// is in the session-correct set are evicted during the scan. Returns nil when
// nothing qualifies.
func (q *Queue) TakeDue(next int, eligible map[string]bool, correct map[string]bool) *models.RepeatItem {
	for i := 0; i < len(q.items); {
		item := q.items[i]
		key := item.Key()
		if correct[key] {
			q.items = append(q.items[:i], q.items[i+1:]...)
			continue
		}
		if item.ScheduledAt <= next && eligible[key] {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return &item
		}
		i++
	}
	return nil
}

// Purge removes every item matching the identity key and returns how many
// were removed.
func (q *Queue) Purge(key string) int {
	removed := 0
	kept := q.items[:0]
	for _, item := range q.items {
		if item.Key() == key {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	q.items = kept
	return removed
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// DueCount returns how many items are due at question number next.
func (q *Queue) DueCount(next int) int {
	n := 0
	for _, item := range q.items {
		if item.ScheduledAt <= next {
			n++
		}
	}
	return n
}

// Items returns a copy of the queue contents for persistence.
func (q *Queue) Items() []models.RepeatItem {
	out := make([]models.RepeatItem, len(q.items))
	copy(out, q.items)
	return out
}
