// Package bot is the Telegram presentation layer over the drill engine.
package bot

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/example/coniugatore/internal/conjugation"
	"github.com/example/coniugatore/internal/progress"
	"github.com/example/coniugatore/internal/session"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot serves the drill over Telegram. Every chat owns an independent session;
// no drill state is shared across chats.
type Bot struct {
	api    *tgbotapi.BotAPI
	config *Config
	table  *conjugation.Table

	mu        sync.Mutex
	sessions  map[int64]*session.Session
	reminders map[int64]bool
	// due is a snapshot of pending repeat counts, written by the update
	// loop after each interaction. The scheduler goroutine reads only this
	// snapshot; sessions themselves are touched by the update loop alone.
	due map[int64]int
}

// New creates a bot over the loaded reference table.
func New(config *Config, table *conjugation.Table) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram API client: %v", err)
	}

	return &Bot{
		api:       api,
		config:    config,
		table:     table,
		sessions:  make(map[int64]*session.Session),
		reminders: make(map[int64]bool),
		due:       make(map[int64]int),
	}, nil
}

// Start runs the update loop until the context is canceled.
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

// sessionFor returns the chat's session, creating it on first contact with
// its own progress file.
func (b *Bot) sessionFor(chatID int64) *session.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sessions[chatID]; ok {
		return s
	}
	store := progress.NewStore(filepath.Join(b.config.ProgressDir, fmt.Sprintf("progress_%d.json", chatID)))
	s := session.New(b.table, store)
	b.sessions[chatID] = s
	return s
}

// SendReminder implements scheduler.Notifier.
func (b *Bot) SendReminder(chatID int64, dueCount int) error {
	text := fmt.Sprintf("⏰ Hai %d ripetizioni in attesa. Usa /next per continuare!", dueCount)
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// ChatsWithDueRepeats implements scheduler.Notifier: chats that opted into
// reminders and have due repeat items, read from the due-count snapshot.
func (b *Bot) ChatsWithDueRepeats() map[int64]int {
	b.mu.Lock()
	defer b.mu.Unlock()

	due := make(map[int64]int)
	for chatID, n := range b.due {
		if b.reminders[chatID] && n > 0 {
			due[chatID] = n
		}
	}
	return due
}

// recordDue refreshes the chat's due-count snapshot. Must be called from the
// update loop, which owns the session.
func (b *Bot) recordDue(chatID int64, s *session.Session) {
	n := s.PendingRepeats()
	b.mu.Lock()
	b.due[chatID] = n
	b.mu.Unlock()
}

func (b *Bot) toggleReminders(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reminders[chatID] = !b.reminders[chatID]
	return b.reminders[chatID]
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}
