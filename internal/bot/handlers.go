package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/coniugatore/internal/conjugation"
	"github.com/example/coniugatore/internal/filter"
	"github.com/example/coniugatore/internal/session"
	"github.com/example/coniugatore/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const welcomeText = `🇮🇹 Benvenuto al trainer di coniugazioni!

Rispondi alla domanda scrivendo la forma coniugata.

Comandi:
/next — prossima domanda
/stats — statistiche della sessione
/reset — ricomincia da zero
/filtri — opzioni dei filtri disponibili
/verbi, /modi, /tempi, /nomi, /pronomi, /genere — imposta i filtri (valori separati da virgola, vuoto = tutti)
/ripasso — consulta la tabella filtrata
/promemoria — attiva/disattiva i promemoria`

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.sessionFor(chatID)
	defer b.recordDue(chatID, s)

	if !msg.IsCommand() {
		b.handleAnswer(chatID, s, msg.Text)
		return
	}

	switch msg.Command() {
	case "start":
		b.reply(chatID, welcomeText)
		b.sendNextQuestion(chatID, s)
	case "next":
		b.sendNextQuestion(chatID, s)
	case "stats":
		b.sendStats(chatID, s)
	case "reset":
		s.Reset()
		b.reply(chatID, "🔄 Sessione azzerata.")
		b.sendNextQuestion(chatID, s)
	case "filtri":
		b.sendOptions(chatID, s)
	case "verbi", "modi", "tempi", "nomi", "pronomi", "genere":
		b.setFacet(chatID, s, msg.Command(), msg.CommandArguments())
	case "ripasso":
		b.sendReview(chatID, s)
	case "promemoria":
		if b.toggleReminders(chatID) {
			b.reply(chatID, "🔔 Promemoria attivati.")
		} else {
			b.reply(chatID, "🔕 Promemoria disattivati.")
		}
	default:
		b.reply(chatID, "Comando sconosciuto. Usa /start per l'elenco dei comandi.")
	}
}

func (b *Bot) handleAnswer(chatID int64, s *session.Session, text string) {
	result, err := s.Submit(text)
	switch {
	case errors.Is(err, session.ErrNoQuestion):
		b.reply(chatID, "Nessuna domanda attiva. Usa /next per iniziare.")
		return
	case errors.Is(err, session.ErrEmptyAnswer):
		b.reply(chatID, "Inserisci la coniugazione corretta.")
		return
	case err != nil:
		b.reply(chatID, "Qualcosa è andato storto, riprova.")
		return
	}

	if result.Correct {
		b.reply(chatID, fmt.Sprintf("✅ PERFETTO! La risposta corretta è: %s", result.Expected))
	} else {
		b.reply(chatID, fmt.Sprintf("❌ SBAGLIATO. La forma corretta è: %s", result.Expected))
	}
	b.sendNextQuestion(chatID, s)
}

func (b *Bot) sendNextQuestion(chatID int64, s *session.Session) {
	q, err := s.Next()
	switch {
	case errors.Is(err, session.ErrNoFilterMatch):
		b.reply(chatID, "⚠ Nessuna combinazione valida con questi filtri. Cambia i filtri e riprova.")
		return
	case errors.Is(err, session.ErrAllCompleted):
		b.reply(chatID, "🎉 Hai completato tutte le combinazioni! Usa /reset per ricominciare.")
		return
	case err != nil:
		b.reply(chatID, "Qualcosa è andato storto, riprova.")
		return
	}
	b.reply(chatID, formatQuestion(q))
}

func formatQuestion(q *models.Question) string {
	var sb strings.Builder
	if q.IsRepeat {
		sb.WriteString("🔁 Ripetizione!\n")
	}
	fmt.Fprintf(&sb, "Tempo: %s – %s\n", q.Tiempo, q.Nombre)
	fmt.Fprintf(&sb, "Modo: %s • Genere: %s\n", q.Modo, q.Genere)
	fmt.Fprintf(&sb, "Pronome: %s\n", q.Pronombre)
	fmt.Fprintf(&sb, "Verbo: %s\n\n", q.Verb)
	sb.WriteString("Inserisci la coniugazione corretta…")
	return sb.String()
}

func (b *Bot) sendStats(chatID int64, s *session.Session) {
	stats := s.Stats()
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Sessione\nDomande: %d\nCorrette: %d\nPrecisione: %.1f%%\n", stats.Questions, stats.Score, stats.Accuracy*100)

	breakdown := s.TenseNameStats()
	if len(breakdown) > 0 {
		sb.WriteString("\nPer tempo verbale (dal peggiore):\n")
		for _, t := range breakdown {
			fmt.Fprintf(&sb, "• %s: %d/%d (%.1f%%)\n", t.Nombre, t.Corrects, t.Attempts, t.Accuracy*100)
		}
	}
	b.reply(chatID, sb.String())
}

func (b *Bot) sendOptions(chatID int64, s *session.Session) {
	opts := s.Options()
	sel := s.Selection()
	var sb strings.Builder
	sb.WriteString("🔍 Filtri disponibili:\n")
	fmt.Fprintf(&sb, "Modi: %s\n", formatFacet(opts.Modes, sel.Modes))
	fmt.Fprintf(&sb, "Tempi: %s\n", formatFacet(opts.Tenses, sel.Tenses))
	fmt.Fprintf(&sb, "Nomi: %s\n", formatFacet(opts.TenseNames, sel.TenseNames))
	fmt.Fprintf(&sb, "Pronomi: %s\n", formatFacet(opts.Pronouns, sel.Pronouns))
	fmt.Fprintf(&sb, "Genere: %s\n", formatFacet(opts.Genders, sel.Genders))
	fmt.Fprintf(&sb, "Verbi: %s\n", formatFacet(conjugation.Verbs, sel.Verbs))
	b.reply(chatID, sb.String())
}

// formatFacet marks selected values with a check mark.
func formatFacet(options, selected []string) string {
	if len(options) == 0 {
		return "—"
	}
	marked := make([]string, 0, len(options))
	for _, opt := range options {
		if facetContains(selected, opt) {
			marked = append(marked, opt+" ✓")
		} else {
			marked = append(marked, opt)
		}
	}
	return strings.Join(marked, ", ")
}

func facetContains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (b *Bot) setFacet(chatID int64, s *session.Session, facet, args string) {
	var values []string
	for _, v := range strings.Split(args, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	sel := s.Selection()
	switch facet {
	case "verbi":
		sel.Verbs = values
	case "modi":
		sel.Modes = values
	case "tempi":
		sel.Tenses = values
	case "nomi":
		sel.TenseNames = values
	case "pronomi":
		sel.Pronouns = values
	case "genere":
		sel.Genders = values
	}
	s.SetSelection(sel)

	matching := len(filter.Apply(b.table, sel))
	if len(values) == 0 {
		b.reply(chatID, fmt.Sprintf("Filtro %s azzerato. Combinazioni disponibili: %d righe.", facet, matching))
	} else {
		b.reply(chatID, fmt.Sprintf("Filtro %s: %s. Combinazioni disponibili: %d righe.", facet, strings.Join(values, ", "), matching))
	}
}

const reviewRowLimit = 30

func (b *Bot) sendReview(chatID int64, s *session.Session) {
	rows := s.Review()
	if len(rows) == 0 {
		b.reply(chatID, "Nessun risultato con questi filtri.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📘 Ripasso\n")
	limit := len(rows)
	if limit > reviewRowLimit {
		limit = reviewRowLimit
	}
	for _, row := range rows[:limit] {
		forms := make([]string, 0, len(conjugation.Verbs))
		for _, verb := range conjugation.Verbs {
			forms = append(forms, row.Forms[verb])
		}
		fmt.Fprintf(&sb, "%s • %s (%s) • %s: %s\n", row.Modo, row.Tiempo, row.Nombre, row.Pronombre, strings.Join(forms, " / "))
	}
	if len(rows) > limit {
		fmt.Fprintf(&sb, "… e altre %d righe. Restringi i filtri per vederle tutte.", len(rows)-limit)
	}
	b.reply(chatID, sb.String())
}
