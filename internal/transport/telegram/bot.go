package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/locbot/internal/config"
	"github.com/sandevgo/locbot/internal/core"
	"github.com/sandevgo/locbot/internal/service/stack"
	"github.com/sandevgo/locbot/pkg/log"
	"github.com/sandevgo/locbot/pkg/retry"
)

const baseContextKey = "base_context"

type Bot struct {
	bot        *tele.Bot
	cfg        *config.TelegramConfig
	ownerID    int64
	newRoot    func() core.Dialog
	transcript core.TranscriptRepository
	retrier    *retry.Retrier

	mu       sync.Mutex
	sessions map[int64]*stack.Session
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	newRoot func() core.Dialog,
	transcript core.TranscriptRepository,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		cfg:        cfg,
		ownerID:    cfg.OwnerID,
		newRoot:    newRoot,
		transcript: transcript,
		retrier:    retry.NewDefaultRetrier(),
		sessions:   make(map[int64]*stack.Session),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// session returns the conversation for a chat, creating it on first contact.
func (b *Bot) session(chatID int64) *stack.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.sessions[chatID]; ok {
		return s
	}

	sender := newSender(b.bot, tele.ChatID(chatID), b.retrier)
	s := stack.NewSession(fmt.Sprintf("telegram-%d", chatID), b.newRoot, sender, b.transcript)
	b.sessions[chatID] = s
	return s
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	s := b.session(c.Chat().ID)
	if err := s.Deliver(ctx, c.Text()); err != nil {
		logger.Error().Err(err).Str("conversation", s.ID()).Msg("dialog turn failed")
		return c.Send(fmt.Sprintf("error: %v", err))
	}
	return nil
}
