package telegram

import (
	"context"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/locbot/pkg/conv"
	"github.com/sandevgo/locbot/pkg/log"
	"github.com/sandevgo/locbot/pkg/retry"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

// sender implements core.Sender for one chat. Dialog prompts are authored in
// Markdown; Telegram gets them as sanitized HTML.
type sender struct {
	bot     *tele.Bot
	to      tele.Recipient
	retrier *retry.Retrier
}

func newSender(bot *tele.Bot, to tele.Recipient, retrier *retry.Retrier) *sender {
	return &sender{bot: bot, to: to, retrier: retrier}
}

func (s *sender) Send(ctx context.Context, md string) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))

	chunks := splitHTML(html, maxTelegramMsgLen)
	for i, chunk := range chunks {
		err := s.retrier.Do(ctx, func() error {
			_, err := s.bot.Send(s.to, chunk, tele.ModeHTML)
			return err
		})
		if err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		// Try to find a good break point (newline) in the second half of the chunk
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
