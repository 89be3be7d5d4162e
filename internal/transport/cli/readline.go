package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/locbot/internal/config"
	"github.com/sandevgo/locbot/internal/core"
	"github.com/sandevgo/locbot/internal/service/stack"
	"github.com/sandevgo/locbot/pkg/log"
)

const sessionID = "cli-local"

// ReadLine is the local console transport: one session, plain text in and out.
type ReadLine struct {
	cfg     *config.AppConfig
	rl      *readline.Instance
	session *stack.Session
}

func NewReadLine(cfg *config.AppConfig, newRoot func() core.Dialog, transcript core.TranscriptRepository) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	r := &ReadLine{cfg: cfg, rl: rl}
	r.session = stack.NewSession(sessionID, newRoot, &consoleSender{out: rl.Stdout()}, transcript)
	return r, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("console chat started. Type 'exit' to quit.")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if err := r.session.Deliver(ctx, line); err != nil {
			logger.Error().Err(err).Msg("dialog turn failed")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

type consoleSender struct {
	out io.Writer
}

func (s *consoleSender) Send(ctx context.Context, text string) error {
	_, err := fmt.Fprintf(s.out, "%s\n", text)
	return err
}
