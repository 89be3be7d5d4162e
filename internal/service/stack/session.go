// Package stack hosts conversations. A Session owns a stack of nested
// dialogs for one conversation and delivers inbound events to the top of the
// stack, one turn at a time: a turn runs to completion before the next
// inbound message is handed over, so dialogs never need locking of their own.
package stack

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/sandevgo/locbot/internal/core"
	"github.com/sandevgo/locbot/pkg/log"
)

// Session is one conversation. The zero value is not usable; construct with
// NewSession.
type Session struct {
	id       string
	instance string

	mu         sync.Mutex
	frames     []*frame
	turn       string
	newRoot    func() core.Dialog
	sender     core.Sender
	transcript core.TranscriptRepository
}

// frame is one level of the dialog stack. It doubles as the DialogContext
// handed to its dialog, so completion always pops the right level.
type frame struct {
	s       *Session
	dialog  core.Dialog
	pending core.MessageHandler
}

// NewSession creates a session for the conversation identified by id.
// newRoot builds a fresh root dialog each time the stack starts from idle.
// transcript may be nil to disable turn auditing.
func NewSession(id string, newRoot func() core.Dialog, sender core.Sender, transcript core.TranscriptRepository) *Session {
	return &Session{
		id:         id,
		instance:   uuid.NewString(),
		newRoot:    newRoot,
		sender:     sender,
		transcript: transcript,
	}
}

func (s *Session) ID() string { return s.id }

// Deliver feeds one inbound user message into the conversation and runs the
// resulting turn to completion. An idle session (empty stack) starts a fresh
// root dialog; the triggering message is consumed by its start routine.
func (s *Session) Deliver(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := log.FromCtx(ctx)
	// One id per turn: the inbound message and every reply it triggers share
	// it in the transcript.
	s.turn = uuid.NewString()
	s.record(ctx, core.DirectionIn, text)

	if len(s.frames) == 0 {
		logger.Debug().Str("conversation", s.id).Str("instance", s.instance).Msg("starting root dialog")
		f := s.push(s.newRoot())
		return f.dialog.Start(ctx, f)
	}

	top := s.frames[len(s.frames)-1]
	h := top.pending
	if h == nil {
		logger.Warn().Str("conversation", s.id).Msg("message arrived with no pending handler, dropping")
		return nil
	}
	top.pending = nil
	return h(ctx, top, text)
}

func (s *Session) push(d core.Dialog) *frame {
	f := &frame{s: s, dialog: d}
	s.frames = append(s.frames, f)
	return f
}

// popTo removes f and anything stacked above it.
func (s *Session) popTo(f *frame) {
	for i, cur := range s.frames {
		if cur == f {
			s.frames = s.frames[:i]
			return
		}
	}
}

// top returns the current top frame, or nil when the stack is empty.
func (s *Session) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *Session) record(ctx context.Context, direction, text string) {
	if s.transcript == nil {
		return
	}
	if err := s.transcript.Append(ctx, s.id, s.turn, direction, text); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("conversation", s.id).Msg("failed to append transcript entry")
	}
}

func (f *frame) ID() string { return f.s.id }

func (f *frame) Send(ctx context.Context, text string) error {
	f.s.record(ctx, core.DirectionOut, text)
	if err := f.s.sender.Send(ctx, text); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (f *frame) WaitForNextMessage(h core.MessageHandler) {
	f.pending = h
}

// Complete pops this dialog and, when a parent remains, resumes it with the
// result in the same turn. A root completing leaves the session idle; the
// next message starts a fresh root dialog.
func (f *frame) Complete(ctx context.Context, result *core.Response) error {
	f.s.popTo(f)

	parent := f.s.top()
	if parent == nil {
		log.FromCtx(ctx).Debug().Str("conversation", f.s.id).Msg("conversation stack emptied")
		return nil
	}
	return parent.dialog.Resume(ctx, parent, result)
}

func (f *frame) Push(ctx context.Context, child core.Dialog) error {
	cf := f.s.push(child)
	return child.Start(ctx, cf)
}
