package stack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/locbot/internal/core"
)

type testDialog struct {
	startFn  func(ctx context.Context, dc core.DialogContext) error
	resumeFn func(ctx context.Context, dc core.DialogContext, result *core.Response) error
}

func (d *testDialog) Start(ctx context.Context, dc core.DialogContext) error {
	return d.startFn(ctx, dc)
}

func (d *testDialog) Resume(ctx context.Context, dc core.DialogContext, result *core.Response) error {
	if d.resumeFn == nil {
		return nil
	}
	return d.resumeFn(ctx, dc, result)
}

type captureSender struct {
	sent []string
	err  error
}

func (s *captureSender) Send(ctx context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, text)
	return nil
}

type memTranscript struct {
	entries []core.TranscriptEntry
}

func (m *memTranscript) Append(ctx context.Context, sessionID, turnID, direction, text string) error {
	m.entries = append(m.entries, core.TranscriptEntry{SessionID: sessionID, TurnID: turnID, Direction: direction, Text: text})
	return nil
}

func (m *memTranscript) Recent(ctx context.Context, sessionID string, limit int) ([]core.TranscriptEntry, error) {
	return m.entries, nil
}

// echoDialog prompts once, then echoes every message back.
func echoDialog() *testDialog {
	d := &testDialog{}
	var arm func(dc core.DialogContext)
	arm = func(dc core.DialogContext) {
		dc.WaitForNextMessage(func(ctx context.Context, dc core.DialogContext, text string) error {
			if err := dc.Send(ctx, "echo: "+text); err != nil {
				return err
			}
			arm(dc)
			return nil
		})
	}
	d.startFn = func(ctx context.Context, dc core.DialogContext) error {
		if err := dc.Send(ctx, "say something"); err != nil {
			return err
		}
		arm(dc)
		return nil
	}
	return d
}

func TestFirstMessageStartsRootDialog(t *testing.T) {
	sender := &captureSender{}
	s := NewSession("conv-1", func() core.Dialog { return echoDialog() }, sender, nil)

	require.NoError(t, s.Deliver(context.Background(), "hi"))
	require.Equal(t, []string{"say something"}, sender.sent)

	require.NoError(t, s.Deliver(context.Background(), "hello"))
	assert.Equal(t, []string{"say something", "echo: hello"}, sender.sent)
}

func TestChildCompletionResumesParentInSameTurn(t *testing.T) {
	sender := &captureSender{}
	var resumed *core.Response

	child := &testDialog{
		startFn: func(ctx context.Context, dc core.DialogContext) error {
			// Complete immediately; the parent must be resumed before the
			// turn ends.
			return dc.Complete(ctx, &core.Response{Payload: "child-result"})
		},
	}
	parent := &testDialog{
		startFn: func(ctx context.Context, dc core.DialogContext) error {
			return dc.Push(ctx, child)
		},
		resumeFn: func(ctx context.Context, dc core.DialogContext, result *core.Response) error {
			resumed = result
			return dc.Complete(ctx, nil)
		},
	}

	s := NewSession("conv-2", func() core.Dialog { return parent }, sender, nil)
	require.NoError(t, s.Deliver(context.Background(), "go"))

	require.NotNil(t, resumed)
	assert.Equal(t, "child-result", resumed.Payload)
}

func TestRootCompletionLeavesSessionIdle(t *testing.T) {
	starts := 0
	newRoot := func() core.Dialog {
		starts++
		return &testDialog{
			startFn: func(ctx context.Context, dc core.DialogContext) error {
				return dc.Complete(ctx, nil)
			},
		}
	}

	s := NewSession("conv-3", newRoot, &captureSender{}, nil)
	require.NoError(t, s.Deliver(context.Background(), "one"))
	require.NoError(t, s.Deliver(context.Background(), "two"))

	assert.Equal(t, 2, starts, "each message to an idle session starts a fresh root")
}

func TestMessageWithoutPendingHandlerIsDropped(t *testing.T) {
	// A dialog that starts but never arms a handler.
	d := &testDialog{
		startFn: func(ctx context.Context, dc core.DialogContext) error { return nil },
	}
	s := NewSession("conv-4", func() core.Dialog { return d }, &captureSender{}, nil)

	require.NoError(t, s.Deliver(context.Background(), "start"))
	require.NoError(t, s.Deliver(context.Background(), "lost"))
}

func TestTranscriptRecordsBothDirections(t *testing.T) {
	transcript := &memTranscript{}
	s := NewSession("conv-5", func() core.Dialog { return echoDialog() }, &captureSender{}, transcript)

	require.NoError(t, s.Deliver(context.Background(), "hi"))
	require.NoError(t, s.Deliver(context.Background(), "ping"))

	require.Len(t, transcript.entries, 4)
	assert.Equal(t, core.DirectionIn, transcript.entries[0].Direction)
	assert.Equal(t, "hi", transcript.entries[0].Text)
	assert.Equal(t, core.DirectionOut, transcript.entries[1].Direction)
	assert.Equal(t, "say something", transcript.entries[1].Text)
	assert.Equal(t, "echo: ping", transcript.entries[3].Text)
}

func TestTranscriptEntriesOfOneTurnShareATurnID(t *testing.T) {
	transcript := &memTranscript{}
	s := NewSession("conv-7", func() core.Dialog { return echoDialog() }, &captureSender{}, transcript)

	require.NoError(t, s.Deliver(context.Background(), "hi"))
	require.NoError(t, s.Deliver(context.Background(), "ping"))

	require.Len(t, transcript.entries, 4)
	assert.NotEmpty(t, transcript.entries[0].TurnID)
	assert.Equal(t, transcript.entries[0].TurnID, transcript.entries[1].TurnID,
		"inbound message and its reply belong to the same turn")
	assert.Equal(t, transcript.entries[2].TurnID, transcript.entries[3].TurnID)
	assert.NotEqual(t, transcript.entries[0].TurnID, transcript.entries[2].TurnID,
		"each turn gets a fresh id")
}

func TestSenderErrorPropagates(t *testing.T) {
	sendErr := errors.New("boom")
	sender := &captureSender{err: sendErr}
	s := NewSession("conv-6", func() core.Dialog { return echoDialog() }, sender, nil)

	err := s.Deliver(context.Background(), "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}
