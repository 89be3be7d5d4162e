package dialog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/locbot/internal/core"
)

var testResources = &Resources{
	Cancel:      "cancel",
	Help:        "help",
	Reset:       "reset",
	HelpMessage: "here is some help",
}

// fakeContext records every host primitive the interceptor invokes.
type fakeContext struct {
	sent      []string
	completed bool
	result    *core.Response
	waiting   bool
	handler   core.MessageHandler
	pushed    []core.Dialog
}

func (f *fakeContext) ID() string { return "test-session" }

func (f *fakeContext) Send(ctx context.Context, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeContext) WaitForNextMessage(h core.MessageHandler) {
	f.waiting = true
	f.handler = h
}

func (f *fakeContext) Complete(ctx context.Context, result *core.Response) error {
	f.completed = true
	f.result = result
	return nil
}

func (f *fakeContext) Push(ctx context.Context, child core.Dialog) error {
	f.pushed = append(f.pushed, child)
	return nil
}

type recordingHooks struct {
	messages []*core.Response
	resumes  []*core.Response
}

func (h *recordingHooks) OnMessage(ctx context.Context, dc core.DialogContext, resp *core.Response) error {
	h.messages = append(h.messages, resp)
	return nil
}

func (h *recordingHooks) OnChildResume(ctx context.Context, dc core.DialogContext, resp *core.Response) error {
	h.resumes = append(h.resumes, resp)
	return nil
}

func newTestBase(isRoot bool) (*Base, *recordingHooks, *int) {
	hooks := &recordingHooks{}
	starts := 0
	b := NewBase(testResources, isRoot, func(ctx context.Context, dc core.DialogContext) error {
		starts++
		return nil
	}, hooks)
	return b, hooks, &starts
}

func TestCancelCompletesWithNilResult(t *testing.T) {
	for _, isRoot := range []bool{true, false} {
		for _, input := range []string{"cancel", "CANCEL", "Cancel", "cAnCeL"} {
			dc := &fakeContext{}
			b, hooks, starts := newTestBase(isRoot)

			require.NoError(t, b.OnMessageEvent(context.Background(), dc, input))

			assert.True(t, dc.completed, "input %q root=%v", input, isRoot)
			assert.Nil(t, dc.result)
			assert.Empty(t, dc.sent)
			assert.Empty(t, hooks.messages)
			assert.Zero(t, *starts)
		}
	}
}

func TestEmptyMessageIsImplicitCancel(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		dc := &fakeContext{}
		b, hooks, _ := newTestBase(true)

		require.NoError(t, b.OnMessageEvent(context.Background(), dc, input))

		assert.True(t, dc.completed, "input %q", input)
		assert.Nil(t, dc.result)
		assert.Empty(t, hooks.messages)
	}
}

func TestNilChildResultIsImplicitCancel(t *testing.T) {
	dc := &fakeContext{}
	b, hooks, _ := newTestBase(false)

	require.NoError(t, b.Resume(context.Background(), dc, nil))

	assert.True(t, dc.completed)
	assert.Nil(t, dc.result)
	assert.Empty(t, hooks.resumes)
}

func TestHelpSendsExactlyOneMessageAndKeepsWaiting(t *testing.T) {
	dc := &fakeContext{}
	b, hooks, starts := newTestBase(true)

	require.NoError(t, b.OnMessageEvent(context.Background(), dc, "HELP"))

	require.Len(t, dc.sent, 1)
	assert.Equal(t, testResources.HelpMessage, dc.sent[0])
	assert.True(t, dc.waiting, "dialog must stay armed for the next message")
	assert.False(t, dc.completed)
	assert.Zero(t, *starts)
	assert.Empty(t, hooks.messages)

	// The re-armed handler is the same entry point: a non-command message
	// delivered through it reaches the hook.
	require.NoError(t, dc.handler(context.Background(), dc, "221B Baker Street"))
	require.Len(t, hooks.messages, 1)
	assert.Equal(t, "221B Baker Street", hooks.messages[0].Message)
}

func TestResetAtRootRestartsExactlyOnce(t *testing.T) {
	dc := &fakeContext{}
	b, hooks, starts := newTestBase(true)

	require.NoError(t, b.OnMessageEvent(context.Background(), dc, "reset"))

	assert.Equal(t, 1, *starts)
	assert.Empty(t, dc.sent, "reset at root must not send any message")
	assert.False(t, dc.completed)
	assert.Empty(t, hooks.messages)
}

func TestResetAtNonRootRelaysOriginalResponse(t *testing.T) {
	dc := &fakeContext{}
	b, hooks, starts := newTestBase(false)

	require.NoError(t, b.OnMessageEvent(context.Background(), dc, "RESET"))

	assert.Zero(t, *starts)
	require.True(t, dc.completed)
	require.NotNil(t, dc.result)
	assert.Equal(t, "RESET", dc.result.Message, "parent must receive the unconsumed response")
	assert.Empty(t, hooks.messages)
}

func TestResetBubblesUpToRoot(t *testing.T) {
	// grandchild -> child -> root: each level relays until root claims it.
	grandchildCtx := &fakeContext{}
	grandchild, _, _ := newTestBase(false)
	require.NoError(t, grandchild.OnMessageEvent(context.Background(), grandchildCtx, "Reset"))
	require.True(t, grandchildCtx.completed)

	childCtx := &fakeContext{}
	child, _, _ := newTestBase(false)
	require.NoError(t, child.Resume(context.Background(), childCtx, grandchildCtx.result))
	require.True(t, childCtx.completed)
	assert.Equal(t, "Reset", childCtx.result.Message)

	rootCtx := &fakeContext{}
	root, _, rootStarts := newTestBase(true)
	require.NoError(t, root.Resume(context.Background(), rootCtx, childCtx.result))
	assert.Equal(t, 1, *rootStarts)
	assert.False(t, rootCtx.completed)
}

func TestNonCommandPassesThroughVerbatim(t *testing.T) {
	dc := &fakeContext{}
	b, hooks, starts := newTestBase(true)

	require.NoError(t, b.OnMessageEvent(context.Background(), dc, "  10 Downing Street  "))

	require.Len(t, hooks.messages, 1)
	assert.Equal(t, "10 Downing Street", hooks.messages[0].Message)
	assert.False(t, dc.completed)
	assert.False(t, dc.waiting)
	assert.Zero(t, *starts)
	assert.Empty(t, dc.sent)
}

func TestCommandMatchIsExactNotSubstring(t *testing.T) {
	for _, input := range []string{"resetting", "cancelled", "helpful", "reset please"} {
		dc := &fakeContext{}
		b, hooks, starts := newTestBase(true)

		require.NoError(t, b.OnMessageEvent(context.Background(), dc, input))

		require.Len(t, hooks.messages, 1, "input %q must fall through", input)
		assert.Equal(t, input, hooks.messages[0].Message)
		assert.False(t, dc.completed)
		assert.Zero(t, *starts)
	}
}

func TestChildResultPassesThroughToResumeHook(t *testing.T) {
	dc := &fakeContext{}
	b, hooks, _ := newTestBase(true)

	result := &core.Response{Payload: "742 Evergreen Terrace"}
	require.NoError(t, b.Resume(context.Background(), dc, result))

	require.Len(t, hooks.resumes, 1)
	assert.Same(t, result, hooks.resumes[0])
	assert.False(t, dc.completed)
}

func TestChildCancelPropagatesThroughResume(t *testing.T) {
	// A child that completed with nil reads as cancel at the parent too.
	dc := &fakeContext{}
	b, hooks, _ := newTestBase(false)

	require.NoError(t, b.Resume(context.Background(), dc, &core.Response{Message: "Cancel"}))

	assert.True(t, dc.completed)
	assert.Nil(t, dc.result)
	assert.Empty(t, hooks.resumes)
}

func TestNilHooksDefaultToNoOps(t *testing.T) {
	dc := &fakeContext{}
	b := NewBase(testResources, true, nil, nil)

	require.NoError(t, b.OnMessageEvent(context.Background(), dc, "some address"))
	require.NoError(t, b.Resume(context.Background(), dc, &core.Response{Payload: 42}))
	assert.False(t, dc.completed)
}

func TestNilStartFuncDefaultsToNoOpOnReset(t *testing.T) {
	// A root built without a start routine must still survive a reset.
	dc := &fakeContext{}
	b := NewBase(testResources, true, nil, nil)

	require.NoError(t, b.OnMessageEvent(context.Background(), dc, "reset"))
	assert.False(t, dc.completed)
	assert.Empty(t, dc.sent)

	require.NoError(t, b.Resume(context.Background(), dc, &core.Response{Message: "reset"}))
	assert.False(t, dc.completed)
}
