// Package dialog implements the command-interception layer shared by every
// conversational dialog in the bot. Before a dialog's own handling runs, the
// raw turn is checked against three reserved words — cancel, help, reset —
// and, on a match, normal processing is short-circuited with command-specific
// control flow. Dialog-specific behavior plugs in through Hooks and never
// observes command turns.
package dialog

import (
	"context"
	"strings"

	"github.com/sandevgo/locbot/internal/core"
)

// Hooks receives the turns the interceptor does not claim. Each dialog
// variant supplies its own implementation; embed NopHooks for the entry
// points it does not care about.
type Hooks interface {
	// OnMessage handles a non-command user message.
	OnMessage(ctx context.Context, dc core.DialogContext, resp *core.Response) error

	// OnChildResume handles a non-command result returned by a child dialog.
	OnChildResume(ctx context.Context, dc core.DialogContext, resp *core.Response) error
}

// NopHooks ignores every turn handed to it.
type NopHooks struct{}

func (NopHooks) OnMessage(context.Context, core.DialogContext, *core.Response) error {
	return nil
}

func (NopHooks) OnChildResume(context.Context, core.DialogContext, *core.Response) error {
	return nil
}

// StartFunc re-invokes the owning dialog's start routine from the beginning.
type StartFunc func(ctx context.Context, dc core.DialogContext) error

// Base is the reusable interception state machine. A concrete dialog embeds
// *Base and routes both of its lifecycle entry points — new message received,
// child dialog returned — through the single classify dispatch.
//
// isRoot is fixed at construction and never changes for the lifetime of the
// instance: only the root of the dialog stack may claim a reset, every other
// level relays it upward by completing with the unconsumed response.
type Base struct {
	res    *Resources
	isRoot bool
	start  StartFunc
	hooks  Hooks
}

func NewBase(res *Resources, isRoot bool, start StartFunc, hooks Hooks) *Base {
	if hooks == nil {
		hooks = NopHooks{}
	}
	if start == nil {
		start = func(context.Context, core.DialogContext) error { return nil }
	}
	return &Base{
		res:    res,
		isRoot: isRoot,
		start:  start,
		hooks:  hooks,
	}
}

func (b *Base) IsRoot() bool { return b.isRoot }

// OnMessageEvent is the new-message entry point. It adapts the raw text into
// a Response, runs the interceptor, and only on no-match hands the turn to
// the dialog's OnMessage hook. Its signature matches core.MessageHandler so
// it can be re-armed directly with WaitForNextMessage.
func (b *Base) OnMessageEvent(ctx context.Context, dc core.DialogContext, text string) error {
	resp := &core.Response{Message: strings.TrimSpace(text)}

	handled, err := b.classify(ctx, dc, resp)
	if err != nil || handled {
		return err
	}
	return b.hooks.OnMessage(ctx, dc, resp)
}

// Resume is the child-completion entry point. The child's result is already
// a Response, so it goes through the same classify path untouched; a reset
// relayed by a descendant is re-classified here, which is what makes the
// bubble-up chain work level by level until the root claims it.
func (b *Base) Resume(ctx context.Context, dc core.DialogContext, result *core.Response) error {
	handled, err := b.classify(ctx, dc, result)
	if err != nil || handled {
		return err
	}
	return b.hooks.OnChildResume(ctx, dc, result)
}

// classify is the single decision point, evaluated in strict order with the
// first match winning. Matching is case-insensitive and exact, never
// substring. It reports whether the turn was claimed as a command; errors
// come only from the host primitives it invokes.
func (b *Base) classify(ctx context.Context, dc core.DialogContext, resp *core.Response) (bool, error) {
	// Absence of a response is an implicit cancel, not a defect.
	if resp == nil || (resp.Message == "" && resp.Payload == nil) {
		return true, dc.Complete(ctx, nil)
	}

	switch {
	case strings.EqualFold(resp.Message, b.res.Cancel):
		return true, dc.Complete(ctx, nil)

	case strings.EqualFold(resp.Message, b.res.Help):
		// In-place and non-terminating: send the help text, then re-arm the
		// same entry point that brought us here.
		if err := dc.Send(ctx, b.res.HelpMessage); err != nil {
			return true, err
		}
		dc.WaitForNextMessage(b.OnMessageEvent)
		return true, nil

	case strings.EqualFold(resp.Message, b.res.Reset):
		if b.isRoot {
			// The root claims the reset: restart from the beginning,
			// discarding all progress.
			return true, b.start(ctx, dc)
		}
		// Not root: hand the original, unconsumed response up so the parent
		// gets to classify it itself.
		return true, dc.Complete(ctx, resp)
	}

	return false, nil
}
