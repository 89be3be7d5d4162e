package core

import "context"

// Response is what arrived on one conversational turn: either the trimmed
// free text of a new user message, or the result object a completed child
// dialog handed back. A nil *Response means the turn carried nothing.
type Response struct {
	Message string
	Payload any
}

// MessageHandler is invoked by the host when the next user message arrives
// for a suspended dialog instance.
type MessageHandler func(ctx context.Context, dc DialogContext, text string) error

// DialogContext is the capability surface the dialog-stack engine hands to a
// running dialog instance. One in-flight turn per conversation is guaranteed
// by the engine, so implementations need no locking on behalf of dialogs.
type DialogContext interface {
	// ID identifies the conversation this dialog runs in.
	ID() string

	// Send delivers an outgoing message to the user.
	Send(ctx context.Context, text string) error

	// WaitForNextMessage suspends this dialog instance until another message
	// arrives, then invokes h.
	WaitForNextMessage(h MessageHandler)

	// Complete terminates this dialog instance and hands result to whatever
	// invoked it: the parent dialog, or the end of the conversation if root.
	Complete(ctx context.Context, result *Response) error

	// Push starts child as a nested dialog. The child's completion result is
	// delivered to this dialog's Resume entry point.
	Push(ctx context.Context, child Dialog) error
}

// Dialog is one conversational handler on the stack.
type Dialog interface {
	Start(ctx context.Context, dc DialogContext) error

	// Resume runs when a child dialog pushed by this instance completes.
	Resume(ctx context.Context, dc DialogContext, result *Response) error
}
