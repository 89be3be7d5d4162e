package location

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/locbot/internal/core"
	"github.com/sandevgo/locbot/internal/service/dialog"
)

// ConfirmDialog asks the user to confirm a candidate address. It completes
// with the accepted address as its payload; a "no" lets the user supply a
// replacement without leaving the dialog. It is never the root of the stack,
// so a reset here relays up to CaptureDialog.
type ConfirmDialog struct {
	*dialog.Base
	dialog.NopHooks

	candidate       string
	awaitingAddress bool
}

func NewConfirm(res *dialog.Resources, candidate string) *ConfirmDialog {
	d := &ConfirmDialog{candidate: candidate}
	d.Base = dialog.NewBase(res, false, d.begin, d)
	return d
}

func (d *ConfirmDialog) Start(ctx context.Context, dc core.DialogContext) error {
	return d.begin(ctx, dc)
}

func (d *ConfirmDialog) begin(ctx context.Context, dc core.DialogContext) error {
	if err := dc.Send(ctx, fmt.Sprintf("I heard %q — is that right? (yes/no)", d.candidate)); err != nil {
		return err
	}
	dc.WaitForNextMessage(d.OnMessageEvent)
	return nil
}

func (d *ConfirmDialog) OnMessage(ctx context.Context, dc core.DialogContext, resp *core.Response) error {
	if d.awaitingAddress {
		d.candidate = resp.Message
		d.awaitingAddress = false
		return d.begin(ctx, dc)
	}

	switch strings.ToLower(resp.Message) {
	case "yes", "y", "yep", "yeah":
		return dc.Complete(ctx, &core.Response{Message: resp.Message, Payload: d.candidate})
	case "no", "n", "nope":
		d.awaitingAddress = true
		if err := dc.Send(ctx, "Okay — what's the right address then?"); err != nil {
			return err
		}
		dc.WaitForNextMessage(d.OnMessageEvent)
		return nil
	default:
		if err := dc.Send(ctx, "Please answer yes or no."); err != nil {
			return err
		}
		dc.WaitForNextMessage(d.OnMessageEvent)
		return nil
	}
}
