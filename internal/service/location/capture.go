// Package location implements the dialogs that actually capture a place from
// the user. CaptureDialog is the root of the conversation; it delegates
// confirmation of a candidate address to the nested ConfirmDialog. Both are
// built on the shared command-interception base, so cancel/help/reset behave
// the same at every level of the stack.
package location

import (
	"context"
	"fmt"

	"github.com/sandevgo/locbot/internal/core"
	"github.com/sandevgo/locbot/internal/service/dialog"
	"github.com/sandevgo/locbot/pkg/log"
)

// Addresses shorter than this are rejected outright before confirmation.
const minAddressLen = 4

type CaptureDialog struct {
	*dialog.Base
	res    *dialog.Resources
	places core.PlacesRepository
}

// NewCapture builds the root location-capture dialog. places may be nil to
// skip persistence (used by the console transport in dry runs).
func NewCapture(res *dialog.Resources, places core.PlacesRepository) *CaptureDialog {
	d := &CaptureDialog{res: res, places: places}
	d.Base = dialog.NewBase(res, true, d.begin, d)
	return d
}

func (d *CaptureDialog) Start(ctx context.Context, dc core.DialogContext) error {
	return d.begin(ctx, dc)
}

// begin is also the restart target when the user resets the conversation.
func (d *CaptureDialog) begin(ctx context.Context, dc core.DialogContext) error {
	if err := dc.Send(ctx, "Where are you? Send me an address or describe the place."); err != nil {
		return err
	}
	dc.WaitForNextMessage(d.OnMessageEvent)
	return nil
}

func (d *CaptureDialog) OnMessage(ctx context.Context, dc core.DialogContext, resp *core.Response) error {
	if len(resp.Message) < minAddressLen {
		if err := dc.Send(ctx, "That doesn't look like an address to me. Could you try again?"); err != nil {
			return err
		}
		dc.WaitForNextMessage(d.OnMessageEvent)
		return nil
	}
	return dc.Push(ctx, NewConfirm(d.res, resp.Message))
}

func (d *CaptureDialog) OnChildResume(ctx context.Context, dc core.DialogContext, resp *core.Response) error {
	address, ok := resp.Payload.(string)
	if !ok {
		// The child returned something we can't use; start over.
		log.FromCtx(ctx).Warn().Str("conversation", dc.ID()).Msg("unexpected confirmation payload, restarting capture")
		return d.begin(ctx, dc)
	}

	place := core.Place{SessionID: dc.ID(), Address: address}
	if d.places != nil {
		id, err := d.places.SavePlace(ctx, place)
		if err != nil {
			return fmt.Errorf("failed to save place: %w", err)
		}
		place.ID = id
	}

	if err := dc.Send(ctx, fmt.Sprintf("Got it — I've noted %q. Thanks!", address)); err != nil {
		return err
	}
	return dc.Complete(ctx, &core.Response{Payload: place})
}
