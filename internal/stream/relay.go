// Package stream relays generated fragments to a client as event frames.
package stream

import (
	"context"
	"errors"

	"github.com/xxxsen/examprep/internal/ai"
)

var ErrGenerationFailed = errors.New("generation failed")

// Sink delivers frames to one client.
type Sink interface {
	Send(ctx context.Context, f Frame) error
}

// Relay writes the header frames, then one text frame per fragment, then a
// done frame. An error fragment yields an error frame and ends the relay
// without done. Relay returns early when ctx ends or the sink fails; the
// caller must cancel the ctx given to the producer so generation stops.
func Relay(ctx context.Context, fragments <-chan ai.Fragment, sink Sink, header ...Frame) error {
	for _, f := range header {
		if err := sink.Send(ctx, f); err != nil {
			return err
		}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case frag, ok := <-fragments:
			if !ok {
				return sink.Send(ctx, DoneFrame())
			}
			if frag.Err != nil {
				msg := frag.Text
				if msg == "" {
					msg = ai.FallbackText("generation", frag.Err)
				}
				if err := sink.Send(ctx, ErrorFrame(msg)); err != nil {
					return err
				}
				return errors.Join(ErrGenerationFailed, frag.Err)
			}
			if err := sink.Send(ctx, TextFrame(frag.Text)); err != nil {
				return err
			}
		}
	}
}
