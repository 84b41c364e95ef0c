package xserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/atomicstack/xorg-choose-window/internal/logging/events"
)

const (
	// GrabAttempts bounds how long we wait for a hotkey daemon to release
	// the keyboard.
	GrabAttempts = 1000
	GrabInterval = time.Millisecond
)

// ErrAlreadyGrabbed means another client kept the keyboard for every attempt.
var ErrAlreadyGrabbed = errors.New("already grabbed")

func grabStatusName(status byte) string {
	switch status {
	case xproto.GrabStatusSuccess:
		return "success"
	case xproto.GrabStatusAlreadyGrabbed:
		return "already-grabbed"
	case xproto.GrabStatusInvalidTime:
		return "invalid-time"
	case xproto.GrabStatusNotViewable:
		return "not-viewable"
	case xproto.GrabStatusFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("status-%d", status)
	}
}

// retryGrab calls try until it reports success. Only AlreadyGrabbed is
// retried; any other status or a request error fails immediately.
func retryGrab(ctx context.Context, attempts int, interval time.Duration, try func() (byte, error)) (int, error) {
	timer := time.NewTimer(interval)
	defer timer.Stop()
	for attempt := 1; attempt <= attempts; attempt++ {
		status, err := try()
		if err != nil {
			return attempt, err
		}
		switch status {
		case xproto.GrabStatusSuccess:
			return attempt, nil
		case xproto.GrabStatusAlreadyGrabbed:
		default:
			return attempt, fmt.Errorf("status %d (%s)", status, grabStatusName(status))
		}
		events.Grab.Retry(attempt, grabStatusName(status))
		if attempt == attempts {
			break
		}
		timer.Reset(interval)
		select {
		case <-ctx.Done():
			return attempt, ctx.Err()
		case <-timer.C:
		}
	}
	return attempts, ErrAlreadyGrabbed
}

// GrabKeyboard takes exclusive keyboard input on the root window.
func (c *Conn) GrabKeyboard(ctx context.Context) error {
	attempts, err := retryGrab(ctx, GrabAttempts, GrabInterval, func() (byte, error) {
		reply, err := xproto.GrabKeyboard(c.xu.Conn(), false, c.root, xproto.TimeCurrentTime,
			xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
		if err != nil {
			return 0, err
		}
		return reply.Status, nil
	})
	if err != nil {
		return fmt.Errorf("grab_keyboard: %w", err)
	}
	events.Grab.Acquired(attempts)
	return nil
}

// UngrabKeyboard releases the grab.
func (c *Conn) UngrabKeyboard() {
	xproto.UngrabKeyboard(c.xu.Conn(), xproto.TimeCurrentTime)
	c.xu.Sync()
}
