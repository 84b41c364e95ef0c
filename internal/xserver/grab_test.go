package xserver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

func scripted(statuses ...byte) (func() (byte, error), *int) {
	calls := 0
	return func() (byte, error) {
		s := statuses[calls]
		if calls < len(statuses)-1 {
			calls++
		}
		return s, nil
	}, &calls
}

func TestRetryGrabSucceedsAfterContention(t *testing.T) {
	try, _ := scripted(xproto.GrabStatusAlreadyGrabbed, xproto.GrabStatusAlreadyGrabbed, xproto.GrabStatusSuccess)
	attempts, err := retryGrab(context.Background(), 10, time.Microsecond, try)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetryGrabGivesUp(t *testing.T) {
	try, _ := scripted(xproto.GrabStatusAlreadyGrabbed)
	attempts, err := retryGrab(context.Background(), 5, time.Microsecond, try)
	if !errors.Is(err, ErrAlreadyGrabbed) {
		t.Fatalf("expected already grabbed, got %v", err)
	}
	if attempts != 5 {
		t.Fatalf("expected 5 attempts, got %d", attempts)
	}
}

func TestRetryGrabFailsFastOnOtherStatus(t *testing.T) {
	try, _ := scripted(xproto.GrabStatusFrozen)
	attempts, err := retryGrab(context.Background(), 5, time.Microsecond, try)
	if err == nil || !strings.Contains(err.Error(), "frozen") {
		t.Fatalf("expected frozen status error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", attempts)
	}
}

func TestRetryGrabPropagatesRequestError(t *testing.T) {
	boom := errors.New("connection closed")
	_, err := retryGrab(context.Background(), 5, time.Microsecond, func() (byte, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected request error, got %v", err)
	}
}

func TestRetryGrabHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	try, _ := scripted(xproto.GrabStatusAlreadyGrabbed)
	attempts, err := retryGrab(ctx, 1000, time.Hour, try)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected to stop after the first attempt, got %d", attempts)
	}
}
