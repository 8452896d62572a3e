// Copyright 2026 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package retry provides a function for retrying an operation until it
// succeeds or its context is done.
package retry

import (
	"context"
	"time"

	"zombiezen.com/go/log"
)

// A BackoffStrategy can be called repeatedly to obtain (presumably)
// increasing durations to wait between retries.
type BackoffStrategy interface {
	Duration() time.Duration
}

// Constant is a BackoffStrategy that waits the same duration before every
// retry.
type Constant time.Duration

// Duration returns the constant wait.
func (c Constant) Duration() time.Duration {
	return time.Duration(c)
}

// Do calls a function repeatedly until it returns a nil error, waiting
// between attempts according to the strategy. Do returns an error only if
// the function does not return nil before the Context is Done; the error
// returned is the function's last. The function is guaranteed to be called
// at least once.
//
// The operation should be a verb phrase like "updating init.txt"; each
// failed attempt is logged as a warning naming it.
func Do(ctx context.Context, operation string, strategy BackoffStrategy, f func() error) error {
	var t *time.Timer
	defer func() {
		if t != nil {
			t.Stop()
		}
	}()
	for {
		err := f()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
		d := strategy.Duration()
		if d <= 0 {
			log.Warnf(ctx, "Error %s (will retry): %v", operation, err)
			continue
		}
		log.Warnf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
		if t == nil {
			t = time.NewTimer(d)
		} else {
			t.Reset(d)
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return err
		}
	}
}
