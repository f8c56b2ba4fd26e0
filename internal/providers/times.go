package providers

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// anchorTime places an "HH:MM" feed time onto the travel date, UTC.
func anchorTime(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad feed time %q: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// simulateLatency mimics the upstream round trip of the stub feeds.
func simulateLatency(ctx context.Context, baseMillis int) error {
	delay := time.Duration(baseMillis+rand.Intn(baseMillis)) * time.Millisecond
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
