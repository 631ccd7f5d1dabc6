package mocks

import (
	"context"
	"time"

	"github.com/mkoskinen/inviteboard/internal/dependencies/delay"
)

// MockSleeper is a mock implementation of Sleeper for testing.
// It records requested durations instead of sleeping.
type MockSleeper struct {
	// Slept holds every duration passed to Sleep, in order
	Slept []time.Duration
	// Err, if set, is returned from Sleep to simulate cancellation
	Err error
}

// Ensure MockSleeper implements Sleeper
var _ delay.Sleeper = (*MockSleeper)(nil)

// NewMockSleeper creates a MockSleeper
func NewMockSleeper() *MockSleeper {
	return &MockSleeper{}
}

// Sleep records the duration and returns immediately
func (s *MockSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.Slept = append(s.Slept, d)
	return s.Err
}
