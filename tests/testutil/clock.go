package testutil

import (
	"time"

	"github.com/light-bringer/discovery-service/internal/pkg/clock"
)

// NewMockClock creates a mock clock that can be controlled in tests.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}
