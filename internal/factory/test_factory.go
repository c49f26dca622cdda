package factory

import (
	"time"

	"github.com/mcoot/candyledger/internal/config"
	"github.com/mcoot/candyledger/internal/dependencies/mocks"
	"github.com/mcoot/candyledger/internal/storage/memory"
	"github.com/mcoot/candyledger/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MockGateway *mocks.MockGateway
	Memory      *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and the default tuning
func NewTestApp() *TestApp {
	return NewTestAppWithTuning(config.DefaultTuning())
}

// NewTestAppWithTuning is NewTestApp with custom game balance
func NewTestAppWithTuning(tuning config.Tuning) *TestApp {
	backend := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockGateway := mocks.NewMockGateway()

	env := config.Config{
		StorageType:   config.StorageTypeMemory,
		Timezone:      "UTC",
		FlushDelay:    config.DefaultFlushDelay,
		SweepSchedule: "@every 1m",
	}

	app, err := newWithDependencies(env, tuning, backend, mockGateway, mockClock, mockRandom, testutil.NopLogger())
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MockGateway: mockGateway,
		Memory:      backend,
	}
}
