package promise

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newCallsRegistry records the order in which handlers ran, so tests can
// assert on the scheduling order across promise chains.
func newCallsRegistry(expectedCalls uint) *callsRegistry {
	return &callsRegistry{
		expectedCalls: expectedCalls,
	}
}

type callsRegistry struct {
	mutex sync.Mutex

	registry      []string
	expectedCalls uint
}

func (r *callsRegistry) Register(place string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if 0 == r.expectedCalls {
		panic("trying to register unexpected call: " + place)
	}

	r.registry = append(r.registry, place)
	r.expectedCalls--
}

// Handler returns a FulfillHandler that registers place and passes the
// value through unchanged.
func (r *callsRegistry) Handler(place string) FulfillHandler {
	return func(value interface{}) (interface{}, error) {
		r.Register(place)

		return value, nil
	}
}

func (r *callsRegistry) Summarize() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return strings.Join(r.registry, "|")
}

func (r *callsRegistry) pendingCalls() uint {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.expectedCalls
}

// AssertCompletedBefore waits until every expected call has been registered
// and asserts the registration order, failing the test when timeLimit
// elapses first.
func (r *callsRegistry) AssertCompletedBefore(t *testing.T, expectedRegistry string, timeLimit time.Duration) {
	deadline := time.After(timeLimit)

	for 0 != r.pendingCalls() {
		select {
		case <-deadline:
			require.FailNowf(
				t,
				"Calls registry assertion timeout",
				"There are still %d expected call(s) left. Calls registered: %v.",
				r.pendingCalls(),
				r.Summarize(),
			)

			return

		case <-time.After(time.Millisecond):
		}
	}

	require.Equal(t, expectedRegistry, r.Summarize())
}

func (r *callsRegistry) AssertCurrentCallsStackIs(t *testing.T, expectedRegistry string) {
	require.Equal(t, expectedRegistry, r.Summarize())
}
