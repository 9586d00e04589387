package shutdown

import (
	"io"
	"sync"
	"testing"

	"datascope/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shutdownFunc func()

func (f shutdownFunc) Shutdown() { f() }

func testManager() *Manager {
	return NewManager(logger.NewZerolog(io.Discard, logger.ErrorLevel))
}

func TestManagerStopsComponentsInReverseOrder(t *testing.T) {
	manager := testManager()

	var mu sync.Mutex
	var order []string
	record := func(name string) shutdownFunc {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}

	manager.Register("repository", record("repository"))
	manager.Register("watcher", record("watcher"))
	manager.Register("server", record("server"))

	manager.Shutdown()

	assert.Equal(t, []string{"server", "watcher", "repository"}, order)
}

func TestManagerShutdownRunsOnce(t *testing.T) {
	manager := testManager()

	calls := 0
	manager.Register("counter", shutdownFunc(func() { calls++ }))

	manager.Shutdown()
	manager.Shutdown()

	assert.Equal(t, 1, calls)
}

func TestManagerInitiateClosesDoneAndCancelsContext(t *testing.T) {
	manager := testManager()

	select {
	case <-manager.Done():
		t.Fatal("done channel closed before initiation")
	default:
	}
	require.NoError(t, manager.Context().Err())

	manager.Initiate()
	manager.Initiate()

	select {
	case <-manager.Done():
	default:
		t.Fatal("done channel still open after initiation")
	}
	assert.Error(t, manager.Context().Err())
}

func TestManagerShutdownImpliesInitiate(t *testing.T) {
	manager := testManager()

	manager.Shutdown()

	select {
	case <-manager.Done():
	default:
		t.Fatal("shutdown must also close the done channel")
	}
}

func TestManagerShutdownWithoutComponents(t *testing.T) {
	manager := testManager()
	manager.Shutdown()
}
