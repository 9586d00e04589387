package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"datascope/internal/logger"
)

// componentTimeout bounds how long a single component may take to stop.
const componentTimeout = 5 * time.Second

// Shutdownable is implemented by components that hold resources to release.
type Shutdownable interface {
	Shutdown()
}

type registration struct {
	name      string
	component Shutdownable
}

// Manager coordinates an orderly shutdown of registered components.
type Manager struct {
	components []registration
	logger     logger.Logger
	mu         sync.Mutex
	done       chan struct{}
	initiate   sync.Once
	run        sync.Once
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewManager creates a shutdown manager.
func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		components: make([]registration, 0),
		logger:     log,
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Register adds a named component to the shutdown sequence.
func (m *Manager) Register(name string, component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, registration{name: name, component: component})
}

// Listen starts watching for termination signals.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		m.logger.Info("shutdown", "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		m.Initiate()
	}()
}

// Initiate marks shutdown as requested and cancels the manager context.
// The component sequence itself runs when Shutdown is called.
func (m *Manager) Initiate() {
	m.initiate.Do(func() {
		m.cancel()
		close(m.done)
	})
}

// Shutdown stops all registered components in reverse registration order.
// It is safe to call more than once; the sequence runs a single time.
func (m *Manager) Shutdown() {
	m.run.Do(m.shutdownAll)
}

func (m *Manager) shutdownAll() {
	m.Initiate()

	m.mu.Lock()
	components := make([]registration, len(m.components))
	copy(components, m.components)
	m.mu.Unlock()

	m.logger.Info("shutdown", "shutdown sequence initiated", map[string]interface{}{
		"components": len(components),
	})

	for i := len(components) - 1; i >= 0; i-- {
		m.shutdownComponent(components[i])
	}

	m.logger.Info("shutdown", "shutdown sequence completed", nil)
}

func (m *Manager) shutdownComponent(reg registration) {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		reg.component.Shutdown()
	}()

	select {
	case <-stopped:
		m.logger.Debug("shutdown", "component stopped", map[string]interface{}{
			"component": reg.name,
		})
	case <-time.After(componentTimeout):
		m.logger.Warning("shutdown", "component shutdown timeout", map[string]interface{}{
			"component": reg.name,
		})
	}
}

// Context returns a context canceled when shutdown is initiated.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Done returns a channel closed when shutdown is initiated.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
