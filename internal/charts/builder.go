package charts

import (
	"fmt"
	"image"
	"sync"

	"datascope/internal/models"
)

// Builder renders one chart kind from a dataset.
type Builder interface {
	Name() string
	Build(dataset *models.Dataset) (image.Image, error)
}

// Manager maps plot-type tokens to their builders.
type Manager struct {
	builders map[string]Builder
	order    []string
	mu       sync.RWMutex
}

// NewManager creates a manager with every built-in chart kind
// registered.
func NewManager() *Manager {
	manager := &Manager{
		builders: make(map[string]Builder),
	}

	manager.Register(NewLineBuilder())
	manager.Register(NewPairplotBuilder())
	manager.Register(NewHistogramBuilder())
	manager.Register(NewHeatmapBuilder())

	return manager
}

// Register adds a builder under its name, replacing any previous one.
func (m *Manager) Register(builder Builder) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.builders[builder.Name()]; !exists {
		m.order = append(m.order, builder.Name())
	}
	m.builders[builder.Name()] = builder
}

// Lookup returns the builder registered under name.
func (m *Manager) Lookup(name string) (Builder, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	builder, exists := m.builders[name]
	return builder, exists
}

// Build renders the named chart kind for the dataset.
func (m *Manager) Build(name string, dataset *models.Dataset) (image.Image, error) {
	builder, exists := m.Lookup(name)
	if !exists {
		return nil, fmt.Errorf("unknown plot type: %s", name)
	}
	return builder.Build(dataset)
}

// Available returns the registered chart kinds in registration order.
func (m *Manager) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.order))
	copy(names, m.order)
	return names
}
