package indicator

import (
	"sync"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// IndicatorRegistry manages the available indicators.
type IndicatorRegistry interface {
	RegisterIndicator(descriptor Descriptor) error
	GetIndicator(name types.IndicatorType) (Descriptor, error)
	ListIndicators() []Descriptor
	RemoveIndicator(name types.IndicatorType) error
	// Compute resolves params against the indicator's defaults and computes it.
	Compute(name types.IndicatorType, bars []types.Bar, params map[string]float64) (Output, error)
}

// IndicatorRegistryV1 is a lookup table keyed by indicator type. Listing
// preserves registration order.
type IndicatorRegistryV1 struct {
	indicators map[types.IndicatorType]Descriptor
	order      []types.IndicatorType
	mu         sync.RWMutex
}

// NewIndicatorRegistry creates an empty indicator registry.
func NewIndicatorRegistry() IndicatorRegistry {
	return &IndicatorRegistryV1{
		indicators: make(map[types.IndicatorType]Descriptor),
		order:      nil,
		mu:         sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry holding every builtin indicator.
func NewDefaultRegistry() IndicatorRegistry {
	registry := NewIndicatorRegistry()
	for _, descriptor := range Builtins() {
		// builtin types are unique
		_ = registry.RegisterIndicator(descriptor)
	}

	return registry
}

// RegisterIndicator adds an indicator to the registry.
func (r *IndicatorRegistryV1) RegisterIndicator(descriptor Descriptor) error {
	if descriptor.Type == "" || descriptor.Compute == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "RegisterIndicator: descriptor needs a type and a compute function")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[descriptor.Type]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "RegisterIndicator: indicator with name %s already registered", descriptor.Type)
	}

	r.indicators[descriptor.Type] = descriptor
	r.order = append(r.order, descriptor.Type)

	return nil
}

// GetIndicator retrieves an indicator by name.
func (r *IndicatorRegistryV1) GetIndicator(name types.IndicatorType) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptor, exists := r.indicators[name]
	if !exists {
		return Descriptor{}, errors.Newf(errors.ErrCodeIndicatorNotFound, "GetIndicator: indicator with name %s not found", name)
	}

	return descriptor, nil
}

// ListIndicators returns every registered indicator in registration order.
func (r *IndicatorRegistryV1) ListIndicators() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		descriptors = append(descriptors, r.indicators[name])
	}

	return descriptors
}

// RemoveIndicator removes an indicator from the registry.
func (r *IndicatorRegistryV1) RemoveIndicator(name types.IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.indicators[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "RemoveIndicator: indicator with name %s not found", name)
	}

	delete(r.indicators, name)

	for i, registered := range r.order {
		if registered == name {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	return nil
}

// Compute implements IndicatorRegistry.
func (r *IndicatorRegistryV1) Compute(name types.IndicatorType, bars []types.Bar, params map[string]float64) (Output, error) {
	descriptor, err := r.GetIndicator(name)
	if err != nil {
		return Output{}, err
	}

	resolved, err := descriptor.Resolve(params)
	if err != nil {
		return Output{}, err
	}

	return descriptor.Compute(bars, resolved), nil
}
