package store

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrStoreNotFound = errors.New("store not found")
)

// Provider resolves the store serving a given owner. All owners share one
// database today; the indirection leaves room for per-owner sharding.
type Provider interface {
	Provide(ownerID uuid.UUID) (Store, error)
}

type OwnerStoreProvider struct {
	stores map[string]Store
}

func NewOwnerStoreProvider() *OwnerStoreProvider {
	return &OwnerStoreProvider{
		stores: make(map[string]Store),
	}
}

func (p *OwnerStoreProvider) Provide(ownerID uuid.UUID) (Store, error) {
	if store, ok := p.stores[ownerID.String()]; ok {
		return store, nil
	}

	return nil, ErrStoreNotFound
}

type DefaultProvider struct {
	store Store
}

func NewDefaultProvider(store Store) *DefaultProvider {
	return &DefaultProvider{store: store}
}

func (p *DefaultProvider) Provide(ownerID uuid.UUID) (Store, error) {
	return p.store, nil
}
