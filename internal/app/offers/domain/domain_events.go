package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// CatalogSyncedEvent is emitted after a catalog snapshot sync completes.
type CatalogSyncedEvent struct {
	SyncID         string
	ItemCount      int
	WindowsChanged int
	SyncedAt       time.Time
}

func (e *CatalogSyncedEvent) EventType() string {
	return "catalog.synced"
}

func (e *CatalogSyncedEvent) AggregateID() string {
	return e.SyncID
}

// SaleWindowChangedEvent is emitted when a sync observes that an item's sale
// window differs from the stored snapshot. Consumers use it to re-arm expiry
// timers against the new end date.
type SaleWindowChangedEvent struct {
	ItemID      string
	OldStartsAt *time.Time
	OldEndsAt   *time.Time
	NewStartsAt *time.Time
	NewEndsAt   *time.Time
	ChangedAt   time.Time
}

func (e *SaleWindowChangedEvent) EventType() string {
	return "catalog.sale_window.changed"
}

func (e *SaleWindowChangedEvent) AggregateID() string {
	return e.ItemID
}
