package service

import (
	"sync"
	"time"
)

// Monitor keeps process-wide operational counters for the admin stats
// endpoint.
type Monitor struct {
	mu sync.RWMutex

	StoreErrors    int64
	LoginsRejected int64
	UsersCreated   int64
	OrdersPlaced   int64

	LastStoreError time.Time
	LastOrderTime  time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor returns the global monitor instance.
func GetMonitor() *Monitor {
	return globalMonitor
}

func (m *Monitor) RecordStoreError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreErrors++
	m.LastStoreError = time.Now()
}

func (m *Monitor) RecordLoginRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginsRejected++
}

func (m *Monitor) RecordUserCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UsersCreated++
}

func (m *Monitor) RecordOrderPlaced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OrdersPlaced++
	m.LastOrderTime = time.Now()
}

// MonitorSnapshot is the JSON view of the counters.
type MonitorSnapshot struct {
	StoreErrors    int64  `json:"store_errors"`
	LoginsRejected int64  `json:"logins_rejected"`
	UsersCreated   int64  `json:"users_created"`
	OrdersPlaced   int64  `json:"orders_placed"`
	LastStoreError string `json:"last_store_error,omitempty"`
	LastOrderTime  string `json:"last_order_time,omitempty"`
}

// Snapshot returns a consistent copy of the counters.
func (m *Monitor) Snapshot() MonitorSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := MonitorSnapshot{
		StoreErrors:    m.StoreErrors,
		LoginsRejected: m.LoginsRejected,
		UsersCreated:   m.UsersCreated,
		OrdersPlaced:   m.OrdersPlaced,
	}
	if !m.LastStoreError.IsZero() {
		snap.LastStoreError = m.LastStoreError.Format(time.RFC3339)
	}
	if !m.LastOrderTime.IsZero() {
		snap.LastOrderTime = m.LastOrderTime.Format(time.RFC3339)
	}
	return snap
}
