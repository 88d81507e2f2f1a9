package session

import (
	"sync"

	"github.com/example/ministore/internal/datamodels/order"
	"github.com/example/ministore/internal/datamodels/product"
	"github.com/example/ministore/internal/datamodels/user"
)

// Session is the transient per-shopper state: the logged-in identity and
// the in-progress cart. It is never persisted; logout or order placement
// discards the cart.
type Session struct {
	mu   sync.Mutex
	user *user.Identity
	cart []order.CartItem
}

func (s *Session) SetUser(id *user.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = id
}

func (s *Session) User() *user.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// AddItem appends a snapshot of the product to the cart. Name and price
// are frozen here, at add-to-cart time.
func (s *Session) AddItem(p *product.Product, qty int64) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append(s.cart, order.CartItem{
		ProductID: p.ID.Hex(),
		Name:      p.Name,
		Price:     p.Price,
		Qty:       qty,
	})
}

// Items returns a copy of the cart.
func (s *Session) Items() []order.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]order.CartItem(nil), s.cart...)
}

// Total sums price×qty over the snapshots in the cart.
func (s *Session) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.cart {
		total += it.Subtotal()
	}
	return total
}

func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

// Manager owns one Session per cookie-session id, so one process serves
// many concurrent shoppers without cross-contamination.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s = &Session{}
	m.sessions[id] = s
	return s
}

// Drop discards a session and everything in it.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
