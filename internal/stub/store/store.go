// Package store is the in-memory persistence behind the bundled API stub.
// It exists so the client can be developed and exercised end-to-end without
// the real marketplace backend or any external service.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
)

// User is the stub's account record: the public identity plus credentials and
// the role-specific profile captured at registration.
type User struct {
	domain.User
	Email        string
	PasswordHash string
	Address      string
	PhoneNumber  string
	LandArea     float64
	CropType     string
	Age          int
	Skills       []string
	Experience   string
	CreatedAt    time.Time
}

// Store holds all stub state behind one mutex. Orders are never deleted,
// only transitioned.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*User // keyed by username
	orders map[string]*domain.Order
}

func New() *Store {
	return &Store{
		users:  make(map[string]*User),
		orders: make(map[string]*domain.Order),
	}
}

// CreateUser registers a new account. Usernames are unique.
func (s *Store) CreateUser(u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return nil, domain.ErrUserExists
	}

	saved := *u
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	saved.CreatedAt = time.Now().UTC()
	s.users[saved.Username] = &saved

	out := saved
	return &out, nil
}

func (s *Store) FindByUsername(username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *Store) FindByID(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ListLaborers returns every registered laborer, for the farmer-facing directory.
func (s *Store) ListLaborers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0)
	for _, u := range s.users {
		if u.Role == domain.RoleLaborer {
			out = append(out, *u)
		}
	}
	return out
}

// CreateOrder persists a new order and returns the stored copy.
func (s *Store) CreateOrder(o *domain.Order) *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *o
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	s.orders[saved.ID] = &saved

	out := saved
	return &out
}

func (s *Store) GetOrder(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	out := *o
	return &out, nil
}

// UpdateOrderStatus applies a lattice-validated transition and returns the
// updated order. The check and the write happen under one lock so two
// concurrent updates cannot both pass validation.
func (s *Store) UpdateOrderStatus(id string, next domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}
	o.Status = next

	out := *o
	return &out, nil
}

// OrdersByFarmer returns the orders created by the given farmer.
func (s *Store) OrdersByFarmer(farmerID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.FarmerID == farmerID {
			out = append(out, *o)
		}
	}
	return out
}

// OrdersByLaborer returns the orders assigned to the given laborer.
func (s *Store) OrdersByLaborer(laborerID string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.LaborerID == laborerID {
			out = append(out, *o)
		}
	}
	return out
}
