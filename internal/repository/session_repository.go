package repository

import (
	"storefront-service/internal/cart"
)

// SessionRepository stores active editing sessions. Sessions are memory-only
// by contract: they do not survive a restart.
type SessionRepository interface {
	Save(s *cart.Session) error
	FindByID(id string) (*cart.Session, error)
	Delete(id string) error
}
