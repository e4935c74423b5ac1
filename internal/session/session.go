package session

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vicam001/order-extract/internal/entity"
)

// Session owns the orders accepted during one review sitting. The collection
// is append-only for the session's lifetime and cleared only by explicit
// operator action. A session belongs to a single operator; it is not safe
// for concurrent use.
type Session struct {
	id       uuid.UUID
	logger   *zap.Logger
	orders   []entity.Order
	revision int
}

// NewSession creates an empty review session.
func NewSession(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{id: uuid.New(), logger: logger}
}

// ID identifies the session.
func (s *Session) ID() uuid.UUID { return s.id }

// Append adds accepted orders to the batch.
func (s *Session) Append(orders ...entity.Order) {
	if len(orders) == 0 {
		return
	}
	s.orders = append(s.orders, orders...)
	s.revision++
	s.logger.Info("session appended orders",
		zap.Stringer("session_id", s.id),
		zap.Int("added", len(orders)),
		zap.Int("total", len(s.orders)),
	)
}

// Clear empties the batch. The revision still advances so a viewer keyed on
// it re-renders.
func (s *Session) Clear() {
	s.orders = nil
	s.revision++
	s.logger.Info("session cleared", zap.Stringer("session_id", s.id))
}

// Orders returns a snapshot copy of the accepted orders.
func (s *Session) Orders() []entity.Order {
	out := make([]entity.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Len reports how many orders the session holds.
func (s *Session) Len() int { return len(s.orders) }

// Revision increments on every mutation; viewers use it as a render key.
func (s *Session) Revision() int { return s.revision }

// MarshalIndent renders the batch as the pretty JSON shown in the review
// pane.
func (s *Session) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(entity.OrderList{Orders: s.Orders()}, "", "    ")
	if err != nil {
		s.logger.Warn("session marshal failed", zap.Error(err))
		return nil, err
	}
	return data, nil
}
