package service

import (
	"sync"
	"sync/atomic"

	"janus/domain/orderbook"
	"janus/infra/logger"
)

/*
OrderService is the ONLY write entry point into the engine.

Every mutating operation runs under one exclusive critical section, which is
what keeps the registry and the side lists atomic from any caller's point of
view. Queries take the read lock. Boundary validation happens here; the
domain book assumes clean input.
*/
type OrderService struct {
	mu   sync.RWMutex
	book *orderbook.Book
	log  *logger.Logger

	events  chan orderbook.Event
	dropped atomic.Uint64
}

// NewOrderService wires the service. The event channel is buffered; when
// nothing consumes it, publishes are dropped rather than blocking the book.
func NewOrderService(log *logger.Logger) *OrderService {
	return &OrderService{
		book:   orderbook.NewBook(),
		log:    log,
		events: make(chan orderbook.Event, 1024),
	}
}

// Events exposes the trade/lifecycle feed for the broadcaster.
func (s *OrderService) Events() <-chan orderbook.Event {
	return s.events
}

// DroppedEvents reports how many events overflowed the feed.
func (s *OrderService) DroppedEvents() uint64 {
	return s.dropped.Load()
}

func (s *OrderService) publish(evs []orderbook.Event) {
	for _, ev := range evs {
		select {
		case s.events <- ev:
		default:
			s.dropped.Add(1)
		}
	}
}

func evictions(evs []orderbook.Event) []orderbook.Event {
	var out []orderbook.Event
	for _, ev := range evs {
		if ev.Type == orderbook.EventPegEvicted {
			out = append(out, ev)
		}
	}
	return out
}

// LimitAck reports what a limit submission did: aggregated trades, the
// resting residual (nil when fully filled), and any pegged orders evicted by
// the reconciliation that followed.
type LimitAck struct {
	Trades    []orderbook.Trade
	Created   *orderbook.Resting
	Evictions []orderbook.Event
}

// MarketAck reports a market submission's trades. No order is ever created.
type MarketAck struct {
	Trades    []orderbook.Trade
	Evictions []orderbook.Event
}

// CancelAck carries the pegged evictions a cancel triggered.
type CancelAck struct {
	Evictions []orderbook.Event
}

// ModifyAck wraps the domain modify result.
type ModifyAck struct {
	orderbook.ModifyResult
	Evictions []orderbook.Event
}

// PegAck reports the created pegged order.
type PegAck struct {
	Created   *orderbook.Resting
	Evictions []orderbook.Event
}

// SubmitLimit validates and executes a limit order.
func (s *OrderService) SubmitLimit(side orderbook.Side, price, qty int64) (LimitAck, error) {
	if qty <= 0 {
		return LimitAck{}, orderbook.ErrInvalidQuantity
	}
	if price <= 0 {
		return LimitAck{}, orderbook.ErrInvalidPrice
	}

	s.mu.Lock()
	trades, created := s.book.SubmitLimit(side, price, qty)
	evs := s.book.DrainEvents()
	s.mu.Unlock()
	s.publish(evs)

	s.log.Debug("limit order processed",
		logger.Field{Key: "side", Value: side.String()},
		logger.Field{Key: "price", Value: price},
		logger.Field{Key: "qty", Value: qty},
		logger.Field{Key: "trades", Value: len(trades)},
	)
	return LimitAck{Trades: trades, Created: created, Evictions: evictions(evs)}, nil
}

// SubmitMarket validates and executes a market order. Unfilled quantity is
// discarded, never converted into a limit order.
func (s *OrderService) SubmitMarket(side orderbook.Side, qty int64) (MarketAck, error) {
	if qty <= 0 {
		return MarketAck{}, orderbook.ErrInvalidQuantity
	}

	s.mu.Lock()
	trades := s.book.SubmitMarket(side, qty)
	evs := s.book.DrainEvents()
	s.mu.Unlock()
	s.publish(evs)

	s.log.Debug("market order processed",
		logger.Field{Key: "side", Value: side.String()},
		logger.Field{Key: "qty", Value: qty},
		logger.Field{Key: "trades", Value: len(trades)},
	)
	return MarketAck{Trades: trades, Evictions: evictions(evs)}, nil
}

// Cancel removes a resting order by id.
func (s *OrderService) Cancel(id string) (CancelAck, error) {
	s.mu.Lock()
	err := s.book.Cancel(id)
	evs := s.book.DrainEvents()
	s.mu.Unlock()
	s.publish(evs)

	if err != nil {
		return CancelAck{}, err
	}
	s.log.Debug("order cancelled", logger.Field{Key: "id", Value: id})
	return CancelAck{Evictions: evictions(evs)}, nil
}

// Modify changes price and quantity of a resting order. A non-positive
// quantity is the cancel form and passes through; a non-positive price never
// reaches the book.
func (s *OrderService) Modify(id string, newPrice, newQty int64) (ModifyAck, error) {
	if newPrice <= 0 {
		return ModifyAck{}, orderbook.ErrInvalidPrice
	}

	s.mu.Lock()
	res, err := s.book.Modify(id, newPrice, newQty)
	evs := s.book.DrainEvents()
	s.mu.Unlock()
	s.publish(evs)

	if err != nil {
		return ModifyAck{}, err
	}
	s.log.Debug("order modified",
		logger.Field{Key: "id", Value: id},
		logger.Field{Key: "outcome", Value: uint8(res.Outcome)},
	)
	return ModifyAck{ModifyResult: res, Evictions: evictions(evs)}, nil
}

// ModifyQuantity is the quantity-only modify form used for pegged orders.
func (s *OrderService) ModifyQuantity(id string, newQty int64) (ModifyAck, error) {
	s.mu.Lock()
	res, err := s.book.ModifyQuantity(id, newQty)
	evs := s.book.DrainEvents()
	s.mu.Unlock()
	s.publish(evs)

	if err != nil {
		return ModifyAck{}, err
	}
	return ModifyAck{ModifyResult: res, Evictions: evictions(evs)}, nil
}

// Peg creates an order tracking the best price on its own side.
func (s *OrderService) Peg(ref orderbook.PegKind, side orderbook.Side, qty int64) (PegAck, error) {
	if qty <= 0 {
		return PegAck{}, orderbook.ErrInvalidQuantity
	}

	s.mu.Lock()
	created, err := s.book.Peg(ref, side, qty)
	evs := s.book.DrainEvents()
	s.mu.Unlock()
	s.publish(evs)

	if err != nil {
		return PegAck{}, err
	}
	s.log.Debug("pegged order created",
		logger.Field{Key: "id", Value: created.ID},
		logger.Field{Key: "price", Value: created.Price},
	)
	return PegAck{Created: created, Evictions: evictions(evs)}, nil
}

// BestBid returns the best non-pegged buy price.
func (s *OrderService) BestBid() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.BestBid()
}

// BestOffer returns the best non-pegged sell price.
func (s *OrderService) BestOffer() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.BestOffer()
}

// Depth returns a display snapshot of both sides.
func (s *OrderService) Depth() orderbook.Depth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Depth()
}

// Get returns a copy of a resting order.
func (s *OrderService) Get(id string) (orderbook.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Get(id)
}

// RestingCount reports how many orders currently rest.
func (s *OrderService) RestingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.RestingCount()
}
