package orderbook

import (
	"fmt"

	"janus/infra/sequence"
)

// Book is the single-instrument order book. It is single-writer and
// deterministic: the service layer serializes every mutating call, so the
// book itself carries no locks. All counters are owned here, never global.
type Book struct {
	buys  sideList
	sells sideList
	reg   registry
	arena arena

	seqs *sequence.Sequencer // logical timestamps, the priority tie-break
	ids  *sequence.Sequencer // resting order id numbering

	pending []Event
}

func NewBook() *Book {
	return &Book{
		buys:  sideList{side: Buy},
		sells: sideList{side: Sell},
		reg:   newRegistry(),
		seqs:  sequence.New(0),
		ids:   sequence.New(0),
	}
}

func (b *Book) list(s Side) *sideList {
	if s == Buy {
		return &b.buys
	}
	return &b.sells
}

func (b *Book) nextSeq() uint64 {
	return b.seqs.Next()
}

// nextID mints an id for an order about to rest. Market orders never get one.
func (b *Book) nextID() string {
	return fmt.Sprintf("ord-%d", b.ids.Next())
}

// bestNonPegged returns the best price among non-pegged orders on a side.
// Pegged orders are skipped so they can never become their own reference.
func (b *Book) bestNonPegged(l *sideList) (int64, bool) {
	for _, h := range l.handles {
		o := b.arena.at(h)
		if !o.pegged() {
			return o.Price, true
		}
	}
	return 0, false
}

// BestBid returns the highest non-pegged buy price.
func (b *Book) BestBid() (int64, bool) {
	return b.bestNonPegged(&b.buys)
}

// BestOffer returns the lowest non-pegged sell price.
func (b *Book) BestOffer() (int64, bool) {
	return b.bestNonPegged(&b.sells)
}

// Level is one resting order's row in a depth snapshot.
type Level struct {
	Qty   int64
	Price int64
}

// Depth is a display snapshot: one row per resting order, both sides in
// book priority order.
type Depth struct {
	Buys  []Level
	Sells []Level
}

func (b *Book) Depth() Depth {
	var d Depth
	for _, h := range b.buys.handles {
		o := b.arena.at(h)
		d.Buys = append(d.Buys, Level{Qty: o.Qty, Price: o.Price})
	}
	for _, h := range b.sells.handles {
		o := b.arena.at(h)
		d.Sells = append(d.Sells, Level{Qty: o.Qty, Price: o.Price})
	}
	return d
}

// Get returns a copy of the resting order with the given id.
func (b *Book) Get(id string) (Order, bool) {
	h, ok := b.reg.lookup(id)
	if !ok {
		return Order{}, false
	}
	return *b.arena.at(h), true
}

// RestingCount reports how many orders currently rest across both sides.
func (b *Book) RestingCount() int {
	return b.reg.size()
}

// rest places a new order into the book and registers its id.
func (b *Book) rest(o Order) Handle {
	h := b.arena.alloc(o)
	b.list(o.Side).insert(&b.arena, h)
	b.reg.register(o.ID, h)
	return h
}

// retire removes a resting order from its side list, the registry and the
// arena in one step.
func (b *Book) retire(h Handle) {
	o := b.arena.at(h)
	b.list(o.Side).remove(h)
	b.reg.unregister(o.ID)
	b.arena.release(h)
}

// Cancel removes the order with the given id. The defensive ErrAlreadyFilled
// branch covers a registry entry whose order is no longer listed; with both
// structures mutated per-operation it should be unreachable.
func (b *Book) Cancel(id string) error {
	h, ok := b.reg.lookup(id)
	if !ok {
		return ErrOrderNotFound
	}
	o := b.arena.at(h)
	if !b.list(o.Side).remove(h) {
		b.reg.unregister(id)
		b.arena.release(h)
		b.reconcilePegged()
		return ErrAlreadyFilled
	}
	b.reg.unregister(id)
	b.emitOrder(EventOrderCancelled, o)
	b.arena.release(h)
	b.reconcilePegged()
	return nil
}
