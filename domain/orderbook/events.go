package orderbook

// EventType enumerates the trade and lifecycle events the book emits.
type EventType uint8

const (
	EventTrade EventType = iota
	EventOrderCreated
	EventOrderModified
	EventOrderCancelled
	EventOrderFilled
	EventPegRepriced
	EventPegEvicted
)

func (t EventType) String() string {
	switch t {
	case EventTrade:
		return "trade"
	case EventOrderCreated:
		return "order_created"
	case EventOrderModified:
		return "order_modified"
	case EventOrderCancelled:
		return "order_cancelled"
	case EventOrderFilled:
		return "order_filled"
	case EventPegRepriced:
		return "peg_repriced"
	case EventPegEvicted:
		return "peg_evicted"
	default:
		return "unknown"
	}
}

// Event records one book mutation. Trade events carry the aggregated
// per-price quantity; lifecycle events carry the order's state at the time
// of the event. ID is empty for trades.
type Event struct {
	Type  EventType
	ID    string
	Side  Side
	Price int64
	Qty   int64
	Seq   uint64
}

func (b *Book) emit(ev Event) {
	b.pending = append(b.pending, ev)
}

func (b *Book) emitOrder(t EventType, o *Order) {
	b.emit(Event{
		Type:  t,
		ID:    o.ID,
		Side:  o.Side,
		Price: o.Price,
		Qty:   o.Qty,
		Seq:   o.Seq,
	})
}

// DrainEvents hands over everything emitted since the previous drain, in
// emission order. Within a single matching walk the per-order fill events
// come first and the aggregated per-price trade events follow. The caller
// owns the returned slice.
func (b *Book) DrainEvents() []Event {
	evs := b.pending
	b.pending = nil
	return evs
}
