package orderbook

// Side identifies which half of the book an order belongs to.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderType distinguishes resting-capable limit orders from market orders.
type OrderType uint8

const (
	Limit OrderType = iota
	Market
)

// PegKind tags an order whose price tracks the best price on its own side.
// It doubles as the reference named in the peg command.
type PegKind uint8

const (
	PegNone PegKind = iota
	PegBid
	PegOffer
)

func (k PegKind) String() string {
	switch k {
	case PegBid:
		return "bid"
	case PegOffer:
		return "offer"
	default:
		return "none"
	}
}

// Order is a resting entry in the book. Identity (ID, Side, Type, Peg) is
// fixed at creation; Price, Qty and Seq mutate through fills, modifies and
// peg reconciliation. Seq is the sole tie-break at a price level.
type Order struct {
	ID    string
	Side  Side
	Type  OrderType
	Peg   PegKind
	Price int64
	Qty   int64
	Seq   uint64
}

func (o *Order) pegged() bool {
	return o.Peg != PegNone
}

// Resting is the caller-facing view of a resting order. The book hands out
// copies, never pointers into the arena.
type Resting struct {
	ID    string
	Side  Side
	Price int64
	Qty   int64
	Seq   uint64
	Peg   PegKind
}

func restingView(o *Order) *Resting {
	return &Resting{
		ID:    o.ID,
		Side:  o.Side,
		Price: o.Price,
		Qty:   o.Qty,
		Seq:   o.Seq,
		Peg:   o.Peg,
	}
}
