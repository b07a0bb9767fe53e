package orderbook

// Trade is one aggregated execution: the total quantity an incoming order
// traded at a single price level. A walk through three resting orders at one
// price reports one Trade.
type Trade struct {
	Price int64
	Qty   int64
}

// SubmitLimit matches an incoming limit order against the opposite side and
// rests the residual, if any, under a freshly minted id. Pegged orders on
// both sides are reconciled before returning, since a fill can move either
// book top.
func (b *Book) SubmitLimit(side Side, price, qty int64) ([]Trade, *Resting) {
	seq := b.nextSeq()
	trades, rem := b.walk(side, price, qty, Limit)

	var created *Resting
	if rem > 0 {
		o := Order{
			ID:    b.nextID(),
			Side:  side,
			Type:  Limit,
			Price: price,
			Qty:   rem,
			Seq:   seq,
		}
		h := b.rest(o)
		b.emitOrder(EventOrderCreated, b.arena.at(h))
		created = restingView(b.arena.at(h))
	}

	b.reconcilePegged()
	return trades, created
}

// SubmitMarket matches against the opposite side with no price bound. Any
// unfilled residual is discarded: a market order never rests and never gets
// an id.
func (b *Book) SubmitMarket(side Side, qty int64) []Trade {
	b.nextSeq() // consume an arrival stamp even though nothing can rest
	trades, _ := b.walk(side, 0, qty, Market)
	b.reconcilePegged()
	return trades
}

// walk is the shared matching loop. It trades the front of the opposite list
// while the incoming quantity lasts and the resting price is acceptable,
// always executing at the resting order's price. Filled resting orders are
// retired in the same step, so no zero-quantity entry ever remains listed.
func (b *Book) walk(side Side, limit, qty int64, otype OrderType) ([]Trade, int64) {
	opp := b.list(side.Opposite())
	var trades []Trade

	for qty > 0 {
		h, ok := opp.front()
		if !ok {
			break
		}
		rest := b.arena.at(h)
		if otype != Market && !crosses(side, limit, rest.Price) {
			break
		}

		traded := min(qty, rest.Qty)
		qty -= traded
		rest.Qty -= traded
		trades = addTrade(trades, rest.Price, traded)

		if rest.Qty == 0 {
			b.emitOrder(EventOrderFilled, rest)
			b.retire(h)
		}
	}

	for _, tr := range trades {
		b.emit(Event{Type: EventTrade, Side: side, Price: tr.Price, Qty: tr.Qty})
	}
	return trades, qty
}

// crosses reports whether a resting price is acceptable to an incoming limit
// order: resting ≤ limit for a buy, resting ≥ limit for a sell.
func crosses(side Side, limit, resting int64) bool {
	if side == Buy {
		return resting <= limit
	}
	return resting >= limit
}

// addTrade aggregates by price level. The walk visits prices monotonically,
// so the matching level is always the last entry.
func addTrade(trades []Trade, price, qty int64) []Trade {
	if n := len(trades); n > 0 && trades[n-1].Price == price {
		trades[n-1].Qty += qty
		return trades
	}
	return append(trades, Trade{Price: price, Qty: qty})
}
