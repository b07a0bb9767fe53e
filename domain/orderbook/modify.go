package orderbook

// ModifyOutcome says what a modify did to the order.
type ModifyOutcome uint8

const (
	// ModifyUpdated: quantity reduced in place, queue position kept.
	ModifyUpdated ModifyOutcome = iota
	// ModifyRequeued: order re-entered the book with a fresh sequence.
	ModifyRequeued
	// ModifyFilled: the new terms traded completely; the identity is retired.
	ModifyFilled
	// ModifyCancelled: non-positive quantity treated as a cancel.
	ModifyCancelled
)

// ModifyResult reports the outcome plus any trades a repriced order executed
// on its way back into the book. Order is the surviving state, nil once the
// identity is retired.
type ModifyResult struct {
	Outcome ModifyOutcome
	Trades  []Trade
	Order   *Resting
}

// Modify changes an order's terms.
//
// Pegged orders only ever change quantity; their price belongs to the
// reconciler, so newPrice is ignored for them. A plain limit order keeps its
// queue position when the price is unchanged and the quantity does not grow;
// any other change pulls it and reruns the limit walk under the same id, so
// it may trade immediately, rest with a fresh sequence, or fill and retire.
func (b *Book) Modify(id string, newPrice, newQty int64) (ModifyResult, error) {
	h, ok := b.reg.lookup(id)
	if !ok {
		return ModifyResult{}, ErrOrderNotFound
	}
	o := b.arena.at(h)

	if o.pegged() {
		return b.modifyPeggedQty(h, newQty), nil
	}

	if newQty <= 0 {
		b.reg.unregister(id)
		b.list(o.Side).remove(h)
		b.emitOrder(EventOrderCancelled, o)
		b.arena.release(h)
		b.reconcilePegged()
		return ModifyResult{Outcome: ModifyCancelled}, nil
	}

	if newPrice == o.Price && newQty <= o.Qty {
		o.Qty = newQty
		b.emitOrder(EventOrderModified, o)
		res := ModifyResult{Outcome: ModifyUpdated, Order: restingView(o)}
		b.reconcilePegged()
		return res, nil
	}

	// Pull and resubmit at the new terms under the same identity.
	side := o.Side
	b.list(side).remove(h)
	b.reg.unregister(id)
	b.arena.release(h)

	seq := b.nextSeq()
	trades, rem := b.walk(side, newPrice, newQty, Limit)

	var res ModifyResult
	if rem > 0 {
		nh := b.rest(Order{
			ID:    id,
			Side:  side,
			Type:  Limit,
			Price: newPrice,
			Qty:   rem,
			Seq:   seq,
		})
		b.emitOrder(EventOrderModified, b.arena.at(nh))
		res = ModifyResult{Outcome: ModifyRequeued, Trades: trades, Order: restingView(b.arena.at(nh))}
	} else {
		b.emit(Event{Type: EventOrderFilled, ID: id, Side: side, Price: newPrice, Seq: seq})
		res = ModifyResult{Outcome: ModifyFilled, Trades: trades}
	}

	b.reconcilePegged()
	return res, nil
}

// ModifyQuantity is the quantity-only modify form. It is how pegged orders
// are resized; a plain limit order needs the price form.
func (b *Book) ModifyQuantity(id string, newQty int64) (ModifyResult, error) {
	h, ok := b.reg.lookup(id)
	if !ok {
		return ModifyResult{}, ErrOrderNotFound
	}
	if !b.arena.at(h).pegged() {
		return ModifyResult{}, ErrPriceRequired
	}
	return b.modifyPeggedQty(h, newQty), nil
}

// modifyPeggedQty applies the exchange resize rule: shrink in place keeping
// priority, grow by re-entering the queue with a fresh sequence.
func (b *Book) modifyPeggedQty(h Handle, newQty int64) ModifyResult {
	o := b.arena.at(h)

	if newQty <= 0 {
		b.reg.unregister(o.ID)
		b.list(o.Side).remove(h)
		b.emitOrder(EventOrderCancelled, o)
		b.arena.release(h)
		b.reconcilePegged()
		return ModifyResult{Outcome: ModifyCancelled}
	}

	if newQty <= o.Qty {
		o.Qty = newQty
		b.emitOrder(EventOrderModified, o)
		res := ModifyResult{Outcome: ModifyUpdated, Order: restingView(o)}
		b.reconcilePegged()
		return res
	}

	l := b.list(o.Side)
	l.remove(h)
	o.Qty = newQty
	o.Seq = b.nextSeq()
	l.insert(&b.arena, h)
	b.emitOrder(EventOrderModified, o)
	res := ModifyResult{Outcome: ModifyRequeued, Order: restingView(o)}
	b.reconcilePegged()
	return res
}
