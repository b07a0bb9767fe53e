package orderbook

// Peg rests a new pegged order at the current best non-pegged price on its
// own side. Only bid/buy and offer/sell pairings exist; with no non-pegged
// order to reference the request is rejected rather than resting stale.
func (b *Book) Peg(ref PegKind, side Side, qty int64) (*Resting, error) {
	valid := (ref == PegBid && side == Buy) || (ref == PegOffer && side == Sell)
	if !valid {
		return nil, ErrInvalidPegCombination
	}

	price, ok := b.bestNonPegged(b.list(side))
	if !ok {
		return nil, ErrNoReference
	}

	o := Order{
		ID:    b.nextID(),
		Side:  side,
		Type:  Limit,
		Peg:   ref,
		Price: price,
		Qty:   qty,
		Seq:   b.nextSeq(),
	}
	h := b.rest(o)
	b.emitOrder(EventOrderCreated, b.arena.at(h))

	b.reconcilePegged()
	return restingView(b.arena.at(h)), nil
}

// reconcilePegged realigns pegged orders with their reference after any
// operation that can move a book top. Each side is independent. Running it
// twice in a row without an intervening mutation is a no-op.
func (b *Book) reconcilePegged() {
	b.reconcileSide(&b.buys, PegBid)
	b.reconcileSide(&b.sells, PegOffer)
}

func (b *Book) reconcileSide(l *sideList, kind PegKind) {
	ref, ok := b.bestNonPegged(l)
	if !ok {
		b.evictPegged(l, kind)
		return
	}

	// Collect before reinserting: insert mutates the list being scanned.
	var stale []Handle
	for _, h := range l.handles {
		o := b.arena.at(h)
		if o.Peg == kind && o.Price != ref {
			stale = append(stale, h)
		}
	}
	for _, h := range stale {
		l.remove(h)
		o := b.arena.at(h)
		o.Price = ref
		o.Seq = b.nextSeq() // repricing moves to the back of the new level
		l.insert(&b.arena, h)
		b.emitOrder(EventPegRepriced, o)
	}
}

// evictPegged cancels every pegged order on a side that lost its reference.
func (b *Book) evictPegged(l *sideList, kind PegKind) {
	var gone []Handle
	for _, h := range l.handles {
		if b.arena.at(h).Peg == kind {
			gone = append(gone, h)
		}
	}
	for _, h := range gone {
		o := b.arena.at(h)
		b.emitOrder(EventPegEvicted, o)
		b.retire(h)
	}
}
