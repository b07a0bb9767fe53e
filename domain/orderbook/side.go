package orderbook

// sideList keeps one half of the book in strict price-time order:
// buys by (price desc, seq asc), sells by (price asc, seq asc).
// The front of the list is always the best available counterparty.
type sideList struct {
	side    Side
	handles []Handle
}

// sortsBefore reports whether a takes priority over b on this side.
// Ties are broken only by sequence, giving FIFO within a price level.
func (l *sideList) sortsBefore(a, b *Order) bool {
	if a.Price != b.Price {
		if l.side == Buy {
			return a.Price > b.Price
		}
		return a.Price < b.Price
	}
	return a.Seq < b.Seq
}

// insert places h at its sorted position with a linear scan. An order that
// re-enters the book carries a fresh sequence, so it lands behind everything
// already queued at its price.
func (l *sideList) insert(ar *arena, h Handle) {
	o := ar.at(h)
	i := 0
	for ; i < len(l.handles); i++ {
		if l.sortsBefore(o, ar.at(l.handles[i])) {
			break
		}
	}
	l.handles = append(l.handles, 0)
	copy(l.handles[i+1:], l.handles[i:])
	l.handles[i] = h
}

// remove deletes h from the list, reporting whether it was present.
func (l *sideList) remove(h Handle) bool {
	for i, cur := range l.handles {
		if cur == h {
			l.handles = append(l.handles[:i], l.handles[i+1:]...)
			return true
		}
	}
	return false
}

// front returns the best-priority handle without removing it.
func (l *sideList) front() (Handle, bool) {
	if len(l.handles) == 0 {
		return 0, false
	}
	return l.handles[0], true
}

func (l *sideList) size() int {
	return len(l.handles)
}
