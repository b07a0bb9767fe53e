package orderbook

// Handle addresses an order slot in the arena. Side lists and the registry
// share handles instead of aliasing *Order, so both structures can be kept
// in lockstep and removal never needs an identity scan.
type Handle uint32

// arena is a grow-on-demand slab of orders with a free list. Released slots
// are zeroed and recycled before the slab grows again.
type arena struct {
	slots []Order
	free  []Handle
}

func (a *arena) alloc(o Order) Handle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = o
		return h
	}
	a.slots = append(a.slots, o)
	return Handle(len(a.slots) - 1)
}

// at returns the live order in slot h. The pointer is only valid until the
// slot is released.
func (a *arena) at(h Handle) *Order {
	return &a.slots[h]
}

func (a *arena) release(h Handle) {
	a.slots[h] = Order{}
	a.free = append(a.free, h)
}

// live reports how many slots are currently allocated.
func (a *arena) live() int {
	return len(a.slots) - len(a.free)
}
