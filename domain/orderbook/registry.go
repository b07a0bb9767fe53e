package orderbook

// registry maps order ids to arena handles. An id present here is present in
// exactly one side list; both are mutated inside the same operation, so no
// caller can observe them diverged.
type registry struct {
	byID map[string]Handle
}

func newRegistry() registry {
	return registry{byID: make(map[string]Handle)}
}

func (r *registry) register(id string, h Handle) {
	r.byID[id] = h
}

func (r *registry) unregister(id string) (Handle, bool) {
	h, ok := r.byID[id]
	if ok {
		delete(r.byID, id)
	}
	return h, ok
}

func (r *registry) lookup(id string) (Handle, bool) {
	h, ok := r.byID[id]
	return h, ok
}

func (r *registry) size() int {
	return len(r.byID)
}
