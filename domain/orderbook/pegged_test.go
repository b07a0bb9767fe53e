package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeg_RejectsCrossCombinations(t *testing.T) {
	b := NewBook()
	b.SubmitLimit(Buy, 100, 10)
	b.SubmitLimit(Sell, 105, 10)

	_, err := b.Peg(PegBid, Sell, 5)
	assert.ErrorIs(t, err, ErrInvalidPegCombination)

	_, err = b.Peg(PegOffer, Buy, 5)
	assert.ErrorIs(t, err, ErrInvalidPegCombination)
}

func TestPeg_NoReferenceOnEmptySide(t *testing.T) {
	b := NewBook()

	_, err := b.Peg(PegBid, Buy, 5)

	assert.ErrorIs(t, err, ErrNoReference)
	assert.Equal(t, 0, b.RestingCount())
}

func TestPeg_PeggedOrderIsNotItsOwnReference(t *testing.T) {
	b := NewBook()
	b.SubmitLimit(Buy, 100, 10)
	_, err := b.Peg(PegBid, Buy, 5)
	require.NoError(t, err)

	// Best bid must keep reporting the non-pegged price even though the
	// pegged order sits at the same level.
	best, ok := b.BestBid()
	require.True(t, ok)
	assert.Equal(t, int64(100), best)
}

func TestPeg_CreatesAtReferencePrice(t *testing.T) {
	b := NewBook()
	b.SubmitLimit(Buy, 100, 10)

	created, err := b.Peg(PegBid, Buy, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(100), created.Price)
	assert.Equal(t, PegBid, created.Peg)
	assert.Equal(t, int64(5), created.Qty)
	assert.Equal(t, 2, b.RestingCount())
}

func TestPeg_RepricesWhenBestBidImproves(t *testing.T) {
	b := NewBook()
	_, o1 := b.SubmitLimit(Buy, 100, 10)
	pegged, err := b.Peg(PegBid, Buy, 5)
	require.NoError(t, err)

	_, o3 := b.SubmitLimit(Buy, 105, 3)
	require.NotNil(t, o3)

	// The pegged order follows the new best bid with a fresh sequence, so
	// it queues behind the order that set the new level.
	p, ok := b.Get(pegged.ID)
	require.True(t, ok)
	assert.Equal(t, int64(105), p.Price)
	assert.Greater(t, p.Seq, mustGet(t, b, o3.ID).Seq)

	// The original reference keeps its price and priority untouched.
	assert.Equal(t, int64(100), mustGet(t, b, o1.ID).Price)

	d := b.Depth()
	require.Len(t, d.Buys, 3)
	assert.Equal(t, Level{Qty: 3, Price: 105}, d.Buys[0])
	assert.Equal(t, Level{Qty: 5, Price: 105}, d.Buys[1])
	assert.Equal(t, Level{Qty: 10, Price: 100}, d.Buys[2])
}

func TestPeg_EvictedWhenReferenceDisappears(t *testing.T) {
	b := NewBook()
	_, ref := b.SubmitLimit(Buy, 100, 10)
	pegged, err := b.Peg(PegBid, Buy, 5)
	require.NoError(t, err)
	b.DrainEvents()

	require.NoError(t, b.Cancel(ref.ID))

	_, ok := b.Get(pegged.ID)
	assert.False(t, ok, "pegged order must not survive without a reference")
	assert.Equal(t, 0, b.RestingCount())

	evs := b.DrainEvents()
	var evicted bool
	for _, ev := range evs {
		if ev.Type == EventPegEvicted && ev.ID == pegged.ID {
			evicted = true
		}
	}
	assert.True(t, evicted, "eviction must be reported")
}

func TestPeg_EvictedWhenReferenceFullyFills(t *testing.T) {
	b := NewBook()
	b.SubmitLimit(Sell, 101, 10)
	pegged, err := b.Peg(PegOffer, Sell, 5)
	require.NoError(t, err)

	// Consume only the reference; the pegged order is younger at the level.
	b.SubmitMarket(Buy, 10)

	_, ok := b.Get(pegged.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, b.RestingCount())
}

func TestPeg_ReconciliationIsIdempotent(t *testing.T) {
	b := NewBook()
	b.SubmitLimit(Buy, 100, 10)
	b.SubmitLimit(Buy, 105, 3)
	_, err := b.Peg(PegBid, Buy, 5)
	require.NoError(t, err)
	b.DrainEvents()

	before := b.Depth()
	seqBefore := b.seqs.Current()

	b.reconcilePegged()
	b.reconcilePegged()

	assert.Equal(t, before, b.Depth())
	assert.Equal(t, seqBefore, b.seqs.Current(), "a no-op reconcile must not burn sequences")
	assert.Empty(t, b.DrainEvents())
}

func TestPeg_FollowsReferenceDownward(t *testing.T) {
	b := NewBook()
	_, low := b.SubmitLimit(Buy, 100, 10)
	_, high := b.SubmitLimit(Buy, 105, 3)
	pegged, err := b.Peg(PegBid, Buy, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(105), mustGet(t, b, pegged.ID).Price)

	require.NoError(t, b.Cancel(high.ID))

	assert.Equal(t, int64(100), mustGet(t, b, pegged.ID).Price)
	assert.Equal(t, int64(100), mustGet(t, b, low.ID).Price)
}

func TestPeg_TradesAsRestingLiquidity(t *testing.T) {
	b := NewBook()
	b.SubmitLimit(Buy, 100, 4)
	pegged, err := b.Peg(PegBid, Buy, 5)
	require.NoError(t, err)

	trades := b.SubmitMarket(Sell, 6)

	require.Len(t, trades, 1)
	assert.Equal(t, Trade{Price: 100, Qty: 6}, trades[0])

	// Reference fully filled; the partially filled pegged order loses its
	// reference and is evicted.
	_, ok := b.Get(pegged.ID)
	assert.False(t, ok)
}

func mustGet(t *testing.T, b *Book, id string) Order {
	t.Helper()
	o, ok := b.Get(id)
	require.True(t, ok)
	return o
}
