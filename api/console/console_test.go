package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"janus/infra/logger"
	"janus/service"
)

func newConsole(t *testing.T) (*Console, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(service.NewOrderService(logger.NewNop()), &out), &out
}

func TestExec_LimitCreatesAndPrints(t *testing.T) {
	c, out := newConsole(t)

	assert.True(t, c.Exec("limit sell 101 10"))

	assert.Contains(t, out.String(), "Order created: sell 10 @ 101 ord-1")
}

func TestExec_CrossingLimitPrintsTrade(t *testing.T) {
	c, out := newConsole(t)
	c.Exec("limit sell 101 10")
	out.Reset()

	c.Exec("limit buy 105 4")

	got := out.String()
	assert.Contains(t, got, "Trade, price: 101, qty: 4")
	assert.NotContains(t, got, "Order created", "fully filled order must not print as created")
}

func TestExec_MarketPrintsTradesOnly(t *testing.T) {
	c, out := newConsole(t)
	c.Exec("limit sell 101 4")
	c.Exec("limit sell 102 4")
	out.Reset()

	c.Exec("market buy 6")

	got := out.String()
	assert.Contains(t, got, "Trade, price: 101, qty: 4")
	assert.Contains(t, got, "Trade, price: 102, qty: 2")
}

func TestExec_CancelFlow(t *testing.T) {
	c, out := newConsole(t)
	c.Exec("limit buy 100 10")
	out.Reset()

	c.Exec("cancel order ord-1")
	assert.Contains(t, out.String(), "Order cancelled")

	out.Reset()
	c.Exec("cancel order ord-1")
	assert.Contains(t, out.String(), "Order not found")
}

func TestExec_CancelReportsEvictedPegs(t *testing.T) {
	c, out := newConsole(t)
	c.Exec("limit buy 100 10")
	c.Exec("peg bid buy 5")
	out.Reset()

	c.Exec("cancel order ord-1")

	assert.Contains(t, out.String(), "Pegged order cancelled (no bid reference) ord-2")
}

func TestExec_PegErrors(t *testing.T) {
	c, out := newConsole(t)

	c.Exec("peg bid buy 5")
	assert.Contains(t, out.String(), "There is no bid to peg to.")

	out.Reset()
	c.Exec("limit buy 100 10")
	c.Exec("peg bid sell 5")
	assert.Contains(t, out.String(), "Invalid peg combination")
}

func TestExec_ModifyForms(t *testing.T) {
	c, out := newConsole(t)
	c.Exec("limit buy 100 10")
	out.Reset()

	// Quantity-only on a plain limit order is refused.
	c.Exec("modify order ord-1 5")
	assert.Contains(t, out.String(), "For limit orders use: modify order <id> <price> <qty>")

	out.Reset()
	c.Exec("modify order ord-1 100 5")
	assert.Contains(t, out.String(), "Order modified: buy 5 @ 100 ord-1")

	out.Reset()
	c.Exec("modify order ord-1 100 0")
	assert.Contains(t, out.String(), "Order cancelled ord-1")
}

func TestExec_ModifyQuantityOnPeggedOrder(t *testing.T) {
	c, out := newConsole(t)
	c.Exec("limit buy 100 10")
	c.Exec("peg bid buy 5")
	out.Reset()

	c.Exec("modify order ord-2 3")

	assert.Contains(t, out.String(), "Order modified: buy 3 @ 100 ord-2")
}

func TestExec_PrintBook(t *testing.T) {
	c, out := newConsole(t)
	c.Exec("limit buy 100 5")
	c.Exec("limit sell 103 7")
	out.Reset()

	c.Exec("print book")

	got := out.String()
	assert.Contains(t, got, "Buy Orders")
	assert.Contains(t, got, "Sell Orders")
	assert.Contains(t, got, "5 @ 100")
	assert.Contains(t, got, "7 @ 103")
}

func TestExec_PrintBookEmpty(t *testing.T) {
	c, out := newConsole(t)

	c.Exec("print book")

	// Headers plus one empty row, no panic on an empty book.
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "+"))
}

func TestExec_ExitAndUnknown(t *testing.T) {
	c, out := newConsole(t)

	assert.False(t, c.Exec("exit"))
	assert.False(t, c.Exec("quit"))
	assert.True(t, c.Exec(""))

	c.Exec("frobnicate")
	assert.Contains(t, out.String(), "Unknown command.")
}

func TestRun_ScriptedSession(t *testing.T) {
	c, out := newConsole(t)
	script := strings.Join([]string{
		"limit sell 101 10",
		"limit buy 101 4",
		"market buy 6",
		"print book",
		"exit",
	}, "\n")

	err := c.Run(strings.NewReader(script))

	require.NoError(t, err)
	got := out.String()
	assert.Contains(t, got, "Order created: sell 10 @ 101 ord-1")
	assert.Contains(t, got, "Trade, price: 101, qty: 4")
	assert.Contains(t, got, "Trade, price: 101, qty: 6")
}
