// Package console is the line-oriented front end. It owns all command
// parsing and rendering; the engine is only ever touched through the
// service API.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"janus/domain/orderbook"
	"janus/service"
)

const banner = `====================================================================
                     Janus Order Matching Engine
                        (single instrument)
====================================================================`

const help = `Commands:
  limit          <buy/sell> <price> <qty>      -> limit order
  market         <buy/sell> <qty>              -> market order
  peg            <bid/offer> <buy/sell> <qty>  -> pegged order
  modify order   <id> <qty>                    -> resize a pegged order
  modify order   <id> <price> <qty>            -> modify a limit order
  cancel order   <id>                          -> cancel an order
  print book                                   -> show the book
  exit                                         -> quit`

// Console drives one interactive session.
type Console struct {
	svc *service.OrderService
	out io.Writer
}

func New(svc *service.OrderService, out io.Writer) *Console {
	return &Console{svc: svc, out: out}
}

// Run reads commands until exit or EOF.
func (c *Console) Run(r io.Reader) error {
	fmt.Fprintln(c.out, banner)
	fmt.Fprintln(c.out, help)

	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(c.out, ">>> ")
		if !sc.Scan() {
			break
		}
		if !c.Exec(sc.Text()) {
			break
		}
	}
	return sc.Err()
}

// Exec processes a single command line, returning false on exit.
func (c *Console) Exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	switch strings.ToLower(parts[0]) {
	case "exit", "quit":
		return false
	case "print":
		if len(parts) >= 2 && strings.EqualFold(parts[1], "book") {
			printBook(c.out, c.svc.Depth())
			return true
		}
	case "limit":
		c.execLimit(parts)
		return true
	case "market":
		c.execMarket(parts)
		return true
	case "cancel":
		c.execCancel(parts)
		return true
	case "modify":
		c.execModify(parts)
		return true
	case "peg":
		c.execPeg(parts)
		return true
	}

	fmt.Fprintln(c.out, "Unknown command.")
	fmt.Fprintln(c.out, help)
	return true
}

func (c *Console) execLimit(parts []string) {
	if len(parts) != 4 {
		fmt.Fprintln(c.out, "Usage: limit <buy/sell> <price> <qty>")
		return
	}
	side, err := parseSide(parts[1])
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	price, err1 := strconv.ParseInt(parts[2], 10, 64)
	qty, err2 := strconv.ParseInt(parts[3], 10, 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(c.out, "Usage: limit <buy/sell> <price> <qty>")
		return
	}

	ack, err := c.svc.SubmitLimit(side, price, qty)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.printTrades(ack.Trades)
	if ack.Created != nil {
		c.printCreated(ack.Created)
	}
	c.printEvictions(ack.Evictions)
}

func (c *Console) execMarket(parts []string) {
	if len(parts) != 3 {
		fmt.Fprintln(c.out, "Usage: market <buy/sell> <qty>")
		return
	}
	side, err := parseSide(parts[1])
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	qty, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: market <buy/sell> <qty>")
		return
	}

	ack, err := c.svc.SubmitMarket(side, qty)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.printTrades(ack.Trades)
	c.printEvictions(ack.Evictions)
}

func (c *Console) execCancel(parts []string) {
	if len(parts) != 3 || !strings.EqualFold(parts[1], "order") {
		fmt.Fprintln(c.out, "Usage: cancel order <id>")
		return
	}

	ack, err := c.svc.Cancel(parts[2])
	switch {
	case errors.Is(err, orderbook.ErrOrderNotFound):
		fmt.Fprintln(c.out, "Order not found")
	case errors.Is(err, orderbook.ErrAlreadyFilled):
		fmt.Fprintln(c.out, "Order already filled or not active")
	case err != nil:
		fmt.Fprintln(c.out, err)
	default:
		fmt.Fprintln(c.out, "Order cancelled")
		c.printEvictions(ack.Evictions)
	}
}

func (c *Console) execModify(parts []string) {
	if len(parts) < 4 || len(parts) > 5 || !strings.EqualFold(parts[1], "order") {
		fmt.Fprintln(c.out, "Usage: modify order <id> <qty>  OR  modify order <id> <price> <qty>")
		return
	}
	id := parts[2]

	var (
		ack service.ModifyAck
		err error
	)
	if len(parts) == 4 {
		qty, perr := strconv.ParseInt(parts[3], 10, 64)
		if perr != nil {
			fmt.Fprintln(c.out, "Usage: modify order <id> <qty>")
			return
		}
		ack, err = c.svc.ModifyQuantity(id, qty)
	} else {
		price, err1 := strconv.ParseInt(parts[3], 10, 64)
		qty, err2 := strconv.ParseInt(parts[4], 10, 64)
		if err1 != nil || err2 != nil {
			fmt.Fprintln(c.out, "Usage: modify order <id> <price> <qty>")
			return
		}
		ack, err = c.svc.Modify(id, price, qty)
	}

	switch {
	case errors.Is(err, orderbook.ErrOrderNotFound):
		fmt.Fprintln(c.out, "Order not found")
		return
	case errors.Is(err, orderbook.ErrPriceRequired):
		fmt.Fprintln(c.out, "For limit orders use: modify order <id> <price> <qty>")
		return
	case err != nil:
		fmt.Fprintln(c.out, err)
		return
	}

	c.printTrades(ack.Trades)
	switch ack.Outcome {
	case orderbook.ModifyCancelled:
		fmt.Fprintf(c.out, "Order cancelled %s\n", id)
	case orderbook.ModifyFilled:
		fmt.Fprintf(c.out, "Order fully filled %s\n", id)
	default:
		o := ack.Order
		fmt.Fprintf(c.out, "Order modified: %s %d @ %d %s\n", o.Side, o.Qty, o.Price, o.ID)
	}
	c.printEvictions(ack.Evictions)
}

func (c *Console) execPeg(parts []string) {
	if len(parts) != 4 {
		fmt.Fprintln(c.out, "Usage: peg <bid/offer> <buy/sell> <qty>")
		return
	}
	ref, err := parseReference(parts[1])
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	side, err := parseSide(parts[2])
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	qty, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: peg <bid/offer> <buy/sell> <qty>")
		return
	}

	ack, err := c.svc.Peg(ref, side, qty)
	switch {
	case errors.Is(err, orderbook.ErrInvalidPegCombination):
		fmt.Fprintln(c.out, "Invalid peg combination. Use: peg bid buy <qty> or peg offer sell <qty>")
	case errors.Is(err, orderbook.ErrNoReference):
		fmt.Fprintf(c.out, "There is no %s to peg to.\n", ref)
	case err != nil:
		fmt.Fprintln(c.out, err)
	default:
		c.printCreated(ack.Created)
	}
}

func (c *Console) printTrades(trades []orderbook.Trade) {
	for _, tr := range trades {
		fmt.Fprintf(c.out, "Trade, price: %d, qty: %d\n", tr.Price, tr.Qty)
	}
}

func (c *Console) printCreated(o *orderbook.Resting) {
	fmt.Fprintf(c.out, "Order created: %s %d @ %d %s\n", o.Side, o.Qty, o.Price, o.ID)
}

func (c *Console) printEvictions(evs []orderbook.Event) {
	for _, ev := range evs {
		ref := orderbook.PegBid
		if ev.Side == orderbook.Sell {
			ref = orderbook.PegOffer
		}
		fmt.Fprintf(c.out, "Pegged order cancelled (no %s reference) %s\n", ref, ev.ID)
	}
}

func parseSide(s string) (orderbook.Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return orderbook.Buy, nil
	case "sell":
		return orderbook.Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q, expected buy or sell", s)
	}
}

func parseReference(s string) (orderbook.PegKind, error) {
	switch strings.ToLower(s) {
	case "bid":
		return orderbook.PegBid, nil
	case "offer":
		return orderbook.PegOffer, nil
	default:
		return orderbook.PegNone, fmt.Errorf("unknown reference %q, expected bid or offer", s)
	}
}
