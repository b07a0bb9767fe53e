package broadcaster

import (
	"context"
	"encoding/json"

	"janus/domain/orderbook"
	"janus/infra/kafka"
	"janus/infra/logger"
)

// Broadcaster drains the engine event feed and publishes each event as a
// JSON message. Publish failures are logged and the event is dropped; the
// feed must never back-pressure the book.
type Broadcaster struct {
	events   <-chan orderbook.Event
	producer *kafka.Producer
	log      *logger.Logger
}

type wireEvent struct {
	V     int    `json:"v"`
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Side  string `json:"side"`
	Price int64  `json:"price"`
	Qty   int64  `json:"qty"`
	Seq   uint64 `json:"seq"`
}

func New(events <-chan orderbook.Event, producer *kafka.Producer, log *logger.Logger) *Broadcaster {
	return &Broadcaster{
		events:   events,
		producer: producer,
		log:      log,
	}
}

// Run consumes the feed until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Info("broadcaster started")

	for {
		select {
		case <-ctx.Done():
			b.log.Info("broadcaster stopped")
			return

		case ev := <-b.events:
			b.publish(ctx, ev)
		}
	}
}

func (b *Broadcaster) publish(ctx context.Context, ev orderbook.Event) {
	payload, err := json.Marshal(wireEvent{
		V:     1,
		Type:  ev.Type.String(),
		ID:    ev.ID,
		Side:  ev.Side.String(),
		Price: ev.Price,
		Qty:   ev.Qty,
		Seq:   ev.Seq,
	})
	if err != nil {
		b.log.Error(err, logger.Field{Key: "type", Value: ev.Type.String()})
		return
	}

	// Trades have no id; key them by type so ordering still holds per stream.
	key := ev.ID
	if key == "" {
		key = ev.Type.String()
	}

	if err := b.producer.Send(ctx, []byte(key), payload); err != nil {
		b.log.Warn("event publish failed",
			logger.Field{Key: "type", Value: ev.Type.String()},
			logger.Field{Key: "id", Value: ev.ID},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
