package orderfeed

import (
	"context"
	"encoding/json"
	"log"

	"swaadha/models"
	"swaadha/rdx"
)

const eventsChannel = "order-events"

// PublishOrderEvent announces a placed order on the redis channel. Going
// through redis means every running instance feeds its own websocket
// clients. Publish failures are logged, never fatal to the order.
func PublishOrderEvent(ctx context.Context, ev models.OrderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Println("order event marshal error:", err)
		return
	}
	if err := rdx.Conn.Publish(ctx, eventsChannel, data).Err(); err != nil {
		log.Println("order event publish error:", err)
	}
}

// StartSubscriber bridges the redis channel into the hub. Runs until the
// context is cancelled.
func StartSubscriber(ctx context.Context, hub *Hub) {
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("order feed subscriber listening on", eventsChannel)

	go func() {
		defer sub.Close()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				hub.Broadcast([]byte(msg.Payload))
			case <-ctx.Done():
				return
			}
		}
	}()
}
