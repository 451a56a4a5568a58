package mq

import (
	"context"
	"encoding/json"
	"log"

	"vendora/models"
	"vendora/rdx"
)

// EventsChannel is the Redis pub/sub channel carrying post-mutation events.
const EventsChannel = "store-events"

// Emit publishes a mutation event to Redis. Delivery is advisory; a failed
// publish is only logged and never rolls back the write that triggered it.
func Emit(ctx context.Context, eventName string, content models.Event) {
	content.Name = eventName
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] failed to marshal event %s: %v", eventName, err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), EventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish %s: %v", eventName, err)
	}
}

// Subscribe returns a channel of decoded events. Used by the realtime relay.
func Subscribe(ctx context.Context) <-chan models.Event {
	out := make(chan models.Event)
	sub := rdx.Conn.Subscribe(ctx, EventsChannel)
	ch := sub.Channel()
	go func() {
		defer close(out)
		for msg := range ch {
			var ev models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[mq] failed to parse event: %v", err)
				continue
			}
			out <- ev
		}
	}()
	return out
}
