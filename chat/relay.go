package chat

import (
	"context"
	"encoding/json"
	"log"

	"vendora/mq"
)

// EventsRoom receives every mutation event published through mq.Emit.
const EventsRoom = "events"

// RunEventRelay forwards store events to websocket subscribers of the
// events room. Run as a goroutine from main.
func RunEventRelay(ctx context.Context, hub *Hub) {
	for ev := range mq.Subscribe(ctx) {
		frame := outboundPayload{
			Action: ev.Name,
			Entity: ev.EntityType,
			ID:     ev.EntityID,
			Sender: ev.UserID,
		}
		data, err := json.Marshal(frame)
		if err != nil {
			log.Printf("relay marshal error: %v", err)
			continue
		}
		hub.Broadcast(EventsRoom, data)
	}
}
