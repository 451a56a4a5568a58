package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/middleware"
	"vendora/models"
	"vendora/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyLimit = 30

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inboundPayload struct {
	Action  string `json:"action"`
	Content string `json:"content,omitempty"`
}

// wsUserID authenticates the handshake. Browsers cannot set headers on
// websocket connects, so a ?token= query param is accepted too.
func wsUserID(r *http.Request) string {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = r.Header.Get("Authorization")
	}
	if token == "" {
		if c, err := r.Cookie("auth_token"); err == nil {
			token = c.Value
		}
	}
	claims, err := middleware.ValidateJWT(token)
	if err != nil {
		return ""
	}
	return claims.UserID
}

// WebSocketHandler upgrades the connection and joins the named room.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("room")
		userID := wsUserID(r)
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("ws upgrade error:", err)
			return
		}

		client := newClient(conn, room, userID)

		go replayHistory(client)

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

// replayHistory sends the most recent stored messages, oldest first,
// followed by any still buffered in redis.
func replayHistory(c *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(historyLimit)

	cur, err := db.MessagesCollection.Find(ctx, bson.M{"room": c.Room}, opts)
	if err == nil {
		defer cur.Close(ctx)
		var msgs []models.Message
		if err = cur.All(ctx, &msgs); err == nil {
			for i := len(msgs) - 1; i >= 0; i-- {
				if data, err := json.Marshal(msgs[i]); err == nil {
					if !c.send(data) {
						return
					}
				}
			}
		}
	}

	buffered, err := rdx.Conn.LRange(ctx, bufferKey(c.Room), 0, -1).Result()
	if err != nil {
		return
	}
	for _, raw := range buffered {
		if !c.send([]byte(raw)) {
			return
		}
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for {
		select {
		case msg := <-c.Send:
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(data, &in); err != nil {
			log.Printf("ws invalid payload: %v", err)
			continue
		}
		if in.Action != "chat" || in.Content == "" {
			continue
		}

		msg := models.Message{
			Room:      c.Room,
			SenderID:  c.UserID,
			Content:   in.Content,
			Timestamp: time.Now().Unix(),
		}
		if err := bufferMessage(msg); err != nil {
			log.Printf("ws buffer error: %v", err)
			continue
		}

		if out, err := json.Marshal(msg); err == nil {
			hub.Broadcast(c.Room, out)
		}
	}
}

func bufferKey(room string) string {
	return "chat:" + room + ":messages"
}

// bufferMessage appends to the room's redis list. The background flusher
// moves buffered messages to MongoDB in bulk.
func bufferMessage(msg models.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return rdx.Conn.RPush(ctx, bufferKey(msg.Room), data).Err()
}
