package chat

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newClient(nil, "room1", "")

	hub.register <- client

	msg := outboundPayload{Action: "chat", Content: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: "room1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client

	select {
	case <-client.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for client shutdown")
	}
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := newClient(nil, "a", "")
	b := newClient(nil, "b", "")
	hub.register <- a
	hub.register <- b

	hub.broadcast <- broadcastMsg{Room: "a", Data: []byte("only-a")}

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for room a message")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("room b unexpectedly received %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

// A history replay can outlive the connection; queueing after the hub
// has dropped the client must refuse cleanly instead of panicking.
func TestClientSendAfterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newClient(nil, "room1", "")
	hub.register <- client
	hub.unregister <- client

	select {
	case <-client.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for client shutdown")
	}

	if client.send([]byte("late")) {
		t.Error("send after shutdown should report failure")
	}
}
