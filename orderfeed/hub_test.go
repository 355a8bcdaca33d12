package orderfeed

import (
	"encoding/json"
	"testing"
	"time"

	"swaadha/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10)}
	hub.register <- client

	ev := models.OrderEvent{OrderID: "ord123", Source: "online", GrandTotal: 580}
	data, _ := json.Marshal(ev)
	hub.Broadcast(data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// Unbuffered channel with no reader: first broadcast must evict it
	// rather than block the hub.
	slow := &Client{Send: make(chan []byte)}
	hub.register <- slow

	hub.Broadcast([]byte(`{"order_id":"a"}`))
	hub.Broadcast([]byte(`{"order_id":"b"}`))

	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("expected slow client channel to be closed")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for eviction")
	}
}
