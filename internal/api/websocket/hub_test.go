package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubBroadcastReachesRegisteredClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client

	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast([]byte(`{"stage":"weekly"}`))

	select {
	case msg := <-client.send:
		assert.JSONEq(t, `{"stage":"weekly"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client")
	}

	hub.unregister <- client
	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// zero-capacity send channel with no reader = slow client
	client := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- client

	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast([]byte("update"))

	assert.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}
