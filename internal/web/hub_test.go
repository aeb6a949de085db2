package web

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockedby/jobboard/internal/models"
)

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Mock client 1
	client1 := &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
	hub.register <- client1

	// Mock client 2
	client2 := &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
	hub.register <- client2

	// Wait for registration
	time.Sleep(10 * time.Millisecond)

	// Broadcast message
	msg := map[string]string{"type": EventJobPosted, "job_id": "a"}
	msgBytes, _ := json.Marshal(msg)
	hub.broadcast <- msgBytes

	// Verify clients received message
	select {
	case received := <-client1.send:
		assert.Equal(t, msgBytes, received)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Client 1 did not receive message")
	}

	select {
	case received := <-client2.send:
		assert.Equal(t, msgBytes, received)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Client 2 did not receive message")
	}

	// Unregister client 1
	hub.unregister <- client1
	time.Sleep(10 * time.Millisecond)

	// Broadcast another message
	msg2 := []byte("second message")
	hub.broadcast <- msg2

	// Client 1 should NOT receive it (channel closed or nothing sent)
	select {
	case msg, ok := <-client1.send:
		if ok {
			t.Fatalf("Client 1 received message after unregister: %s", msg)
		}
		// if !ok, channel is closed, which is correct behavior for unregistered client
	case <-time.After(50 * time.Millisecond):
		// Success
	}

	// Client 2 SHOULD receive it
	select {
	case received := <-client2.send:
		assert.Equal(t, msg2, received)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Client 2 did not receive second message")
	}
}

func TestHub_BroadcastMethodAndStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.register <- client

	hub.Broadcast([]byte("hello"))

	select {
	case received := <-client.send:
		assert.Equal(t, []byte("hello"), received)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive broadcast")
	}

	hub.Stop()

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed after Stop")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client channel not closed after Stop")
	}

	// must not block once stopped
	hub.Broadcast([]byte("late"))
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow

	hub.Broadcast([]byte("one"))

	select {
	case _, ok := <-slow.send:
		assert.False(t, ok, "slow client should be disconnected")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("slow client was not dropped")
	}
}

func TestJobPostedEvent(t *testing.T) {
	job := &models.Job{
		ID:       "a",
		Title:    "Senior Frontend Developer",
		Company:  &models.Company{Name: "TechCorp"},
		Location: "Bangalore",
		JobType:  models.JobTypeFullTime,
	}

	var evt struct {
		Type    string           `json:"type"`
		Payload JobPostedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(JobPostedEvent(job), &evt))

	assert.Equal(t, EventJobPosted, evt.Type)
	assert.Equal(t, "a", evt.Payload.JobID)
	assert.Equal(t, "TechCorp", evt.Payload.Company)
	assert.Equal(t, "Full-time", evt.Payload.JobType)
}
