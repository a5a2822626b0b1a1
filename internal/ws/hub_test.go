package ws

import (
	"sync"
	"testing"

	"vigil/internal/domain"
)

func newTestClient(userID, companyID uint) *Client {
	return &Client{
		UserID:    userID,
		CompanyID: companyID,
		Role:      domain.RoleAdmin,
		Send:      make(chan []byte, 4),
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, 10)
	hub.Register(c)

	if hub.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount())
	}
	c.Close()
	if hub.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after close, got %d", hub.ClientCount())
	}
	if len(hub.Companies()) != 0 {
		t.Errorf("company set should be empty, got %v", hub.Companies())
	}
}

func TestHub_CloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, 10)
	hub.Register(c)
	c.Close()
	c.Close() // must not panic on double close
}

func TestHub_BroadcastStaysWithinCompany(t *testing.T) {
	hub := NewHub()
	a := newTestClient(1, 10)
	b := newTestClient(2, 10)
	other := newTestClient(3, 20)
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)

	hub.BroadcastToCompany(10, map[string]string{"hello": "world"})

	for _, c := range []*Client{a, b} {
		select {
		case <-c.Send:
		default:
			t.Errorf("client %d in company 10 got no message", c.UserID)
		}
	}
	select {
	case msg := <-other.Send:
		t.Errorf("company 20 client received company 10 broadcast: %s", msg)
	default:
	}
}

func TestHub_BroadcastToEmptyCompany(t *testing.T) {
	hub := NewHub()
	hub.BroadcastToCompany(99, "nobody home") // must not panic
}

func TestHub_SlowClientIsSkippedNotBlocked(t *testing.T) {
	hub := NewHub()
	slow := &Client{UserID: 1, CompanyID: 10, Send: make(chan []byte)} // unbuffered, no reader
	fast := newTestClient(2, 10)
	hub.Register(slow)
	hub.Register(fast)

	done := make(chan struct{})
	go func() {
		hub.BroadcastToCompany(10, "tick")
		close(done)
	}()
	<-done

	select {
	case <-fast.Send:
	default:
		t.Error("fast client should still receive while slow client is skipped")
	}
}

func TestHub_BroadcastDuringDisconnect(t *testing.T) {
	// Viewers drop mid-tick all the time; a broadcast racing a disconnect
	// must never land on a closed channel.
	hub := NewHub()
	clients := make([]*Client, 0, 200)
	for i := 0; i < 200; i++ {
		c := newTestClient(uint(i+1), 10)
		hub.Register(c)
		clients = append(clients, c)
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < 100; i++ {
			hub.BroadcastToCompany(10, "tick")
		}
	}()
	go func() {
		defer wg.Done()
		<-start
		for _, c := range clients {
			c.Close()
		}
	}()
	close(start)
	wg.Wait()

	if hub.ClientCount() != 0 {
		t.Errorf("expected all clients unregistered, %d remain", hub.ClientCount())
	}
}

func TestClient_SendAfterCloseIsDropped(t *testing.T) {
	hub := NewHub()
	c := newTestClient(1, 10)
	hub.Register(c)
	c.Close()
	c.trySend([]byte("late")) // must not panic
}

func TestHub_Companies(t *testing.T) {
	hub := NewHub()
	hub.Register(newTestClient(1, 10))
	hub.Register(newTestClient(2, 10))
	hub.Register(newTestClient(3, 20))

	got := hub.Companies()
	if len(got) != 2 {
		t.Fatalf("expected 2 companies, got %v", got)
	}
	seen := map[uint]bool{}
	for _, id := range got {
		seen[id] = true
	}
	if !seen[10] || !seen[20] {
		t.Errorf("expected companies 10 and 20, got %v", got)
	}
}
