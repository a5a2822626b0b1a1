package ws

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vigil/internal/repository"
)

func fixedSnapshot(byCompany map[uint][]repository.LiveLocation) SnapshotFunc {
	return func(companyID uint) ([]repository.LiveLocation, error) {
		return byCompany[companyID], nil
	}
}

func readLive(t *testing.T, c *Client) liveMessage {
	t.Helper()
	select {
	case raw := <-c.Send:
		var msg liveMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return msg
	default:
		t.Fatal("no message waiting")
		return liveMessage{}
	}
}

func TestLiveHub_TickSendsCompanySnapshotOnce(t *testing.T) {
	snapshots := map[uint][]repository.LiveLocation{
		10: {
			{GuardID: 1, Username: "alice", Latitude: 1.1, Longitude: 2.2},
			{GuardID: 2, Username: "bob", Latitude: 3.3, Longitude: 4.4},
		},
		20: {
			{GuardID: 3, Username: "carol", Latitude: 5.5, Longitude: 6.6},
		},
	}
	hub := NewLiveHub(fixedSnapshot(snapshots), time.Second)
	viewer10 := newTestClient(1, 10)
	viewer20 := newTestClient(2, 20)
	hub.Register(viewer10)
	hub.Register(viewer20)

	hub.Tick()

	msg := readLive(t, viewer10)
	if msg.Type != "live_locations" {
		t.Errorf("type = %q", msg.Type)
	}
	if len(msg.Locations) != 2 {
		t.Fatalf("company 10 viewer: %d locations, want 2", len(msg.Locations))
	}
	if msg.Locations[0].Username != "alice" || msg.Locations[1].Username != "bob" {
		t.Errorf("unexpected guards: %+v", msg.Locations)
	}

	other := readLive(t, viewer20)
	if len(other.Locations) != 1 || other.Locations[0].GuardID != 3 {
		t.Errorf("company 20 viewer got wrong snapshot: %+v", other.Locations)
	}

	// Exactly one message per viewer per tick.
	select {
	case <-viewer10.Send:
		t.Error("viewer received a second message from a single tick")
	default:
	}
}

func TestLiveHub_TickSkipsCompaniesWithoutViewers(t *testing.T) {
	calls := 0
	hub := NewLiveHub(func(companyID uint) ([]repository.LiveLocation, error) {
		calls++
		return nil, nil
	}, time.Second)

	hub.Tick()
	if calls != 0 {
		t.Errorf("snapshot should not run with no viewers, ran %d times", calls)
	}
}

func TestLiveHub_SnapshotErrorDropsTickQuietly(t *testing.T) {
	hub := NewLiveHub(func(companyID uint) ([]repository.LiveLocation, error) {
		return nil, errors.New("db down")
	}, time.Second)
	viewer := newTestClient(1, 10)
	hub.Register(viewer)

	hub.Tick()

	select {
	case msg := <-viewer.Send:
		t.Errorf("no message expected on snapshot error, got %s", msg)
	default:
	}
}

func TestLiveHub_SendInitial(t *testing.T) {
	snapshots := map[uint][]repository.LiveLocation{
		10: {{GuardID: 1, Username: "alice"}},
	}
	hub := NewLiveHub(fixedSnapshot(snapshots), time.Second)
	viewer := newTestClient(1, 10)
	hub.Register(viewer)

	hub.SendInitial(viewer)

	msg := readLive(t, viewer)
	if len(msg.Locations) != 1 || msg.Locations[0].Username != "alice" {
		t.Errorf("initial snapshot wrong: %+v", msg.Locations)
	}
}

func TestLiveHub_EmptySnapshotStillSends(t *testing.T) {
	hub := NewLiveHub(fixedSnapshot(nil), time.Second)
	viewer := newTestClient(1, 10)
	hub.Register(viewer)

	hub.Tick()

	msg := readLive(t, viewer)
	if len(msg.Locations) != 0 {
		t.Errorf("expected empty snapshot, got %+v", msg.Locations)
	}
}
