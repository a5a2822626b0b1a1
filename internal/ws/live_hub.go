package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"vigil/internal/repository"
)

// SnapshotFunc returns the latest known position per on-duty guard for one
// company.
type SnapshotFunc func(companyID uint) ([]repository.LiveLocation, error)

// LiveHub pushes live-location snapshots to subscribed admin/client viewers.
// It is a polling fan-out: a ticker reads the latest positions from storage
// and broadcasts them, at most once per tick, with no backlog for viewers
// that connect late or fall behind.
type LiveHub struct {
	*Hub
	snapshot SnapshotFunc
	interval time.Duration
}

func NewLiveHub(snapshot SnapshotFunc, interval time.Duration) *LiveHub {
	return &LiveHub{
		Hub:      NewHub(),
		snapshot: snapshot,
		interval: interval,
	}
}

type liveMessage struct {
	Type      string                    `json:"type"`
	Locations []repository.LiveLocation `json:"locations"`
	SentAt    int64                     `json:"sent_at"`
}

// Run broadcasts snapshots on the configured interval until ctx is cancelled.
func (h *LiveHub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Tick()
		}
	}
}

// Tick pushes one snapshot to every company that has connected viewers.
func (h *LiveHub) Tick() {
	for _, companyID := range h.Companies() {
		h.pushSnapshot(companyID)
	}
}

func (h *LiveHub) pushSnapshot(companyID uint) {
	locs, err := h.snapshot(companyID)
	if err != nil {
		log.Printf("[live] snapshot for company %d: %v", companyID, err)
		return
	}
	h.BroadcastToCompany(companyID, liveMessage{
		Type:      "live_locations",
		Locations: locs,
		SentAt:    time.Now().Unix(),
	})
}

// SendInitial sends the current snapshot to a single freshly connected viewer
// so the map is populated before the next tick.
func (h *LiveHub) SendInitial(c *Client) {
	locs, err := h.snapshot(c.CompanyID)
	if err != nil {
		log.Printf("[live] initial snapshot for company %d: %v", c.CompanyID, err)
		return
	}
	data := liveMessage{Type: "live_locations", Locations: locs, SentAt: time.Now().Unix()}
	b, _ := json.Marshal(data)
	c.trySend(b)
}
