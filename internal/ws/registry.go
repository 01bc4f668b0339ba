// Package ws tracks live push channels: a per-user map for targeted
// notifications and a flat list for the dashboard broadcast feed. The
// registry is constructed once at startup and injected into every handler
// that needs it.
package ws

import (
	"sync"

	"github.com/goccy/go-json"

	"restaurante-backend/internal/logger"
	"restaurante-backend/internal/metrics"
)

// Channel is one live push connection to a client session.
type Channel interface {
	Send(b []byte) error
	Close()
}

type Registry struct {
	log *logger.Logger

	mu        sync.Mutex
	users     map[int64]map[Channel]struct{}
	broadcast map[Channel]struct{}
}

func NewRegistry(lg *logger.Logger) *Registry {
	return &Registry{
		log:       lg,
		users:     make(map[int64]map[Channel]struct{}),
		broadcast: make(map[Channel]struct{}),
	}
}

// Connect registers a channel under a user. Registering the same channel
// twice is a no-op.
func (r *Registry) Connect(userID int64, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.users[userID]
	if !ok {
		set = make(map[Channel]struct{})
		r.users[userID] = set
	}
	if _, seen := set[ch]; !seen {
		set[ch] = struct{}{}
		metrics.ClientConnections.Inc()
	}
	r.log.Info("client_connected", map[string]any{"user_id": userID, "connections": len(set)})
}

// Disconnect removes a channel; the second call for the same channel is a
// no-op. The user entry disappears with its last channel.
func (r *Registry) Disconnect(userID int64, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeUserChannel(userID, ch)
}

func (r *Registry) removeUserChannel(userID int64, ch Channel) {
	set, ok := r.users[userID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	metrics.ClientConnections.Dec()
	if len(set) == 0 {
		delete(r.users, userID)
	}
	r.log.Info("client_disconnected", map[string]any{"user_id": userID, "remaining": len(set)})
}

// SendToUser serializes msg and pushes it to every channel registered for the
// user. Channels whose send fails are pruned. Returns true when at least one
// channel took the message; false (message dropped) when none did.
func (r *Registry) SendToUser(userID int64, msg any) bool {
	body, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("marshal_failed", err, map[string]any{"user_id": userID})
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.users[userID]
	if !ok || len(set) == 0 {
		r.log.Warn("user_not_connected", map[string]any{"user_id": userID})
		return false
	}

	delivered := 0
	var dead []Channel
	for ch := range set {
		if err := ch.Send(body); err != nil {
			dead = append(dead, ch)
			continue
		}
		delivered++
	}
	for _, ch := range dead {
		r.removeUserChannel(userID, ch)
		ch.Close()
	}
	return delivered > 0
}

// ConnectBroadcast adds a channel to the dashboard feed.
func (r *Registry) ConnectBroadcast(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.broadcast[ch]; !seen {
		r.broadcast[ch] = struct{}{}
		metrics.BroadcastConnections.Inc()
	}
	r.log.Info("broadcast_connected", map[string]any{"total": len(r.broadcast)})
}

func (r *Registry) DisconnectBroadcast(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.broadcast[ch]; !ok {
		return
	}
	delete(r.broadcast, ch)
	metrics.BroadcastConnections.Dec()
	r.log.Info("broadcast_disconnected", map[string]any{"total": len(r.broadcast)})
}

// Broadcast best-effort sends msg to every dashboard channel, pruning
// failures.
func (r *Registry) Broadcast(msg any) {
	body, err := json.Marshal(msg)
	if err != nil {
		r.log.Error("marshal_failed", err, nil)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var dead []Channel
	for ch := range r.broadcast {
		if err := ch.Send(body); err != nil {
			dead = append(dead, ch)
		}
	}
	for _, ch := range dead {
		delete(r.broadcast, ch)
		metrics.BroadcastConnections.Dec()
		ch.Close()
	}
}

// UserConnections reports how many channels a user has. Used by tests and
// the debug endpoint.
func (r *Registry) UserConnections(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users[userID])
}

// BroadcastConnections reports the dashboard channel count.
func (r *Registry) BroadcastConnections() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.broadcast)
}

// ConnectedUsers lists user IDs with at least one live channel.
func (r *Registry) ConnectedUsers() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids
}
