package ws

import (
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurante-backend/internal/logger"
)

type fakeChannel struct {
	sent   [][]byte
	fail   bool
	closed bool
}

func (f *fakeChannel) Send(b []byte) error {
	if f.fail {
		return errors.New("send failed")
	}
	f.sent = append(f.sent, b)
	return nil
}

func (f *fakeChannel) Close() { f.closed = true }

func testRegistry() *Registry {
	return NewRegistry(logger.NewWithOutput("ws-test", io.Discard, zerolog.Disabled))
}

func TestSendToUserNoConnections(t *testing.T) {
	r := testRegistry()
	delivered := r.SendToUser(42, map[string]string{"type": "order_ready"})
	assert.False(t, delivered)
}

func TestSendToUserMultipleChannels(t *testing.T) {
	r := testRegistry()
	a, b := &fakeChannel{}, &fakeChannel{}
	r.Connect(7, a)
	r.Connect(7, b)

	delivered := r.SendToUser(7, map[string]any{"type": "order_status_update", "order_id": 1})
	require.True(t, delivered)
	assert.Len(t, a.sent, 1)
	assert.Len(t, b.sent, 1)
	assert.JSONEq(t, string(a.sent[0]), string(b.sent[0]))
}

func TestConnectIdempotent(t *testing.T) {
	r := testRegistry()
	ch := &fakeChannel{}
	r.Connect(1, ch)
	r.Connect(1, ch)
	assert.Equal(t, 1, r.UserConnections(1))

	require.True(t, r.SendToUser(1, "hola"))
	assert.Len(t, ch.sent, 1)
}

func TestDisconnectTwiceIsNoop(t *testing.T) {
	r := testRegistry()
	ch := &fakeChannel{}
	r.Connect(1, ch)

	r.Disconnect(1, ch)
	assert.Equal(t, 0, r.UserConnections(1))

	// second disconnect must neither panic nor alter state
	r.Disconnect(1, ch)
	assert.Equal(t, 0, r.UserConnections(1))
	assert.False(t, r.SendToUser(1, "hola"))
}

func TestDeadChannelPrunedOnSend(t *testing.T) {
	r := testRegistry()
	ok := &fakeChannel{}
	dead := &fakeChannel{fail: true}
	r.Connect(5, ok)
	r.Connect(5, dead)

	delivered := r.SendToUser(5, "msg")
	assert.True(t, delivered)
	assert.True(t, dead.closed)
	assert.Equal(t, 1, r.UserConnections(5))
}

func TestUserEntryRemovedWithLastChannel(t *testing.T) {
	r := testRegistry()
	dead := &fakeChannel{fail: true}
	r.Connect(9, dead)

	assert.False(t, r.SendToUser(9, "msg"))
	assert.Equal(t, 0, r.UserConnections(9))
	assert.Empty(t, r.ConnectedUsers())
}

func TestBroadcastPrunesFailures(t *testing.T) {
	r := testRegistry()
	a := &fakeChannel{}
	b := &fakeChannel{fail: true}
	r.ConnectBroadcast(a)
	r.ConnectBroadcast(b)

	r.Broadcast(map[string]string{"type": "new_order"})
	assert.Len(t, a.sent, 1)
	assert.True(t, b.closed)
	assert.Equal(t, 1, r.BroadcastConnections())

	r.DisconnectBroadcast(b) // already pruned, must be a no-op
	assert.Equal(t, 1, r.BroadcastConnections())
}
