package httpapi

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"restaurante-backend/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is consumed from native apps and the admin dashboard; origin
	// policy is enforced at the edge.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsHello struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// wsOrders is the dashboard firehose: every connection receives every
// new_order broadcast. Inbound JSON pings get a JSON pong; everything else is
// ignored.
func (h *Handler) wsOrders(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws_upgrade_failed", err, map[string]any{"endpoint": "orders"})
		return
	}

	client := ws.NewClient(conn, h.log, func(msg []byte) ([]byte, bool) {
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &probe); err == nil && probe.Type == "ping" {
			reply, _ := json.Marshal(map[string]string{"type": "pong"})
			return reply, true
		}
		return nil, false
	}, func(c *ws.Client) {
		h.registry.DisconnectBroadcast(c)
	})

	h.registry.ConnectBroadcast(client)

	hello, _ := json.Marshal(wsHello{
		Type:      "connection_established",
		Message:   "Conectado al canal de órdenes",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	_ = client.Send(hello)

	// blocks until the peer goes away; cleanup runs from the read pump
	client.Run()
}

// wsClient is the customer's personal channel, keyed by the token's user.
// A literal "ping" text frame gets a literal "pong" back.
func (h *Handler) wsClient(w http.ResponseWriter, r *http.Request) {
	user, ok := h.authenticate(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Detail: "not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws_upgrade_failed", err, map[string]any{"endpoint": "client", "user_id": user.ID})
		return
	}

	userID := user.ID
	client := ws.NewClient(conn, h.log, func(msg []byte) ([]byte, bool) {
		if string(msg) == "ping" {
			return []byte("pong"), true
		}
		return nil, false
	}, func(c *ws.Client) {
		h.registry.Disconnect(userID, c)
	})

	h.registry.Connect(userID, client)

	hello, _ := json.Marshal(wsHello{
		Type:      "connection_established",
		Message:   "Conectado a notificaciones",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	_ = client.Send(hello)

	client.Run()
}
