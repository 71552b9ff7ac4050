package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
)

// Event types
const (
	EventOrderCreated = "order_created"
	EventOrderUpdated = "order_updated"
)

const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type OrderSummary struct {
	ID           uint   `json:"id"`
	User         uint   `json:"user"`
	DeliveryCrew *uint  `json:"delivery_crew"`
	Status       string `json:"status"`
	Total        string `json:"total"`
	Date         string `json:"date"`
	Items        int    `json:"items"`
}

type client struct {
	conn      *websocket.Conn
	principal models.Principal
	mu        sync.Mutex
}

func (cl *client) write(data []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return cl.conn.WriteMessage(websocket.TextMessage, data)
}

// Principals reloads a connected user's current roles.
type Principals interface {
	Principal(userID uint) (models.Principal, error)
}

// Hub fans order events out to connected websocket clients. Each client
// only receives orders it would be allowed to read over HTTP. With a
// Principals source, roles are re-read on every event and clients that lost
// feed access are dropped.
type Hub struct {
	clients    map[*websocket.Conn]*client
	mutex      sync.Mutex
	principals Principals
}

func NewHub(principals Principals) *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client), principals: principals}
}

// CanFollow reports whether p may hold an order feed connection.
func CanFollow(p models.Principal) bool {
	return p.IsManager() || p.IsDeliveryCrew()
}

func (h *Hub) RegisterClient(conn *websocket.Conn, p models.Principal) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = &client{conn: conn, principal: p}
	utils.InfoLogger.WithFields(logrus.Fields{"user_id": p.UserID, "clients": len(h.clients)}).Info("order feed client connected")
}

func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	_, exists := h.clients[conn]
	delete(h.clients, conn)
	h.mutex.Unlock()
	if exists {
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) OrderCreated(order models.Order) {
	h.broadcastOrder(EventOrderCreated, order)
}

func (h *Hub) OrderUpdated(order models.Order) {
	h.broadcastOrder(EventOrderUpdated, order)
}

func summarize(order models.Order) OrderSummary {
	return OrderSummary{
		ID:           order.ID,
		User:         order.UserID,
		DeliveryCrew: order.DeliveryCrewID,
		Status:       string(order.Status),
		Total:        utils.FormatMoney(order.Total),
		Date:         order.Date.Format("2006-01-02"),
		Items:        len(order.OrderItems),
	}
}

func canSee(p models.Principal, order models.Order) bool {
	if p.IsManager() || order.UserID == p.UserID {
		return true
	}
	return order.DeliveryCrewID != nil && *order.DeliveryCrewID == p.UserID
}

func (h *Hub) broadcastOrder(event string, order models.Order) {
	data, err := json.Marshal(Message{Event: event, Data: summarize(order)})
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("marshal order event")
		return
	}

	h.mutex.Lock()
	connected := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		connected = append(connected, cl)
	}
	h.mutex.Unlock()

	for _, cl := range connected {
		p, ok := h.current(cl)
		if !ok {
			h.UnregisterClient(cl.conn)
			continue
		}
		if !canSee(p, order) {
			continue
		}
		if err := cl.write(data); err != nil {
			utils.ErrorLogger.WithError(err).WithField("user_id", p.UserID).Error("drop order feed client")
			h.UnregisterClient(cl.conn)
		}
	}
}

// current returns the client's up to date principal, or false when the
// client should no longer be connected.
func (h *Hub) current(cl *client) (models.Principal, bool) {
	if h.principals == nil {
		return cl.principal, true
	}
	p, err := h.principals.Principal(cl.principal.UserID)
	if err != nil || !CanFollow(p) {
		utils.InfoLogger.WithField("user_id", cl.principal.UserID).Info("order feed access revoked")
		return models.Principal{}, false
	}
	return p, true
}
