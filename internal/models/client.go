package models

import (
	"sync"

	"github.com/gorilla/websocket"
)

type EventType string

const (
	EventPriceUpdate    EventType = "price_update"
	EventAlertTriggered EventType = "alert_triggered"
)

// Event is the payload pushed to websocket subscribers of a product.
type Event struct {
	Type      EventType       `json:"type"`
	ProductID string          `json:"product_id"`
	Price     *PriceChange    `json:"price,omitempty"`
	Alert     *TriggeredAlert `json:"alert,omitempty"`
}

type Client struct {
	ID         string
	Conn       *websocket.Conn
	Send       chan *Event
	Products   map[string]bool
	ProductsMu sync.RWMutex
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:       id,
		Conn:     conn,
		Send:     make(chan *Event, 256),
		Products: make(map[string]bool),
	}
}

func (c *Client) Subscribe(productID string) {
	c.ProductsMu.Lock()
	c.Products[productID] = true
	c.ProductsMu.Unlock()
}

func (c *Client) Unsubscribe(productID string) {
	c.ProductsMu.Lock()
	delete(c.Products, productID)
	c.ProductsMu.Unlock()
}

func (c *Client) IsSubscribed(productID string) bool {
	c.ProductsMu.RLock()
	defer c.ProductsMu.RUnlock()
	return c.Products[productID]
}

func (c *Client) Subscriptions() []string {
	c.ProductsMu.RLock()
	defer c.ProductsMu.RUnlock()
	var ids []string
	for id := range c.Products {
		ids = append(ids, id)
	}
	return ids
}

func (c *Client) Close() {
	c.Conn.Close()
}

type SocketMessage struct {
	Action    string `json:"action"`
	ProductID string `json:"product_id"`
}

type SubscriptionResponse struct {
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Products []string `json:"products,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
