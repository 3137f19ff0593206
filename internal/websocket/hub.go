package websocket

import (
	"strconv"

	"github.com/rs/zerolog/log"
)

// themeMessage is a broadcast scoped to one theme's subscribers.
type themeMessage struct {
	themeID string
	message []byte
}

// Hub maintains the set of active clients and broadcasts activity to them.
// All map access happens inside Run's goroutine; callers reach the maps only
// through channels.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	// Theme-scoped broadcasts.
	broadcastTheme chan themeMessage

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of theme IDs to the set of clients subscribed to them.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:      make(chan []byte),
		broadcastTheme: make(chan themeMessage),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		clients:        make(map[*Client]bool),
		subscriptions:  make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
			// A client arriving on a theme route is subscribed right away.
			if client.ThemeID != "" {
				h.addSubscription(client, client.ThemeID)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		case tm := <-h.broadcastTheme:
			h.deliverTheme(tm.themeID, tm.message)
		}
	}
}

// BroadcastGlobal queues a message for every connected client.
func (h *Hub) BroadcastGlobal(message []byte) {
	h.Broadcast <- message
}

// BroadcastTheme queues a message for all clients subscribed to a theme.
// Delivery happens inside the Run loop, so it is safe to call from any
// goroutine.
func (h *Hub) BroadcastTheme(themeID int64, message []byte) {
	h.broadcastTheme <- themeMessage{themeID: strconv.FormatInt(themeID, 10), message: message}
}

func (h *Hub) deliverTheme(themeID string, message []byte) {
	if subs, ok := h.subscriptions[themeID]; ok {
		for client := range subs {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
				delete(subs, client)
			}
		}
	}
}

func (h *Hub) addSubscription(client *Client, themeID string) {
	if h.subscriptions[themeID] == nil {
		h.subscriptions[themeID] = make(map[*Client]bool)
	}
	h.subscriptions[themeID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for themeID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, themeID)
			}
		}
	}
}
