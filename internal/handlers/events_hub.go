package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Az admin képernyők élő listái: minden adminra látható írás után egy
// {collection, action, id} eseményt küldünk minden nyitott kapcsolatnak,
// a képernyő ebből tudja, mikor kérdezzen újra.

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GlobalHub az alkalmazás egyetlen esemény-hubja.
var GlobalHub = NewHub()

// ChangeEvent egy kollekciót érintő írás.
type ChangeEvent struct {
	Collection string `json:"collection"`
	Action     string `json:"action"`
	ID         string `json:"id"`
}

type eventClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	clients    map[*eventClient]struct{}
	broadcast  chan []byte
	register   chan *eventClient
	unregister chan *eventClient
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *eventClient),
		unregister: make(chan *eventClient),
		clients:    make(map[*eventClient]struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Lassú kliens: eldobjuk, ne torlódjon az egész hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Notify nem blokkol: ha a hub tele van, az eseményt elejtjük, a képernyők
// legközelebbi lekérdezése úgyis friss adatot hoz.
func (h *Hub) Notify(collection, action, id string) {
	payload, err := json.Marshal(ChangeEvent{Collection: collection, Action: action, ID: id})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- payload:
	default:
	}
}

// EventsWSEndpoint websocket kapcsolatot nyit az admin képernyőnek.
func EventsWSEndpoint(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("Websocket upgrade sikertelen", "error", err)
		return
	}

	client := &eventClient{hub: GlobalHub, conn: conn, send: make(chan []byte, 32)}
	GlobalHub.register <- client

	go client.writePump()
	go client.readPump()
}

func (cl *eventClient) readPump() {
	defer func() {
		cl.hub.unregister <- cl
		cl.conn.Close()
	}()
	cl.conn.SetReadLimit(512)
	for {
		// Az eseménycsatorna egyirányú; a beérkező üzeneteket eldobjuk, a
		// ciklus csak a kapcsolat lezárását figyeli.
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (cl *eventClient) writePump() {
	ticker := time.NewTicker(50 * time.Second)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case message, ok := <-cl.send:
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
