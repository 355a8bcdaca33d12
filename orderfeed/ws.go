package orderfeed

import (
	"log"
	"net/http"

	"swaadha/middleware"
	"swaadha/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler attaches an admin console to the live order feed.
// Browsers cannot set headers on websocket dials, so the token rides in
// the query string.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = r.Header.Get("Authorization")
		}
		claims, err := middleware.ValidateJWT(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if claims.Role != models.RoleAdmin && claims.Role != models.RoleSubadmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("orderfeed upgrade:", err)
			return
		}

		client := &Client{Send: make(chan []byte, 64)}
		hub.register <- client

		go writePump(conn, client)
		go readPump(conn, hub, client)
	}
}

func writePump(conn *websocket.Conn, c *Client) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only watches for the close; the feed is one-way.
func readPump(conn *websocket.Conn, hub *Hub, c *Client) {
	defer func() {
		hub.unregister <- c
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
