package cart

import (
	"log"
	"net/http"

	"vitrina/globals"
	"vitrina/middleware"
	"vitrina/rdx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WatchCart pushes cart change events to the client over a WebSocket.
// Another session writing the same user's cart triggers a message with the
// new serialized cart, so the client can re-hydrate instead of staying
// stale until the next page load.
func WatchCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		tokenString = r.Header.Get("Authorization")
		if len(tokenString) >= 8 && tokenString[:7] == "Bearer " {
			tokenString = tokenString[7:]
		}
	}

	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WatchCart upgrade error:", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	sub := rdx.Conn.Subscribe(ctx, changeChannel(claims.UserID))
	defer sub.Close()

	// Drain client frames so pings and close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	for msg := range sub.Channel() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
			return
		}
	}
}
