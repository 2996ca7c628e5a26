package tasks

import (
	"io"
	"log"
	"net/http"

	"golang.org/x/net/websocket"

	"smartcue-backend/internal/auth"
)

// StreamHandler serves the live task feed over a websocket. Browsers
// cannot set an Authorization header on a websocket, so the JWT rides a
// "token" query parameter. Each message is the full task list, replacing
// whatever the client held before.
func StreamHandler(hub *Hub, secret []byte) http.Handler {
	return websocket.Handler(func(ws *websocket.Conn) {
		defer ws.Close()

		r := ws.Request()
		uid, err := auth.ParseToken(secret, r.URL.Query().Get("token"))
		if err != nil {
			_ = websocket.JSON.Send(ws, map[string]string{"error": "invalid token"})
			return
		}

		sub, err := hub.Subscribe(r.Context(), uid)
		if err != nil {
			log.Printf("[WARN] feed subscribe failed user=%d: %v", uid, err)
			_ = websocket.JSON.Send(ws, map[string]string{"error": "subscribe failed"})
			return
		}
		defer sub.Unsubscribe()

		// Drain the client side so we notice the connection closing.
		done := make(chan struct{})
		go func() {
			_, _ = io.Copy(io.Discard, ws)
			close(done)
		}()

		for {
			select {
			case <-done:
				return
			case snap, ok := <-sub.C:
				if !ok {
					return
				}
				if snap == nil {
					snap = []Task{}
				}
				if err := websocket.JSON.Send(ws, snap); err != nil {
					return
				}
			}
		}
	})
}
