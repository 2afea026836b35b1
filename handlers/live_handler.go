package handlers

import (
	"log"
	"net/http"

	"github.com/atlpoker/poker-backend/live"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin уже ограничен CORS-слоем роутера; браузерные websocket-клиенты
		// из списка доверенных фронтендов пропускаются.
		return true
	},
}

type LiveHandler struct {
	hub *live.Hub
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{
		hub: hub,
	}
}

// ServeGameFeed подключает клиента к live-таблице результатов одной игры.
// Клиент подключается к /games/{gameID}/live.
func (h *LiveHandler) ServeGameFeed(w http.ResponseWriter, r *http.Request) {
	gameID, err := getIDFromURL(r, "gameID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту.
		log.Printf("Failed to upgrade connection for game %d: %v", gameID, err)
		return
	}

	client := &live.Client{
		Hub:    h.hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		GameID: gameID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
