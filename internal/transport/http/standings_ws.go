package http

import (
	"log"
	"net/http"

	"quiz-league-service/internal/app"
	"quiz-league-service/internal/domain"
	"github.com/gorilla/websocket"
)

// StandingsWSHandler streams the league table to websocket clients whenever a
// finished attempt changes a player's score.
type StandingsWSHandler struct {
	feed      *app.StandingsFeed
	board     app.StandingsBoard
	tableSize int
	upgrader  websocket.Upgrader
}

func NewStandingsWSHandler(feed *app.StandingsFeed, board app.StandingsBoard, tableSize int) *StandingsWSHandler {
	if tableSize <= 0 {
		tableSize = 10
	}
	return &StandingsWSHandler{
		feed:      feed,
		board:     board,
		tableSize: tableSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type standingsMessage struct {
	Type    string            `json:"type"`
	Payload []domain.Standing `json:"payload"`
}

// ServeWS upgrades the request and pushes standings snapshots until the client
// disconnects.
func (h *StandingsWSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.feed.Subscribe()
	defer cancel()

	initial, err := h.board.Top(r.Context(), h.tableSize)
	if err != nil {
		log.Printf("initial standings read failed: %v", err)
		return
	}
	if err := conn.WriteJSON(standingsMessage{Type: "standings", Payload: initial}); err != nil {
		return
	}

	// Drain the read side so we notice when the client goes away.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case table, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(standingsMessage{Type: "standings", Payload: table}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-clientGone:
			return
		}
	}
}
