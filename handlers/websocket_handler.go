package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/fng3r/cis-haxball/live"
	"github.com/fng3r/cis-haxball/services"
)

type WebSocketHandler struct {
	hub       *live.Hub
	standings services.StandingsService
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewWebSocketHandler: checkOrigin == nil разрешает любые Origin.
func NewWebSocketHandler(hub *live.Hub, standings services.StandingsService, checkOrigin func(r *http.Request) bool, logger *slog.Logger) *WebSocketHandler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &WebSocketHandler{
		hub:       hub,
		standings: standings,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// ServeWs подписывает клиента на обновления таблицы турнира: /ws/leagues/{leagueID}.
// Сразу после подключения клиент получает текущую таблицу.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	leagueID, err := getIDFromURL(r, "leagueID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Проверяем турнир до апгрейда, чтобы вернуть обычный 404.
	table, err := h.standings.GetTable(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP-ошибку клиенту
		h.logger.Warn("failed to upgrade websocket connection", slog.Int("league_id", leagueID), slog.Any("error", err))
		return
	}

	room := live.LeagueRoom(leagueID)
	client := live.NewClient(h.hub, conn, room)
	if !h.hub.Register(client) {
		h.logger.Warn("websocket hub is stopped, connection rejected", slog.Int("league_id", leagueID))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	client.Send(live.Message{Type: live.MessageTableUpdated, Payload: table, RoomID: room})
	h.logger.Info("websocket client subscribed", slog.String("room", room))
}
