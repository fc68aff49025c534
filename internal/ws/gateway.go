package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"collablearn/internal/auth"
	"collablearn/internal/models"
	"collablearn/internal/observability"
	"collablearn/internal/repositories"
)

// Gateway handles the realtime chat websocket endpoint.
type Gateway struct {
	hub         *Hub
	messageRepo repositories.MessageRepository
	tokens      *auth.Manager
}

// NewGateway constructs a Gateway.
func NewGateway(hub *Hub, messageRepo repositories.MessageRepository, tokens *auth.Manager) *Gateway {
	return &Gateway{hub: hub, messageRepo: messageRepo, tokens: tokens}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and serves events until the peer goes away.
func (g *Gateway) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("collablearn/ws").Start(c.Request.Context(), "ws.handshake",
		trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := c.GetHeader("Authorization")
	if token == "" {
		if q := c.Query("token"); q != "" {
			token = "Bearer " + q
		}
	}
	claims, err := g.validateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		UserID:      claims.UserID,
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	cl := &client{conn: conn, info: info}

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	g.publishConnEvent(c, info, "ws_connect", "")

	var closeReason string
	defer func() {
		if userID, ok := g.hub.Disconnect(cl); ok {
			g.hub.BroadcastStatus(userID, false, cl)
		}
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		g.publishConnEvent(c, info, "ws_disconnect", closeReason)
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
				g.publishConnEvent(c, info, "ws_error", closeReason)
			}
			return
		}

		var event models.ClientEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("websocket bad payload from user %d: %v", claims.UserID, err)
			continue
		}
		g.dispatch(c, cl, claims.UserID, event)
	}
}

func (g *Gateway) dispatch(c *gin.Context, cl *client, userID int, event models.ClientEvent) {
	switch event.Type {
	case models.EventUserOnline:
		ids := g.hub.MarkOnline(userID, cl)
		if err := cl.writeEvent(models.ServerEvent{Type: models.EventOnlineUsersList, OnlineUsers: ids}); err != nil {
			log.Printf("websocket write error: %v", err)
		}
		g.hub.BroadcastStatus(userID, true, cl)

	case models.EventJoinRoom:
		if !models.ChatParticipant(event.ChatID, userID) {
			return
		}
		g.hub.JoinRoom(event.ChatID, cl)

	case models.EventLeaveRoom:
		g.hub.LeaveRoom(event.ChatID, cl)

	case models.EventChatMessage:
		if !models.ChatParticipant(event.ChatID, userID) || event.Content == "" {
			return
		}
		// Persist first; on failure the message is not relayed and the
		// sender's optimistic copy stays local (fail-closed).
		msg, err := g.messageRepo.CreateMessage(c.Request.Context(), event.ChatID, userID, event.Content)
		if err != nil {
			log.Printf("message persist failed chat=%s sender=%d: %v", event.ChatID, userID, err)
			observability.IncWSEvent("persist_error")
			return
		}
		observability.IncWSEvent("message_relayed")
		g.hub.RelayToRoom(event.ChatID, cl, models.ServerEvent{Type: models.EventChatMessage, Message: &msg})

	case models.EventTyping, models.EventStoppedTyping:
		if !models.ChatParticipant(event.ChatID, userID) {
			return
		}
		g.hub.RelayToRoom(event.ChatID, cl, models.ServerEvent{
			Type:   event.Type,
			ChatID: event.ChatID,
			UserID: userID,
		})

	default:
		log.Printf("websocket unknown event %q from user %d", event.Type, userID)
	}
}

func (g *Gateway) publishConnEvent(c *gin.Context, info ConnInfo, name, reason string) {
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"event":       name,
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      reason,
		},
		"identity": map[string]interface{}{
			"user_id": info.UserID,
			"ip":      info.IP,
		},
	}
	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(c.Request.Context(), "ws_events.chats", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: name,
		Payload:   payload,
	}, headers)
}

func (g *Gateway) validateToken(header string) (auth.Claims, error) {
	parts := strings.Split(header, " ")
	if len(parts) == 2 {
		return g.tokens.ParseToken(parts[1])
	}
	return auth.Claims{}, auth.ErrInvalidToken
}
