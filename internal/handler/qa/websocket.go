package qa

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/simplechat/internal/service/ai"
)

const wsWriteTimeout = 10 * time.Second

// Outgoing message types on the QA socket.
const (
	MessageAnswer  = "answer"
	MessageWarning = "warning"
	MessageError   = "error"
)

type inboundQuestion struct {
	Question string `json:"question"`
}

type outgoingMessage struct {
	Type      string  `json:"type"`
	Answer    *Answer `json:"answer,omitempty"`
	Message   string  `json:"message,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// WebSocketHandler 在一个连接上逐条回答问题，每一帧都是独立的调用。
type WebSocketHandler struct {
	qa       *Handler
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(qa *Handler) *WebSocketHandler {
	return &WebSocketHandler{
		qa: qa,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/ask", h.handleWebSocket)
}

// handleWebSocket 处理WebSocket连接
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read failed: %v", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			if err := h.write(conn, outgoingMessage{Type: MessageError, Message: "text frames only"}); err != nil {
				return
			}
			continue
		}

		if err := h.write(conn, h.answerFrame(r, data)); err != nil {
			log.Printf("[ws] write failed: %v", err)
			return
		}

		if ctx.Err() != nil {
			return
		}
	}
}

// answerFrame 将一帧问题转换成回复
func (h *WebSocketHandler) answerFrame(r *http.Request, data []byte) outgoingMessage {
	var in inboundQuestion
	if err := json.Unmarshal(data, &in); err != nil {
		return outgoingMessage{Type: MessageError, Message: "invalid message"}
	}

	answer, err := h.qa.ask(r.Context(), in.Question)
	switch {
	case errors.Is(err, ai.ErrEmptyQuestion):
		return outgoingMessage{Type: MessageWarning, Message: EmptyQuestionWarning}
	case err != nil:
		log.Printf("[ws] answer failed: %v", err)
		return outgoingMessage{Type: MessageError, Message: "completion failed"}
	default:
		return outgoingMessage{Type: MessageAnswer, Answer: &answer}
	}
}

func (h *WebSocketHandler) write(conn *websocket.Conn, msg outgoingMessage) error {
	msg.Timestamp = time.Now().UnixMilli()
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
