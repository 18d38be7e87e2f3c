package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub управляет всеми клиентами и рассылкой сообщений
type Hub struct {
	userClients map[uuid.UUID]map[*Client]struct{}
	Register    chan *Client
	unregister  chan *Client
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		userClients: make(map[uuid.UUID]map[*Client]struct{}),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      logger,
	}
}

// Run обслуживает регистрацию соединений до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.Register:
			h.mu.Lock()
			if h.userClients[client.UserID] == nil {
				h.userClients[client.UserID] = make(map[*Client]struct{})
			}
			h.userClients[client.UserID][client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("Клиент зарегистрирован", zap.String("userID", client.UserID.String()))
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.userClients[client.UserID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.userClients, client.UserID)
	}
	h.logger.Debug("Клиент отсоединен", zap.String("userID", client.UserID.String()))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.userClients {
		for client := range clients {
			close(client.Send)
		}
		delete(h.userClients, userID)
	}
}

// SendMessageToUser отправляет сообщение во все соединения пользователя.
// Переполненный буфер клиента означает, что сообщение будет потеряно.
func (h *Hub) SendMessageToUser(userID uuid.UUID, payload interface{}, messageType string) error {
	messageBytes, err := json.Marshal(Envelope{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.userClients[userID]
	if len(clients) == 0 {
		h.logger.Debug("Нет активных соединений", zap.String("userID", userID.String()))
		return nil
	}
	for client := range clients {
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("Буфер WebSocket-клиента переполнен, сообщение пропущено",
				zap.String("userID", userID.String()))
		}
	}
	return nil
}

// Connected сообщает число открытых соединений пользователя.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID])
}
