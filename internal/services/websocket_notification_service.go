package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hr-system/pkg/websocket"
)

const (
	MessageTypeAssetAssigned = "ASSET_ASSIGNED"
	MessageTypeAssetReleased = "ASSET_RELEASED"
)

// Интерфейс, чтобы можно было легко подменять в тестах
type WebSocketNotificationServiceInterface interface {
	SendNotification(userID uuid.UUID, payload interface{}, messageType string) error
}

type WebSocketNotificationService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewWebSocketNotificationService(hub *websocket.Hub, logger *zap.Logger) WebSocketNotificationServiceInterface {
	return &WebSocketNotificationService{
		hub:    hub,
		logger: logger,
	}
}

// SendNotification пробрасывает вызов в Hub. Пользователь без подключений не ошибка.
func (s *WebSocketNotificationService) SendNotification(userID uuid.UUID, payload interface{}, messageType string) error {
	s.logger.Debug("Отправка WebSocket-уведомления",
		zap.String("user_id", userID.String()),
		zap.String("type", messageType),
		zap.Int("connections", s.hub.Connected(userID)),
	)
	return s.hub.SendMessageToUser(userID, payload, messageType)
}
