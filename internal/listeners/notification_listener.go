package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hr-system/internal/events"
	"hr-system/internal/services"
	"hr-system/pkg/eventbus"
	"hr-system/pkg/websocket"
)

// NotificationListener пересылает события выдачи техники сотруднику по WebSocket.
type NotificationListener struct {
	wsNotificationService services.WebSocketNotificationServiceInterface
	logger                *zap.Logger
}

func NewNotificationListener(
	wsNotificationService services.WebSocketNotificationServiceInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		wsNotificationService: wsNotificationService,
		logger:                logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.AssetAssignedEventName, l.handleAssetAssigned)
	bus.Subscribe(events.AssetReleasedEventName, l.handleAssetReleased)
	l.logger.Info("NotificationListener подписан на события выдачи техники")
}

func (l *NotificationListener) handleAssetAssigned(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.AssetAssignedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}

	payload := websocket.AssetNotificationPayload{
		TrackingID: e.TrackingID.String(),
		AssetID:    e.AssetID.String(),
		AssetName:  e.AssetName,
		Message:    fmt.Sprintf("Вам выдана техника: %s", e.AssetName),
		AssignedAt: e.AssignedAt,
	}
	return l.wsNotificationService.SendNotification(e.UserID, payload, services.MessageTypeAssetAssigned)
}

func (l *NotificationListener) handleAssetReleased(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.AssetReleasedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}

	removedAt := e.RemovedAt
	payload := websocket.AssetNotificationPayload{
		TrackingID: e.TrackingID.String(),
		AssetID:    e.AssetID.String(),
		AssetName:  e.AssetName,
		Message:    fmt.Sprintf("Техника возвращена: %s", e.AssetName),
		AssignedAt: e.AssignedAt,
		RemovedAt:  &removedAt,
	}
	return l.wsNotificationService.SendNotification(e.UserID, payload, services.MessageTypeAssetReleased)
}
