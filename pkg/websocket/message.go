package websocket

import "time"

// Envelope - "конверт" сообщения; Type подсказывает фронтенду, что делать.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// AssetNotificationPayload - уведомление о выдаче или возврате техники.
type AssetNotificationPayload struct {
	TrackingID string     `json:"trackingId"`
	AssetID    string     `json:"assetId"`
	AssetName  string     `json:"assetName"`
	Message    string     `json:"message"`
	AssignedAt time.Time  `json:"assignedAt"`
	RemovedAt  *time.Time `json:"removedAt,omitempty"`
}
