package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	AssetAssignedEventName = "asset.assigned"
	AssetReleasedEventName = "asset.released"
)

// AssetAssignedEvent - технику выдали сотруднику.
type AssetAssignedEvent struct {
	TrackingID uuid.UUID
	AssetID    uuid.UUID
	AssetName  string
	UserID     uuid.UUID
	AssignedAt time.Time
}

func (e AssetAssignedEvent) Name() string { return AssetAssignedEventName }

// AssetReleasedEvent - у выдачи появилась дата возврата.
type AssetReleasedEvent struct {
	TrackingID uuid.UUID
	AssetID    uuid.UUID
	AssetName  string
	UserID     uuid.UUID
	AssignedAt time.Time
	RemovedAt  time.Time
}

func (e AssetReleasedEvent) Name() string { return AssetReleasedEventName }
