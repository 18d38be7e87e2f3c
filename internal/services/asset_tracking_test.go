package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/events"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

var trackingNow = time.Date(2025, 4, 10, 8, 30, 0, 0, time.UTC)

func newTrackingService(repo *memTrackingRepo, pub *recordingPublisher) *AssetTrackingService {
	svc := NewAssetTrackingService(repo, &fakeTxManager{}, pub, zap.NewNop()).(*AssetTrackingService)
	svc.now = func() time.Time { return trackingNow }
	return svc
}

func TestAssetTrackingCreateDefaultsAndPublishes(t *testing.T) {
	repo := newMemTrackingRepo()
	repo.asset = &entities.AssetSummary{Name: "MacBook Air", IsActive: true}
	pub := &recordingPublisher{}
	svc := newTrackingService(repo, pub)

	created, err := svc.CreateAssetTracking(context.Background(), dto.CreateAssetTrackingDTO{
		AssetID: uuid.New(),
		UserID:  uuid.New(),
	})
	require.NoError(t, err)

	assert.Equal(t, trackingNow, created.AssignedAt)
	assert.False(t, created.RemovedAt.Valid)
	require.Equal(t, []string{events.AssetAssignedEventName}, pub.names())

	e := pub.events[0].(events.AssetAssignedEvent)
	assert.Equal(t, created.ID, e.TrackingID)
	assert.Equal(t, "MacBook Air", e.AssetName)
}

func TestAssetTrackingCreateClosedInterval(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTrackingService(newMemTrackingRepo(), pub)

	assigned := trackingNow.Add(-48 * time.Hour)
	_, err := svc.CreateAssetTracking(context.Background(), dto.CreateAssetTrackingDTO{
		AssetID:    uuid.New(),
		UserID:     uuid.New(),
		AssignedAt: types.OptionalTimeFrom(assigned),
		RemovedAt:  types.OptionalTimeFrom(trackingNow),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{events.AssetAssignedEventName, events.AssetReleasedEventName}, pub.names())
}

func TestAssetTrackingRejectsRemovedBeforeAssigned(t *testing.T) {
	pub := &recordingPublisher{}
	repo := newMemTrackingRepo()
	svc := newTrackingService(repo, pub)

	_, err := svc.CreateAssetTracking(context.Background(), dto.CreateAssetTrackingDTO{
		AssetID:    uuid.New(),
		UserID:     uuid.New(),
		AssignedAt: types.OptionalTimeFrom(trackingNow),
		RemovedAt:  types.OptionalTimeFrom(trackingNow.Add(-time.Hour)),
	})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	assert.Empty(t, repo.items)
	assert.Empty(t, pub.events)
}

func TestAssetTrackingCreateRejectsExplicitNullAssignedAt(t *testing.T) {
	pub := &recordingPublisher{}
	repo := newMemTrackingRepo()
	svc := newTrackingService(repo, pub)

	_, err := svc.CreateAssetTracking(context.Background(), dto.CreateAssetTrackingDTO{
		AssetID:    uuid.New(),
		UserID:     uuid.New(),
		AssignedAt: types.OptionalTime{Set: true},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
	assert.Empty(t, repo.items)
	assert.Empty(t, pub.events)
}

func TestAssetTrackingUpdatePublishesReleaseOnce(t *testing.T) {
	repo := newMemTrackingRepo()
	pub := &recordingPublisher{}
	svc := newTrackingService(repo, pub)

	created, err := svc.CreateAssetTracking(context.Background(), dto.CreateAssetTrackingDTO{AssetID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)
	pub.events = nil

	removed := trackingNow.Add(24 * time.Hour)
	updated, err := svc.UpdateAssetTracking(context.Background(), created.ID, dto.UpdateAssetTrackingDTO{
		RemovedAt: types.OptionalTimeFrom(removed),
	})
	require.NoError(t, err)
	assert.Equal(t, null.TimeFrom(removed), updated.RemovedAt)
	require.Equal(t, []string{events.AssetReleasedEventName}, pub.names())
	assert.Equal(t, removed, pub.events[0].(events.AssetReleasedEvent).RemovedAt)

	// повторное закрытие уже закрытой выдачи событие не шлёт
	notes := types.OptionalStringFrom("сдан на склад")
	_, err = svc.UpdateAssetTracking(context.Background(), created.ID, dto.UpdateAssetTrackingDTO{Notes: notes})
	require.NoError(t, err)
	assert.Len(t, pub.events, 1)

	// снова открываем: removed_at = null
	reopened, err := svc.UpdateAssetTracking(context.Background(), created.ID, dto.UpdateAssetTrackingDTO{
		RemovedAt: types.OptionalTime{Set: true},
	})
	require.NoError(t, err)
	assert.False(t, reopened.RemovedAt.Valid)
	assert.Len(t, pub.events, 1)
}

func TestAssetTrackingUpdateValidation(t *testing.T) {
	repo := newMemTrackingRepo()
	svc := newTrackingService(repo, &recordingPublisher{})

	created, err := svc.CreateAssetTracking(context.Background(), dto.CreateAssetTrackingDTO{AssetID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.UpdateAssetTracking(context.Background(), created.ID, dto.UpdateAssetTrackingDTO{
		AssignedAt: types.OptionalTime{Set: true},
	})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))

	_, err = svc.UpdateAssetTracking(context.Background(), created.ID, dto.UpdateAssetTrackingDTO{
		RemovedAt: types.OptionalTimeFrom(trackingNow.Add(-time.Minute)),
	})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))

	_, err = svc.UpdateAssetTracking(context.Background(), uuid.New(), dto.UpdateAssetTrackingDTO{})
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
}
