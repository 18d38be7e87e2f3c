package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hr-system/internal/authz"
	"hr-system/internal/dto"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

type fakeAssetService struct {
	assets       []dto.AssetDTO
	lastFilter   types.Filter
	lastUnscoped bool
	created      *dto.CreateAssetDTO
}

func (f *fakeAssetService) GetAssets(_ context.Context, filter types.Filter) ([]dto.AssetDTO, uint64, error) {
	f.lastFilter = filter
	return f.assets, uint64(len(f.assets)), nil
}

func (f *fakeAssetService) FindAsset(_ context.Context, id uuid.UUID, unscoped bool) (*dto.AssetDTO, error) {
	f.lastUnscoped = unscoped
	for i := range f.assets {
		if f.assets[i].ID == id {
			return &f.assets[i], nil
		}
	}
	return nil, apperrors.NewNotFoundError("Техника не найдена")
}

func (f *fakeAssetService) CreateAsset(_ context.Context, payload dto.CreateAssetDTO) (*dto.AssetDTO, error) {
	f.created = &payload
	return &dto.AssetDTO{ID: uuid.New(), Name: payload.Name, AssetType: payload.AssetType}, nil
}

func (f *fakeAssetService) UpdateAsset(_ context.Context, id uuid.UUID, _ dto.UpdateAssetDTO) (*dto.AssetDTO, error) {
	return f.FindAsset(context.Background(), id, false)
}

func (f *fakeAssetService) DeleteAsset(_ context.Context, _ uuid.UUID) error {
	return nil
}

func TestAssetListEnvelope(t *testing.T) {
	svc := &fakeAssetService{assets: []dto.AssetDTO{{ID: uuid.New(), Name: "ThinkPad", AssetType: "laptop"}}}
	e := newTestEcho()
	ctrl := NewAssetController(svc, staticChecker{}, zap.NewNop())
	e.GET("/assets", ctrl.GetAssets)

	rec := doJSON(e, http.MethodGet, "/assets?page=2&limit=5&asset_type=laptop", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Len(t, body["assets"], 1)
	assert.EqualValues(t, 1, body["count"])
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 5, body["limit"])
	assert.Equal(t, "laptop", svc.lastFilter.Values["asset_type"])
}

func TestAssetListWithoutPaginationIsSinglePage(t *testing.T) {
	svc := &fakeAssetService{assets: []dto.AssetDTO{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}}
	e := newTestEcho()
	ctrl := NewAssetController(svc, staticChecker{}, zap.NewNop())
	e.GET("/assets", ctrl.GetAssets)

	body := decodeBody(t, doJSON(e, http.MethodGet, "/assets?withPagination=false", ""))
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 3, body["limit"])
	assert.EqualValues(t, 1, body["totalPages"])
}

func TestFindAssetUnscopedRequiresPermission(t *testing.T) {
	id := uuid.New()
	svc := &fakeAssetService{assets: []dto.AssetDTO{{ID: id, Name: "iPhone"}}}

	e := newTestEcho()
	ctrl := NewAssetController(svc, staticChecker{}, zap.NewNop())
	e.GET("/assets/:id", ctrl.FindAsset)

	rec := doJSON(e, http.MethodGet, "/assets/"+id.String()+"?unscoped=true", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(e, http.MethodGet, "/assets/"+id.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, svc.lastUnscoped)

	e = newTestEcho()
	ctrl = NewAssetController(svc, staticChecker{authz.UnscopedView: true}, zap.NewNop())
	e.GET("/assets/:id", ctrl.FindAsset)

	rec = doJSON(e, http.MethodGet, "/assets/"+id.String()+"?unscoped=true", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.lastUnscoped)

	rec = doJSON(e, http.MethodGet, "/assets/"+id.String()+"?unscoped=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindAssetInvalidID(t *testing.T) {
	e := newTestEcho()
	ctrl := NewAssetController(&fakeAssetService{}, staticChecker{}, zap.NewNop())
	e.GET("/assets/:id", ctrl.FindAsset)

	rec := doJSON(e, http.MethodGet, "/assets/42", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodGet, "/assets/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAssetValidation(t *testing.T) {
	svc := &fakeAssetService{}
	e := newTestEcho()
	ctrl := NewAssetController(svc, staticChecker{}, zap.NewNop())
	e.POST("/assets", ctrl.CreateAsset)

	rec := doJSON(e, http.MethodPost, "/assets", `{"name": "ThinkPad"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.created)

	rec = doJSON(e, http.MethodPost, "/assets", `{"name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(e, http.MethodPost, "/assets", `{"name": "ThinkPad", "asset_type": "laptop", "laptop_ram": "16GB"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "16GB", svc.created.LaptopRAM.String)
	assert.Contains(t, decodeBody(t, rec), "asset")
}
