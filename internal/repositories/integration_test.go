//go:build integration

package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	"hr-system/pkg/database/migrations"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
)

type RepositorySuite struct {
	suite.Suite
	ctx  context.Context
	pool *pgxpool.Pool

	roles    RoleRepositoryInterface
	users    UserRepositoryInterface
	assets   AssetRepositoryInterface
	tracking AssetTrackingRepositoryInterface
	tx       TxManagerInterface
}

func TestRepositorySuite(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL не задан")
	}
	suite.Run(t, &RepositorySuite{})
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	pool, err := pgxpool.New(s.ctx, os.Getenv("TEST_DATABASE_URL"))
	s.Require().NoError(err)
	s.pool = pool

	logger := zap.NewNop()
	s.roles = NewRoleRepository(pool, logger)
	s.users = NewUserRepository(pool, logger)
	s.assets = NewAssetRepository(pool, logger)
	s.tracking = NewAssetTrackingRepository(pool, logger)
	s.tx = NewTxManager(pool)
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NoError(migrations.Reset(s.ctx, s.pool))
	s.Require().NoError(migrations.Up(s.ctx, s.pool, zap.NewNop()))
}

func (s *RepositorySuite) TearDownSuite() {
	_ = migrations.Reset(s.ctx, s.pool)
	s.pool.Close()
}

func (s *RepositorySuite) createRole(name string) *entities.Role {
	role, err := s.roles.CreateRole(s.ctx, nil, entities.Role{Name: name})
	s.Require().NoError(err)
	return role
}

func (s *RepositorySuite) createUser(roleID uuid.UUID, number string) *entities.User {
	user, err := s.users.CreateUser(s.ctx, nil, entities.User{
		UserNumber: number,
		FirstName:  "Иван",
		LastName:   "Петров",
		RoleID:     roleID,
	})
	s.Require().NoError(err)
	return user
}

func (s *RepositorySuite) TestDuplicateUserNumberConflicts() {
	role := s.createRole("admin")
	first := s.createUser(role.ID, "EMP100")

	_, err := s.users.CreateUser(s.ctx, nil, entities.User{
		UserNumber: "EMP100", FirstName: "Пётр", LastName: "Сидоров", RoleID: role.ID,
	})
	s.ErrorIs(err, apperrors.ErrConflict)

	stored, err := s.users.FindUser(s.ctx, nil, first.ID)
	s.Require().NoError(err)
	s.Equal("Иван", stored.FirstName)
	s.Equal("EMP100", stored.UserNumber)
}

func (s *RepositorySuite) TestSoftDeleteTwice() {
	role := s.createRole("hr")

	s.Require().NoError(s.roles.DeleteRole(s.ctx, nil, role.ID))
	s.ErrorIs(s.roles.DeleteRole(s.ctx, nil, role.ID), apperrors.ErrNotFound)

	_, err := s.roles.FindRole(s.ctx, nil, role.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	name := "новое имя"
	_, err = s.roles.UpdateRole(s.ctx, nil, role.ID, DictionaryPatch{Name: &name})
	s.ErrorIs(err, apperrors.ErrNotFound)

	// Имя удалённой роли снова свободно
	s.createRole("hr")
}

func (s *RepositorySuite) TestTrackingRoundTripAndActiveOnly() {
	role := s.createRole("employee")
	user := s.createUser(role.ID, "EMP200")
	asset, err := s.assets.CreateAsset(s.ctx, nil, entities.Asset{Name: "ThinkPad", AssetType: entities.AssetTypeLaptop})
	s.Require().NoError(err)

	assignedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	open, err := s.tracking.CreateAssetTracking(s.ctx, nil, entities.AssetTracking{
		AssetID: asset.ID, UserID: user.ID, AssignedAt: assignedAt,
	})
	s.Require().NoError(err)
	s.Equal(assignedAt.Format(time.RFC3339Nano), open.AssignedAt.Format(time.RFC3339Nano))
	s.True(open.IsOpen())
	s.Equal("ThinkPad", open.Asset.Name)

	onlyOpen := types.Filter{Values: map[string]interface{}{"activeOnly": "true"}, Limit: 10, WithPagination: true}
	all := types.Filter{Values: map[string]interface{}{}, Limit: 10, WithPagination: true}

	items, total, err := s.tracking.GetAssetTrackings(s.ctx, onlyOpen)
	s.Require().NoError(err)
	s.Equal(uint64(1), total)
	s.Len(items, 1)

	_, err = s.tracking.UpdateAssetTracking(s.ctx, nil, open.ID, AssetTrackingPatch{
		RemovedAt: types.OptionalTimeFrom(time.Now()),
	})
	s.Require().NoError(err)

	_, total, err = s.tracking.GetAssetTrackings(s.ctx, onlyOpen)
	s.Require().NoError(err)
	s.Equal(uint64(0), total)

	_, total, err = s.tracking.GetAssetTrackings(s.ctx, all)
	s.Require().NoError(err)
	s.Equal(uint64(1), total)

	// Удалённая запись не видна ни в одном режиме
	s.Require().NoError(s.tracking.DeleteAssetTracking(s.ctx, nil, open.ID))
	_, total, err = s.tracking.GetAssetTrackings(s.ctx, all)
	s.Require().NoError(err)
	s.Equal(uint64(0), total)
}

func (s *RepositorySuite) TestTrackingDanglingReference() {
	_, err := s.tracking.CreateAssetTracking(s.ctx, nil, entities.AssetTracking{
		AssetID: uuid.New(), UserID: uuid.New(), Notes: null.StringFrom("нет такой техники"),
	})
	s.ErrorIs(err, apperrors.ErrDataIntegrity)
}

func (s *RepositorySuite) TestTransactionRollback() {
	boom := errors.New("сбой после вставки")
	var createdID uuid.UUID

	err := s.tx.RunInTransaction(s.ctx, func(tx pgx.Tx) error {
		role, err := s.roles.CreateRole(s.ctx, tx, entities.Role{Name: "временная"})
		if err != nil {
			return err
		}
		createdID = role.ID
		return boom
	})

	s.Same(boom, err)
	s.Require().NotEqual(uuid.Nil, createdID)
	_, err = s.roles.FindRole(s.ctx, nil, createdID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
