package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hr-system/internal/entities"
	"hr-system/internal/repositories"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/eventbus"
	"hr-system/pkg/types"
)

// Память вместо БД: ровно та семантика, на которую опираются сервисы.

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type memRoleRepo struct {
	roles       map[uuid.UUID]*entities.Role
	activeUsers map[uuid.UUID]uint64
}

func newMemRoleRepo(roles ...entities.Role) *memRoleRepo {
	r := &memRoleRepo{roles: map[uuid.UUID]*entities.Role{}, activeUsers: map[uuid.UUID]uint64{}}
	for i := range roles {
		role := roles[i]
		r.roles[role.ID] = &role
	}
	return r
}

func (r *memRoleRepo) GetRoles(context.Context, types.Filter) ([]entities.Role, uint64, error) {
	out := make([]entities.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, uint64(len(out)), nil
}

func (r *memRoleRepo) FindRole(_ context.Context, _ pgx.Tx, id uuid.UUID) (*entities.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *role
	return &cp, nil
}

func (r *memRoleRepo) FindByName(_ context.Context, _ pgx.Tx, name string) (*entities.Role, error) {
	for _, role := range r.roles {
		if strings.EqualFold(role.Name, name) {
			cp := *role
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memRoleRepo) NameTaken(_ context.Context, _ pgx.Tx, name string, exceptID *uuid.UUID) (bool, error) {
	for id, role := range r.roles {
		if strings.EqualFold(role.Name, name) && (exceptID == nil || *exceptID != id) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRoleRepo) CreateRole(_ context.Context, _ pgx.Tx, role entities.Role) (*entities.Role, error) {
	role.ID = uuid.New()
	role.Lifecycle = types.Active()
	r.roles[role.ID] = &role
	cp := role
	return &cp, nil
}

func (r *memRoleRepo) UpdateRole(_ context.Context, _ pgx.Tx, id uuid.UUID, patch repositories.DictionaryPatch) (*entities.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.Name != nil {
		role.Name = *patch.Name
	}
	if patch.Description.Set {
		role.Description = patch.Description.Value
	}
	cp := *role
	return &cp, nil
}

func (r *memRoleRepo) DeleteRole(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	if _, ok := r.roles[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *memRoleRepo) CountActiveUsers(_ context.Context, _ pgx.Tx, roleID uuid.UUID) (uint64, error) {
	return r.activeUsers[roleID], nil
}

type memTitleRepo struct {
	titles map[uuid.UUID]*entities.Title
}

func newMemTitleRepo(titles ...entities.Title) *memTitleRepo {
	r := &memTitleRepo{titles: map[uuid.UUID]*entities.Title{}}
	for i := range titles {
		t := titles[i]
		r.titles[t.ID] = &t
	}
	return r
}

func (r *memTitleRepo) GetTitles(context.Context, types.Filter) ([]entities.Title, uint64, error) {
	return nil, 0, nil
}

func (r *memTitleRepo) FindTitle(_ context.Context, _ pgx.Tx, id uuid.UUID) (*entities.Title, error) {
	t, ok := r.titles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTitleRepo) NameTaken(_ context.Context, _ pgx.Tx, name string, exceptID *uuid.UUID) (bool, error) {
	for id, t := range r.titles {
		if t.Lifecycle.IsActive() && strings.EqualFold(t.Name, strings.TrimSpace(name)) && (exceptID == nil || *exceptID != id) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTitleRepo) CreateTitle(_ context.Context, _ pgx.Tx, t entities.Title) (*entities.Title, error) {
	t.ID = uuid.New()
	t.Lifecycle = types.Active()
	r.titles[t.ID] = &t
	cp := t
	return &cp, nil
}

func (r *memTitleRepo) UpdateTitle(_ context.Context, _ pgx.Tx, id uuid.UUID, patch repositories.DictionaryPatch) (*entities.Title, error) {
	t, ok := r.titles[id]
	if !ok || !t.Lifecycle.IsActive() {
		return nil, apperrors.ErrNotFound
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description.Set {
		t.Description = patch.Description.Value
	}
	cp := *t
	return &cp, nil
}

func (r *memTitleRepo) DeleteTitle(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	t, ok := r.titles[id]
	if !ok || !t.Lifecycle.IsActive() {
		return apperrors.ErrNotFound
	}
	t.Lifecycle = types.Deleted(time.Now())
	return nil
}

type memDepartmentRepo struct {
	departments map[uuid.UUID]*entities.Department
	links       map[uuid.UUID][]uuid.UUID
}

func newMemDepartmentRepo(departments ...entities.Department) *memDepartmentRepo {
	r := &memDepartmentRepo{
		departments: map[uuid.UUID]*entities.Department{},
		links:       map[uuid.UUID][]uuid.UUID{},
	}
	for i := range departments {
		d := departments[i]
		r.departments[d.ID] = &d
	}
	return r
}

func (r *memDepartmentRepo) GetDepartments(context.Context, types.Filter) ([]entities.Department, uint64, error) {
	return nil, 0, nil
}

func (r *memDepartmentRepo) FindDepartment(_ context.Context, _ pgx.Tx, id uuid.UUID) (*entities.Department, error) {
	d, ok := r.departments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDepartmentRepo) NameTaken(_ context.Context, _ pgx.Tx, name string, exceptID *uuid.UUID) (bool, error) {
	for id, d := range r.departments {
		if d.Lifecycle.IsActive() && strings.EqualFold(d.Name, strings.TrimSpace(name)) && (exceptID == nil || *exceptID != id) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memDepartmentRepo) CreateDepartment(_ context.Context, _ pgx.Tx, d entities.Department) (*entities.Department, error) {
	d.ID = uuid.New()
	d.Lifecycle = types.Active()
	r.departments[d.ID] = &d
	cp := d
	return &cp, nil
}

func (r *memDepartmentRepo) UpdateDepartment(_ context.Context, _ pgx.Tx, id uuid.UUID, patch repositories.DictionaryPatch) (*entities.Department, error) {
	d, ok := r.departments[id]
	if !ok || !d.Lifecycle.IsActive() {
		return nil, apperrors.ErrNotFound
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Description.Set {
		d.Description = patch.Description.Value
	}
	cp := *d
	return &cp, nil
}

func (r *memDepartmentRepo) DeleteDepartment(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	d, ok := r.departments[id]
	if !ok || !d.Lifecycle.IsActive() {
		return apperrors.ErrNotFound
	}
	d.Lifecycle = types.Deleted(time.Now())
	return nil
}

func (r *memDepartmentRepo) ListByUserIDs(_ context.Context, _ pgx.Tx, userIDs []uuid.UUID) (map[uuid.UUID][]entities.Department, error) {
	out := map[uuid.UUID][]entities.Department{}
	for _, userID := range userIDs {
		for _, depID := range r.links[userID] {
			if d, ok := r.departments[depID]; ok {
				out[userID] = append(out[userID], *d)
			}
		}
	}
	return out, nil
}

func (r *memDepartmentRepo) ReplaceUserDepartments(_ context.Context, _ pgx.Tx, userID uuid.UUID, departmentIDs []uuid.UUID) error {
	r.links[userID] = append([]uuid.UUID(nil), departmentIDs...)
	return nil
}

type memPhoneRepo struct {
	phones       map[uuid.UUID]*entities.Phone
	clearedFor   []uuid.UUID
	createCalled int
}

func newMemPhoneRepo() *memPhoneRepo {
	return &memPhoneRepo{phones: map[uuid.UUID]*entities.Phone{}}
}

func (r *memPhoneRepo) GetPhones(context.Context, types.Filter) ([]entities.Phone, uint64, error) {
	return nil, 0, nil
}

func (r *memPhoneRepo) FindPhone(_ context.Context, _ pgx.Tx, id uuid.UUID) (*entities.Phone, error) {
	p, ok := r.phones[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPhoneRepo) ListByUserIDs(_ context.Context, _ pgx.Tx, userIDs []uuid.UUID) (map[uuid.UUID][]entities.Phone, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range userIDs {
		wanted[id] = true
	}
	out := map[uuid.UUID][]entities.Phone{}
	for _, p := range r.phones {
		if wanted[p.UserID] {
			out[p.UserID] = append(out[p.UserID], *p)
		}
	}
	return out, nil
}

func (r *memPhoneRepo) CreatePhones(_ context.Context, _ pgx.Tx, phones []entities.Phone) ([]entities.Phone, error) {
	r.createCalled++
	out := make([]entities.Phone, 0, len(phones))
	for _, p := range phones {
		p.ID = uuid.New()
		p.Lifecycle = types.Active()
		stored := p
		r.phones[p.ID] = &stored
		out = append(out, p)
	}
	return out, nil
}

func (r *memPhoneRepo) UpdatePhone(_ context.Context, _ pgx.Tx, id uuid.UUID, patch repositories.PhonePatch) (*entities.Phone, error) {
	p, ok := r.phones[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.UserID != nil {
		p.UserID = *patch.UserID
	}
	if patch.Number != nil {
		p.Number = *patch.Number
	}
	if patch.PhoneType != nil {
		p.PhoneType = *patch.PhoneType
	}
	if patch.IsPrimary != nil {
		p.IsPrimary = *patch.IsPrimary
	}
	cp := *p
	return &cp, nil
}

func (r *memPhoneRepo) ClearPrimary(_ context.Context, _ pgx.Tx, userID uuid.UUID, exceptID uuid.UUID) error {
	r.clearedFor = append(r.clearedFor, userID)
	for id, p := range r.phones {
		if p.UserID == userID && id != exceptID {
			p.IsPrimary = false
		}
	}
	return nil
}

func (r *memPhoneRepo) DeletePhone(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	if _, ok := r.phones[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.phones, id)
	return nil
}

type memUserRepo struct {
	users map[uuid.UUID]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*entities.User{}}
}

func (r *memUserRepo) GetUsers(context.Context, types.Filter) ([]entities.User, uint64, error) {
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, uint64(len(out)), nil
}

func (r *memUserRepo) FindUser(_ context.Context, _ pgx.Tx, id uuid.UUID) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Username.Valid && strings.EqualFold(u.Username.String, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) UserNumberTaken(_ context.Context, _ pgx.Tx, userNumber string, exceptID *uuid.UUID) (bool, error) {
	for id, u := range r.users {
		if u.UserNumber == userNumber && (exceptID == nil || *exceptID != id) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) UsernameTaken(_ context.Context, _ pgx.Tx, username string, exceptID *uuid.UUID) (bool, error) {
	for id, u := range r.users {
		if u.Username.Valid && strings.EqualFold(u.Username.String, username) && (exceptID == nil || *exceptID != id) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) CreateUser(_ context.Context, _ pgx.Tx, user entities.User) (*entities.User, error) {
	user.ID = uuid.New()
	user.Lifecycle = types.Active()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := user
	r.users[user.ID] = &stored
	return &user, nil
}

func (r *memUserRepo) UpdateUser(_ context.Context, _ pgx.Tx, id uuid.UUID, patch repositories.UserPatch) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.UserNumber != nil {
		u.UserNumber = *patch.UserNumber
	}
	if patch.Username.Set {
		u.Username = patch.Username.Value
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = null.StringFrom(*patch.PasswordHash)
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email.Set {
		u.Email = patch.Email.Value
	}
	if patch.RoleID != nil {
		u.RoleID = *patch.RoleID
	}
	if patch.TitleID.Set {
		u.TitleID = patch.TitleID.Value
	}
	if patch.Title.Set {
		u.Title = patch.Title.Value
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) DeleteUser(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memAssetRepo struct {
	assets  map[uuid.UUID]*entities.Asset
	deleted map[uuid.UUID]*entities.Asset
	order   []uuid.UUID
}

func newMemAssetRepo(assets ...entities.Asset) *memAssetRepo {
	r := &memAssetRepo{assets: map[uuid.UUID]*entities.Asset{}, deleted: map[uuid.UUID]*entities.Asset{}}
	for i := range assets {
		a := assets[i]
		r.assets[a.ID] = &a
		r.order = append(r.order, a.ID)
	}
	return r
}

func (r *memAssetRepo) GetAssets(context.Context, types.Filter) ([]entities.Asset, uint64, error) {
	out := []entities.Asset{}
	for _, id := range r.order {
		if a, ok := r.assets[id]; ok {
			out = append(out, *a)
		}
	}
	return out, uint64(len(out)), nil
}

func (r *memAssetRepo) FindAsset(_ context.Context, _ pgx.Tx, id uuid.UUID) (*entities.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAssetRepo) FindAssetUnscoped(ctx context.Context, id uuid.UUID) (*entities.Asset, error) {
	if a, ok := r.deleted[id]; ok {
		cp := *a
		return &cp, nil
	}
	return r.FindAsset(ctx, nil, id)
}

func (r *memAssetRepo) CreateAsset(_ context.Context, _ pgx.Tx, asset entities.Asset) (*entities.Asset, error) {
	asset.ID = uuid.New()
	asset.Lifecycle = types.Active()
	stored := asset
	r.assets[asset.ID] = &stored
	r.order = append(r.order, asset.ID)
	return &asset, nil
}

func (r *memAssetRepo) UpdateAsset(_ context.Context, _ pgx.Tx, id uuid.UUID, patch repositories.AssetPatch) (*entities.Asset, error) {
	a, ok := r.assets[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if v := patch.Optional["serial_number"]; v.Set {
		a.SerialNumber = v.Value
	}
	if v := patch.Optional["description"]; v.Set {
		a.Description = v.Value
	}
	cp := *a
	return &cp, nil
}

func (r *memAssetRepo) DeleteAsset(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	a, ok := r.assets[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	a.Lifecycle = types.Deleted(time.Now())
	r.deleted[id] = a
	delete(r.assets, id)
	return nil
}

type memTrackingRepo struct {
	items map[uuid.UUID]*entities.AssetTracking
	asset *entities.AssetSummary
}

func newMemTrackingRepo() *memTrackingRepo {
	return &memTrackingRepo{items: map[uuid.UUID]*entities.AssetTracking{}}
}

func (r *memTrackingRepo) GetAssetTrackings(context.Context, types.Filter) ([]entities.AssetTracking, uint64, error) {
	out := make([]entities.AssetTracking, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, *t)
	}
	return out, uint64(len(out)), nil
}

func (r *memTrackingRepo) FindAssetTracking(_ context.Context, _ pgx.Tx, id uuid.UUID) (*entities.AssetTracking, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTrackingRepo) CreateAssetTracking(_ context.Context, _ pgx.Tx, tracking entities.AssetTracking) (*entities.AssetTracking, error) {
	tracking.ID = uuid.New()
	tracking.Lifecycle = types.Active()
	tracking.Asset = r.asset
	stored := tracking
	r.items[tracking.ID] = &stored
	return &tracking, nil
}

func (r *memTrackingRepo) UpdateAssetTracking(_ context.Context, _ pgx.Tx, id uuid.UUID, patch repositories.AssetTrackingPatch) (*entities.AssetTracking, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.AssetID != nil {
		t.AssetID = *patch.AssetID
	}
	if patch.UserID != nil {
		t.UserID = *patch.UserID
	}
	if patch.AssignedAt != nil {
		t.AssignedAt = *patch.AssignedAt
	}
	if patch.RemovedAt.Set {
		t.RemovedAt = patch.RemovedAt.Value
	}
	if patch.Notes.Set {
		t.Notes = patch.Notes.Value
	}
	cp := *t
	return &cp, nil
}

func (r *memTrackingRepo) DeleteAssetTracking(_ context.Context, _ pgx.Tx, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type memAttachmentRepo struct {
	owners      map[uuid.UUID]bool
	items       map[uuid.UUID]*entities.Attachment
	createErr   error
	batchCalls  int
	batchLookup [][]string
}

func newMemAttachmentRepo(owners ...uuid.UUID) *memAttachmentRepo {
	r := &memAttachmentRepo{owners: map[uuid.UUID]bool{}, items: map[uuid.UUID]*entities.Attachment{}}
	for _, id := range owners {
		r.owners[id] = true
	}
	return r
}

func (r *memAttachmentRepo) OwnerExists(_ context.Context, _ pgx.Tx, _ entities.AttachmentOwner, id uuid.UUID) (bool, error) {
	return r.owners[id], nil
}

func (r *memAttachmentRepo) CreateBatch(_ context.Context, _ pgx.Tx, attachments []entities.Attachment) ([]entities.Attachment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := make([]entities.Attachment, 0, len(attachments))
	for _, a := range attachments {
		a.Lifecycle = types.Active()
		a.CreatedAt = time.Now().UTC()
		stored := a
		r.items[a.ID] = &stored
		out = append(out, a)
	}
	return out, nil
}

func (r *memAttachmentRepo) FetchByEntity(_ context.Context, owner entities.AttachmentOwner, entityID string) ([]entities.Attachment, error) {
	out := []entities.Attachment{}
	for _, a := range r.items {
		if a.EntityType == owner && a.EntityID == entityID && a.Lifecycle.IsActive() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAttachmentRepo) FetchBatch(ctx context.Context, owner entities.AttachmentOwner, entityIDs []string) (map[string][]entities.Attachment, error) {
	r.batchCalls++
	r.batchLookup = append(r.batchLookup, entityIDs)
	out := map[string][]entities.Attachment{}
	for _, id := range entityIDs {
		items, _ := r.FetchByEntity(ctx, owner, id)
		if len(items) > 0 {
			out[id] = items
		}
	}
	return out, nil
}

func (r *memAttachmentRepo) FindActivePaths(_ context.Context, _ pgx.Tx, ids []uuid.UUID) ([]string, error) {
	var paths []string
	for _, id := range ids {
		if a, ok := r.items[id]; ok && a.Lifecycle.IsActive() {
			paths = append(paths, a.StoragePath)
		}
	}
	return paths, nil
}

func (r *memAttachmentRepo) SoftDeleteMany(_ context.Context, _ pgx.Tx, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if a, ok := r.items[id]; ok && a.Lifecycle.IsActive() {
			a.Lifecycle = types.Deleted(time.Now())
			n++
		}
	}
	return n, nil
}

// memStorage безопасен для параллельных Save/Delete.
type memStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	removed []string
	failOn  string
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) Save(_ context.Context, file io.Reader, originalFileName string, prefix string) (string, error) {
	if s.failOn != "" && originalFileName == s.failOn {
		return "", fmt.Errorf("диск недоступен")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	path := prefix + "/" + uuid.NewString() + "-" + originalFileName
	s.mu.Lock()
	s.files[path] = data
	s.mu.Unlock()
	return path, nil
}

func (s *memStorage) Delete(_ context.Context, filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, filePath)
	s.removed = append(s.removed, filePath)
	return nil
}

func (s *memStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

type memCache struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.values[key] = fmt.Sprint(value)
	c.ttls[key] = expiration
	return nil
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
		delete(c.ttls, k)
	}
	return nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *memCache) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	if _, ok := c.values[key]; !ok {
		return false, nil
	}
	c.ttls[key] = expiration
	return true, nil
}

func (c *memCache) TTL(_ context.Context, key string) (time.Duration, error) {
	return c.ttls[key], nil
}

type recordingPublisher struct {
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name())
	}
	return out
}
