package authz

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---

const (
	// Глобальные
	Superuser    = "superuser"
	UnscopedView = "unscoped:view"

	UsersCreate = "users:create"
	UsersView   = "users:view"
	UsersUpdate = "users:update"
	UsersDelete = "users:delete"

	RolesCreate = "roles:create"
	RolesView   = "roles:view"
	RolesUpdate = "roles:update"
	RolesDelete = "roles:delete"

	DepartmentsCreate = "departments:create"
	DepartmentsView   = "departments:view"
	DepartmentsUpdate = "departments:update"
	DepartmentsDelete = "departments:delete"

	TitlesCreate = "titles:create"
	TitlesView   = "titles:view"
	TitlesUpdate = "titles:update"
	TitlesDelete = "titles:delete"

	PhonesCreate = "phones:create"
	PhonesView   = "phones:view"
	PhonesUpdate = "phones:update"
	PhonesDelete = "phones:delete"

	AssetsCreate = "assets:create"
	AssetsView   = "assets:view"
	AssetsUpdate = "assets:update"
	AssetsDelete = "assets:delete"
	AssetsExport = "assets:export"

	TrackingCreate = "asset-tracking:create"
	TrackingView   = "asset-tracking:view"
	TrackingUpdate = "asset-tracking:update"
	TrackingDelete = "asset-tracking:delete"
	TrackingExport = "asset-tracking:export"

	AttachmentsCreate = "attachments:create"
	AttachmentsView   = "attachments:view"
	AttachmentsDelete = "attachments:delete"
)

// Имена ролей, которые создаёт сидер
const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

var viewPermissions = []string{
	UsersView, RolesView, DepartmentsView, TitlesView, PhonesView,
	AssetsView, TrackingView, AttachmentsView,
}

var managePermissions = []string{
	UsersCreate, UsersUpdate, UsersDelete,
	RolesCreate, RolesUpdate, RolesDelete,
	DepartmentsCreate, DepartmentsUpdate, DepartmentsDelete,
	TitlesCreate, TitlesUpdate, TitlesDelete,
	PhonesCreate, PhonesUpdate, PhonesDelete,
	AssetsCreate, AssetsUpdate, AssetsDelete, AssetsExport,
	TrackingCreate, TrackingUpdate, TrackingDelete, TrackingExport,
	AttachmentsCreate, AttachmentsDelete,
}

// DefaultMatrix - права по имени роли. admin получает Superuser и видит удалённые записи.
func DefaultMatrix() map[string]map[string]bool {
	return map[string]map[string]bool{
		RoleAdmin:    toSet([]string{Superuser}),
		RoleHR:       toSet(append(append([]string{}, viewPermissions...), managePermissions...)),
		RoleEmployee: toSet(viewPermissions),
	}
}

func toSet(perms []string) map[string]bool {
	set := make(map[string]bool, len(perms))
	for _, p := range perms {
		set[p] = true
	}
	return set
}
