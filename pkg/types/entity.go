package types

import "time"

type BaseEntity struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type LifecycleState uint8

const (
	StateActive LifecycleState = iota
	StateDeleted
)

// Lifecycle - единое состояние записи: Active или Deleted(at).
// В БД хранится двумя колонками (is_active, deleted_at), но в коде они не расходятся.
type Lifecycle struct {
	state     LifecycleState
	deletedAt time.Time
}

func Active() Lifecycle {
	return Lifecycle{state: StateActive}
}

func Deleted(at time.Time) Lifecycle {
	return Lifecycle{state: StateDeleted, deletedAt: at.UTC()}
}

// LifecycleFromColumns собирает состояние из колонок. Любой признак удаления
// (is_active=false или непустой deleted_at) означает Deleted.
func LifecycleFromColumns(isActive bool, deletedAt *time.Time) Lifecycle {
	if deletedAt != nil {
		return Deleted(*deletedAt)
	}
	if !isActive {
		return Lifecycle{state: StateDeleted}
	}
	return Active()
}

func (l Lifecycle) State() LifecycleState { return l.state }

func (l Lifecycle) IsActive() bool { return l.state == StateActive }

func (l Lifecycle) DeletedAt() (time.Time, bool) {
	if l.state != StateDeleted {
		return time.Time{}, false
	}
	return l.deletedAt, true
}

// Columns возвращает значения для записи в (is_active, deleted_at).
func (l Lifecycle) Columns() (bool, *time.Time) {
	if l.state == StateActive {
		return true, nil
	}
	at := l.deletedAt
	return false, &at
}

// SoftDelete - JSON-представление состояния для ответов API.
type SoftDelete struct {
	IsActive  bool       `json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at"`
}

func (l Lifecycle) View() SoftDelete {
	isActive, deletedAt := l.Columns()
	if deletedAt != nil && deletedAt.IsZero() {
		deletedAt = nil
	}
	return SoftDelete{IsActive: isActive, DeletedAt: deletedAt}
}
