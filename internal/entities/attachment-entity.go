package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"hr-system/pkg/types"
)

// AttachmentOwner - вид владельца вложения. Каждому виду соответствует таблица,
// в которой проверяется существование владельца.
type AttachmentOwner struct {
	kind  string
	table string
}

var (
	OwnerUsers  = AttachmentOwner{kind: "users", table: "users"}
	OwnerAssets = AttachmentOwner{kind: "assets", table: "assets"}
)

var attachmentOwners = map[string]AttachmentOwner{
	OwnerUsers.kind:  OwnerUsers,
	OwnerAssets.kind: OwnerAssets,
}

func ParseAttachmentOwner(raw string) (AttachmentOwner, error) {
	owner, ok := attachmentOwners[raw]
	if !ok {
		return AttachmentOwner{}, fmt.Errorf("неизвестный тип владельца вложения: %q", raw)
	}
	return owner, nil
}

func (o AttachmentOwner) String() string { return o.kind }

func (o AttachmentOwner) Table() string { return o.table }

func (o AttachmentOwner) IsZero() bool { return o.kind == "" }

type Attachment struct {
	ID          uuid.UUID       `db:"id"`
	EntityID    string          `db:"entity_id"`
	EntityType  AttachmentOwner `db:"entity_type"`
	Name        string          `db:"name"`
	MimeType    string          `db:"mime_type"`
	Extension   string          `db:"extension"`
	StoragePath string          `db:"storage_path"`
	Size        int64           `db:"size"`
	Lifecycle   types.Lifecycle `db:"-"`
	CreatedAt   time.Time       `db:"created_at"`
}
