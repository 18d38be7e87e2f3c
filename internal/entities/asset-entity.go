package entities

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

const (
	AssetTypePhone  = "phone"
	AssetTypeMobile = "mobile"
	AssetTypeLaptop = "laptop"
)

// Asset - единица техники. Заполнены только поля, относящиеся к AssetType.
type Asset struct {
	ID           uuid.UUID   `db:"id"`
	Name         string      `db:"name"`
	AssetType    string      `db:"asset_type"`
	SerialNumber null.String `db:"serial_number"`
	Description  null.String `db:"description"`

	LaptopBrand   null.String `db:"laptop_brand"`
	LaptopModel   null.String `db:"laptop_model"`
	LaptopCPU     null.String `db:"laptop_cpu"`
	LaptopRAM     null.String `db:"laptop_ram"`
	LaptopStorage null.String `db:"laptop_storage"`

	MobileBrand null.String `db:"mobile_brand"`
	MobileModel null.String `db:"mobile_model"`
	MobileIMEI  null.String `db:"mobile_imei"`

	PhoneNumber    null.String `db:"phone_number"`
	PhoneExtension null.String `db:"phone_extension"`

	Lifecycle types.Lifecycle `db:"-"`

	types.BaseEntity

	Attachments []Attachment `db:"-"`
}
