package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

type CreateAssetDTO struct {
	Name         string      `json:"name" validate:"required,max=200"`
	AssetType    string      `json:"asset_type" validate:"required,asset_type"`
	SerialNumber null.String `json:"serial_number" validate:"omitempty,max=100"`
	Description  null.String `json:"description"`

	LaptopBrand   null.String `json:"laptop_brand"`
	LaptopModel   null.String `json:"laptop_model"`
	LaptopCPU     null.String `json:"laptop_cpu"`
	LaptopRAM     null.String `json:"laptop_ram"`
	LaptopStorage null.String `json:"laptop_storage"`

	MobileBrand null.String `json:"mobile_brand"`
	MobileModel null.String `json:"mobile_model"`
	MobileIMEI  null.String `json:"mobile_imei" validate:"omitempty,numeric,len=15"`

	PhoneNumber    null.String `json:"phone_number" validate:"omitempty,phone_number"`
	PhoneExtension null.String `json:"phone_extension" validate:"omitempty,max=10"`
}

type UpdateAssetDTO struct {
	Name         *string              `json:"name" validate:"omitempty,min=1,max=200"`
	AssetType    *string              `json:"asset_type" validate:"omitempty,asset_type"`
	SerialNumber types.OptionalString `json:"serial_number" validate:"omitempty,max=100"`
	Description  types.OptionalString `json:"description"`

	LaptopBrand   types.OptionalString `json:"laptop_brand"`
	LaptopModel   types.OptionalString `json:"laptop_model"`
	LaptopCPU     types.OptionalString `json:"laptop_cpu"`
	LaptopRAM     types.OptionalString `json:"laptop_ram"`
	LaptopStorage types.OptionalString `json:"laptop_storage"`

	MobileBrand types.OptionalString `json:"mobile_brand"`
	MobileModel types.OptionalString `json:"mobile_model"`
	MobileIMEI  types.OptionalString `json:"mobile_imei" validate:"omitempty,numeric,len=15"`

	PhoneNumber    types.OptionalString `json:"phone_number" validate:"omitempty,phone_number"`
	PhoneExtension types.OptionalString `json:"phone_extension" validate:"omitempty,max=10"`
}

type AssetDTO struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	AssetType    string      `json:"asset_type"`
	SerialNumber null.String `json:"serial_number"`
	Description  null.String `json:"description"`

	LaptopBrand   null.String `json:"laptop_brand"`
	LaptopModel   null.String `json:"laptop_model"`
	LaptopCPU     null.String `json:"laptop_cpu"`
	LaptopRAM     null.String `json:"laptop_ram"`
	LaptopStorage null.String `json:"laptop_storage"`

	MobileBrand null.String `json:"mobile_brand"`
	MobileModel null.String `json:"mobile_model"`
	MobileIMEI  null.String `json:"mobile_imei"`

	PhoneNumber    null.String `json:"phone_number"`
	PhoneExtension null.String `json:"phone_extension"`

	Attachments []AttachmentDTO `json:"attachments"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	types.SoftDelete
}

type ShortAssetDTO struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	AssetType    string      `json:"asset_type"`
	SerialNumber null.String `json:"serial_number"`
	IsActive     bool        `json:"is_active"`
}

type AssetImportResultDTO struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
