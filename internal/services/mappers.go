package services

import (
	"hr-system/internal/dto"
	"hr-system/internal/entities"
)

func roleEntityToDTO(role *entities.Role) *dto.RoleDTO {
	if role == nil {
		return nil
	}
	return &dto.RoleDTO{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
		SoftDelete:  role.Lifecycle.View(),
	}
}

func departmentEntityToDTO(department *entities.Department) *dto.DepartmentDTO {
	return &dto.DepartmentDTO{
		ID:          department.ID,
		Name:        department.Name,
		Description: department.Description,
		CreatedAt:   department.CreatedAt,
		UpdatedAt:   department.UpdatedAt,
		SoftDelete:  department.Lifecycle.View(),
	}
}

func titleEntityToDTO(title *entities.Title) *dto.TitleDTO {
	return &dto.TitleDTO{
		ID:          title.ID,
		Name:        title.Name,
		Description: title.Description,
		CreatedAt:   title.CreatedAt,
		UpdatedAt:   title.UpdatedAt,
		SoftDelete:  title.Lifecycle.View(),
	}
}

func phoneEntityToDTO(phone *entities.Phone) dto.PhoneDTO {
	return dto.PhoneDTO{
		ID:         phone.ID,
		UserID:     phone.UserID,
		Number:     phone.Number,
		PhoneType:  phone.PhoneType,
		IsPrimary:  phone.IsPrimary,
		CreatedAt:  phone.CreatedAt,
		UpdatedAt:  phone.UpdatedAt,
		SoftDelete: phone.Lifecycle.View(),
	}
}

func userEntityToDTO(user *entities.User) *dto.UserDTO {
	phones := make([]dto.PhoneDTO, 0, len(user.Phones))
	for i := range user.Phones {
		phones = append(phones, phoneEntityToDTO(&user.Phones[i]))
	}
	departments := make([]dto.ShortDepartmentDTO, 0, len(user.Departments))
	for _, d := range user.Departments {
		departments = append(departments, dto.ShortDepartmentDTO{ID: d.ID, Name: d.Name})
	}
	return &dto.UserDTO{
		ID:          user.ID,
		UserNumber:  user.UserNumber,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		RoleID:      user.RoleID,
		Role:        roleEntityToDTO(user.Role),
		TitleID:     user.TitleID,
		Title:       user.Title,
		Phones:      phones,
		Departments: departments,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
		SoftDelete:  user.Lifecycle.View(),
	}
}

func attachmentEntityToDTO(a *entities.Attachment) dto.AttachmentDTO {
	return dto.AttachmentDTO{
		ID:          a.ID,
		EntityID:    a.EntityID,
		EntityType:  a.EntityType.String(),
		Name:        a.Name,
		MimeType:    a.MimeType,
		Extension:   a.Extension,
		StoragePath: a.StoragePath,
		Size:        a.Size,
		CreatedAt:   a.CreatedAt,
	}
}

func attachmentsToDTO(items []entities.Attachment) []dto.AttachmentDTO {
	out := make([]dto.AttachmentDTO, 0, len(items))
	for i := range items {
		out = append(out, attachmentEntityToDTO(&items[i]))
	}
	return out
}

func assetEntityToDTO(a *entities.Asset) *dto.AssetDTO {
	return &dto.AssetDTO{
		ID:             a.ID,
		Name:           a.Name,
		AssetType:      a.AssetType,
		SerialNumber:   a.SerialNumber,
		Description:    a.Description,
		LaptopBrand:    a.LaptopBrand,
		LaptopModel:    a.LaptopModel,
		LaptopCPU:      a.LaptopCPU,
		LaptopRAM:      a.LaptopRAM,
		LaptopStorage:  a.LaptopStorage,
		MobileBrand:    a.MobileBrand,
		MobileModel:    a.MobileModel,
		MobileIMEI:     a.MobileIMEI,
		PhoneNumber:    a.PhoneNumber,
		PhoneExtension: a.PhoneExtension,
		Attachments:    attachmentsToDTO(a.Attachments),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		SoftDelete:     a.Lifecycle.View(),
	}
}

func assetTrackingEntityToDTO(t *entities.AssetTracking) *dto.AssetTrackingDTO {
	out := &dto.AssetTrackingDTO{
		ID:         t.ID,
		AssetID:    t.AssetID,
		UserID:     t.UserID,
		AssignedAt: t.AssignedAt,
		RemovedAt:  t.RemovedAt,
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		SoftDelete: t.Lifecycle.View(),
	}
	if t.Asset != nil {
		out.Asset = &dto.ShortAssetDTO{
			ID:           t.Asset.ID,
			Name:         t.Asset.Name,
			AssetType:    t.Asset.AssetType,
			SerialNumber: t.Asset.SerialNumber,
			IsActive:     t.Asset.IsActive,
		}
	}
	if t.User != nil {
		out.User = &dto.ShortUserDTO{
			ID:         t.User.ID,
			UserNumber: t.User.UserNumber,
			FirstName:  t.User.FirstName,
			LastName:   t.User.LastName,
			IsActive:   t.User.IsActive,
		}
	}
	return out
}
