package seeders

import "hr-system/internal/authz"

type dictionaryItem struct {
	Name        string
	Description string
}

var rolesData = []dictionaryItem{
	{Name: authz.RoleAdmin, Description: "Администратор системы (полный доступ)"},
	{Name: authz.RoleHR, Description: "Сотрудник отдела кадров"},
	{Name: authz.RoleEmployee, Description: "Сотрудник (только просмотр)"},
}

var titlesData = []dictionaryItem{
	{Name: "Директор", Description: "Руководитель организации"},
	{Name: "Руководитель отдела", Description: ""},
	{Name: "Ведущий специалист", Description: ""},
	{Name: "Специалист", Description: ""},
	{Name: "Системный администратор", Description: "Обслуживание техники и учётных записей"},
}

var departmentsData = []dictionaryItem{
	{Name: "Администрация", Description: ""},
	{Name: "Отдел кадров", Description: "Учёт сотрудников"},
	{Name: "ИТ-отдел", Description: "Учёт и выдача техники"},
	{Name: "Бухгалтерия", Description: ""},
}
