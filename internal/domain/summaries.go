package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Значения по умолчанию для плоских списков
const (
	NoDepartmentLabel  = "Sin Depto"
	NoManagerLabel     = "Sin Asignar"
	NoEmployeeName     = "Sin nombre"
	UnknownAdminLabel  = "Unknown"
	IndicatorSourceTag = "mindicador.cl"
)

// EmployeeSummary - строка списка сотрудников
type EmployeeSummary struct {
	ID             int64
	Name           string
	Email          string
	Salary         decimal.Decimal
	DepartmentName string
}

// DepartmentSummary - строка списка подразделений
type DepartmentSummary struct {
	ID          int64
	Name        string
	ManagerName string
}

// ProjectSummary - строка списка проектов
type ProjectSummary struct {
	ID            int64
	Name          string
	StartDate     time.Time
	EmployeeCount int64
}

// AdministratorSummary - строка списка администраторов
type AdministratorSummary struct {
	ID           int64
	Username     string
	EmployeeID   int64
	EmployeeName string
}

// IndicatorValue - последнее сохранённое значение индикатора
type IndicatorValue struct {
	Value     decimal.Decimal
	ValueDate time.Time
	QueryDate time.Time
}

// BatchResult - итог пакетного сохранения индикаторов
type BatchResult struct {
	SuccessCount int
	FailureCount int
	Errors       []string
}
