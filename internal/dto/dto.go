package dto

import (
	"github.com/shopspring/decimal"
)

// Форматы дат во входящих запросах
const (
	DateLayoutDMY = "02/01/2006"
	DateLayoutISO = "2006-01-02"
)

// LoginRequest - запрос на вход администратора
type LoginRequest struct {
	Username string `json:"username" validate:"max=100"`
	Password string `json:"password" validate:"max=72"`
}

// LoginResponse - токен сессии администратора
type LoginResponse struct {
	Token      string `json:"token"`
	EmployeeID int64  `json:"employee_id"`
	AdminID    int64  `json:"admin_id"`
	Username   string `json:"username"`
}

// ChangePasswordRequest - запрос на смену пароля. Имя пользователя берётся из сессии.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"max=72"`
	NewPassword     string `json:"new_password" validate:"max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"max=72"`
}

// CreateAdministratorRequest - запрос на создание администратора
type CreateAdministratorRequest struct {
	AdminID         int64  `json:"admin_id" validate:"min=0"`
	Username        string `json:"username" validate:"max=100"`
	Password        string `json:"password" validate:"max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"max=72"`
	EmployeeID      int64  `json:"employee_id" validate:"min=0"`
}

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	Rut           string          `json:"rut" validate:"required,min=1,max=20"`
	EmployeeID    int64           `json:"employee_id" validate:"required,min=1"`
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Address       string          `json:"address" validate:"max=200"`
	Phone         string          `json:"phone" validate:"max=30"`
	Email         string          `json:"email" validate:"omitempty,email,max=200"`
	ContractStart string          `json:"contract_start" validate:"required,datetime=02/01/2006"`
	Salary        decimal.Decimal `json:"salary"`
	DepartmentID  *int64          `json:"department_id" validate:"omitempty,min=1"`
}

// UpdateEmployeeRequest - запрос на обновление сотрудника. Дата контракта и подразделение не меняются.
type UpdateEmployeeRequest struct {
	Rut     string          `json:"rut" validate:"max=20"`
	Name    string          `json:"name" validate:"required,min=1,max=200"`
	Address string          `json:"address" validate:"max=200"`
	Phone   string          `json:"phone" validate:"max=30"`
	Email   string          `json:"email" validate:"omitempty,email,max=200"`
	Salary  decimal.Decimal `json:"salary"`
}

// RecordHoursRequest - запрос на регистрацию часов
type RecordHoursRequest struct {
	EmployeeID  int64  `json:"employee_id" validate:"required,min=1"`
	ProjectID   int64  `json:"project_id" validate:"required,min=1"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Hours       int    `json:"hours"`
	Description string `json:"description" validate:"max=1000"`
}

// LogHoursRequest - регистрация часов самим сотрудником: он указывает свой RUT, а не внутренний id
type LogHoursRequest struct {
	Rut         string `json:"rut" validate:"required,max=20"`
	ProjectID   int64  `json:"project_id" validate:"required,min=1"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Hours       int    `json:"hours"`
	Description string `json:"description" validate:"max=1000"`
}

// CreateDepartmentRequest - запрос на создание подразделения
type CreateDepartmentRequest struct {
	ID        int64  `json:"id" validate:"required,min=1"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	ManagerID *int64 `json:"manager_id" validate:"omitempty,min=1"`
}

// UpdateDepartmentRequest - запрос на обновление подразделения. ManagerID=0 снимает руководителя.
type UpdateDepartmentRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	ManagerID *int64 `json:"manager_id" validate:"omitempty,min=0"`
}

// CreateProjectRequest - запрос на создание проекта
type CreateProjectRequest struct {
	ID          int64  `json:"id" validate:"required,min=1"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	StartDate   string `json:"start_date" validate:"required,datetime=02/01/2006"`
	Description string `json:"description" validate:"max=1000"`
}

// UpdateProjectRequest - запрос на обновление проекта
type UpdateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	StartDate   string `json:"start_date" validate:"required,datetime=02/01/2006"`
	Description string `json:"description" validate:"max=1000"`
}

// AssignmentRequest - назначение сотрудника в проект или подразделение
type AssignmentRequest struct {
	EmployeeID int64 `json:"employee_id" validate:"required,min=1"`
}

// SaveIndicatorRequest - запрос на сохранение значения индикатора
type SaveIndicatorRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=100"`
	Value     decimal.Decimal `json:"value"`
	ValueDate string          `json:"value_date" validate:"max=40"`
}

// PersonResponse - идентификационные данные
type PersonResponse struct {
	Rut     string `json:"rut"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	PersonResponse
	ID            int64               `json:"id"`
	ContractStart string              `json:"contract_start"`
	Salary        decimal.Decimal     `json:"salary"`
	Department    *DepartmentResponse `json:"department,omitempty"`
}

// EmployeeLookupResponse - публичный ответ на поиск по RUT, без персональных данных
type EmployeeLookupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DepartmentResponse - ответ с данными подразделения
type DepartmentResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Manager   *EmployeeResponse  `json:"manager"`
	Employees []EmployeeResponse `json:"employees"`
}

// ProjectResponse - ответ с данными проекта
type ProjectResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	StartDate   string             `json:"start_date"`
	Description string             `json:"description"`
	Employees   []EmployeeResponse `json:"employees"`
}

// AdministratorResponse - ответ с данными администратора. Хэш пароля не возвращается.
type AdministratorResponse struct {
	EmployeeResponse
	AdminID  int64  `json:"admin_id"`
	Username string `json:"username"`
}

// HourRecordResponse - запись отработанных часов
type HourRecordResponse struct {
	Date        string `json:"date"`
	Hours       int    `json:"hours"`
	Description string `json:"description"`
	EmployeeID  int64  `json:"employee_id"`
	ProjectID   int64  `json:"project_id"`
}

// EmployeeSummaryResponse - строка списка сотрудников
type EmployeeSummaryResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Salary         decimal.Decimal `json:"salary"`
	DepartmentName string          `json:"department_name"`
}

// DepartmentSummaryResponse - строка списка подразделений
type DepartmentSummaryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ManagerName string `json:"manager_name"`
}

// ProjectSummaryResponse - строка списка проектов
type ProjectSummaryResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	StartDate     string `json:"start_date"`
	EmployeeCount int64  `json:"employee_count"`
}

// AdministratorSummaryResponse - строка списка администраторов
type AdministratorSummaryResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

// IndicatorResponse - значение индикатора из внешнего API
type IndicatorResponse struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// IndicatorSnapshotResponse - сохранённое значение индикатора
type IndicatorSnapshotResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Value         decimal.Decimal `json:"value"`
	ValueDate     string          `json:"value_date"`
	QueryDate     string          `json:"query_date"`
	Source        string          `json:"source"`
	AdminUsername string          `json:"admin_username"`
}

// IndicatorValueResponse - последнее сохранённое значение индикатора
type IndicatorValueResponse struct {
	Value     decimal.Decimal `json:"value"`
	ValueDate string          `json:"value_date"`
	QueryDate string          `json:"query_date"`
}

// BatchResultResponse - итог пакетного сохранения
type BatchResultResponse struct {
	SuccessCount int      `json:"success_count"`
	FailureCount int      `json:"failure_count"`
	Errors       []string `json:"errors"`
}

// NextIDResponse - предлагаемый следующий id
type NextIDResponse struct {
	NextID int64 `json:"next_id"`
}

// ClearHistoryResponse - число удалённых записей архива
type ClearHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HistoryQuery - параметры запроса истории индикаторов
type HistoryQuery struct {
	Limit int `validate:"min=0,max=1000"`
}
