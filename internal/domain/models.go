package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Person - базовые идентификационные данные человека
type Person struct {
	Rut     string
	Name    string
	Address string
	Phone   string
	Email   string
}

// Employee представляет сотрудника. Department раскрывается не глубже одного уровня.
type Employee struct {
	Person

	ID            int64
	ContractStart time.Time
	Salary        decimal.Decimal
	Department    *Department
}

// Administrator - сотрудник с учётной записью администратора
type Administrator struct {
	Employee

	AdminID      int64
	Username     string
	PasswordHash string
}

// Department представляет подразделение
type Department struct {
	ID        int64
	Name      string
	Manager   *Employee
	Employees []Employee
}

// Project представляет проект и назначенных на него сотрудников
type Project struct {
	ID          int64
	Name        string
	StartDate   time.Time
	Description string
	Employees   []Employee
}

// HourRecord - запись отработанных часов (только добавление)
type HourRecord struct {
	Date        time.Time
	Hours       int
	Description string
	EmployeeID  int64
	ProjectID   int64
}

// Indicator - значение индикатора, полученное из внешнего API
type Indicator struct {
	Code  string
	Name  string
	Unit  string
	Date  string
	Value decimal.Decimal
}

// IndicatorSnapshot - сохранённое значение индикатора
type IndicatorSnapshot struct {
	ID            int64
	Name          string
	Value         decimal.Decimal
	ValueDate     time.Time
	QueryDate     time.Time
	Source        string
	AdminID       *int64
	AdminUsername string
}

// NewDepartment создаёт подразделение с собственным пустым списком сотрудников
func NewDepartment(id int64, name string, manager *Employee) *Department {
	return &Department{
		ID:        id,
		Name:      name,
		Manager:   manager,
		Employees: make([]Employee, 0),
	}
}

// NewProject создаёт проект с собственным пустым списком сотрудников
func NewProject(id int64, name string, startDate time.Time, description string) *Project {
	return &Project{
		ID:          id,
		Name:        name,
		StartDate:   startDate,
		Description: description,
		Employees:   make([]Employee, 0),
	}
}
