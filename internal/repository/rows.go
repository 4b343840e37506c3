package repository

import (
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/shopspring/decimal"
)

// personRow - строка таблицы usuarios
type personRow struct {
	Rut     string `gorm:"column:id_usuario;primaryKey"`
	Name    string `gorm:"column:nombre"`
	Address string `gorm:"column:direccion"`
	Phone   string `gorm:"column:telefono"`
	Email   string `gorm:"column:correo"`
}

func (personRow) TableName() string { return "usuarios" }

// employeeRow - строка таблицы empleados
type employeeRow struct {
	ID            int64           `gorm:"column:id_empleado;primaryKey;autoIncrement:false"`
	ContractStart time.Time       `gorm:"column:fecha_inicio_contrato"`
	Salary        decimal.Decimal `gorm:"column:salario"`
	Rut           string          `gorm:"column:id_usuario"`
	DepartmentID  *int64          `gorm:"column:id_departamento"`
}

func (employeeRow) TableName() string { return "empleados" }

// departmentRow - строка таблицы departamentos
type departmentRow struct {
	ID        int64  `gorm:"column:id_departamento;primaryKey;autoIncrement:false"`
	Name      string `gorm:"column:nombre"`
	ManagerID *int64 `gorm:"column:id_gerente_responsable"`
}

func (departmentRow) TableName() string { return "departamentos" }

// projectRow - строка таблицы proyectos
type projectRow struct {
	ID          int64     `gorm:"column:id_proyecto;primaryKey;autoIncrement:false"`
	Name        string    `gorm:"column:nombre"`
	StartDate   time.Time `gorm:"column:fecha_inicio_proyecto"`
	Description string    `gorm:"column:descripcion"`
}

func (projectRow) TableName() string { return "proyectos" }

// assignmentRow - связь проекта и сотрудника
type assignmentRow struct {
	ProjectID  int64 `gorm:"column:id_proyecto;primaryKey;autoIncrement:false"`
	EmployeeID int64 `gorm:"column:id_empleado;primaryKey;autoIncrement:false"`
}

func (assignmentRow) TableName() string { return "proyecto_empleados" }

// hourRecordRow - строка таблицы registros
type hourRecordRow struct {
	Date        time.Time `gorm:"column:fecha_registro"`
	Hours       int       `gorm:"column:horas_trabajadas"`
	Description string    `gorm:"column:descripcion_trabajo"`
	EmployeeID  int64     `gorm:"column:id_empleado"`
	ProjectID   int64     `gorm:"column:id_proyecto"`
}

func (hourRecordRow) TableName() string { return "registros" }

// adminRow - строка таблицы administradores
type adminRow struct {
	ID           int64  `gorm:"column:id_admin;primaryKey;autoIncrement:false"`
	Username     string `gorm:"column:usuario"`
	PasswordHash string `gorm:"column:clave"`
	EmployeeID   int64  `gorm:"column:id_empleado"`
}

func (adminRow) TableName() string { return "administradores" }

// indicatorRow - строка таблицы indicadores_registrados
type indicatorRow struct {
	ID        int64           `gorm:"column:id_indicador_registro;primaryKey;autoIncrement:false"`
	Name      string          `gorm:"column:nombre_indicador"`
	Value     decimal.Decimal `gorm:"column:valor_indicador"`
	ValueDate time.Time       `gorm:"column:fecha_valor"`
	QueryDate time.Time       `gorm:"column:fecha_consulta"`
	Source    string          `gorm:"column:sitio_proveedor"`
	AdminID   *int64          `gorm:"column:id_admin_consulta"`
}

func (indicatorRow) TableName() string { return "indicadores_registrados" }

// employeeView - сотрудник вместе с идентификационными данными (empleados JOIN usuarios)
type employeeView struct {
	ID            int64
	ContractStart time.Time
	Salary        decimal.Decimal
	DepartmentID  *int64
	Rut           string
	Name          string
	Address       string
	Phone         string
	Email         string
}

// employeeViewColumns - список колонок для сканирования в employeeView
const employeeViewColumns = `e.id_empleado AS id, e.fecha_inicio_contrato AS contract_start, e.salario AS salary,
	e.id_departamento AS department_id, u.id_usuario AS rut, u.nombre AS name, u.direccion AS address,
	u.telefono AS phone, u.correo AS email`

func (v employeeView) toDomain() domain.Employee {
	return domain.Employee{
		Person: domain.Person{
			Rut:     v.Rut,
			Name:    v.Name,
			Address: v.Address,
			Phone:   v.Phone,
			Email:   v.Email,
		},
		ID:            v.ID,
		ContractStart: v.ContractStart,
		Salary:        v.Salary,
	}
}

func toDomainEmployees(views []employeeView) []domain.Employee {
	employees := make([]domain.Employee, 0, len(views))
	for _, v := range views {
		employees = append(employees, v.toDomain())
	}
	return employees
}
