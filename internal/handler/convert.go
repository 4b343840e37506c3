package handler

import (
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
)

const queryTimeLayout = "2006-01-02 15:04:05"

func formatDMY(t time.Time) string {
	return t.Format(dto.DateLayoutDMY)
}

func formatISO(t time.Time) string {
	return t.Format(dto.DateLayoutISO)
}

// toEmployeeResponse раскрывает подразделение сотрудника не глубже одного уровня
func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := toShallowEmployeeResponse(emp)
	if emp.Department != nil {
		dept := toDepartmentResponse(emp.Department)
		resp.Department = &dept
	}
	return resp
}

func toEmployeeLookupResponse(emp *domain.Employee) dto.EmployeeLookupResponse {
	return dto.EmployeeLookupResponse{ID: emp.ID, Name: emp.Name}
}

func toShallowEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		PersonResponse: dto.PersonResponse{
			Rut:     emp.Rut,
			Name:    emp.Name,
			Address: emp.Address,
			Phone:   emp.Phone,
			Email:   emp.Email,
		},
		ID:            emp.ID,
		ContractStart: formatDMY(emp.ContractStart),
		Salary:        emp.Salary,
	}
}

func toDepartmentResponse(dept *domain.Department) dto.DepartmentResponse {
	resp := dto.DepartmentResponse{
		ID:        dept.ID,
		Name:      dept.Name,
		Employees: make([]dto.EmployeeResponse, 0, len(dept.Employees)),
	}
	if dept.Manager != nil {
		manager := toShallowEmployeeResponse(dept.Manager)
		resp.Manager = &manager
	}
	for i := range dept.Employees {
		resp.Employees = append(resp.Employees, toShallowEmployeeResponse(&dept.Employees[i]))
	}
	return resp
}

func toProjectResponse(project *domain.Project) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		StartDate:   formatDMY(project.StartDate),
		Description: project.Description,
		Employees:   make([]dto.EmployeeResponse, 0, len(project.Employees)),
	}
	for i := range project.Employees {
		resp.Employees = append(resp.Employees, toShallowEmployeeResponse(&project.Employees[i]))
	}
	return resp
}

func toAdministratorResponse(admin *domain.Administrator) dto.AdministratorResponse {
	return dto.AdministratorResponse{
		EmployeeResponse: toShallowEmployeeResponse(&admin.Employee),
		AdminID:          admin.AdminID,
		Username:         admin.Username,
	}
}

func toHourRecordResponses(records []domain.HourRecord) []dto.HourRecordResponse {
	resp := make([]dto.HourRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, dto.HourRecordResponse{
			Date:        formatISO(rec.Date),
			Hours:       rec.Hours,
			Description: rec.Description,
			EmployeeID:  rec.EmployeeID,
			ProjectID:   rec.ProjectID,
		})
	}
	return resp
}

func toEmployeeSummaries(items []domain.EmployeeSummary) []dto.EmployeeSummaryResponse {
	resp := make([]dto.EmployeeSummaryResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, dto.EmployeeSummaryResponse{
			ID:             it.ID,
			Name:           it.Name,
			Email:          it.Email,
			Salary:         it.Salary,
			DepartmentName: it.DepartmentName,
		})
	}
	return resp
}

func toDepartmentSummaries(items []domain.DepartmentSummary) []dto.DepartmentSummaryResponse {
	resp := make([]dto.DepartmentSummaryResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, dto.DepartmentSummaryResponse{
			ID:          it.ID,
			Name:        it.Name,
			ManagerName: it.ManagerName,
		})
	}
	return resp
}

func toProjectSummaries(items []domain.ProjectSummary) []dto.ProjectSummaryResponse {
	resp := make([]dto.ProjectSummaryResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, dto.ProjectSummaryResponse{
			ID:            it.ID,
			Name:          it.Name,
			StartDate:     formatDMY(it.StartDate),
			EmployeeCount: it.EmployeeCount,
		})
	}
	return resp
}

func toAdministratorSummaries(items []domain.AdministratorSummary) []dto.AdministratorSummaryResponse {
	resp := make([]dto.AdministratorSummaryResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, dto.AdministratorSummaryResponse{
			ID:           it.ID,
			Username:     it.Username,
			EmployeeID:   it.EmployeeID,
			EmployeeName: it.EmployeeName,
		})
	}
	return resp
}

func toIndicatorResponses(indicators map[string]domain.Indicator) map[string]dto.IndicatorResponse {
	resp := make(map[string]dto.IndicatorResponse, len(indicators))
	for key, ind := range indicators {
		resp[key] = dto.IndicatorResponse{
			Code:  ind.Code,
			Name:  ind.Name,
			Unit:  ind.Unit,
			Date:  ind.Date,
			Value: ind.Value,
		}
	}
	return resp
}

func toSnapshotResponse(s *domain.IndicatorSnapshot) dto.IndicatorSnapshotResponse {
	return dto.IndicatorSnapshotResponse{
		ID:            s.ID,
		Name:          s.Name,
		Value:         s.Value,
		ValueDate:     formatISO(s.ValueDate),
		QueryDate:     s.QueryDate.Format(queryTimeLayout),
		Source:        s.Source,
		AdminUsername: s.AdminUsername,
	}
}

func toBatchResultResponse(r domain.BatchResult) dto.BatchResultResponse {
	errs := r.Errors
	if errs == nil {
		errs = make([]string, 0)
	}
	return dto.BatchResultResponse{
		SuccessCount: r.SuccessCount,
		FailureCount: r.FailureCount,
		Errors:       errs,
	}
}
