package domain

import (
	"errors"
	"fmt"
)

// Определение бизнес-ошибок
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrProjectNotFound     = errors.New("project not found")
	ErrManagerNotFound     = errors.New("manager employee not found")
	ErrDuplicateID         = errors.New("a record with this id already exists")
	ErrDuplicateAssignment = errors.New("employee is already assigned to this project")
	ErrForeignKeyViolation = errors.New("referenced employee or project does not exist")
	ErrMissingField        = errors.New("a required field is missing")
	ErrAssignmentNotFound  = errors.New("employee is not assigned to this project")
	ErrAlreadyInDepartment = errors.New("employee already belongs to this department")
	ErrNotAssigned         = errors.New("employee does not exist or has no department")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidInput        = errors.New("invalid input")
)

// Ошибки учётных записей администраторов
var (
	ErrInvalidSession       = errors.New("no active session")
	ErrMissingFields        = errors.New("all fields are required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordTooShort     = errors.New("password must be at least 6 characters")
	ErrUsernameTooShort     = errors.New("username must be at least 3 characters")
	ErrUserNotFound         = errors.New("user not found")
	ErrWrongCurrentPassword = errors.New("current password is incorrect")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrDuplicateAdminID     = errors.New("an administrator with this id already exists")
	ErrDuplicateUsername    = errors.New("an administrator with this username already exists")
	ErrAlreadyAdmin         = errors.New("employee is already an administrator")
	ErrAdminNotFound        = errors.New("administrator not found")
)

// Ошибки индикаторов
var (
	ErrIndicatorsUnavailable = errors.New("could not retrieve indicators")
	ErrIndicatorNotFound     = errors.New("no archived value for indicator")
)

// DBError - ошибка БД, не отнесённая ни к одной известной категории
type DBError struct {
	Code    string
	Message string
}

func (e *DBError) Error() string {
	return fmt.Sprintf("database error %s: %s", e.Code, e.Message)
}
