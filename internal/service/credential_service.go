package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
	"github.com/business-admin/internal/repository"
	"github.com/shopspring/decimal"
)

// Учётная запись, создаваемая при первом запуске
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

const (
	minPasswordLength = 6
	minUsernameLength = 3
)

// CredentialService определяет интерфейс работы с учётными записями администраторов
type CredentialService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.Administrator, error)
	ChangePassword(ctx context.Context, username string, req *dto.ChangePasswordRequest) error
	CreateAdministrator(ctx context.Context, req *dto.CreateAdministratorRequest) (*domain.Administrator, error)
	NextSuggestedAdminID(ctx context.Context) int64
	EnsureDefaultAdministrator(ctx context.Context) (bool, error)
	GetAdministrator(ctx context.Context, employeeID int64) (*domain.Administrator, error)
	ListAdministrators(ctx context.Context) ([]domain.AdministratorSummary, error)
}

type credentialService struct {
	adminRepo repository.AdministratorRepository
	hasher    *PasswordHasher
	logger    *slog.Logger
	now       func() time.Time
}

// NewCredentialService создаёт новый экземпляр сервиса
func NewCredentialService(adminRepo repository.AdministratorRepository, hasher *PasswordHasher, logger *slog.Logger) CredentialService {
	return &credentialService{
		adminRepo: adminRepo,
		hasher:    hasher,
		logger:    logger,
		now:       time.Now,
	}
}

// Login возвращает администратора при совпадении пароля. Неизвестный логин
// и неверный пароль дают одну и ту же ошибку ErrInvalidCredentials.
func (s *credentialService) Login(ctx context.Context, req *dto.LoginRequest) (*domain.Administrator, error) {
	username := strings.TrimSpace(req.Username)

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			s.hasher.burn(req.Password)
			s.logger.Info("login rejected", slog.String("username", username))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	if !s.hasher.Verify(req.Password, admin.PasswordHash) {
		s.logger.Info("login rejected", slog.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info("login succeeded",
		slog.String("username", username),
		slog.Int64("employee_id", admin.ID),
	)
	return admin, nil
}

// ChangePassword меняет пароль текущего администратора после проверки действующего пароля
func (s *credentialService) ChangePassword(ctx context.Context, username string, req *dto.ChangePasswordRequest) error {
	if username == "" {
		return domain.ErrInvalidSession
	}
	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return domain.ErrMissingFields
	}
	if req.NewPassword != req.ConfirmPassword {
		return domain.ErrPasswordMismatch
	}
	if utf8.RuneCountInString(req.NewPassword) < minPasswordLength {
		return domain.ErrPasswordTooShort
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	if !s.hasher.Verify(req.CurrentPassword, admin.PasswordHash) {
		return domain.ErrWrongCurrentPassword
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.adminRepo.UpdatePassword(ctx, username, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", slog.String("username", username))
	return nil
}

func (s *credentialService) CreateAdministrator(ctx context.Context, req *dto.CreateAdministratorRequest) (*domain.Administrator, error) {
	username := strings.TrimSpace(req.Username)

	if req.AdminID <= 0 || req.EmployeeID <= 0 || username == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, domain.ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, domain.ErrUsernameTooShort
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &domain.Administrator{
		Employee:     domain.Employee{ID: req.EmployeeID},
		AdminID:      req.AdminID,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("administrator created",
		slog.Int64("admin_id", req.AdminID),
		slog.String("username", username),
		slog.Int64("employee_id", req.EmployeeID),
	)

	return s.adminRepo.GetByEmployeeID(ctx, req.EmployeeID)
}

// NextSuggestedAdminID возвращает max(id)+1, либо 1 если администраторов нет или БД недоступна
func (s *credentialService) NextSuggestedAdminID(ctx context.Context) int64 {
	maxID, err := s.adminRepo.MaxID(ctx)
	if err != nil {
		s.logger.Error("failed to read max admin id", slog.Any("error", err))
		return 1
	}
	return maxID + 1
}

// EnsureDefaultAdministrator создаёт администратора по умолчанию, если учётных записей нет.
// Возвращает true, если запись была создана.
func (s *credentialService) EnsureDefaultAdministrator(ctx context.Context) (bool, error) {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count administrators: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := s.hasher.Hash(DefaultAdminPassword)
	if err != nil {
		return false, err
	}

	now := s.now()
	admin := &domain.Administrator{
		Employee: domain.Employee{
			Person: domain.Person{
				Rut:     "1",
				Name:    "Administrador",
				Address: "Sistema",
				Phone:   "0000000000",
				Email:   "admin@sistema.com",
			},
			ID:            1,
			ContractStart: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
			Salary:        decimal.Zero,
		},
		AdminID:      1,
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
	}

	if err := s.adminRepo.CreateWithEmployee(ctx, admin); err != nil {
		return false, err
	}

	s.logger.Warn("default administrator created, change its password",
		slog.String("username", DefaultAdminUsername),
	)
	return true, nil
}

func (s *credentialService) GetAdministrator(ctx context.Context, employeeID int64) (*domain.Administrator, error) {
	return s.adminRepo.GetByEmployeeID(ctx, employeeID)
}

func (s *credentialService) ListAdministrators(ctx context.Context) ([]domain.AdministratorSummary, error) {
	return s.adminRepo.List(ctx)
}
