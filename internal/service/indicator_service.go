package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/repository"
	"github.com/shopspring/decimal"
)

// DefaultHistoryLimit - размер истории, если лимит не задан
const DefaultHistoryLimit = 50

const maxIndicatorNameLength = 100

// IndicatorFetcher получает текущие значения индикаторов
type IndicatorFetcher interface {
	Fetch(ctx context.Context) (map[string]domain.Indicator, error)
}

// IndicatorService определяет интерфейс работы с индикаторами и их архивом
type IndicatorService interface {
	Fetch(ctx context.Context) (map[string]domain.Indicator, error)
	NextRecordID(ctx context.Context) (int64, error)
	Save(ctx context.Context, name string, value decimal.Decimal, valueDate string, adminID int64) (*domain.IndicatorSnapshot, error)
	SaveAll(ctx context.Context, indicators map[string]domain.Indicator, adminID int64) domain.BatchResult
	FetchAndArchive(ctx context.Context, adminID int64) (domain.BatchResult, error)
	History(ctx context.Context, limit int) ([]domain.IndicatorSnapshot, error)
	ClearHistory(ctx context.Context) (int64, error)
	Latest(ctx context.Context, name string) (*domain.IndicatorValue, error)
}

type indicatorService struct {
	fetcher      IndicatorFetcher
	repo         repository.IndicatorRepository
	historyLimit int
	logger       *slog.Logger
	now          func() time.Time
}

// NewIndicatorService создаёт новый экземпляр сервиса
func NewIndicatorService(fetcher IndicatorFetcher, repo repository.IndicatorRepository, historyLimit int, logger *slog.Logger) IndicatorService {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &indicatorService{
		fetcher:      fetcher,
		repo:         repo,
		historyLimit: historyLimit,
		logger:       logger,
		now:          time.Now,
	}
}

// Fetch возвращает пустую карту и ErrIndicatorsUnavailable, если ничего не получено
func (s *indicatorService) Fetch(ctx context.Context) (map[string]domain.Indicator, error) {
	indicators, err := s.fetcher.Fetch(ctx)
	if indicators == nil {
		indicators = make(map[string]domain.Indicator)
	}
	if err != nil || len(indicators) == 0 {
		if err != nil {
			return indicators, fmt.Errorf("%w: %v", domain.ErrIndicatorsUnavailable, err)
		}
		return indicators, domain.ErrIndicatorsUnavailable
	}
	return indicators, nil
}

func (s *indicatorService) NextRecordID(ctx context.Context) (int64, error) {
	return s.repo.NextID(ctx)
}

// Save сохраняет одно значение. Дата значения берётся из первых 10 символов
// valueDate (ГГГГ-ММ-ДД); если разобрать не удалось, используется текущая дата.
func (s *indicatorService) Save(ctx context.Context, name string, value decimal.Decimal, valueDate string, adminID int64) (*domain.IndicatorSnapshot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: indicator name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxIndicatorNameLength {
		return nil, fmt.Errorf("%w: indicator name is longer than %d characters", domain.ErrInvalidInput, maxIndicatorNameLength)
	}
	if adminID <= 0 {
		return nil, fmt.Errorf("%w: administrator id is required", domain.ErrInvalidInput)
	}

	now := s.now()
	snapshot := &domain.IndicatorSnapshot{
		Name:      name,
		Value:     value,
		ValueDate: s.parseValueDate(name, valueDate, now),
		QueryDate: now,
		Source:    domain.IndicatorSourceTag,
		AdminID:   &adminID,
	}

	if err := s.repo.Create(ctx, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *indicatorService) parseValueDate(name, raw string, now time.Time) time.Time {
	if len(raw) >= len("2006-01-02") {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t
		}
	}

	s.logger.Warn("indicator value date not parsed, using current date",
		slog.String("indicator", name),
		slog.String("value_date", raw),
	)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// SaveAll сохраняет каждое значение независимо: ошибка одного не прерывает остальные
func (s *indicatorService) SaveAll(ctx context.Context, indicators map[string]domain.Indicator, adminID int64) domain.BatchResult {
	result := domain.BatchResult{Errors: make([]string, 0)}

	keys := make([]string, 0, len(indicators))
	for key := range indicators {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		ind := indicators[key]
		name := ind.Name
		if strings.TrimSpace(name) == "" {
			name = key
		}

		if _, err := s.Save(ctx, ind.Name, ind.Value, ind.Date, adminID); err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", name, err.Error()))
			continue
		}
		result.SuccessCount++
	}

	s.logger.Info("indicators archived",
		slog.Int("saved", result.SuccessCount),
		slog.Int("failed", result.FailureCount),
		slog.Int64("admin_id", adminID),
	)
	return result
}

// FetchAndArchive получает индикаторы и сохраняет их от имени администратора
func (s *indicatorService) FetchAndArchive(ctx context.Context, adminID int64) (domain.BatchResult, error) {
	indicators, err := s.Fetch(ctx)
	if err != nil {
		return domain.BatchResult{Errors: make([]string, 0)}, err
	}
	return s.SaveAll(ctx, indicators, adminID), nil
}

func (s *indicatorService) History(ctx context.Context, limit int) ([]domain.IndicatorSnapshot, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.repo.History(ctx, limit)
}

// ClearHistory безвозвратно удаляет весь архив
func (s *indicatorService) ClearHistory(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Warn("indicator history cleared", slog.Int64("deleted", deleted))
	return deleted, nil
}

func (s *indicatorService) Latest(ctx context.Context, name string) (*domain.IndicatorValue, error) {
	value, err := s.repo.Latest(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, domain.ErrIndicatorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read latest indicator value: %w", err)
	}
	return value, nil
}
