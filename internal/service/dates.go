package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/business-admin/internal/dto"
)

// parseDMY разбирает дату в формате ДД/ММ/ГГГГ
func parseDMY(value string) (time.Time, error) {
	return parseDate(dto.DateLayoutDMY, value)
}

// parseISODate разбирает дату в формате ГГГГ-ММ-ДД
func parseISODate(value string) (time.Time, error) {
	return parseDate(dto.DateLayoutISO, value)
}

func parseDate(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, value)
	}
	return t, nil
}
