package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher хэширует и проверяет пароли администраторов bcrypt
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher создаёт хэшер с заданной стоимостью bcrypt.
// Некорректная стоимость заменяется bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	// Хэш для сравнения при неизвестном пользователе, чтобы время ответа не отличалось
	dummy, _ := bcrypt.GenerateFromPassword([]byte("no-such-administrator"), cost)

	return &PasswordHasher{cost: cost, dummyHash: dummy}
}

// Hash возвращает хэш пароля. Соль новая при каждом вызове.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify сравнивает пароль с хэшем за постоянное время
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// burn выполняет сравнение с фиктивным хэшем
func (h *PasswordHasher) burn(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
