package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// RegisterRequest данные клиента из Telegram
type RegisterRequest struct {
	UserID      int64   `json:"userId" validate:"gt=0"`
	Username    *string `json:"username,omitempty" validate:"omitempty,max=64"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,max=128"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,max=128"`
}

// UserResponse клиент мойки
type UserResponse struct {
	UserID       int64     `json:"userId"`
	Username     *string   `json:"username,omitempty"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty"`
	FirstName    *string   `json:"firstName,omitempty"`
	LastName     *string   `json:"lastName,omitempty"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// FromDomainUser конвертирует domain модель в response
func FromDomainUser(u *domain.User) *UserResponse {
	return &UserResponse{
		UserID:       u.UserID,
		Username:     u.Username,
		PhoneNumber:  u.PhoneNumber,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		RegisteredAt: u.RegisteredAt,
	}
}

// FromDomainUsers конвертирует список клиентов
func FromDomainUsers(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, FromDomainUser(u))
	}
	return result
}
