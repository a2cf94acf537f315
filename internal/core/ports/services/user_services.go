package services

import (
	"context"

	"github.com/flujoapp/flujo_backend/internal/core/domain"
	"github.com/flujoapp/flujo_backend/internal/dto"
)

// UserSvcFacade defines the minimal account operations the dashboard needs:
// registration and credential checks for the JWT login flow.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
