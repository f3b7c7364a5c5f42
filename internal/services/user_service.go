package services

import (
	"context"

	"complaintBack/internal/models"
)

type RegisterUserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateRegisterUser(ctx context.Context, u models.RegisterUser) error
	GetByCredentials(ctx context.Context, email, password string) (models.RegisterUser, error)
}

type UserService struct {
	UserRepo RegisterUserStore
}

func (s *UserService) SignUp(ctx context.Context, u models.RegisterUser) error {
	exists, err := s.UserRepo.EmailExists(ctx, u.Email)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrDuplicateEmail
	}
	return s.UserRepo.CreateRegisterUser(ctx, u)
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (models.RegisterUser, error) {
	return s.UserRepo.GetByCredentials(ctx, email, password)
}
