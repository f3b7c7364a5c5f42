package repositories

import (
	"context"
	"database/sql"
	"errors"

	"complaintBack/internal/models"
)

type RegisterUserRepository struct {
	DB *sql.DB
}

func (r *RegisterUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM register_users WHERE email = ?)`
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *RegisterUserRepository) CreateRegisterUser(ctx context.Context, u models.RegisterUser) error {
	query := `INSERT INTO register_users (full_name, age, gender, email, password) VALUES (?, ?, ?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, query, u.FullName, u.Age, u.Gender, u.Email, u.Password)
	return err
}

// GetByCredentials looks the account up by the exact email/password pair, the
// way the registration flow stored it.
func (r *RegisterUserRepository) GetByCredentials(ctx context.Context, email, password string) (models.RegisterUser, error) {
	query := `SELECT id, full_name, age, gender, email FROM register_users WHERE email = ? AND password = ?`

	var u models.RegisterUser
	err := r.DB.QueryRowContext(ctx, query, email, password).Scan(&u.ID, &u.FullName, &u.Age, &u.Gender, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RegisterUser{}, models.ErrInvalidCredentials
	}
	return u, err
}
