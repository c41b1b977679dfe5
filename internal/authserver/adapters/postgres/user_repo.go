// Package postgres содержит реализацию хранилищ сервиса авторизации поверх Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"loginapp/internal/authserver/domain/entities"
	"loginapp/internal/authserver/ports/repositories"
	"loginapp/pkg/logger"
)

// PgxPoolInterface описывает используемое подмножество pgxpool.Pool.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

const selectUserColumns = `
        SELECT id, phone, COALESCE(full_name, ''), COALESCE(email, ''), birth_date, password_hash, created_at
        FROM users
    `

// Create сохраняет нового пользователя и возвращает его с присвоенным ID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (phone, password_hash, full_name, email, birth_date)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
        RETURNING id, created_at
    `

	created := *user
	err := r.pool.QueryRow(ctx, query,
		user.Phone,
		user.PasswordHash,
		user.FullName,
		user.Email,
		user.BirthDate,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return &created, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	var user entities.User
	err := r.pool.QueryRow(ctx, selectUserColumns+`WHERE id = $1`, id).Scan(
		&user.ID,
		&user.Phone,
		&user.FullName,
		&user.Email,
		&user.BirthDate,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.Int64("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return &user, nil
}

// FindByPhone находит пользователя по номеру телефона.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByPhone"))

	var user entities.User
	err := r.pool.QueryRow(ctx, selectUserColumns+`WHERE phone = $1`, phone).Scan(
		&user.ID,
		&user.Phone,
		&user.FullName,
		&user.Email,
		&user.BirthDate,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("phone", phone))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by phone", zap.Error(err))
		return nil, fmt.Errorf("error querying user by phone: %w", err)
	}

	return &user, nil
}

// FindByEmail находит пользователя по email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmail"))

	var user entities.User
	err := r.pool.QueryRow(ctx, selectUserColumns+`WHERE email = $1`, email).Scan(
		&user.ID,
		&user.Phone,
		&user.FullName,
		&user.Email,
		&user.BirthDate,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by email", zap.Error(err))
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}

	return &user, nil
}
