package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	customErrors "github.com/personalgpt/backend/internal/domain/auth/errors"
	"github.com/personalgpt/backend/internal/domain/auth/model"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// CreateUser inserts the user and its settings row in one transaction: both
// land or neither does. A unique-key violation that slips past the service
// pre-checks comes back as the same user-facing conflict error.
func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User, settings model.UserSettings) (uuid.UUID, error) {
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&settings).Error
	})
	if err != nil {
		if conflict := translateUniqueViolation(err); conflict != nil {
			return uuid.Nil, conflict
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return p.getUser(ctx, "id = ?", id)
}

func (p *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return p.getUser(ctx, "email = ?", email)
}

func (p *PostgresUserRepo) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return p.getUser(ctx, "username = ?", username)
}

func (p *PostgresUserRepo) getUser(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where(query, arg).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "getUser")
	}
	return u, nil
}

func (p *PostgresUserRepo) UpdateUser(ctx context.Context, user model.User) error {
	res := p.db.WithContext(ctx).Save(&user)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateUser")
	}
	return nil
}

// translateUniqueViolation maps a 23505 to the conflict error matching the
// violated constraint, or nil if err is something else. gorm's duplicated-key
// sentinel covers the sqlite test driver, where pgconn never appears.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return customErrors.NewAlreadyExists("Email already registered")
		}
		return customErrors.NewAlreadyExists("Username already taken")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		if strings.Contains(err.Error(), "email") {
			return customErrors.NewAlreadyExists("Email already registered")
		}
		return customErrors.NewAlreadyExists("Username already taken")
	}
	return nil
}
