package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nadespensa/internal/database"
	"nadespensa/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	newID   = uuid.NewString
	timeNow = time.Now
)

// FindUserByEmail 回傳完整使用者（含密碼雜湊），供登入使用
func FindUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("FindUserByEmail: %w", err)
	}
	return u, nil
}

// FindUserByID 回傳不含密碼欄位的使用者
func FindUserByID(ctx context.Context, db database.DB, id string) (*model.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	row := db.QueryRow(ctx,
		`SELECT id, name, email, created_at
		 FROM users WHERE id = $1`,
		id,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("FindUserByID: %w", err)
	}
	return u, nil
}

func UserExistsByEmail(ctx context.Context, db database.DB, email string) (bool, error) {
	_, err := FindUserByEmail(ctx, db, email)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("UserExistsByEmail: %w", err)
	}
	return true, nil
}

// InsertUser assigns the id and creation time. The unique index on email
// turns a racing duplicate registration into ErrDuplicate.
func InsertUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	switch {
	case strings.TrimSpace(u.Name) == "":
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(u.Email) == "":
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	case u.PasswordHash == "":
		return nil, fmt.Errorf("%w: password hash is required", ErrValidation)
	}

	u.ID = newID()
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		timeNow().UTC(),
	)
	if err := row.Scan(&u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("InsertUser: %w", err)
	}
	return u, nil
}
