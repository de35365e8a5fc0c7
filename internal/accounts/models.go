package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/ib-77/ropsvc/pkg/rop"
	"github.com/ib-77/ropsvc/pkg/rop/form"
)

// User is a persisted account. Email is required.
type User struct {
	ID        string    `db:"id" yaml:"id"`
	Email     string    `db:"email" yaml:"email" validate:"required"`
	Name      string    `db:"name" yaml:"name"`
	CreatedAt time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at"`

	db       *DB
	messages rop.Payload
}

func NewUser(db *DB, email, name string) *User {
	return &User{db: db, Email: email, Name: name}
}

func (u *User) IsValid(ctx context.Context) bool {
	u.messages = form.Check(ctx, validate, u, nil)
	return u.messages.IsEmpty()
}

func (u *User) ErrorMessages() rop.Payload {
	return u.messages
}

// Persisted reports whether the user has been written to the database.
func (u *User) Persisted() bool {
	return u.ID != ""
}

func (u *User) Save(ctx context.Context) bool {
	return u.SaveOrError(ctx) == nil
}

// SaveOrError inserts the user, or updates it when already persisted.
func (u *User) SaveOrError(ctx context.Context) error {
	if !u.IsValid(ctx) {
		return form.NewError(u.messages)
	}
	if u.db == nil {
		return errors.New("user has no database")
	}
	return u.write(ctx, u.db)
}

// write runs the insert or update on exec, a *DB or a transaction.
func (u *User) write(ctx context.Context, exec sqlx.ExecerContext) error {
	now := time.Now().UTC()
	if u.Persisted() {
		query := `UPDATE users SET email = ?, name = ?, updated_at = ? WHERE id = ?`
		if _, err := exec.ExecContext(ctx, query, u.Email, u.Name, now, u.ID); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		u.UpdatedAt = now
		return nil
	}

	id := uuid.NewString()
	query := `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := exec.ExecContext(ctx, query, id, u.Email, u.Name, now, now); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.ID, u.CreatedAt, u.UpdatedAt = id, now, now

	zerolog.Ctx(ctx).Debug().Str("user_id", id).Msg("user created")
	return nil
}

// FindUser loads one user by id.
func (db *DB) FindUser(ctx context.Context, id string) (*User, error) {
	var u User
	query := `
		SELECT id, email, name, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	err := db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	u.db = db
	return &u, nil
}

// Address is a postal address. Line1 and Postcode are required.
type Address struct {
	ID        string    `db:"id" yaml:"id"`
	Line1     string    `db:"line1" yaml:"line1" validate:"required"`
	Postcode  string    `db:"postcode" yaml:"postcode" validate:"required"`
	CreatedAt time.Time `db:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `db:"updated_at" yaml:"updated_at"`

	db       *DB
	messages rop.Payload
}

func NewAddress(db *DB, line1, postcode string) *Address {
	return &Address{db: db, Line1: line1, Postcode: postcode}
}

func (a *Address) IsValid(ctx context.Context) bool {
	a.messages = form.Check(ctx, validate, a, nil)
	return a.messages.IsEmpty()
}

func (a *Address) ErrorMessages() rop.Payload {
	return a.messages
}

func (a *Address) Persisted() bool {
	return a.ID != ""
}

func (a *Address) Save(ctx context.Context) bool {
	return a.SaveOrError(ctx) == nil
}

func (a *Address) SaveOrError(ctx context.Context) error {
	if !a.IsValid(ctx) {
		return form.NewError(a.messages)
	}
	if a.db == nil {
		return errors.New("address has no database")
	}
	return a.write(ctx, a.db)
}

func (a *Address) write(ctx context.Context, exec sqlx.ExecerContext) error {
	if a.Persisted() {
		return nil
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	query := `
		INSERT INTO addresses (id, line1, postcode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := exec.ExecContext(ctx, query, id, a.Line1, a.Postcode, now, now); err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	a.ID, a.CreatedAt, a.UpdatedAt = id, now, now
	return nil
}
