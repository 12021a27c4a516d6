package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
)

//go:generate mockery --name=User

type User interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetAll(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateByEmail(ctx context.Context, email string, user *model.User) (*model.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64) error
	DeleteByEmail(ctx context.Context, email string) error
}

const userColumns = `id, fname, mname, sname, email, phone_number, date_of_birth, ppsno,
	id_image_url, currency, address_line1, address_line2, city, state, country,
	tax_status, marital_status, postal_code, occupation, password_hash, role,
	subscription_level, account_status, is_auto_renew, payment_method, renewal_date,
	last_login, created_at, updated_at`

type UserPostgres struct {
	conn *pgxpool.Pool
}

func NewUserPostgres(conn *pgxpool.Pool) *UserPostgres {
	return &UserPostgres{
		conn: conn,
	}
}

func (u *UserPostgres) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `INSERT INTO users (fname, mname, sname, email, phone_number, date_of_birth, ppsno,
		id_image_url, currency, address_line1, address_line2, city, state, country,
		tax_status, marital_status, postal_code, occupation, password_hash, role,
		subscription_level, account_status, is_auto_renew, payment_method, renewal_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25)
		RETURNING ` + userColumns
	row := u.conn.QueryRow(ctx, query,
		user.FName, user.MName, user.SName, user.Email, user.PhoneNumber, user.DateOfBirth,
		user.PPSNo, user.IDImageURL, user.Currency, user.AddressLine1, user.AddressLine2,
		user.City, user.State, user.Country, user.TaxStatus, user.MaritalStatus,
		user.PostalCode, user.Occupation, user.PasswordHash, user.Role,
		user.SubscriptionLevel, user.AccountStatus, user.IsAutoRenew, user.PaymentMethod,
		user.RenewalDate)
	created, err := scanUser(row)
	if err != nil {
		// The unique constraint on email is the true enforcement point
		// for duplicates; the service-level read is only a fast path.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("repository.User, create user error: %v", err)
	}
	return created, nil
}

func (u *UserPostgres) GetAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := u.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.User, get all users error: %v", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.User, scan user error: %v", err)
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("repository.User, rows error: %v", rows.Err())
	}
	return users, nil
}

func (u *UserPostgres) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(u.conn.QueryRow(ctx, query, id))
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("repository.User, get user by id error: %v", err)
	} else if err == pgx.ErrNoRows {
		return nil, nil
	}
	return user, nil
}

func (u *UserPostgres) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(u.conn.QueryRow(ctx, query, email))
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("repository.User, get user by email error: %v", err)
	} else if err == pgx.ErrNoRows {
		return nil, nil
	}
	return user, nil
}

// UpdateByEmail persists the merged user row. The caller merges fields;
// the row addressed by email is overwritten and updated_at stamped.
func (u *UserPostgres) UpdateByEmail(ctx context.Context, email string, user *model.User) (*model.User, error) {
	query := `UPDATE users SET fname = $1, mname = $2, sname = $3, phone_number = $4,
		date_of_birth = $5, ppsno = $6, id_image_url = $7, currency = $8,
		address_line1 = $9, address_line2 = $10, city = $11, state = $12, country = $13,
		tax_status = $14, marital_status = $15, postal_code = $16, occupation = $17,
		role = $18, subscription_level = $19, account_status = $20, is_auto_renew = $21,
		payment_method = $22, renewal_date = $23, updated_at = CURRENT_TIMESTAMP
		WHERE email = $24
		RETURNING ` + userColumns
	row := u.conn.QueryRow(ctx, query,
		user.FName, user.MName, user.SName, user.PhoneNumber, user.DateOfBirth,
		user.PPSNo, user.IDImageURL, user.Currency, user.AddressLine1, user.AddressLine2,
		user.City, user.State, user.Country, user.TaxStatus, user.MaritalStatus,
		user.PostalCode, user.Occupation, user.Role, user.SubscriptionLevel,
		user.AccountStatus, user.IsAutoRenew, user.PaymentMethod, user.RenewalDate,
		email)
	updated, err := scanUser(row)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("repository.User, update user error: %v", err)
	} else if err == pgx.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	return updated, nil
}

func (u *UserPostgres) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE email = $2`
	commandTag, err := u.conn.Exec(ctx, query, passwordHash, email)
	if err != nil {
		return fmt.Errorf("repository.User, update password error: %v", err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (u *UserPostgres) UpdateLastLogin(ctx context.Context, id int64) error {
	query := `UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = $1`
	if _, err := u.conn.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("repository.User, update last login error: %v", err)
	}
	return nil
}

// DeleteByEmail removes the row permanently. Expenses referencing the
// account are left in place.
func (u *UserPostgres) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM users WHERE email = $1`
	commandTag, err := u.conn.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("repository.User, delete user error: %v", err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.FName, &user.MName, &user.SName, &user.Email,
		&user.PhoneNumber, &user.DateOfBirth, &user.PPSNo, &user.IDImageURL, &user.Currency,
		&user.AddressLine1, &user.AddressLine2, &user.City, &user.State, &user.Country,
		&user.TaxStatus, &user.MaritalStatus, &user.PostalCode, &user.Occupation,
		&user.PasswordHash, &user.Role, &user.SubscriptionLevel, &user.AccountStatus,
		&user.IsAutoRenew, &user.PaymentMethod, &user.RenewalDate, &user.LastLogin,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
