package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
)

//go:generate mockery --name=Expense

type Expense interface {
	Create(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	GetByID(ctx context.Context, id int64) (*model.Expense, error)
	GetByUser(ctx context.Context, userID int64) ([]model.Expense, error)
	GetByUserAndCategory(ctx context.Context, userID int64, category string) ([]model.Expense, error)
	Update(ctx context.Context, id int64, expense *model.Expense) (*model.Expense, error)
	Delete(ctx context.Context, id int64) error
}

const expenseColumns = `id, user_id, title, description, category, amount, currency,
	receipt_image_url, created_at, updated_at`

type ExpensePostgres struct {
	conn *pgxpool.Pool
}

func NewExpensePostgres(conn *pgxpool.Pool) *ExpensePostgres {
	return &ExpensePostgres{
		conn: conn,
	}
}

func (e *ExpensePostgres) Create(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	query := `INSERT INTO expenses (user_id, title, description, category, amount, currency, receipt_image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + expenseColumns
	row := e.conn.QueryRow(ctx, query, expense.UserID, expense.Title, expense.Description,
		expense.Category, expense.Amount, expense.Currency, expense.ReceiptImageURL)
	created, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("repository.Expense, create expense error: %v", err)
	}
	return created, nil
}

func (e *ExpensePostgres) GetByID(ctx context.Context, id int64) (*model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	expense, err := scanExpense(e.conn.QueryRow(ctx, query, id))
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("repository.Expense, get expense by id error: %v", err)
	} else if err == pgx.ErrNoRows {
		return nil, nil
	}
	return expense, nil
}

// GetByUser lists the user's expenses, hiding the reserved income
// category. An explicit category filter goes through
// GetByUserAndCategory instead, which returns exactly what was asked
// for, income included.
func (e *ExpensePostgres) GetByUser(ctx context.Context, userID int64) ([]model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 AND category != $2 ORDER BY id`
	return e.list(ctx, query, userID, model.CategoryIncome)
}

func (e *ExpensePostgres) GetByUserAndCategory(ctx context.Context, userID int64, category string) ([]model.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 AND category = $2 ORDER BY id`
	return e.list(ctx, query, userID, category)
}

func (e *ExpensePostgres) Update(ctx context.Context, id int64, expense *model.Expense) (*model.Expense, error) {
	query := `UPDATE expenses SET title = $1, description = $2, category = $3, amount = $4,
		currency = $5, receipt_image_url = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING ` + expenseColumns
	row := e.conn.QueryRow(ctx, query, expense.Title, expense.Description, expense.Category,
		expense.Amount, expense.Currency, expense.ReceiptImageURL, id)
	updated, err := scanExpense(row)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("repository.Expense, update expense error: %v", err)
	} else if err == pgx.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	return updated, nil
}

func (e *ExpensePostgres) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM expenses WHERE id = $1`
	commandTag, err := e.conn.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("repository.Expense, delete expense error: %v", err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (e *ExpensePostgres) list(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := e.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.Expense, list expenses error: %v", err)
	}
	defer rows.Close()

	expenses := make([]model.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.Expense, scan expense error: %v", err)
		}
		expenses = append(expenses, *expense)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("repository.Expense, rows error: %v", rows.Err())
	}
	return expenses, nil
}

func scanExpense(row pgx.Row) (*model.Expense, error) {
	var expense model.Expense
	err := row.Scan(&expense.ID, &expense.UserID, &expense.Title, &expense.Description,
		&expense.Category, &expense.Amount, &expense.Currency, &expense.ReceiptImageURL,
		&expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}
