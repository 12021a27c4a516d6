package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/equiledger/backend/internal/access"
	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
	"github.com/equiledger/backend/internal/repository"
)

type ExpenseInput struct {
	Title           string          `json:"title" validate:"required"`
	Description     string          `json:"description"`
	Category        string          `json:"category" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency" validate:"required"`
	ReceiptImageURL string          `json:"receipt_image_url"`
}

// ExpenseUpdate is a partial update: nil fields are left unchanged.
// The owner is fixed at creation and is not part of the payload.
type ExpenseUpdate struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Category        *string          `json:"category"`
	Amount          *decimal.Decimal `json:"amount"`
	Currency        *string          `json:"currency"`
	ReceiptImageURL *string          `json:"receipt_image_url"`
}

type Expenses interface {
	Create(ctx context.Context, caller access.Caller, in *ExpenseInput) (*model.Expense, error)
	List(ctx context.Context, caller access.Caller, category string) ([]model.Expense, error)
	GetByID(ctx context.Context, caller access.Caller, id int64) (*model.Expense, error)
	Update(ctx context.Context, caller access.Caller, id int64, update *ExpenseUpdate) (*model.Expense, error)
	Delete(ctx context.Context, caller access.Caller, id int64) error
}

type Expense struct {
	repo repository.Expense
}

func NewExpense(repo repository.Expense) *Expense {
	return &Expense{
		repo: repo,
	}
}

// Create records an expense owned by the caller. Ownership is set here
// and never reassigned.
func (e *Expense) Create(ctx context.Context, caller access.Caller, in *ExpenseInput) (*model.Expense, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validationf("Amount must be greater than zero.")
	}

	expense := &model.Expense{
		UserID:          caller.ID,
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		Amount:          in.Amount.Round(2),
		Currency:        in.Currency,
		ReceiptImageURL: in.ReceiptImageURL,
	}

	created, err := e.repo.Create(ctx, expense)
	if err != nil {
		return nil, err
	}

	logrus.Infof("expense created successfully: %d for user %d", created.ID, caller.ID)
	return created, nil
}

// List returns the caller's own expenses. Without a category filter the
// reserved income category is hidden; with one, exactly the asked-for
// category comes back.
func (e *Expense) List(ctx context.Context, caller access.Caller, category string) ([]model.Expense, error) {
	if category != "" {
		return e.repo.GetByUserAndCategory(ctx, caller.ID, category)
	}
	return e.repo.GetByUser(ctx, caller.ID)
}

func (e *Expense) GetByID(ctx context.Context, caller access.Caller, id int64) (*model.Expense, error) {
	expense, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(caller, access.ByID(expense.UserID)) {
		logrus.Warnf("unauthorized access attempt by user %d for expense %d", caller.ID, id)
		return nil, apperr.ErrForbidden
	}
	return expense, nil
}

func (e *Expense) Update(ctx context.Context, caller access.Caller, id int64, update *ExpenseUpdate) (*model.Expense, error) {
	expense, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanMutate(caller, access.ByID(expense.UserID)) {
		logrus.Warnf("unauthorized update attempt by user %d for expense %d", caller.ID, id)
		return nil, apperr.ErrForbidden
	}

	merge(&expense.Title, update.Title)
	merge(&expense.Description, update.Description)
	merge(&expense.Category, update.Category)
	merge(&expense.Currency, update.Currency)
	merge(&expense.ReceiptImageURL, update.ReceiptImageURL)
	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return nil, apperr.Validationf("Amount must be greater than zero.")
		}
		expense.Amount = update.Amount.Round(2)
	}

	updated, err := e.repo.Update(ctx, id, expense)
	if err != nil {
		return nil, err
	}

	logrus.Infof("expense updated successfully with id: %d", id)
	return updated, nil
}

func (e *Expense) Delete(ctx context.Context, caller access.Caller, id int64) error {
	expense, err := e.load(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanMutate(caller, access.ByID(expense.UserID)) {
		logrus.Warnf("unauthorized delete attempt by user %d for expense %d", caller.ID, id)
		return apperr.ErrForbidden
	}

	if err = e.repo.Delete(ctx, id); err != nil {
		return err
	}

	logrus.Infof("expense deleted successfully with id: %d", id)
	return nil
}

// load resolves existence before any access evaluation so that
// not-found wins only when the resource truly does not exist.
func (e *Expense) load(ctx context.Context, id int64) (*model.Expense, error) {
	expense, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		logrus.Warnf("expense not found with id: %d", id)
		return nil, apperr.ErrNotFound
	}
	return expense, nil
}
