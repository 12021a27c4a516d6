package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/equiledger/backend/internal/access"
	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
	"github.com/equiledger/backend/internal/repository/mocks"
)

func storedExpense() *model.Expense {
	return &model.Expense{
		ID:       11,
		UserID:   4,
		Title:    "Weekly shop",
		Category: "groceries",
		Amount:   decimal.RequireFromString("42.50"),
		Currency: "EUR",
	}
}

var (
	owner    = access.Caller{ID: 4, Email: "alice@example.com", Role: model.RoleClient}
	stranger = access.Caller{ID: 8, Email: "bob@example.com", Role: model.RoleClient}
	admin    = access.Caller{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
)

func TestExpense_CreateSetsCallerAsOwner(t *testing.T) {
	ctx := context.Background()
	expenseRepo := mocks.NewExpense(t)
	expenses := NewExpense(expenseRepo)

	var persisted *model.Expense
	expenseRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Expense")).
		Run(func(args mock.Arguments) { persisted = args.Get(1).(*model.Expense) }).
		Return(func(ctx context.Context, e *model.Expense) *model.Expense {
			created := *e
			created.ID = 11
			return &created
		}, nil)

	created, err := expenses.Create(ctx, owner, &ExpenseInput{
		Title:    "Weekly shop",
		Category: "groceries",
		Amount:   decimal.RequireFromString("42.50"),
		Currency: "EUR",
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), created.ID)
	require.Equal(t, owner.ID, persisted.UserID)
}

func TestExpense_CreateRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	expenseRepo := mocks.NewExpense(t)
	expenses := NewExpense(expenseRepo)

	for _, amount := range []string{"0", "-5"} {
		_, err := expenses.Create(ctx, owner, &ExpenseInput{
			Title:    "x",
			Category: "groceries",
			Amount:   decimal.RequireFromString(amount),
			Currency: "EUR",
		})
		_, ok := apperr.IsValidation(err)
		require.True(t, ok)
	}
}

func TestExpense_ListRoutesThroughCategoryFilter(t *testing.T) {
	ctx := context.Background()

	t.Run("no filter hides income", func(t *testing.T) {
		expenseRepo := mocks.NewExpense(t)
		expenses := NewExpense(expenseRepo)
		expenseRepo.On("GetByUser", mock.Anything, int64(4)).Return([]model.Expense{*storedExpense()}, nil)

		list, err := expenses.List(ctx, owner, "")
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("explicit filter asks for exactly that category", func(t *testing.T) {
		expenseRepo := mocks.NewExpense(t)
		expenses := NewExpense(expenseRepo)
		expenseRepo.On("GetByUserAndCategory", mock.Anything, int64(4), "income").Return([]model.Expense{}, nil)

		list, err := expenses.List(ctx, owner, "income")
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func TestExpense_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("owner reads own expense", func(t *testing.T) {
		expenseRepo := mocks.NewExpense(t)
		expenses := NewExpense(expenseRepo)
		expenseRepo.On("GetByID", mock.Anything, int64(11)).Return(storedExpense(), nil)

		got, err := expenses.GetByID(ctx, owner, 11)
		require.NoError(t, err)
		require.Equal(t, int64(11), got.ID)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		expenseRepo := mocks.NewExpense(t)
		expenses := NewExpense(expenseRepo)
		expenseRepo.On("GetByID", mock.Anything, int64(11)).Return(storedExpense(), nil)

		_, err := expenses.GetByID(ctx, stranger, 11)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("missing expense not found regardless of role", func(t *testing.T) {
		expenseRepo := mocks.NewExpense(t)
		expenses := NewExpense(expenseRepo)
		expenseRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, nil)

		_, err := expenses.GetByID(ctx, admin, 404)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestExpense_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	expenseRepo := mocks.NewExpense(t)
	expenses := NewExpense(expenseRepo)

	expenseRepo.On("GetByID", mock.Anything, int64(11)).Return(storedExpense(), nil)

	var persisted *model.Expense
	expenseRepo.On("Update", mock.Anything, int64(11), mock.AnythingOfType("*model.Expense")).
		Run(func(args mock.Arguments) { persisted = args.Get(2).(*model.Expense) }).
		Return(func(ctx context.Context, id int64, e *model.Expense) *model.Expense { return e }, nil)

	desc := "split with Bob"
	_, err := expenses.Update(ctx, owner, 11, &ExpenseUpdate{Description: &desc})
	require.NoError(t, err)

	// absent fields stay untouched
	require.Equal(t, "split with Bob", persisted.Description)
	require.Equal(t, "Weekly shop", persisted.Title)
	require.Equal(t, "groceries", persisted.Category)
	require.True(t, persisted.Amount.Equal(decimal.RequireFromString("42.50")))
	require.Equal(t, "EUR", persisted.Currency)
}

func TestExpense_UpdateForbiddenLeavesRowAlone(t *testing.T) {
	ctx := context.Background()
	expenseRepo := mocks.NewExpense(t)
	expenses := NewExpense(expenseRepo)

	expenseRepo.On("GetByID", mock.Anything, int64(11)).Return(storedExpense(), nil)

	title := "hijacked"
	_, err := expenses.Update(ctx, stranger, 11, &ExpenseUpdate{Title: &title})
	require.ErrorIs(t, err, apperr.ErrForbidden)
	// no Update expectation was registered: a write would fail the test
}

func TestExpense_UpdateRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	expenseRepo := mocks.NewExpense(t)
	expenses := NewExpense(expenseRepo)

	expenseRepo.On("GetByID", mock.Anything, int64(11)).Return(storedExpense(), nil)

	bad := decimal.Zero
	_, err := expenses.Update(ctx, owner, 11, &ExpenseUpdate{Amount: &bad})
	_, ok := apperr.IsValidation(err)
	require.True(t, ok)
}

func TestExpense_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("stranger forbidden", func(t *testing.T) {
		expenseRepo := mocks.NewExpense(t)
		expenses := NewExpense(expenseRepo)
		expenseRepo.On("GetByID", mock.Anything, int64(11)).Return(storedExpense(), nil)

		require.ErrorIs(t, expenses.Delete(ctx, stranger, 11), apperr.ErrForbidden)
	})

	t.Run("accountant deletes any expense", func(t *testing.T) {
		expenseRepo := mocks.NewExpense(t)
		expenses := NewExpense(expenseRepo)
		accountant := access.Caller{ID: 2, Email: "staff@example.com", Role: model.RoleAccountant}
		expenseRepo.On("GetByID", mock.Anything, int64(11)).Return(storedExpense(), nil)
		expenseRepo.On("Delete", mock.Anything, int64(11)).Return(nil)

		require.NoError(t, expenses.Delete(ctx, accountant, 11))
	})

	t.Run("missing expense not found", func(t *testing.T) {
		expenseRepo := mocks.NewExpense(t)
		expenses := NewExpense(expenseRepo)
		expenseRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, nil)

		require.ErrorIs(t, expenses.Delete(ctx, admin, 404), apperr.ErrNotFound)
	})
}
