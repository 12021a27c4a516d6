package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/equiledger/backend/internal/access"
	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
	"github.com/equiledger/backend/internal/repository/mocks"
)

func strptr(s string) *string { return &s }

func storedUser() *model.User {
	return &model.User{
		ID:            4,
		FName:         "Alice",
		SName:         "Murphy",
		Email:         "alice@example.com",
		City:          "Cork",
		Occupation:    "Engineer",
		Role:          model.RoleClient,
		AccountStatus: "active",
	}
}

func TestUser_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("client forbidden even for own account context", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)

		_, err := users.GetAll(ctx, access.Caller{ID: 4, Email: "alice@example.com", Role: model.RoleClient})
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("accountant allowed", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)
		userRepo.On("GetAll", mock.Anything).Return([]model.User{*storedUser()}, nil)

		all, err := users.GetAll(ctx, access.Caller{ID: 1, Email: "staff@example.com", Role: model.RoleAccountant})
		require.NoError(t, err)
		require.Len(t, all, 1)
	})
}

func TestUser_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	userRepo := mocks.NewUser(t)
	users := NewUser(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser(), nil)

	var persisted *model.User
	userRepo.On("UpdateByEmail", mock.Anything, "alice@example.com", mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { persisted = args.Get(2).(*model.User) }).
		Return(func(ctx context.Context, email string, u *model.User) *model.User { return u }, nil)

	owner := access.Caller{ID: 4, Email: "alice@example.com", Role: model.RoleClient}
	updated, err := users.Update(ctx, owner, "alice@example.com", &UserUpdate{City: strptr("Dublin")})
	require.NoError(t, err)

	// only the submitted field changes
	require.Equal(t, "Dublin", persisted.City)
	require.Equal(t, "Alice", persisted.FName)
	require.Equal(t, "Engineer", persisted.Occupation)
	require.Equal(t, model.RoleClient, persisted.Role)
	require.Equal(t, "Dublin", updated.City)
}

func TestUser_UpdateForbiddenForForeignClient(t *testing.T) {
	ctx := context.Background()
	userRepo := mocks.NewUser(t)
	users := NewUser(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser(), nil)

	stranger := access.Caller{ID: 8, Email: "bob@example.com", Role: model.RoleClient}
	_, err := users.Update(ctx, stranger, "alice@example.com", &UserUpdate{City: strptr("Dublin")})
	require.ErrorIs(t, err, apperr.ErrForbidden)
	// no UpdateByEmail expectation was set: a persisted write would fail the mock
}

func TestUser_UpdateNotFoundBeatsForbidden(t *testing.T) {
	ctx := context.Background()
	userRepo := mocks.NewUser(t)
	users := NewUser(userRepo)

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	stranger := access.Caller{ID: 8, Email: "bob@example.com", Role: model.RoleClient}
	_, err := users.Update(ctx, stranger, "ghost@example.com", &UserUpdate{})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUser_RoleChangeOnlyByAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("admin applies role change", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser(), nil)

		var persisted *model.User
		userRepo.On("UpdateByEmail", mock.Anything, "alice@example.com", mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) { persisted = args.Get(2).(*model.User) }).
			Return(func(ctx context.Context, email string, u *model.User) *model.User { return u }, nil)

		admin := access.Caller{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
		_, err := users.Update(ctx, admin, "alice@example.com", &UserUpdate{Role: strptr("accountant")})
		require.NoError(t, err)
		require.Equal(t, model.RoleAccountant, persisted.Role)
	})

	t.Run("accountant role change skipped, other fields apply", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser(), nil)

		var persisted *model.User
		userRepo.On("UpdateByEmail", mock.Anything, "alice@example.com", mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) { persisted = args.Get(2).(*model.User) }).
			Return(func(ctx context.Context, email string, u *model.User) *model.User { return u }, nil)

		accountant := access.Caller{ID: 2, Email: "staff@example.com", Role: model.RoleAccountant}
		_, err := users.Update(ctx, accountant, "alice@example.com",
			&UserUpdate{Role: strptr("admin"), City: strptr("Galway")})
		require.NoError(t, err)
		require.Equal(t, model.RoleClient, persisted.Role)
		require.Equal(t, "Galway", persisted.City)
	})

	t.Run("admin cannot set an unknown role", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser(), nil)

		var persisted *model.User
		userRepo.On("UpdateByEmail", mock.Anything, "alice@example.com", mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) { persisted = args.Get(2).(*model.User) }).
			Return(func(ctx context.Context, email string, u *model.User) *model.User { return u }, nil)

		admin := access.Caller{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
		_, err := users.Update(ctx, admin, "alice@example.com", &UserUpdate{Role: strptr("root")})
		require.NoError(t, err)
		require.Equal(t, model.RoleClient, persisted.Role)
	})
}

func TestUser_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes own account", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser(), nil)
		userRepo.On("DeleteByEmail", mock.Anything, "alice@example.com").Return(nil)

		owner := access.Caller{ID: 4, Email: "alice@example.com", Role: model.RoleClient}
		require.NoError(t, users.Delete(ctx, owner, "alice@example.com"))
	})

	t.Run("foreign client forbidden", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser(), nil)

		stranger := access.Caller{ID: 8, Email: "bob@example.com", Role: model.RoleClient}
		require.ErrorIs(t, users.Delete(ctx, stranger, "alice@example.com"), apperr.ErrForbidden)
	})

	t.Run("admin deletes any account", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(storedUser(), nil)
		userRepo.On("DeleteByEmail", mock.Anything, "alice@example.com").Return(nil)

		admin := access.Caller{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
		require.NoError(t, users.Delete(ctx, admin, "alice@example.com"))
	})

	t.Run("missing account is not found for any role", func(t *testing.T) {
		userRepo := mocks.NewUser(t)
		users := NewUser(userRepo)
		userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		admin := access.Caller{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
		require.ErrorIs(t, users.Delete(ctx, admin, "ghost@example.com"), apperr.ErrNotFound)
	})
}

func TestUser_GetByEmailNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := mocks.NewUser(t)
	users := NewUser(userRepo)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, err := users.GetByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
