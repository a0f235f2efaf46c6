package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_api/internal/feature/ledger/domain/entity"
)

func TestAccountUsecase_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		create      func(ctx context.Context, name string) (*entity.Account, error)
		expectedErr error
	}{
		{
			name:  "success: name is trimmed",
			input: "  alice ",
			create: func(_ context.Context, name string) (*entity.Account, error) {
				assert.Equal(t, "alice", name)
				return &entity.Account{ID: 1, Name: name}, nil
			},
		},
		{name: "failure: empty name", input: "   ", expectedErr: ErrMissingField},
		{
			name:  "failure: duplicate name",
			input: "alice",
			create: func(context.Context, string) (*entity.Account, error) {
				return nil, ErrAccountNameTaken
			},
			expectedErr: ErrAccountNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewAccountUsecase(&mockAccountRepository{CreateAccountFunc: tt.create}, &mockHoldingRepository{})

			a, err := uc.Create(context.Background(), tt.input)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &entity.Account{ID: 1, Name: "alice"}, a)
		})
	}
}

func TestAccountUsecase_Delete(t *testing.T) {
	t.Parallel()

	var deleted uint
	accounts := &mockAccountRepository{DeleteAccountFunc: func(_ context.Context, id uint) error {
		if id != 7 {
			return ErrAccountNotFound
		}
		deleted = id
		return nil
	}}
	uc := NewAccountUsecase(accounts, &mockHoldingRepository{})

	require.NoError(t, uc.Delete(context.Background(), 7))
	assert.Equal(t, uint(7), deleted)
	assert.ErrorIs(t, uc.Delete(context.Background(), 8), ErrAccountNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), 0), ErrMissingField)
}

func TestAccountUsecase_Get(t *testing.T) {
	t.Parallel()
	holdings := &mockHoldingRepository{HoldingsByAccountFunc: func(_ context.Context, id uint) ([]entity.Holding, error) {
		return []entity.Holding{{AccountID: id, Symbol: "AAPL", NumberOfShares: 10}}, nil
	}}
	uc := NewAccountUsecase(&mockAccountRepository{FindAccountFunc: existingAccounts(1)}, holdings)

	got, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
	require.Len(t, got.Holdings, 1)
	assert.Equal(t, "AAPL", got.Holdings[0].Symbol)

	_, err = uc.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountUsecase_List(t *testing.T) {
	t.Parallel()
	want := []entity.Account{{ID: 1, Name: "alice"}}
	accounts := &mockAccountRepository{ListAccountsFunc: func(context.Context) ([]entity.Account, error) { return want, nil }}

	got, err := NewAccountUsecase(accounts, &mockHoldingRepository{}).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
