package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/memory"
)

func customer(id, phone string, minute int) *entity.Customer {
	at := time.Date(2024, 3, 1, 10, minute, 0, 0, time.UTC)
	return &entity.Customer{
		ID: id, Name: "C " + id, Phone: phone, Address: "Calle",
		Amount: decimal.NewFromInt(100), Paid: decimal.Zero,
		CreatedAt: at, UpdatedAt: at,
	}
}

func TestCustomerRepo_ListOrdenYPaginas(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, customer("a", "3001", 1)))
	require.NoError(t, repo.Create(ctx, customer("b", "3002", 3)))
	require.NoError(t, repo.Create(ctx, customer("c", "3003", 2)))

	all, err := repo.List(ctx, repository.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	page, err := repo.List(ctx, repository.CustomerFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].ID)

	empty, err := repo.List(ctx, repository.CustomerFilter{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCustomerRepo_DevuelveCopias(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, customer("a", "3001", 1)))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	got.Name = "mutado"

	again, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "C a", again.Name)
}

func TestCustomerRepo_TelefonoUnico(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, customer("a", "3001", 1)))
	require.NoError(t, repo.Create(ctx, customer("b", "3002", 2)))

	assert.ErrorIs(t, repo.Create(ctx, customer("c", "3001", 3)), domain.ErrDuplicate)

	b := customer("b", "3001", 2)
	assert.ErrorIs(t, repo.UpdateDetails(ctx, b), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.UpdateDetails(ctx, customer("zz", "3009", 2)), domain.ErrNotFound)
}

func TestCustomerRepo_AddPaymentCondicional(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, customer("a", "3001", 1)))
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	got, err := repo.AddPayment(ctx, "a", decimal.NewFromInt(60), at)
	require.NoError(t, err)
	assert.True(t, got.Paid.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, at, got.UpdatedAt)

	_, err = repo.AddPayment(ctx, "a", decimal.NewFromInt(41), at)
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	_, err = repo.AddPayment(ctx, "x", decimal.NewFromInt(1), at)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	repo := memory.NewCustomerRepository()
	runner := memory.NewTxRunner(repo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := runner.RunBalance(ctx, func(repository.CustomerRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
