package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"crossborder-remit/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(senderID uuid.UUID) *domain.Transaction {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Transaction{
		ID:                uuid.New(),
		SenderID:          senderID,
		RecipientWallet:   testAddr,
		RecipientName:     "Ravi Kumar",
		AmountSource:      decimal.NewFromInt(1000),
		AmountTarget:      decimal.RequireFromString("12.048193"),
		ExchangeRate:      decimal.NewFromInt(83),
		PlatformFee:       decimal.NewFromInt(5),
		NetworkFee:        decimal.RequireFromString("0.05"),
		TotalCost:         decimal.NewFromInt(1005),
		Status:            domain.TransactionStatusPending,
		SettlementNetwork: "Polygon",
		CreatedAt:         now,
	}
}

func txColumns() []string {
	return []string{"id", "sender_id", "recipient_wallet", "recipient_name", "amount_inr", "amount_usdc",
		"exchange_rate", "platform_fee", "blockchain_fee", "total_cost", "status", "transaction_hash",
		"blockchain_network", "error_message", "created_at", "completed_at"}
}

func txRow(rows *pgxmock.Rows, t *domain.Transaction) *pgxmock.Rows {
	r := t.Record()
	return rows.AddRow(
		r.ID, r.SenderID, r.RecipientWallet, r.RecipientName,
		r.AmountINR, r.AmountUSDC, r.ExchangeRate, r.PlatformFee,
		r.BlockchainFee, r.TotalCost, r.Status, r.TransactionHash,
		r.BlockchainNetwork, r.ErrorMessage, r.CreatedAt, r.CompletedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())
	r := txn.Record()

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(
			r.ID, r.SenderID, r.RecipientWallet, r.RecipientName,
			1000.0, 12.048193, 83.0, 5.0,
			0.05, 1005.0, "pending", r.TransactionHash,
			"Polygon", r.ErrorMessage, r.CreatedAt, r.CompletedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), txn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Create_Error(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransactionRepo(mock)

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("new row violates row-level security policy"))

	err := repo.Create(context.Background(), newTestTransaction(uuid.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert transaction")
	assert.Contains(t, err.Error(), "row-level security")
}

func TestTransactionRepo_ListRecentBySender(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransactionRepo(mock)
	sender := uuid.New()
	a, b := newTestTransaction(sender), newTestTransaction(sender)
	b.Status = domain.TransactionStatusCompleted

	rows := pgxmock.NewRows(txColumns())
	txRow(rows, a)
	txRow(rows, b)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE sender_id = .+ ORDER BY created_at DESC LIMIT").
		WithArgs(sender, 20).
		WillReturnRows(rows)

	txns, err := repo.ListRecentBySender(context.Background(), sender, 20)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, a.ID, txns[0].ID)
	assert.True(t, txns[0].TotalCost.Equal(decimal.NewFromInt(1005)))
	assert.Equal(t, domain.TransactionStatusCompleted, txns[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListRecentBySender_InvalidRow(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransactionRepo(mock)
	sender := uuid.New()
	bad := newTestTransaction(sender)
	bad.RecipientWallet = "not-an-address"

	mock.ExpectQuery("SELECT .+ FROM transactions").
		WithArgs(sender, 20).
		WillReturnRows(txRow(pgxmock.NewRows(txColumns()), bad))

	_, err := repo.ListRecentBySender(context.Background(), sender, 20)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
}

func TestTransactionRepo_GetStats(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransactionRepo(mock)
	sender := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE sender_id").
		WithArgs(sender).
		WillReturnRows(pgxmock.NewRows([]string{"count", "completed", "sum"}).
			AddRow(int64(3), int64(2), float64(4500)))

	stats, err := repo.GetStats(context.Background(), sender)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalTransactions)
	assert.Equal(t, int64(2), stats.Completed)
	assert.True(t, stats.TotalSent.Equal(decimal.NewFromInt(4500)))
	assert.True(t, stats.AverageAmount.Equal(decimal.NewFromInt(1500)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetStats_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE sender_id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count", "completed", "sum"}).
			AddRow(int64(0), int64(0), float64(0)))

	stats, err := repo.GetStats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, stats.AverageAmount.IsZero())
}
