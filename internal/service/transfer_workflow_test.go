package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/internal/core/ports/mocks"
	"crossborder-remit/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type transferTestDeps struct {
	wf      *TransferWorkflow
	session *mocks.MockIdentitySession
	txRepo  *mocks.MockTransactionRepository
	rates   *mocks.MockRateService
	feed    *mocks.MockChangeFeed
	events  *mocks.MockEventPublisher
	userID  uuid.UUID
	ctrl    *gomock.Controller
}

func setupTransferWorkflow(t *testing.T, userID uuid.UUID, cfg TransferConfig) *transferTestDeps {
	ctrl := gomock.NewController(t)
	d := &transferTestDeps{
		session: mocks.NewMockIdentitySession(ctrl),
		txRepo:  mocks.NewMockTransactionRepository(ctrl),
		rates:   mocks.NewMockRateService(ctrl),
		feed:    mocks.NewMockChangeFeed(ctrl),
		events:  mocks.NewMockEventPublisher(ctrl),
		userID:  userID,
		ctrl:    ctrl,
	}
	d.session.EXPECT().Identity().Return(userID).AnyTimes()
	d.wf = NewTransferWorkflow(d.session, d.txRepo, d.rates, d.feed, d.events, NewNopMetrics(), cfg, newTestLogger())
	return d
}

func (d *transferTestDeps) withProfile(status domain.KYCStatus) {
	p := testProfile(d.userID, status)
	d.session.EXPECT().Profile().Return(p).AnyTimes()
	d.session.EXPECT().RefreshProfile(gomock.Any()).Return(p, nil).AnyTimes()
}

func (d *transferTestDeps) withRate(t *testing.T, value string) {
	t.Helper()
	d.rates.EXPECT().Latest(gomock.Any()).Return(testRate(value), nil).AnyTimes()
	require.NoError(t, d.wf.LoadRate(context.Background()))
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestTransferWorkflow_Submit_Success(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)
	d.withRate(t, "83.0")

	var created *domain.Transaction
	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *domain.Transaction) error {
			created = tx
			return nil
		},
	)
	d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

	tx, err := d.wf.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, d.userID, tx.SenderID)
	assert.Equal(t, domain.TransactionStatusPending, tx.Status)
	assert.Equal(t, testRecipient, tx.RecipientWallet)
	assert.Equal(t, "Ravi", tx.RecipientName)
	assert.Equal(t, "Polygon", tx.SettlementNetwork)
	assert.True(t, tx.AmountSource.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "12.048193", tx.AmountTarget.StringFixed(6))
	assert.Equal(t, "5.00", tx.PlatformFee.StringFixed(2))
	assert.Equal(t, "0.05", tx.NetworkFee.StringFixed(2))
	assert.Equal(t, "1005.00", tx.TotalCost.StringFixed(2))
	assert.True(t, tx.ExchangeRate.Equal(decimal.RequireFromString("83")))

	state := d.wf.State()
	assert.Equal(t, ports.TransferSucceeded, state.Status)
	assert.Equal(t, ports.TransferDraft{}, state.Draft, "inputs are cleared on success")
	assert.Empty(t, state.LastError)
	require.NotNil(t, state.LastTransaction)
	assert.Equal(t, tx.ID, state.LastTransaction.ID)
}

func TestTransferWorkflow_Submit_RecordsUnroundedRate(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)
	d.withRate(t, "83.123456789")

	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

	tx, err := d.wf.Submit(context.Background(), ports.TransferDraft{
		Amount:           "1234.567",
		RecipientAddress: testRecipient,
		RecipientName:    "Ravi",
	})
	require.NoError(t, err)
	assert.Equal(t, "83.123456789", tx.ExchangeRate.String())
	assert.Equal(t, "1234.57", tx.AmountSource.StringFixed(2))
	// 1234.57 + 6.17285 rounded
	assert.Equal(t, "1240.74", tx.TotalCost.StringFixed(2))
}

func TestTransferWorkflow_Submit_PersistedTotalIsAmountPlusFee(t *testing.T) {
	amounts := []string{"1.005", "0.995", "2.675", "10.125", "333.335", "1000.0049", "99.99"}

	for _, amount := range amounts {
		t.Run(amount, func(t *testing.T) {
			d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
			defer d.ctrl.Finish()
			d.withProfile(domain.KYCStatusVerified)
			d.withRate(t, "83")

			var created *domain.Transaction
			d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, tx *domain.Transaction) error {
					created = tx
					return nil
				},
			)
			d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

			draft := validDraft()
			draft.Amount = amount
			_, err := d.wf.Submit(context.Background(), draft)
			require.NoError(t, err)
			require.NotNil(t, created)

			assert.True(t, created.TotalCost.Equal(created.AmountSource.Add(created.PlatformFee)),
				"total %s != amount %s + fee %s", created.TotalCost, created.AmountSource, created.PlatformFee)
			assert.True(t, created.AmountSource.Equal(created.AmountSource.Round(2)))
			assert.True(t, created.PlatformFee.Equal(created.PlatformFee.Round(2)))
		})
	}
}

func TestTransferWorkflow_SuccessRevertsToIdle(t *testing.T) {
	cfg := testTransferConfig()
	cfg.SuccessDisplay = 20 * time.Millisecond
	d := setupTransferWorkflow(t, uuid.New(), cfg)
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)
	d.withRate(t, "83")

	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

	_, err := d.wf.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return d.wf.State().Status == ports.TransferIdle
	}, time.Second, 5*time.Millisecond)
}

func TestTransferWorkflow_CloseCancelsSuccessTimer(t *testing.T) {
	cfg := testTransferConfig()
	cfg.SuccessDisplay = 20 * time.Millisecond
	d := setupTransferWorkflow(t, uuid.New(), cfg)
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)
	d.withRate(t, "83")

	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

	_, err := d.wf.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	d.wf.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, ports.TransferSucceeded, d.wf.State().Status)
}

func TestTransferWorkflow_Submit_PreconditionFailures(t *testing.T) {
	tests := []struct {
		name    string
		userID  uuid.UUID
		profile func(uuid.UUID) *domain.Profile
		rate    string // empty = no snapshot loaded
		draft   ports.TransferDraft
		code    string
		message string
	}{
		{
			name:    "no identity",
			userID:  uuid.Nil,
			profile: func(uuid.UUID) *domain.Profile { return nil },
			rate:    "83",
			draft:   validDraft(),
			code:    "AUTH_001",
			message: "Please sign in to send money",
		},
		{
			name:    "identity without profile",
			userID:  uuid.New(),
			profile: func(uuid.UUID) *domain.Profile { return nil },
			rate:    "83",
			draft:   validDraft(),
			code:    "AUTH_001",
			message: "Please sign in to send money",
		},
		{
			name:    "kyc pending",
			userID:  uuid.New(),
			profile: func(id uuid.UUID) *domain.Profile { return testProfile(id, domain.KYCStatusPending) },
			rate:    "83",
			draft:   validDraft(),
			code:    "KYC_001",
			message: "Please complete KYC verification before sending money",
		},
		{
			name:    "kyc rejected",
			userID:  uuid.New(),
			profile: func(id uuid.UUID) *domain.Profile { return testProfile(id, domain.KYCStatusRejected) },
			rate:    "83",
			draft:   validDraft(),
			code:    "KYC_001",
		},
		{
			name:    "kyc checked before rate and address",
			userID:  uuid.New(),
			profile: func(id uuid.UUID) *domain.Profile { return testProfile(id, domain.KYCStatusUnverified) },
			draft:   ports.TransferDraft{Amount: "1000", RecipientAddress: "0xZZZ"},
			code:    "KYC_001",
		},
		{
			name:    "no rate snapshot",
			userID:  uuid.New(),
			profile: func(id uuid.UUID) *domain.Profile { return testProfile(id, domain.KYCStatusVerified) },
			draft:   validDraft(),
			code:    "XFER_001",
			message: "Exchange rate not available. Please try again.",
		},
		{
			name:    "rate checked before address",
			userID:  uuid.New(),
			profile: func(id uuid.UUID) *domain.Profile { return testProfile(id, domain.KYCStatusVerified) },
			draft:   ports.TransferDraft{Amount: "1000", RecipientAddress: "0xZZZ"},
			code:    "XFER_001",
		},
		{
			name:    "invalid recipient",
			userID:  uuid.New(),
			profile: func(id uuid.UUID) *domain.Profile { return testProfile(id, domain.KYCStatusVerified) },
			rate:    "83",
			draft: ports.TransferDraft{
				Amount:           "1000",
				RecipientAddress: "0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ",
			},
			code:    "XFER_002",
			message: "Invalid recipient wallet address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupTransferWorkflow(t, tt.userID, testTransferConfig())
			defer d.ctrl.Finish()
			d.session.EXPECT().Profile().Return(tt.profile(tt.userID)).AnyTimes()
			d.session.EXPECT().RefreshProfile(gomock.Any()).Return(tt.profile(tt.userID), nil).AnyTimes()
			if tt.rate != "" {
				d.withRate(t, tt.rate)
			} else {
				d.rates.EXPECT().Latest(gomock.Any()).Return(nil, nil).AnyTimes()
			}

			// No Create expectation: any insert fails the test.
			tx, err := d.wf.Submit(context.Background(), tt.draft)
			assert.Nil(t, tx)
			requireCode(t, err, tt.code)

			state := d.wf.State()
			assert.Equal(t, ports.TransferFailed, state.Status)
			assert.Equal(t, tt.draft, state.Draft, "inputs are kept on failure")
			if tt.message != "" {
				assert.Equal(t, tt.message, state.LastError)
			}
		})
	}
}

func TestTransferWorkflow_Submit_RereadsLedgerState(t *testing.T) {
	t.Run("newer rate snapshot is recorded", func(t *testing.T) {
		d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
		defer d.ctrl.Finish()
		d.withProfile(domain.KYCStatusVerified)

		gomock.InOrder(
			d.rates.EXPECT().Latest(gomock.Any()).Return(testRate("83"), nil),
			d.rates.EXPECT().Latest(gomock.Any()).Return(testRate("90"), nil),
		)
		require.NoError(t, d.wf.LoadRate(context.Background()))

		d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

		tx, err := d.wf.Submit(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, "90", tx.ExchangeRate.String())
		assert.Equal(t, "90", d.wf.State().Rate.Rate.String())
	})

	t.Run("rate published after open", func(t *testing.T) {
		d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
		defer d.ctrl.Finish()
		d.withProfile(domain.KYCStatusVerified)

		gomock.InOrder(
			d.rates.EXPECT().Latest(gomock.Any()).Return(nil, nil),
			d.rates.EXPECT().Latest(gomock.Any()).Return(nil, nil),
			d.rates.EXPECT().Latest(gomock.Any()).Return(testRate("83"), nil),
		)
		require.NoError(t, d.wf.LoadRate(context.Background()))

		_, err := d.wf.Submit(context.Background(), validDraft())
		requireCode(t, err, "XFER_001")

		d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

		tx, err := d.wf.Submit(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, "83", tx.ExchangeRate.String())
	})

	t.Run("profile verified after open", func(t *testing.T) {
		d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
		defer d.ctrl.Finish()
		d.withRate(t, "83")

		d.session.EXPECT().Profile().Return(testProfile(d.userID, domain.KYCStatusPending)).AnyTimes()
		d.session.EXPECT().RefreshProfile(gomock.Any()).Return(testProfile(d.userID, domain.KYCStatusVerified), nil)
		d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

		_, err := d.wf.Submit(context.Background(), validDraft())
		require.NoError(t, err)
	})

	t.Run("read failures fall back to cached values", func(t *testing.T) {
		d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
		defer d.ctrl.Finish()

		gomock.InOrder(
			d.rates.EXPECT().Latest(gomock.Any()).Return(testRate("83"), nil),
			d.rates.EXPECT().Latest(gomock.Any()).Return(nil, errors.New("db down")),
		)
		require.NoError(t, d.wf.LoadRate(context.Background()))

		d.session.EXPECT().Profile().Return(testProfile(d.userID, domain.KYCStatusVerified)).AnyTimes()
		d.session.EXPECT().RefreshProfile(gomock.Any()).Return(nil, errors.New("db down"))
		d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

		tx, err := d.wf.Submit(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, "83", tx.ExchangeRate.String())
	})
}

func TestTransferWorkflow_Submit_InsertFailure(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)
	d.withRate(t, "83")

	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(errors.New("new row violates row-level security policy"))

	draft := validDraft()
	_, err := d.wf.Submit(context.Background(), draft)
	requireCode(t, err, "LEDGER_001")

	state := d.wf.State()
	assert.Equal(t, ports.TransferFailed, state.Status)
	assert.Equal(t, "new row violates row-level security policy", state.LastError)
	assert.Equal(t, draft, state.Draft)
	assert.Nil(t, state.LastTransaction)
	assert.True(t, state.CanSubmit, "resubmission stays possible")
}

func TestTransferWorkflow_Submit_PublishFailureIsBestEffort(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)
	d.withRate(t, "83")

	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	tx, err := d.wf.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	assert.NotNil(t, tx)
	assert.Equal(t, ports.TransferSucceeded, d.wf.State().Status)
}

func TestTransferWorkflow_Submit_SingleInFlight(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)
	d.withRate(t, "83")

	entered := make(chan struct{})
	release := make(chan struct{})
	d.txRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *domain.Transaction) error {
			close(entered)
			<-release
			return nil
		},
	).Times(1)
	d.events.EXPECT().PublishTransferRequested(gomock.Any(), gomock.Any()).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := d.wf.Submit(context.Background(), validDraft())
		done <- err
	}()

	<-entered
	assert.Equal(t, ports.TransferSubmitting, d.wf.State().Status)
	assert.False(t, d.wf.CanSubmit())

	_, err := d.wf.Submit(context.Background(), validDraft())
	requireCode(t, err, "XFER_003")

	close(release)
	require.NoError(t, <-done)
}

func TestTransferWorkflow_CanSubmit(t *testing.T) {
	t.Run("no rate", func(t *testing.T) {
		d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
		defer d.ctrl.Finish()
		d.withProfile(domain.KYCStatusVerified)
		assert.False(t, d.wf.CanSubmit())
	})

	t.Run("not verified", func(t *testing.T) {
		d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
		defer d.ctrl.Finish()
		d.withProfile(domain.KYCStatusPending)
		d.withRate(t, "83")
		assert.False(t, d.wf.CanSubmit())
	})

	t.Run("ready", func(t *testing.T) {
		d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
		defer d.ctrl.Finish()
		d.withProfile(domain.KYCStatusVerified)
		d.withRate(t, "83")
		assert.True(t, d.wf.CanSubmit())
	})
}

func TestTransferWorkflow_UpdateDraft_LiveQuote(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)

	// before a rate is loaded the target amount degrades to zero
	q := d.wf.UpdateDraft(ports.TransferDraft{Amount: "1000"})
	assert.Equal(t, "0.000000", q.AmountTarget)
	assert.Equal(t, "1005.00", q.TotalCost)

	d.withRate(t, "83")
	q = d.wf.UpdateDraft(ports.TransferDraft{Amount: "1000"})
	assert.Equal(t, "1000.00", q.AmountSource)
	assert.Equal(t, "12.048193", q.AmountTarget)
	assert.Equal(t, "5.00", q.PlatformFee)
	assert.Equal(t, "0.05", q.NetworkFee)
	assert.Equal(t, "1005.00", q.TotalCost)

	q = d.wf.UpdateDraft(ports.TransferDraft{Amount: "abc"})
	assert.Equal(t, "0.00", q.TotalCost)
	assert.Equal(t, "abc", d.wf.State().Draft.Amount)
}

func TestTransferWorkflow_LoadRate_Error(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()

	d.rates.EXPECT().Latest(gomock.Any()).Return(nil, errors.New("db down"))
	assert.Error(t, d.wf.LoadRate(context.Background()))
}

func TestTransferWorkflow_WatchHistory(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()

	var handler ports.ChangeHandler
	sub := mocks.NewMockSubscription(d.ctrl)
	d.feed.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f domain.ChangeFilter, h ports.ChangeHandler) (ports.Subscription, error) {
			assert.Equal(t, domain.TableTransactions, f.Table)
			assert.Equal(t, domain.ChangeAll, f.Event)
			assert.Equal(t, "sender_id", f.Column)
			assert.Equal(t, d.userID.String(), f.Value)
			handler = h
			return sub, nil
		},
	)

	history := []domain.Transaction{{ID: uuid.New(), SenderID: d.userID}}
	d.txRepo.EXPECT().ListRecentBySender(gomock.Any(), d.userID, 20).Return(history, nil)

	got := make(chan []domain.Transaction, 1)
	handle, err := d.wf.WatchHistory(context.Background(), func(txs []domain.Transaction) { got <- txs })
	require.NoError(t, err)
	require.NotNil(t, handler)

	handler(domain.ChangeEvent{Table: domain.TableTransactions, Kind: domain.ChangeUpdate})
	assert.Equal(t, history, <-got)

	sub.EXPECT().Unsubscribe().Times(1)
	handle.Unsubscribe()
	handle.Unsubscribe()
	d.wf.Close()
}

func TestTransferWorkflow_WatchHistory_NotAuthenticated(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.Nil, testTransferConfig())
	defer d.ctrl.Finish()

	_, err := d.wf.WatchHistory(context.Background(), func([]domain.Transaction) {})
	requireCode(t, err, "AUTH_001")
}

func TestTransferWorkflow_WatchRate_ReloadsOnInsert(t *testing.T) {
	d := setupTransferWorkflow(t, uuid.New(), testTransferConfig())
	defer d.ctrl.Finish()
	d.withProfile(domain.KYCStatusVerified)

	var handler ports.ChangeHandler
	sub := mocks.NewMockSubscription(d.ctrl)
	d.feed.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f domain.ChangeFilter, h ports.ChangeHandler) (ports.Subscription, error) {
			assert.Equal(t, domain.TableExchangeRates, f.Table)
			assert.Equal(t, domain.ChangeInsert, f.Event)
			assert.Equal(t, "currency_pair", f.Column)
			assert.Equal(t, "INR_USD", f.Value)
			handler = h
			return sub, nil
		},
	)

	fresh := testRate("84.5")
	gomock.InOrder(
		d.rates.EXPECT().Invalidate(gomock.Any()),
		d.rates.EXPECT().Latest(gomock.Any()).Return(fresh, nil),
	)

	got := make(chan *domain.ExchangeRate, 1)
	_, err := d.wf.WatchRate(context.Background(), func(r *domain.ExchangeRate) { got <- r })
	require.NoError(t, err)

	handler(domain.ChangeEvent{Table: domain.TableExchangeRates, Kind: domain.ChangeInsert})
	assert.Equal(t, fresh, <-got)
	assert.True(t, d.wf.CanSubmit())

	// Close releases subscriptions still held by the workflow.
	sub.EXPECT().Unsubscribe().Times(1)
	d.wf.Close()
}
