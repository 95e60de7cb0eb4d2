package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validAddr = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestKYCStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to KYCStatus
		want     bool
	}{
		{KYCStatusUnverified, KYCStatusPending, true},
		{KYCStatusUnverified, KYCStatusVerified, false},
		{KYCStatusPending, KYCStatusVerified, true},
		{KYCStatusPending, KYCStatusRejected, true},
		{KYCStatusPending, KYCStatusPending, false},
		{KYCStatusRejected, KYCStatusPending, true},
		{KYCStatusVerified, KYCStatusPending, false},
		{KYCStatusVerified, KYCStatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestProfileRecord_Parse(t *testing.T) {
	now := time.Now().UTC()
	id := uuid.New()

	t.Run("empty status defaults to unverified", func(t *testing.T) {
		p, err := ProfileRecord{ID: id, FullName: "Asha"}.Parse()
		require.NoError(t, err)
		assert.Equal(t, KYCStatusUnverified, p.KYCStatus)
		assert.False(t, p.IsVerified())
	})

	t.Run("verified requires timestamp", func(t *testing.T) {
		_, err := ProfileRecord{ID: id, KYCStatus: "verified"}.Parse()
		assert.ErrorIs(t, err, ErrInvalidRecord)

		p, err := ProfileRecord{ID: id, KYCStatus: "verified", KYCVerifiedAt: &now}.Parse()
		require.NoError(t, err)
		assert.True(t, p.IsVerified())
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := ProfileRecord{ID: id, KYCStatus: "approved"}.Parse()
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})

	t.Run("nil id", func(t *testing.T) {
		_, err := ProfileRecord{KYCStatus: "pending"}.Parse()
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})
}

func TestProfile_CloneIsDeep(t *testing.T) {
	addr := validAddr
	p := &Profile{ID: uuid.New(), WalletAddress: &addr}

	c := p.Clone()
	*c.WalletAddress = "0x0000000000000000000000000000000000000000"

	assert.Equal(t, validAddr, *p.WalletAddress)
	assert.True(t, p.HasWallet(validAddr))
	assert.Nil(t, (*Profile)(nil).Clone())
}

func TestIsRecipientAddress(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{validAddr, true},
		{"0x52908400098527886e0f7030069857d2e4169ee7", true},
		{"52908400098527886E0F7030069857D2E4169EE7", false},
		{"0xZZZ08400098527886E0F7030069857D2E4169EE7", false},
		{"0x5290840009852788", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecipientAddress(tt.addr))
		})
	}
}

func TestTransactionRecord_ParseAndRecord(t *testing.T) {
	rec := TransactionRecord{
		ID:                uuid.New(),
		SenderID:          uuid.New(),
		RecipientWallet:   validAddr,
		RecipientName:     "Ravi",
		AmountINR:         1000,
		AmountUSDC:        12.048193,
		ExchangeRate:      83,
		PlatformFee:       5,
		BlockchainFee:     0.05,
		TotalCost:         1005,
		Status:            "pending",
		BlockchainNetwork: "Polygon",
		CreatedAt:         time.Now().UTC(),
	}

	tx, err := rec.Parse()
	require.NoError(t, err)
	assert.True(t, tx.TotalCost.Equal(decimal.NewFromInt(1005)))
	assert.Equal(t, TransactionStatusPending, tx.Status)
	assert.False(t, tx.IsTerminal())
	assert.Equal(t, rec, tx.Record())

	rec.Status = "settled"
	_, err = rec.Parse()
	assert.ErrorIs(t, err, ErrInvalidRecord)

	rec.Status = "pending"
	rec.RecipientWallet = "0xZZZ"
	_, err = rec.Parse()
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestExchangeRateRecord_Parse(t *testing.T) {
	tests := []struct {
		name    string
		rec     ExchangeRateRecord
		wantErr bool
	}{
		{"positive", ExchangeRateRecord{CurrencyPair: "INR_USD", Rate: 83}, false},
		{"zero", ExchangeRateRecord{CurrencyPair: "INR_USD", Rate: 0}, true},
		{"negative", ExchangeRateRecord{CurrencyPair: "INR_USD", Rate: -1}, true},
		{"no pair", ExchangeRateRecord{Rate: 83}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := tt.rec.Parse()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidRecord))
				return
			}
			require.NoError(t, err)
			assert.True(t, rate.Rate.Equal(decimal.NewFromInt(83)))
		})
	}
}

func TestKYCDocumentRecord_Parse(t *testing.T) {
	rec := KYCDocumentRecord{UserID: uuid.New(), DocumentType: "passport", VerificationStatus: "pending"}
	doc, err := rec.Parse()
	require.NoError(t, err)
	assert.Equal(t, DocumentTypePassport, doc.DocumentType)

	rec.DocumentType = "library_card"
	_, err = rec.Parse()
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestWalletRecord_Parse(t *testing.T) {
	rec := WalletRecord{UserID: uuid.New(), WalletAddress: validAddr, WalletType: "metamask", IsPrimary: true}
	w, err := rec.Parse()
	require.NoError(t, err)
	assert.Equal(t, WalletKindInjectedBrowser, w.Kind)

	rec.WalletType = "ledger"
	_, err = rec.Parse()
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestChangeFilter_Matches(t *testing.T) {
	userID := uuid.New()
	ev, err := NewChangeEvent(TableTransactions, ChangeUpdate,
		map[string]any{"id": "t1", "sender_id": userID.String(), "status": "completed"}, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter ChangeFilter
		want   bool
	}{
		{"all events on sender", ChangeFilter{Table: TableTransactions, Event: ChangeAll, Column: "sender_id", Value: userID.String()}, true},
		{"update only", ChangeFilter{Table: TableTransactions, Event: ChangeUpdate, Column: "sender_id", Value: userID.String()}, true},
		{"insert only", ChangeFilter{Table: TableTransactions, Event: ChangeInsert, Column: "sender_id", Value: userID.String()}, false},
		{"other sender", ChangeFilter{Table: TableTransactions, Event: ChangeAll, Column: "sender_id", Value: uuid.NewString()}, false},
		{"other table", ChangeFilter{Table: TableProfiles, Event: ChangeAll}, false},
		{"whole table", ChangeFilter{Table: TableTransactions, Event: ChangeAll}, true},
		{"missing column", ChangeFilter{Table: TableTransactions, Event: ChangeAll, Column: "user_id", Value: userID.String()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(ev))
		})
	}
}

func TestChangeFilter_MatchesDeleteOnOldRow(t *testing.T) {
	userID := uuid.NewString()
	ev, err := NewChangeEvent(TableKYCDocuments, ChangeDelete, nil, map[string]any{"user_id": userID})
	require.NoError(t, err)
	require.NoError(t, ev.Validate())

	f := ChangeFilter{Table: TableKYCDocuments, Event: ChangeAll, Column: "user_id", Value: userID}
	assert.True(t, f.Matches(ev))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(TableProfiles, ChangeUpdate, "id=eq.abc")
	require.NoError(t, err)
	assert.Equal(t, ChangeFilter{Table: TableProfiles, Event: ChangeUpdate, Column: "id", Value: "abc"}, f)
	assert.Equal(t, "profiles:UPDATE:id=eq.abc", f.String())

	_, err = ParseFilter(TableProfiles, ChangeUpdate, "id=gt.5")
	assert.Error(t, err)

	_, err = ParseFilter(TableProfiles, ChangeUpdate, "id")
	assert.Error(t, err)
}

func TestChangeEvent_Validate(t *testing.T) {
	assert.Error(t, ChangeEvent{Kind: ChangeInsert, New: json.RawMessage(`{}`)}.Validate())
	assert.Error(t, ChangeEvent{Table: TableProfiles, Kind: ChangeUpdate, New: json.RawMessage(`null`)}.Validate())
	assert.Error(t, ChangeEvent{Table: TableProfiles, Kind: "TRUNCATE"}.Validate())
	assert.NoError(t, ChangeEvent{Table: TableProfiles, Kind: ChangeUpdate, New: json.RawMessage(`{"id":"1"}`)}.Validate())
}

func TestChangeEvent_DecodeNew(t *testing.T) {
	id := uuid.New()
	ev, err := NewChangeEvent(TableProfiles, ChangeUpdate, ProfileRecord{ID: id, KYCStatus: "pending"}, nil)
	require.NoError(t, err)

	var rec ProfileRecord
	require.NoError(t, ev.DecodeNew(&rec))
	p, err := rec.Parse()
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, KYCStatusPending, p.KYCStatus)
}

func TestValidateRecipientAddress(t *testing.T) {
	assert.NoError(t, ValidateRecipientAddress(validAddr))
	assert.ErrorIs(t, ValidateRecipientAddress("0xZZZ"), ErrInvalidRecord)
}
