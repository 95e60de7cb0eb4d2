package service

import (
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	testRecipient = "0x52908400098527886E0F7030069857D2E4169EE7"
	testAccount   = "0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe"
)

func newTestLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testProfile(id uuid.UUID, status domain.KYCStatus) *domain.Profile {
	now := time.Now().UTC()
	p := &domain.Profile{
		ID:          id,
		FullName:    "Asha Rao",
		CountryCode: "IN",
		KYCStatus:   status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == domain.KYCStatusVerified {
		p.KYCVerifiedAt = &now
	}
	return p
}

func testRate(value string) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ID:           uuid.New(),
		CurrencyPair: "INR_USD",
		Rate:         decimal.RequireFromString(value),
		Source:       "oracle",
		CreatedAt:    time.Now().UTC(),
	}
}

func testTransferConfig() TransferConfig {
	return TransferConfig{
		CurrencyPair:   "INR_USD",
		NetworkLabel:   "Polygon",
		SuccessDisplay: 5 * time.Second,
		HistoryLimit:   20,
	}
}

func testChain() ports.ChainParams {
	return ports.ChainParams{
		ChainID:   "0x89",
		ChainName: "Polygon Mainnet",
		NativeCurrency: ports.NativeCurrency{
			Name:     "MATIC",
			Symbol:   "MATIC",
			Decimals: 18,
		},
		RPCURLs:           []string{"https://polygon-rpc.com/"},
		BlockExplorerURLs: []string{"https://polygonscan.com/"},
	}
}

func validDraft() ports.TransferDraft {
	return ports.TransferDraft{
		Amount:           "1000",
		RecipientAddress: testRecipient,
		RecipientName:    "Ravi",
	}
}
