package ports

import (
	"context"
	"fmt"
)

// Provider error codes defined by EIP-1193 and EIP-3085.
const (
	ProviderCodeUserRejected      = 4001
	ProviderCodeUnrecognizedChain = 4902
)

// ProviderError is an error returned by the wallet provider with its numeric code.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("wallet provider error %d: %s", e.Code, e.Message)
}

// ChainParams describes a network for wallet_addEthereumChain.
type ChainParams struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// WalletProvider is the injected wallet API.
type WalletProvider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	Accounts(ctx context.Context) ([]string, error)
	ChainID(ctx context.Context) (string, error)
	SwitchChain(ctx context.Context, chainID string) error
	AddChain(ctx context.Context, params ChainParams) error
}
