// Package ethrpc implements the wallet provider port over an EIP-1193 style
// JSON-RPC endpoint.
package ethrpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crossborder-remit/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
)

// Provider is a ports.WalletProvider backed by a go-ethereum rpc client.
type Provider struct {
	client *rpc.Client
	log    zerolog.Logger
}

// Dial connects to the wallet bridge at url.
func Dial(ctx context.Context, url string, log zerolog.Logger) (*Provider, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing wallet provider: %w", err)
	}
	log.Info().Str("url", url).Msg("Wallet provider connected")
	return NewProvider(client, log), nil
}

// NewProvider wraps an existing client.
func NewProvider(client *rpc.Client, log zerolog.Logger) *Provider {
	return &Provider{
		client: client,
		log:    log.With().Str("component", "wallet_provider").Logger(),
	}
}

// RequestAccounts asks the wallet to expose its accounts (eth_requestAccounts).
func (p *Provider) RequestAccounts(ctx context.Context) ([]string, error) {
	return p.accounts(ctx, "eth_requestAccounts")
}

// Accounts returns the currently exposed accounts (eth_accounts).
func (p *Provider) Accounts(ctx context.Context) ([]string, error) {
	return p.accounts(ctx, "eth_accounts")
}

func (p *Provider) accounts(ctx context.Context, method string) ([]string, error) {
	var raw []string
	if err := p.client.CallContext(ctx, &raw, method); err != nil {
		return nil, providerError(method, err)
	}

	accounts := make([]string, 0, len(raw))
	for _, a := range raw {
		if !common.IsHexAddress(a) {
			p.log.Warn().Str("method", method).Str("account", a).Msg("provider returned non-hex account, skipped")
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// ChainID returns the active chain id in canonical 0x form.
func (p *Provider) ChainID(ctx context.Context) (string, error) {
	var id hexutil.Big
	if err := p.client.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return "", providerError("eth_chainId", err)
	}
	return id.String(), nil
}

// SwitchChain calls wallet_switchEthereumChain.
func (p *Provider) SwitchChain(ctx context.Context, chainID string) error {
	canonical, err := CanonicalChainID(chainID)
	if err != nil {
		return err
	}
	params := map[string]string{"chainId": canonical}
	if err := p.client.CallContext(ctx, nil, "wallet_switchEthereumChain", params); err != nil {
		return providerError("wallet_switchEthereumChain", err)
	}
	return nil
}

// AddChain calls wallet_addEthereumChain.
func (p *Provider) AddChain(ctx context.Context, params ports.ChainParams) error {
	canonical, err := CanonicalChainID(params.ChainID)
	if err != nil {
		return err
	}
	params.ChainID = canonical
	if err := p.client.CallContext(ctx, nil, "wallet_addEthereumChain", params); err != nil {
		return providerError("wallet_addEthereumChain", err)
	}
	return nil
}

// Close releases the underlying connection.
func (p *Provider) Close() {
	p.client.Close()
}

// CanonicalChainID normalizes a hex chain id ("0x089" -> "0x89").
func CanonicalChainID(s string) (string, error) {
	digits, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if !ok {
		return "", fmt.Errorf("invalid chain id %q: missing 0x prefix", s)
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	n, err := hexutil.DecodeBig("0x" + digits)
	if err != nil {
		return "", fmt.Errorf("invalid chain id %q: %w", s, err)
	}
	return hexutil.EncodeBig(n), nil
}

// providerError keeps the JSON-RPC error code so the wallet link can tell a
// user rejection from other failures.
func providerError(method string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return &ports.ProviderError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	}
	return fmt.Errorf("%s: %w", method, err)
}
