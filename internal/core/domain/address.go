package domain

import (
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

var recipientAddressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// IsRecipientAddress reports whether s is a 0x-prefixed, 40 hex digit address.
func IsRecipientAddress(s string) bool {
	return recipientAddressRe.MatchString(s) && common.IsHexAddress(s)
}

// ValidateRecipientAddress returns ErrInvalidRecord when s is not a chain address.
func ValidateRecipientAddress(s string) error {
	if !IsRecipientAddress(s) {
		return fmt.Errorf("%w: recipient address %q", ErrInvalidRecord, s)
	}
	return nil
}
