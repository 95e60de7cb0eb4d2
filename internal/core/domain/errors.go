package domain

import "errors"

// ErrInvalidRecord marks a ledger row that failed the parse/validate boundary.
var ErrInvalidRecord = errors.New("invalid ledger record")
