package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Ledger table names.
const (
	TableProfiles      = "profiles"
	TableTransactions  = "transactions"
	TableKYCDocuments  = "kyc_documents"
	TableExchangeRates = "exchange_rates"
	TableWallets       = "wallets"
)

// ChangeKind is the row-level event type delivered by a change feed.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "INSERT"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
	ChangeAll    ChangeKind = "*"
)

// ChangeEvent is one row change. New is null for deletes, Old is null for inserts.
type ChangeEvent struct {
	Table      string          `json:"table"`
	Kind       ChangeKind      `json:"type"`
	New        json.RawMessage `json:"record,omitempty"`
	Old        json.RawMessage `json:"old_record,omitempty"`
	CommitTime time.Time       `json:"commit_timestamp"`
}

// NewChangeEvent marshals the given rows into an event. Pass nil for an absent side.
func NewChangeEvent(table string, kind ChangeKind, newRow, oldRow any) (ChangeEvent, error) {
	ev := ChangeEvent{Table: table, Kind: kind, CommitTime: time.Now().UTC()}
	if newRow != nil {
		b, err := json.Marshal(newRow)
		if err != nil {
			return ChangeEvent{}, fmt.Errorf("marshal new row: %w", err)
		}
		ev.New = b
	}
	if oldRow != nil {
		b, err := json.Marshal(oldRow)
		if err != nil {
			return ChangeEvent{}, fmt.Errorf("marshal old row: %w", err)
		}
		ev.Old = b
	}
	return ev, nil
}

// Validate checks the envelope before it is dispatched.
func (e ChangeEvent) Validate() error {
	if e.Table == "" {
		return fmt.Errorf("%w: change event without table", ErrInvalidRecord)
	}
	switch e.Kind {
	case ChangeInsert, ChangeUpdate:
		if isNull(e.New) {
			return fmt.Errorf("%w: %s on %s without record", ErrInvalidRecord, e.Kind, e.Table)
		}
	case ChangeDelete:
		if isNull(e.Old) {
			return fmt.Errorf("%w: DELETE on %s without old_record", ErrInvalidRecord, e.Table)
		}
	default:
		return fmt.Errorf("%w: change type %q", ErrInvalidRecord, e.Kind)
	}
	return nil
}

// DecodeNew unmarshals the new row into dst.
func (e ChangeEvent) DecodeNew(dst any) error {
	if isNull(e.New) {
		return fmt.Errorf("%w: %s event has no record", ErrInvalidRecord, e.Kind)
	}
	if err := json.Unmarshal(e.New, dst); err != nil {
		return fmt.Errorf("%w: decode %s record: %v", ErrInvalidRecord, e.Table, err)
	}
	return nil
}

// Column returns the string form of a column, read from the new row or,
// for deletes, the old row.
func (e ChangeEvent) Column(name string) (string, bool) {
	raw := e.New
	if isNull(raw) {
		raw = e.Old
	}
	if isNull(raw) {
		return "", false
	}
	var row map[string]any
	if err := json.Unmarshal(raw, &row); err != nil {
		return "", false
	}
	v, ok := row[name]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprint(t), true
	}
}

// ChangeFilter selects events by table, kind and an equality predicate.
// Empty Column matches every row of the table.
type ChangeFilter struct {
	Table  string
	Event  ChangeKind
	Column string
	Value  string
}

// ParseFilter builds a filter from the ledger's "column=eq.value" syntax.
func ParseFilter(table string, event ChangeKind, expr string) (ChangeFilter, error) {
	f := ChangeFilter{Table: table, Event: event}
	if expr == "" {
		return f, nil
	}
	col, rest, ok := strings.Cut(expr, "=")
	if !ok || col == "" {
		return ChangeFilter{}, fmt.Errorf("invalid filter %q: expected column=eq.value", expr)
	}
	val, ok := strings.CutPrefix(rest, "eq.")
	if !ok {
		return ChangeFilter{}, fmt.Errorf("invalid filter %q: only eq is supported", expr)
	}
	f.Column = col
	f.Value = val
	return f, nil
}

// String renders the filter in the ledger syntax.
func (f ChangeFilter) String() string {
	if f.Column == "" {
		return fmt.Sprintf("%s:%s", f.Table, f.Event)
	}
	return fmt.Sprintf("%s:%s:%s=eq.%s", f.Table, f.Event, f.Column, f.Value)
}

// Matches reports whether ev satisfies the filter.
func (f ChangeFilter) Matches(ev ChangeEvent) bool {
	if f.Table != ev.Table {
		return false
	}
	if f.Event != ChangeAll && f.Event != "" && f.Event != ev.Kind {
		return false
	}
	if f.Column == "" {
		return true
	}
	v, ok := ev.Column(f.Column)
	return ok && v == f.Value
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
