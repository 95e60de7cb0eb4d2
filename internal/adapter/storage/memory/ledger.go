package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Ledger is an in-memory row store with the same table contract as the
// postgres schema. Every write emits a change event to the publisher.
type Ledger struct {
	mu           sync.RWMutex
	profiles     map[uuid.UUID]domain.ProfileRecord
	transactions map[uuid.UUID]domain.TransactionRecord
	rates        []domain.ExchangeRateRecord
	documents    map[uuid.UUID]domain.KYCDocumentRecord
	wallets      map[string]domain.WalletRecord // keyed by wallet_address
	audit        []domain.AuditLog
	failures     map[string]error

	pub ports.ChangePublisher
	log zerolog.Logger
}

// NewLedger creates an empty ledger. pub may be nil.
func NewLedger(pub ports.ChangePublisher, log zerolog.Logger) *Ledger {
	return &Ledger{
		profiles:     make(map[uuid.UUID]domain.ProfileRecord),
		transactions: make(map[uuid.UUID]domain.TransactionRecord),
		documents:    make(map[uuid.UUID]domain.KYCDocumentRecord),
		wallets:      make(map[string]domain.WalletRecord),
		failures:     make(map[string]error),
		pub:          pub,
		log:          log,
	}
}

func (l *Ledger) Profiles() *ProfileRepo         { return &ProfileRepo{l} }
func (l *Ledger) Transactions() *TransactionRepo { return &TransactionRepo{l} }
func (l *Ledger) Rates() *ExchangeRateRepo       { return &ExchangeRateRepo{l} }
func (l *Ledger) KYCDocuments() *KYCDocumentRepo { return &KYCDocumentRepo{l} }
func (l *Ledger) Wallets() *WalletRepo           { return &WalletRepo{l} }
func (l *Ledger) Audit() *AuditRepo              { return &AuditRepo{l} }

// FailWrites makes subsequent writes to table return err. A nil err clears it.
func (l *Ledger) FailWrites(table string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		delete(l.failures, table)
		return
	}
	l.failures[table] = err
}

// must be called with l.mu held.
func (l *Ledger) failure(table string) error {
	return l.failures[table]
}

func (l *Ledger) emit(table string, kind domain.ChangeKind, newRow, oldRow any) {
	if l.pub == nil {
		return
	}
	ev, err := domain.NewChangeEvent(table, kind, newRow, oldRow)
	if err != nil {
		l.log.Warn().Err(err).Str("table", table).Msg("failed to build change event")
		return
	}
	if err := l.pub.Publish(context.Background(), ev); err != nil {
		l.log.Warn().Err(err).Str("table", table).Msg("failed to publish change event")
	}
}

// --- Reviewer / settlement side ---

// PutProfile inserts or replaces a profile row.
func (l *Ledger) PutProfile(p domain.ProfileRecord) {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	l.mu.Lock()
	old, existed := l.profiles[p.ID]
	l.profiles[p.ID] = p
	l.mu.Unlock()

	if existed {
		l.emit(domain.TableProfiles, domain.ChangeUpdate, p, old)
		return
	}
	l.emit(domain.TableProfiles, domain.ChangeInsert, p, nil)
}

// SetKYCStatus applies an external reviewer decision.
func (l *Ledger) SetKYCStatus(userID uuid.UUID, status domain.KYCStatus) error {
	now := time.Now().UTC()

	l.mu.Lock()
	old, ok := l.profiles[userID]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("profile not found: %s", userID)
	}
	p := old
	p.KYCStatus = string(status)
	if status == domain.KYCStatusVerified {
		p.KYCVerifiedAt = &now
	}
	p.UpdatedAt = now
	l.profiles[userID] = p
	l.mu.Unlock()

	l.emit(domain.TableProfiles, domain.ChangeUpdate, p, old)
	return nil
}

// SeedRate appends an exchange rate snapshot.
func (l *Ledger) SeedRate(pair string, rate float64, source string) domain.ExchangeRateRecord {
	rec := domain.ExchangeRateRecord{
		ID:           uuid.New(),
		CurrencyPair: pair,
		Rate:         rate,
		Source:       source,
		CreatedAt:    time.Now().UTC(),
	}

	l.mu.Lock()
	l.rates = append(l.rates, rec)
	l.mu.Unlock()

	l.emit(domain.TableExchangeRates, domain.ChangeInsert, rec, nil)
	return rec
}

// AdvanceTransaction applies a settlement status change.
func (l *Ledger) AdvanceTransaction(id uuid.UUID, status domain.TransactionStatus, txHash string) error {
	l.mu.Lock()
	old, ok := l.transactions[id]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("transaction not found: %s", id)
	}
	rec := old
	rec.Status = string(status)
	if txHash != "" {
		rec.TransactionHash = &txHash
	}
	if status == domain.TransactionStatusCompleted || status == domain.TransactionStatusFailed {
		now := time.Now().UTC()
		rec.CompletedAt = &now
	}
	l.transactions[id] = rec
	l.mu.Unlock()

	l.emit(domain.TableTransactions, domain.ChangeUpdate, rec, old)
	return nil
}

// DocumentCount returns the number of stored KYC documents for a user.
func (l *Ledger) DocumentCount(userID uuid.UUID) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, d := range l.documents {
		if d.UserID == userID {
			n++
		}
	}
	return n
}

// --- Repositories ---

// ProfileRepo implements ports.ProfileRepository.
type ProfileRepo struct{ l *Ledger }

func (r *ProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.l.mu.RLock()
	rec, ok := r.l.profiles[id]
	r.l.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return rec.Parse()
}

func (r *ProfileRepo) MarkKYCPending(_ context.Context, u domain.KYCProfileUpdate) error {
	r.l.mu.Lock()
	newRec, oldRec, err := r.l.markPendingLocked(u)
	r.l.mu.Unlock()
	if err != nil {
		return err
	}
	r.l.emit(domain.TableProfiles, domain.ChangeUpdate, newRec, oldRec)
	return nil
}

func (l *Ledger) markPendingLocked(u domain.KYCProfileUpdate) (domain.ProfileRecord, domain.ProfileRecord, error) {
	if err := l.failure(domain.TableProfiles); err != nil {
		return domain.ProfileRecord{}, domain.ProfileRecord{}, err
	}
	old, ok := l.profiles[u.UserID]
	if !ok {
		return domain.ProfileRecord{}, domain.ProfileRecord{}, fmt.Errorf("profile not found: %s", u.UserID)
	}
	rec := old
	submitted := u.SubmittedAt
	phone := u.PhoneNumber
	rec.KYCStatus = string(domain.KYCStatusPending)
	rec.KYCSubmittedAt = &submitted
	rec.PhoneNumber = &phone
	rec.UpdatedAt = submitted
	l.profiles[u.UserID] = rec
	return rec, old, nil
}

func (r *ProfileRepo) UpdateWalletAddress(_ context.Context, id uuid.UUID, address string) error {
	r.l.mu.Lock()
	if err := r.l.failure(domain.TableProfiles); err != nil {
		r.l.mu.Unlock()
		return err
	}
	old, ok := r.l.profiles[id]
	if !ok {
		r.l.mu.Unlock()
		return fmt.Errorf("profile not found: %s", id)
	}
	rec := old
	rec.WalletAddress = &address
	rec.UpdatedAt = time.Now().UTC()
	r.l.profiles[id] = rec
	r.l.mu.Unlock()

	r.l.emit(domain.TableProfiles, domain.ChangeUpdate, rec, old)
	return nil
}

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct{ l *Ledger }

func (r *TransactionRepo) Create(_ context.Context, t *domain.Transaction) error {
	rec := t.Record()

	r.l.mu.Lock()
	if err := r.l.failure(domain.TableTransactions); err != nil {
		r.l.mu.Unlock()
		return err
	}
	if _, exists := r.l.transactions[rec.ID]; exists {
		r.l.mu.Unlock()
		return fmt.Errorf("duplicate key value violates unique constraint \"transactions_pkey\"")
	}
	r.l.transactions[rec.ID] = rec
	r.l.mu.Unlock()

	r.l.emit(domain.TableTransactions, domain.ChangeInsert, rec, nil)
	return nil
}

func (r *TransactionRepo) ListRecentBySender(_ context.Context, senderID uuid.UUID, limit int) ([]domain.Transaction, error) {
	r.l.mu.RLock()
	var recs []domain.TransactionRecord
	for _, rec := range r.l.transactions {
		if rec.SenderID == senderID {
			recs = append(recs, rec)
		}
	}
	r.l.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}

	txns := make([]domain.Transaction, 0, len(recs))
	for _, rec := range recs {
		t, err := rec.Parse()
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	return txns, nil
}

func (r *TransactionRepo) GetStats(_ context.Context, senderID uuid.UUID) (*ports.TransferStats, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()

	stats := &ports.TransferStats{TotalSent: decimal.Zero, AverageAmount: decimal.Zero}
	for _, rec := range r.l.transactions {
		if rec.SenderID != senderID {
			continue
		}
		stats.TotalTransactions++
		stats.TotalSent = stats.TotalSent.Add(decimal.NewFromFloat(rec.AmountINR))
		if rec.Status == string(domain.TransactionStatusCompleted) {
			stats.Completed++
		}
	}
	if stats.TotalTransactions > 0 {
		stats.AverageAmount = stats.TotalSent.DivRound(decimal.NewFromInt(stats.TotalTransactions), 2)
	}
	return stats, nil
}

// ExchangeRateRepo implements ports.ExchangeRateRepository.
type ExchangeRateRepo struct{ l *Ledger }

func (r *ExchangeRateRepo) GetLatest(_ context.Context, pair string) (*domain.ExchangeRate, error) {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()

	var latest *domain.ExchangeRateRecord
	for i := range r.l.rates {
		rec := &r.l.rates[i]
		if rec.CurrencyPair != pair {
			continue
		}
		if latest == nil || !rec.CreatedAt.Before(latest.CreatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, nil
	}
	return latest.Parse()
}

// KYCDocumentRepo implements ports.KYCDocumentRepository.
type KYCDocumentRepo struct{ l *Ledger }

func (r *KYCDocumentRepo) Create(_ context.Context, doc *domain.KYCDocument) error {
	rec := documentRecord(doc)

	r.l.mu.Lock()
	if err := r.l.failure(domain.TableKYCDocuments); err != nil {
		r.l.mu.Unlock()
		return err
	}
	r.l.documents[rec.ID] = rec
	r.l.mu.Unlock()

	r.l.emit(domain.TableKYCDocuments, domain.ChangeInsert, rec, nil)
	return nil
}

// CreateWithProfileUpdate applies both writes under one lock; neither is
// kept if either fails.
func (r *KYCDocumentRepo) CreateWithProfileUpdate(_ context.Context, doc *domain.KYCDocument, u domain.KYCProfileUpdate) error {
	rec := documentRecord(doc)

	r.l.mu.Lock()
	if err := r.l.failure(domain.TableKYCDocuments); err != nil {
		r.l.mu.Unlock()
		return err
	}
	newProfile, oldProfile, err := r.l.markPendingLocked(u)
	if err != nil {
		r.l.mu.Unlock()
		return err
	}
	r.l.documents[rec.ID] = rec
	r.l.mu.Unlock()

	r.l.emit(domain.TableKYCDocuments, domain.ChangeInsert, rec, nil)
	r.l.emit(domain.TableProfiles, domain.ChangeUpdate, newProfile, oldProfile)
	return nil
}

func (r *KYCDocumentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.KYCDocument, error) {
	r.l.mu.RLock()
	var recs []domain.KYCDocumentRecord
	for _, rec := range r.l.documents {
		if rec.UserID == userID {
			recs = append(recs, rec)
		}
	}
	r.l.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.After(recs[j].CreatedAt) })
	docs := make([]domain.KYCDocument, 0, len(recs))
	for _, rec := range recs {
		d, err := rec.Parse()
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, nil
}

func documentRecord(doc *domain.KYCDocument) domain.KYCDocumentRecord {
	return domain.KYCDocumentRecord{
		ID:                 doc.ID,
		UserID:             doc.UserID,
		DocumentType:       string(doc.DocumentType),
		DocumentNumber:     doc.DocumentNumber,
		VerificationStatus: string(doc.VerificationStatus),
		CreatedAt:          doc.CreatedAt,
	}
}

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct{ l *Ledger }

func (r *WalletRepo) UpsertPrimary(_ context.Context, w *domain.WalletBinding) error {
	rec := domain.WalletRecord{
		ID:            w.ID,
		UserID:        w.UserID,
		WalletAddress: w.Address,
		WalletType:    string(w.Kind),
		BalanceUSDC:   w.BalanceSettlement.InexactFloat64(),
		BalanceINR:    w.BalanceSource.InexactFloat64(),
		IsPrimary:     w.IsPrimary,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}

	r.l.mu.Lock()
	if err := r.l.failure(domain.TableWallets); err != nil {
		r.l.mu.Unlock()
		return err
	}
	old, existed := r.l.wallets[rec.WalletAddress]
	if existed {
		// on conflict keep the original id, creation time and balances
		rec.ID = old.ID
		rec.CreatedAt = old.CreatedAt
		rec.BalanceUSDC = old.BalanceUSDC
		rec.BalanceINR = old.BalanceINR
	}
	r.l.wallets[rec.WalletAddress] = rec
	r.l.mu.Unlock()

	if existed {
		r.l.emit(domain.TableWallets, domain.ChangeUpdate, rec, old)
		return nil
	}
	r.l.emit(domain.TableWallets, domain.ChangeInsert, rec, nil)
	return nil
}

func (r *WalletRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.WalletBinding, error) {
	r.l.mu.RLock()
	var recs []domain.WalletRecord
	for _, rec := range r.l.wallets {
		if rec.UserID == userID {
			recs = append(recs, rec)
		}
	}
	r.l.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].IsPrimary != recs[j].IsPrimary {
			return recs[i].IsPrimary
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	out := make([]domain.WalletBinding, 0, len(recs))
	for _, rec := range recs {
		w, err := rec.Parse()
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, nil
}

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct{ l *Ledger }

func (r *AuditRepo) Create(_ context.Context, log *domain.AuditLog) error {
	r.l.mu.Lock()
	defer r.l.mu.Unlock()
	r.l.audit = append(r.l.audit, *log)
	return nil
}

// Entries returns a copy of the stored audit rows.
func (r *AuditRepo) Entries() []domain.AuditLog {
	r.l.mu.RLock()
	defer r.l.mu.RUnlock()
	out := make([]domain.AuditLog, len(r.l.audit))
	copy(out, r.l.audit)
	return out
}
