package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"
	"crossborder-remit/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const kycWriteFallback = "Failed to submit KYC"

// KYCWorkflow implements ports.KYCWorkflow for one session.
type KYCWorkflow struct {
	session  ports.IdentitySession
	docs     ports.KYCDocumentRepository
	profiles ports.ProfileRepository
	enc      ports.EncryptionService
	feed     ports.ChangeFeed
	events   ports.EventPublisher
	metrics  *Metrics
	atomic   bool
	log      zerolog.Logger

	mu      sync.Mutex
	phase   ports.KYCPhase
	lastErr string
	success bool

	subs subscriptionSet
}

// NewKYCWorkflow creates an idle KYC workflow. With atomic set, the document
// insert and the profile update share one database transaction.
func NewKYCWorkflow(
	session ports.IdentitySession,
	docs ports.KYCDocumentRepository,
	profiles ports.ProfileRepository,
	enc ports.EncryptionService,
	feed ports.ChangeFeed,
	events ports.EventPublisher,
	metrics *Metrics,
	atomic bool,
	log zerolog.Logger,
) *KYCWorkflow {
	return &KYCWorkflow{
		session:  session,
		docs:     docs,
		profiles: profiles,
		enc:      enc,
		feed:     feed,
		events:   events,
		metrics:  metrics,
		atomic:   atomic,
		log:      log.With().Str("component", "kyc_workflow").Str("user_id", session.Identity().String()).Logger(),
		phase:    ports.KYCIdle,
	}
}

// State returns the form phase and the profile's KYC status.
func (w *KYCWorkflow) State() ports.KYCState {
	status := domain.KYCStatusUnverified
	if p := w.session.Profile(); p != nil {
		status = p.KYCStatus
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return ports.KYCState{
		Phase:     w.phase,
		KYCStatus: status,
		LastError: w.lastErr,
		Success:   w.success,
	}
}

// Submit writes the document row and moves the profile to pending.
func (w *KYCWorkflow) Submit(ctx context.Context, sub ports.KYCSubmission) (*domain.KYCDocument, error) {
	w.mu.Lock()
	if w.phase == ports.KYCSubmitting {
		w.mu.Unlock()
		return nil, apperror.ErrKycSubmissionInFlight()
	}
	w.phase = ports.KYCSubmitting
	w.lastErr = ""
	w.success = false
	w.mu.Unlock()

	id := w.session.Identity()
	if id == uuid.Nil {
		return nil, w.fail(apperror.ErrNotAuthenticated("complete KYC"))
	}
	// Re-read so a review decision made since the session opened is honored.
	p, err := w.session.RefreshProfile(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("failed to refresh profile, using cached copy")
		p = w.session.Profile()
	}
	if p != nil && !p.KYCStatus.CanTransitionTo(domain.KYCStatusPending) {
		return nil, w.fail(apperror.ErrKycAlreadySubmitted())
	}
	if !sub.DocumentType.Valid() {
		return nil, w.fail(apperror.Validation("invalid document type"))
	}

	sealed, err := w.enc.Encrypt(sub.DocumentNumber)
	if err != nil {
		return nil, w.fail(apperror.ErrEncryptionFailure(err))
	}

	now := time.Now().UTC()
	doc := &domain.KYCDocument{
		ID:                 uuid.New(),
		UserID:             id,
		DocumentType:       sub.DocumentType,
		DocumentNumber:     sealed,
		VerificationStatus: domain.VerificationStatusPending,
		CreatedAt:          now,
	}
	update := domain.KYCProfileUpdate{
		UserID:      id,
		PhoneNumber: sub.PhoneNumber,
		SubmittedAt: now,
	}

	if err := w.write(ctx, doc, update); err != nil {
		return nil, w.fail(err)
	}

	if _, err := w.session.RefreshProfile(ctx); err != nil {
		w.log.Warn().Err(err).Msg("failed to refresh profile after KYC submission")
	}

	w.mu.Lock()
	w.phase = ports.KYCSucceeded
	w.success = true
	w.mu.Unlock()

	w.log.Info().
		Str("document_id", doc.ID.String()).
		Str("document_type", string(doc.DocumentType)).
		Msg("KYC submitted")

	err = w.events.PublishKYCSubmitted(context.WithoutCancel(ctx), doc)
	w.metrics.EventPublishTotal.WithLabelValues("kyc.submitted", publishStatus(err)).Inc()
	if err != nil {
		w.log.Warn().Err(err).Str("document_id", doc.ID.String()).Msg("failed to publish KYC event")
	}

	w.metrics.KYCOutcomes.WithLabelValues("success").Inc()
	c := *doc
	return &c, nil
}

func (w *KYCWorkflow) write(ctx context.Context, doc *domain.KYCDocument, update domain.KYCProfileUpdate) error {
	if w.atomic {
		if err := w.docs.CreateWithProfileUpdate(ctx, doc, update); err != nil {
			return apperror.ErrExternalWriteFailed(kycWriteFallback, err)
		}
		return nil
	}

	if err := w.docs.Create(ctx, doc); err != nil {
		return apperror.ErrExternalWriteFailed(kycWriteFallback, err)
	}
	if err := w.profiles.MarkKYCPending(ctx, update); err != nil {
		// The document row stays behind without the profile moving to pending.
		w.log.Warn().
			Err(err).
			Str("document_id", doc.ID.String()).
			Msg("KYC document written but profile update failed")
		return apperror.ErrExternalWriteFailed(kycWriteFallback, err)
	}
	return nil
}

func (w *KYCWorkflow) fail(err error) error {
	w.mu.Lock()
	w.phase = ports.KYCFailed
	w.lastErr = apperror.UserMessage(err)
	w.mu.Unlock()

	outcome := "error"
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		outcome = appErr.Code
	}
	w.metrics.KYCOutcomes.WithLabelValues(outcome).Inc()
	return err
}

// Watch refreshes the profile whenever the identity's profile row or any of
// its KYC documents change. One handle releases both subscriptions.
func (w *KYCWorkflow) Watch(ctx context.Context, onChange func(*domain.Profile)) (ports.Subscription, error) {
	id := w.session.Identity()
	if id == uuid.Nil {
		return nil, apperror.ErrNotAuthenticated("complete KYC")
	}

	refresh := func(domain.ChangeEvent) {
		p, err := w.session.RefreshProfile(ctx)
		if err != nil {
			w.log.Warn().Err(err).Msg("failed to refresh profile on change")
			return
		}
		onChange(p)
	}

	profileSub, err := w.feed.Subscribe(ctx, domain.ChangeFilter{
		Table:  domain.TableProfiles,
		Event:  domain.ChangeUpdate,
		Column: "id",
		Value:  id.String(),
	}, refresh)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	docSub, err := w.feed.Subscribe(ctx, domain.ChangeFilter{
		Table:  domain.TableKYCDocuments,
		Event:  domain.ChangeAll,
		Column: "user_id",
		Value:  id.String(),
	}, refresh)
	if err != nil {
		profileSub.Unsubscribe()
		return nil, apperror.InternalError(err)
	}

	return w.subs.track(profileSub, docSub), nil
}

// Close releases every subscription opened by Watch.
func (w *KYCWorkflow) Close() {
	w.subs.closeAll()
}
