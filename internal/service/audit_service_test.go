package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports/mocks"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			if log.Action != domain.AuditActionTransferCreate {
				t.Errorf("expected TRANSFER_CREATE, got %s", log.Action)
			}
			close(done)
			return nil
		},
	)

	userID := uuid.New()
	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		UserID:       &userID,
		Action:       domain.AuditActionTransferCreate,
		ResourceType: "transaction",
		ResourceID:   uuid.New().String(),
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now(),
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_SurvivesCancelledRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan error, 1)
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *domain.AuditLog) error {
			done <- ctx.Err()
			return errors.New("db down")
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Log(ctx, &domain.AuditLog{ID: uuid.New(), Action: domain.AuditActionKYCSubmit})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("persist context should not inherit cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	// Should not panic
	svc.Log(context.Background(), &domain.AuditLog{
		ID:     uuid.New(),
		Action: domain.AuditActionWalletConnect,
	})
	time.Sleep(50 * time.Millisecond)
}
