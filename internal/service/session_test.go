package service

import (
	"context"
	"errors"
	"testing"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOpenSession_LoadsProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := mocks.NewMockProfileRepository(ctrl)
	userID := uuid.New()
	profiles.EXPECT().GetByID(gomock.Any(), userID).Return(testProfile(userID, domain.KYCStatusVerified), nil)

	s, err := OpenSession(context.Background(), profiles, userID, newTestLogger())
	require.NoError(t, err)
	assert.Equal(t, userID, s.Identity())
	require.NotNil(t, s.Profile())
	assert.True(t, s.Profile().IsVerified())
}

func TestOpenSession_MissingProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := mocks.NewMockProfileRepository(ctrl)
	profiles.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, nil)

	s, err := OpenSession(context.Background(), profiles, uuid.New(), newTestLogger())
	require.NoError(t, err)
	assert.Nil(t, s.Profile())
}

func TestOpenSession_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := mocks.NewMockProfileRepository(ctrl)
	profiles.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := OpenSession(context.Background(), profiles, uuid.New(), newTestLogger())
	assert.Error(t, err)
}

func TestSession_ProfileIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := mocks.NewMockProfileRepository(ctrl)
	userID := uuid.New()
	profiles.EXPECT().GetByID(gomock.Any(), userID).Return(testProfile(userID, domain.KYCStatusPending), nil)

	s, err := OpenSession(context.Background(), profiles, userID, newTestLogger())
	require.NoError(t, err)

	p := s.Profile()
	p.KYCStatus = domain.KYCStatusVerified
	assert.Equal(t, domain.KYCStatusPending, s.Profile().KYCStatus)
}

func TestSession_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profiles := mocks.NewMockProfileRepository(ctrl)
	userID := uuid.New()
	profiles.EXPECT().GetByID(gomock.Any(), userID).Return(testProfile(userID, domain.KYCStatusVerified), nil)

	s, err := OpenSession(context.Background(), profiles, userID, newTestLogger())
	require.NoError(t, err)

	s.Close()
	assert.Equal(t, uuid.Nil, s.Identity())
	assert.Nil(t, s.Profile())

	// refresh after close does not touch the repository
	p, err := s.RefreshProfile(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, p)
}
