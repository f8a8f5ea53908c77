package service

import (
	"context"
	"errors"
	"testing"

	"rangerblock/internal/core/domain"
	"rangerblock/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSecurityEventService_Record_PersistsToSinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	file := mocks.NewMockSecurityEventRepository(ctrl)
	db := mocks.NewMockSecurityEventRepository(ctrl)
	svc := NewSecurityEventService(newTestLogger(), file, db)

	var seen *domain.SecurityEvent
	file.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.SecurityEvent) error {
			seen = e
			return nil
		},
	)
	db.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	svc.Record(context.Background(), domain.EventHardwareMismatch, map[string]any{"matchScore": 0.6})

	if assert.NotNil(t, seen) {
		assert.Equal(t, domain.EventHardwareMismatch, seen.Type)
		assert.Equal(t, 0.6, seen.Details["matchScore"])
		assert.False(t, seen.CreatedAt.IsZero())
	}
}

func TestSecurityEventService_Record_SinkFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockSecurityEventRepository(ctrl)
	next := mocks.NewMockSecurityEventRepository(ctrl)
	svc := NewSecurityEventService(newTestLogger(), failing, next)

	failing.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	next.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

	svc.Record(context.Background(), domain.EventVMCloneDetected, nil)
}

func TestSecurityEventService_Record_NoSinks(t *testing.T) {
	svc := NewSecurityEventService(newTestLogger())

	// Should not panic
	svc.Record(context.Background(), domain.EventVMDetected, map[string]any{"confidence": 100})
}
