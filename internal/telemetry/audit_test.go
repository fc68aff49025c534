package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collablearn/internal/mocks"
)

func TestEmitBuildsEnvelope(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.collablearn", "collablearn", "test")

	userID := "42"
	publisher.On("Publish", mock.Anything, "audit.collablearn", mock.MatchedBy(func(event any) bool {
		envelope, ok := event.(AuditEnvelope)
		if !ok {
			return false
		}
		return envelope.SchemaVersion == 1 &&
			envelope.EventType == "audit_log" &&
			envelope.Service == "collablearn" &&
			envelope.Environment == "test" &&
			envelope.RequestID == "req-1" &&
			envelope.UserID != nil && *envelope.UserID == "42" &&
			envelope.Payload.Level == "WARN" &&
			envelope.Payload.Text == "user deleted" &&
			envelope.OccurredAt != ""
	})).Return(nil).Once()

	emitter.Emit(context.Background(), "WARN", "user deleted", "req-1", &userID)

	publisher.AssertExpectations(t)
}

func TestEmitSwallowsPublishError(t *testing.T) {
	publisher := new(mocks.PublisherMock)
	emitter := NewAuditEmitter(publisher, "audit.collablearn", "collablearn", "test")

	publisher.On("Publish", mock.Anything, "audit.collablearn", mock.Anything).
		Return(assert.AnError).Once()

	require.NotPanics(t, func() {
		emitter.Emit(context.Background(), "INFO", "settings updated", "req-2", nil)
	})
	publisher.AssertExpectations(t)
}

func TestEmitNoopWithoutPublisher(t *testing.T) {
	publisher := new(mocks.PublisherMock)

	var nilEmitter *AuditEmitter
	require.NotPanics(t, func() {
		nilEmitter.Emit(context.Background(), "INFO", "ignored", "req-3", nil)
	})

	emitter := NewAuditEmitter(nil, "audit.collablearn", "collablearn", "test")
	emitter.Emit(context.Background(), "INFO", "ignored", "req-3", nil)

	publisher.AssertNotCalled(t, "Publish")
}
