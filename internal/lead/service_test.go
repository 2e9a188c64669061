package lead

import (
	"context"
	"errors"
	"testing"

	"edenstone/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SendCallback(ctx context.Context, req CallbackRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyLead(ctx context.Context, req CallbackRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// --- Tests ---

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	form := Form{Phone: "89000000000", Email: "a@b.ru", Bath: true, Consent: true}

	t.Run("Success", func(t *testing.T) {
		gw := new(MockGateway)
		n := new(MockNotifier)
		svc := NewService(gw, n)
		gw.On("SendCallback", ctx, form.Request()).Return(nil)
		n.On("NotifyLead", ctx, form.Request()).Return(nil)

		before := metrics.LeadsSubmitted.Load()
		assert.NoError(t, svc.Submit(ctx, form))
		assert.Equal(t, before+1, metrics.LeadsSubmitted.Load())
		gw.AssertExpectations(t)
		n.AssertExpectations(t)
	})

	t.Run("ValidationErrorSendsNothing", func(t *testing.T) {
		gw := new(MockGateway)
		svc := NewService(gw, nil)

		before := metrics.LeadsRejected.Load()
		err := svc.Submit(ctx, Form{Phone: " ", Consent: true})
		assert.ErrorIs(t, err, ErrPhoneRequired)
		assert.Equal(t, before+1, metrics.LeadsRejected.Load())
		gw.AssertNotCalled(t, "SendCallback", mock.Anything, mock.Anything)
	})

	t.Run("GatewayError", func(t *testing.T) {
		gw := new(MockGateway)
		n := new(MockNotifier)
		svc := NewService(gw, n)
		gw.On("SendCallback", ctx, form.Request()).Return(&StatusError{Code: 503})

		err := svc.Submit(ctx, form)
		assert.ErrorIs(t, err, ErrSubmitFailed)
		var se *StatusError
		assert.ErrorAs(t, err, &se)
		gw.AssertNumberOfCalls(t, "SendCallback", 1)
		n.AssertNotCalled(t, "NotifyLead", mock.Anything, mock.Anything)
	})

	t.Run("NotifierErrorIgnored", func(t *testing.T) {
		gw := new(MockGateway)
		n := new(MockNotifier)
		svc := NewService(gw, n)
		gw.On("SendCallback", ctx, form.Request()).Return(nil)
		n.On("NotifyLead", ctx, form.Request()).Return(errors.New("smtp down"))

		assert.NoError(t, svc.Submit(ctx, form))
		n.AssertExpectations(t)
	})
}
