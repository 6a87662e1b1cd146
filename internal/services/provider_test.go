package services

import (
	"context"
	"fmt"
	"time"

	"luxe-storefront/internal/payments"
)

// fakeProvider is an in-memory payment provider for tests.
type fakeProvider struct {
	sessions  map[string]*payments.Session
	created   []payments.CreateSessionParams
	createErr error
	getErr    error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{sessions: make(map[string]*payments.Session)}
}

func (f *fakeProvider) CreateSession(ctx context.Context, params payments.CreateSessionParams) (*payments.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, params)

	session := &payments.Session{
		ID:            fmt.Sprintf("cs_test_%d", len(f.created)),
		URL:           "https://checkout.example.com/pay",
		Status:        "open",
		PaymentStatus: payments.PaymentStatusUnpaid,
		CreatedAt:     time.Now(),
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeProvider) GetSession(ctx context.Context, id string) (*payments.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	session, exists := f.sessions[id]
	if !exists {
		return nil, payments.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

// addSession seeds a session with a given payment status.
func (f *fakeProvider) addSession(id, paymentStatus string) *payments.Session {
	session := &payments.Session{
		ID:            id,
		Status:        "complete",
		PaymentStatus: paymentStatus,
		AmountTotal:   266430,
		Currency:      "usd",
		CreatedAt:     time.Now(),
	}
	f.sessions[id] = session
	return session
}
