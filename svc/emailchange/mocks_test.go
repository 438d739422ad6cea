package emailchange_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tendus-stephan/coreflowhr/pkg/email"
	"github.com/tendus-stephan/coreflowhr/svc/emailchange"
)

type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (emailchange.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(emailchange.User), args.Error(1)
}

func (m *MockUserStorage) GetUserByEmail(ctx context.Context, addr string) (emailchange.User, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(emailchange.User), args.Error(1)
}

func (m *MockUserStorage) ApplyEmailChange(ctx context.Context, rec emailchange.ChangeRecord) (emailchange.User, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(emailchange.User), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Consume(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, id, ttl)
	return args.Bool(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// memStorage is an in-memory UserStorage with the same conditional update
// semantics as PGStorage.
type memStorage struct {
	mu      sync.Mutex
	users   map[uuid.UUID]emailchange.User
	records []emailchange.ChangeRecord
}

func newMemStorage(users ...emailchange.User) *memStorage {
	s := &memStorage{users: make(map[uuid.UUID]emailchange.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memStorage) GetUserByID(_ context.Context, id uuid.UUID) (emailchange.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return emailchange.User{}, emailchange.ErrUserNotFound
	}
	return u, nil
}

func (s *memStorage) GetUserByEmail(_ context.Context, addr string) (emailchange.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, addr) {
			return u, nil
		}
	}
	return emailchange.User{}, emailchange.ErrUserNotFound
}

func (s *memStorage) ApplyEmailChange(_ context.Context, rec emailchange.ChangeRecord) (emailchange.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[rec.UserID]
	if !ok || !strings.EqualFold(u.Email, rec.OldEmail) {
		return emailchange.User{}, emailchange.ErrStaleRequest
	}
	for _, r := range s.records {
		if r.TokenID == rec.TokenID {
			return emailchange.User{}, emailchange.ErrLinkUsed
		}
	}
	u.Email = rec.NewEmail
	u.UpdatedAt = rec.ConfirmedAt
	s.users[u.ID] = u
	s.records = append(s.records, rec)
	return u, nil
}

type memLedger struct {
	mu   sync.Mutex
	used map[string]time.Duration
}

func newMemLedger() *memLedger { return &memLedger{used: make(map[string]time.Duration)} }

func (l *memLedger) Consume(_ context.Context, id string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.used[id]; ok {
		return false, nil
	}
	l.used[id] = ttl
	return true, nil
}

type outbox struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (o *outbox) SendEmail(_ context.Context, p email.SendEmailParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, p)
	return nil
}

func (o *outbox) last() email.SendEmailParams {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sent[len(o.sent)-1]
}
