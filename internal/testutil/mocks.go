package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
	"github.com/Rdevang/Smart-Split-sub004/internal/lock"
	"github.com/google/uuid"
)

// MockSettlementRepository is a mock implementation of domain.SettlementRepository
type MockSettlementRepository struct {
	Records  map[uuid.UUID]*domain.SettlementRecord
	ByKey    map[string]uuid.UUID // idempotency key -> record id
	InsertFn func(record *domain.SettlementRecord, idempotencyKey string) (*domain.SettlementRecord, bool, error)
	Inserts  int
}

// NewMockSettlementRepository creates a new MockSettlementRepository
func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{
		Records: make(map[uuid.UUID]*domain.SettlementRecord),
		ByKey:   make(map[string]uuid.UUID),
	}
}

// Insert creates a settlement record, honoring idempotency keys
func (m *MockSettlementRepository) Insert(ctx context.Context, record *domain.SettlementRecord, idempotencyKey string) (*domain.SettlementRecord, bool, error) {
	if m.InsertFn != nil {
		return m.InsertFn(record, idempotencyKey)
	}
	if idempotencyKey != "" {
		if id, ok := m.ByKey[idempotencyKey]; ok {
			return m.Records[id], false, nil
		}
	}
	m.Inserts++
	stored := *record
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	m.Records[stored.ID] = &stored
	if idempotencyKey != "" {
		m.ByKey[idempotencyKey] = stored.ID
	}
	return &stored, true, nil
}

// GetByID retrieves a settlement record by ID
func (m *MockSettlementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SettlementRecord, error) {
	if record, ok := m.Records[id]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, domain.ErrSettlementNotFound
}

// UpdateStatus transitions a settlement record's status
func (m *MockSettlementRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SettlementStatus, settledAt *time.Time) (*domain.SettlementRecord, error) {
	record, ok := m.Records[id]
	if !ok {
		return nil, domain.ErrSettlementNotFound
	}
	record.Status = status
	record.SettledAt = settledAt
	copied := *record
	return &copied, nil
}

// AddRecord adds a settlement record to the mock repository (helper for tests)
func (m *MockSettlementRepository) AddRecord(record *domain.SettlementRecord) {
	m.Records[record.ID] = record
}

// MockMemberRepository is a mock implementation of domain.MemberRepository
type MockMemberRepository struct {
	Roles            map[string]domain.GroupRole // groupID/userID -> role
	Names            map[uuid.UUID]string
	GetDisplayNameFn func(ref domain.PartyRef) (string, error)
}

// NewMockMemberRepository creates a new MockMemberRepository
func NewMockMemberRepository() *MockMemberRepository {
	return &MockMemberRepository{
		Roles: make(map[string]domain.GroupRole),
		Names: make(map[uuid.UUID]string),
	}
}

// AddMember registers a member of a group (helper for tests)
func (m *MockMemberRepository) AddMember(groupID, userID uuid.UUID, role domain.GroupRole) {
	m.Roles[groupID.String()+"/"+userID.String()] = role
}

// SetName registers a display name (helper for tests)
func (m *MockMemberRepository) SetName(id uuid.UUID, name string) {
	m.Names[id] = name
}

// GetRole returns the member's role in the group
func (m *MockMemberRepository) GetRole(ctx context.Context, groupID, userID uuid.UUID) (domain.GroupRole, error) {
	if role, ok := m.Roles[groupID.String()+"/"+userID.String()]; ok {
		return role, nil
	}
	return "", domain.ErrMemberNotFound
}

// GetDisplayName resolves a party to a display name
func (m *MockMemberRepository) GetDisplayName(ctx context.Context, ref domain.PartyRef) (string, error) {
	if m.GetDisplayNameFn != nil {
		return m.GetDisplayNameFn(ref)
	}
	if name, ok := m.Names[ref.ID]; ok {
		return name, nil
	}
	return "", domain.ErrMemberNotFound
}

// MockLocker is an in-memory lock.Locker for tests
type MockLocker struct {
	mu         sync.Mutex
	held       map[string]bool
	Acquired   []string
	Released   []string
	AcquireErr error
}

// NewMockLocker creates a new MockLocker
func NewMockLocker() *MockLocker {
	return &MockLocker{held: make(map[string]bool)}
}

// Acquire takes the lock once, failing fast when it is already held
func (m *MockLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (lock.Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AcquireErr != nil {
		return nil, m.AcquireErr
	}
	if m.held[key] {
		return nil, lock.ErrAlreadyHeld
	}
	m.held[key] = true
	m.Acquired = append(m.Acquired, key)
	return &mockHandle{locker: m, key: key}, nil
}

// Hold marks a key as held by another process (helper for tests)
func (m *MockLocker) Hold(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[key] = true
}

type mockHandle struct {
	locker *MockLocker
	key    string
}

func (h *mockHandle) Release(ctx context.Context) error {
	h.locker.mu.Lock()
	defer h.locker.mu.Unlock()
	delete(h.locker.held, h.key)
	h.locker.Released = append(h.locker.Released, h.key)
	return nil
}

// MockInvalidator records cache invalidation signals
type MockInvalidator struct {
	mu    sync.Mutex
	Calls []InvalidationCall
}

// InvalidationCall captures one invalidation signal
type InvalidationCall struct {
	GroupID   uuid.UUID
	MemberIDs []uuid.UUID
}

// NewMockInvalidator creates a new MockInvalidator
func NewMockInvalidator() *MockInvalidator {
	return &MockInvalidator{}
}

// InvalidateBalances records the signal
func (m *MockInvalidator) InvalidateBalances(ctx context.Context, groupID uuid.UUID, memberIDs ...uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, InvalidationCall{GroupID: groupID, MemberIDs: memberIDs})
}

// MockRateLimiter is a configurable rate limiter for tests
type MockRateLimiter struct {
	Denied     bool
	RetryAfter time.Duration
	Checked    []string
}

// NewMockRateLimiter creates a permissive MockRateLimiter
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

// Allow applies the configured decision
func (m *MockRateLimiter) Allow(key string) (bool, time.Duration) {
	m.Checked = append(m.Checked, key)
	if m.Denied {
		return false, m.RetryAfter
	}
	return true, 0
}
