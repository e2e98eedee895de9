package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/document"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/plan"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/setting"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/subscription"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/usage"
	"github.com/Lazycharm/Careerpilot-sub001/internal/domain/user"
	"github.com/Lazycharm/Careerpilot-sub001/internal/pkg/errors"
)

// MockUserRepository is a mock implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	u.ID = m.NextID
	m.NextID++
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	return u, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Users[u.ID]; !ok {
		return errors.NotFound("User")
	}
	m.Users[u.ID] = u
	m.EmailIndex[u.Email] = u
	return nil
}

// MockSettingRepository is a mock implementation of setting.Repository
type MockSettingRepository struct {
	Settings    map[string]*setting.Setting
	GetError    error
	UpsertError error
	GetCalls    int
}

func NewMockSettingRepository() *MockSettingRepository {
	return &MockSettingRepository{
		Settings: make(map[string]*setting.Setting),
	}
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (*setting.Setting, error) {
	m.GetCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	s, ok := m.Settings[key]
	if !ok {
		return nil, errors.NotFound("Setting")
	}
	return s, nil
}

func (m *MockSettingRepository) Upsert(ctx context.Context, s *setting.Setting) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.Settings[s.Key] = s
	return nil
}

func (m *MockSettingRepository) List(ctx context.Context) ([]*setting.Setting, error) {
	var out []*setting.Setting
	for _, s := range m.Settings {
		out = append(out, s)
	}
	return out, nil
}

// Seed stores a raw key/value pair, bypassing the service layer
func (m *MockSettingRepository) Seed(key, value string) {
	m.Settings[key] = &setting.Setting{Key: key, Value: value, UpdatedAt: time.Now()}
}

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	Subscriptions map[int64][]*subscription.Subscription
	NextID        int64
	GetError      error
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		Subscriptions: make(map[int64][]*subscription.Subscription),
		NextID:        1,
	}
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	sub.ID = m.NextID
	m.NextID++
	m.Subscriptions[sub.UserID] = append(m.Subscriptions[sub.UserID], sub)
	return nil
}

func (m *MockSubscriptionRepository) GetCurrent(ctx context.Context, userID int64, now time.Time) (*subscription.Subscription, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var current *subscription.Subscription
	for _, sub := range m.Subscriptions[userID] {
		if !sub.CurrentAt(now) || sub.StartDate.After(now) {
			continue
		}
		if current == nil || sub.StartDate.After(current.StartDate) {
			current = sub
		}
	}
	if current == nil {
		return nil, errors.NotFound("Subscription")
	}
	return current, nil
}

func (m *MockSubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*subscription.Subscription, error) {
	return m.Subscriptions[userID], nil
}

// SeedPlan gives a user an open-ended active subscription on a plan
func (m *MockSubscriptionRepository) SeedPlan(userID int64, planType plan.Type) {
	m.Subscriptions[userID] = append(m.Subscriptions[userID], &subscription.Subscription{
		ID:        m.NextID,
		UserID:    userID,
		PlanType:  planType,
		Status:    subscription.StatusActive,
		StartDate: time.Time{},
	})
	m.NextID++
}

type usageKey struct {
	UserID int64
	Month  int
	Year   int
}

// MockUsageRepository is a mock implementation of usage.Repository
type MockUsageRepository struct {
	Records        map[usageKey]*usage.Record
	NextID         int64
	GetError       error
	IncrementError error
	IncrementCalls int
}

func NewMockUsageRepository() *MockUsageRepository {
	return &MockUsageRepository{
		Records: make(map[usageKey]*usage.Record),
		NextID:  1,
	}
}

func (m *MockUsageRepository) GetForMonth(ctx context.Context, userID int64, month, year int) (*usage.Record, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	rec, ok := m.Records[usageKey{userID, month, year}]
	if !ok {
		return nil, errors.NotFound("Usage record")
	}
	return rec, nil
}

func (m *MockUsageRepository) IncrementCategory(ctx context.Context, userID int64, month, year int, category plan.Category) error {
	m.IncrementCalls++
	if m.IncrementError != nil {
		return m.IncrementError
	}
	key := usageKey{userID, month, year}
	rec, ok := m.Records[key]
	if !ok {
		rec = &usage.Record{ID: m.NextID, UserID: userID, Month: month, Year: year}
		m.NextID++
		m.Records[key] = rec
	}
	switch category {
	case plan.CategoryResume:
		rec.ResumesGenerated++
	case plan.CategoryCoverLetter:
		rec.CoverLettersGenerated++
	case plan.CategoryInterview:
		rec.InterviewGenerated++
	default:
		return fmt.Errorf("unknown category %q", category)
	}
	rec.UpdatedAt = time.Now()
	return nil
}

func (m *MockUsageRepository) ResetMonth(ctx context.Context, userID int64, month, year int) error {
	if rec, ok := m.Records[usageKey{userID, month, year}]; ok {
		rec.ResumesGenerated = 0
		rec.CoverLettersGenerated = 0
		rec.InterviewGenerated = 0
		rec.UpdatedAt = time.Now()
	}
	return nil
}

func (m *MockUsageRepository) ListForMonth(ctx context.Context, month, year int) ([]*usage.Record, error) {
	var out []*usage.Record
	for key, rec := range m.Records {
		if key.Month == month && key.Year == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Seed stores a pre-filled counter row
func (m *MockUsageRepository) Seed(userID int64, month, year int, resumes, coverLetters, interviews int) {
	m.Records[usageKey{userID, month, year}] = &usage.Record{
		ID:                    m.NextID,
		UserID:                userID,
		Month:                 month,
		Year:                  year,
		ResumesGenerated:      resumes,
		CoverLettersGenerated: coverLetters,
		InterviewGenerated:    interviews,
	}
	m.NextID++
}

// MockDocumentRepository is a mock implementation of document.Repository
type MockDocumentRepository struct {
	Documents   map[int64]*document.Document
	NextID      int64
	CreateError error
}

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{
		Documents: make(map[int64]*document.Document),
		NextID:    1,
	}
}

func (m *MockDocumentRepository) Create(ctx context.Context, d *document.Document) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	d.ID = m.NextID
	m.NextID++
	m.Documents[d.ID] = d
	return nil
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, userID, id int64) (*document.Document, error) {
	d, ok := m.Documents[id]
	if !ok || d.UserID != userID {
		return nil, errors.NotFound("Document")
	}
	return d, nil
}

func (m *MockDocumentRepository) Update(ctx context.Context, d *document.Document) error {
	existing, ok := m.Documents[d.ID]
	if !ok || existing.UserID != d.UserID {
		return errors.NotFound("Document")
	}
	m.Documents[d.ID] = d
	return nil
}

func (m *MockDocumentRepository) Delete(ctx context.Context, userID, id int64) error {
	d, ok := m.Documents[id]
	if !ok || d.UserID != userID {
		return errors.NotFound("Document")
	}
	delete(m.Documents, id)
	return nil
}

func (m *MockDocumentRepository) ListByUser(ctx context.Context, userID int64, kind plan.Category, limit, offset int) ([]*document.Document, int64, error) {
	var out []*document.Document
	for _, d := range m.Documents {
		if d.UserID != userID {
			continue
		}
		if kind != "" && d.Kind != kind {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

// MockTextGenerator is a canned AI completion backend for tests
type MockTextGenerator struct {
	Response string
	Err      error
	Calls    int
	// LastSystem and LastPrompt record the most recent request
	LastSystem string
	LastPrompt string
}

func (m *MockTextGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	m.Calls++
	m.LastSystem = system
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response == "" {
		return "generated text", nil
	}
	return m.Response, nil
}
