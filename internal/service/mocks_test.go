package service

import (
	"context"
	"time"

	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/schema"
	"github.com/stretchr/testify/mock"
)

// MockWorkspaceRepository mocks the WorkspaceRepository interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) GetBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) Activate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIntakeStore mocks the IntakeStore interface. WithinTx runs fn against the mock itself.
type MockIntakeStore struct {
	mock.Mock
}

func (m *MockIntakeStore) CreateContact(ctx context.Context, contact *domain.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockIntakeStore) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockIntakeStore) CreateConversation(ctx context.Context, conversation *domain.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *MockIntakeStore) AppendMessages(ctx context.Context, messages []domain.Message) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}

func (m *MockIntakeStore) UpdateConversation(ctx context.Context, conversationID string, lastMessageAt time.Time, pause bool) error {
	args := m.Called(ctx, conversationID, lastMessageAt, pause)
	return args.Error(0)
}

func (m *MockIntakeStore) WithinTx(ctx context.Context, fn func(store domain.IntakeStore) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

// MockConversationRepository mocks the ConversationRepository interface
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.ConversationSummary, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.ConversationSummary), args.Error(1)
}

func (m *MockConversationRepository) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID)
	return args.Get(0).([]domain.Message), args.Error(1)
}

// MockBookingRepository mocks the BookingRepository interface
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.BookingListItem, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.BookingListItem), args.Error(1)
}

// MockInventoryRepository mocks the InventoryRepository interface
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockDashboardRepository mocks the DashboardRepository interface
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) CountContacts(ctx context.Context, workspaceID string) (int64, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDashboardRepository) ListBookingStarts(ctx context.Context, workspaceID string) ([]time.Time, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockDashboardRepository) ListStockLevels(ctx context.Context, workspaceID string) ([]domain.StockLevel, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.StockLevel), args.Error(1)
}

func (m *MockDashboardRepository) LatestDirections(ctx context.Context, workspaceID string) ([]domain.Direction, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.Direction), args.Error(1)
}

// MockNotifier mocks the Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockCapabilityLoader mocks the CapabilityLoader interface
type MockCapabilityLoader struct {
	mock.Mock
}

func (m *MockCapabilityLoader) Load(ctx context.Context, tables []string) (*schema.Capabilities, error) {
	args := m.Called(ctx, tables)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schema.Capabilities), args.Error(1)
}

// MockCapabilityCache mocks the CapabilityCache interface
type MockCapabilityCache struct {
	mock.Mock
}

func (m *MockCapabilityCache) Get(ctx context.Context) (*schema.Capabilities, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schema.Capabilities), args.Error(1)
}

func (m *MockCapabilityCache) Set(ctx context.Context, caps *schema.Capabilities) error {
	args := m.Called(ctx, caps)
	return args.Error(0)
}
