package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rrens/careops/internal/api/handler"
	"github.com/Rrens/careops/internal/api/middleware"
	"github.com/Rrens/careops/internal/config"
	"github.com/Rrens/careops/internal/domain"
	"github.com/Rrens/careops/internal/security"
	"github.com/Rrens/careops/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkspaces struct {
	bySlug map[string]*domain.Workspace
}

func (f *fakeWorkspaces) Create(ctx context.Context, workspace *domain.Workspace) error {
	f.bySlug[workspace.Slug] = workspace
	return nil
}

func (f *fakeWorkspaces) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	for _, ws := range f.bySlug {
		if ws.ID == id {
			return ws, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkspaces) GetBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	return f.bySlug[slug], nil
}

func (f *fakeWorkspaces) Activate(ctx context.Context, id string) error {
	return nil
}

type fakeStore struct {
	contacts      []*domain.Contact
	bookings      []*domain.Booking
	conversations []*domain.Conversation
	messages      []domain.Message
	err           error
}

func (f *fakeStore) CreateContact(ctx context.Context, contact *domain.Contact) error {
	if f.err != nil {
		return f.err
	}
	f.contacts = append(f.contacts, contact)
	return nil
}

func (f *fakeStore) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeStore) CreateConversation(ctx context.Context, conversation *domain.Conversation) error {
	f.conversations = append(f.conversations, conversation)
	return nil
}

func (f *fakeStore) AppendMessages(ctx context.Context, messages []domain.Message) error {
	f.messages = append(f.messages, messages...)
	return nil
}

func (f *fakeStore) UpdateConversation(ctx context.Context, conversationID string, lastMessageAt time.Time, pause bool) error {
	return nil
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(store domain.IntakeStore) error) error {
	return fn(f)
}

type fakeDashboard struct{}

func (fakeDashboard) CountContacts(ctx context.Context, workspaceID string) (int64, error) {
	return 3, nil
}

func (fakeDashboard) ListBookingStarts(ctx context.Context, workspaceID string) ([]time.Time, error) {
	return nil, nil
}

func (fakeDashboard) ListStockLevels(ctx context.Context, workspaceID string) ([]domain.StockLevel, error) {
	return []domain.StockLevel{{Quantity: 2, LowThreshold: 5}}, nil
}

func (fakeDashboard) LatestDirections(ctx context.Context, workspaceID string) ([]domain.Direction, error) {
	return []domain.Direction{domain.DirectionIn, domain.DirectionOut}, nil
}

type testServer struct {
	router http.Handler
	store  *fakeStore
	tokens *security.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	workspaces := &fakeWorkspaces{bySlug: map[string]*domain.Workspace{
		"glow-clinic": {ID: "ws-1", Slug: "glow-clinic", Name: "Glow Clinic", Timezone: "UTC"},
	}}
	store := &fakeStore{}
	notifier := service.NewLogNotifier()
	tokens := security.NewTokenManager("handler-test-secret", time.Hour)
	intakeCfg := config.IntakeConfig{
		DefaultTimezone: "UTC",
		DefaultService:  "Consultation",
		DefaultChannel:  "email",
		WelcomeMessage:  "Welcome!",
		IntakeReminder:  "Please complete the intake form before your visit.",
	}

	intake := service.NewIntakeService(service.NewWorkspaceResolver(workspaces), store, notifier, intakeCfg)
	publicHandler := handler.NewPublicHandler(intake)
	notifyHandler := handler.NewNotifyHandler(notifier)
	dashboardHandler := handler.NewDashboardHandler(service.NewDashboardService(fakeDashboard{}, workspaces, "UTC"))
	auth := middleware.NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	r.Post("/api/public/contact", publicHandler.Contact)
	r.Post("/api/public/book", publicHandler.Book)
	r.Post("/api/webhook", notifyHandler.Webhook)
	r.Post("/api/send-email", notifyHandler.SendEmail)
	r.Get("/api/v1/health", handler.HealthCheck)
	r.With(auth.Authenticate).Get("/api/v1/dashboard", dashboardHandler.Stats)

	return &testServer{router: r, store: store, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, body string, header http.Header) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	return rec, decoded
}

func TestPublicHandler_Contact(t *testing.T) {
	srv := newTestServer(t)

	rec, body := srv.do(t, http.MethodPost, "/api/public/contact",
		`{"ws":"glow-clinic","name":"Ana","emailOrPhone":"ana@example.com","message":"Hi"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.NotContains(t, body, "error")
	require.Len(t, srv.store.contacts, 1)
	assert.Equal(t, "ws-1", srv.store.contacts[0].WorkspaceID)
	assert.Equal(t, "ana@example.com", srv.store.contacts[0].Email)
	require.Len(t, srv.store.messages, 1)
	assert.Equal(t, "Welcome!", srv.store.messages[0].Body)
}

func TestPublicHandler_ContactFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		message string
	}{
		{"malformed json", `{"ws":`, "Invalid request payload."},
		{"unknown slug", `{"ws":"nope","name":"Ana","emailOrPhone":"ana@example.com"}`, "Workspace not found for this public link."},
		{"missing fields", `{"wid":"ws-1","name":"  "}`, "Name and email/phone are required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)

			rec, body := srv.do(t, http.MethodPost, "/api/public/contact", tt.payload, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.message, body["error"])
			assert.Empty(t, srv.store.contacts)
		})
	}
}

func TestPublicHandler_ContactRepeatedSubmissionCreatesNewRows(t *testing.T) {
	srv := newTestServer(t)
	payload := `{"wid":"ws-1","name":"Ana","emailOrPhone":"ana@example.com","message":"Hi"}`

	for i := 0; i < 2; i++ {
		rec, body := srv.do(t, http.MethodPost, "/api/public/contact", payload, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, true, body["ok"])
	}

	require.Len(t, srv.store.contacts, 2)
	assert.NotEqual(t, srv.store.contacts[0].ID, srv.store.contacts[1].ID)
	require.Len(t, srv.store.conversations, 2)
	assert.NotEqual(t, srv.store.conversations[0].ID, srv.store.conversations[1].ID)
	assert.Equal(t, srv.store.contacts[1].ID, srv.store.conversations[1].ContactID)
	require.Len(t, srv.store.messages, 2)
	for _, m := range srv.store.messages {
		assert.Equal(t, "Welcome!", m.Body)
	}
	assert.NotEqual(t, srv.store.messages[0].ConversationID, srv.store.messages[1].ConversationID)
}

func TestPublicHandler_ContactStoreError(t *testing.T) {
	srv := newTestServer(t)
	srv.store.err = errors.New(`null value in column "name" violates not-null constraint`)

	rec, body := srv.do(t, http.MethodPost, "/api/public/contact",
		`{"wid":"ws-1","name":"Ana","emailOrPhone":"+15550100"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], "violates not-null constraint")
}

func TestPublicHandler_Book(t *testing.T) {
	srv := newTestServer(t)

	rec, body := srv.do(t, http.MethodPost, "/api/public/book",
		`{"wid":"ws-1","name":"Ana","email":"ana@example.com","startAt":"2026-03-01T10:00"}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	require.Len(t, srv.store.bookings, 1)
	assert.Equal(t, srv.store.bookings[0].ID, body["bookingId"])
	assert.Equal(t, "Consultation", srv.store.bookings[0].ServiceName)
	require.Len(t, srv.store.messages, 2)
	assert.True(t, strings.HasPrefix(srv.store.messages[0].Body, "Booking confirmed for Consultation at"))
}

func TestPublicHandler_BookFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		message string
	}{
		{"malformed json", `{"wid":`, "Invalid request payload."},
		{"unknown slug", `{"ws":"nope","name":"Ana","email":"ana@example.com","startAt":"2026-03-01T10:00"}`, "Workspace not found for this booking link."},
		{"missing name", `{"wid":"ws-1","email":"ana@example.com","startAt":"2026-03-01T10:00"}`, "Name, email, and booking date/time are required."},
		{"blank start", `{"wid":"ws-1","name":"Ana","email":"ana@example.com","startAt":" "}`, "Name, email, and booking date/time are required."},
		{"invalid date", `{"wid":"ws-1","name":"Ana","email":"ana@example.com","startAt":"next tuesday"}`, "Invalid booking date/time."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)

			rec, body := srv.do(t, http.MethodPost, "/api/public/book", tt.payload, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tt.message, body["error"])
			assert.NotContains(t, body, "bookingId")
			assert.Empty(t, srv.store.contacts)
			assert.Empty(t, srv.store.bookings)
		})
	}
}

func TestNotifyHandler(t *testing.T) {
	srv := newTestServer(t)

	rec, body := srv.do(t, http.MethodPost, "/api/webhook", `{"event":"ping","n":1}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, map[string]any{"event": "ping", "n": float64(1)}, body["received"])

	rec, body = srv.do(t, http.MethodPost, "/api/send-email", `{"to":"ana@example.com"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"ok": true}, body)
}

func TestDashboardHandler_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rec, body := srv.do(t, http.MethodGet, "/api/v1/dashboard", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, body["ok"])
}

func TestDashboardHandler_Stats(t *testing.T) {
	srv := newTestServer(t)
	token, err := srv.tokens.Generate("ws-1", "glow-clinic")
	require.NoError(t, err)

	header := http.Header{"Authorization": []string{"Bearer " + token}}
	rec, body := srv.do(t, http.MethodGet, "/api/v1/dashboard?tz=UTC", "", header)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["newInquiries"])
	assert.Equal(t, float64(1), data["lowStock"])
	assert.Equal(t, float64(1), data["unanswered"])
	assert.Equal(t, float64(2), data["criticalAlerts"])
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	rec, body := srv.do(t, http.MethodGet, "/api/v1/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, map[string]any{"status": "ok"}, body["data"])
}
