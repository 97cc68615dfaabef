package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/atlaslogistics/shipment-tracking/internal/adapters/http"
	"github.com/atlaslogistics/shipment-tracking/internal/adapters/memory"
	"github.com/atlaslogistics/shipment-tracking/internal/adapters/security"
	"github.com/atlaslogistics/shipment-tracking/internal/application"
	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrUnauthorized
	}
	return nil
}

type noopNotifier struct{}

func (noopNotifier) SendStatusUpdate(_ context.Context, _ ports.StatusNotification) error {
	return nil
}

type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string) ([]byte, bool, error) { return nil, false, nil }

func (noopCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }

func (noopCache) Invalidate(_ context.Context, _ string) error { return nil }

type testServer struct {
	*httptest.Server
	signer *security.JWTSigner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	signer, err := security.NewEphemeralJWTSigner("test-key-1")
	if err != nil {
		t.Fatalf("NewEphemeralJWTSigner: %v", err)
	}
	repos := memory.NewRepositories()
	svc := application.NewService(application.Dependencies{
		Shipments: repos.Shipments,
		Events:    repos.Events,
		Messages:  repos.Messages,
		AuditLogs: repos.Audit,
		Admins:    repos.Admins,
		Hasher:    fakeHasher{},
		Signer:    signer,
		Notifier:  noopNotifier{},
		Cache:     noopCache{},
	})
	router := httpadapter.NewRouter(httpadapter.NewHandler(svc, signer))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, signer: signer}
}

func (s *testServer) tokenFor(t *testing.T, adminID, email string, role domain.AdminRole) string {
	t.Helper()
	token, err := s.signer.Sign(ports.AuthClaims{
		AdminID: adminID,
		Email:   email,
		Name:    "Test Admin",
		Role:    string(role),
	}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var envelope map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp, envelope
}

func dataObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()
	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("data is not an object: %v", envelope["data"])
	}
	return data
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, envelope := srv.do(t, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", path, resp.StatusCode)
		}
		if envelope["status"] != "success" {
			t.Fatalf("%s envelope = %v", path, envelope)
		}
	}
}

func TestSetupAndLogin(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := srv.do(t, http.MethodPost, "/v1/setup", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("setup status = %d", resp.StatusCode)
	}

	resp, envelope := srv.do(t, http.MethodPost, "/auth/v1/login", "", map[string]string{
		"email":    "super@admin.com",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, envelope = %v", resp.StatusCode, envelope)
	}
	data := dataObject(t, envelope)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}

	// The issued token must be accepted by the auth middleware.
	resp, _ = srv.do(t, http.MethodGet, "/v1/shipments", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("authenticated list status = %d", resp.StatusCode)
	}

	resp, envelope = srv.do(t, http.MethodPost, "/auth/v1/login", "", map[string]string{
		"email":    "super@admin.com",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d", resp.StatusCode)
	}
	if envelope["code"] != "UNAUTHORIZED" {
		t.Fatalf("bad login code = %v", envelope["code"])
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := srv.do(t, http.MethodGet, "/v1/shipments", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if envelope["status"] != "error" || envelope["code"] != "UNAUTHORIZED" {
		t.Fatalf("envelope = %v", envelope)
	}
	nested, ok := envelope["error"].(map[string]any)
	if !ok || nested["code"] != "UNAUTHORIZED" {
		t.Fatalf("nested error payload = %v", envelope["error"])
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("missing X-Request-Id header")
	}

	resp, _ = srv.do(t, http.MethodGet, "/v1/shipments", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", resp.StatusCode)
	}
}

func TestShipmentLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := srv.tokenFor(t, "adm_http", "http@demo.com", domain.RoleAdmin)

	resp, envelope := srv.do(t, http.MethodPost, "/v1/shipments", token, map[string]any{
		"origin":      "Madrid",
		"destination": "Lisbon",
		"image_urls":  []string{"https://img.example/box.jpg"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, envelope = %v", resp.StatusCode, envelope)
	}
	created := dataObject(t, envelope)
	shipmentID, _ := created["shipment_id"].(string)
	trackingNumber, _ := created["tracking_number"].(string)
	if shipmentID == "" || trackingNumber == "" {
		t.Fatalf("create payload incomplete: %v", created)
	}
	if created["status"] != "PENDING" {
		t.Fatalf("created status = %v, want PENDING", created["status"])
	}

	resp, envelope = srv.do(t, http.MethodPost, "/v1/shipments/"+shipmentID+"/events", token, map[string]string{
		"status":   "IN_TRANSIT",
		"location": "Badajoz",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create event status = %d, envelope = %v", resp.StatusCode, envelope)
	}

	resp, envelope = srv.do(t, http.MethodGet, "/v1/tracking/"+trackingNumber, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("tracking status = %d", resp.StatusCode)
	}
	view := dataObject(t, envelope)
	shipment, _ := view["shipment"].(map[string]any)
	if shipment == nil || shipment["status"] != "IN_TRANSIT" {
		t.Fatalf("tracked shipment = %v", view["shipment"])
	}
	if progress, _ := view["progress"].(float64); progress != 50 {
		t.Fatalf("progress = %v, want 50", view["progress"])
	}
	events, _ := view["events"].([]any)
	if len(events) != 2 {
		t.Fatalf("tracked events = %d, want 2", len(events))
	}

	resp, _ = srv.do(t, http.MethodDelete, "/v1/shipments/"+shipmentID, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, envelope = srv.do(t, http.MethodGet, "/v1/tracking/"+trackingNumber, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("tracking after delete status = %d", resp.StatusCode)
	}
	if envelope["code"] != "NOT_FOUND" {
		t.Fatalf("tracking after delete code = %v", envelope["code"])
	}
}

func TestCreateEventValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := srv.tokenFor(t, "adm_http", "http@demo.com", domain.RoleAdmin)

	_, envelope := srv.do(t, http.MethodPost, "/v1/shipments", token, map[string]string{"origin": "Rome"})
	shipmentID := dataObject(t, envelope)["shipment_id"].(string)

	resp, envelope := srv.do(t, http.MethodPost, "/v1/shipments/"+shipmentID+"/events", token, map[string]string{
		"status": "WARPED",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if envelope["code"] != "VALIDATION_ERROR" {
		t.Fatalf("code = %v", envelope["code"])
	}

	resp, _ = srv.do(t, http.MethodPost, "/v1/shipments/"+shipmentID+"/events", token, map[string]string{
		"status":   "IN_TRANSIT",
		"latitude": "not-a-number",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad latitude status = %d, want 400", resp.StatusCode)
	}
}

func TestMessagesDeriveSenderOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := srv.tokenFor(t, "adm_http", "http@demo.com", domain.RoleAdmin)

	_, envelope := srv.do(t, http.MethodPost, "/v1/shipments", token, map[string]string{"origin": "Bern"})
	shipmentID := dataObject(t, envelope)["shipment_id"].(string)

	// An anonymous caller posts as CLIENT even when the payload claims ADMIN.
	resp, envelope := srv.do(t, http.MethodPost, "/v1/shipments/"+shipmentID+"/messages", "", map[string]string{
		"content": "is it there yet",
		"sender":  "ADMIN",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("client post status = %d, envelope = %v", resp.StatusCode, envelope)
	}
	if dataObject(t, envelope)["sender"] != "CLIENT" {
		t.Fatalf("anonymous sender = %v, want CLIENT", dataObject(t, envelope)["sender"])
	}

	resp, envelope = srv.do(t, http.MethodPost, "/v1/shipments/"+shipmentID+"/messages", token, map[string]string{
		"content": "almost",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin post status = %d", resp.StatusCode)
	}
	if dataObject(t, envelope)["sender"] != "ADMIN" {
		t.Fatalf("admin sender = %v, want ADMIN", dataObject(t, envelope)["sender"])
	}

	// The thread is readable without credentials.
	resp, envelope = srv.do(t, http.MethodGet, "/v1/shipments/"+shipmentID+"/messages", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	messages, _ := envelope["data"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}

	// Marking read requires auth and reports how many flipped.
	resp, _ = srv.do(t, http.MethodPost, "/v1/shipments/"+shipmentID+"/messages/read", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous mark read status = %d, want 401", resp.StatusCode)
	}
	resp, envelope = srv.do(t, http.MethodPost, "/v1/shipments/"+shipmentID+"/messages/read", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark read status = %d", resp.StatusCode)
	}
	if marked, _ := dataObject(t, envelope)["marked"].(float64); marked != 1 {
		t.Fatalf("marked = %v, want 1", dataObject(t, envelope)["marked"])
	}
}

func TestAdminEndpointsRequireSuperAdmin(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.tokenFor(t, "adm_plain", "plain@demo.com", domain.RoleAdmin)
	superToken := srv.tokenFor(t, "adm_root", "root@demo.com", domain.RoleSuperAdmin)

	resp, envelope := srv.do(t, http.MethodPost, "/v1/admins", adminToken, map[string]string{
		"email":    "new@demo.com",
		"password": "secret",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("non-super status = %d, want 403", resp.StatusCode)
	}
	if envelope["code"] != "FORBIDDEN" {
		t.Fatalf("code = %v", envelope["code"])
	}

	resp, envelope = srv.do(t, http.MethodPost, "/v1/admins", superToken, map[string]string{
		"email":    "new@demo.com",
		"name":     "New Admin",
		"password": "secret",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("super create status = %d, envelope = %v", resp.StatusCode, envelope)
	}
	if dataObject(t, envelope)["role"] != "ADMIN" {
		t.Fatalf("default role = %v", dataObject(t, envelope)["role"])
	}

	resp, envelope = srv.do(t, http.MethodGet, "/v1/admins", superToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list admins status = %d", resp.StatusCode)
	}
	admins, _ := envelope["data"].([]any)
	if len(admins) != 1 {
		t.Fatalf("admins = %d, want 1", len(admins))
	}
}

func TestOwnershipEnforcedOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	ownerToken := srv.tokenFor(t, "adm_owner", "owner@demo.com", domain.RoleAdmin)
	otherToken := srv.tokenFor(t, "adm_other", "other@demo.com", domain.RoleAdmin)

	_, envelope := srv.do(t, http.MethodPost, "/v1/shipments", ownerToken, map[string]string{"origin": "Kyiv"})
	shipmentID := dataObject(t, envelope)["shipment_id"].(string)

	resp, _ := srv.do(t, http.MethodGet, "/v1/shipments/"+shipmentID, otherToken, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("other admin status = %d, want 401", resp.StatusCode)
	}
	resp, _ = srv.do(t, http.MethodGet, "/v1/shipments/"+shipmentID, ownerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner status = %d, want 200", resp.StatusCode)
	}
}
