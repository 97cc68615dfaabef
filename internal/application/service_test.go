package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	cacheadapter "github.com/atlaslogistics/shipment-tracking/internal/adapters/cache"
	"github.com/atlaslogistics/shipment-tracking/internal/adapters/memory"
	"github.com/atlaslogistics/shipment-tracking/internal/application"
	"github.com/atlaslogistics/shipment-tracking/internal/domain"
	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type fakeSigner struct{}

func (fakeSigner) Sign(claims ports.AuthClaims, _ time.Duration) (string, error) {
	return "token-" + claims.AdminID, nil
}

type recordingNotifier struct {
	sent chan ports.StatusNotification
}

func (n *recordingNotifier) SendStatusUpdate(_ context.Context, notification ports.StatusNotification) error {
	n.sent <- notification
	return nil
}

type testEnv struct {
	svc      *application.Service
	repos    memory.Repositories
	notifier *recordingNotifier
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		repos:    memory.NewRepositories(),
		notifier: &recordingNotifier{sent: make(chan ports.StatusNotification, 8)},
		now:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	env.svc = application.NewService(application.Dependencies{
		Shipments: env.repos.Shipments,
		Events:    env.repos.Events,
		Messages:  env.repos.Messages,
		AuditLogs: env.repos.Audit,
		Admins:    env.repos.Admins,
		Hasher:    fakeHasher{},
		Signer:    fakeSigner{},
		Notifier:  env.notifier,
		Cache:     cacheadapter.NewLocalTrackingCache(),
	}).WithClock(func() time.Time { return env.now })
	return env
}

// advance moves the test clock so records created in sequence get
// distinct timestamps.
func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

var (
	ownerActor = application.Actor{AdminID: "adm_owner", Email: "owner@demo.com", Role: domain.RoleAdmin}
	otherActor = application.Actor{AdminID: "adm_other", Email: "other@demo.com", Role: domain.RoleAdmin}
	superActor = application.Actor{AdminID: "adm_super", Email: "super@admin.com", Role: domain.RoleSuperAdmin}
)

func mustCreateShipment(t *testing.T, env *testEnv, actor application.Actor, in application.CreateShipmentInput) domain.Shipment {
	t.Helper()
	shipment, err := env.svc.CreateShipment(context.Background(), actor, in)
	if err != nil {
		t.Fatalf("CreateShipment: %v", err)
	}
	return shipment
}

func TestCreateShipmentSeedsEventAndStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{
		Origin:      "Rotterdam",
		Destination: "Hamburg",
	})

	if shipment.Status != domain.StatusPending {
		t.Fatalf("status = %s, want PENDING", shipment.Status)
	}
	if shipment.AdminID != ownerActor.AdminID {
		t.Fatalf("admin_id = %s, want %s", shipment.AdminID, ownerActor.AdminID)
	}
	if len(shipment.TrackingNumber) != 12 || shipment.TrackingNumber[:4] != "TRK-" {
		t.Fatalf("tracking number %q has unexpected shape", shipment.TrackingNumber)
	}

	events, err := env.repos.Events.ListByShipment(ctx, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("ListByShipment: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("seed events = %d, want 1", len(events))
	}
	seed := events[0]
	if seed.Status != domain.StatusCreated {
		t.Fatalf("seed status = %s, want CREATED", seed.Status)
	}
	if seed.Location != "Rotterdam" {
		t.Fatalf("seed location = %q, want origin", seed.Location)
	}
	if seed.Description != "Shipment created" {
		t.Fatalf("seed description = %q", seed.Description)
	}
}

func TestCreateShipmentWithoutOriginUsesDefaultLocation(t *testing.T) {
	env := newTestEnv(t)
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	events, _ := env.repos.Events.ListByShipment(context.Background(), shipment.ShipmentID)
	if events[0].Location != domain.DefaultLocation {
		t.Fatalf("seed location = %q, want %q", events[0].Location, domain.DefaultLocation)
	}
}

func TestCreateShipmentRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.CreateShipment(context.Background(), application.Actor{}, application.CreateShipmentInput{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestCreateShipmentNotifiesCustomer(t *testing.T) {
	env := newTestEnv(t)
	mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{
		Origin:        "Oslo",
		CustomerEmail: "customer@example.com",
	})

	select {
	case n := <-env.notifier.sent:
		if n.To != "customer@example.com" {
			t.Fatalf("notification to = %q", n.To)
		}
		if n.Status != domain.StatusCreated {
			t.Fatalf("notification status = %s, want CREATED", n.Status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification sent")
	}
}

func TestCreateEventPropagatesStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{Origin: "Lyon"})

	env.advance(time.Hour)
	event, err := env.svc.CreateEvent(ctx, ownerActor, shipment.ShipmentID, application.CreateEventInput{
		Status:   domain.StatusInTransit,
		Location: "Dijon",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.Status != domain.StatusInTransit {
		t.Fatalf("event status = %s", event.Status)
	}

	got, err := env.repos.Shipments.GetByID(ctx, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.StatusInTransit {
		t.Fatalf("shipment status = %s, want IN_TRANSIT", got.Status)
	}
}

func TestCreateEventRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	_, err := env.svc.CreateEvent(context.Background(), ownerActor, shipment.ShipmentID, application.CreateEventInput{
		Status: "TELEPORTED",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateEventRejectsNonNumericCoordinates(t *testing.T) {
	env := newTestEnv(t)
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	for _, bad := range []string{"abc", "NaN", "Inf"} {
		_, err := env.svc.CreateEvent(context.Background(), ownerActor, shipment.ShipmentID, application.CreateEventInput{
			Status:   domain.StatusInTransit,
			Latitude: bad,
		})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("latitude %q: err = %v, want ErrInvalidInput", bad, err)
		}
	}
}

func TestCreateEventParsesCoordinates(t *testing.T) {
	env := newTestEnv(t)
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	event, err := env.svc.CreateEvent(context.Background(), ownerActor, shipment.ShipmentID, application.CreateEventInput{
		Status:    domain.StatusInTransit,
		Latitude:  "40.7128",
		Longitude: "-74.0060",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if event.Latitude == nil || *event.Latitude != 40.7128 {
		t.Fatalf("latitude = %v", event.Latitude)
	}
	if event.Longitude == nil || *event.Longitude != -74.0060 {
		t.Fatalf("longitude = %v", event.Longitude)
	}
}

func TestEditEventResyncsShipmentStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{Origin: "Porto"})

	env.advance(time.Hour)
	transit, err := env.svc.CreateEvent(ctx, ownerActor, shipment.ShipmentID, application.CreateEventInput{
		Status: domain.StatusInTransit,
	})
	if err != nil {
		t.Fatalf("CreateEvent transit: %v", err)
	}

	env.advance(time.Hour)
	delivered, err := env.svc.CreateEvent(ctx, ownerActor, shipment.ShipmentID, application.CreateEventInput{
		Status: domain.StatusDelivered,
	})
	if err != nil {
		t.Fatalf("CreateEvent delivered: %v", err)
	}

	// Editing a non-latest event must not move the denormalized status.
	env.advance(time.Minute)
	paused := domain.StatusPaused
	if _, err := env.svc.EditEvent(ctx, ownerActor, shipment.ShipmentID, transit.EventID, application.EditEventInput{
		Status: &paused,
	}); err != nil {
		t.Fatalf("EditEvent non-latest: %v", err)
	}
	got, _ := env.repos.Shipments.GetByID(ctx, shipment.ShipmentID)
	if got.Status != domain.StatusDelivered {
		t.Fatalf("status after non-latest edit = %s, want DELIVERED", got.Status)
	}

	// Moving an event's timestamp past the latest makes it the new latest.
	env.advance(time.Minute)
	future := delivered.Timestamp.Add(time.Hour)
	if _, err := env.svc.EditEvent(ctx, ownerActor, shipment.ShipmentID, transit.EventID, application.EditEventInput{
		Timestamp: &future,
	}); err != nil {
		t.Fatalf("EditEvent timestamp move: %v", err)
	}
	got, _ = env.repos.Shipments.GetByID(ctx, shipment.ShipmentID)
	if got.Status != domain.StatusPaused {
		t.Fatalf("status after timestamp move = %s, want PAUSED", got.Status)
	}
}

func TestShipmentOwnershipGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	if _, _, err := env.svc.GetShipment(ctx, otherActor, shipment.ShipmentID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("other admin err = %v, want ErrUnauthorized", err)
	}
	if _, _, err := env.svc.GetShipment(ctx, application.Actor{}, shipment.ShipmentID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous err = %v, want ErrUnauthorized", err)
	}
	if _, _, err := env.svc.GetShipment(ctx, superActor, shipment.ShipmentID); err != nil {
		t.Fatalf("super admin err = %v, want nil", err)
	}
	if _, _, err := env.svc.GetShipment(ctx, ownerActor, "shp_missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown id err = %v, want ErrNotFound", err)
	}
}

func TestListShipmentsViewAsScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})
	env.advance(time.Minute)
	mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})
	env.advance(time.Minute)
	mustCreateShipment(t, env, otherActor, application.CreateShipmentInput{})

	own, err := env.svc.ListShipments(ctx, ownerActor, "")
	if err != nil {
		t.Fatalf("ListShipments: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("owner sees %d shipments, want 2", len(own))
	}

	// A regular admin's view_as is pinned back to their own id.
	pinned, err := env.svc.ListShipments(ctx, otherActor, ownerActor.AdminID)
	if err != nil {
		t.Fatalf("ListShipments pinned: %v", err)
	}
	if len(pinned) != 1 {
		t.Fatalf("pinned view sees %d shipments, want 1", len(pinned))
	}

	scoped, err := env.svc.ListShipments(ctx, superActor, ownerActor.AdminID)
	if err != nil {
		t.Fatalf("ListShipments scoped: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("super view_as sees %d shipments, want 2", len(scoped))
	}
}

func TestUpdateShipmentImageURLsRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{
		ImageURLs: []string{"https://img.example/a.jpg"},
	})

	urls := []string{"https://img.example/b.jpg", "https://img.example/c.jpg"}
	updated, err := env.svc.UpdateShipment(ctx, ownerActor, shipment.ShipmentID, application.UpdateShipmentInput{
		ImageURLs: &urls,
	})
	if err != nil {
		t.Fatalf("UpdateShipment: %v", err)
	}
	if len(updated.ImageURLs) != 2 || updated.ImageURLs[0] != urls[0] || updated.ImageURLs[1] != urls[1] {
		t.Fatalf("image urls = %v, want %v", updated.ImageURLs, urls)
	}

	got, _, err := env.svc.GetShipment(ctx, ownerActor, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("GetShipment: %v", err)
	}
	if len(got.ImageURLs) != 2 || got.ImageURLs[0] != urls[0] || got.ImageURLs[1] != urls[1] {
		t.Fatalf("persisted image urls = %v, want %v", got.ImageURLs, urls)
	}
}

func TestUpdateShipmentRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	bogus := domain.ShipmentStatus("LOST_FOREVER")
	_, err := env.svc.UpdateShipment(context.Background(), ownerActor, shipment.ShipmentID, application.UpdateShipmentInput{
		Status: &bogus,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestDeleteShipmentCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})
	env.advance(time.Minute)
	if _, err := env.svc.CreateEvent(ctx, ownerActor, shipment.ShipmentID, application.CreateEventInput{
		Status: domain.StatusInTransit,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := env.svc.PostMessage(ctx, application.Actor{}, shipment.ShipmentID, application.PostMessageInput{
		Content: "where is my parcel",
	}); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	if err := env.svc.DeleteShipment(ctx, ownerActor, shipment.ShipmentID); err != nil {
		t.Fatalf("DeleteShipment: %v", err)
	}

	if _, err := env.repos.Shipments.GetByID(ctx, shipment.ShipmentID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("shipment still present: %v", err)
	}
	events, _ := env.repos.Events.ListByShipment(ctx, shipment.ShipmentID)
	if len(events) != 0 {
		t.Fatalf("%d orphaned events", len(events))
	}
	messages, _ := env.repos.Messages.ListByShipment(ctx, shipment.ShipmentID)
	if len(messages) != 0 {
		t.Fatalf("%d orphaned messages", len(messages))
	}
}

func TestPostMessageDerivesSenderFromPrincipal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	fromClient, err := env.svc.PostMessage(ctx, application.Actor{}, shipment.ShipmentID, application.PostMessageInput{
		Content: "hello",
	})
	if err != nil {
		t.Fatalf("PostMessage client: %v", err)
	}
	if fromClient.Sender != domain.SenderClient {
		t.Fatalf("anonymous sender = %s, want CLIENT", fromClient.Sender)
	}

	fromAdmin, err := env.svc.PostMessage(ctx, ownerActor, shipment.ShipmentID, application.PostMessageInput{
		Content: "on its way",
	})
	if err != nil {
		t.Fatalf("PostMessage admin: %v", err)
	}
	if fromAdmin.Sender != domain.SenderAdmin {
		t.Fatalf("admin sender = %s, want ADMIN", fromAdmin.Sender)
	}
}

func TestPostMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	if _, err := env.svc.PostMessage(context.Background(), application.Actor{}, shipment.ShipmentID, application.PostMessageInput{
		Content: "   ",
	}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank content err = %v, want ErrInvalidInput", err)
	}
	if _, err := env.svc.PostMessage(context.Background(), application.Actor{}, "shp_missing", application.PostMessageInput{
		Content: "hello",
	}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown shipment err = %v, want ErrNotFound", err)
	}
}

func TestMarkClientMessagesReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})

	for i := 0; i < 2; i++ {
		env.advance(time.Second)
		if _, err := env.svc.PostMessage(ctx, application.Actor{}, shipment.ShipmentID, application.PostMessageInput{
			Content: "ping",
		}); err != nil {
			t.Fatalf("PostMessage: %v", err)
		}
	}

	marked, err := env.svc.MarkClientMessagesRead(ctx, ownerActor, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("MarkClientMessagesRead: %v", err)
	}
	if marked != 2 {
		t.Fatalf("marked = %d, want 2", marked)
	}

	marked, err = env.svc.MarkClientMessagesRead(ctx, ownerActor, shipment.ShipmentID)
	if err != nil {
		t.Fatalf("second MarkClientMessagesRead: %v", err)
	}
	if marked != 0 {
		t.Fatalf("second marked = %d, want 0", marked)
	}
}

func TestPublicTrackingLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{
		Origin:      "New York",
		Destination: "Boston",
	})

	view, err := env.svc.PublicTracking(ctx, shipment.TrackingNumber)
	if err != nil {
		t.Fatalf("PublicTracking: %v", err)
	}
	if view.Progress != 10 {
		t.Fatalf("pending progress = %d, want 10", view.Progress)
	}
	if len(view.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(view.Events))
	}

	// A status change must bust the cached snapshot.
	env.advance(time.Hour)
	if _, err := env.svc.CreateEvent(ctx, ownerActor, shipment.ShipmentID, application.CreateEventInput{
		Status:   domain.StatusDelivered,
		Location: "Boston",
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	view, err = env.svc.PublicTracking(ctx, shipment.TrackingNumber)
	if err != nil {
		t.Fatalf("PublicTracking after event: %v", err)
	}
	if view.Progress != 100 {
		t.Fatalf("delivered progress = %d, want 100", view.Progress)
	}
	if view.Shipment.Status != domain.StatusDelivered {
		t.Fatalf("tracked status = %s, want DELIVERED", view.Shipment.Status)
	}

	if _, err := env.svc.PublicTracking(ctx, "TRK-00000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown tracking err = %v, want ErrNotFound", err)
	}
}

func TestDashboardStatsScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})
	env.advance(time.Minute)
	mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})
	env.advance(time.Minute)
	mustCreateShipment(t, env, otherActor, application.CreateShipmentInput{})

	env.advance(time.Minute)
	if _, err := env.svc.CreateEvent(ctx, ownerActor, first.ShipmentID, application.CreateEventInput{
		Status: domain.StatusInTransit,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	stats, err := env.svc.DashboardStats(ctx, ownerActor, "")
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.Total != 2 || stats.Pending != 1 || stats.InTransit != 1 || stats.Delivered != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	scoped, err := env.svc.DashboardStats(ctx, superActor, ownerActor.AdminID)
	if err != nil {
		t.Fatalf("DashboardStats scoped: %v", err)
	}
	if scoped.Total != 2 {
		t.Fatalf("scoped total = %d, want 2", scoped.Total)
	}

	pinned, err := env.svc.DashboardStats(ctx, otherActor, ownerActor.AdminID)
	if err != nil {
		t.Fatalf("DashboardStats pinned: %v", err)
	}
	if pinned.Total != 1 {
		t.Fatalf("pinned total = %d, want 1", pinned.Total)
	}
}

func TestUnreadInquiriesGroupsAndScopes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mine := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})
	env.advance(time.Minute)
	theirs := mustCreateShipment(t, env, otherActor, application.CreateShipmentInput{})

	for i := 0; i < 3; i++ {
		env.advance(time.Second)
		if _, err := env.svc.PostMessage(ctx, application.Actor{}, mine.ShipmentID, application.PostMessageInput{
			Content: "anyone there",
		}); err != nil {
			t.Fatalf("PostMessage: %v", err)
		}
	}
	env.advance(time.Second)
	if _, err := env.svc.PostMessage(ctx, application.Actor{}, theirs.ShipmentID, application.PostMessageInput{
		Content: "hello",
	}); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	inquiries, err := env.svc.UnreadInquiries(ctx, ownerActor)
	if err != nil {
		t.Fatalf("UnreadInquiries: %v", err)
	}
	if len(inquiries) != 1 {
		t.Fatalf("inquiries = %d, want 1", len(inquiries))
	}
	if inquiries[0].ShipmentID != mine.ShipmentID || inquiries[0].UnreadCount != 3 {
		t.Fatalf("inquiry = %+v", inquiries[0])
	}

	all, err := env.svc.UnreadInquiries(ctx, superActor)
	if err != nil {
		t.Fatalf("UnreadInquiries super: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("super inquiries = %d, want 2", len(all))
	}
}

func TestSeedAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admins, err := env.svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("seeded %d admins, want 2", len(admins))
	}

	// Running setup twice must not duplicate accounts.
	again, err := env.svc.Seed(ctx)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("second seed returned %d admins, want 2", len(again))
	}

	result, err := env.svc.Login(ctx, application.LoginInput{
		Email:    "Super@Admin.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Admin.Role != domain.RoleSuperAdmin {
		t.Fatalf("role = %s, want SUPER_ADMIN", result.Admin.Role)
	}
	if result.Token == "" {
		t.Fatal("empty token")
	}

	if _, err := env.svc.Login(ctx, application.LoginInput{
		Email:    "super@admin.com",
		Password: "wrong",
	}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("wrong password err = %v, want ErrUnauthorized", err)
	}
	if _, err := env.svc.Login(ctx, application.LoginInput{
		Email:    "nobody@admin.com",
		Password: "password123",
	}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("unknown email err = %v, want ErrUnauthorized", err)
	}
}

func TestCreateAdminRequiresSuperAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateAdmin(ctx, application.Actor{}, application.CreateAdminInput{
		Email: "new@demo.com", Password: "secret",
	}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous err = %v, want ErrUnauthorized", err)
	}
	if _, err := env.svc.CreateAdmin(ctx, ownerActor, application.CreateAdminInput{
		Email: "new@demo.com", Password: "secret",
	}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("admin err = %v, want ErrForbidden", err)
	}

	admin, err := env.svc.CreateAdmin(ctx, superActor, application.CreateAdminInput{
		Email:    "New@Demo.com",
		Name:     "New Admin",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}
	if admin.Email != "new@demo.com" {
		t.Fatalf("email = %q, want lowercased", admin.Email)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("default role = %s, want ADMIN", admin.Role)
	}
}

func TestAuditTrailRecordsMutations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shipment := mustCreateShipment(t, env, ownerActor, application.CreateShipmentInput{})
	env.advance(time.Minute)
	if _, err := env.svc.CreateEvent(ctx, ownerActor, shipment.ShipmentID, application.CreateEventInput{
		Status: domain.StatusInTransit,
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	entries := env.repos.Audit.Entries()
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
	if entries[0].Action != domain.AuditCreateShipment || entries[1].Action != domain.AuditCreateEvent {
		t.Fatalf("audit actions = %s, %s", entries[0].Action, entries[1].Action)
	}
	if entries[0].AdminID != ownerActor.AdminID {
		t.Fatalf("audit admin = %s", entries[0].AdminID)
	}
}
