package funnel

import (
	"context"
	"errors"
	"testing"

	"shineops/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	sessions map[string]models.FunnelSession
	saveErr  error
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]models.FunnelSession{}}
}

func (m *memStore) Save(ctx context.Context, sess *models.FunnelSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[sess.SessionID] = *sess
	return nil
}

func (m *memStore) Get(ctx context.Context, sessionID string) (*models.FunnelSession, error) {
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := sess
	return &copied, nil
}

func (m *memStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

type fakeCatalog struct {
	services map[string]models.Service
	addOns   map[string]models.AddOn
}

func (f *fakeCatalog) ListServices(ctx context.Context) ([]models.Service, error) { return nil, nil }

func (f *fakeCatalog) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, errors.New("service not found")
	}
	return &svc, nil
}

func (f *fakeCatalog) CreateService(ctx context.Context, svc models.Service) (string, error) {
	return "", nil
}
func (f *fakeCatalog) UpdateService(ctx context.Context, svc models.Service) error { return nil }
func (f *fakeCatalog) DeleteService(ctx context.Context, id string) error          { return nil }

func (f *fakeCatalog) ListAddOns(ctx context.Context, serviceID string) ([]models.AddOn, error) {
	return nil, nil
}

func (f *fakeCatalog) GetAddOnsByIDs(ctx context.Context, ids []string) ([]models.AddOn, error) {
	var out []models.AddOn
	for _, id := range ids {
		if a, ok := f.addOns[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CreateAddOn(ctx context.Context, addOn models.AddOn) (string, error) {
	return "", nil
}
func (f *fakeCatalog) DeleteAddOn(ctx context.Context, id string) error { return nil }

type fakeBookingStore struct {
	created   []models.Booking
	createErr error
}

func (f *fakeBookingStore) Create(ctx context.Context, b models.Booking) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	b.ID = "bk-1"
	f.created = append(f.created, b)
	return b.ID, nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) Update(ctx context.Context, b models.Booking) error { return nil }
func (f *fakeBookingStore) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	return nil
}
func (f *fakeBookingStore) UpdateChecklist(ctx context.Context, id string, checklist []models.ChecklistItem) error {
	return nil
}
func (f *fakeBookingStore) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeBookingStore) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) ListByDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) List(ctx context.Context) ([]models.Booking, error) { return nil, nil }

type fakeEngine struct {
	slots map[string][]models.Slot
}

func (f *fakeEngine) SlotsForDate(ctx context.Context, date string) ([]models.Slot, error) {
	return f.slots[date], nil
}

type fakeDispatcher struct {
	sent []models.DispatchPayload
}

func (f *fakeDispatcher) Enqueue(ctx context.Context, payload models.DispatchPayload) error {
	f.sent = append(f.sent, payload)
	return nil
}

func testService() models.Service {
	return models.Service{
		ID:              "svc-detail",
		Title:           "Full Detail",
		BasePrice:       150,
		DurationMinutes: 120,
		OptionGroups: []models.OptionGroup{
			{
				ID:       "interior",
				Title:    "Interior Level",
				Type:     models.GroupRadio,
				Required: true,
				Items: []models.OptionItem{
					{ID: "basic", Label: "Basic", PriceModifier: 0},
					{ID: "deep", Label: "Deep Clean", PriceModifier: 60},
				},
			},
		},
	}
}

func newTestFunnel() (*DefaultFunnelService, *memStore, *fakeBookingStore, *fakeEngine, *fakeDispatcher) {
	store := newMemStore()
	catalog := &fakeCatalog{
		services: map[string]models.Service{
			"svc-detail": testService(),
			"svc-wash":   {ID: "svc-wash", Title: "Express Wash", BasePrice: 40, DurationMinutes: 30},
		},
		addOns: map[string]models.AddOn{
			"ao-wax": {ID: "ao-wax", ServiceID: "svc-detail", Title: "Hand Wax", Price: 45},
			"ao-pet": {ID: "ao-pet", ServiceID: "svc-wash", Title: "Pet Hair Removal", Price: 30},
		},
	}
	bookings := &fakeBookingStore{}
	engine := &fakeEngine{slots: map[string][]models.Slot{
		"2026-04-06": {
			{Time: "09:00", Available: true},
			{Time: "10:00", Available: false},
		},
	}}
	dispatcher := &fakeDispatcher{}
	svc := &DefaultFunnelService{
		Store:      store,
		Catalog:    catalog,
		Bookings:   bookings,
		Engine:     engine,
		Dispatcher: dispatcher,
	}
	return svc, store, bookings, engine, dispatcher
}

// walkToSchedule drives a fresh session through vehicle, options and add-ons.
func walkToSchedule(t *testing.T, svc *DefaultFunnelService) *models.FunnelSession {
	t.Helper()
	ctx := context.Background()

	sess, err := svc.Start(ctx, "svc-detail")
	require.NoError(t, err)

	_, err = svc.SetVehicles(ctx, sess.SessionID, []models.Vehicle{
		{Year: "2022", Make: "Honda", Model: "CR-V", Class: models.ClassSUV},
	})
	require.NoError(t, err)

	_, err = svc.SetOptions(ctx, sess.SessionID, map[string]models.OptionSelection{
		"interior": {ItemIDs: []string{"deep"}},
	})
	require.NoError(t, err)

	sess, err = svc.SetAddOns(ctx, sess.SessionID, []string{"ao-wax"})
	require.NoError(t, err)
	return sess
}

func TestStartSnapshotsService(t *testing.T) {
	svc, store, _, _, _ := newTestFunnel()

	sess, err := svc.Start(context.Background(), "svc-detail")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, "Full Detail", sess.Service.Title)
	assert.Equal(t, 150.0, sess.Service.BasePrice)
	assert.Equal(t, models.CategoryStandard, sess.Service.Category)
	assert.Len(t, sess.Service.OptionGroups, 1)
	assert.Contains(t, store.sessions, sess.SessionID)
}

func TestStartUnknownService(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	_, err := svc.Start(context.Background(), "svc-nope")
	assert.Error(t, err)
}

func TestStepGuards(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	ctx := context.Background()

	sess, err := svc.Start(ctx, "svc-detail")
	require.NoError(t, err)

	// Options before vehicles is locked.
	_, err = svc.SetOptions(ctx, sess.SessionID, nil)
	var locked *StepLockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, models.StepVehicle, locked.Missing)

	// Schedule before options is locked too.
	_, err = svc.SetSchedule(ctx, sess.SessionID, "2026-04-06", "")
	require.ErrorAs(t, err, &locked)
}

func TestOptionsStepSkippedForPlainService(t *testing.T) {
	svc, _, _, engine, _ := newTestFunnel()
	ctx := context.Background()

	sess, err := svc.Start(ctx, "svc-wash")
	require.NoError(t, err)

	_, err = svc.SetVehicles(ctx, sess.SessionID, []models.Vehicle{
		{Make: "Toyota", Model: "Corolla"},
	})
	require.NoError(t, err)

	// With zero option groups the options call is a no-op...
	got, err := svc.SetOptions(ctx, sess.SessionID, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Options)

	// ...and schedule is reachable without it.
	engine.slots["2026-04-06"] = []models.Slot{{Time: "09:00", Available: true}}
	_, err = svc.SetSchedule(ctx, sess.SessionID, "2026-04-06", "09:00")
	require.NoError(t, err)
}

func TestSetVehiclesDefaultsClassToSedan(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	ctx := context.Background()

	sess, err := svc.Start(ctx, "svc-detail")
	require.NoError(t, err)

	got, err := svc.SetVehicles(ctx, sess.SessionID, []models.Vehicle{
		{Make: "Mazda", Model: "3"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ClassSedan, got.Vehicles[0].Class)

	_, err = svc.SetVehicles(ctx, sess.SessionID, []models.Vehicle{
		{Make: "Mazda", Model: "3", Class: "spaceship"},
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSetOptionsValidation(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	ctx := context.Background()

	sess, err := svc.Start(ctx, "svc-detail")
	require.NoError(t, err)
	_, err = svc.SetVehicles(ctx, sess.SessionID, []models.Vehicle{{Make: "Ford", Model: "F-150", Class: models.ClassTruck}})
	require.NoError(t, err)

	tests := []struct {
		name       string
		selections map[string]models.OptionSelection
	}{
		{
			name:       "required radio missing",
			selections: map[string]models.OptionSelection{},
		},
		{
			name: "radio with two choices",
			selections: map[string]models.OptionSelection{
				"interior": {ItemIDs: []string{"basic", "deep"}},
			},
		},
		{
			name: "unknown item",
			selections: map[string]models.OptionSelection{
				"interior": {ItemIDs: []string{"platinum"}},
			},
		},
		{
			name: "unknown group",
			selections: map[string]models.OptionSelection{
				"interior": {ItemIDs: []string{"basic"}},
				"exterior": {ItemIDs: []string{"basic"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetOptions(ctx, sess.SessionID, tt.selections)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestBackNavigationRetainsSelections(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	sess := walkToSchedule(t, svc)

	// Revisiting the session sees every earlier selection unchanged.
	got, err := svc.Get(context.Background(), sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"deep"}, got.Options["interior"].ItemIDs)
	assert.Equal(t, []string{"ao-wax"}, got.AddOnIDs)
	assert.Equal(t, models.ClassSUV, got.Vehicles[0].Class)
}

func TestSetAddOnsRejectsCrossServiceAddOn(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	sess := walkToSchedule(t, svc)

	// ao-pet belongs to the wash service, not the detail.
	_, err := svc.SetAddOns(context.Background(), sess.SessionID, []string{"ao-pet"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.SetAddOns(context.Background(), sess.SessionID, []string{"ao-ghost"})
	assert.ErrorAs(t, err, &verr)
}

func TestSetScheduleDateChangeClearsTime(t *testing.T) {
	svc, _, _, engine, _ := newTestFunnel()
	sess := walkToSchedule(t, svc)
	ctx := context.Background()

	got, err := svc.SetSchedule(ctx, sess.SessionID, "2026-04-06", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.Time)

	// Picking a different date discards the previously chosen time.
	engine.slots["2026-04-07"] = []models.Slot{{Time: "11:00", Available: true}}
	got, err = svc.SetSchedule(ctx, sess.SessionID, "2026-04-07", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-04-07", got.Date)
	assert.Empty(t, got.Time)
}

func TestSetScheduleUnavailableSlot(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	sess := walkToSchedule(t, svc)

	_, err := svc.SetSchedule(context.Background(), sess.SessionID, "2026-04-06", "10:00")
	assert.ErrorIs(t, err, ErrSlotTaken)

	// A date with no slots at all is a validation problem, not a conflict.
	_, err = svc.SetSchedule(context.Background(), sess.SessionID, "2026-04-08", "12:00")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestQuoteAggregatesSelections(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	sess := walkToSchedule(t, svc)

	got, err := svc.Get(context.Background(), sess.SessionID)
	require.NoError(t, err)

	quote, err := svc.Quote(context.Background(), got)
	require.NoError(t, err)
	// 150 base + 25 suv + 60 deep clean + 45 wax
	assert.Equal(t, 280.0, quote.Subtotal)
	assert.Equal(t, 280.0, quote.Total)
}

func TestQuoteAppliesTaxRate(t *testing.T) {
	svc, _, _, _, _ := newTestFunnel()
	svc.TaxRate = 8
	sess := walkToSchedule(t, svc)

	got, err := svc.Get(context.Background(), sess.SessionID)
	require.NoError(t, err)

	quote, err := svc.Quote(context.Background(), got)
	require.NoError(t, err)
	assert.Equal(t, 302.4, quote.Total)
}

func TestCheckoutHappyPath(t *testing.T) {
	svc, store, bookings, _, dispatcher := newTestFunnel()
	sess := walkToSchedule(t, svc)
	ctx := context.Background()

	_, err := svc.SetSchedule(ctx, sess.SessionID, "2026-04-06", "09:00")
	require.NoError(t, err)

	booking, err := svc.Checkout(ctx, sess.SessionID, models.CustomerDetails{
		Name:  "Dana Flores",
		Email: "dana@example.com",
	})
	require.NoError(t, err)

	require.Len(t, bookings.created, 1)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, "2026-04-06", booking.BookingDate)
	assert.Equal(t, "09:00", booking.BookingTime)
	assert.Equal(t, 280.0, booking.ServicePrice)
	assert.Equal(t, 120, booking.DurationMinutes)

	// The session is consumed exactly once.
	assert.NotContains(t, store.sessions, sess.SessionID)
	_, err = svc.Get(ctx, sess.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, "booking_confirmation", dispatcher.sent[0].Kind)
	assert.Equal(t, "dana@example.com", dispatcher.sent[0].Recipient)
}

func TestCheckoutValidationKeepsSession(t *testing.T) {
	svc, store, bookings, _, _ := newTestFunnel()
	sess := walkToSchedule(t, svc)
	ctx := context.Background()

	// No time chosen yet.
	_, err := svc.Checkout(ctx, sess.SessionID, models.CustomerDetails{Name: "Dana", Email: "d@example.com"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.SetSchedule(ctx, sess.SessionID, "2026-04-06", "09:00")
	require.NoError(t, err)

	// Missing contact details.
	_, err = svc.Checkout(ctx, sess.SessionID, models.CustomerDetails{Name: "Dana"})
	require.ErrorAs(t, err, &verr)
	_, err = svc.Checkout(ctx, sess.SessionID, models.CustomerDetails{Email: "d@example.com"})
	require.ErrorAs(t, err, &verr)

	assert.Empty(t, bookings.created)
	assert.Contains(t, store.sessions, sess.SessionID)
}

func TestCheckoutConflictKeepsSession(t *testing.T) {
	svc, store, bookings, engine, _ := newTestFunnel()
	sess := walkToSchedule(t, svc)
	ctx := context.Background()

	_, err := svc.SetSchedule(ctx, sess.SessionID, "2026-04-06", "09:00")
	require.NoError(t, err)

	// Someone else took the slot between selection and submission.
	engine.slots["2026-04-06"] = []models.Slot{
		{Time: "09:00", Available: false},
		{Time: "10:00", Available: true},
	}

	_, err = svc.Checkout(ctx, sess.SessionID, models.CustomerDetails{Name: "Dana", Email: "d@example.com"})
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, bookings.created)
	assert.Contains(t, store.sessions, sess.SessionID, "session survives a conflict for a second attempt")
}

func TestCheckoutWriteFailureKeepsSession(t *testing.T) {
	svc, store, bookings, _, dispatcher := newTestFunnel()
	sess := walkToSchedule(t, svc)
	ctx := context.Background()

	_, err := svc.SetSchedule(ctx, sess.SessionID, "2026-04-06", "09:00")
	require.NoError(t, err)

	bookings.createErr = errors.New("write timeout")
	_, err = svc.Checkout(ctx, sess.SessionID, models.CustomerDetails{Name: "Dana", Email: "d@example.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotTaken)

	assert.Contains(t, store.sessions, sess.SessionID)
	assert.Empty(t, dispatcher.sent)

	// The retry succeeds once the store recovers.
	bookings.createErr = nil
	_, err = svc.Checkout(ctx, sess.SessionID, models.CustomerDetails{Name: "Dana", Email: "d@example.com"})
	require.NoError(t, err)
	assert.NotContains(t, store.sessions, sess.SessionID)
}

func TestAbandonDiscardsSession(t *testing.T) {
	svc, store, _, _, _ := newTestFunnel()
	sess := walkToSchedule(t, svc)

	require.NoError(t, svc.Abandon(context.Background(), sess.SessionID))
	assert.NotContains(t, store.sessions, sess.SessionID)
}
