package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shenikar/tourist_safety/internal/broadcast"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service/mocks"
	"github.com/shenikar/tourist_safety/internal/webhook"
	webhook_mocks "github.com/shenikar/tourist_safety/internal/webhook/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type emergencyTestDeps struct {
	broadcaster *mocks.MockBroadcaster
	directory   *mocks.MockContactDirectory
	notifier    *mocks.MockNotificationService
	tours       *mocks.MockTourLister
	escalations *webhook_mocks.MockEscalationPublisher
	mr          *miniredis.Miniredis
}

// newTestEmergencyService - вспомогательная функция для создания сервиса с моками
func newTestEmergencyService(t *testing.T) (*emergencyService, *emergencyTestDeps) {
	ctrl := gomock.NewController(t)
	store, mr := newTestStore(t)
	deps := &emergencyTestDeps{
		broadcaster: mocks.NewMockBroadcaster(ctrl),
		directory:   mocks.NewMockContactDirectory(ctrl),
		notifier:    mocks.NewMockNotificationService(ctrl),
		tours:       mocks.NewMockTourLister(ctrl),
		escalations: webhook_mocks.NewMockEscalationPublisher(ctrl),
		mr:          mr,
	}

	logger := newTestLogger()
	svc := NewEmergencyService(EmergencyDeps{
		Store:       store,
		Tours:       deps.tours,
		Directory:   deps.directory,
		Notifier:    deps.notifier,
		Broadcaster: deps.broadcaster,
		Escalations: deps.escalations,
		Tasks:       NewTaskGroup(logger, nil),
	}, newTestConfig(), logger, nil).(*emergencyService)
	svc.now = func() time.Time { return testNow }
	return svc, deps
}

func alertInput(userID, tourID string) models.AlertInput {
	return models.AlertInput{
		UserID:    userID,
		TourID:    tourID,
		Latitude:  ptr(12.9),
		Longitude: ptr(77.6),
	}
}

// expectTrigger задает ожидания для успешного TriggerAlert без проверки аргументов
func expectTrigger(d *emergencyTestDeps, result models.NotifyResult) {
	d.directory.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(nil, nil)
	d.broadcaster.EXPECT().Publish(broadcast.DashboardGroup, broadcast.EventEmergencyAlert, gomock.Any())
	d.escalations.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	d.notifier.EXPECT().NotifyContacts(gomock.Any(), gomock.Any(), gomock.Any()).Return(result, nil)
}

func TestTriggerAlert_Success(t *testing.T) {
	// Подготовка
	svc, d := newTestEmergencyService(t)
	ctx := context.Background()
	contacts := []models.Contact{
		{Phone: "9876543210", Name: "Mom"},
		{Phone: "9123456780", Name: "Dad"},
		{Phone: "12", Name: "Broken"},
	}

	// Ожидания
	d.directory.EXPECT().
		GetProfile(ctx, "u1").
		Return(&models.UserProfile{UserID: "u1", Name: "Asha", EmergencyContacts: contacts}, nil).
		Times(1)

	var payload map[string]any
	d.broadcaster.EXPECT().
		Publish(broadcast.DashboardGroup, broadcast.EventEmergencyAlert, gomock.Any()).
		Do(func(_, _ string, p any) { payload = p.(map[string]any) }).
		Times(1)

	d.escalations.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.EscalationEvent) error {
			assert.Equal(t, webhook.EventEmergencyTriggered, e.Event)
			assert.Equal(t, 3, e.ContactCount)
			return nil
		}).
		Times(1)

	d.notifier.EXPECT().
		NotifyContacts(gomock.Any(), contacts, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []models.Contact, text string) (models.NotifyResult, error) {
			assert.Contains(t, text, "EMERGENCY: "+models.DefaultEmergencyMessage)
			assert.Contains(t, text, "https://maps.google.com/maps?q=12.9,77.6")
			return models.NotifyResult{SuccessCount: 2, FailureCount: 1}, nil
		}).
		Times(1)

	// Действие
	alert, err := svc.TriggerAlert(ctx, alertInput("u1", "t1"))
	require.NoError(t, err)
	svc.Wait()

	// Проверки
	assert.Equal(t, models.EmergencyStatusActive, alert.Status)
	assert.Equal(t, models.DefaultEmergencyMessage, alert.Message)
	assert.Equal(t, "high", payload["priority"])
	assert.Equal(t, "Asha", payload["userName"])
	assert.Equal(t, alert.ID, payload["id"])

	stored, err := svc.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, contacts, stored.EmergencyContacts)
	require.NotNil(t, stored.SMSSuccessCount)
	assert.Equal(t, 2, *stored.SMSSuccessCount)
	assert.Equal(t, 1, *stored.SMSFailureCount)
	assert.Equal(t, testNow, *stored.SMSSentAt)
	assert.Equal(t, 24*time.Hour, d.mr.TTL(emergencyKey(alert.ID)))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, alert.ID, active[0].ID)
}

func TestTriggerAlert_DirectoryFailureStillCreatesAlert(t *testing.T) {
	svc, d := newTestEmergencyService(t)
	ctx := context.Background()

	d.directory.EXPECT().GetProfile(gomock.Any(), "u1").Return(nil, errors.New("connection refused"))
	var payload map[string]any
	d.broadcaster.EXPECT().
		Publish(broadcast.DashboardGroup, broadcast.EventEmergencyAlert, gomock.Any()).
		Do(func(_, _ string, p any) { payload = p.(map[string]any) })
	d.escalations.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	d.notifier.EXPECT().
		NotifyContacts(gomock.Any(), []models.Contact{}, gomock.Any()).
		Return(models.NotifyResult{}, ErrNoContacts)

	alert, err := svc.TriggerAlert(ctx, alertInput("u1", "t1"))
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, "User u1", payload["userName"])
	stored, err := svc.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.EmergencyContacts)
	require.NotNil(t, stored.SMSSuccessCount)
	assert.Equal(t, 0, *stored.SMSSuccessCount)
}

func TestTriggerAlert_ValidationPerformsNoWrites(t *testing.T) {
	svc, d := newTestEmergencyService(t)

	_, err := svc.TriggerAlert(context.Background(), models.AlertInput{UserID: "u1", TourID: "t1", Latitude: ptr(1.0)})

	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, d.mr.Keys())
}

func TestTriggerAlert_CustomMessage(t *testing.T) {
	svc, d := newTestEmergencyService(t)
	expectTrigger(d, models.NotifyResult{})

	input := alertInput("u1", "t1")
	input.Message = "Fell on the trail"
	alert, err := svc.TriggerAlert(context.Background(), input)
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, "Fell on the trail", alert.Message)
}

func TestListActive_NewestFirstAndCapped(t *testing.T) {
	svc, d := newTestEmergencyService(t)
	svc.cfg.ActiveEmergencyMax = 3
	ctx := context.Background()

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		expectTrigger(d, models.NotifyResult{})
		alert, err := svc.TriggerAlert(ctx, alertInput(fmt.Sprintf("u%d", i), "t1"))
		require.NoError(t, err)
		ids = append(ids, alert.ID)
	}
	svc.Wait()

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, ids[4], active[0].ID)
	assert.Equal(t, ids[2], active[2].ID)

	// вытесненная из индекса тревога остается доступной по id
	_, err = svc.GetAlert(ctx, ids[0])
	require.NoError(t, err)
}

func TestListActive_SkipsExpired(t *testing.T) {
	svc, d := newTestEmergencyService(t)
	ctx := context.Background()
	expectTrigger(d, models.NotifyResult{})

	alert, err := svc.TriggerAlert(ctx, alertInput("u1", "t1"))
	require.NoError(t, err)
	svc.Wait()

	d.mr.Del(emergencyKey(alert.ID))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestGetAlert_NotFound(t *testing.T) {
	svc, _ := newTestEmergencyService(t)

	_, err := svc.GetAlert(context.Background(), "missing")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_ResolveRemovesFromIndex(t *testing.T) {
	svc, d := newTestEmergencyService(t)
	ctx := context.Background()
	expectTrigger(d, models.NotifyResult{})

	alert, err := svc.TriggerAlert(ctx, alertInput("u1", "t1"))
	require.NoError(t, err)
	svc.Wait()

	d.broadcaster.EXPECT().
		Publish(broadcast.DashboardGroup, broadcast.EventEmergencyStatusUpdate, gomock.Any()).
		Times(2)
	d.escalations.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	updated, err := svc.UpdateStatus(ctx, alert.ID, models.StatusUpdate{
		Status:      models.EmergencyStatusResolved,
		ResponderID: "officer-7",
		Response:    "Tourist found safe",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusResolved, updated.Status)
	assert.Equal(t, "officer-7", updated.ResponderID)
	require.NotNil(t, updated.UpdatedAt)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// повторная установка того же статуса допустима
	_, err = svc.UpdateStatus(ctx, alert.ID, models.StatusUpdate{Status: models.EmergencyStatusResolved})
	require.NoError(t, err)

	// выход из терминального статуса запрещен
	_, err = svc.UpdateStatus(ctx, alert.ID, models.StatusUpdate{Status: models.EmergencyStatusActive})
	require.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := svc.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusResolved, stored.Status)
	assert.Equal(t, "Tourist found safe", stored.Response)
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc, _ := newTestEmergencyService(t)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, "e1", models.StatusUpdate{})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, "e1", models.StatusUpdate{Status: "escalated"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, "missing", models.StatusUpdate{Status: models.EmergencyStatusClosed})
	require.ErrorIs(t, err, ErrNotFound)
}

// Обновление статуса во время рассылки не должно затирать счетчики SMS и наоборот
func TestUpdateStatus_ConcurrentWithNotification(t *testing.T) {
	svc, d := newTestEmergencyService(t)
	ctx := context.Background()

	release := make(chan struct{})
	d.directory.EXPECT().GetProfile(gomock.Any(), gomock.Any()).
		Return(&models.UserProfile{EmergencyContacts: []models.Contact{{Phone: "9876543210"}}}, nil)
	d.broadcaster.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	d.escalations.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	d.notifier.EXPECT().NotifyContacts(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []models.Contact, string) (models.NotifyResult, error) {
			<-release
			return models.NotifyResult{SuccessCount: 1}, nil
		})

	alert, err := svc.TriggerAlert(ctx, alertInput("u1", "t1"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, alert.ID, models.StatusUpdate{Status: models.EmergencyStatusClosed, ResponderID: "officer-1"})
	require.NoError(t, err)
	close(release)
	svc.Wait()

	stored, err := svc.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyStatusClosed, stored.Status)
	assert.Equal(t, "officer-1", stored.ResponderID)
	require.NotNil(t, stored.SMSSuccessCount)
	assert.Equal(t, 1, *stored.SMSSuccessCount)
}

func TestTriggerAlert_ConcurrentAlertsAllIndexed(t *testing.T) {
	svc, d := newTestEmergencyService(t)
	ctx := context.Background()
	const n = 20

	d.directory.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(nil, nil).Times(n)
	d.broadcaster.EXPECT().Publish(broadcast.DashboardGroup, broadcast.EventEmergencyAlert, gomock.Any()).Times(n)
	d.escalations.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(n)
	d.notifier.EXPECT().NotifyContacts(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.NotifyResult{}, ErrNoContacts).Times(n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.TriggerAlert(ctx, alertInput(fmt.Sprintf("u%d", i), "t1"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	svc.Wait()

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, n)
}

func TestStats(t *testing.T) {
	svc, d := newTestEmergencyService(t)
	ctx := context.Background()
	expectTrigger(d, models.NotifyResult{})

	_, err := svc.TriggerAlert(ctx, alertInput("u1", "t1"))
	require.NoError(t, err)
	svc.Wait()

	d.tours.EXPECT().ActiveTours(ctx).Return([]*models.TrackingState{{TourID: "t1"}, {TourID: "t2"}}, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ActiveTours)
	assert.Equal(t, 1, stats.ActiveEmergencies)
}
