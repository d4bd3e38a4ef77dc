package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSources struct {
	tours     []*models.TrackingState
	alerts    []*models.EmergencyAlert
	toursErr  error
	alertsErr error
}

func (f *fakeSources) ActiveTours(context.Context) ([]*models.TrackingState, error) {
	return f.tours, f.toursErr
}

func (f *fakeSources) ListActive(context.Context) ([]*models.EmergencyAlert, error) {
	return f.alerts, f.alertsErr
}

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestRouter(src *fakeSources) (*EventRouter, *Hub) {
	hub := newTestHub()
	opts := ClientOptions{SendBuffer: 16, PingInterval: time.Second, PongWait: 2 * time.Second, MaxMessageSize: 8192}
	r := NewEventRouter(hub, src, src, opts, nil, hub.logger)
	r.now = func() time.Time { return fixedNow }
	return r, hub
}

func frame(t *testing.T, event string, data any) Frame {
	t.Helper()
	f := Frame{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err)
		f.Data = raw
	}
	return f
}

func TestRouter_JoinDashboardSendsSnapshot(t *testing.T) {
	src := &fakeSources{
		tours:  []*models.TrackingState{{TourID: "t1", UserID: "u1"}},
		alerts: []*models.EmergencyAlert{{ID: "e1", Status: models.EmergencyStatusActive}},
	}
	router, hub := newTestRouter(src)
	c := newTestClient(hub, 8)

	router.Handle(c, frame(t, EventJoinDashboard, nil))

	got := drain(t, c)
	require.Len(t, got, 1)
	assert.Equal(t, EventInitialData, got[0].Event)

	var data initialData
	require.NoError(t, json.Unmarshal(got[0].Data, &data))
	require.Len(t, data.ActiveTours, 1)
	assert.Equal(t, "t1", data.ActiveTours[0].TourID)
	require.Len(t, data.Emergencies, 1)
	assert.Equal(t, "e1", data.Emergencies[0].ID)
	assert.Equal(t, 1, hub.Stats().Groups[DashboardGroup])
}

func TestRouter_SnapshotToleratesSourceErrors(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{toursErr: errors.New("redis down"), alertsErr: errors.New("redis down")})
	c := newTestClient(hub, 8)

	router.Handle(c, frame(t, EventJoinDashboard, nil))

	got := drain(t, c)
	require.Len(t, got, 1)
	assert.JSONEq(t, `{"activeTours":[],"emergencies":[],"timestamp":"2024-05-01T10:00:00Z"}`, string(got[0].Data))
}

func TestRouter_LocationUpdateRelayedToDashboardNotSender(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{})
	dashboard := newTestClient(hub, 8)
	tourist := newTestClient(hub, 8)
	hub.SubscribeDashboard(dashboard)
	hub.SubscribeDashboard(tourist)

	router.Handle(tourist, frame(t, EventJoinTour, joinTourPayload{TourID: "t1", UserID: "u1"}))
	router.Handle(tourist, frame(t, EventLocationUpdate, map[string]any{
		"tourId":   "t1",
		"location": map[string]float64{"latitude": 12.9, "longitude": 77.6},
	}))

	assert.Empty(t, drain(t, tourist))
	got := drain(t, dashboard)
	require.Len(t, got, 1)
	assert.Equal(t, EventLocationUpdate, got[0].Event)
	assert.JSONEq(t, `{"tourId":"t1","userId":"u1","location":{"latitude":12.9,"longitude":77.6},"timestamp":"2024-05-01T10:00:00Z"}`, string(got[0].Data))
}

func TestRouter_EmergencyAlertRelayHasPriority(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{})
	dashboard := newTestClient(hub, 8)
	hub.SubscribeDashboard(dashboard)
	tourist := newTestClient(hub, 8)

	router.Handle(tourist, frame(t, EventEmergencyAlert, map[string]any{"tourId": "t1"}))

	got := drain(t, dashboard)
	require.Len(t, got, 1)
	var data map[string]any
	require.NoError(t, json.Unmarshal(got[0].Data, &data))
	assert.Equal(t, "high", data["priority"])
	assert.Equal(t, models.DefaultEmergencyMessage, data["message"])
}

func TestRouter_EmergencyResponseGoesToTourGroup(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{})
	dashboard := newTestClient(hub, 8)
	tourist := newTestClient(hub, 8)
	hub.SubscribeDashboard(dashboard)
	hub.SubscribeTour(tourist, "t1", "u1")

	router.Handle(dashboard, frame(t, EventEmergencyResponse, emergencyResponsePayload{
		EmergencyID: "e1", TourID: "t1", Response: "on the way", ResponderID: "officer-7",
	}))

	assert.Empty(t, drain(t, dashboard))
	got := drain(t, tourist)
	require.Len(t, got, 1)
	assert.Equal(t, EventEmergencyResponse, got[0].Event)
	assert.Contains(t, string(got[0].Data), `"responderId":"officer-7"`)
}

func TestRouter_TourCompletedUntagsClient(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{})
	dashboard := newTestClient(hub, 8)
	hub.SubscribeDashboard(dashboard)
	tourist := newTestClient(hub, 8)
	router.Handle(tourist, frame(t, EventJoinTour, joinTourPayload{TourID: "t1", UserID: "u1"}))

	router.Handle(tourist, frame(t, EventTourCompleted, tourCompletedPayload{TourID: "t1"}))
	got := drain(t, dashboard)
	require.Len(t, got, 1)
	assert.Equal(t, EventTourCompleted, got[0].Event)

	// после завершения тура отключение не порождает tour-offline
	hub.Unregister(tourist)
	assert.Empty(t, drain(t, dashboard))
}

func TestRouter_DisconnectOfTaggedClientPublishesTourOffline(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{})
	dashboard := newTestClient(hub, 8)
	hub.SubscribeDashboard(dashboard)
	tourist := newTestClient(hub, 8)
	router.Handle(tourist, frame(t, EventJoinTour, joinTourPayload{TourID: "t1", UserID: "u1"}))

	hub.Unregister(tourist)

	got := drain(t, dashboard)
	require.Len(t, got, 1)
	assert.Equal(t, EventTourOffline, got[0].Event)
	assert.JSONEq(t, `{"tourId":"t1","userId":"u1","timestamp":"2024-05-01T10:00:00Z"}`, string(got[0].Data))
}

func TestRouter_HeartbeatAck(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{})
	c := newTestClient(hub, 8)

	router.Handle(c, frame(t, EventHeartbeat, nil))

	got := drain(t, c)
	require.Len(t, got, 1)
	assert.Equal(t, EventHeartbeatAck, got[0].Event)
}

func TestRouter_JoinTourRequiresTourID(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{})
	c := newTestClient(hub, 8)

	router.Handle(c, frame(t, EventJoinTour, joinTourPayload{UserID: "u1"}))

	got := drain(t, c)
	require.Len(t, got, 1)
	assert.Equal(t, EventError, got[0].Event)
	tourID, _ := c.Tour()
	assert.Empty(t, tourID)
}

func TestRouter_UnknownEventIgnored(t *testing.T) {
	router, hub := newTestRouter(&fakeSources{})
	c := newTestClient(hub, 8)

	router.Handle(c, frame(t, "dance", nil))

	assert.Empty(t, drain(t, c))
}

func TestRouter_ServeWSRoundTrip(t *testing.T) {
	router, _ := newTestRouter(&fakeSources{})
	srv := httptest.NewServer(http.HandlerFunc(router.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Frame{Event: EventHeartbeat}))

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var got Frame
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, EventHeartbeatAck, got.Event)
}
