package service

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shenikar/tourist_safety/internal/broadcast"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestLocationService - сервис на miniredis с моком рассылки
func newTestLocationService(t *testing.T) (*locationService, *mocks.MockBroadcaster, *miniredis.Miniredis) {
	ctrl := gomock.NewController(t)
	broadcasterMock := mocks.NewMockBroadcaster(ctrl)
	store, mr := newTestStore(t)

	svc := NewLocationService(store, broadcasterMock, newTestConfig(), newTestLogger(), nil).(*locationService)
	svc.now = func() time.Time { return testNow }
	return svc, broadcasterMock, mr
}

func locationInput(userID, tourID string, lat, lng float64) models.LocationInput {
	return models.LocationInput{
		UserID:    userID,
		TourID:    tourID,
		Latitude:  ptr(lat),
		Longitude: ptr(lng),
	}
}

func expectLocationBroadcast(b *mocks.MockBroadcaster, tourID string, times int) {
	b.EXPECT().Publish(broadcast.DashboardGroup, broadcast.EventLocationUpdate, gomock.Any()).Times(times)
	b.EXPECT().Publish(broadcast.TourGroup(tourID), broadcast.EventLocationUpdate, gomock.Any()).Times(times)
}

func TestRecordLocation_Success(t *testing.T) {
	// Подготовка
	svc, broadcasterMock, mr := newTestLocationService(t)
	ctx := context.Background()
	input := locationInput("u1", "t1", 12.9716, 77.5946)
	input.Accuracy = ptr(5.0)

	// Ожидания
	var payload map[string]any
	broadcasterMock.EXPECT().
		Publish(broadcast.DashboardGroup, broadcast.EventLocationUpdate, gomock.Any()).
		Do(func(_, _ string, p any) { payload = p.(map[string]any) }).
		Times(1)
	broadcasterMock.EXPECT().
		Publish(broadcast.TourGroup("t1"), broadcast.EventLocationUpdate, gomock.Any()).
		Times(1)

	// Действие
	record, err := svc.RecordLocation(ctx, input)

	// Проверки
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, testNow, record.Timestamp)
	assert.Equal(t, "t1", payload["tourId"])
	assert.Equal(t, "User u1", payload["userName"])

	current, err := svc.CurrentLocation(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, record.ID, current.ID)
	assert.Equal(t, 5.0, *current.Accuracy)
	assert.Nil(t, current.Speed)

	assert.Equal(t, time.Hour, mr.TTL(currentLocationKey("u1")))
	assert.Equal(t, 24*time.Hour, mr.TTL(historyKey("u1", "t1")))
	assert.Equal(t, time.Hour, mr.TTL(trackingKey("t1")))

	tours, err := svc.ActiveTours(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "u1", tours[0].UserID)
	assert.Equal(t, 12.9716, tours[0].Latitude)
	assert.Equal(t, 5.0, tours[0].Accuracy)
	require.NotNil(t, tours[0].LastUpdate)
}

func TestRecordLocation_KeepsClientTimestamp(t *testing.T) {
	svc, broadcasterMock, _ := newTestLocationService(t)
	expectLocationBroadcast(broadcasterMock, "t1", 1)

	clientTime := testNow.Add(-5 * time.Minute)
	input := locationInput("u1", "t1", 1, 2)
	input.Timestamp = &clientTime

	record, err := svc.RecordLocation(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, clientTime, record.Timestamp)
	assert.Equal(t, testNow, record.ReceivedAt)
}

func TestRecordLocation_ValidationPerformsNoWrites(t *testing.T) {
	tests := []struct {
		name  string
		input models.LocationInput
	}{
		{"missing user", locationInput("", "t1", 1, 2)},
		{"missing tour", locationInput("u1", "", 1, 2)},
		{"missing latitude", models.LocationInput{UserID: "u1", TourID: "t1", Longitude: ptr(2.0)}},
		{"nan latitude", locationInput("u1", "t1", math.NaN(), 2)},
		{"infinite longitude", locationInput("u1", "t1", 1, math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, mr := newTestLocationService(t)

			_, err := svc.RecordLocation(context.Background(), tt.input)

			require.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, mr.Keys())
		})
	}
}

func TestRecordLocation_HistoryIsCappedNewestFirst(t *testing.T) {
	svc, broadcasterMock, _ := newTestLocationService(t)
	svc.cfg.LocationHistoryMax = 3
	expectLocationBroadcast(broadcasterMock, "t1", 5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.RecordLocation(ctx, locationInput("u1", "t1", float64(i), 0))
		require.NoError(t, err)
	}

	page, err := svc.History(ctx, "u1", "t1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, defaultHistoryLimit, page.Limit)
	require.Len(t, page.Locations, 3)
	assert.Equal(t, 4.0, page.Locations[0].Latitude)
	assert.Equal(t, 2.0, page.Locations[2].Latitude)
}

func TestHistory_Pagination(t *testing.T) {
	svc, broadcasterMock, _ := newTestLocationService(t)
	expectLocationBroadcast(broadcasterMock, "t1", 4)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.RecordLocation(ctx, locationInput("u1", "t1", float64(i), 0))
		require.NoError(t, err)
	}

	page, err := svc.History(ctx, "u1", "t1", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	require.Len(t, page.Locations, 2)
	assert.Equal(t, 2.0, page.Locations[0].Latitude)
	assert.Equal(t, 1.0, page.Locations[1].Latitude)

	page, err = svc.History(ctx, "u1", "t1", 5000, -3)
	require.NoError(t, err)
	assert.Equal(t, maxHistoryLimit, page.Limit)
	assert.Equal(t, 0, page.Offset)
	assert.Len(t, page.Locations, 4)
}

func TestHistory_UnknownTourIsEmpty(t *testing.T) {
	svc, _, _ := newTestLocationService(t)

	page, err := svc.History(context.Background(), "u1", "nope", 10, 0)

	require.NoError(t, err)
	assert.Empty(t, page.Locations)
	assert.Equal(t, int64(0), page.Total)
}

func TestCurrentLocation_NotFoundAndExpired(t *testing.T) {
	svc, broadcasterMock, mr := newTestLocationService(t)
	ctx := context.Background()

	_, err := svc.CurrentLocation(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)

	expectLocationBroadcast(broadcasterMock, "t1", 1)
	_, err = svc.RecordLocation(ctx, locationInput("u1", "t1", 1, 2))
	require.NoError(t, err)

	mr.FastForward(61 * time.Minute)

	_, err = svc.CurrentLocation(ctx, "u1")
	require.ErrorIs(t, err, ErrNotFound)
	tours, err := svc.ActiveTours(ctx)
	require.NoError(t, err)
	assert.Empty(t, tours)
}

func TestStartTracking_Idempotent(t *testing.T) {
	svc, _, mr := newTestLocationService(t)
	ctx := context.Background()

	first, err := svc.StartTracking(ctx, "t1", "u1")
	require.NoError(t, err)
	assert.Equal(t, models.TrackingStatusActive, first.Status)
	assert.Equal(t, 24*time.Hour, mr.TTL(trackingKey("t1")))

	svc.now = func() time.Time { return testNow.Add(time.Minute) }
	second, err := svc.StartTracking(ctx, "t1", "u2")
	require.NoError(t, err)
	assert.Equal(t, "u1", second.UserID)
	assert.Equal(t, testNow, *second.StartedAt)
}

func TestStartTracking_RequiresIDs(t *testing.T) {
	svc, _, _ := newTestLocationService(t)

	_, err := svc.StartTracking(context.Background(), "t1", "")

	require.ErrorIs(t, err, ErrValidation)
}

func TestRecordLocation_PreservesTrackingStart(t *testing.T) {
	svc, broadcasterMock, _ := newTestLocationService(t)
	ctx := context.Background()
	expectLocationBroadcast(broadcasterMock, "t1", 1)

	_, err := svc.StartTracking(ctx, "t1", "u1")
	require.NoError(t, err)

	svc.now = func() time.Time { return testNow.Add(10 * time.Minute) }
	_, err = svc.RecordLocation(ctx, locationInput("u1", "t1", 1, 2))
	require.NoError(t, err)

	tours, err := svc.ActiveTours(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	require.NotNil(t, tours[0].StartedAt)
	assert.Equal(t, testNow, *tours[0].StartedAt)
	assert.Equal(t, testNow.Add(10*time.Minute), *tours[0].LastUpdate)
}

func TestStopTracking(t *testing.T) {
	svc, broadcasterMock, mr := newTestLocationService(t)
	ctx := context.Background()

	_, err := svc.StartTracking(ctx, "t1", "u1")
	require.NoError(t, err)

	broadcasterMock.EXPECT().Publish(broadcast.TourGroup("t1"), broadcast.EventTourEnded, gomock.Any()).Times(1)
	broadcasterMock.EXPECT().Publish(broadcast.DashboardGroup, broadcast.EventTourEnded, gomock.Any()).Times(1)

	require.NoError(t, svc.StopTracking(ctx, "t1"))
	assert.False(t, mr.Exists(trackingKey("t1")))
}

func TestActiveTours_SkipsMalformedAndSorts(t *testing.T) {
	svc, _, mr := newTestLocationService(t)
	ctx := context.Background()

	for _, id := range []string{"t3", "t1", "t2"} {
		_, err := svc.StartTracking(ctx, id, "u-"+id)
		require.NoError(t, err)
	}
	require.NoError(t, mr.Set(trackingKey("broken"), "{not json"))

	tours, err := svc.ActiveTours(ctx)

	require.NoError(t, err)
	require.Len(t, tours, 3)
	assert.Equal(t, "t1", tours[0].TourID)
	assert.Equal(t, "t3", tours[2].TourID)
}

func TestRecordPoint(t *testing.T) {
	svc, broadcasterMock, mr := newTestLocationService(t)
	ctx := context.Background()

	broadcasterMock.EXPECT().Publish(broadcast.DashboardGroup, broadcast.EventLocationUpdate, gomock.Any()).Times(1)

	point, err := svc.RecordPoint(ctx, ptr(10.0), ptr(20.0))
	require.NoError(t, err)

	raw, err := mr.Get(pointKey(point.ID))
	require.NoError(t, err)
	var stored models.PointLocation
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, 10.0, stored.Latitude)

	_, err = svc.RecordPoint(ctx, nil, ptr(20.0))
	require.ErrorIs(t, err, ErrValidation)
}
