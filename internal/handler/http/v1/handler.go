package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/tourist_safety/internal/broadcast"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
	"github.com/sirupsen/logrus"
)

const healthTimeout = 2 * time.Second

// Pinger проверяет доступность хранилища состояния
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionStats - источник числа активных WebSocket-подключений
type ConnectionStats interface {
	Stats() broadcast.HubStats
}

// WSServer принимает апгрейд соединения до WebSocket
type WSServer interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	locationService  service.LocationService
	emergencyService service.EmergencyService
	ws               WSServer
	store            Pinger
	conns            ConnectionStats
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(
	locationService service.LocationService,
	emergencyService service.EmergencyService,
	ws WSServer,
	store Pinger,
	conns ConnectionStats,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		locationService:  locationService,
		emergencyService: emergencyService,
		ws:               ws,
		store:            store,
		conns:            conns,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// bindAndValidate разбирает тело запроса и проверяет теги validate.
// При ошибке ответ уже отправлен.
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondError сопоставляет ошибку сервиса со статусом HTTP
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn("Request rejected by service")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, service.ErrInvalidTransition):
		log.WithError(err).Warn("Status transition rejected")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Service call failed")
		msg := "internal server error"
		if !h.cfg.IsProduction() {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// @Summary Simple location update
// @Description Store a single point without tour binding and relay it to the police dashboard
// @Tags Location
// @Accept json
// @Produce json
// @Param location body PointRequest true "Point"
// @Success 200 {object} PointResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location [post]
func (h *Handler) recordPoint(c *gin.Context) {
	var input PointRequest
	log := h.logger.WithField("method", "recordPoint")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	point, err := h.locationService.RecordPoint(c.Request.Context(), input.Lat, input.Lng)
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, PointResponse{Success: true, Message: "Location updated successfully", Data: point})
}

// @Summary Tracked location update
// @Description Store a tourist position, extend tour tracking and broadcast it
// @Tags Location
// @Accept json
// @Produce json
// @Param location body LocationUpdateRequest true "Location update"
// @Success 200 {object} LocationUpdateResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/update [post]
func (h *Handler) recordLocation(c *gin.Context) {
	var input LocationUpdateRequest
	log := h.logger.WithField("method", "recordLocation")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	record, err := h.locationService.RecordLocation(c.Request.Context(), DTOToLocationInput(input))
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, LocationUpdateResponse{Success: true, LocationID: record.ID, Timestamp: record.ReceivedAt})
}

// @Summary Current user location
// @Description Get the latest stored position of a user
// @Tags Location
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} CurrentLocationResponse
// @Failure 404 {object} map[string]string "No location data"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/current/{userId} [get]
func (h *Handler) currentLocation(c *gin.Context) {
	userID := c.Param("userId")
	log := h.logger.WithField("method", "currentLocation").WithField("user_id", userID)

	record, err := h.locationService.CurrentLocation(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, log, err, "no location data found for user")
		return
	}

	c.JSON(http.StatusOK, CurrentLocationResponse{Location: record})
}

// @Summary Location history
// @Description Get a page of a user's positions within a tour, newest first
// @Tags Location
// @Produce json
// @Param userId path string true "User ID"
// @Param tourId path string true "Tour ID"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} models.LocationHistoryPage
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/history/{userId}/{tourId} [get]
func (h *Handler) history(c *gin.Context) {
	userID, tourID := c.Param("userId"), c.Param("tourId")
	log := h.logger.WithField("method", "history").WithField("user_id", userID).WithField("tour_id", tourID)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.locationService.History(c.Request.Context(), userID, tourID, limit, offset)
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}
	if page.Locations == nil {
		page.Locations = []*models.LocationRecord{}
	}

	c.JSON(http.StatusOK, page)
}

// @Summary Active tours
// @Description List every tour with live tracking state
// @Tags Location
// @Produce json
// @Success 200 {object} ActiveToursResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/active-tours [get]
func (h *Handler) activeTours(c *gin.Context) {
	log := h.logger.WithField("method", "activeTours")

	tours, err := h.locationService.ActiveTours(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, ActiveToursResponse{ActiveTours: nonNilTours(tours)})
}

// @Summary Start tour tracking
// @Description Mark a tour as tracked. Repeated calls keep the original start.
// @Tags Location
// @Accept json
// @Produce json
// @Param tourId path string true "Tour ID"
// @Param body body StartTrackingRequest true "Tracking owner"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} map[string]string "Missing userId"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/start-tracking/{tourId} [post]
func (h *Handler) startTracking(c *gin.Context) {
	var input StartTrackingRequest
	tourID := c.Param("tourId")
	log := h.logger.WithField("method", "startTracking").WithField("tour_id", tourID)

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if _, err := h.locationService.StartTracking(c.Request.Context(), tourID, input.UserID); err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Tracking started"})
}

// @Summary Stop tour tracking
// @Description Drop tracking state and notify subscribers that the tour ended
// @Tags Location
// @Produce json
// @Param tourId path string true "Tour ID"
// @Success 200 {object} MessageResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /location/stop-tracking/{tourId} [post]
func (h *Handler) stopTracking(c *gin.Context) {
	tourID := c.Param("tourId")
	log := h.logger.WithField("method", "stopTracking").WithField("tour_id", tourID)

	if err := h.locationService.StopTracking(c.Request.Context(), tourID); err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Tracking stopped"})
}

// @Summary Trigger emergency alert
// @Description Create an alert, notify the dashboard and send SMS to emergency contacts in background
// @Tags Emergency
// @Accept json
// @Produce json
// @Param alert body TriggerAlertRequest true "Alert"
// @Success 200 {object} TriggerAlertResponse
// @Failure 400 {object} map[string]string "Missing required fields"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergency/alert [post]
func (h *Handler) triggerAlert(c *gin.Context) {
	var input TriggerAlertRequest
	log := h.logger.WithField("method", "triggerAlert")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert, err := h.emergencyService.TriggerAlert(c.Request.Context(), DTOToAlertInput(input))
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, TriggerAlertResponse{
		Success:     true,
		EmergencyID: alert.ID,
		Message:     "Emergency alert triggered successfully",
		Timestamp:   alert.Timestamp,
	})
}

// @Summary Get emergency alert
// @Tags Emergency
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergency/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getAlert").WithField("id", id)

	alert, err := h.emergencyService.GetAlert(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err, "emergency not found")
		return
	}

	c.JSON(http.StatusOK, EmergencyResponse{Emergency: alert})
}

// @Summary Active emergency alerts
// @Description Newest first, at most the configured index size
// @Tags Emergency
// @Produce json
// @Success 200 {object} EmergencyListResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergency/active/all [get]
func (h *Handler) listActive(c *gin.Context) {
	log := h.logger.WithField("method", "listActive")

	alerts, err := h.emergencyService.ListActive(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, EmergencyListResponse{Emergencies: nonNilAlerts(alerts)})
}

// @Summary Update emergency status
// @Description Move an alert to resolved or closed and record the responder
// @Tags Emergency
// @Accept json
// @Produce json
// @Param id path string true "Emergency ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} UpdateStatusResponse
// @Failure 400 {object} map[string]string "Missing or unknown status"
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 409 {object} map[string]string "Alert already closed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /emergency/{id}/status [patch]
func (h *Handler) updateStatus(c *gin.Context) {
	var input UpdateStatusRequest
	id := c.Param("id")
	log := h.logger.WithField("method", "updateStatus").WithField("id", id)

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert, err := h.emergencyService.UpdateStatus(c.Request.Context(), id, DTOToStatusUpdate(input))
	if err != nil {
		h.respondError(c, log, err, "emergency not found")
		return
	}

	c.JSON(http.StatusOK, UpdateStatusResponse{
		Success:     true,
		Message:     "Emergency status updated",
		EmergencyID: alert.ID,
		Status:      alert.Status,
	})
}

// @Summary Tours for the police console
// @Tags Police
// @Produce json
// @Success 200 {object} PoliceToursResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /police/tours/active [get]
func (h *Handler) policeTours(c *gin.Context) {
	log := h.logger.WithField("method", "policeTours")

	tours, err := h.locationService.ActiveTours(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, PoliceToursResponse{Success: true, Data: nonNilTours(tours), Count: len(tours)})
}

// @Summary Alerts for the police console
// @Tags Police
// @Produce json
// @Success 200 {object} PoliceAlertsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /police/emergency/alerts [get]
func (h *Handler) policeAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "policeAlerts")

	alerts, err := h.emergencyService.ListActive(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, PoliceAlertsResponse{Success: true, Data: nonNilAlerts(alerts), Count: len(alerts)})
}

// @Summary Resolve alert from the police console
// @Tags Police
// @Produce json
// @Param alertId path string true "Emergency ID"
// @Success 200 {object} EmergencyResponse
// @Failure 404 {object} map[string]string "Emergency not found"
// @Failure 409 {object} map[string]string "Alert already closed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /police/emergency/resolve/{alertId} [put]
func (h *Handler) policeResolve(c *gin.Context) {
	id := c.Param("alertId")
	log := h.logger.WithField("method", "policeResolve").WithField("id", id)

	alert, err := h.emergencyService.UpdateStatus(c.Request.Context(), id, models.StatusUpdate{
		Status: models.EmergencyStatusResolved,
	})
	if err != nil {
		h.respondError(c, log, err, "emergency not found")
		return
	}

	c.JSON(http.StatusOK, EmergencyResponse{Emergency: alert})
}

// @Summary Police console statistics
// @Description Count of active tours and active emergencies
// @Tags Police
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /police/stats [get]
func (h *Handler) policeStats(c *gin.Context) {
	log := h.logger.WithField("method", "policeStats")

	stats, err := h.emergencyService.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err, "")
		return
	}

	c.JSON(http.StatusOK, StatsResponse{Success: true, Data: *stats})
}

// @Summary WebSocket endpoint
// @Description Upgrade to a persistent connection for dashboard and tourist events
// @Tags Realtime
// @Success 101 "Switching Protocols"
// @Router /ws [get]
func (h *Handler) serveWS(c *gin.Context) {
	h.ws.ServeWS(c.Writer, c.Request)
}

// @Summary Get application health status
// @Description Get health status of the application and its state store
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Redis: "up"}
	if h.conns != nil {
		resp.Connections = h.conns.Stats().Clients
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.WithField("method", "healthCheck").WithError(err).Error("State store is unreachable")
		resp.Status, resp.Redis = "degraded", "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
