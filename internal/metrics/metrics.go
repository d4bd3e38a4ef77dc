package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tourist_safety"

// Исходы отправки SMS
const (
	SMSSent     = "sent"
	SMSFailed   = "failed"
	SMSRejected = "rejected"
)

// Metrics - коллекторы сервиса. Все методы безопасны для nil-получателя,
// чтобы тесты и вспомогательные конструкторы могли обходиться без метрик.
type Metrics struct {
	registry prometheus.Gatherer

	locationUpdates    prometheus.Counter
	alertsTriggered    prometheus.Counter
	alertStatusChanges *prometheus.CounterVec
	smsDispatch        *prometheus.CounterVec
	wsConnections      prometheus.Gauge
	wsDroppedFrames    prometheus.Counter
	backgroundTasks    *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New регистрирует коллекторы в собственном реестре
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		locationUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_updates_total",
			Help:      "Location records accepted over HTTP",
		}),
		alertsTriggered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emergency_alerts_total",
			Help:      "Emergency alerts created",
		}),
		alertStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emergency_status_updates_total",
			Help:      "Emergency status updates by new status",
		}, []string{"status"}),
		smsDispatch: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sms_dispatch_total",
			Help:      "SMS dispatch attempts by result",
		}, []string{"result"}),
		wsConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Currently connected WebSocket clients",
		}),
		wsDroppedFrames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ws_dropped_frames_total",
			Help:      "Frames dropped because a client send buffer was full",
		}),
		backgroundTasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "background_tasks_total",
			Help:      "Background tasks by name and result",
		}, []string{"task", "result"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) LocationUpdated() {
	if m == nil {
		return
	}
	m.locationUpdates.Inc()
}

func (m *Metrics) AlertTriggered() {
	if m == nil {
		return
	}
	m.alertsTriggered.Inc()
}

func (m *Metrics) AlertStatusChanged(status string) {
	if m == nil {
		return
	}
	m.alertStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) SMSDispatched(result string) {
	if m == nil {
		return
	}
	m.smsDispatch.WithLabelValues(result).Inc()
}

func (m *Metrics) ClientConnected() {
	if m == nil {
		return
	}
	m.wsConnections.Inc()
}

func (m *Metrics) ClientDisconnected() {
	if m == nil {
		return
	}
	m.wsConnections.Dec()
}

func (m *Metrics) FrameDropped() {
	if m == nil {
		return
	}
	m.wsDroppedFrames.Inc()
}

func (m *Metrics) TaskFinished(task string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.backgroundTasks.WithLabelValues(task, result).Inc()
}

// Middleware учитывает запросы по шаблону маршрута, а не по сырому пути,
// чтобы id в URL не раздували кардинальность
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler отдает метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
