package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScheduleMetrics counts the scheduling mutations the API performs.
type ScheduleMetrics struct {
	visitsCreated    *prometheus.CounterVec
	visitsMoved      prometheus.Counter
	transferDuration prometheus.Histogram
	transferVisits   prometheus.Histogram
}

// NewScheduleMetrics registers the scheduling collectors on the provided registerer.
func NewScheduleMetrics(reg prometheus.Registerer) *ScheduleMetrics {
	if reg == nil {
		return &ScheduleMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_visits_created_total",
		Help: "Visits created, labeled by originating operation.",
	}, []string{"source"})
	moved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_visits_moved_total",
		Help: "Visits moved to another calendar day.",
	})
	transferDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_transfer_duration_seconds",
		Help:    "Duration of month transfer operations in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	transferVisits := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_transfer_visits",
		Help:    "Visits created per month transfer.",
		Buckets: []float64{0, 5, 10, 20, 40, 80, 160},
	})
	reg.MustRegister(created, moved, transferDuration, transferVisits)
	return &ScheduleMetrics{
		visitsCreated:    created,
		visitsMoved:      moved,
		transferDuration: transferDuration,
		transferVisits:   transferVisits,
	}
}

// IncVisitCreated counts a single visit insert for the given source.
func (s *ScheduleMetrics) IncVisitCreated(source string) {
	if s == nil || s.visitsCreated == nil {
		return
	}
	s.visitsCreated.WithLabelValues(normalizeLabel(source)).Inc()
}

// AddVisitsCreated counts a batch of visit inserts for the given source.
func (s *ScheduleMetrics) AddVisitsCreated(source string, count int) {
	if s == nil || s.visitsCreated == nil || count <= 0 {
		return
	}
	s.visitsCreated.WithLabelValues(normalizeLabel(source)).Add(float64(count))
}

// IncVisitMoved counts a visit moved between days.
func (s *ScheduleMetrics) IncVisitMoved() {
	if s == nil || s.visitsMoved == nil {
		return
	}
	s.visitsMoved.Inc()
}

// ObserveTransfer records duration and created count for one transfer.
func (s *ScheduleMetrics) ObserveTransfer(duration time.Duration, created int) {
	if s == nil {
		return
	}
	if s.transferDuration != nil {
		s.transferDuration.Observe(duration.Seconds())
	}
	if s.transferVisits != nil {
		s.transferVisits.Observe(float64(created))
	}
}
