package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain"
)

var _ inventory.Metrics = (*LedgerMetrics)(nil)

const namespace = "vaccine_ledger"

// Resultados posibles (etiqueta "outcome").
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// LedgerMetrics publica en Prometheus las operaciones del ledger.
type LedgerMetrics struct {
	operations  *prometheus.CounterVec
	doses       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	lotsRetired prometheus.Counter
}

// NewLedgerMetrics crea los colectores y los registra en reg.
func NewLedgerMetrics(reg prometheus.Registerer) (*LedgerMetrics, error) {
	m := &LedgerMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Operaciones del ledger por tipo y resultado.",
		}, []string{"operation", "outcome"}),
		doses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doses_total",
			Help:      "Dosis movidas por operaciones confirmadas.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duración de las operaciones del ledger.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		lotsRetired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lots_retired_total",
			Help:      "Lotes eliminados al consumirse su última dosis.",
		}),
	}
	for _, c := range []prometheus.Collector{m.operations, m.doses, m.duration, m.lotsRetired} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveOperation registra el resultado de una operación. Las dosis solo cuentan si confirmó.
func (m *LedgerMetrics) ObserveOperation(op string, doses int, err error, elapsed time.Duration) {
	outcome := Outcome(err)
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	if outcome == OutcomeOK && doses > 0 {
		m.doses.WithLabelValues(op).Add(float64(doses))
	}
}

func (m *LedgerMetrics) LotRetired() {
	m.lotsRetired.Inc()
}

// Outcome clasifica un error de dominio para la etiqueta "outcome".
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
