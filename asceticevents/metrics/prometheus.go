package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const eventLabel = "event"

type Prometheus struct {
	emitted     *prometheus.CounterVec
	delivered   *prometheus.CounterVec
	pruned      *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

// NewPrometheus creates the collectors under namespace and registers them
// with reg.
func NewPrometheus(reg prometheus.Registerer, namespace string) (*Prometheus, error) {
	p := &Prometheus{
		emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_emitted_total",
			Help:      "Number of values emitted.",
		}, []string{eventLabel}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_delivered_total",
			Help:      "Number of values handed to subscriber handlers.",
		}, []string{eventLabel}),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_pruned_total",
			Help:      "Number of subscriptions removed because their target was collected.",
		}, []string{eventLabel}),
		subscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_subscribers",
			Help:      "Current number of subscriptions.",
		}, []string{eventLabel}),
	}
	for _, c := range []prometheus.Collector{p.emitted, p.delivered, p.pruned, p.subscribers} {
		if err := reg.Register(c); err != nil {
			return nil, errors.Wrap(err, "metrics: register collector")
		}
	}
	return p, nil
}

func (p *Prometheus) Emitted(event string) {
	p.emitted.WithLabelValues(event).Inc()
}

func (p *Prometheus) Delivered(event string) {
	p.delivered.WithLabelValues(event).Inc()
}

func (p *Prometheus) Pruned(event string) {
	p.pruned.WithLabelValues(event).Inc()
}

func (p *Prometheus) Subscribers(event string, count int) {
	p.subscribers.WithLabelValues(event).Set(float64(count))
}
