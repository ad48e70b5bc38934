package middleware

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusRecordsRenders(t *testing.T) {
	m := Prometheus(WithRegistry(prometheus.NewRegistry()))

	if err := m.Handle(&Op{Kind: OpRender, Page: "/users"}, func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := metricCounterValue(t, m.opsTotal.WithLabelValues("render", "/users", "success")); got != 1 {
		t.Errorf("ops_total(success) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.opsTotal.WithLabelValues("render", "/users", "error")); got != 0 {
		t.Errorf("ops_total(error) = %v, want 0", got)
	}
	if got := metricHistogramCount(t, m.opDuration.WithLabelValues("render", "/users")); got != 1 {
		t.Errorf("op_duration_seconds count = %d, want 1", got)
	}
}

func TestPrometheusRecordsErrors(t *testing.T) {
	m := Prometheus(WithRegistry(prometheus.NewRegistry()))

	wantErr := errors.New("unknown page")
	err := m.Handle(&Op{Kind: OpRender, Page: ""}, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}

	if got := metricCounterValue(t, m.opsTotal.WithLabelValues("render", "/", "error")); got != 1 {
		t.Errorf("ops_total(error) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.opErrors.WithLabelValues("render", "/", "not_found")); got != 1 {
		t.Errorf("op_errors_total(not_found) = %v, want 1", got)
	}
}

func TestPrometheusRecordsActivationOutcome(t *testing.T) {
	m := Prometheus(WithRegistry(prometheus.NewRegistry()))

	for _, outcome := range []string{OutcomeInvoked, OutcomeInvoked, OutcomeSubmit, ""} {
		op := &Op{Kind: OpActivate, Page: "/", HID: "h1", Event: "click"}
		_ = m.Handle(op, func() error {
			op.Outcome = outcome
			return nil
		})
	}

	tests := map[string]float64{OutcomeInvoked: 2, OutcomeSubmit: 1, OutcomeNone: 1, OutcomeReset: 0}
	for outcome, want := range tests {
		if got := metricCounterValue(t, m.activations.WithLabelValues("/", outcome)); got != want {
			t.Errorf("activations_total(%s) = %v, want %v", outcome, got, want)
		}
	}
}

func TestPrometheusConnectionRecorders(t *testing.T) {
	m := Prometheus(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

	m.ConnOpened()
	m.ConnOpened()
	m.ConnClosed()
	m.WebSocketError("read")

	if got := metricGaugeValue(t, m.liveConnections); got != 1 {
		t.Errorf("live_connections = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket_errors_total(read) = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ConnOpened()
	m.ConnClosed()
	m.WebSocketError("write")

	called := false
	if err := Run(&Op{Kind: OpRender}, func() error { called = true; return nil }, m); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("nil *Metrics should still call next")
	}
}

func TestPrometheusRegistersNamespacedNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(WithRegistry(reg), WithNamespace("site"))
	_ = m.Handle(&Op{Kind: OpRender, Page: "/"}, func() error { return nil })
	m.ConnOpened()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"site_ops_total", "site_op_duration_seconds", "site_live_connections"} {
		if !names[want] {
			t.Errorf("metric %q not registered; got %v", want, names)
		}
	}
}

func TestCategorizeError(t *testing.T) {
	tests := map[string]string{
		"i/o timeout":               "timeout",
		"context deadline exceeded": "timeout",
		"context canceled":          "canceled",
		"E302: Unknown page":        "not_found",
		"websocket: close 1006":     "websocket",
		"boom":                      "internal",
	}
	for msg, want := range tests {
		if got := categorizeError(errors.New(msg)); got != want {
			t.Errorf("categorizeError(%q) = %q, want %q", msg, got, want)
		}
	}
}
