package middleware

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingProvider struct {
	embedded.TracerProvider
	spans *[]*recordingSpan
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return recordingTracer{spans: p.spans}
}

type recordingTracer struct {
	embedded.Tracer
	spans *[]*recordingSpan
}

func (t recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{name: name, attrs: cfg.Attributes(), kind: cfg.SpanKind()}
	*t.spans = append(*t.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordingSpan struct {
	noop.Span
	name   string
	kind   trace.SpanKind
	attrs  []attribute.KeyValue
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}
func (s *recordingSpan) SetStatus(code codes.Code, _ string) { s.status = code }
func (s *recordingSpan) End(...trace.SpanEndOption)          { s.ended = true }

func (s *recordingSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func newRecorder() (trace.TracerProvider, *[]*recordingSpan) {
	spans := &[]*recordingSpan{}
	return recordingProvider{spans: spans}, spans
}

func TestOpenTelemetryTracesActivation(t *testing.T) {
	tp, spans := newRecorder()
	mw := OpenTelemetry(
		WithTracerProvider(tp),
		WithAttributeExtractor(func(*Op) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	op := &Op{Kind: OpActivate, Page: "/users", HID: "h1", Event: "click"}
	err := mw.Handle(op, func() error {
		if _, ok := SpanFromOp(op).(*recordingSpan); !ok {
			t.Errorf("SpanFromOp() = %T, want the active span", SpanFromOp(op))
		}
		op.Outcome = OutcomeInvoked
		op.Changed = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(*spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(*spans))
	}
	s := (*spans)[0]
	if s.name != "activate /users" {
		t.Errorf("span name = %q", s.name)
	}
	if s.kind != trace.SpanKindServer {
		t.Errorf("span kind = %v", s.kind)
	}
	if !s.ended || s.status != codes.Ok {
		t.Errorf("span ended=%v status=%v", s.ended, s.status)
	}
	for key, want := range map[string]string{
		"dailycontents.hid":     "h1",
		"dailycontents.event":   "click",
		"dailycontents.outcome": OutcomeInvoked,
		"test.attr":             "ok",
	} {
		if v, ok := s.attr(key); !ok || v.AsString() != want {
			t.Errorf("attribute %s = %v, want %q", key, v.Emit(), want)
		}
	}
	if v, ok := s.attr("dailycontents.changed"); !ok || !v.AsBool() {
		t.Error("dailycontents.changed should be true")
	}
	if op.Ctx != nil {
		t.Error("op.Ctx should be restored after the span ends")
	}
}

func TestOpenTelemetryRecordsError(t *testing.T) {
	tp, spans := newRecorder()
	wantErr := errors.New("boom")

	err := OpenTelemetry(WithTracerProvider(tp)).Handle(&Op{Kind: OpRender, Page: "/"}, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}

	s := (*spans)[0]
	if s.status != codes.Error {
		t.Errorf("status = %v, want Error", s.status)
	}
	if len(s.errs) != 1 || !errors.Is(s.errs[0], wantErr) {
		t.Errorf("recorded errors = %v", s.errs)
	}
	if _, ok := s.attr("dailycontents.hid"); ok {
		t.Error("render spans should not carry a hid")
	}
}

func TestOpenTelemetryFilterSkipsTracing(t *testing.T) {
	tp, spans := newRecorder()

	nextCalled := false
	op := &Op{Kind: OpRender, Page: "/healthz"}
	err := OpenTelemetry(
		WithTracerProvider(tp),
		WithOpFilter(func(op *Op) bool { return op.Page != "/healthz" }),
	).Handle(op, func() error {
		nextCalled = true
		if SpanFromOp(op).IsRecording() {
			t.Error("expected no recording span when the filter skips tracing")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nextCalled {
		t.Fatal("expected next to be called")
	}
	if len(*spans) != 0 {
		t.Errorf("recorded %d spans, want 0", len(*spans))
	}
}

func TestOpenTelemetryGlobalProvider(t *testing.T) {
	op := &Op{Kind: OpRender, Page: "/"}
	if err := OpenTelemetry().Handle(op, func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
