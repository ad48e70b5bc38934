package middleware

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "dailycontents"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "dailycontents").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which ops to trace. If nil, all ops are traced.
	Filter func(op *Op) bool

	// AttributeExtractor adds custom attributes to every span.
	AttributeExtractor func(op *Op) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider used instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithOpFilter sets a filter function for ops.
func WithOpFilter(filter func(op *Op) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(op *Op) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every Op.
//
// The span is named after the op kind and page ("render /users") and
// carries the hydration ID and event of activations. Once the work returns,
// the outcome and whether the tree changed are added and errors are
// recorded on the span.
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return MiddlewareFunc(func(op *Op, next func() error) error {
		if config.Filter != nil && !config.Filter(op) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("dailycontents.kind", string(op.Kind)),
			attribute.String("dailycontents.page", op.Page),
		}
		if op.Kind == OpActivate {
			attrs = append(attrs,
				attribute.String("dailycontents.hid", op.HID),
				attribute.String("dailycontents.event", op.Event),
			)
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(op)...)
		}

		ctx, span := tracer.Start(op.Context(), spanName(op),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		parent := op.Ctx
		op.Ctx = ctx
		defer func() { op.Ctx = parent }()

		err := next()

		if op.Outcome != "" {
			span.SetAttributes(attribute.String("dailycontents.outcome", op.Outcome))
		}
		if op.Kind == OpActivate {
			span.SetAttributes(attribute.Bool("dailycontents.changed", op.Changed))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

func spanName(op *Op) string {
	page := op.Page
	if page == "" {
		page = "/"
	}
	return fmt.Sprintf("%s %s", op.Kind, page)
}

// SpanFromOp returns the span recording op, if a tracing middleware is
// currently running it. Otherwise it returns a non-recording span.
func SpanFromOp(op *Op) trace.Span {
	return trace.SpanFromContext(op.Context())
}
