package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/telly/internal/core/ports"
)

// Bridge is an sdktrace.SpanProcessor that reports task spans to a Renderer.
// Spans without TaskAttribute are ignored.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge reporting to renderer.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart reports the start of a task body. The parent is the task that
// invoked it, if any.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}
	name, ok := stringAttr(s.Attributes(), TaskAttribute)
	if !ok {
		return
	}

	var parentID string
	if sc := trace.SpanContextFromContext(parent); sc.IsValid() {
		parentID = sc.SpanID().String()
	}

	b.renderer.OnTaskStart(s.SpanContext().SpanID().String(), parentID, name, s.StartTime())
}

// OnEnd reports the outcome of a task body.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}
	if _, ok := stringAttr(s.Attributes(), TaskAttribute); !ok {
		return
	}

	b.renderer.OnTaskComplete(s.SpanContext().SpanID().String(), s.EndTime(), spanError(s))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// spanError rebuilds the failure of a span from its status. The exit status
// of a failed tool is appended when the span carries one.
func spanError(s sdktrace.ReadOnlySpan) error {
	if s.Status().Code != codes.Error {
		return nil
	}

	desc := s.Status().Description
	if desc == "" {
		desc = "task failed"
	}

	for _, kv := range s.Attributes() {
		if kv.Key == ExitCodeAttribute {
			return fmt.Errorf("%s (exit status %d)", desc, kv.Value.AsInt64())
		}
	}
	return errors.New(desc)
}

func stringAttr(attrs []attribute.KeyValue, key attribute.Key) (string, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value.AsString(), true
		}
	}
	return "", false
}
