package generation

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/observability"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

const (
	OpGenerateOutline        = "generate_outline"
	OpGenerateSectionContent = "generate_section_content"
	OpRefineContent          = "refine_content"

	MinOutlineSections = 1
	MaxOutlineSections = 20
)

// Generator is the external text-generation capability: prompt in, raw text out.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Orchestrator turns authoring intents into prompts and parses what comes back.
// It never touches persisted state.
type Orchestrator struct {
	gen     Generator
	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

type Option func(*Orchestrator)

func WithMetrics(m *observability.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.tracer = t
		}
	}
}

func NewOrchestrator(gen Generator, log *logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:    gen,
		log:    log.With("service", "GenerationOrchestrator"),
		tracer: otel.Tracer("docforge/generation"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GenerateOutline returns at most n section titles, exactly n when the model
// supplies enough non-empty lines.
func (o *Orchestrator) GenerateOutline(ctx context.Context, topic string, docType types.DocumentType, n int) ([]string, error) {
	if n < MinOutlineSections || n > MaxOutlineSections {
		return nil, apierr.Validation("num_sections must be between %d and %d", MinOutlineSections, MaxOutlineSections)
	}
	if strings.TrimSpace(topic) == "" {
		return nil, apierr.Validation("topic is required")
	}
	if !docType.Valid() {
		return nil, apierr.Validation("unsupported document_type %q", docType)
	}

	raw, err := o.call(ctx, OpGenerateOutline, outlinePrompt(topic, docType, n),
		attribute.String("document_type", string(docType)),
		attribute.Int("num_sections", n),
	)
	if err != nil {
		return nil, err
	}
	titles := parseOutline(raw, n)
	if len(titles) == 0 {
		return nil, apierr.GenerationFailed(OpGenerateOutline, nil)
	}
	return titles, nil
}

func (o *Orchestrator) GenerateSectionContent(ctx context.Context, topic, title string, docType types.DocumentType, additionalContext string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", apierr.Validation("section title is required")
	}
	if !docType.Valid() {
		return "", apierr.Validation("unsupported document_type %q", docType)
	}

	raw, err := o.call(ctx, OpGenerateSectionContent, sectionPrompt(topic, title, docType, additionalContext),
		attribute.String("document_type", string(docType)),
	)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", apierr.GenerationFailed(OpGenerateSectionContent, nil)
	}
	return text, nil
}

// RefineContent asks for a full replacement of original, not a diff.
func (o *Orchestrator) RefineContent(ctx context.Context, original, instruction string, docType types.DocumentType) (string, error) {
	if strings.TrimSpace(instruction) == "" {
		return "", apierr.Validation("refinement_prompt is required")
	}
	if !docType.Valid() {
		return "", apierr.Validation("unsupported document_type %q", docType)
	}

	raw, err := o.call(ctx, OpRefineContent, refinePrompt(original, instruction, docType),
		attribute.String("document_type", string(docType)),
	)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", apierr.GenerationFailed(OpRefineContent, nil)
	}
	return text, nil
}

func (o *Orchestrator) call(ctx context.Context, op, prompt string, attrs ...attribute.KeyValue) (string, error) {
	ctx, span := o.tracer.Start(ctx, "generation."+op, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	raw, err := o.gen.GenerateText(ctx, prompt)
	dur := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.metrics.ObserveGeneration(op, "error", dur)
		o.log.Warn("generation failed", "op", op, "error", err, "duration_ms", dur.Milliseconds())
		return "", apierr.GenerationFailed(op, err)
	}
	span.SetAttributes(attribute.Int("response_chars", len(raw)))
	o.metrics.ObserveGeneration(op, "ok", dur)
	o.log.Debug("generation done", "op", op, "duration_ms", dur.Milliseconds(), "response_chars", len(raw))
	return raw, nil
}
