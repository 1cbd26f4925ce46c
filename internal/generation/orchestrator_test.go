package generation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
	"github.com/yungbote/docforge-backend/internal/platform/logger"
)

type stubGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func newTestOrchestrator(gen Generator) *Orchestrator {
	return NewOrchestrator(gen, logger.Nop())
}

func TestGenerateOutlineTruncatesAndNeverPads(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{reply: "\n  Introduction \n\nBackground\r\nAnalysis\nFindings\nConclusion\nAppendix\n"}
	o := newTestOrchestrator(gen)

	for n := MinOutlineSections; n <= 6; n++ {
		titles, err := o.GenerateOutline(ctx, "AI in healthcare", types.DocumentTypeWord, n)
		require.NoError(t, err)
		require.Len(t, titles, n)
	}

	titles, err := o.GenerateOutline(ctx, "AI in healthcare", types.DocumentTypeWord, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"Introduction", "Background", "Analysis", "Findings", "Conclusion", "Appendix"}, titles)
}

func TestGenerateOutlinePromptDependsOnKind(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{reply: "A\nB"}
	o := newTestOrchestrator(gen)

	_, err := o.GenerateOutline(ctx, "Cloud costs", types.DocumentTypeWord, 2)
	require.NoError(t, err)
	_, err = o.GenerateOutline(ctx, "Cloud costs", types.DocumentTypeSlideDeck, 2)
	require.NoError(t, err)

	require.Contains(t, gen.prompts[0], "Generate 2 section titles for a professional Word document about: Cloud costs")
	require.Contains(t, gen.prompts[1], "Generate 2 slide titles for a professional PowerPoint presentation about: Cloud costs")
	for _, p := range gen.prompts {
		require.Contains(t, p, "without numbering")
	}
}

func TestGenerateOutlineRejectsBadCountWithoutCalling(t *testing.T) {
	gen := &stubGenerator{reply: "A"}
	o := newTestOrchestrator(gen)

	for _, n := range []int{0, -1, MaxOutlineSections + 1} {
		_, err := o.GenerateOutline(context.Background(), "topic", types.DocumentTypeWord, n)
		require.True(t, apierr.Is(err, apierr.CodeValidation), "n=%d err=%v", n, err)
	}
	_, err := o.GenerateOutline(context.Background(), "topic", types.DocumentType("pdf"), 3)
	require.True(t, apierr.Is(err, apierr.CodeValidation))
	require.Empty(t, gen.prompts)
}

func TestGenerateOutlineEmptyResponseFails(t *testing.T) {
	o := newTestOrchestrator(&stubGenerator{reply: " \n\n  "})
	_, err := o.GenerateOutline(context.Background(), "topic", types.DocumentTypeWord, 3)
	require.True(t, apierr.Is(err, apierr.CodeGenerationFailed))
}

func TestCapabilityErrorsAreTaggedWithOperation(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("quota exceeded")
	o := newTestOrchestrator(&stubGenerator{err: cause})

	_, err := o.GenerateOutline(ctx, "topic", types.DocumentTypeWord, 3)
	requireGenerationFailed(t, err, OpGenerateOutline, cause)

	_, err = o.GenerateSectionContent(ctx, "topic", "Intro", types.DocumentTypeSlideDeck, "")
	requireGenerationFailed(t, err, OpGenerateSectionContent, cause)

	_, err = o.RefineContent(ctx, "old", "shorter", types.DocumentTypeWord)
	requireGenerationFailed(t, err, OpRefineContent, cause)
}

func requireGenerationFailed(t *testing.T, err error, op string, cause error) {
	t.Helper()
	require.Error(t, err)
	e := apierr.From(err)
	require.Equal(t, apierr.CodeGenerationFailed, e.Code)
	require.Equal(t, http.StatusBadGateway, e.Status)
	require.True(t, strings.HasPrefix(e.Error(), op+" failed"), e.Error())
	require.ErrorIs(t, err, cause)
}

func TestGenerateSectionContentPrompts(t *testing.T) {
	ctx := context.Background()
	gen := &stubGenerator{reply: "  Body text.  \n"}
	o := newTestOrchestrator(gen)

	out, err := o.GenerateSectionContent(ctx, "Q3 results", "Revenue", types.DocumentTypeWord, "focus on EMEA")
	require.NoError(t, err)
	require.Equal(t, "Body text.", out)

	_, err = o.GenerateSectionContent(ctx, "Q3 results", "Revenue", types.DocumentTypeSlideDeck, "")
	require.NoError(t, err)

	word, slides := gen.prompts[0], gen.prompts[1]
	require.Contains(t, word, "Section Title: Revenue")
	require.Contains(t, word, "2-3 well-structured paragraphs (150-250 words)")
	require.Contains(t, word, "Do not include the section title")
	require.Contains(t, word, "Additional Context: focus on EMEA")

	require.Contains(t, slides, "Slide Title: Revenue")
	require.Contains(t, slides, "3-5 bullet points")
	require.Contains(t, slides, "(•)")
	require.NotContains(t, slides, "Additional Context")
}

func TestGenerateSectionContentBlankReplyFails(t *testing.T) {
	o := newTestOrchestrator(&stubGenerator{reply: "   "})
	_, err := o.GenerateSectionContent(context.Background(), "t", "Intro", types.DocumentTypeWord, "")
	require.True(t, apierr.Is(err, apierr.CodeGenerationFailed))
}

func TestRefineContentEmbedsOriginalAndInstruction(t *testing.T) {
	gen := &stubGenerator{reply: "• Shorter point\n"}
	o := newTestOrchestrator(gen)

	out, err := o.RefineContent(context.Background(), "• Original point", "make it shorter", types.DocumentTypeSlideDeck)
	require.NoError(t, err)
	require.Equal(t, "• Shorter point", out)

	p := gen.prompts[0]
	require.Contains(t, p, "refining content for a PowerPoint presentation")
	require.Contains(t, p, "Original Content:\n• Original point")
	require.Contains(t, p, "User's Refinement Request:\nmake it shorter")

	_, err = o.RefineContent(context.Background(), "x", "  ", types.DocumentTypeWord)
	require.True(t, apierr.Is(err, apierr.CodeValidation))
}

func TestGenerationCallsAreTraced(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	o := NewOrchestrator(&stubGenerator{err: errors.New("down")}, logger.Nop(), WithTracer(tp.Tracer("test")))

	_, _ = o.RefineContent(context.Background(), "x", "y", types.DocumentTypeWord)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "generation."+OpRefineContent, spans[0].Name())
	require.NotEmpty(t, spans[0].Events())
}

func TestGeneratorFuncAdapts(t *testing.T) {
	var got string
	g := GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return "ok", nil
	})
	out, err := g.GenerateText(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "ok", out)
	require.Equal(t, "p", got)
}
