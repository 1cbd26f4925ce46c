package export

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// run is a span of text sharing one character format. Break marks a line
// break emitted before Text.
type run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	Break  bool
}

// Only the paragraph block parser is registered: model output such as
// "# Title" or "- item" stays literal text and the caller keeps full control
// over block layout.
var inlineParser = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
	parser.WithInlineParsers(parser.DefaultInlineParsers()...),
)

const inlineMarkers = "*_`<[\\"

// inlineRuns splits one paragraph of model output into formatted runs.
// Each newline becomes a break; emphasis does not span lines.
func inlineRuns(s string) []run {
	var out []run
	for i, line := range strings.Split(s, "\n") {
		runs := lineRuns(strings.TrimRight(line, "\r"))
		if i > 0 {
			if len(runs) == 0 {
				runs = []run{{}}
			}
			runs[0].Break = true
		}
		out = append(out, runs...)
	}
	return out
}

func lineRuns(line string) []run {
	if line == "" {
		return nil
	}
	if !strings.ContainsAny(line, inlineMarkers) {
		return []run{{Text: line}}
	}

	src := []byte(line)
	doc := inlineParser.Parse(text.NewReader(src))

	var (
		out    []run
		bold   int
		italic int
		code   int
	)
	emit := func(t string) {
		if t != "" {
			out = append(out, run{Text: t, Bold: bold > 0, Italic: italic > 0, Code: code > 0})
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Emphasis:
			delta := 1
			if !entering {
				delta = -1
			}
			if node.Level >= 2 {
				bold += delta
			} else {
				italic += delta
			}
		case *ast.CodeSpan:
			if entering {
				code++
			} else {
				code--
			}
		case *ast.Text:
			if entering {
				val := node.Segment.Value(src)
				if code == 0 {
					val = util.UnescapePunctuations(val)
				}
				emit(string(val))
			}
		case *ast.String:
			if entering {
				emit(string(node.Value))
			}
		case *ast.AutoLink:
			if entering {
				emit(string(node.Label(src)))
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			if entering {
				var b strings.Builder
				for i := 0; i < node.Segments.Len(); i++ {
					seg := node.Segments.At(i)
					b.Write(seg.Value(src))
				}
				emit(b.String())
			}
		}
		return ast.WalkContinue, nil
	})

	if len(out) == 0 {
		return []run{{Text: line}}
	}
	return out
}
