package generation

import (
	"fmt"
	"strings"

	types "github.com/yungbote/docforge-backend/internal/domain"
)

func outlinePrompt(topic string, docType types.DocumentType, n int) string {
	var b strings.Builder
	if docType == types.DocumentTypeSlideDeck {
		fmt.Fprintf(&b, "Generate %d slide titles for a professional PowerPoint presentation about: %s\n\n", n, topic)
		b.WriteString("Return only the slide titles, one per line, without numbering or extra formatting.\n")
		b.WriteString("Example format:\n")
		fmt.Fprintf(&b, "Introduction to %s\nKey Concepts\nMain Points\nAnalysis and Insights\nConclusion and Next Steps", topic)
		return b.String()
	}
	fmt.Fprintf(&b, "Generate %d section titles for a professional Word document about: %s\n\n", n, topic)
	b.WriteString("Return only the section titles, one per line, without numbering or extra formatting.\n")
	b.WriteString("Example format:\n")
	b.WriteString("Introduction\nBackground and Context\nMain Analysis\nKey Findings\nConclusion")
	return b.String()
}

func sectionPrompt(topic, title string, docType types.DocumentType, additionalContext string) string {
	var b strings.Builder
	if docType == types.DocumentTypeSlideDeck {
		b.WriteString("Write concise content for a PowerPoint slide.\n\n")
		fmt.Fprintf(&b, "Presentation Topic: %s\n", topic)
		fmt.Fprintf(&b, "Slide Title: %s\n", title)
	} else {
		b.WriteString("Write professional content for a Word document section.\n\n")
		fmt.Fprintf(&b, "Document Topic: %s\n", topic)
		fmt.Fprintf(&b, "Section Title: %s\n", title)
	}
	if extra := strings.TrimSpace(additionalContext); extra != "" {
		fmt.Fprintf(&b, "Additional Context: %s\n", extra)
	}
	b.WriteString("\n")
	if docType == types.DocumentTypeSlideDeck {
		b.WriteString("Write 3-5 bullet points with clear, concise content suitable for a presentation slide.\n")
		b.WriteString("Format each point on a new line starting with a bullet point (•).\n")
		b.WriteString("Keep each point to 1-2 sentences maximum.")
		return b.String()
	}
	b.WriteString("Write 2-3 well-structured paragraphs (150-250 words) with clear, professional content.\n")
	b.WriteString("Do not include the section title in your response, only the content.")
	return b.String()
}

func refinePrompt(original, instruction string, docType types.DocumentType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are refining content for a %s.\n\n", docType.Label())
	b.WriteString("Original Content:\n")
	b.WriteString(original)
	b.WriteString("\n\nUser's Refinement Request:\n")
	b.WriteString(instruction)
	b.WriteString("\n\nPlease provide the refined version of the content following the user's instructions.\n")
	b.WriteString("Return the complete replacement text, not a list of changes.\n")
	b.WriteString("Maintain professional tone and appropriate length for the document type.")
	if docType == types.DocumentTypeSlideDeck {
		b.WriteString("\nKeep one bullet point per line, each starting with •.")
	}
	return b.String()
}
