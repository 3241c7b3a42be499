package annotate

import (
	"fmt"
	"strings"
)

// Paragraphs are short by nature; the clip is a guard against pasted walls
// of text blowing past the collaborator's window.
const maxParagraphChars = 8_000

const (
	typeMarker = "TYPE:"
	textMarker = "TEXT:"
)

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func buildClassifyPrompt(paragraph string) string {
	labels := make([]string, 0, len(allLabels))
	for _, label := range allLabels {
		labels = append(labels, string(label))
	}
	return "Classify the following paragraph of personal writing into exactly one category.\n" +
		"Respond with only the category name, nothing else.\n\n" +
		"Categories: " + strings.Join(labels, ", ") + "\n\n" +
		"Paragraph:\n" + clipText(paragraph, maxParagraphChars)
}

// outputShape is shared by every strategy so the parser stays uniform.
const outputShape = "Respond in exactly this shape:\n" +
	"TYPE: commentary or question\n" +
	"TEXT: your response on the following line(s)\n" +
	"Keep TEXT under 50 words."

func buildStrategyPrompt(label Label, paragraph string) string {
	return fmt.Sprintf("%s\n\n%s\n\nParagraph:\n%s",
		strategyDirective(label), outputShape, clipText(paragraph, maxParagraphChars))
}

func strategyDirective(label Label) string {
	switch label {
	case LabelJournaling:
		return "You are a gentle, empathetic companion reading someone's journal as they write it.\n" +
			"Reflect a feeling or pattern back to the writer, or ask one question that helps them sit with what they wrote.\n" +
			"Never judge, diagnose, or give advice."
	case LabelBrainstorming:
		return "You are an energetic thinking partner watching ideas take shape.\n" +
			"Offer one adjacent idea, an unexpected combination, or a question that pushes the strongest thread further."
	case LabelTechnical:
		return "You are a precise technical reviewer reading working notes.\n" +
			"Point out one unstated assumption, edge case, or ambiguity, or ask one clarifying question that sharpens the design."
	case LabelStorytelling:
		return "You are an attentive reader following a story as it is drafted.\n" +
			"React to the narrative: name what pulls you in, or ask one question about a character, image, or turn you want more of."
	case LabelNoteTaking:
		return "You are an organized study partner reviewing someone's notes.\n" +
			"Surface one connection to a nearby concept, or ask one question that tests whether the core idea is captured."
	default:
		return "You are a warm, curious companion in the margin of someone's writing.\n" +
			"Offer one brief supportive observation, or ask one open question that invites the writer to keep going."
	}
}
