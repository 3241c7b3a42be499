package annotate

import "strings"

// parseResult extracts the TYPE/TEXT pair from raw generator output. The
// markers are matched case-insensitively and may sit anywhere in the output;
// the body runs from the text marker to the end. A miss on either marker,
// or an unrecognized type value, degrades to a commentary carrying the whole
// trimmed output.
func parseResult(raw string) (Result, bool) {
	trimmed := strings.TrimSpace(raw)
	fallback := Result{Kind: KindCommentary, Text: trimmed}

	typeIdx := indexFold(trimmed, typeMarker)
	if typeIdx < 0 {
		return fallback, false
	}
	afterType := typeIdx + len(typeMarker)
	rel := indexFold(trimmed[afterType:], textMarker)
	if rel < 0 {
		return fallback, false
	}
	textIdx := afterType + rel

	kind, ok := ParseKind(strings.Trim(trimmed[afterType:textIdx], " \t\r\n*_"))
	if !ok {
		return fallback, false
	}

	body := strings.TrimSpace(trimmed[textIdx+len(textMarker):])
	if body == "" {
		return fallback, false
	}
	return Result{Kind: kind, Text: body}, true
}

// indexFold finds the first case-insensitive occurrence of the ASCII marker
// in s and returns its byte index. Folding is compared window by window, so
// surrounding runes whose lowercase form changes byte length cannot shift
// the reported position.
func indexFold(s, marker string) int {
	for i := 0; i+len(marker) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(marker)], marker) {
			return i
		}
	}
	return -1
}
