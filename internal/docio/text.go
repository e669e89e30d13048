package docio

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-align/internal/types"
)

var bulletMarkers = []string{"- ", "* ", "• ", "◦ ", "· "}

// Verbs that typically open experience bullets. Text extraction often drops
// the bullet glyphs, so a long line opening with one of these still counts
// as a list item.
var bulletVerbs = map[string]struct{}{
	"achieved": {}, "analyzed": {}, "collaborated": {}, "coordinated": {},
	"created": {}, "designed": {}, "developed": {}, "implemented": {},
	"improved": {}, "increased": {}, "led": {}, "managed": {},
	"optimized": {}, "reduced": {}, "supervised": {},
}

// decodeText classifies each non-blank line of a plain-text or markdown-ish
// resume. Formatting descriptors stay zero-valued; plain text carries none.
func decodeText(data []byte) []Fragment {
	var fragments []Fragment
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(strings.TrimRight(line, "\r"))
		if trimmed == "" {
			continue
		}

		hint, text := classifyLine(trimmed)
		if text == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Runs: []types.Run{{Text: text}},
			Hint: hint,
		})
	}
	return fragments
}

// classifyLine decides the structural hint for one line. Order matters:
// markdown headings, then marked bullets, then all-caps or short
// colon-terminated heading lines, then unmarked action-verb bullets,
// then body.
func classifyLine(line string) (Hint, string) {
	if strings.HasPrefix(line, "#") {
		return HintHeading, strings.TrimSpace(strings.TrimLeft(line, "#"))
	}

	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return HintListItem, strings.TrimSpace(strings.TrimPrefix(line, marker))
		}
	}

	words := len(strings.Fields(line))
	if isAllCaps(line) && words <= 6 {
		return HintHeading, line
	}
	if strings.HasSuffix(line, ":") && words <= 4 {
		return HintHeading, line
	}
	if len(line) > 30 && opensWithBulletVerb(line) {
		return HintListItem, line
	}
	return HintBody, line
}

// opensWithBulletVerb reports whether the line's first word, ignoring case
// and trailing punctuation, is a bullet action verb.
func opensWithBulletVerb(line string) bool {
	first, _, _ := strings.Cut(line, " ")
	first = strings.TrimRight(strings.ToLower(first), ",.:;")
	_, ok := bulletVerbs[first]
	return ok
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// serializeText re-emits the document as markdown-ish plain text. Headings
// always carry a "# " marker so a subsequent decode reconstructs the same
// model regardless of heading case.
func serializeText(doc *types.Document) []byte {
	var sb strings.Builder
	for i, section := range doc.Sections {
		if i > 0 {
			sb.WriteString("\n")
		}
		if section.Heading != "" {
			sb.WriteString("# ")
			sb.WriteString(section.Heading)
			sb.WriteString("\n")
		}
		for _, block := range section.Blocks {
			if block.Kind == types.BlockBullet {
				sb.WriteString("- ")
			}
			sb.WriteString(block.Text())
			sb.WriteString("\n")
		}
	}
	return []byte(sb.String())
}
