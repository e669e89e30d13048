// Package document groups a decoded fragment stream into the structured
// model the pipeline works on: ordered sections of blocks of runs, each
// section classified by the role its heading implies.
package document

import (
	"strings"
	"unicode"

	"github.com/jonathan/resume-align/internal/docio"
	"github.com/jonathan/resume-align/internal/taxonomy"
	"github.com/jonathan/resume-align/internal/types"
)

// maxHeadingWords bounds how long a line can be and still be considered a
// section heading during formatting-based promotion.
const maxHeadingWords = 6

// Build assembles fragments into a document. A fragment opens a new section
// when its container hint says heading, or when its formatting is distinctly
// heavier than what follows and the text either matches the heading
// vocabulary or is a short line introducing denser body text. Unrecognized
// headings still open a section with role OTHER, never merged into the
// preceding one. Content before the first heading lands in an untitled
// OTHER section.
func Build(fragments []docio.Fragment, tax *taxonomy.Taxonomy, sourceMime string) (*types.Document, error) {
	doc := &types.Document{SourceMime: sourceMime}

	var current *types.Section
	flush := func() {
		if current != nil {
			doc.Sections = append(doc.Sections, *current)
			current = nil
		}
	}

	blockCount := 0
	for i, fragment := range fragments {
		text := strings.TrimSpace(fragment.Text())
		if text == "" {
			continue
		}

		if fragment.Hint == docio.HintHeading || promotableHeading(fragments, i, tax) {
			flush()
			current = &types.Section{Heading: text, Role: tax.HeadingRole(text)}
			continue
		}

		if current == nil {
			current = &types.Section{Role: types.RoleOther}
		}

		kind := types.BlockParagraph
		if fragment.Hint == docio.HintListItem {
			kind = types.BlockBullet
		}
		current.Blocks = append(current.Blocks, types.Block{Kind: kind, Runs: fragment.Runs})
		blockCount++
	}
	flush()

	if blockCount == 0 {
		return nil, &docio.MalformedDocumentError{Message: "no detectable blocks in input stream"}
	}
	return doc, nil
}

// promotableHeading decides whether a body-hinted fragment should be
// treated as a section heading based on its formatting relative to the
// fragment that follows it.
func promotableHeading(fragments []docio.Fragment, i int, tax *taxonomy.Taxonomy) bool {
	fragment := fragments[i]
	if fragment.Hint != docio.HintBody {
		return false
	}

	text := strings.TrimSpace(fragment.Text())
	words := len(strings.Fields(text))
	if words == 0 || words > maxHeadingWords {
		return false
	}

	neighbor, ok := nextFragment(fragments, i)
	if !ok {
		return false
	}
	if !heavierThan(fragment, neighbor) {
		return false
	}

	if tax.IsHeadingPhrase(text) {
		return true
	}

	// Short line introducing denser body text below it.
	return words < 5 && neighbor.Hint != docio.HintHeading &&
		len(strings.TrimSpace(neighbor.Text())) > len(text)
}

func nextFragment(fragments []docio.Fragment, i int) (docio.Fragment, bool) {
	for j := i + 1; j < len(fragments); j++ {
		if strings.TrimSpace(fragments[j].Text()) != "" {
			return fragments[j], true
		}
	}
	return docio.Fragment{}, false
}

// heavierThan compares formatting weight: all-bold beats not, a larger
// maximum font size beats a smaller one, all-caps text beats mixed case.
func heavierThan(a, b docio.Fragment) bool {
	aBold, aSize, aCaps := formatWeight(a)
	bBold, bSize, bCaps := formatWeight(b)

	if aBold && !bBold {
		return true
	}
	if aSize > bSize {
		return true
	}
	return aCaps && !bCaps
}

func formatWeight(f docio.Fragment) (bold bool, size int, caps bool) {
	bold = len(f.Runs) > 0
	for _, run := range f.Runs {
		if !run.Format.Bold {
			bold = false
		}
		if run.Format.Size > size {
			size = run.Format.Size
		}
	}
	caps = isAllCaps(f.Text())
	return bold, size, caps
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
