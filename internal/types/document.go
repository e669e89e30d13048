// Package types provides type definitions for structured data used throughout the resume-align system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// SectionRole labels what a resume section is for, assigned by the heading classifier.
type SectionRole string

// Section roles recognized by the classifier. Sections that match no known
// heading vocabulary get RoleOther and are never injection targets.
const (
	RoleSkills     SectionRole = "SKILLS"
	RoleExperience SectionRole = "EXPERIENCE"
	RoleOther      SectionRole = "OTHER"
)

// BlockKind describes the structural flavor of a block.
type BlockKind string

// Block kinds produced by the extraction adapter. Headings are not blocks;
// they live on the enclosing section.
const (
	BlockParagraph BlockKind = "paragraph"
	BlockBullet    BlockKind = "bullet"
)

// RunFormat is the formatting descriptor carried by a single run.
// Size is in half-points, matching the OOXML convention, so 22 means 11pt.
type RunFormat struct {
	Font      string `json:"font,omitempty"`
	Size      int    `json:"size,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Run is the smallest text unit in the document model, one text fragment
// with one uniform formatting descriptor.
type Run struct {
	Text   string    `json:"text"`
	Format RunFormat `json:"format"`
}

// Block is an ordered sequence of runs forming one paragraph or bullet item.
// Concatenating the runs in order reproduces the block's visible text exactly;
// existing runs are never edited or reordered, only new runs appended.
type Block struct {
	Kind BlockKind `json:"kind"`
	Runs []Run     `json:"runs"`
}

// Text returns the block's visible text, the in-order concatenation of its runs.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// AppendRun appends a new run to the block. This is the only supported
// mutation of a block's run sequence.
func (b *Block) AppendRun(r Run) {
	b.Runs = append(b.Runs, r)
}

// Section is an ordered sequence of blocks under one heading.
type Section struct {
	Heading string      `json:"heading"`
	Role    SectionRole `json:"role"`
	Blocks  []Block     `json:"blocks"`
}

// Text returns the section's visible text, blocks joined by newlines.
// The heading itself is not included.
func (s *Section) Text() string {
	lines := make([]string, 0, len(s.Blocks))
	for i := range s.Blocks {
		lines = append(lines, s.Blocks[i].Text())
	}
	return strings.Join(lines, "\n")
}

// Document is the abstract document model: an ordered sequence of sections.
// One instance is owned by exactly one analysis request at a time.
type Document struct {
	Sections []Section `json:"sections"`
	// SourceMime records the container format the document was decoded from,
	// used to pick the matching serializer.
	SourceMime string `json:"source_mime,omitempty"`
}

// Text returns the full visible text of the document, headings included,
// in reading order.
func (d *Document) Text() string {
	var sb strings.Builder
	for i := range d.Sections {
		sec := &d.Sections[i]
		if sec.Heading != "" {
			sb.WriteString(sec.Heading)
			sb.WriteString("\n")
		}
		sb.WriteString(sec.Text())
		if i < len(d.Sections)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Clone returns a deep copy of the document. Rewrite application mutates the
// copy so the caller's document is never partially written.
func (d *Document) Clone() *Document {
	out := &Document{
		Sections:   make([]Section, len(d.Sections)),
		SourceMime: d.SourceMime,
	}
	for i := range d.Sections {
		src := &d.Sections[i]
		dst := &out.Sections[i]
		dst.Heading = src.Heading
		dst.Role = src.Role
		dst.Blocks = make([]Block, len(src.Blocks))
		for j := range src.Blocks {
			dst.Blocks[j].Kind = src.Blocks[j].Kind
			dst.Blocks[j].Runs = append([]Run(nil), src.Blocks[j].Runs...)
		}
	}
	return out
}

// SectionsWithRole returns the indices of all sections carrying the given role,
// in document order.
func (d *Document) SectionsWithRole(role SectionRole) []int {
	var idx []int
	for i := range d.Sections {
		if d.Sections[i].Role == role {
			idx = append(idx, i)
		}
	}
	return idx
}
