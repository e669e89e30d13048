// Package docio decodes resume containers (docx, pdf, plain text) into a
// flat fragment stream and serializes documents back into their container
// format. It knows nothing about sections or roles; grouping fragments into
// a structured document is the document package's job.
package docio

import (
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-align/internal/types"
)

// Supported container MIME types
const (
	// MimeDocx is the OOXML word processing container
	MimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	// MimePDF is the PDF container (decode-only)
	MimePDF = "application/pdf"
	// MimeText is plain text, including markdown-ish resumes
	MimeText = "text/plain"
)

// Hint classifies a fragment's likely structural role in the source layout.
type Hint string

// Hint values assigned by the container decoders
const (
	// HintHeading marks fragments the container itself styles as headings
	HintHeading Hint = "heading"
	// HintBody marks ordinary paragraph fragments
	HintBody Hint = "body"
	// HintListItem marks bulleted or numbered list fragments
	HintListItem Hint = "list-item"
)

// Fragment is one decoded paragraph: its runs with formatting, plus a
// structural hint. Offsets and grouping are left to the document builder.
type Fragment struct {
	Runs []types.Run
	Hint Hint
}

// Text returns the concatenated text of the fragment's runs.
func (f Fragment) Text() string {
	var sb strings.Builder
	for _, run := range f.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// MimeForPath maps a file extension to its container MIME type. Unknown
// extensions return "" and fail Decode with UnsupportedFormatError.
func MimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return MimeDocx
	case ".pdf":
		return MimePDF
	case ".txt", ".md", ".text":
		return MimeText
	default:
		return ""
	}
}

// Decode parses the raw container bytes into a fragment stream.
func Decode(data []byte, mime string) ([]Fragment, error) {
	switch mime {
	case MimeText:
		return decodeText(data), nil
	case MimePDF:
		return decodePDF(data)
	case MimeDocx:
		return decodeDocx(data)
	default:
		return nil, &UnsupportedFormatError{Mime: mime}
	}
}

// Serialize re-emits a document in the given container format. Writing docx
// replaces the document body inside the original container so styles and
// numbering definitions survive, which is why the original bytes are
// required. PDF is decode-only and always fails with
// UnsupportedFormatError.
func Serialize(doc *types.Document, mime string, original []byte) ([]byte, error) {
	switch mime {
	case MimeText:
		return serializeText(doc), nil
	case MimeDocx:
		return serializeDocx(doc, original)
	default:
		return nil, &UnsupportedFormatError{Mime: mime}
	}
}
