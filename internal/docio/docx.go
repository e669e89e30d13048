package docio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/resume-align/internal/types"
)

// decodeDocx reads the document body out of the OOXML container and walks
// its top-level paragraphs. Paragraphs nested in tables are skipped, the
// same surface the original format exposes through its paragraph API.
func decodeDocx(data []byte) ([]Fragment, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &MalformedDocumentError{Message: "failed to open docx container", Cause: err}
	}
	defer reader.Close()

	return parseDocumentXML(reader.Editable().GetContent())
}

func parseDocumentXML(content string) ([]Fragment, error) {
	var doc wmlDocument
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, &MalformedDocumentError{Message: "failed to parse document body", Cause: err}
	}

	var fragments []Fragment
	for _, para := range doc.Body.Paragraphs {
		var runs []types.Run
		for _, run := range para.Runs {
			text := strings.Join(run.Texts, "")
			if text == "" {
				continue
			}
			runs = append(runs, types.Run{Text: text, Format: runFormat(run.Props)})
		}

		fragment := Fragment{Runs: runs, Hint: paragraphHint(para.Props)}
		if fragment.Hint == HintBody {
			promoteGlyphBullet(&fragment)
		}
		if strings.TrimSpace(fragment.Text()) == "" {
			continue
		}
		fragments = append(fragments, fragment)
	}
	return fragments, nil
}

func paragraphHint(props *wmlParaProps) Hint {
	if props == nil {
		return HintBody
	}
	if props.Style != nil {
		style := props.Style.Val
		if strings.HasPrefix(style, "Heading") || style == "Title" {
			return HintHeading
		}
	}
	if props.NumPr != nil {
		return HintListItem
	}
	return HintBody
}

// promoteGlyphBullet reclassifies a paragraph whose text opens with a
// literal bullet glyph instead of list numbering, stripping the glyph.
// Serializing emits real numbering, so these normalize on round trip.
func promoteGlyphBullet(fragment *Fragment) {
	if len(fragment.Runs) == 0 {
		return
	}
	first := fragment.Runs[0].Text
	for _, marker := range bulletMarkers {
		if !strings.HasPrefix(first, marker) {
			continue
		}
		fragment.Runs[0].Text = strings.TrimSpace(strings.TrimPrefix(first, marker))
		if fragment.Runs[0].Text == "" && len(fragment.Runs) > 1 {
			fragment.Runs = fragment.Runs[1:]
		}
		fragment.Hint = HintListItem
		return
	}
}

func runFormat(props *wmlRunProps) types.RunFormat {
	if props == nil {
		return types.RunFormat{}
	}

	format := types.RunFormat{
		Bold:      toggleOn(props.Bold),
		Italic:    toggleOn(props.Italic),
		Underline: props.Underline != nil && props.Underline.Val != "none",
	}
	if props.Fonts != nil {
		format.Font = props.Fonts.ASCII
	}
	if props.Color != nil {
		format.Color = props.Color.Val
	}
	if props.Size != nil {
		if size, err := strconv.Atoi(props.Size.Val); err == nil {
			format.Size = size
		}
	}
	return format
}

// toggleOn interprets an OOXML boolean property element: presence means on
// unless the val attribute explicitly disables it.
func toggleOn(v *wmlVal) bool {
	if v == nil {
		return false
	}
	switch v.Val {
	case "false", "0", "none":
		return false
	default:
		return true
	}
}

// serializeDocx rebuilds the document body from the model and writes it
// back into the original container, so styles, numbering, and the rest of
// the package survive untouched.
func serializeDocx(doc *types.Document, original []byte) ([]byte, error) {
	if len(original) == 0 {
		return nil, fmt.Errorf("original docx container is required")
	}

	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(original), int64(len(original)))
	if err != nil {
		return nil, &MalformedDocumentError{Message: "failed to open docx container", Cause: err}
	}
	defer reader.Close()

	editable := reader.Editable()
	editable.SetContent(buildDocumentXML(doc))

	var buf bytes.Buffer
	if err := editable.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx container: %w", err)
	}
	return buf.Bytes(), nil
}

func buildDocumentXML(doc *types.Document) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString("\n")
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, section := range doc.Sections {
		if section.Heading != "" {
			sb.WriteString(`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr>`)
			writeRunXML(&sb, types.Run{Text: section.Heading})
			sb.WriteString(`</w:p>`)
		}
		for _, block := range section.Blocks {
			sb.WriteString(`<w:p>`)
			if block.Kind == types.BlockBullet {
				sb.WriteString(`<w:pPr><w:pStyle w:val="ListParagraph"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>`)
			}
			for _, run := range block.Runs {
				writeRunXML(&sb, run)
			}
			sb.WriteString(`</w:p>`)
		}
	}

	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

func writeRunXML(sb *strings.Builder, run types.Run) {
	sb.WriteString(`<w:r>`)
	writeRunPropsXML(sb, run.Format)
	sb.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(sb, []byte(run.Text))
	sb.WriteString(`</w:t></w:r>`)
}

// writeRunPropsXML emits run properties in OOXML schema order: rFonts, b,
// i, color, sz, u.
func writeRunPropsXML(sb *strings.Builder, format types.RunFormat) {
	if format == (types.RunFormat{}) {
		return
	}

	sb.WriteString(`<w:rPr>`)
	if format.Font != "" {
		sb.WriteString(`<w:rFonts w:ascii="`)
		_ = xml.EscapeText(sb, []byte(format.Font))
		sb.WriteString(`" w:hAnsi="`)
		_ = xml.EscapeText(sb, []byte(format.Font))
		sb.WriteString(`"/>`)
	}
	if format.Bold {
		sb.WriteString(`<w:b/>`)
	}
	if format.Italic {
		sb.WriteString(`<w:i/>`)
	}
	if format.Color != "" {
		sb.WriteString(`<w:color w:val="`)
		_ = xml.EscapeText(sb, []byte(format.Color))
		sb.WriteString(`"/>`)
	}
	if format.Size > 0 {
		sb.WriteString(`<w:sz w:val="`)
		sb.WriteString(strconv.Itoa(format.Size))
		sb.WriteString(`"/>`)
	}
	if format.Underline {
		sb.WriteString(`<w:u w:val="single"/>`)
	}
	sb.WriteString(`</w:rPr>`)
}

type wmlDocument struct {
	Body wmlBody `xml:"body"`
}

type wmlBody struct {
	Paragraphs []wmlParagraph `xml:"p"`
}

type wmlParagraph struct {
	Props *wmlParaProps `xml:"pPr"`
	Runs  []wmlRun      `xml:"r"`
}

type wmlParaProps struct {
	Style *wmlVal   `xml:"pStyle"`
	NumPr *wmlNumPr `xml:"numPr"`
}

type wmlNumPr struct{}

type wmlVal struct {
	Val string `xml:"val,attr"`
}

type wmlRun struct {
	Props *wmlRunProps `xml:"rPr"`
	Texts []string     `xml:"t"`
}

type wmlRunProps struct {
	Fonts     *wmlFonts `xml:"rFonts"`
	Bold      *wmlVal   `xml:"b"`
	Italic    *wmlVal   `xml:"i"`
	Color     *wmlVal   `xml:"color"`
	Size      *wmlVal   `xml:"sz"`
	Underline *wmlVal   `xml:"u"`
}

type wmlFonts struct {
	ASCII string `xml:"ascii,attr"`
}
