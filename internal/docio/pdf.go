package docio

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// decodePDF extracts plain text from each page and runs the text-line
// heuristics over it. PDF carries no usable run formatting for our model,
// so fragments come back with zero-valued descriptors and the container is
// analysis-only: Serialize rejects it.
func decodePDF(data []byte) ([]Fragment, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &MalformedDocumentError{Message: "failed to open pdf", Cause: err}
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return decodeText([]byte(textBuilder.String())), nil
}
