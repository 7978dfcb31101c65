package renderer

import (
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/nikogura/rhymer/pkg/highlight"
)

const htmlHead = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
.vowel{color:#b58900}.stressed{color:#dc322f;font-weight:bold}.known{color:#859900}.unknown{color:#d33682;text-decoration:underline}
</style></head><body><pre>
`

const htmlTail = "</pre></body></html>\n"

// WriteHTML writes highlighted lines to an HTML file, creating the output directory.
func WriteHTML(lines []highlight.StyledText, outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(HTML(lines)), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write html file: %s", outputPath)
		return err
	}

	return err
}

// HTML renders lines as a standalone HTML page.
func HTML(lines []highlight.StyledText) string {
	var b strings.Builder
	b.WriteString(htmlHead)
	for _, line := range lines {
		for _, span := range line.Spans {
			text := html.EscapeString(span.Text)
			if span.Style == highlight.StylePlain {
				b.WriteString(text)
				continue
			}
			b.WriteString(`<span class="` + string(span.Style) + `">` + text + `</span>`)
		}
		b.WriteByte('\n')
	}
	b.WriteString(htmlTail)
	return b.String()
}
