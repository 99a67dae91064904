package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/loopatlas/internal/filelock"
)

// htmlShell is the page wrapper for rendered reports. The first verb
// is the page title, the second the rendered body.
const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; color: #1f2328; }
table { border-collapse: collapse; width: 100%%; margin: 1rem 0; }
th, td { border: 1px solid #d1d9e0; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f6f8fa; }
blockquote { color: #59636e; border-left: 4px solid #d1d9e0; margin-left: 0; padding-left: 1rem; }
code { background: #f6f8fa; padding: 0.1rem 0.3rem; border-radius: 4px; }
</style>
</head>
<body>
%s</body>
</html>
`

// writeHTML renders the markdown report to HTML. Tables in the report
// need GFM table support, which the core CommonMark parser lacks.
func (e *Exporter) writeHTML(path string, manifest Manifest) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(e.buildMarkdown(manifest)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	page := fmt.Sprintf(htmlShell, html.EscapeString(e.atlas.Metadata().Name), body.String())
	return filelock.LockAndWrite(path, []byte(page))
}
