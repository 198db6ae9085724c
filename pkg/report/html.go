package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mdomarsaleem1/calendar-analytics/pkg/insights"
)

// HTML renders the markdown report inside a self-contained styled page.
func (g *Generator) HTML(ins *insights.FullInsights, title string) string {
	if title == "" {
		title = "Calendar Analytics Report"
	}
	return fmt.Sprintf(htmlShell, title, mdToHTML(g.Markdown(ins, title)))
}

const htmlShell = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
            line-height: 1.6;
            color: #333;
        }
        h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
        h2 { color: #2980b9; margin-top: 30px; }
        h3 { color: #27ae60; }
        table {
            border-collapse: collapse;
            width: 100%%;
            margin: 20px 0;
        }
        th, td {
            border: 1px solid #ddd;
            padding: 12px;
            text-align: left;
        }
        th {
            background-color: #3498db;
            color: white;
        }
        tr:nth-child(even) { background-color: #f9f9f9; }
        tr:hover { background-color: #f5f5f5; }
        code { background: #f4f4f4; padding: 2px 6px; border-radius: 4px; }
    </style>
</head>
<body>
    <article>
        %s
    </article>
</body>
</html>`

var (
	mdH3Re     = regexp.MustCompile(`(?m)^### (.+)$`)
	mdH2Re     = regexp.MustCompile(`(?m)^## (.+)$`)
	mdH1Re     = regexp.MustCompile(`(?m)^# (.+)$`)
	mdBoldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdItalicRe = regexp.MustCompile(`\*(.+?)\*`)
	mdListRe   = regexp.MustCompile(`(?m)^- (.+)$`)
)

// mdToHTML is a minimal converter covering the constructs the markdown
// renderer emits: headers, emphasis, bullet lists, and pipe tables.
func mdToHTML(md string) string {
	html := mdH3Re.ReplaceAllString(md, "<h3>$1</h3>")
	html = mdH2Re.ReplaceAllString(html, "<h2>$1</h2>")
	html = mdH1Re.ReplaceAllString(html, "<h1>$1</h1>")
	html = mdBoldRe.ReplaceAllString(html, "<strong>$1</strong>")
	html = mdItalicRe.ReplaceAllString(html, "<em>$1</em>")
	html = mdListRe.ReplaceAllString(html, "<li>$1</li>")

	var out []string
	inTable := false
	for _, line := range strings.Split(html, "\n") {
		switch {
		case strings.Contains(line, "|--"):
			continue
		case strings.Contains(line, "|"):
			if !inTable {
				out = append(out, "<table>")
				inTable = true
			}
			tag := "td"
			if out[len(out)-1] == "<table>" {
				tag = "th"
			}
			parts := strings.Split(line, "|")
			var row strings.Builder
			row.WriteString("<tr>")
			for _, cell := range parts[1 : len(parts)-1] {
				fmt.Fprintf(&row, "<%s>%s</%s>", tag, strings.TrimSpace(cell), tag)
			}
			row.WriteString("</tr>")
			out = append(out, row.String())
		default:
			if inTable {
				out = append(out, "</table>")
				inTable = false
			}
			out = append(out, line)
		}
	}
	if inTable {
		out = append(out, "</table>")
	}

	html = strings.Join(out, "\n")
	html = strings.ReplaceAll(html, "\n\n", "</p><p>")
	return "<p>" + html + "</p>"
}
