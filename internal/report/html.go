package report

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/IvanShishkin/filecommander/pkg/models"
)

// WriteHTML writes a standalone page with a summary, per-type filter
// buttons and the file table
func WriteHTML(w io.Writer, cat *models.Catalog) error {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>File Catalog</title>
    <style>
        :root {
            --bg-primary: #0C0C0C;
            --bg-secondary: #161616;
            --bg-elevated: #222222;
            --text-primary: #ECECEC;
            --text-secondary: #A0A0A0;
            --text-muted: #6B6B6B;
            --accent: #D97706;
            --border-color: #2A2A2A;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            background: var(--bg-primary);
            color: var(--text-primary);
            padding: 32px 24px;
            line-height: 1.5;
        }
        .container { max-width: 1200px; margin: 0 auto; }
        h1 { font-size: 32px; color: var(--accent); margin-bottom: 4px; }
        .subtitle { color: var(--text-secondary); margin-bottom: 24px; font-family: monospace; }
        .summary-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 16px;
            margin-bottom: 24px;
        }
        .summary-item {
            background: var(--bg-secondary);
            border: 1px solid var(--border-color);
            border-radius: 12px;
            padding: 16px 20px;
        }
        .summary-item .label { color: var(--text-muted); font-size: 12px; text-transform: uppercase; }
        .summary-item .value { font-size: 22px; font-weight: 600; }
        .filters { display: flex; flex-wrap: wrap; gap: 8px; margin-bottom: 16px; }
        .filter-btn {
            background: var(--bg-elevated);
            color: var(--text-secondary);
            border: 1px solid var(--border-color);
            border-radius: 8px;
            padding: 6px 12px;
            cursor: pointer;
        }
        .filter-btn.active { color: var(--bg-primary); background: var(--accent); border-color: var(--accent); }
        table { width: 100%; border-collapse: collapse; font-size: 14px; }
        th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid var(--border-color); }
        th { color: var(--text-muted); font-weight: 500; }
        td.num { text-align: right; font-variant-numeric: tabular-nums; }
        td.dir { color: var(--text-secondary); font-family: monospace; font-size: 12px; }
        tr.hidden { display: none; }
    </style>
</head>
<body>
<div class="container">
`)

	sb.WriteString("    <h1>File Catalog</h1>\n")
	sb.WriteString(fmt.Sprintf("    <p class=\"subtitle\">%s</p>\n", html.EscapeString(cat.Root())))

	// Summary
	sb.WriteString("    <div class=\"summary-grid\">\n")
	writeSummaryItem(&sb, "Files", fmt.Sprintf("%d", cat.Len()))
	writeSummaryItem(&sb, "Total Size", FormatSize(cat.TotalSize()))
	writeSummaryItem(&sb, "Scanned At", cat.ScannedAt().Format("2006-01-02 15:04:05"))
	writeSummaryItem(&sb, "Scan ID", cat.ID().String()[:8])
	sb.WriteString("    </div>\n")

	// Type filter buttons
	sb.WriteString("    <div class=\"filters\">\n")
	sb.WriteString(fmt.Sprintf("        <button class=\"filter-btn active\" data-filter=\"all\">all (%d)</button>\n", cat.Len()))
	for _, ft := range cat.FileTypes() {
		n := cat.Where(func(r models.FileRecord) bool { return r.FileType == ft }).Len()
		sb.WriteString(fmt.Sprintf("        <button class=\"filter-btn\" data-filter=\"%s\">%s (%d)</button>\n", ft, ft, n))
	}
	sb.WriteString("    </div>\n")

	// Files
	sb.WriteString(`    <table>
        <thead>
            <tr><th>Name</th><th>Type</th><th>Size</th><th>Modified</th><th>Last Accessed</th><th>Directory</th></tr>
        </thead>
        <tbody>
`)
	for _, r := range cat.Records() {
		accessed := "-"
		if r.HasAccessTime() {
			accessed = r.LastAccessedAt.Format("2006-01-02 15:04")
		}
		sb.WriteString(fmt.Sprintf(
			"            <tr data-type=\"%s\"><td title=\"%s\">%s</td><td>%s</td><td class=\"num\">%s</td><td>%s</td><td>%s</td><td class=\"dir\">%s</td></tr>\n",
			r.FileType,
			html.EscapeString(r.Path),
			html.EscapeString(r.Name),
			r.FileType,
			FormatSize(r.SizeBytes),
			r.ModifiedAt.Format("2006-01-02 15:04"),
			accessed,
			html.EscapeString(r.Directory()),
		))
	}
	sb.WriteString(`        </tbody>
    </table>
</div>
<script>
    (function() {
        const buttons = document.querySelectorAll('.filter-btn');
        const rows = document.querySelectorAll('tbody tr');
        buttons.forEach(btn => {
            btn.addEventListener('click', function() {
                buttons.forEach(b => b.classList.remove('active'));
                this.classList.add('active');
                const filter = this.dataset.filter;
                rows.forEach(row => {
                    row.classList.toggle('hidden', filter !== 'all' && row.dataset.type !== filter);
                });
            });
        });
    })();
</script>
</body>
</html>
`)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSummaryItem(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf(
		"        <div class=\"summary-item\"><div class=\"label\">%s</div><div class=\"value\">%s</div></div>\n",
		label, html.EscapeString(value)))
}
