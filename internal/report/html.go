package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// reportTemplate renders the single-page HTML summary. Kept deliberately
// dependency-free so the artifact opens from a file:// URL in CI viewers.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Shopcheck Run {{.Run.RunID}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; }
th, td { text-align: left; padding: 6px 12px; border-bottom: 1px solid #ddd; }
th { background: #f5f5f5; }
.passed { color: #1a7f37; }
.failed { color: #cf222e; font-weight: bold; }
.skipped { color: #9a6700; }
.meta { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Shopcheck Run {{.Run.RunID}}</h1>
<p class="meta">
Environment: {{.Run.Environment}} | Target: {{.Run.BaseURL}} |
Started: {{.Run.Started.Format "2006-01-02 15:04:05 MST"}} |
Duration: {{printf "%.2fs" .Run.Duration.Seconds}}
</p>
<p>
<span class="passed">{{.Passed}} passed</span>,
<span class="failed">{{.Failed}} failed</span>,
<span class="skipped">{{.Skipped}} skipped</span>
</p>
{{range .Run.Suites}}
<h2>{{.Name}}{{if .Shard}} (shard {{.Shard}}){{end}}</h2>
<table>
<tr><th>Test</th><th>Status</th><th>Duration</th><th>Message</th></tr>
{{range .Cases}}
<tr>
<td>{{.Name}}</td>
<td class="{{.Status}}">{{.Status}}</td>
<td>{{printf "%.2fs" .Duration.Seconds}}</td>
<td>{{.Message}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

type htmlData struct {
	Run     *Run
	Passed  int
	Failed  int
	Skipped int
}

// WriteHTML writes report.html into dir.
func WriteHTML(r *Run, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	passed, failed, skipped := r.Totals()
	data := htmlData{Run: r, Passed: passed, Failed: failed, Skipped: skipped}

	path := filepath.Join(dir, "report.html")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := reportTemplate.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}
	return nil
}
