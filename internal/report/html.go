package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/kirkbot2/speedaudit/internal/domain/audit"
)

const htmlTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Speed Audit Report - {{.Target}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #333;
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 1100px;
            margin: 0 auto;
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #326ce5 0%, #1a4d8f 100%);
            color: white;
            padding: 50px 40px;
        }
        .header h1 {
            font-size: 2.4em;
            margin-bottom: 15px;
        }
        .header .meta {
            opacity: 0.95;
            font-size: 1.1em;
        }
        .header .meta strong {
            color: #fff;
        }
        .summary {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 25px;
            padding: 40px;
            background: linear-gradient(to bottom, #f8f9fa 0%, #fff 100%);
        }
        .summary-card {
            background: white;
            padding: 30px;
            border-radius: 12px;
            border: 2px solid #e8eaed;
            box-shadow: 0 4px 12px rgba(0, 0, 0, 0.05);
        }
        .summary-card h3 {
            color: #5f6368;
            font-size: 0.85em;
            text-transform: uppercase;
            letter-spacing: 1.5px;
            margin-bottom: 15px;
            font-weight: 600;
        }
        .summary-card .value {
            font-size: 2.6em;
            font-weight: 700;
            color: #202124;
            line-height: 1;
        }
        .summary-card.score-good {
            border-left: 6px solid #34a853;
        }
        .summary-card.score-good .value {
            color: #34a853;
        }
        .summary-card.score-fair {
            border-left: 6px solid #fbbc04;
        }
        .summary-card.score-fair .value {
            color: #f9ab00;
        }
        .summary-card.score-poor {
            border-left: 6px solid #d93025;
        }
        .summary-card.score-poor .value {
            color: #d93025;
        }
        .section {
            padding: 50px 40px;
        }
        .section h2 {
            font-size: 1.8em;
            margin-bottom: 30px;
            color: #202124;
            display: flex;
            align-items: center;
            gap: 15px;
        }
        .section h2::before {
            content: '';
            width: 5px;
            height: 36px;
            background: #326ce5;
            border-radius: 3px;
        }
        .recommendations-table {
            width: 100%;
            border-collapse: separate;
            border-spacing: 0;
            margin-top: 25px;
            background: white;
            border-radius: 8px;
            overflow: hidden;
            box-shadow: 0 2px 8px rgba(0, 0, 0, 0.05);
        }
        .recommendations-table th {
            background: #326ce5;
            color: white;
            padding: 18px 15px;
            text-align: left;
            font-weight: 600;
            font-size: 0.95em;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }
        .recommendations-table td {
            padding: 18px 15px;
            border-bottom: 1px solid #f0f2f4;
        }
        .recommendations-table tbody tr:last-child td {
            border-bottom: none;
        }
        .severity-badge {
            padding: 6px 12px;
            border-radius: 6px;
            font-size: 0.75em;
            font-weight: 700;
            text-transform: uppercase;
            letter-spacing: 0.5px;
            display: inline-block;
        }
        .severity-critical {
            background: #fce8e6;
            color: #d93025;
        }
        .severity-warning {
            background: #fef7e0;
            color: #f9ab00;
        }
        .severity-info {
            background: #e8f0fe;
            color: #1a73e8;
        }
        .footer {
            background: #202124;
            color: #9aa0a6;
            padding: 40px;
            text-align: center;
        }
        .footer strong {
            color: #fff;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Speed Audit Report</h1>
            <div class="meta">
                <p><strong>URL:</strong> {{.Target}}</p>
                <p><strong>Audited:</strong> {{.ObservedAt.Format "January 2, 2006 15:04:05 MST"}}</p>
            </div>
        </div>

        <div class="summary">
            <div class="summary-card score-{{scoreClass .Score}}">
                <h3>Performance Score</h3>
                <div class="value">{{.Score}}/100</div>
            </div>
            <div class="summary-card">
                <h3>Page Load Time</h3>
                <div class="value">{{.Metrics.LoadTimeMs}}ms</div>
            </div>
            <div class="summary-card">
                <h3>Time To First Byte</h3>
                <div class="value">{{.Metrics.TimeToFirstByteMs}}ms</div>
            </div>
            <div class="summary-card">
                <h3>Page Size</h3>
                <div class="value">{{sizeMB .Metrics.BodySizeBytes}}</div>
            </div>
        </div>

        <div class="section">
            <h2>Recommendations</h2>
            <table class="recommendations-table">
                <thead>
                    <tr>
                        <th>Severity</th>
                        <th>Category</th>
                        <th>Recommendation</th>
                        <th>Impact</th>
                        <th>Effort</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Recommendations}}
                    <tr>
                        <td><span class="severity-badge severity-{{.Severity | lower}}">{{.Severity}}</span></td>
                        <td>{{.Category}}</td>
                        <td>
                            <strong>{{.Title}}</strong><br>
                            {{.Description}}
                        </td>
                        <td>{{.Impact}}</td>
                        <td>{{.Effort}}</td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>

        {{if .Competitive}}
        <div class="section">
            <h2>Competitive Comparison</h2>
            <table class="recommendations-table">
                <thead>
                    <tr>
                        <th>URL</th>
                        <th>Score</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Competitive}}
                    <tr>
                        <td>{{.URL}}</td>
                        <td><strong>{{.Score}}/100</strong></td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>
        {{end}}

        <div class="footer">
            <p>Generated by <strong>speedaudit</strong></p>
        </div>
    </div>
</body>
</html>
`

// GenerateHTML renders an audit result as a standalone HTML report
func GenerateHTML(result *audit.Result, writer io.Writer) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"lower": strings.ToLower,
		"scoreClass": func(score int) string {
			switch {
			case score >= 80:
				return "good"
			case score >= 60:
				return "fair"
			default:
				return "poor"
			}
		},
		"sizeMB": func(bytes int64) string {
			return fmt.Sprintf("%.2fMB", float64(bytes)/1_000_000)
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	if err := tmpl.Execute(writer, result); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}
