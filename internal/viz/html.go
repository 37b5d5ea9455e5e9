package viz

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// PlotlyCDN is the Plotly.js bundle referenced by generated pages.
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Arrangement string // "snap", "perpendicular", "freeform", or "fixed"
	Title       string
	Height      int // pixels
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	return HTMLOptions{
		Arrangement: "snap",
		Title:       "Project-DevTool Dependencies",
		Height:      800,
	}
}

// ValidArrangements lists the supported sankey arrangement names.
var ValidArrangements = []string{"snap", "perpendicular", "freeform", "fixed"}

// GenerateHTML generates a self-contained HTML page with the Sankey diagram.
func GenerateHTML(graph *GraphData, opts HTMLOptions) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}

	if err := validateArrangement(opts.Arrangement); err != nil {
		return "", err
	}

	defaults := DefaultOptions()
	if opts.Title == "" {
		opts.Title = defaults.Title
	}
	if opts.Height <= 0 {
		opts.Height = defaults.Height
	}

	if graph.IsEmpty() {
		return generateEmptyHTML(opts.Title), nil
	}

	traceJSON, err := graph.ToSankeyJSON(opts.Arrangement)
	if err != nil {
		return "", err
	}

	data := templateData{
		PlotlySrc: PlotlyCDN,
		Title:     opts.Title,
		Height:    opts.Height,
		TraceJSON: template.JS(traceJSON),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// validateArrangement checks if the arrangement option is valid.
func validateArrangement(arrangement string) error {
	if arrangement == "" {
		return nil
	}
	for _, a := range ValidArrangements {
		if arrangement == a {
			return nil
		}
	}
	return fmt.Errorf("invalid arrangement %q: must be snap, perpendicular, freeform, or fixed", arrangement)
}

func arrangementOrDefault(arrangement string) string {
	if arrangement == "" {
		return "snap"
	}
	return arrangement
}

// templateData holds data for the HTML template.
type templateData struct {
	PlotlySrc string
	Title     string
	Height    int
	TraceJSON template.JS
}

// generateEmptyHTML returns HTML for an empty graph state.
func generateEmptyHTML(title string) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>` + template.HTMLEscapeString(title) + ` - Empty</title>
  <style>
    body {
      font-family: Arial, Helvetica, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f8f9fa;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No relationships to show</h2>
    <p>The selected relationship types and top-N limits leave no project/dev tool pairs.</p>
    <p>Widen the filters or check the data with <code>rfw types</code>.</p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="{{.PlotlySrc}}"></script>
  <style>
    body {
      font-family: Arial, Helvetica, sans-serif;
      margin: 0;
      padding: 20px;
      background: #f8f9fa;
    }
    #sankey {
      max-width: 1400px;
      margin: auto;
      background: white;
      border-radius: 8px;
    }
  </style>
</head>
<body>
  <div id="sankey"></div>
  <script>
    (function() {
      const trace = {{.TraceJSON}};
      const layout = {
        title: {text: {{.Title}}},
        font: {size: 10},
        height: {{.Height}},
        hoverlabel: {bgcolor: "white", font: {size: 12, family: "Arial"}}
      };
      Plotly.newPlot("sankey", [trace], layout, {responsive: true});
    })();
  </script>
</body>
</html>`
