package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/feedloop/feedloop/internal/modules/model"
)

// Options selects the output format, column template, and field subset for a
// rendered export document.
type Options struct {
	Format   model.ExportFormat
	Template model.ExportTemplate
	Fields   model.IncludeFields
}

// Render projects the given reports onto the requested fields and serializes
// them in the chosen format. Output is deterministic for a given input: column
// order is fixed per template and rows follow input order.
func Render(reports []model.Report, opts Options) (data []byte, contentType string, ext string, err error) {
	if !opts.Fields.Any() {
		return nil, "", "", fmt.Errorf("no fields selected")
	}

	tpl, err := templateFor(opts.Template)
	if err != nil {
		return nil, "", "", err
	}
	cols := tpl.columns(opts.Fields)

	switch opts.Format {
	case model.FormatCSV:
		data, err = renderCSV(reports, tpl, cols)
		return data, "text/csv", "csv", err
	case model.FormatJSON:
		data, err = renderJSON(reports, tpl, cols)
		return data, "application/json", "json", err
	case model.FormatXLSX:
		data, err = renderXLSX(reports, tpl, cols)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", err
	default:
		return nil, "", "", fmt.Errorf("unsupported format %q", opts.Format)
	}
}

// canonical field keys, in default template order
const (
	fieldTitle           = "title"
	fieldDescription     = "description"
	fieldType            = "type"
	fieldPriority        = "priority"
	fieldReporter        = "reporter"
	fieldURL             = "url"
	fieldCreatedAt       = "created_at"
	fieldConsoleLogs     = "console_logs"
	fieldNetworkRequests = "network_requests"
)

var fieldOrder = []string{
	fieldTitle, fieldDescription, fieldType, fieldPriority, fieldReporter,
	fieldURL, fieldCreatedAt, fieldConsoleLogs, fieldNetworkRequests,
}

func included(f model.IncludeFields, key string) bool {
	switch key {
	case fieldTitle:
		return f.Title
	case fieldDescription:
		return f.Description
	case fieldType:
		return f.Type
	case fieldPriority:
		return f.Priority
	case fieldReporter:
		return f.Reporter
	case fieldURL:
		return f.URL
	case fieldCreatedAt:
		return f.CreatedAt
	case fieldConsoleLogs:
		return f.ConsoleLogs
	case fieldNetworkRequests:
		return f.NetworkRequests
	}
	return false
}

// value extracts the serialized cell value for one canonical field.
func (t *template) value(r *model.Report, key string) string {
	switch key {
	case fieldTitle:
		return r.Title
	case fieldDescription:
		return r.Description
	case fieldType:
		return t.mapType(r.Type)
	case fieldPriority:
		if r.Priority == nil {
			return ""
		}
		return t.mapPriority(*r.Priority)
	case fieldReporter:
		return reporterString(r)
	case fieldURL:
		return r.PageURL
	case fieldCreatedAt:
		return r.CreatedAt.UTC().Format(time.RFC3339)
	case fieldConsoleLogs:
		return consoleLogText(r.ConsoleLogs.Data())
	case fieldNetworkRequests:
		return networkRequestText(r.NetworkRequests.Data())
	}
	return ""
}

func reporterString(r *model.Report) string {
	if r.ReporterName != "" && r.ReporterEmail != "" {
		return fmt.Sprintf("%s <%s>", r.ReporterName, r.ReporterEmail)
	}
	if r.ReporterName != "" {
		return r.ReporterName
	}
	return r.ReporterEmail
}

// consoleLogText flattens captured console entries into one line per entry.
func consoleLogText(logs []model.ConsoleLog) string {
	if len(logs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(logs))
	for _, l := range logs {
		line := fmt.Sprintf("[%s] %s: %s", l.Timestamp, strings.ToUpper(l.Type), l.Message)
		if l.Stack != "" {
			line += " | " + l.Stack
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// networkRequestText flattens captured network traces into one line per request.
func networkRequestText(reqs []model.NetworkRequest) string {
	if len(reqs) == 0 {
		return ""
	}
	lines := make([]string, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, fmt.Sprintf("[%s] %s %s -> %d (%.0fms)",
			r.Timestamp, r.Method, r.URL, r.Status, r.Duration))
	}
	return strings.Join(lines, "\n")
}
