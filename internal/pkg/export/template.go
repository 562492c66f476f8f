package export

import (
	"fmt"

	"github.com/feedloop/feedloop/internal/modules/model"
)

// template maps canonical fields onto the column naming and value conventions
// of a target issue tracker.
type template struct {
	headers     map[string]string
	typeMap     map[model.ReportType]string
	priorityMap map[model.ReportPriority]string
}

func templateFor(name model.ExportTemplate) (*template, error) {
	switch name {
	case model.TemplateDefault, "":
		return &template{
			headers: map[string]string{
				fieldTitle:           "Title",
				fieldDescription:     "Description",
				fieldType:            "Type",
				fieldPriority:        "Priority",
				fieldReporter:        "Reporter",
				fieldURL:             "URL",
				fieldCreatedAt:       "Created At",
				fieldConsoleLogs:     "Console Logs",
				fieldNetworkRequests: "Network Requests",
			},
		}, nil
	case model.TemplateJira:
		return &template{
			headers: map[string]string{
				fieldTitle:           "Summary",
				fieldDescription:     "Description",
				fieldType:            "Issue Type",
				fieldPriority:        "Priority",
				fieldReporter:        "Reporter",
				fieldURL:             "URL",
				fieldCreatedAt:       "Created",
				fieldConsoleLogs:     "Console Logs",
				fieldNetworkRequests: "Network Requests",
			},
			typeMap: map[model.ReportType]string{
				model.TypeBug:      "Bug",
				model.TypeFeature:  "Story",
				model.TypeFeedback: "Task",
			},
			priorityMap: map[model.ReportPriority]string{
				model.PriorityLow:      "Low",
				model.PriorityMedium:   "Medium",
				model.PriorityHigh:     "High",
				model.PriorityCritical: "Highest",
			},
		}, nil
	case model.TemplateAzureDevOps:
		return &template{
			headers: map[string]string{
				fieldTitle:           "Title",
				fieldDescription:     "Description",
				fieldType:            "Work Item Type",
				fieldPriority:        "Priority",
				fieldReporter:        "Created By",
				fieldURL:             "URL",
				fieldCreatedAt:       "Created Date",
				fieldConsoleLogs:     "Console Logs",
				fieldNetworkRequests: "Network Requests",
			},
			typeMap: map[model.ReportType]string{
				model.TypeBug:      "Bug",
				model.TypeFeature:  "User Story",
				model.TypeFeedback: "Issue",
			},
			// Azure DevOps priorities run 1 (highest) to 4 (lowest).
			priorityMap: map[model.ReportPriority]string{
				model.PriorityCritical: "1",
				model.PriorityHigh:     "2",
				model.PriorityMedium:   "3",
				model.PriorityLow:      "4",
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported template %q", name)
	}
}

// columns returns the included canonical fields in template order.
func (t *template) columns(f model.IncludeFields) []string {
	cols := make([]string, 0, len(fieldOrder))
	for _, key := range fieldOrder {
		if included(f, key) {
			cols = append(cols, key)
		}
	}
	return cols
}

func (t *template) header(key string) string {
	return t.headers[key]
}

func (t *template) mapType(v model.ReportType) string {
	if t.typeMap != nil {
		if mapped, ok := t.typeMap[v]; ok {
			return mapped
		}
	}
	return string(v)
}

func (t *template) mapPriority(v model.ReportPriority) string {
	if t.priorityMap != nil {
		if mapped, ok := t.priorityMap[v]; ok {
			return mapped
		}
	}
	return string(v)
}
