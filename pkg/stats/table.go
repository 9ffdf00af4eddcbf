package stats

import (
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/questionnaire"
)

// Column is one statistics table header, one per answer-collecting instance
// in the current model.
type Column struct {
	InstanceID string
	Type       material.Type
	Title      string
}

// Row is one persisted submission rendered against the current column set.
type Row struct {
	ID    string
	Cells []string
}

// Table is one page of rendered statistics.
type Table struct {
	Columns []Column
	Rows    []Row
	Total   int
}

// Columns derives the header set from the current instance model: visible
// interactive instances in canvas order. A removed instance contributes no
// column even when stored answers still reference it; an added instance
// contributes a column whose earlier rows render the placeholder.
func Columns(registry *material.Registry, q questionnaire.Questionnaire) []Column {
	if registry == nil {
		registry = material.NewDefaultRegistry()
	}
	columns := make([]Column, 0, len(q.Instances))
	for _, inst := range q.Active() {
		if !inst.Visible {
			continue
		}
		desc, ok := registry.Lookup(inst.Type)
		if !ok || !desc.Interactive {
			continue
		}
		title := inst.InstanceID
		if text, ok := inst.Props["title"].(string); ok && text != "" {
			title = text
		} else if desc.Title != "" {
			title = desc.Title
		}
		columns = append(columns, Column{
			InstanceID: inst.InstanceID,
			Type:       inst.Type,
			Title:      title,
		})
	}
	return columns
}

// BuildTable renders one page of persisted answer rows against the current
// model. Each row map carries "_id" plus instanceId-keyed values; values for
// columns the row never answered render the placeholder.
func BuildTable(registry *material.Registry, q questionnaire.Questionnaire, total int, rows []map[string]any) Table {
	columns := Columns(registry, q)

	out := Table{Columns: columns, Total: total, Rows: make([]Row, 0, len(rows))}
	for _, raw := range rows {
		row := Row{Cells: make([]string, 0, len(columns))}
		if id, ok := raw["_id"].(string); ok {
			row.ID = id
		}
		for _, column := range columns {
			row.Cells = append(row.Cells, Cell(column.Type, raw[column.InstanceID]))
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
