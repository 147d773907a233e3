package woad

import (
	"fmt"
	"strings"

	"github.com/Delta456/box-cli-maker/v2"
	"github.com/alexeyco/simpletable"
)

// A Trace records the comparisons performed during condition evaluation.
// Pass one to Evaluate via the CollectTrace option, then render it with
// String or Report. A Trace is not safe for concurrent evaluations; use one
// per evaluation call.
type Trace struct {
	Rows []TraceRow
}

// TraceRow captures one comparison: the field reference, what it resolved
// to, and the outcome.
type TraceRow struct {
	Field    string
	Resolved any
	Present  bool
	Op       ComparisonOp
	Value    any
	Outcome  bool
}

func (t *Trace) add(cmp *Comparison, resolved any, present bool, outcome bool) {
	t.Rows = append(t.Rows, TraceRow{
		Field:    cmp.Field,
		Resolved: resolved,
		Present:  present,
		Op:       cmp.Op,
		Value:    cmp.Value,
		Outcome:  outcome,
	})
}

// String renders the trace as a table, one row per comparison in
// evaluation order.
func (t *Trace) String() string {
	return t.traceTable().String()
}

// Report renders the trace and the input data as a boxed diagnostic report.
func (t *Trace) Report(ctx DataContext) string {
	b := box.New(box.Config{Px: 2, Py: 1, Type: "Double", Color: "Cyan", TitlePos: "Top", ContentAlign: "Left"})

	s := strings.Builder{}
	s.WriteString("Comparisons:\n")
	s.WriteString("------------\n")
	s.WriteString(t.traceTable().String())

	if len(ctx.Modules) > 0 {
		s.WriteString("\n\n")
		s.WriteString("Input Data:\n")
		s.WriteString("-----------\n")
		s.WriteString(dataTable(ctx).String())
	}
	return b.String("WOAD EVALUATION DIAGNOSTIC REPORT", s.String())
}

func (t *Trace) traceTable() *simpletable.Table {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Field"},
			{Align: simpletable.AlignCenter, Text: "Resolved"},
			{Align: simpletable.AlignCenter, Text: "Operator"},
			{Align: simpletable.AlignCenter, Text: "Value"},
			{Align: simpletable.AlignCenter, Text: "Outcome"},
		},
	}

	for _, row := range t.Rows {
		resolved := "<absent>"
		if row.Present {
			resolved = fmt.Sprintf("%v", row.Resolved)
		}
		r := []*simpletable.Cell{
			{Text: row.Field},
			{Text: resolved},
			{Text: string(row.Op)},
			{Text: fmt.Sprintf("%v", row.Value)},
			{Text: fmt.Sprintf("%t", row.Outcome)},
		}
		table.Body.Cells = append(table.Body.Cells, r)
	}

	table.SetStyle(simpletable.StyleUnicode)
	return table
}

func dataTable(ctx DataContext) *simpletable.Table {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Module"},
			{Align: simpletable.AlignCenter, Text: "Field"},
			{Align: simpletable.AlignCenter, Text: "Value"},
		},
	}

	for module, fields := range ctx.Modules {
		for name, v := range fields {
			r := []*simpletable.Cell{
				{Text: module},
				{Text: name},
				{Text: fmt.Sprintf("%v", v)},
			}
			table.Body.Cells = append(table.Body.Cells, r)
		}
	}

	table.SetStyle(simpletable.StyleUnicode)
	return table
}
