package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rendis/flowdeck/pkg/schema"
)

// RenderEvaluationResults produces one comparison table per workflow in the
// evaluation's results, keyed by (variable set, run) with 1-based ordinals.
// workflowNames maps workflow ids to display names; ids without a name fall
// back to the id itself.
func RenderEvaluationResults(ev *schema.Evaluation, workflowNames map[string]string) string {
	var b strings.Builder

	workflowIDs := make([]string, 0, len(ev.Results))
	for id := range ev.Results {
		workflowIDs = append(workflowIDs, id)
	}
	sort.Strings(workflowIDs)

	for _, wfID := range workflowIDs {
		name := workflowNames[wfID]
		if name == "" {
			name = wfID
		}
		fmt.Fprintf(&b, "<div class=\"mb-4\">\n<h5>Workflow: %s</h5>\n", EscapeString(name))
		b.WriteString(`<div class="table-responsive">
<table class="table table-bordered">
<thead class="table-light">
<tr><th>Variable Set #</th><th>Run #</th><th>Match Score</th><th>Differences</th><th>Output</th></tr>
</thead>
<tbody>
`)
		for _, rec := range ev.Results[wfID] {
			b.WriteString("<tr>\n")
			fmt.Fprintf(&b, "<td>%d</td>\n<td>%d</td>\n", rec.VariableSetIndex+1, rec.RunIndex+1)
			fmt.Fprintf(&b, "<td>%s</td>\n", formatScore(rec.Comparison.MatchScore))
			fmt.Fprintf(&b, "<td><pre style=\"max-height: 150px; overflow: auto;\">%s</pre></td>\n",
				EscapeString(rec.Comparison.Differences))
			b.WriteString("<td>" + renderRecordOutput(rec.Output) + "</td>\n")
			b.WriteString("</tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n</div>\n</div>\n")
	}
	return b.String()
}

// renderRecordOutput applies the leaf rule for table cells: structured dump
// for non-text values, escaped text otherwise.
func renderRecordOutput(v any) string {
	switch out := v.(type) {
	case nil:
		return ""
	case string:
		return EscapeString(out)
	default:
		return "<pre style=\"max-height: 150px; overflow: auto;\">" + jsonDump(out) + "</pre>"
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
