package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rendis/flowdeck/pkg/schema"
)

// Panel id prefixes. Collapsible wiring is a deterministic function of the
// entity id so a toggle control and its body are associated unambiguously
// and re-rendering is idempotent for a given input.
const (
	stepPanelPrefix         = "step-"
	callPanelPrefix         = "call-"
	fnPanelPrefix           = "fn-"
	systemPanelPrefix       = "system-"
	conversationPanelPrefix = "conversation-"
	responsePanelPrefix     = "response-"
	fnResponsePanelPrefix   = "fn-response-"
)

// ReportRenderer turns a run result into a nested collapsible HTML document:
// workflow results, per-step panels, per-call panels with system prompt /
// conversation / response leaves, per-function panels, and a trailing
// evaluation-report dump.
type ReportRenderer struct {
	md Markdown
}

// NewReportRenderer creates a renderer with the given Markdown transform.
// A nil transform falls back to the goldmark default.
func NewReportRenderer(md Markdown) *ReportRenderer {
	if md == nil {
		md = GoldmarkMarkdown()
	}
	return &ReportRenderer{md: md}
}

// Render produces the full execution-report document.
func (r *ReportRenderer) Render(result *schema.RunResult) string {
	var b strings.Builder
	b.WriteString("<h4>Workflow Execution Results</h4>\n")

	for _, step := range result.Outputs {
		r.renderStep(&b, step)
	}

	b.WriteString("<h4>Evaluation Report</h4>\n")
	b.WriteString(preBlock(jsonDump(result.EvaluationReport)))
	return b.String()
}

func (r *ReportRenderer) renderStep(b *strings.Builder, step schema.StepResult) {
	accordionID := "stepAccordion-" + step.StepID
	fmt.Fprintf(b, "<div class=\"accordion mb-3\" id=%q>\n", accordionID)
	openItem(b, stepPanelPrefix+step.StepID, accordionID, EscapeString(step.StepTitle))

	if len(step.Calls) > 0 {
		callAccordionID := "callAccordion-" + step.StepID
		fmt.Fprintf(b, "<div class=\"accordion mb-3\" id=%q>\n", callAccordionID)
		for _, call := range step.Calls {
			r.renderCall(b, callAccordionID, call)
		}
		b.WriteString("</div>\n")
	} else {
		b.WriteString("<p class=\"text-muted\">No LLM calls in this step.</p>\n")
	}

	if len(step.Functions) > 0 {
		b.WriteString("<h5>Function Calls</h5>\n")
		fnAccordionID := "functionAccordion-" + step.StepID
		fmt.Fprintf(b, "<div class=\"accordion mb-3\" id=%q>\n", fnAccordionID)
		for _, fn := range step.Functions {
			r.renderFunction(b, fnAccordionID, fn)
		}
		b.WriteString("</div>\n")
	} else {
		b.WriteString("<p class=\"text-muted\">No function calls in this step.</p>\n")
	}

	closeItem(b)
	b.WriteString("</div>\n")
}

func (r *ReportRenderer) renderCall(b *strings.Builder, parentID string, call schema.CallResult) {
	label := fmt.Sprintf("%s (%s)", EscapeString(call.Title), EscapeString(call.ModelName))
	openItem(b, callPanelPrefix+call.CallID, parentID, label)

	detailsID := "detailsAccordion-" + call.CallID
	fmt.Fprintf(b, "<div class=\"accordion mb-2\" id=%q>\n", detailsID)

	// System prompts are always markdown text.
	openItem(b, systemPanelPrefix+call.CallID, detailsID, "System Prompt")
	b.WriteString(r.md(EscapeString(call.SystemPrompt)))
	closeItem(b)

	openItem(b, conversationPanelPrefix+call.CallID, detailsID, "Conversation")
	b.WriteString(r.formatConversation(call.Conversation))
	closeItem(b)

	openItem(b, responsePanelPrefix+call.CallID, detailsID, "Response")
	b.WriteString(r.renderResponse(call.Response))
	closeItem(b)

	b.WriteString("</div>\n")
	closeItem(b)
}

func (r *ReportRenderer) renderFunction(b *strings.Builder, parentID string, fn schema.FunctionResult) {
	openItem(b, fnPanelPrefix+fn.CallID, parentID, EscapeString(fn.Title))

	b.WriteString("<p><strong>Code:</strong></p>\n")
	b.WriteString(preBlock(EscapeString(fn.Code)))
	b.WriteString("<p><strong>Input Variables:</strong></p>\n")
	b.WriteString(preBlock(EscapeString(jsonDump(fn.InputVariables))))
	outputVar := fn.OutputVariable
	if outputVar == "" {
		outputVar = "N/A"
	}
	fmt.Fprintf(b, "<p><strong>Output Variable:</strong> %s</p>\n", EscapeString(outputVar))

	fnDetailsID := "functionDetailsAccordion-" + fn.CallID
	fmt.Fprintf(b, "<div class=\"accordion mb-2\" id=%q>\n", fnDetailsID)
	openItem(b, fnResponsePanelPrefix+fn.CallID, fnDetailsID, "Response")
	// Function responses are plain escaped text, never markdown.
	switch resp := fn.Response.(type) {
	case nil:
		// Empty text leaf.
	case string:
		b.WriteString(EscapeString(resp))
	default:
		b.WriteString(preBlock(jsonDump(resp)))
	}
	closeItem(b)
	b.WriteString("</div>\n")

	closeItem(b)
}

// renderResponse applies the leaf rule: structured values become 2-space
// pretty-printed JSON, strings are escaped then passed through the markdown
// transform, nil renders as an empty text leaf.
func (r *ReportRenderer) renderResponse(v any) string {
	switch resp := v.(type) {
	case nil:
		return r.md("")
	case string:
		return r.md(EscapeString(resp))
	default:
		return preBlock(jsonDump(resp))
	}
}

// formatConversation builds one markdown document from the turns: a bolded
// capitalized role label, the escaped content, a blank line between turns.
func (r *ReportRenderer) formatConversation(turns []schema.Message) string {
	if turns == nil {
		return "<p class=\"text-muted\">No conversation data available.</p>\n"
	}
	var doc strings.Builder
	for _, turn := range turns {
		doc.WriteString("**" + capitalize(turn.Role) + ":**\n")
		doc.WriteString(EscapeString(turn.Content))
		doc.WriteString("\n\n")
	}
	return r.md(doc.String())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// jsonDump serializes v as 2-space-indented JSON. encoding/json escapes
// HTML-significant characters inside string values, so the dump is safe to
// insert without textual escaping.
func jsonDump(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(data)
}

func preBlock(content string) string {
	return "<pre class=\"bg-light p-3 border rounded\">" + content + "</pre>\n"
}

// openItem emits a collapsible panel: a toggle control labeled label and an
// initially collapsed body, wired together through ids derived from panelID.
func openItem(b *strings.Builder, panelID, parentID, label string) {
	fmt.Fprintf(b, `<div class="accordion-item">
<h2 class="accordion-header" id="heading-%s">
<button class="accordion-button collapsed" type="button" data-bs-toggle="collapse" data-bs-target="#collapse-%s" aria-expanded="false" aria-controls="collapse-%s">%s</button>
</h2>
<div id="collapse-%s" class="accordion-collapse collapse" aria-labelledby="heading-%s" data-bs-parent="#%s">
<div class="accordion-body">
`, panelID, panelID, panelID, label, panelID, panelID, parentID)
}

func closeItem(b *strings.Builder) {
	b.WriteString("</div>\n</div>\n</div>\n")
}
