package commentary

import "fmt"

// promptTemplate frames the analyst brief. The rendered report is
// interpolated verbatim; the instructions are fixed.
const promptTemplate = `You are a seasoned buy-side portfolio analyst.
Below is a live valuation report for the stocks I own, including the news
headlines fetched for each holding.

%s

Your job, in plain text (no markdown code blocks):
1. HEALTH: one sentence on the state of my total equity.
2. DEEP DIVE: pick the position moving the most right now and explain WHY
   it is moving, using only the headlines provided.
3. STANCE: a one-line buy/hold/trim view for each holding in the report.
Positions marked "data error" had no quote this run; acknowledge them,
do not invent prices for them.`

// BuildPrompt interpolates the rendered report into the instruction
// template.
func BuildPrompt(report string) string {
	return fmt.Sprintf(promptTemplate, report)
}
