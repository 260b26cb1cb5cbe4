package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cardwise/cardwise/internal/insights"
	"github.com/cardwise/cardwise/internal/models"
)

// RenderSkippedSection renders the warning block shown when transaction rows
// were dropped during parsing. Empty when nothing was skipped.
func RenderSkippedSection(rowCount, skippedCount int) string {
	if skippedCount <= 0 {
		return ""
	}

	return fmt.Sprintf(`
		<div style="background-color: #fff4f4; border-left: 5px solid #d13438; padding: 15px; margin-bottom: 20px;">
			<h3 style="color: #d13438; margin-top: 0; font-size: 18px;">⚠️ Warning: Some transactions were skipped</h3>
			<p style="margin-bottom: 0;">%d of %d rows could not be parsed and were left out of the totals below.</p>
		</div>
	`, skippedCount, rowCount)
}

// renderSummarySection renders the headline figures table.
func renderSummarySection(summary insights.Summary) string {
	row := func(label, value string) string {
		return fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right; font-weight: bold;">$%s</td>
			</tr>`, label, value)
	}

	var rows strings.Builder
	rows.WriteString(row("Current Balance", summary.CurrentBalance.StringFixed(2)))
	rows.WriteString(row("Monthly Spending", summary.MonthlySpending.StringFixed(2)))
	rows.WriteString(row("Interest Charged", summary.InterestCharged.StringFixed(2)))
	rows.WriteString(row("Available Credit", summary.AvailableCredit.StringFixed(2)))

	return fmt.Sprintf(`
		<table style="width: 100%%; border-collapse: collapse; margin-bottom: 20px;">
			%s
		</table>
	`, rows.String())
}

// renderNudgesSection renders the personalized nudges list.
func renderNudgesSection(nudges []string) string {
	if len(nudges) == 0 {
		return ""
	}

	var items strings.Builder
	for _, n := range nudges {
		items.WriteString(fmt.Sprintf("<li style=\"margin-bottom: 8px;\">%s</li>", n))
	}

	return fmt.Sprintf(`
		<h3 style="color: #0078d4;">Your Nudges</h3>
		<ul style="padding-left: 20px;">
			%s
		</ul>
	`, items.String())
}

// renderScenariosSection renders the what-if summaries.
func renderScenariosSection(scenarios map[string]models.ScenarioResult) string {
	if len(scenarios) == 0 {
		return ""
	}

	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	var items strings.Builder
	for _, name := range names {
		items.WriteString(fmt.Sprintf("<li style=\"margin-bottom: 8px;\"><b>%s:</b> %s</li>", name, scenarios[name].Summary))
	}

	return fmt.Sprintf(`
		<h3 style="color: #0078d4;">What-If Scenarios</h3>
		<ul style="padding-left: 20px;">
			%s
		</ul>
	`, items.String())
}

// RenderReportBody renders the full HTML body for a statement report email.
func RenderReportBody(record models.StatementRecord, report insights.Report, rowCount, skippedCount int) string {
	explanation := strings.ReplaceAll(strings.TrimSpace(report.Explanation), "\n", "<br>")

	var categories strings.Builder
	if len(record.Statement.SpendingCategories) > 0 {
		names := make([]string, 0, len(record.Statement.SpendingCategories))
		for name := range record.Statement.SpendingCategories {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			a, b := record.Statement.SpendingCategories[names[i]], record.Statement.SpendingCategories[names[j]]
			if !a.Equal(b) {
				return a.GreaterThan(b)
			}
			return names[i] < names[j]
		})

		categories.WriteString(`<h3 style="color: #0078d4;">Spending by Category</h3><table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">`)
		for _, name := range names {
			categories.WriteString(fmt.Sprintf(`
				<tr>
					<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
					<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">$%s</td>
				</tr>`, name, record.Statement.SpendingCategories[name].StringFixed(2)))
		}
		categories.WriteString("</table>")
	}

	return fmt.Sprintf(`
		<html>
		<body style="font-family: 'Segoe UI', sans-serif; color: #333; line-height: 1.6; background-color: #f4f4f4; margin: 0; padding: 20px;">
			<div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 8px; overflow: hidden; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
				<div style="background-color: #0078d4; padding: 20px; text-align: center; color: white;">
					<h2 style="margin: 0;">Statement Report</h2>
					<p style="margin: 5px 0 0;">%s</p>
				</div>
				<div style="padding: 20px;">
					%s
					%s
					<p>%s</p>
					%s
					%s
					%s
				</div>
			</div>
		</body>
		</html>
	`,
		record.Filename,
		RenderSkippedSection(rowCount, skippedCount),
		renderSummarySection(report.Summary),
		explanation,
		categories.String(),
		renderNudgesSection(report.Nudges),
		renderScenariosSection(report.Scenarios),
	)
}
