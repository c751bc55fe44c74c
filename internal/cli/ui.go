package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/edgecross/pkg/metric"
	"github.com/matzehuels/edgecross/pkg/pipeline"
	"github.com/matzehuels/edgecross/pkg/store"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleBar     = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// histogramWidth is the length of the longest distribution bar.
const histogramWidth = 30

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints graph statistics on a single line.
func printStats(nodeCount, edgeCount int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodeCount),
		fmt.Sprintf("%d edges", edgeCount),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line + StyleDim.Render(" · ") + statusStyle.Render(status))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Metric Output
// =============================================================================

// printResult prints the summary of one pipeline run.
func printResult(name string, res *pipeline.Result) {
	m := res.Metric
	fmt.Println(StyleTitle.Render(name))
	printStats(m.Nodes, m.Edges, res.CacheHit)
	printKeyValue("space", m.Kind)
	printKeyValue("strategy", string(m.Strategy))
	printKeyValue("crossings", StyleNumber.Render(strconv.Itoa(m.Total)))
	printKeyValue("max local", strconv.Itoa(m.MaxLocal))
	printKeyValue(metric.NameAverage, formatFloat(m.Distribution.Average))
	if res.ID != "" {
		printKeyValue("record", res.ID)
	}
	if n := len(m.Ambiguous); n > 0 {
		printWarning("%d ambiguous pairs were not counted", n)
		for _, p := range m.Ambiguous[:min(n, 5)] {
			printDetail("%s / %s", p.A, p.B)
		}
	}
	if m.Trivial {
		printDetail("no crossings; distribution is trivial")
		return
	}
	printDistribution(m)
}

// printDistribution draws the distribution as a horizontal bar chart.
func printDistribution(m *metric.Result) {
	d := m.Distribution
	peak := 0.0
	for _, v := range d.Values {
		peak = max(peak, v)
	}
	for k, v := range d.Values {
		if v == 0 {
			continue
		}
		n := 1
		if peak > 0 {
			n = max(1, int(v/peak*histogramWidth))
		}
		fmt.Printf("  %s %s %s\n",
			StyleDim.Render(fmt.Sprintf("%4d", k)),
			styleBar.Render(strings.Repeat("█", n)),
			StyleDim.Render(formatFloat(v)),
		)
	}
}

// printPerEdge prints the local crossing count of every crossed edge,
// most crossed first, up to limit lines.
func printPerEdge(m *metric.Result, limit int) {
	edges := slices.Clone(m.PerEdge)
	slices.SortStableFunc(edges, func(a, b metric.EdgeCount) int {
		return cmp.Compare(b.Crossings, a.Crossings)
	})
	shown := 0
	for _, ec := range edges {
		if ec.Crossings == 0 {
			continue
		}
		if shown == limit {
			printDetail("...")
			return
		}
		printKeyValue(ec.Edge.String(), strconv.Itoa(ec.Crossings))
		shown++
	}
}

// printLocal prints a restricted count.
func printLocal(res *metric.LocalResult) {
	label := fmt.Sprintf("node %d", res.Node)
	if res.Other != nil {
		label = fmt.Sprintf("nodes %d and %d", res.Node, *res.Other)
	}
	fmt.Println(StyleTitle.Render(label))
	printKeyValue("crossings", StyleNumber.Render(strconv.Itoa(res.Crossings)))
	if n := len(res.Ambiguous); n > 0 {
		printWarning("%d ambiguous pairs were not counted", n)
	}
}

// printRecord prints a one-line summary of a stored result.
func printRecord(rec store.Record) {
	fmt.Printf("%s  %s  %s\n",
		StyleValue.Render(rec.ID),
		StyleDim.Render(rec.CreatedAt.Local().Format("2006-01-02 15:04:05")),
		StyleDim.Render(fmt.Sprintf("%s · %d edges · %d crossings · avg %s", rec.Kind, rec.Edges, rec.Total, formatFloat(rec.Average))),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
