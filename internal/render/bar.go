// Package render draws aggregation results as bar charts in the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/ticket-insights/internal/org"
)

const maxBarWidth = 50

// Colors lists the recognized bar color names.
var Colors = []string{
	"white", "black", "gray", "yellow", "red", "blue",
	"green", "brown", "pink", "orange", "purple",
}

// DefaultColor is used when no color option is given.
const DefaultColor = "gray"

var ansiColors = map[string]lipgloss.Color{
	"white":  lipgloss.Color("15"),
	"black":  lipgloss.Color("0"),
	"gray":   lipgloss.Color("8"),
	"yellow": lipgloss.Color("11"),
	"red":    lipgloss.Color("9"),
	"blue":   lipgloss.Color("12"),
	"green":  lipgloss.Color("10"),
	"brown":  lipgloss.Color("94"),
	"pink":   lipgloss.Color("13"),
	"orange": lipgloss.Color("208"),
	"purple": lipgloss.Color("93"),
}

// Bar is one labeled value in a chart.
type Bar struct {
	Label string
	Value int
}

// Options carries display-only settings passed through from the query.
type Options struct {
	Title string
	Color string
}

// BarChart renders horizontal bars scaled to the largest value, one row per
// bar, with a styled title line.
func BarChart(bars []Bar, opts Options) string {
	color, ok := ansiColors[opts.Color]
	if !ok {
		color = ansiColors[DefaultColor]
	}
	barStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(titleStyle.Render(opts.Title))
		b.WriteString("\n")
	}
	if len(bars) == 0 {
		b.WriteString("(no matching tickets)\n")
		return b.String()
	}

	labelWidth := 0
	maxValue := 1
	for _, bar := range bars {
		if len(bar.Label) > labelWidth {
			labelWidth = len(bar.Label)
		}
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
	}

	for _, bar := range bars {
		width := bar.Value * maxBarWidth / maxValue
		if bar.Value > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "%-*s %s %d\n",
			labelWidth, bar.Label,
			barStyle.Render(strings.Repeat("█", width)),
			bar.Value)
	}
	return b.String()
}

// WeekBars labels per-week buckets as "W<n> mm/dd", with the year appended
// to the first bucket.
func WeekBars(buckets []org.WeekBucket) []Bar {
	bars := make([]Bar, 0, len(buckets))
	for i, bucket := range buckets {
		label := fmt.Sprintf("W%d %s", bucket.Index+1, bucket.Start.Format("01/02"))
		if i == 0 {
			label += bucket.Start.Format(" 2006")
		}
		bars = append(bars, Bar{Label: label, Value: bucket.Count})
	}
	return bars
}

// CountBars converts grouped buckets, preserving their order.
func CountBars(buckets []org.CountBucket) []Bar {
	bars := make([]Bar, 0, len(buckets))
	for _, bucket := range buckets {
		bars = append(bars, Bar{Label: bucket.Label, Value: bucket.Count})
	}
	return bars
}
