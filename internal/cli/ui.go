package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ANSI 256 palette. Muted tones read well on both dark and light terminals.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

// Exported styles are shared with the algorithm picker.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleSection     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleHeader      = lipgloss.NewStyle().Foreground(colorLabel).Bold(true).Padding(0, 1)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
	styleKey         = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCmd)
)

const (
	iconArrow  = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

// marker is the leading glyph of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
	tint  bool // render the message in the marker's color too
}

var (
	markSuccess = marker{"✓", lipgloss.NewStyle().Foreground(colorOK), false}
	markError   = marker{"✗", lipgloss.NewStyle().Foreground(colorFail), false}
	markWarning = marker{"!", lipgloss.NewStyle().Foreground(colorWarn), true}
	markInfo    = marker{"›", lipgloss.NewStyle().Foreground(colorLabel), false}
)

func (m marker) line(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if m.tint {
		msg = m.style.Render(msg)
	}
	return m.style.Render(m.glyph) + " " + msg
}

func printSuccess(format string, args ...any) { fmt.Println(markSuccess.line(format, args...)) }
func printError(format string, args ...any)   { fmt.Println(markError.line(format, args...)) }
func printWarning(format string, args ...any) { fmt.Println(markWarning.line(format, args...)) }
func printInfo(format string, args ...any)    { fmt.Println(markInfo.line(format, args...)) }

func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written artifact.
func printFile(path string) {
	fmt.Printf("  %s %s\n", StyleDim.Render(iconArrow), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// statsLine summarizes a pipeline run: "4 shapes · 3 connections · cached".
// Zero counts are omitted; the cache status is always shown.
func statsLine(shapes, connections int, cached bool) string {
	var parts []string
	if shapes > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d shapes", shapes)))
	}
	if connections > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d connections", connections)))
	}
	status := StyleDim.Foreground(colorLabel).Render(iconFresh)
	if cached {
		status = StyleDim.Foreground(colorOK).Render(iconCached)
	}
	parts = append(parts, status)
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(shapes, connections int, cached bool) {
	fmt.Println(statsLine(shapes, connections, cached))
}

// renderTable draws a rounded table. The first column is rendered as labels.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return styleCell.Foreground(colorLabel)
			default:
				return styleCell.Foreground(colorText)
			}
		}).
		Render()
}

func printSection(title string) { fmt.Println(styleSection.Render(title)) }

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Printf("%s %s\n", StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
