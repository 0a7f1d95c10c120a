package api

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jackzampolin/folio/internal/types"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for pass rejections
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary boxes with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	// methodStyles color chapters by the pass that produced them
	methodStyles = map[types.DetectionMethod]lipgloss.Style{
		types.MethodRegex:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		types.MethodTopicShift: lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		types.MethodSynthetic:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
)

// FormatChapters renders a document header and its chapter table.
func FormatChapters(w io.Writer, title string, pageCount int, result *types.SegmentationResult) error {
	header := fmt.Sprintf("%s\n%s %d  %s %s  %s %d",
		titleStyle.Render(title),
		dimStyle.Render("Pages:"), pageCount,
		dimStyle.Render("Method:"), renderMethod(result.Method()),
		dimStyle.Render("Chapters:"), len(result.Chapters),
	)
	if _, err := fmt.Fprintln(w, boxStyle.Render(header)); err != nil {
		return err
	}

	numWidth := len(fmt.Sprint(len(result.Chapters)))
	for _, ch := range result.Chapters {
		pages := fmt.Sprintf("%d-%d", ch.StartPage, ch.EndPage)
		line := fmt.Sprintf("  %*d  %-11s %s  %s",
			numWidth, ch.Number,
			pages,
			ch.Title,
			dimStyle.Render(fmt.Sprintf("(%d pp, %s)", ch.PageCount(), ch.DetectionMethod)),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, warning := range result.Warnings {
		if _, err := fmt.Fprintln(w, warnStyle.Render("  ! "+warning)); err != nil {
			return err
		}
	}
	return nil
}

// FormatFailure renders a one-line failure for a document.
func FormatFailure(w io.Writer, source string, err string) error {
	_, werr := fmt.Fprintf(w, "%s %s %s\n", errorStyle.Render("FAILED"), source, dimStyle.Render(err))
	return werr
}

// FormatKeyValues renders a titled box of aligned key/value rows.
func FormatKeyValues(w io.Writer, title string, rows [][2]string) error {
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("%-*s", width+1, r[0]+":")))
		b.WriteString(" ")
		b.WriteString(r[1])
	}
	_, err := fmt.Fprintln(w, boxStyle.Render(b.String()))
	return err
}

// Status renders an OK / ERROR indicator.
func Status(ok bool) string {
	if ok {
		return successStyle.Render("OK")
	}
	return errorStyle.Render("ERROR")
}

func renderMethod(m types.DetectionMethod) string {
	if style, ok := methodStyles[m]; ok {
		return style.Render(string(m))
	}
	return string(m)
}
