package response

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

// minColumnWidth is the narrowest a rendered column may be.
const minColumnWidth = 10

// ErrNoResult is returned when there is nothing to render.
var ErrNoResult = errors.New("result set is nil")

// WriteTable renders result as a bordered, left-aligned text table:
//
//	+------------+------------+
//	| student_id | name       |
//	+------------+------------+
//	| 1          | Ann        |
//	+------------+------------+
func WriteTable(w io.Writer, result *models.ResultSet) error {
	if result == nil {
		return ErrNoResult
	}
	widths := columnWidths(result)

	var b strings.Builder
	writeSeparator(&b, widths)
	writeRow(&b, result.Columns, widths)
	writeSeparator(&b, widths)
	for _, row := range result.Rows {
		writeRow(&b, row, widths)
	}
	writeSeparator(&b, widths)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMessage prints one line of user feedback.
func WriteMessage(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// WriteError prints err as user feedback prefixed with its kind.
func WriteError(w io.Writer, err error) {
	if err == nil {
		return
	}
	appErr := appErrors.FromError(err)
	fmt.Fprintf(w, "[%s] %s\n", appErr.Kind, appErr.Error())
}

func columnWidths(result *models.ResultSet) []int {
	widths := make([]int, len(result.Columns))
	for i, name := range result.Columns {
		widths[i] = max(minColumnWidth, runewidth.StringWidth(name))
	}
	for _, row := range result.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	return widths
}

func writeSeparator(b *strings.Builder, widths []int) {
	for _, w := range widths {
		b.WriteString("+")
		b.WriteString(strings.Repeat("-", w+2))
	}
	b.WriteString("+\n")
}

func writeRow(b *strings.Builder, values []string, widths []int) {
	for i, w := range widths {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		b.WriteString("| ")
		b.WriteString(runewidth.FillRight(value, w))
		b.WriteString(" ")
	}
	b.WriteString("|\n")
}
