package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"econcharts/internal/frame"
)

// TableOptions controls console table output.
type TableOptions struct {
	Title       string
	NewestFirst bool
	// Digits is the number of decimals kept; trailing zeros are dropped.
	Digits int
}

// Table prints tab as aligned columns with thousands separators. Missing
// values print as "-".
func Table(w io.Writer, tab frame.Tabular, o TableOptions) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if o.Title != "" {
		if _, err := fmt.Fprintln(w, o.Title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(tw, strings.Join(tab.Header(), "\t")+"\t"); err != nil {
		return err
	}

	n := tab.Len()
	if n == 0 {
		if _, err := fmt.Fprintf(tw, "(%s)\t\n", NoData); err != nil {
			return err
		}
		return tw.Flush()
	}

	for j := 0; j < n; j++ {
		i := j
		if o.NewestFirst {
			i = n - 1 - j
		}
		cells := tab.Row(i)
		fields := make([]string, len(cells))
		for k, c := range cells {
			fields[k] = FormatCell(c, o.Digits)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(fields, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// FormatCell renders c for people: labels verbatim, numbers with thousands
// separators and at most digits decimals, missing values as "-".
func FormatCell(c frame.Cell, digits int) string {
	if !c.Numeric {
		return c.Text
	}
	if !c.Value.Valid {
		return "-"
	}
	return humanize.CommafWithDigits(c.Value.Float, digits)
}
