package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Sort Energy Benchmark (runs=%d, warmup=%d) ===\n\n", r.Config.Runs, r.Config.Warmup)

	header := []string{"Algorithm", "n", "Avg Time (s)", "Stddev (s)", "Avg Energy (J)", "Stddev (J)", "J per element", "Method"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, s := range r.Series {
		for _, p := range s.Points {
			row := []string{
				s.Algorithm,
				fmt.Sprintf("%d", p.Size),
				fmt.Sprintf("%.6f", p.AvgTime),
				fmt.Sprintf("%.6f", p.TimeStddev),
				fmt.Sprintf("%.6f", p.AvgEnergy),
				fmt.Sprintf("%.6f", p.EnergyStddev),
				fmtPerElement(p),
				p.Method,
			}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}

	fmt.Fprintln(tw)
	tw.Flush()
}

func fmtPerElement(p Point) string {
	if p.Size == 0 {
		return "-"
	}
	return fmt.Sprintf("%.3e", p.AvgEnergy/float64(p.Size))
}
