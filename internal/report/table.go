package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var heading = color.New(color.FgCyan, color.Bold)

func WriteTable(r *Report, w io.Writer) {
	heading.Fprintf(w, "\n=== %s (%s) ===\n", r.Meta.Benchmark, r.Meta.BenchmarkID)
	fmt.Fprintf(w, "%d runs indexed from %s\n", len(r.Runs), r.Meta.DataPath)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	writeEnvTable(tw, r)
	writeRunTable(tw, r)
	tw.Flush()
}

func writeEnvTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "\nScore bounds per environment\n\n")

	header := []string{"Env", "Max timesteps", "Best", "Best run", "Worst", "Worst run"}
	writeHeader(tw, header)

	for _, e := range r.Envs {
		row := []string{e.EnvID, fmt.Sprintf("%d", e.MaxTimesteps)}
		row = append(row, fmtEntry(e.Best)...)
		row = append(row, fmtEntry(e.Worst)...)
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeRunTable(tw *tabwriter.Writer, r *Report) {
	fmt.Fprintf(tw, "Mean score per run\n\n")

	header := []string{"Run", "User", "Commit"}
	for _, e := range r.Envs {
		header = append(header, e.EnvID)
	}
	header = append(header, "Mean")
	writeHeader(tw, header)

	for _, rs := range r.Runs {
		row := []string{rs.Name, rs.Username, rs.Commit}
		for _, e := range r.Envs {
			row = append(row, fmtTask(rs.task(e.EnvID)))
		}
		if rs.ScoredEnvs > 0 {
			row = append(row, fmt.Sprintf("%.4f", rs.MeanScore))
		} else {
			row = append(row, "-")
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeHeader(tw *tabwriter.Writer, header []string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func (rs RunSummary) task(envID string) *TaskEntry {
	for i := range rs.Tasks {
		if rs.Tasks[i].EnvID == envID {
			return &rs.Tasks[i]
		}
	}
	return nil
}

func fmtEntry(e *ScoreEntry) []string {
	if e == nil {
		return []string{"N/A", "-"}
	}
	return []string{fmt.Sprintf("%.4f", e.Score), e.RunName}
}

func fmtTask(t *TaskEntry) string {
	if t == nil || !t.Scored {
		return "-"
	}
	return fmt.Sprintf("%.4f", t.Score)
}
