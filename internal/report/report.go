// Package report renders finished task populations: a per-task table,
// aggregate statistics, and CSV export. It only reads the fields the
// scheduler left behind and never mutates a task.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"schedsim/internal/sched"
)

// Stats are the aggregate metrics of one discipline run.
type Stats struct {
	MeanWaiting    float64
	MeanTurnaround float64
	StddevWaiting  float64 // population standard deviation
}

// Summarize computes aggregate metrics over a finished population.
func Summarize(tasks []*sched.Task) Stats {
	if len(tasks) == 0 {
		return Stats{}
	}
	n := float64(len(tasks))

	var totalWait, totalTurnaround float64
	for _, t := range tasks {
		totalWait += float64(t.WaitingTime)
		totalTurnaround += float64(t.TurnaroundTime)
	}
	meanWait := totalWait / n

	var sumSq float64
	for _, t := range tasks {
		d := float64(t.WaitingTime) - meanWait
		sumSq += d * d
	}

	return Stats{
		MeanWaiting:    meanWait,
		MeanTurnaround: totalTurnaround / n,
		StddevWaiting:  math.Sqrt(sumSq / n),
	}
}

// WriteTable prints every task's inputs and final metrics as an aligned
// table.
func WriteTable(w io.Writer, title string, tasks []*sched.Task) error {
	fmt.Fprintf(w, "\n==== %s ====\n", title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tArrival\tBurst\tWeight\tWaiting\tTurnaround")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\n",
			t.PID, t.ArrivalTime, t.BurstTime, t.Weight, t.WaitingTime, t.TurnaroundTime)
	}
	return tw.Flush()
}

// WriteSummary prints the aggregate metrics of one run.
func WriteSummary(w io.Writer, st Stats) {
	fmt.Fprintf(w, "Average waiting time: %.3f\n", st.MeanWaiting)
	fmt.Fprintf(w, "Average turnaround time: %.3f\n", st.MeanTurnaround)
	fmt.Fprintf(w, "Standard deviation in waiting time: %.3f\n", st.StddevWaiting)
}

// Row is one CSV record: a task's final state under one discipline.
type Row struct {
	Discipline     string
	PID            int
	ArrivalTime    int64
	BurstTime      int64
	Weight         int64
	WaitingTime    int64
	TurnaroundTime int64
}

// Snapshot captures the current state of a population for CSV export.
// The copy matters: the same tasks are reset and rerun per discipline.
func Snapshot(discipline string, tasks []*sched.Task) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, Row{
			Discipline:     discipline,
			PID:            t.PID,
			ArrivalTime:    t.ArrivalTime,
			BurstTime:      t.BurstTime,
			Weight:         t.Weight,
			WaitingTime:    t.WaitingTime,
			TurnaroundTime: t.TurnaroundTime,
		})
	}
	return rows
}

// WriteCSV writes snapshot rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"discipline", "pid", "arrival_time", "burst_time", "weight", "waiting_time", "turnaround_time"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Discipline,
			strconv.Itoa(r.PID),
			strconv.FormatInt(r.ArrivalTime, 10),
			strconv.FormatInt(r.BurstTime, 10),
			strconv.FormatInt(r.Weight, 10),
			strconv.FormatInt(r.WaitingTime, 10),
			strconv.FormatInt(r.TurnaroundTime, 10),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
