// Entry point for the scheduling simulator CLI. Flag handling follows the
// cobra run-command layout; the actual simulation lives in internal/sched.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"schedsim/internal/report"
	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

var (
	configPath   string   // scheduler config file (quantum, tracing)
	workloadPath string   // workload file; empty = random generation
	logLevel     string   // log verbosity level
	csvPath      string   // per-task results CSV; empty = no export
	quantum      int64    // base quantum override; 0 = use config
	count        int      // random workload size
	seed         int64    // random workload seed
	algos        []string // disciplines to run, in order
	traceEvents  bool     // print the event trace of every run
)

var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Discrete-event simulator for CPU scheduling disciplines",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the selected disciplines over one task population",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sched.Load(configPath)
		if quantum > 0 {
			cfg.Quantum = quantum
		}
		if traceEvents {
			cfg.TraceEvents = true
		}

		spec := workload.DefaultSpec()
		if workloadPath != "" {
			spec, err = workload.LoadSpec(workloadPath)
			if err != nil {
				logrus.Fatalf("Unable to load workload: %v", err)
			}
		} else {
			spec.Count = count
			spec.Seed = seed
		}
		tasks, err := spec.Build()
		if err != nil {
			logrus.Fatalf("Unable to build workload: %v", err)
		}

		logrus.Infof("Simulating %d tasks with quantum=%d under %v", len(tasks), cfg.Quantum, algos)

		s := sched.New(cfg)
		var rows []report.Row
		for _, name := range algos {
			d, err := sched.ParseDiscipline(name)
			if err != nil {
				return err
			}

			sched.Reset(tasks)
			if err := s.Schedule(d, tasks); err != nil {
				return fmt.Errorf("%s run: %w", d, err)
			}

			if err := report.WriteTable(os.Stdout, d.String(), tasks); err != nil {
				return err
			}
			report.WriteSummary(os.Stdout, report.Summarize(tasks))
			if cfg.TraceEvents {
				printTrace(s.Trace())
			}
			rows = append(rows, report.Snapshot(d.String(), tasks)...)
		}

		if csvPath != "" {
			f, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("create csv: %w", err)
			}
			defer f.Close()
			if err := report.WriteCSV(f, rows); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			logrus.Infof("Wrote results to %s", csvPath)
		}
		return nil
	},
}

func printTrace(tr *sched.Trace) {
	if tr == nil {
		return
	}
	for _, ev := range tr.Events {
		fmt.Printf("clock=%07d [%8s] pid=%04d slice=%d vruntime=%d\n",
			ev.Clock, ev.Kind, ev.PID, ev.Slice, ev.Vruntime)
	}
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "config.yml", "Scheduler config file")
	runCmd.Flags().StringVar(&workloadPath, "workload", "", "Workload file (explicit tasks or generation bounds)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "Write per-task results to this CSV file")
	runCmd.Flags().Int64Var(&quantum, "quantum", 0, "Base time quantum (overrides config)")
	runCmd.Flags().IntVar(&count, "tasks", 5, "Number of randomly generated tasks")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "Seed for random task generation")
	runCmd.Flags().StringSliceVar(&algos, "algos", []string{"cfs", "fcfs", "sjf", "priority", "rr"}, "Disciplines to run")
	runCmd.Flags().BoolVar(&traceEvents, "trace", false, "Print the event trace of every run")

	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
