// Package workload builds the task populations fed to the scheduler: either
// an explicit task list from a YAML file, or a deterministic seeded random
// population. The scheduler itself never generates data.
package workload

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	yaml "github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"

	"schedsim/internal/sched"
)

// TaskSpec is one task entry in a workload file.
type TaskSpec struct {
	PID         int   `yaml:"pid"`
	ArrivalTime int64 `yaml:"arrival_time"`
	BurstTime   int64 `yaml:"burst_time"`
	Weight      int64 `yaml:"weight"`
}

// Spec mirrors a workload YAML file. When Tasks is non-empty it wins;
// otherwise Count tasks are generated from Seed within the Max* bounds.
type Spec struct {
	Count      int   `yaml:"count"`
	Seed       int64 `yaml:"seed"`
	MaxArrival int64 `yaml:"max_arrival"`
	MaxBurst   int64 `yaml:"max_burst"`
	MaxWeight  int64 `yaml:"max_weight"`

	Tasks []TaskSpec `yaml:"tasks"`
}

// DefaultSpec returns generation bounds matching the classic simulation
// parameters: arrivals within 20s, bursts within 50s, niceness 1..10
// (times in milliseconds).
func DefaultSpec() Spec {
	return Spec{
		Count:      5,
		Seed:       1,
		MaxArrival: 20_000,
		MaxBurst:   50_000,
		MaxWeight:  10,
	}
}

// LoadSpec reads a workload file, filling unset generation bounds with
// defaults. Unlike config loading, a missing or malformed workload file is
// an error: silently simulating the wrong population is worse than failing.
func LoadSpec(path string) (Spec, error) {
	sp := DefaultSpec()
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read workload: %w", err)
	}
	if err := yaml.Unmarshal(data, &sp); err != nil {
		return Spec{}, fmt.Errorf("parse workload %s: %w", path, err)
	}
	return sp, nil
}

// Build produces the arrival-sorted task population described by the spec.
func (sp Spec) Build() ([]*sched.Task, error) {
	var tasks []*sched.Task
	if len(sp.Tasks) > 0 {
		for _, ts := range sp.Tasks {
			tasks = append(tasks, sched.NewTask(ts.PID, ts.ArrivalTime, ts.BurstTime, ts.Weight))
		}
	} else {
		if sp.Count <= 0 {
			return nil, fmt.Errorf("workload: task count must be positive, got %d", sp.Count)
		}
		if sp.MaxArrival < 0 || sp.MaxBurst < 1 || sp.MaxWeight < 1 {
			return nil, fmt.Errorf("workload: generation bounds must be positive")
		}
		tasks = generate(sp)
	}

	// Stable sort keeps equal arrivals in declaration/generation order,
	// which is the tie-break order the scheduler expects.
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].ArrivalTime < tasks[j].ArrivalTime
	})
	return tasks, nil
}

// generate draws a reproducible population from the spec's seed. The
// correctness of the scheduler never depends on this randomness; the same
// seed always yields the same population.
func generate(sp Spec) []*sched.Task {
	rng := rand.New(rand.NewSource(sp.Seed))
	tasks := make([]*sched.Task, 0, sp.Count)
	for i := 0; i < sp.Count; i++ {
		t := sched.NewTask(
			1+rng.Intn(sp.Count*sp.Count),
			rng.Int63n(sp.MaxArrival+1),
			1+rng.Int63n(sp.MaxBurst),
			1+rng.Int63n(sp.MaxWeight),
		)
		tasks = append(tasks, t)
	}
	log.WithFields(log.Fields{
		"count": sp.Count,
		"seed":  sp.Seed,
	}).Debug("generated random workload")
	return tasks
}
