package errorlog

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRepositoryKeepsOrderAndDropsDuplicates(t *testing.T) {
	t.Parallel()

	repo := NewRepository()
	first := PlanError{Step: "fmt", Position: 1, Preparator: "change-date-format", Requirement: `property "date" has date pattern yyyy-MM-dd`, Message: "unmet prerequisite"}
	second := ExecutionError{Step: "rename", Position: 0, Preparator: "rename-property", Target: "Gaodu", Record: StepRecord, Message: "Property name does not exist."}

	require.Equal(t, 2, repo.Add(first, second, first, nil))
	require.Equal(t, 0, repo.Add(second))

	logs := repo.Logs()
	require.Len(t, logs, 2)
	require.Equal(t, first, logs[0])
	require.Equal(t, second, logs[1])
	require.Equal(t, 1, repo.CountPlanErrors())
	require.Equal(t, 1, repo.CountExecutionErrors())
	require.True(t, repo.HasPlanErrors())
	require.Equal(t, []PlanError{first}, repo.PlanErrors())
	require.Equal(t, []ExecutionError{second}, repo.ExecutionErrors())
}

func TestRepositoryEmpty(t *testing.T) {
	t.Parallel()

	repo := NewRepository()
	require.Zero(t, repo.Len())
	require.False(t, repo.HasPlanErrors())
	require.Empty(t, repo.PlanErrors())
	require.Empty(t, repo.ExecutionErrors())
	require.True(t, repo.Equal(NewRepository()))
	require.False(t, repo.Equal(nil))
}

func TestErrorStrings(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		`step 2 (cast, change-data-type) on "height" record 7: cannot cast "abc" to integer`,
		ExecutionError{Step: "cast", Position: 2, Preparator: "change-data-type", Target: "height", Record: 7, Message: `cannot cast "abc" to integer`}.Error(),
	)
	require.Equal(t,
		`step 0 (rename, rename-property) on "weight": New name already exists.`,
		ExecutionError{Step: "rename", Preparator: "rename-property", Target: "weight", Record: StepRecord, Message: "New name already exists."}.Error(),
	)
	require.Equal(t,
		`step 1 (fmt, change-date-format): unmet prerequisite: date pattern`,
		PlanError{Step: "fmt", Position: 1, Preparator: "change-date-format", Requirement: "date pattern", Message: "unmet prerequisite"}.Error(),
	)
}

func sampleErrors(n int) []RecordError {
	out := make([]RecordError, n)
	for i := range out {
		out[i] = RecordError{
			Target:  fmt.Sprintf("col%d", i%3),
			Record:  int64(i % 11),
			Message: fmt.Sprintf("failure %d", i),
		}
	}
	return out
}

func TestAccumulatorOrderIndependent(t *testing.T) {
	t.Parallel()

	errs := sampleErrors(64)

	reference := NewAccumulator()
	for _, e := range errs {
		reference.Report(e.Target, e.Record, e.Message)
	}
	want := reference.Entries()

	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 10; round++ {
		shuffled := append([]RecordError(nil), errs...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		acc := NewAccumulator()
		for _, e := range shuffled {
			acc.Report(e.Target, e.Record, e.Message)
		}
		require.Equal(t, want, acc.Entries(), "round %d", round)
	}
}

func TestAccumulatorMergeIsCommutative(t *testing.T) {
	t.Parallel()

	errs := sampleErrors(30)
	left, right := NewAccumulator(), NewAccumulator()
	for i, e := range errs {
		if i%2 == 0 {
			left.Report(e.Target, e.Record, e.Message)
		} else {
			right.Report(e.Target, e.Record, e.Message)
		}
	}

	ab := NewAccumulator()
	ab.Merge(left)
	ab.Merge(right)

	ba := NewAccumulator()
	ba.Merge(right)
	ba.Merge(left)

	require.Equal(t, ab.Entries(), ba.Entries())
	require.Equal(t, 30, ab.Len())
	require.Equal(t, 15, left.Len(), "merge leaves the source untouched")

	ab.Merge(ab)
	ab.Merge(nil)
	require.Equal(t, 30, ab.Len())
}

func TestAccumulatorConcurrentBuffers(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			buf := acc.Buffer()
			for i := 0; i < 25; i++ {
				buf.Report("col", int64(worker*100+i), "bad value")
			}
			buf.Flush()
			buf.Flush()
		}(worker)
	}
	wg.Wait()

	entries := acc.Entries()
	require.Len(t, entries, 200)
	require.Equal(t, int64(0), entries[0].Record)
	require.Equal(t, int64(724), entries[len(entries)-1].Record)
}

func TestAccumulatorStepErrorsSortFirst(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.Report("date", 3, "unparseable")
	acc.ReportStep("Gaodu", "Property name does not exist.")

	entries := acc.Entries()
	require.Equal(t, StepRecord, entries[0].Record)
	require.Equal(t, "Gaodu", entries[0].Target)
}
