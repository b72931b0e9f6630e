package datarecording

import (
	"github.com/rs/xid"

	"github.com/verigo/verigo/bench"
)

// RunTableName is the table test run verdicts are recorded into.
const RunTableName = "test_runs"

// A RunRecord is one row of the test_runs table: the verdict of a single
// test run.
type RunRecord struct {
	RunID       string
	Test        string
	Cycles      int
	Passed      bool
	Failure     string
	EndTimeSec  float64
	WallSeconds float64
}

// A RunRecorder observes a bench runner and records one RunRecord per
// finished test.
type RunRecorder struct {
	recorder DataRecorder
}

// NewRunRecorder creates a RunRecorder writing into recorder. The run table
// is created on the spot.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable(RunTableName, RunRecord{})

	return &RunRecorder{recorder: recorder}
}

// TestStarted implements bench.RunObserver.
func (r *RunRecorder) TestStarted(_ string) {
}

// TestFinished records the verdict of a finished test.
func (r *RunRecorder) TestFinished(res bench.Result) {
	rec := RunRecord{
		RunID:       xid.New().String(),
		Test:        res.Name,
		Cycles:      res.Cycles,
		Passed:      res.Passed,
		EndTimeSec:  float64(res.EndTime),
		WallSeconds: res.WallDuration.Seconds(),
	}
	if res.Err != nil {
		rec.Failure = res.Err.Error()
	}

	r.recorder.InsertData(RunTableName, rec)
	r.recorder.Flush()
}
