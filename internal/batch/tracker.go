package batch

import (
	"sync/atomic"
	"time"
)

// Tracker exposes live progress of a batch run to other goroutines, such
// as the diagnostics listener. The zero value is ready to use.
type Tracker struct {
	total    int64
	done     int64
	solved   int64
	unsolved int64
	worst    int64
	started  int64 // unix nanos; 0 before the first run
	running  int32
}

// Status is a point-in-time view of a Tracker.
type Status struct {
	Running   bool    `json:"running"`
	Total     int64   `json:"total"`
	Done      int64   `json:"done"`
	Solved    int64   `json:"solved"`
	Unsolved  int64   `json:"unsolved"`
	WorstCase int64   `json:"worst_case"`
	ElapsedS  float64 `json:"elapsed_seconds"`
}

func (t *Tracker) begin(total int) {
	atomic.StoreInt64(&t.total, int64(total))
	atomic.StoreInt64(&t.done, 0)
	atomic.StoreInt64(&t.solved, 0)
	atomic.StoreInt64(&t.unsolved, 0)
	atomic.StoreInt64(&t.worst, 0)
	atomic.StoreInt64(&t.started, time.Now().UnixNano())
	atomic.StoreInt32(&t.running, 1)
}

func (t *Tracker) end() { atomic.StoreInt32(&t.running, 0) }

func (t *Tracker) record(solved bool, guesses int) {
	if solved {
		atomic.AddInt64(&t.solved, 1)
		for {
			cur := atomic.LoadInt64(&t.worst)
			if int64(guesses) <= cur || atomic.CompareAndSwapInt64(&t.worst, cur, int64(guesses)) {
				break
			}
		}
	} else {
		atomic.AddInt64(&t.unsolved, 1)
	}
	atomic.AddInt64(&t.done, 1)
}

// Snapshot reads the current counters.
func (t *Tracker) Snapshot() Status {
	s := Status{
		Running:   atomic.LoadInt32(&t.running) == 1,
		Total:     atomic.LoadInt64(&t.total),
		Done:      atomic.LoadInt64(&t.done),
		Solved:    atomic.LoadInt64(&t.solved),
		Unsolved:  atomic.LoadInt64(&t.unsolved),
		WorstCase: atomic.LoadInt64(&t.worst),
	}
	if started := atomic.LoadInt64(&t.started); started != 0 {
		s.ElapsedS = time.Since(time.Unix(0, started)).Seconds()
	}
	return s
}
