package dataset

import (
	"runtime"
)

// ScanContext carries the execution policy for a scan. It is constructed
// alongside a ScannerBuilder, mutated only through the builder's setters,
// and captured by the finished Scanner; it must not be modified after
// the builder's Finish is called.
type ScanContext struct {
	UseThreads bool
	NumWorkers int // worker cap for pooled execution; 0 means one worker per CPU
}

// TaskGroup returns the execution strategy selected by this context:
// a pooled TaskGroup if UseThreads is set, else a strictly serial one.
func (sc *ScanContext) TaskGroup() TaskGroup {
	if sc.UseThreads {
		workers := sc.NumWorkers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		return CreateThreadedTaskGroup(workers)
	}
	return CreateSerialTaskGroup()
}
