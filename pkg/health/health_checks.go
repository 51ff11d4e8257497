package health

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/dd0wney/ppinet/pkg/interactions"
)

// AlwaysHealthy reports the process as up; it backs the liveness probe.
func AlwaysHealthy(name string) CheckFunc {
	return func(context.Context) Check {
		return Check{Name: name, Status: StatusHealthy}
	}
}

// FetcherCheck probes an interaction source with a protein it is expected
// to know. A failing fetch is unhealthy; an empty answer is degraded since
// the source is reachable but its data is missing.
func FetcherCheck(fetcher interactions.Fetcher, source interactions.Source, probe string) CheckFunc {
	return func(ctx context.Context) Check {
		check := Check{
			Name: "interactions_" + source.String(),
			Details: map[string]any{
				"source": source.String(),
				"probe":  probe,
			},
		}

		edges, err := fetcher.FetchInteractions(ctx, probe, source)
		switch {
		case err != nil:
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		case len(edges) == 0:
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("No interactions for %s", probe)
		default:
			check.Status = StatusHealthy
			check.Message = "Source reachable"
			check.Details["interactions"] = len(edges)
		}
		return check
	}
}

// DirectoryCheck reports whether an edge-list directory is readable
func DirectoryCheck(name, dir string) CheckFunc {
	return func(context.Context) Check {
		check := Check{Name: name, Details: map[string]any{"path": dir}}

		entries, err := os.ReadDir(dir)
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}

		check.Status = StatusHealthy
		check.Message = "Directory readable"
		check.Details["entries"] = len(entries)
		return check
	}
}

// RuntimeMemory reads heap allocation and total memory obtained from the OS.
func RuntimeMemory() (alloc, sys uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc, m.Sys
}

// memoryDegradedPercent is the alloc/sys ratio above which memory is degraded
const memoryDegradedPercent = 90

// MemoryCheck degrades once live allocations pass 90% of the memory the
// runtime holds. getUsage is usually RuntimeMemory.
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func(context.Context) Check {
		alloc, sys := getUsage()
		check := Check{
			Name: "memory",
			Details: map[string]any{
				"alloc_bytes": alloc,
				"sys_bytes":   sys,
			},
			Status:  StatusHealthy,
			Message: "Memory usage normal",
		}
		if sys > 0 && float64(alloc)/float64(sys)*100 > memoryDegradedPercent {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		}
		return check
	}
}
