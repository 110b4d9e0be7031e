package history

import "time"

// Delta compares the newest run against the one before it.
type Delta struct {
	From          time.Time
	To            time.Time
	Files         int
	CodeLines     int
	CompiledLines int
}

// ComputeTrend derives the delta between the two most recent runs in a
// newest-first slice. Returns false when fewer than two runs exist.
func ComputeTrend(runs []Run) (Delta, bool) {
	if len(runs) < 2 {
		return Delta{}, false
	}
	latest, prev := runs[0], runs[1]
	return Delta{
		From:          prev.Timestamp,
		To:            latest.Timestamp,
		Files:         latest.Files - prev.Files,
		CodeLines:     latest.CodeLines - prev.CodeLines,
		CompiledLines: latest.CompiledLines - prev.CompiledLines,
	}, true
}
