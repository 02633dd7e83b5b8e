package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// TrackerStats summarizes the per-card status rows in tracker.md.
type TrackerStats struct {
	Pending    int
	InProgress int
	Done       int
	Skipped    int
}

// Total is the number of discovered cards across all statuses.
func (s TrackerStats) Total() int {
	return s.Pending + s.InProgress + s.Done + s.Skipped
}

var (
	tableRowRe = regexp.MustCompile(`(?m)^\|.*\|$`)

	// Matches the Statistics section up to and including the next heading
	// delimiter; the delimiter is restored on replacement.
	statsBlockRe = regexp.MustCompile(`(?s)## Statistics.*?\n## `)
)

// SyncTrackerStats recounts the status column of tracker.md's table and
// rewrites its Statistics section in place. A missing tracker file is skipped
// silently; it only exists while a card batch is in flight.
func SyncTrackerStats(path string) (TrackerStats, error) {
	var stats TrackerStats

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading tracker: %w", err)
	}
	tracker := string(data)

	for _, row := range tableRowRe.FindAllString(tracker, -1) {
		if strings.Contains(row, "Status") || strings.HasPrefix(strings.TrimLeft(row, "| "), "-") {
			continue
		}
		switch {
		case strings.Contains(row, "| pending |"):
			stats.Pending++
		case strings.Contains(row, "| in-progress |"):
			stats.InProgress++
		case strings.Contains(row, "| done |"):
			stats.Done++
		case strings.Contains(row, "| skipped |"):
			stats.Skipped++
		}
	}

	section := fmt.Sprintf(
		"## Statistics\n- Total discovered: %d\n- Pending: %d\n- In progress: %d\n- Completed: %d\n- Skipped: %d\n\n",
		stats.Total(), stats.Pending, stats.InProgress, stats.Done, stats.Skipped,
	)
	tracker = statsBlockRe.ReplaceAllLiteralString(tracker, section+"\n## ")

	if err := os.WriteFile(path, []byte(tracker), 0644); err != nil {
		return stats, fmt.Errorf("writing tracker: %w", err)
	}
	return stats, nil
}
