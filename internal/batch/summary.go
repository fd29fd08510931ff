package batch

import (
	"fmt"
	"strings"
	"time"
)

// RenderSummary formats a finished batch as a human-readable block. It is a
// pure function of the summary; the same input always yields the same text.
// Failed regions appear in their original processing order so a downstream
// monitor can react without parsing free-form log lines.
func RenderSummary(s RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "collection run %s\n", s.RunID)
	fmt.Fprintf(&b, "  started:  %s\n", s.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "  ended:    %s\n", s.EndedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "  elapsed:  %s\n", s.EndedAt.Sub(s.StartedAt).Round(time.Second))
	fmt.Fprintf(&b, "  regions:  %d total, %d succeeded, %d failed",
		s.TotalRegions, s.SucceededCount, s.FailedCount)
	if len(s.FailedRegions) > 0 {
		names := make([]string, len(s.FailedRegions))
		for i, r := range s.FailedRegions {
			names[i] = string(r)
		}
		fmt.Fprintf(&b, "\n  failed:   %s", strings.Join(names, ", "))
	}
	return b.String()
}
