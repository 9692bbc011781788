package ui

import "fmt"

// Zone ID constants for bubblezone hit detection.
// These are used both in render paths (zone.Mark) and input paths (zone.Get().InBounds).
const (
	ZoneStatusMode = "zone-status-mode"
	ZoneHelp       = "zone-help"
)

// SummaryZoneID returns the zone ID for the summary row of the panel at idx.
func SummaryZoneID(idx int) string {
	return fmt.Sprintf("zone-summary-%d", idx)
}
