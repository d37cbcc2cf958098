package match

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusUpcoming  Status = "UPCOMING"
	StatusDelayed   Status = "DELAYED"
	StatusLive      Status = "LIVE"
	StatusCompleted Status = "COMPLETED"
)

var AllStatuses = map[Status]struct{}{
	StatusUpcoming:  {},
	StatusDelayed:   {},
	StatusLive:      {},
	StatusCompleted: {},
}

// statusRank orders the lifecycle. Transitions never move backwards, with one
// exception: UPCOMING and DELAYED may flip either way (weather calls before
// the toss). COMPLETED is terminal.
var statusRank = map[Status]int{
	StatusUpcoming:  0,
	StatusDelayed:   0,
	StatusLive:      1,
	StatusCompleted: 2,
}

// CanTransition reports whether a status change is allowed.
func CanTransition(from, to Status) bool {
	if _, ok := AllStatuses[to]; !ok {
		return false
	}
	if from == to {
		return true
	}
	if from == StatusCompleted {
		return false
	}
	return statusRank[to] >= statusRank[from]
}

// TeamInfo describes one side of a match as shown to users.
type TeamInfo struct {
	Name  string
	Short string
	Color string
}

// Match is one scheduled cricket fixture tracked by the engine.
type Match struct {
	ID         string
	ExternalID string
	SeriesID   string
	TeamA      TeamInfo
	TeamB      TeamInfo
	Venue      string
	StartAt    time.Time
	Status     Status
	StatusNote string
	// ManualXI marks an administrator-confirmed Playing XI; while set, the
	// resolver must never touch isPlayingXI flags for this match.
	ManualXI   bool
	LastSyncAt *time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.TeamA.Name == "" || m.TeamB.Name == "" {
		return fmt.Errorf("both team names are required")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("invalid match status: %s", m.Status)
	}
	if m.StartAt.IsZero() {
		return fmt.Errorf("match start time is required")
	}
	return nil
}

// IsLiveOrDelayed reports whether the match is inside the scorecard polling
// window.
func (m Match) IsLiveOrDelayed() bool {
	return m.Status == StatusLive || m.Status == StatusDelayed
}

// StartsWithin reports whether an upcoming match begins inside the lead
// window measured from now.
func (m Match) StartsWithin(now time.Time, lead time.Duration) bool {
	if m.Status != StatusUpcoming {
		return false
	}
	return !m.StartAt.After(now.Add(lead)) && m.StartAt.After(now.Add(-lead))
}
