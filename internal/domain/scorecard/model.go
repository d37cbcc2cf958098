// Package scorecard holds the ephemeral per-poll snapshot of one match's
// innings. Nothing here is persisted: a snapshot is produced fresh from a
// provider each cycle, points are derived from it, and it is discarded.
package scorecard

// BattingRow is one batter's line in an innings.
type BattingRow struct {
	PlayerName string
	PlayerKey  string
	Runs       int
	Balls      int
	Fours      int
	Sixes      int
	StrikeRate float64
	// Dismissal is the raw dismissal text ("c Smith b Jones", "not out", ...).
	Dismissal string
	Out       bool
}

// BowlingRow is one bowler's line in an innings. Overs uses cricket notation:
// 3.4 means 3 overs and 4 balls.
type BowlingRow struct {
	PlayerName string
	PlayerKey  string
	Overs      float64
	Maidens    int
	Runs       int
	Wickets    int
	Economy    float64
}

// FieldingKind classifies a fielding credit.
type FieldingKind string

const (
	FieldingCatch          FieldingKind = "CATCH"
	FieldingStumping       FieldingKind = "STUMPING"
	FieldingRunOutDirect   FieldingKind = "RUNOUT_DIRECT"
	FieldingRunOutThrower  FieldingKind = "RUNOUT_THROWER"
	FieldingRunOutReceiver FieldingKind = "RUNOUT_RECEIVER"
)

// FieldingEvent credits one fielder for one dismissal.
type FieldingEvent struct {
	Kind       FieldingKind
	PlayerName string
}

// Innings is the normalized snapshot of one innings.
type Innings struct {
	Label    string
	Batting  []BattingRow
	Bowling  []BowlingRow
	Fielding []FieldingEvent
}

// Snapshot is every innings a provider reported for one match this cycle.
type Snapshot struct {
	MatchKey string
	Innings  []Innings
}

// BallsFromOvers converts cricket overs notation to a ball count
// (3.4 -> 22). Fractional digits past the first are ignored.
func BallsFromOvers(overs float64) int {
	whole := int(overs)
	partial := int((overs-float64(whole))*10 + 0.5)
	if partial > 5 {
		partial = 5
	}
	return whole*6 + partial
}

// OversToFloat converts a ball count back to decimal overs for rate math:
// 22 balls -> 3.6667 (true fraction, not cricket notation).
func OversToFloat(balls int) float64 {
	return float64(balls/6) + float64(balls%6)/6.0
}
