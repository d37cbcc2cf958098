// Package scoring is the fantasy point rule table. Everything in here is a
// pure computation over one player's aggregated match statistics; callers
// rebuild the input from the full scorecard every cycle so a late provider
// correction self-heals instead of compounding.
package scoring

// BattingStats is one player's batting line aggregated across all innings of
// a match.
type BattingStats struct {
	Runs  int
	Balls int
	Fours int
	Sixes int
	// Out is true only for a completed dismissal; a not-out batter never
	// takes the duck penalty.
	Out bool
}

// BowlingStats is one player's bowling line aggregated across all innings.
type BowlingStats struct {
	Balls   int
	Maidens int
	Runs    int
	// Wickets excludes run outs; providers already report it that way.
	Wickets int
	// LBWBowled counts dismissals credited to this bowler as lbw or bowled,
	// parsed from dismissal text.
	LBWBowled int
}

// FieldingStats is one player's fielding credits across the match.
type FieldingStats struct {
	Catches        int
	Stumpings      int
	RunOutDirect   int
	RunOutThrower  int
	RunOutReceiver int
}

// PlayerStats is the complete scoring input for one player.
type PlayerStats struct {
	Batting  BattingStats
	Bowling  BowlingStats
	Fielding FieldingStats
}

const (
	runPoint          = 1
	fourBonus         = 1
	sixBonus          = 2
	thirtyBonus       = 4
	fiftyBonus        = 8
	hundredBonus      = 16
	duckPenalty       = -2
	wicketPoints      = 30
	threeWicketBonus  = 4
	fourWicketBonus   = 8
	fiveWicketBonus   = 16
	maidenPoints      = 12
	lbwBowledBonus    = 8
	catchPoints       = 8
	threeCatchBonus   = 4
	stumpingPoints    = 12
	runOutDirectPoint = 12
	runOutSharedPoint = 6

	strikeRateMinBalls = 10
	economyMinBalls    = 12
)

// Points applies the full rule table. Captain and vice-captain multipliers
// are applied at team aggregation, never here.
func Points(stats PlayerStats) int {
	return BattingPoints(stats.Batting) + BowlingPoints(stats.Bowling) + FieldingPoints(stats.Fielding)
}

func BattingPoints(b BattingStats) int {
	points := b.Runs*runPoint + b.Fours*fourBonus + b.Sixes*sixBonus

	// Milestone bonuses stack: a century earns all three.
	if b.Runs >= 30 {
		points += thirtyBonus
	}
	if b.Runs >= 50 {
		points += fiftyBonus
	}
	if b.Runs >= 100 {
		points += hundredBonus
	}

	if b.Out && b.Runs == 0 && b.Balls >= 1 {
		points += duckPenalty
	}

	if b.Balls >= strikeRateMinBalls {
		points += strikeRateModifier(float64(b.Runs) * 100 / float64(b.Balls))
	}

	return points
}

// strikeRateModifier is a single cascade; exactly one tier applies. 170 and
// 150 belong to the +4 tier, 130 to the +2 tier; 60 and 70 belong to the -2
// tier, 50 to the -4 tier.
func strikeRateModifier(sr float64) int {
	switch {
	case sr > 170:
		return 6
	case sr >= 150:
		return 4
	case sr >= 130:
		return 2
	case sr < 50:
		return -6
	case sr < 60:
		return -4
	case sr <= 70:
		return -2
	default:
		return 0
	}
}

func BowlingPoints(b BowlingStats) int {
	points := b.Wickets * wicketPoints

	// Wicket-haul bonuses check thresholds independently and stack:
	// a five-for earns +4+8+16 = +28 on top of the per-wicket points.
	if b.Wickets >= 3 {
		points += threeWicketBonus
	}
	if b.Wickets >= 4 {
		points += fourWicketBonus
	}
	if b.Wickets >= 5 {
		points += fiveWicketBonus
	}

	points += b.Maidens * maidenPoints
	points += b.LBWBowled * lbwBowledBonus

	if b.Balls >= economyMinBalls {
		overs := float64(b.Balls) / 6.0
		points += economyModifier(float64(b.Runs) / overs)
	}

	return points
}

// economyModifier mirrors the strike-rate cascade: 5, 6 and 7 belong to the
// lower (better) tier boundary above them; 12 belongs to the -4 tier.
func economyModifier(economy float64) int {
	switch {
	case economy < 5:
		return 6
	case economy < 6:
		return 4
	case economy < 7:
		return 2
	case economy > 12:
		return -6
	case economy >= 11:
		return -4
	case economy >= 10:
		return -2
	default:
		return 0
	}
}

func FieldingPoints(f FieldingStats) int {
	points := f.Catches * catchPoints
	if f.Catches >= 3 {
		points += threeCatchBonus
	}
	points += f.Stumpings * stumpingPoints
	points += f.RunOutDirect * runOutDirectPoint
	points += (f.RunOutThrower + f.RunOutReceiver) * runOutSharedPoint
	return points
}
