package scorecard

import (
	"regexp"
	"strings"
)

// DismissalKind is how a batter got out, parsed from free-text dismissal
// lines as printed on scorecards.
type DismissalKind string

const (
	DismissalNotOut          DismissalKind = "NOT_OUT"
	DismissalBowled          DismissalKind = "BOWLED"
	DismissalLBW             DismissalKind = "LBW"
	DismissalCaught          DismissalKind = "CAUGHT"
	DismissalCaughtAndBowled DismissalKind = "CAUGHT_AND_BOWLED"
	DismissalStumped         DismissalKind = "STUMPED"
	DismissalRunOut          DismissalKind = "RUN_OUT"
	DismissalHitWicket       DismissalKind = "HIT_WICKET"
	DismissalOther           DismissalKind = "OTHER"
)

// Dismissal is the structured form of one dismissal line. Fielder names come
// straight from the text and still need reconciling against the roster.
type Dismissal struct {
	Kind   DismissalKind
	Bowler string
	// Catcher is the catching or stumping fielder, when one is named.
	Catcher string
	// RunOutFielders lists the fielders named on a run out: one name means a
	// direct hit, two mean thrower then receiver.
	RunOutFielders []string
}

// BowlerCredited reports whether this dismissal earns the bowler the
// LBW/bowled bonus.
func (d Dismissal) BowlerCredited() bool {
	return d.Kind == DismissalBowled || d.Kind == DismissalLBW
}

var runOutFieldersRegex = regexp.MustCompile(`\(([^)]+)\)`)

// ParseDismissal turns a raw dismissal line into its structured form.
// Recognized shapes, matching the common scorecard print formats:
//
//	"not out"            "b Jones"             "lbw b Jones"
//	"c Smith b Jones"    "c & b Jones"         "st Smith b Jones"
//	"run out (Smith)"    "run out (Smith/Jones)"
//	"hit wicket b Jones"
//
// Anything else that marks a wicket maps to DismissalOther.
func ParseDismissal(raw string) Dismissal {
	text := strings.TrimSpace(raw)
	lower := strings.ToLower(text)

	switch {
	case text == "", lower == "not out", lower == "batting", strings.HasPrefix(lower, "did not bat"):
		return Dismissal{Kind: DismissalNotOut}

	case strings.HasPrefix(lower, "run out"):
		out := Dismissal{Kind: DismissalRunOut}
		if m := runOutFieldersRegex.FindStringSubmatch(text); len(m) == 2 {
			for _, part := range strings.Split(m[1], "/") {
				name := strings.TrimSpace(part)
				if name != "" {
					out.RunOutFielders = append(out.RunOutFielders, name)
				}
			}
		}
		return out

	case strings.HasPrefix(lower, "st "):
		catcher, bowler := splitCatcherBowler(text[3:])
		return Dismissal{Kind: DismissalStumped, Catcher: catcher, Bowler: bowler}

	case strings.HasPrefix(lower, "c & b "), strings.HasPrefix(lower, "c and b "):
		bowler := strings.TrimSpace(text[strings.LastIndex(lower, " b ")+3:])
		return Dismissal{Kind: DismissalCaughtAndBowled, Catcher: bowler, Bowler: bowler}

	case strings.HasPrefix(lower, "c "):
		catcher, bowler := splitCatcherBowler(text[2:])
		return Dismissal{Kind: DismissalCaught, Catcher: catcher, Bowler: bowler}

	case strings.HasPrefix(lower, "lbw"):
		return Dismissal{Kind: DismissalLBW, Bowler: trailingBowler(text)}

	case strings.HasPrefix(lower, "hit wicket"):
		return Dismissal{Kind: DismissalHitWicket, Bowler: trailingBowler(text)}

	case strings.HasPrefix(lower, "b "):
		return Dismissal{Kind: DismissalBowled, Bowler: strings.TrimSpace(text[2:])}

	default:
		return Dismissal{Kind: DismissalOther}
	}
}

// splitCatcherBowler splits "Smith b Jones" into its two names. The bowler
// part is optional on some feeds ("c sub").
func splitCatcherBowler(rest string) (string, string) {
	lower := strings.ToLower(rest)
	idx := strings.LastIndex(lower, " b ")
	if idx < 0 {
		return strings.TrimSpace(rest), ""
	}
	return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+3:])
}

func trailingBowler(text string) string {
	lower := strings.ToLower(text)
	idx := strings.LastIndex(lower, " b ")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx+3:])
}

// FieldingCredits expands a dismissal into the fielding events it implies.
// The wicketkeeper earns a catch credit for a caught-behind the same way any
// fielder does; stumpings are their own kind.
func (d Dismissal) FieldingCredits() []FieldingEvent {
	switch d.Kind {
	case DismissalCaught, DismissalCaughtAndBowled:
		if d.Catcher == "" {
			return nil
		}
		return []FieldingEvent{{Kind: FieldingCatch, PlayerName: d.Catcher}}
	case DismissalStumped:
		if d.Catcher == "" {
			return nil
		}
		return []FieldingEvent{{Kind: FieldingStumping, PlayerName: d.Catcher}}
	case DismissalRunOut:
		switch len(d.RunOutFielders) {
		case 1:
			return []FieldingEvent{{Kind: FieldingRunOutDirect, PlayerName: d.RunOutFielders[0]}}
		case 2:
			return []FieldingEvent{
				{Kind: FieldingRunOutThrower, PlayerName: d.RunOutFielders[0]},
				{Kind: FieldingRunOutReceiver, PlayerName: d.RunOutFielders[1]},
			}
		}
	}
	return nil
}
