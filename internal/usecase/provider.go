package usecase

import (
	"context"
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/scorecard"
)

// The adapter packages under external/ translate each provider's payload
// into the shapes below, so reconciliation and scoring never see provider
// schema drift. Adapters coerce malformed fields to zero values instead of
// failing, and report three distinct outcomes: data, empty result ("nothing
// yet, ask again next cycle"), or ErrQuotaExhausted / ErrProviderUnavailable.

// ProviderMatch is one fixture as listed by a provider.
type ProviderMatch struct {
	Key        string
	SeriesKey  string
	Name       string
	TeamA      string
	TeamAShort string
	TeamB      string
	TeamBShort string
	Venue      string
	StartAt    time.Time
	Status     match.Status
	StatusNote string
}

// LineupEntry is one player as reported in a provider lineup.
type LineupEntry struct {
	PlayerName       string
	ProviderPlayerID string
}

// LineupSide is one team's reported names. More than 11 players means the
// provider returned an unconfirmed full squad, which must never be marked
// as playing.
type LineupSide struct {
	TeamName string
	Players  []LineupEntry
}

// Lineup is a provider's view of both sides for one match.
type Lineup struct {
	Sides []LineupSide
}

// MatchStatus is a provider's lightweight match-info result. StartingElevens
// is populated only by providers whose match-info endpoint includes them.
type MatchStatus struct {
	Status          match.Status
	Note            string
	StartingElevens []LineupSide
}

// MatchListProvider lists fixtures inside a date range.
type MatchListProvider interface {
	Name() string
	ListMatches(ctx context.Context, from, to time.Time) ([]ProviderMatch, error)
}

// ScorecardProvider fetches full innings snapshots.
type ScorecardProvider interface {
	Name() string
	FetchScorecard(ctx context.Context, matchKey string) (scorecard.Snapshot, error)
}

// StatusProvider fetches the lightweight match-info view.
type StatusProvider interface {
	Name() string
	FetchMatchStatus(ctx context.Context, matchKey string) (MatchStatus, error)
}

// LineupProvider fetches reported lineups by team pair and date; some
// providers key lineups that way rather than by match id.
type LineupProvider interface {
	Name() string
	FetchLineup(ctx context.Context, teamA, teamB string, date time.Time) (Lineup, error)
}
