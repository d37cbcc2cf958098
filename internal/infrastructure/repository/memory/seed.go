package memory

import (
	"time"

	"github.com/pitchside/fantasy-cricket/internal/domain/match"
	"github.com/pitchside/fantasy-cricket/internal/domain/player"
	"github.com/pitchside/fantasy-cricket/internal/domain/userteam"
)

const (
	MatchIDIndAus = "ind-aus-odi-1"
	MatchIDEngSa  = "eng-sa-t20-2"
)

func SeedMatches(now time.Time) []match.Match {
	return []match.Match{
		{
			ID:         MatchIDIndAus,
			ExternalID: "ext-ind-aus-odi-1",
			SeriesID:   "ind-aus-odi-2026",
			TeamA:      match.TeamInfo{Name: "India", Short: "IND", Color: "#1d4ed8"},
			TeamB:      match.TeamInfo{Name: "Australia", Short: "AUS", Color: "#facc15"},
			Venue:      "Eden Gardens, Kolkata",
			StartAt:    now.Add(15 * time.Minute),
			Status:     match.StatusUpcoming,
		},
		{
			ID:         MatchIDEngSa,
			ExternalID: "ext-eng-sa-t20-2",
			SeriesID:   "eng-sa-t20-2026",
			TeamA:      match.TeamInfo{Name: "England", Short: "ENG", Color: "#dc2626"},
			TeamB:      match.TeamInfo{Name: "South Africa", Short: "SA", Color: "#16a34a"},
			Venue:      "Lord's, London",
			StartAt:    now.Add(-90 * time.Minute),
			Status:     match.StatusLive,
		},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "ind-01", MatchID: MatchIDIndAus, Name: "Rohit Sharma", Team: "India", TeamShort: "IND", Role: player.RoleBatter, Credits: 10},
		{ID: "ind-02", MatchID: MatchIDIndAus, Name: "Virat Kohli", Team: "India", TeamShort: "IND", Role: player.RoleBatter, Credits: 10.5},
		{ID: "ind-03", MatchID: MatchIDIndAus, Name: "KL Rahul", Team: "India", TeamShort: "IND", Role: player.RoleWicketkeeper, Credits: 9.5},
		{ID: "ind-04", MatchID: MatchIDIndAus, Name: "Ravindra Jadeja", Team: "India", TeamShort: "IND", Role: player.RoleAllRounder, Credits: 9},
		{ID: "ind-05", MatchID: MatchIDIndAus, Name: "Jasprit Bumrah", Team: "India", TeamShort: "IND", Role: player.RoleBowler, Credits: 9.5},
		{ID: "ind-06", MatchID: MatchIDIndAus, Name: "Mohammed Siraj", Team: "India", TeamShort: "IND", Role: player.RoleBowler, Credits: 8.5},
		{ID: "aus-01", MatchID: MatchIDIndAus, Name: "Travis Head", Team: "Australia", TeamShort: "AUS", Role: player.RoleBatter, Credits: 9.5},
		{ID: "aus-02", MatchID: MatchIDIndAus, Name: "Steve Smith", Team: "Australia", TeamShort: "AUS", Role: player.RoleBatter, Credits: 9.5},
		{ID: "aus-03", MatchID: MatchIDIndAus, Name: "Alex Carey", Team: "Australia", TeamShort: "AUS", Role: player.RoleWicketkeeper, Credits: 8.5},
		{ID: "aus-04", MatchID: MatchIDIndAus, Name: "Glenn Maxwell", Team: "Australia", TeamShort: "AUS", Role: player.RoleAllRounder, Credits: 9},
		{ID: "aus-05", MatchID: MatchIDIndAus, Name: "Mitchell Starc", Team: "Australia", TeamShort: "AUS", Role: player.RoleBowler, Credits: 9},
		{ID: "aus-06", MatchID: MatchIDIndAus, Name: "Pat Cummins", Team: "Australia", TeamShort: "AUS", Role: player.RoleBowler, Credits: 9.5},
	}
}

func SeedUserTeams() []userteam.UserTeam {
	return []userteam.UserTeam{
		{
			ID:      "team-01",
			UserID:  "user-01",
			MatchID: MatchIDIndAus,
			PlayerIDs: []string{
				"ind-01", "ind-02", "ind-03", "ind-04", "ind-05", "ind-06",
				"aus-01", "aus-02", "aus-03", "aus-04", "aus-05",
			},
			CaptainID:     "ind-02",
			ViceCaptainID: "aus-01",
		},
	}
}
