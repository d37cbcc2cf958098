package entitysport

// Entitysport-style responses carry an "ok"/"error" status string and nest
// the payload under "response". Lineups are keyed by team pair and date, and
// the squads arrays hold the full touring squad until the XI is announced.

type lineupEnvelope struct {
	Status   string         `json:"status"`
	Message  string         `json:"message"`
	Response lineupResponse `json:"response"`
}

type lineupResponse struct {
	Items []lineupItem `json:"items"`
}

type lineupItem struct {
	MatchID int      `json:"match_id"`
	Date    string   `json:"date_start"`
	TeamA   teamSide `json:"teama"`
	TeamB   teamSide `json:"teamb"`
}

type teamSide struct {
	Name   string       `json:"name"`
	Squads []squadEntry `json:"squads"`
}

type squadEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Playing  string `json:"playing11"`
}
