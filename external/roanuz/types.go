package roanuz

// Roanuz-style responses wrap the payload under "data" and report failures
// through an "error" object instead of an HTTP status, so every decode has
// to check the error message before trusting the payload.

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"msg"`
}

type fixturesEnvelope struct {
	Data  fixturesData `json:"data"`
	Error *apiError    `json:"error"`
}

type fixturesData struct {
	Matches []fixtureItem `json:"matches"`
}

type fixtureItem struct {
	Key           string   `json:"key"`
	TournamentKey string   `json:"tournament_key"`
	Name          string   `json:"name"`
	ShortName     string   `json:"short_name"`
	Status        string   `json:"status"`
	PlayStatus    string   `json:"play_status"`
	Venue         venueRef `json:"venue"`
	StartAt       int64    `json:"start_at"`
	Teams        struct {
		A teamRef `json:"a"`
		B teamRef `json:"b"`
	} `json:"teams"`
}

type venueRef struct {
	Name string `json:"name"`
	City string `json:"city"`
}

type teamRef struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type matchDetailEnvelope struct {
	Data  matchDetailData `json:"data"`
	Error *apiError       `json:"error"`
}

type matchDetailData struct {
	Key        string `json:"key"`
	Status     string `json:"status"`
	PlayStatus string `json:"play_status"`
	Squad      struct {
		A squadSide `json:"a"`
		B squadSide `json:"b"`
	} `json:"squad"`
}

type squadSide struct {
	Team          teamRef       `json:"team"`
	PlayingXI     []string      `json:"playing_xi"`
	PlayerDetails []playerEntry `json:"player_details"`
}

type playerEntry struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}
