package cricketdata

// Envelope shapes for the cricketdata.org-style API. Every response carries a
// top-level status discriminator plus a free-text reason on failure; the
// reason is what gets pattern-matched for quota exhaustion.

type envelope struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type matchListEnvelope struct {
	envelope
	Data []matchListItem `json:"data"`
}

type matchListItem struct {
	ID       string   `json:"id"`
	SeriesID string   `json:"series_id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Venue    string   `json:"venue"`
	DateTime string   `json:"dateTimeGMT"`
	Teams    []string `json:"teams"`
	TeamInfo []struct {
		Name      string `json:"name"`
		ShortName string `json:"shortname"`
	} `json:"teamInfo"`
}

type matchInfoEnvelope struct {
	envelope
	Data matchInfoData `json:"data"`
}

type matchInfoData struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	MatchStart bool   `json:"matchStarted"`
	MatchEnded bool   `json:"matchEnded"`
}

type scorecardEnvelope struct {
	envelope
	Data scorecardData `json:"data"`
}

type scorecardData struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Scorecard []inningsBlock `json:"scorecard"`
}

type inningsBlock struct {
	Inning   string        `json:"inning"`
	Batting  []battingItem `json:"batting"`
	Bowling  []bowlingItem `json:"bowling"`
	Catching []catchItem   `json:"catching"`
}

type playerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type battingItem struct {
	Batsman       playerRef `json:"batsman"`
	Dismissal     string    `json:"dismissal"`
	DismissalText string    `json:"dismissal-text"`
	Runs          any       `json:"r"`
	Balls         any       `json:"b"`
	Fours         any       `json:"4s"`
	Sixes         any       `json:"6s"`
	StrikeRate    any       `json:"sr"`
}

type bowlingItem struct {
	Bowler  playerRef `json:"bowler"`
	Overs   any       `json:"o"`
	Maidens any       `json:"m"`
	Runs    any       `json:"r"`
	Wickets any       `json:"w"`
	Economy any       `json:"eco"`
}

type catchItem struct {
	Catcher playerRef `json:"catcher"`
	Effort  string    `json:"effort"`
}
