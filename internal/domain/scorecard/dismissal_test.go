package scorecard

import "testing"

func TestParseDismissal(t *testing.T) {
	cases := []struct {
		raw  string
		want Dismissal
	}{
		{"", Dismissal{Kind: DismissalNotOut}},
		{"not out", Dismissal{Kind: DismissalNotOut}},
		{"batting", Dismissal{Kind: DismissalNotOut}},
		{"b Starc", Dismissal{Kind: DismissalBowled, Bowler: "Starc"}},
		{"lbw b Ashwin", Dismissal{Kind: DismissalLBW, Bowler: "Ashwin"}},
		{"c Smith b Jones", Dismissal{Kind: DismissalCaught, Catcher: "Smith", Bowler: "Jones"}},
		{"c & b Jadeja", Dismissal{Kind: DismissalCaughtAndBowled, Catcher: "Jadeja", Bowler: "Jadeja"}},
		{"st Carey b Zampa", Dismissal{Kind: DismissalStumped, Catcher: "Carey", Bowler: "Zampa"}},
		{"hit wicket b Bumrah", Dismissal{Kind: DismissalHitWicket, Bowler: "Bumrah"}},
		{"retired hurt", Dismissal{Kind: DismissalOther}},
		{"c sub", Dismissal{Kind: DismissalCaught, Catcher: "sub"}},
	}
	for _, tc := range cases {
		got := ParseDismissal(tc.raw)
		if got.Kind != tc.want.Kind || got.Bowler != tc.want.Bowler || got.Catcher != tc.want.Catcher {
			t.Errorf("ParseDismissal(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

func TestParseDismissalRunOuts(t *testing.T) {
	direct := ParseDismissal("run out (Jadeja)")
	if direct.Kind != DismissalRunOut || len(direct.RunOutFielders) != 1 || direct.RunOutFielders[0] != "Jadeja" {
		t.Errorf("direct run out = %+v", direct)
	}

	indirect := ParseDismissal("run out (Maxwell/Carey)")
	if indirect.Kind != DismissalRunOut || len(indirect.RunOutFielders) != 2 {
		t.Fatalf("indirect run out = %+v", indirect)
	}
	if indirect.RunOutFielders[0] != "Maxwell" || indirect.RunOutFielders[1] != "Carey" {
		t.Errorf("fielder order = %v, want thrower then receiver", indirect.RunOutFielders)
	}
}

func TestBowlerCredited(t *testing.T) {
	if !ParseDismissal("b Starc").BowlerCredited() {
		t.Error("bowled must credit the bowler")
	}
	if !ParseDismissal("lbw b Ashwin").BowlerCredited() {
		t.Error("lbw must credit the bowler")
	}
	if ParseDismissal("c Smith b Jones").BowlerCredited() {
		t.Error("a catch earns the wicket but not the lbw/bowled bonus")
	}
	if ParseDismissal("run out (Jadeja)").BowlerCredited() {
		t.Error("run outs never credit a bowler")
	}
}

func TestFieldingCredits(t *testing.T) {
	catch := ParseDismissal("c Smith b Jones").FieldingCredits()
	if len(catch) != 1 || catch[0].Kind != FieldingCatch || catch[0].PlayerName != "Smith" {
		t.Errorf("catch credits = %+v", catch)
	}

	stumping := ParseDismissal("st Carey b Zampa").FieldingCredits()
	if len(stumping) != 1 || stumping[0].Kind != FieldingStumping {
		t.Errorf("stumping credits = %+v", stumping)
	}

	direct := ParseDismissal("run out (Jadeja)").FieldingCredits()
	if len(direct) != 1 || direct[0].Kind != FieldingRunOutDirect {
		t.Errorf("direct run-out credits = %+v", direct)
	}

	indirect := ParseDismissal("run out (Maxwell/Carey)").FieldingCredits()
	if len(indirect) != 2 ||
		indirect[0].Kind != FieldingRunOutThrower ||
		indirect[1].Kind != FieldingRunOutReceiver {
		t.Errorf("indirect run-out credits = %+v", indirect)
	}

	if credits := ParseDismissal("b Starc").FieldingCredits(); len(credits) != 0 {
		t.Errorf("bowled implies no fielding credits, got %+v", credits)
	}
}

func TestBallsFromOvers(t *testing.T) {
	cases := []struct {
		overs float64
		want  int
	}{
		{0, 0}, {1, 6}, {3.4, 22}, {10.5, 65}, {4.0, 24},
	}
	for _, tc := range cases {
		if got := BallsFromOvers(tc.overs); got != tc.want {
			t.Errorf("BallsFromOvers(%v) = %d, want %d", tc.overs, got, tc.want)
		}
	}
}

func TestOversToFloat(t *testing.T) {
	if got := OversToFloat(22); got < 3.66 || got > 3.67 {
		t.Errorf("OversToFloat(22) = %v, want ~3.667", got)
	}
	if got := OversToFloat(24); got != 4 {
		t.Errorf("OversToFloat(24) = %v, want 4", got)
	}
}
