package userteam

import "testing"

func validTeam() UserTeam {
	ids := make([]string, 11)
	for i := range ids {
		ids[i] = "p" + string(rune('a'+i))
	}
	return UserTeam{
		ID:            "t1",
		UserID:        "u1",
		MatchID:       "m1",
		PlayerIDs:     ids,
		CaptainID:     ids[0],
		ViceCaptainID: ids[1],
	}
}

func TestValidate(t *testing.T) {
	if err := validTeam().Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	short := validTeam()
	short.PlayerIDs = short.PlayerIDs[:10]
	if err := short.Validate(); err == nil {
		t.Error("10 players must fail validation")
	}

	dup := validTeam()
	dup.PlayerIDs[1] = dup.PlayerIDs[0]
	if err := dup.Validate(); err == nil {
		t.Error("duplicate player must fail validation")
	}

	outsider := validTeam()
	outsider.CaptainID = "stranger"
	if err := outsider.Validate(); err == nil {
		t.Error("captain outside the eleven must fail validation")
	}

	same := validTeam()
	same.ViceCaptainID = same.CaptainID
	if err := same.Validate(); err == nil {
		t.Error("captain and vice-captain must differ")
	}
}

func TestMultiplier(t *testing.T) {
	team := validTeam()
	if got := team.Multiplier(team.CaptainID); got != CaptainMultiplier {
		t.Errorf("captain multiplier = %v, want %v", got, CaptainMultiplier)
	}
	if got := team.Multiplier(team.ViceCaptainID); got != ViceCaptainMultiplier {
		t.Errorf("vice multiplier = %v, want %v", got, ViceCaptainMultiplier)
	}
	if got := team.Multiplier(team.PlayerIDs[5]); got != DefaultMultiplier {
		t.Errorf("default multiplier = %v, want %v", got, DefaultMultiplier)
	}
}
