package domain

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  League
	}{
		{-50, LeagueNone},
		{0, LeagueNone},
		{999, LeagueNone},
		{1000, LeagueBronze},
		{1999, LeagueBronze},
		{2000, LeagueSilver},
		{3499, LeagueSilver},
		{3500, LeagueGold},
		{5999, LeagueGold},
		{6000, LeagueMaster},
		{100000, LeagueMaster},
	}
	for _, c := range cases {
		if got := Classify(c.score); got != c.want {
			t.Errorf("Classify(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	ranks := map[League]int{
		LeagueNone:   0,
		LeagueBronze: 1,
		LeagueSilver: 2,
		LeagueGold:   3,
		LeagueMaster: 4,
	}
	prev := ranks[Classify(0)]
	for score := 1; score <= 7000; score++ {
		cur := ranks[Classify(score)]
		if cur < prev {
			t.Fatalf("tier rank dropped at score %d", score)
		}
		prev = cur
	}
}
