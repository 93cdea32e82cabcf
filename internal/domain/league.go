package domain

// League is a discrete rank bucket derived from a player's cumulative score.
type League string

const (
	LeagueNone   League = "no_league"
	LeagueBronze League = "bronze"
	LeagueSilver League = "silver"
	LeagueGold   League = "gold"
	LeagueMaster League = "master"
)

// Classify maps a cumulative score to its league tier. Boundaries are inclusive
// on the lower bound. Negative scores fall through to LeagueNone.
func Classify(score int) League {
	switch {
	case score < 1000:
		return LeagueNone
	case score < 2000:
		return LeagueBronze
	case score < 3500:
		return LeagueSilver
	case score < 6000:
		return LeagueGold
	default:
		return LeagueMaster
	}
}
