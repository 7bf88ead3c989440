package registry

// League identifies a basketball competition. Leagues are the primary
// dimension for schema and capability variation: every backend serves a
// subset of leagues with its own parameter and column conventions.
type League string

const (
	NBA           League = "nba"
	WNBA          League = "wnba"
	GLeague       League = "gleague"
	NCAA          League = "ncaa"
	EuroBasket    League = "eurobasket"
	International League = "intl"
)

// Leagues returns all known leagues in a stable order.
func Leagues() []League {
	return []League{NBA, WNBA, GLeague, NCAA, EuroBasket, International}
}

// Known reports whether the league is one of the supported identifiers.
func (l League) Known() bool {
	for _, league := range Leagues() {
		if l == league {
			return true
		}
	}
	return false
}

// PeriodMinutes returns the regulation period length in minutes. NCAA
// plays twenty-minute halves; every other period here is a quarter.
// Unknown leagues get 10, matching the approximation used when deriving
// elapsed game minutes from a period and clock reading.
func (l League) PeriodMinutes() int {
	switch l {
	case NBA, GLeague:
		return 12
	case NCAA:
		return 20
	default:
		return 10
	}
}
