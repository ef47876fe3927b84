package conversation

import (
	"time"

	"github.com/pageza/nutrichat/backend/internal/types"
)

// SeasonMonths describes the calendar months of each season.
var SeasonMonths = map[types.Season]string{
	types.SeasonWinter:  "Dec-Feb",
	types.SeasonSpring:  "Mar-May",
	types.SeasonMonsoon: "Jun-Sep",
	types.SeasonAutumn:  "Oct-Nov",
}

// SeasonForMonth maps a calendar month to its Indian season
func SeasonForMonth(m time.Month) types.Season {
	switch m {
	case time.December, time.January, time.February:
		return types.SeasonWinter
	case time.March, time.April, time.May:
		return types.SeasonSpring
	case time.June, time.July, time.August, time.September:
		return types.SeasonMonsoon
	default:
		return types.SeasonAutumn
	}
}
