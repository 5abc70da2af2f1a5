package domain

import (
	"fmt"
	"math"
	"strings"

	"summoner-tracker/internal/constants"
)

const (
	QueueTypeSolo = "RANKED_SOLO_5x5"
	QueueTypeFlex = "RANKED_FLEX_SR"
	Unranked      = "Unranked"
)

var divisions = map[string]int{"I": 1, "II": 2, "III": 3, "IV": 4}

var divisionNumerals = [...]string{"", "I", "II", "III", "IV"}

// apex tiers have a single division upstream always reports as "I"
var apexTiers = map[string]bool{"MASTER": true, "GRANDMASTER": true, "CHALLENGER": true}

// ParseDivision converts the upstream Roman numeral division to 1..4.
func ParseDivision(numeral string) (int, error) {
	d, ok := divisions[strings.ToUpper(strings.TrimSpace(numeral))]
	if !ok {
		return 0, fmt.Errorf("unknown division %q", numeral)
	}
	return d, nil
}

// RankLabel renders "GOLD II"; apex tiers render without a division.
func RankLabel(tier string, division int) string {
	tier = strings.ToUpper(tier)
	if apexTiers[tier] || division < 1 || division >= len(divisionNumerals) {
		return tier
	}
	return tier + " " + divisionNumerals[division]
}

// WinRate is wins/(wins+losses) as a rounded percentage, 0 with no games.
func WinRate(wins, losses int) int {
	total := wins + losses
	if total <= 0 || wins <= 0 {
		return 0
	}
	wr := int(math.Round(float64(wins) / float64(total) * 100))
	return min(max(wr, 0), 100)
}

// KDA is (kills+assists)/deaths rounded to two decimals. Deaths are floored
// at constants.KDAEpsilon so a deathless game yields a large finite ratio.
func KDA(kills, deaths, assists int) float64 {
	d := math.Max(float64(deaths), constants.KDAEpsilon)
	return math.Round(float64(kills+assists)/d*100) / 100
}

func UnrankedQueue() QueueRank {
	return QueueRank{Rank: Unranked}
}
