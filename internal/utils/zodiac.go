package utils

import "time"

type zodiacRange struct {
	month time.Month
	day   int
	sign  string
}

// Boundaries mark the first day of each sign.
var zodiacRanges = []zodiacRange{
	{time.January, 20, "Aquarius"},
	{time.February, 19, "Pisces"},
	{time.March, 21, "Aries"},
	{time.April, 20, "Taurus"},
	{time.May, 21, "Gemini"},
	{time.June, 21, "Cancer"},
	{time.July, 23, "Leo"},
	{time.August, 23, "Virgo"},
	{time.September, 23, "Libra"},
	{time.October, 23, "Scorpio"},
	{time.November, 22, "Sagittarius"},
	{time.December, 22, "Capricorn"},
}

// ZodiacSign returns the western zodiac sign for a birthday.
func ZodiacSign(birthday time.Time) string {
	sign := "Capricorn" // before Jan 20
	for _, r := range zodiacRanges {
		if birthday.Month() > r.month ||
			(birthday.Month() == r.month && birthday.Day() >= r.day) {
			sign = r.sign
		}
	}
	return sign
}
