package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2000, month, day, 0, 0, 0, 0, time.UTC)
}

func TestZodiacSign(t *testing.T) {
	cases := []struct {
		birthday time.Time
		sign     string
	}{
		{date(time.January, 1), "Capricorn"},
		{date(time.January, 19), "Capricorn"},
		{date(time.January, 20), "Aquarius"},
		{date(time.February, 18), "Aquarius"},
		{date(time.February, 19), "Pisces"},
		{date(time.March, 21), "Aries"},
		{date(time.April, 20), "Taurus"},
		{date(time.June, 21), "Cancer"},
		{date(time.July, 22), "Cancer"},
		{date(time.July, 23), "Leo"},
		{date(time.November, 22), "Sagittarius"},
		{date(time.December, 21), "Sagittarius"},
		{date(time.December, 22), "Capricorn"},
		{date(time.December, 31), "Capricorn"},
	}

	for _, c := range cases {
		assert.Equal(t, c.sign, ZodiacSign(c.birthday), "birthday %s", c.birthday.Format("Jan 2"))
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateID()
		assert.Len(t, id, 16)
		for _, r := range id {
			assert.Contains(t, idChars, string(r))
		}
		assert.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}
