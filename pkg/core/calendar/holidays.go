package calendar

import "time"

// fixedHolidays are the French public holidays that fall on the same date
// every year, keyed by month and day.
var fixedHolidays = map[[2]int]string{
	{1, 1}:   "Jour de l'an",
	{5, 1}:   "Fête du Travail",
	{5, 8}:   "Victoire 1945",
	{7, 14}:  "Fête Nationale",
	{8, 15}:  "Assomption",
	{11, 1}:  "Toussaint",
	{11, 11}: "Armistice 1918",
	{12, 25}: "Noël",
}

// easterSunday computes Easter Sunday for a year in the Gregorian calendar
// using the anonymous Gauss/Butcher algorithm. Integer arithmetic only.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// IsPublicHoliday reports whether the given date is a French public holiday.
// Covers the eight fixed-date holidays plus the three movable feasts derived
// from Easter Sunday: Easter Monday, Ascension and Whit Monday.
func IsPublicHoliday(date time.Time) bool {
	if _, ok := fixedHolidays[[2]int{int(date.Month()), date.Day()}]; ok {
		return true
	}

	easter := easterSunday(date.Year())
	month, day := int(date.Month()), date.Day()
	for _, offset := range []int{1, 39, 50} { // Easter Monday, Ascension, Whit Monday
		movable := easter.AddDate(0, 0, offset)
		if int(movable.Month()) == month && movable.Day() == day {
			return true
		}
	}

	return false
}
