package grammar

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tues": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thur": 4, "thurs": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// LookupMonth resolves an English month name or abbreviation.
func LookupMonth(word string) (int, bool) {
	m, ok := monthNames[fold(word)]
	return m, ok
}

// LookupWeekday resolves an English weekday name or abbreviation; Sunday is 0.
func LookupWeekday(word string) (int, bool) {
	d, ok := weekdayNames[fold(word)]
	return d, ok
}

// Specials are the reserved date/time words PostgreSQL resolves at input time.
var specials = []string{"epoch", "now", "today", "tomorrow", "yesterday"}
