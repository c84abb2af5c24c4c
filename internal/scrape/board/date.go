package board

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"pmscout-engine/internal/domain"
)

var (
	relativeRe  = regexp.MustCompile(`(?i)\b(\d+)\s+(day|week|month)s?\s+ago\b`)
	todayRe     = regexp.MustCompile(`(?i)\btoday\b`)
	yesterdayRe = regexp.MustCompile(`(?i)\byesterday\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	monthDateRe = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// extractPostedDate normalizes relative-date phrases and common absolute
// formats found in element text to YYYY-MM-DD. Anything unrecognized is
// DateUnknown; a month is approximated as 30 days.
func extractPostedDate(text string, now time.Time) string {
	if m := relativeRe.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			days := n
			switch strings.ToLower(m[2]) {
			case "week":
				days = n * 7
			case "month":
				days = n * 30
			}
			return now.AddDate(0, 0, -days).Format("2006-01-02")
		}
	}

	if yesterdayRe.MatchString(text) {
		return now.AddDate(0, 0, -1).Format("2006-01-02")
	}
	if todayRe.MatchString(text) {
		return now.Format("2006-01-02")
	}

	if m := slashDateRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		}
	}

	if m := monthDateRe.FindStringSubmatch(text); m != nil {
		mon := months[strings.ToLower(m[1])[:3]]
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if day >= 1 && day <= 31 {
			return time.Date(year, mon, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		}
	}

	return domain.DateUnknown
}
