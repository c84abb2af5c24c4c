package board

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type candidate struct {
	title    string
	location string
	url      string
	desc     string
	posted   string
}

const (
	minTitleLen = 5
	maxTitleLen = 200
	maxDescLen  = 300
)

var junkTitles = map[string]bool{
	"apply":      true,
	"apply now":  true,
	"view all":   true,
	"view job":   true,
	"learn more": true,
	"read more":  true,
}

// parseElement decomposes one candidate element into title/location/url.
// ok=false means the element is degenerate and should be skipped without
// failing the page.
func parseElement(sel *goquery.Selection, base *url.URL) (candidate, bool) {
	title := extractTitle(sel)
	if title == "" {
		return candidate{}, false
	}

	loc := extractLocation(sel)

	href := ""
	if a := sel.Find("a[href]").First(); a.Length() > 0 {
		href, _ = a.Attr("href")
	} else if h, ok := sel.Attr("href"); ok {
		// the element itself may be the anchor (fallback scan)
		href = h
	}
	abs := resolveURL(base, href)

	desc := cleanText(sel.Find("[class*='description'], .content, p").First().Text())
	if len(desc) > maxDescLen {
		desc = desc[:maxDescLen]
	}

	posted := extractPostedDate(cleanText(sel.Text()), time.Now())

	return candidate{
		title:    title,
		location: loc,
		url:      abs,
		desc:     desc,
		posted:   posted,
	}, true
}

// extractTitle takes the first heading-like or link-like descendant text and
// rejects degenerate titles.
func extractTitle(sel *goquery.Selection) string {
	title := cleanText(sel.Find("h1, h2, h3, h4, h5, h6").First().Text())
	if title == "" {
		title = cleanText(sel.Find("a").First().Text())
	}
	if title == "" {
		title = cleanText(sel.Text())
	}

	if len(title) < minTitleLen || len(title) > maxTitleLen {
		return ""
	}
	if junkTitles[strings.ToLower(title)] {
		return ""
	}
	return title
}

var (
	// "San Francisco, CA" / "London, United Kingdom"
	cityRegionRe = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*,\s*(?:[A-Z]{2}|[A-Z][a-z]+(?: [A-Z][a-z]+)*)\b`)
	remoteRe     = regexp.MustCompile(`(?i)\bremote\b`)
)

var knownCities = []string{
	"San Francisco", "New York", "London", "Seattle", "Austin", "Boston",
	"Chicago", "Toronto", "Berlin", "Dublin", "Amsterdam", "Paris",
	"Tokyo", "Singapore", "Sydney",
}

// extractLocation prefers an explicit location marker, then falls back to
// location-shaped substrings in the element's full text.
func extractLocation(sel *goquery.Selection) string {
	marker := sel.Find("[class*='location'], [data-testid='job-location'], [data-testid='location']").First()
	if loc := cleanText(marker.Text()); loc != "" {
		return loc
	}

	text := cleanText(sel.Text())
	if m := cityRegionRe.FindString(text); m != "" {
		return m
	}
	if remoteRe.MatchString(text) {
		return "Remote"
	}
	for _, city := range knownCities {
		if strings.Contains(text, city) {
			return city
		}
	}
	return "Unknown"
}

func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return base.String()
	}
	ref, err := url.Parse(href)
	if err != nil {
		return base.String()
	}
	return base.ResolveReference(ref).String()
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
