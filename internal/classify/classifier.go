package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules holds the pattern lists that drive classification. They live in the
// config file so ATS quirks can be tuned without touching extractor code.
type Rules struct {
	// TitleAny are phrases matched as plain substrings of the title.
	TitleAny []string `yaml:"title_any"`
	// TitleAbbrev are short forms ("pm") matched on word boundaries only,
	// so "npm" or "rpm" never count.
	TitleAbbrev []string `yaml:"title_abbrev"`
	// TeamAny admits a posting when its department name matches, even if
	// the title alone would not.
	TeamAny []string `yaml:"team_any"`
	// URLExclude rejects marketing/navigational links outright.
	URLExclude []string `yaml:"url_exclude"`
	// URLRequire gates non-empty URLs: at least one must match.
	URLRequire []string `yaml:"url_require"`
	// Boilerplate rejects non-posting text that slips past the URL gates.
	Boilerplate []string `yaml:"boilerplate"`
	// ExcludeRoles rejects clearly non-PM roles.
	ExcludeRoles []string `yaml:"exclude_roles"`
	// ExcludeExceptions carve phrases out of ExcludeRoles matching, e.g.
	// "product marketing manager" survives the "marketing" exclusion.
	ExcludeExceptions []string `yaml:"exclude_exceptions"`
}

type Classifier struct {
	rules  Rules
	abbrev []*regexp.Regexp
}

func New(r Rules) (*Classifier, error) {
	c := &Classifier{rules: lowered(r)}
	for _, a := range c.rules.TitleAbbrev {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(a) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("classify: compile abbrev %q: %w", a, err)
		}
		c.abbrev = append(c.abbrev, re)
	}
	return c, nil
}

// Match reports whether the candidate denotes a Product Management posting.
// The gates run in order and short-circuit; precedence matters (URL exclusion
// beats everything, the carve-out beats role exclusion).
func (c *Classifier) Match(title, url, description string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return false
	}

	lurl := strings.ToLower(url)
	for _, p := range c.rules.URLExclude {
		if p != "" && strings.Contains(lurl, p) {
			return false
		}
	}
	if lurl != "" && !containsAny(lurl, c.rules.URLRequire) {
		return false
	}

	if !c.titleHit(title) {
		return false
	}

	text := title + " " + strings.ToLower(description)
	if containsAny(text, c.rules.Boilerplate) {
		return false
	}

	// Scrub carve-out phrases before checking role exclusions, so that e.g.
	// "marketing" inside "product marketing manager" cannot fire.
	scrubbed := text
	for _, ex := range c.rules.ExcludeExceptions {
		if ex != "" {
			scrubbed = strings.ReplaceAll(scrubbed, ex, " ")
		}
	}
	return !containsAny(scrubbed, c.rules.ExcludeRoles)
}

// MatchTeam reports whether a department/team name itself denotes Product
// Management. Used by the structured-API path as an override signal.
func (c *Classifier) MatchTeam(team string) bool {
	return containsAny(strings.ToLower(team), c.rules.TeamAny)
}

func (c *Classifier) titleHit(title string) bool {
	if containsAny(title, c.rules.TitleAny) {
		return true
	}
	for _, re := range c.abbrev {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowered(r Rules) Rules {
	low := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			s = strings.ToLower(strings.TrimSpace(s))
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return Rules{
		TitleAny:          low(r.TitleAny),
		TitleAbbrev:       low(r.TitleAbbrev),
		TeamAny:           low(r.TeamAny),
		URLExclude:        low(r.URLExclude),
		URLRequire:        low(r.URLRequire),
		Boilerplate:       low(r.Boilerplate),
		ExcludeRoles:      low(r.ExcludeRoles),
		ExcludeExceptions: low(r.ExcludeExceptions),
	}
}
