package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testRules() Rules {
	return Rules{
		TitleAny: []string{
			"product manager", "product management", "product owner",
			"product lead", "head of product", "director of product",
			"group product manager", "staff product manager",
			"product strategist", "product marketing manager",
		},
		TitleAbbrev: []string{"pm"},
		TeamAny:     []string{"product management"},
		URLExclude: []string{
			"/blog/", "/pricing/", "/case-studies/", "forbes.com",
			"medium.com", ".pdf", ".png",
		},
		URLRequire: []string{
			"/jobs/", "/careers/", "/positions/", "greenhouse.io",
			"lever.co", "ashbyhq.com",
		},
		Boilerplate:       []string{"read more", "learn more", "pricing"},
		ExcludeRoles:      []string{"engineer", "designer", "recruiter", "analyst", "marketing", "intern"},
		ExcludeExceptions: []string{"product marketing manager"},
	}
}

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(testRules())
	require.NoError(t, err)
	return c
}

func TestEmptyTitleNeverMatches(t *testing.T) {
	c := newTestClassifier(t)
	require.False(t, c.Match("", "https://jobs.example.com/jobs/1", "product manager role"))
	require.False(t, c.Match("   ", "", ""))
}

func TestAbbrevWordBoundary(t *testing.T) {
	c := newTestClassifier(t)

	cases := []struct {
		title string
		want  bool
	}{
		{"Senior PM, Platform", true},
		{"PM - Growth", true},
		{"npm Registry Maintainer", false},
		{"Senior npm Engineer", false},
		{"RPM Packaging Specialist", false},
	}
	for _, tc := range cases {
		got := c.Match(tc.title, "", "")
		require.Equal(t, tc.want, got, "title=%q", tc.title)
	}
}

func TestProductMarketingManagerCarveOut(t *testing.T) {
	c := newTestClassifier(t)
	require.True(t, c.Match("Product Marketing Manager", "https://example.com/careers/123", ""))
	// the generic "marketing" exclusion still fires on its own
	require.False(t, c.Match("Product Manager, Growth Marketing", "", "own our marketing funnel"))
}

func TestURLGates(t *testing.T) {
	c := newTestClassifier(t)

	// exclusion wins even for a PM title
	require.False(t, c.Match("Product Manager", "https://example.com/blog/what-is-a-product-manager", ""))
	require.False(t, c.Match("Product Manager", "https://example.com/careers/pm-guide.pdf", ""))

	// inclusion gate: a URL matching no job pattern is rejected
	require.False(t, c.Match("Product Manager", "https://example.com/about", ""))

	// absence of a URL bypasses the inclusion gate
	require.True(t, c.Match("Product Manager", "", ""))
}

func TestBoilerplateAndRoleExclusions(t *testing.T) {
	c := newTestClassifier(t)

	require.False(t, c.Match("Product Manager", "", "read more about what we do"))
	require.False(t, c.Match("Product Manager, Design Systems", "", "work with every designer"))
	require.False(t, c.Match("Product Management Intern", "", ""))
	require.True(t, c.Match("Principal Product Manager", "https://boards.greenhouse.io/acme/jobs/77", "own the roadmap"))
}

func TestMatchTeam(t *testing.T) {
	c := newTestClassifier(t)
	require.True(t, c.MatchTeam("Product Management"))
	require.True(t, c.MatchTeam("Core Product Management Group"))
	require.False(t, c.MatchTeam("Engineering"))
	require.False(t, c.MatchTeam(""))
}
