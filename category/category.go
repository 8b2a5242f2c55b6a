// Package category resolves foreground activity samples to categories
// through an ordered chain: exclusions, custom rules, the builtin app
// table, and browser domain rules.
package category

import (
	"fmt"
	"net/url"
	"strings"
)

// Category names a group of related activity.
type Category string

// Builtin categories. Custom rules may introduce arbitrary new ones.
const (
	Coding        Category = "Coding"
	Browsing      Category = "Browsing"
	Communication Category = "Communication"
	Productivity  Category = "Productivity"
	Design        Category = "Design"
	Entertainment Category = "Entertainment"
	SocialMedia   Category = "Social Media"
	Education     Category = "Education"
	Utilities     Category = "Utilities"
	Finance       Category = "Finance"
	Reading       Category = "Reading"
	Uncategorized Category = "Uncategorized"
)

// Builtin lists every builtin category in display order.
var Builtin = []Category{
	Coding,
	Browsing,
	Communication,
	Productivity,
	Design,
	Entertainment,
	SocialMedia,
	Education,
	Utilities,
	Finance,
	Reading,
	Uncategorized,
}

// Rule fields select which part of a sample a custom rule matches.
const (
	FieldApp   = "app"
	FieldTitle = "title"
	FieldAny   = "any"
)

// Rule maps a case-insensitive substring pattern to a category.
type Rule struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
	Field    string `json:"field,omitempty"`
}

func (r *Rule) matches(app, title string) bool {
	switch r.Field {
	case FieldApp:
		return strings.Contains(app, r.Pattern)
	case FieldTitle:
		return strings.Contains(title, r.Pattern)
	default:
		return strings.Contains(app, r.Pattern) ||
			strings.Contains(title, r.Pattern)
	}
}

// Resolver categorizes samples. Resolution is pure and deterministic:
// identical inputs always produce identical results, and rule order is
// preserved.
type Resolver struct {
	exclusions []string
	rules      []Rule
}

// New builds a resolver from the configured exclusions and custom
// rules. Invalid rules are skipped and returned as wrapped
// ErrInvalidRule values so they can be reported exactly once.
func New(exclusions []string, rules []Rule) (*Resolver, []error) {
	r := &Resolver{}

	for _, e := range exclusions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			r.exclusions = append(r.exclusions, e)
		}
	}

	var errs []error

	for i, rule := range rules {
		rule.Pattern = strings.ToLower(strings.TrimSpace(rule.Pattern))
		rule.Category = strings.TrimSpace(rule.Category)

		switch {
		case rule.Pattern == "":
			errs = append(
				errs,
				fmt.Errorf("%w: rule %d: empty pattern", ErrInvalidRule, i+1),
			)
			continue
		case rule.Category == "":
			errs = append(
				errs,
				fmt.Errorf(
					"%w: rule %d (%s): empty category",
					ErrInvalidRule,
					i+1,
					rule.Pattern,
				),
			)
			continue
		}

		switch rule.Field {
		case "", FieldApp, FieldTitle, FieldAny:
		default:
			errs = append(
				errs,
				fmt.Errorf(
					"%w: rule %d (%s): unknown field: %s",
					ErrInvalidRule,
					i+1,
					rule.Pattern,
					rule.Field,
				),
			)

			continue
		}

		r.rules = append(r.rules, rule)
	}

	return r, errs
}

// Rules returns the validated custom rules in their configured order.
func (r *Resolver) Rules() []Rule {
	return r.rules
}

// Resolve maps a sample to its category. The chain runs in order and
// the first match wins: exclusions, custom rules, the builtin app
// table, then browser domain rules. Unmatched browser activity is
// Browsing; everything else falls through to Uncategorized. Excluded
// activity returns excluded=true and must not be recorded.
func (r *Resolver) Resolve(app, title, rawURL string) (cat Category, excluded bool) {
	normApp := NormalizeApp(app)
	lowTitle := strings.ToLower(title)

	for _, e := range r.exclusions {
		if strings.Contains(normApp, e) {
			return "", true
		}
	}

	for i := range r.rules {
		if r.rules[i].matches(normApp, lowTitle) {
			return Category(r.rules[i].Category), false
		}
	}

	if c, ok := builtinApps[normApp]; ok {
		return c, false
	}

	if IsBrowser(normApp) {
		if c, ok := resolveDomain(rawURL); ok {
			return c, false
		}

		return Browsing, false
	}

	return Uncategorized, false
}

// NormalizeApp lowercases an app name and strips the Windows
// executable suffix so table lookups are platform neutral.
func NormalizeApp(app string) string {
	app = strings.ToLower(strings.TrimSpace(app))
	return strings.TrimSuffix(app, ".exe")
}

// IsBrowser reports whether the normalized app name is a known web
// browser.
func IsBrowser(normApp string) bool {
	_, ok := browsers[normApp]
	return ok
}

// resolveDomain matches a URL's host against the builtin domain table.
// The most specific match wins: the full host is tried first, then each
// parent domain in turn.
func resolveDomain(rawURL string) (Category, bool) {
	host := hostOf(rawURL)
	if host == "" {
		return "", false
	}

	for {
		if c, ok := builtinDomains[host]; ok {
			return c, true
		}

		i := strings.Index(host, ".")
		if i == -1 {
			return "", false
		}

		host = host[i+1:]
	}
}

// hostOf extracts the lowercased host from a URL, tolerating bare
// hosts without a scheme.
func hostOf(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		u, err = url.Parse("https://" + rawURL)
		if err != nil || u.Host == "" {
			return ""
		}
	}

	host := strings.ToLower(u.Hostname())

	return strings.TrimPrefix(host, "www.")
}
