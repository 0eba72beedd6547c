// pkg/browser/selector/resolver.go
package selector

import (
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
)

var (
	explicitPattern    = regexp.MustCompile(`^(\w+):(.+)$`)
	dataTestIDPattern  = regexp.MustCompile(`\[data-testid=['"]([^'"]+)['"]\]`)
	leadingTagPattern  = regexp.MustCompile(`^(\w+)\[`)
	tagEqualsPattern   = regexp.MustCompile(`^(\w+)=(.+)$`)
	headingTagPattern  = regexp.MustCompile(`^[hH]([1-6])$`)
	plainIdentPattern  = regexp.MustCompile(`^[\w\s-]+$`)
	cssStructureTokens = []string{":has-text(", " ", ">", "+", "~"}
)

// explicitMethods maps the lower-cased method of "method:value" selectors.
var explicitMethods = map[string]Strategy{
	"testid":      StrategyTestID,
	"text":        StrategyText,
	"role":        StrategyRole,
	"label":       StrategyLabel,
	"placeholder": StrategyPlaceholder,
	"alt":         StrategyAltText,
	"title":       StrategyTitle,
}

// tagRoles maps the tag of "tag=text" selectors to an ARIA role.
var tagRoles = map[string]string{
	"button":   "button",
	"link":     "link",
	"a":        "link",
	"input":    "textbox",
	"textarea": "textbox",
	"h1":       "heading",
	"h2":       "heading",
	"h3":       "heading",
	"h4":       "heading",
	"h5":       "heading",
	"h6":       "heading",
}

// rule is one resolution tier: match reports whether the rule applies and,
// if so, the query it produces.
type rule struct {
	tier  Tier
	match func(selector string) (Query, bool)
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{TierExplicit, matchExplicit},
	{TierAttributeTestID, matchAttributeTestID},
	{TierTagEquals, matchTagEquals},
	{TierRawCSS, matchRawCSS},
	{TierPlainIdentifier, matchPlainIdentifier},
}

// Parse turns a selector string into a Query. It never fails: strings no rule
// claims are treated as literal CSS.
func Parse(selector string) Query {
	for _, r := range rules {
		if q, ok := r.match(selector); ok {
			q.Tier = r.tier
			return q
		}
	}
	return Query{Tier: TierFallback, Strategy: StrategyCSS, Value: selector}
}

// Resolve parses selector and builds it against src. The returned locator is
// lazy; no DOM access happens here.
func Resolve(src LocatorSource, selector string) playwright.Locator {
	return Parse(selector).Build(src)
}

// Explain returns the tier that would claim selector. Useful in tests and in
// the resolve command.
func Explain(selector string) Tier {
	return Parse(selector).Tier
}

func matchExplicit(selector string) (Query, bool) {
	m := explicitPattern.FindStringSubmatch(selector)
	if m == nil {
		return Query{}, false
	}
	strategy, ok := explicitMethods[strings.ToLower(m[1])]
	if !ok {
		// Unknown method (e.g. "https:" or "button:has-text(...)"): let the
		// lower tiers decide.
		return Query{}, false
	}
	value := m[2]
	if strategy != StrategyRole {
		return Query{Strategy: strategy, Value: value}, true
	}

	// "role:button,Approve" or "role:button".
	role, name, _ := strings.Cut(value, ",")
	return Query{
		Strategy: StrategyRole,
		Value:    value,
		Role:     strings.TrimSpace(role),
		Name:     strings.TrimSpace(name),
	}, true
}

func matchAttributeTestID(selector string) (Query, bool) {
	m := dataTestIDPattern.FindStringSubmatch(selector)
	if m == nil {
		return Query{}, false
	}
	if tag := leadingTagPattern.FindStringSubmatch(selector); tag != nil {
		return Query{Strategy: StrategyTaggedTestID, Value: m[1], Tag: tag[1]}, true
	}
	return Query{Strategy: StrategyTestID, Value: m[1]}, true
}

func matchTagEquals(selector string) (Query, bool) {
	m := tagEqualsPattern.FindStringSubmatch(selector)
	if m == nil {
		return Query{}, false
	}
	tag, text := m[1], m[2]

	role, known := tagRoles[strings.ToLower(tag)]
	if !known {
		return Query{Strategy: StrategyTagText, Value: text, Tag: tag}, true
	}
	q := Query{Strategy: StrategyRole, Value: text, Role: role, Name: text}
	if h := headingTagPattern.FindStringSubmatch(tag); h != nil {
		q.Level = int(h[1][0] - '0')
	}
	return q, true
}

func matchRawCSS(selector string) (Query, bool) {
	// Human-readable labels such as "Connect Wallet" contain a space but are
	// not descendant combinators.
	if plainIdentPattern.MatchString(selector) {
		return Query{}, false
	}
	for _, token := range cssStructureTokens {
		if strings.Contains(selector, token) {
			return Query{Strategy: StrategyCSS, Value: selector}, true
		}
	}
	return Query{}, false
}

func matchPlainIdentifier(selector string) (Query, bool) {
	if !plainIdentPattern.MatchString(selector) {
		return Query{}, false
	}
	return Query{Strategy: StrategyTestIDOrText, Value: selector}, true
}
