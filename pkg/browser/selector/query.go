// pkg/browser/selector/query.go
package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Strategy names the locator primitive a Query builds.
type Strategy string

const (
	StrategyTestID       Strategy = "test_id"
	StrategyText         Strategy = "text"
	StrategyRole         Strategy = "role"
	StrategyLabel        Strategy = "label"
	StrategyPlaceholder  Strategy = "placeholder"
	StrategyAltText      Strategy = "alt_text"
	StrategyTitle        Strategy = "title"
	StrategyTaggedTestID Strategy = "tagged_test_id"
	StrategyTagText      Strategy = "tag_text"
	StrategyCSS          Strategy = "css"
	StrategyTestIDOrText Strategy = "test_id_or_text"
)

// Tier names the resolution rule that produced a Query. Tiers are listed in
// the order they are tried.
type Tier string

const (
	TierExplicit        Tier = "explicit"
	TierAttributeTestID Tier = "attribute_test_id"
	TierTagEquals       Tier = "tag_equals"
	TierRawCSS          Tier = "raw_css"
	TierPlainIdentifier Tier = "plain_identifier"
	TierFallback        Tier = "fallback"
)

// Query is a structured locator-construction request. It holds no reference
// to a page and can be built against any LocatorSource.
type Query struct {
	Tier     Tier     `json:"tier"`
	Strategy Strategy `json:"strategy"`
	// Value is the test id, text, label, CSS selector, etc.
	Value string `json:"value"`
	// Role, Name and Level are set for StrategyRole.
	Role  string `json:"role,omitempty"`
	Name  string `json:"name,omitempty"`
	Level int    `json:"level,omitempty"`
	// Tag restricts StrategyTaggedTestID and StrategyTagText.
	Tag string `json:"tag,omitempty"`
}

// String renders the playwright call chain the query builds.
func (q Query) String() string {
	switch q.Strategy {
	case StrategyTestID:
		return fmt.Sprintf("GetByTestId(%q)", q.Value)
	case StrategyText:
		return fmt.Sprintf("GetByText(%q)", q.Value)
	case StrategyRole:
		var opts []string
		if q.Name != "" {
			opts = append(opts, "Name: "+strconv.Quote(q.Name))
		}
		if q.Level > 0 {
			opts = append(opts, "Level: "+strconv.Itoa(q.Level))
		}
		if len(opts) == 0 {
			return fmt.Sprintf("GetByRole(%q)", q.Role)
		}
		return fmt.Sprintf("GetByRole(%q, {%s})", q.Role, strings.Join(opts, ", "))
	case StrategyLabel:
		return fmt.Sprintf("GetByLabel(%q)", q.Value)
	case StrategyPlaceholder:
		return fmt.Sprintf("GetByPlaceholder(%q)", q.Value)
	case StrategyAltText:
		return fmt.Sprintf("GetByAltText(%q)", q.Value)
	case StrategyTitle:
		return fmt.Sprintf("GetByTitle(%q)", q.Value)
	case StrategyTaggedTestID:
		return fmt.Sprintf("GetByTestId(%q).And(Locator(%q))", q.Value, q.Tag)
	case StrategyTagText:
		return fmt.Sprintf("Locator(%q).Filter({HasText: %q})", q.Tag, q.Value)
	case StrategyTestIDOrText:
		return fmt.Sprintf("GetByTestId(%q).Or(GetByText(%q))", q.Value, q.Value)
	default:
		return fmt.Sprintf("Locator(%q)", q.Value)
	}
}
