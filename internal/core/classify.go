package core

import "strings"

// Classify returns every rule with at least one keyword contained in the
// description, matched case-insensitively as substrings. A description can
// match many rules; no match yields an empty slice, never an error.
// Rule order from the configuration is preserved.
func Classify(description string, rules []ClassificationRule) []ClassificationRule {
	if description == "" || len(rules) == 0 {
		return nil
	}
	desc := strings.ToUpper(description)

	var matched []ClassificationRule
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(desc, strings.ToUpper(kw)) {
				matched = append(matched, rule)
				break
			}
		}
	}
	return matched
}

// IncludedInLimit reports whether a description counts toward the monthly
// spending ceiling: true iff at least one matching rule carries the
// IncludedInLimit flag. Unclassified descriptions never count.
func IncludedInLimit(description string, rules []ClassificationRule) bool {
	for _, rule := range Classify(description, rules) {
		if rule.IncludedInLimit {
			return true
		}
	}
	return false
}
