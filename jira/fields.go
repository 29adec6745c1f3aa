package jira

import "strings"

// fieldRules records which optional fields an issue type accepts. Jira
// rejects requests carrying fields a type's create screen does not expose,
// so these are lookup tables keyed by issue-type name rather than anything
// discovered at runtime.
type fieldRules struct {
	allowsPriority bool
	allowsParent   bool
}

var defaultFieldRules = fieldRules{allowsPriority: true, allowsParent: true}

var fieldRulesByType = map[string]fieldRules{
	"epic":     {allowsPriority: true, allowsParent: false},
	"story":    {allowsPriority: true, allowsParent: true},
	"task":     {allowsPriority: true, allowsParent: true},
	"bug":      {allowsPriority: true, allowsParent: true},
	"sub-task": {allowsPriority: false, allowsParent: true},
	"subtask":  {allowsPriority: false, allowsParent: true},
}

// rulesFor returns the field rules for an issue type name.
func rulesFor(issueType string) fieldRules {
	if rules, ok := fieldRulesByType[strings.ToLower(issueType)]; ok {
		return rules
	}
	return defaultFieldRules
}
