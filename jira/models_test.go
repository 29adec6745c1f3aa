package jira

import (
	"encoding/json"
	"testing"
)

func TestValidateIssueKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"PROJ-123", true},
		{"A-1", true},
		{"AB2C-99", true},
		{"proj-123", false},
		{"PROJ123", false},
		{"PROJ-", false},
		{"-123", false},
		{"", false},
		{"PROJ-12a", false},
	}

	for _, tt := range tests {
		if got := ValidateIssueKey(tt.key); got != tt.want {
			t.Errorf("ValidateIssueKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"jira cloud format", "2026-08-30T10:30:00.000+0000", true},
		{"without millis", "2026-08-30T10:30:00+0000", true},
		{"utc zulu", "2026-08-30T10:30:00.000Z", true},
		{"rfc3339", "2026-08-30T10:30:00+02:00", true},
		{"garbage", "yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input)
			if tt.ok && err != nil {
				t.Fatalf("ParseTime(%q): %v", tt.input, err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("ParseTime(%q) should fail", tt.input)
			}
			if tt.ok && got.Year() != 2026 {
				t.Errorf("year = %d", got.Year())
			}
		})
	}

	if got, err := ParseTime(""); err != nil || !got.IsZero() {
		t.Errorf("empty input should give zero time, got %v %v", got, err)
	}
}

func TestIssueUnmarshal(t *testing.T) {
	raw := `{
		"id": "10001",
		"key": "PROJ-1",
		"fields": {
			"summary": "Fix the login flow",
			"status": {"id": "3", "name": "In Progress", "statusCategory": {"id": 4, "key": "indeterminate", "name": "In Progress"}},
			"priority": {"id": "2", "name": "High"},
			"issuetype": {"id": "10001", "name": "Bug", "subtask": false},
			"assignee": {"accountId": "abc", "displayName": "Dev One"},
			"labels": ["auth", "frontend"],
			"created": "2026-08-01T09:00:00.000+0000",
			"parent": {"id": "10000", "key": "PROJ-100", "fields": {"summary": "Login epic"}}
		}
	}`

	var issue Issue
	if err := json.Unmarshal([]byte(raw), &issue); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if issue.Key != "PROJ-1" {
		t.Errorf("Key = %q", issue.Key)
	}
	if issue.Fields.Status.Name != "In Progress" {
		t.Errorf("Status = %+v", issue.Fields.Status)
	}
	if issue.Fields.Status.StatusCategory.Key != "indeterminate" {
		t.Errorf("StatusCategory = %+v", issue.Fields.Status.StatusCategory)
	}
	if issue.Fields.IssueType.Name != "Bug" {
		t.Errorf("IssueType = %+v", issue.Fields.IssueType)
	}
	if len(issue.Fields.Labels) != 2 {
		t.Errorf("Labels = %v", issue.Fields.Labels)
	}
	if issue.Fields.Parent == nil || issue.Fields.Parent.Key != "PROJ-100" {
		t.Errorf("Parent = %+v", issue.Fields.Parent)
	}

	created, err := issue.Fields.CreatedTime()
	if err != nil {
		t.Fatalf("CreatedTime: %v", err)
	}
	if created.Month() != 8 {
		t.Errorf("created month = %v", created.Month())
	}
}

func TestFieldRules(t *testing.T) {
	tests := []struct {
		issueType    string
		wantPriority bool
		wantParent   bool
	}{
		{"Epic", true, false},
		{"epic", true, false},
		{"Story", true, true},
		{"Sub-task", false, true},
		{"Subtask", false, true},
		{"Custom Thing", true, true},
	}

	for _, tt := range tests {
		rules := rulesFor(tt.issueType)
		if rules.allowsPriority != tt.wantPriority {
			t.Errorf("rulesFor(%q).allowsPriority = %v, want %v", tt.issueType, rules.allowsPriority, tt.wantPriority)
		}
		if rules.allowsParent != tt.wantParent {
			t.Errorf("rulesFor(%q).allowsParent = %v, want %v", tt.issueType, rules.allowsParent, tt.wantParent)
		}
	}
}
