package tree

import (
	"strings"
	"testing"
)

func TestValidateMember(t *testing.T) {
	tests := []struct {
		name    string
		member  Member
		wantErr string // substring of an expected error, "" for clean
	}{
		{"valid", Member{ID: "a", Name: "Abe", Gender: GenderMale}, ""},
		{"missing name", Member{ID: "a", Gender: GenderMale}, "name is required"},
		{"long name", Member{ID: "a", Name: strings.Repeat("x", 101), Gender: GenderMale}, "too long"},
		{"bad gender", Member{ID: "a", Name: "Abe", Gender: "other"}, "gender"},
		{"bad status", Member{ID: "a", Name: "Abe", Gender: GenderMale, Status: "unknown"}, "status"},
		{"birth too early", Member{ID: "a", Name: "Abe", Gender: GenderMale, BirthYear: 1500}, "birth year"},
		{"birth after death", Member{ID: "a", Name: "Abe", Gender: GenderMale, BirthYear: 1990, DeathYear: 1980}, "after death"},
		{"own spouse", Member{ID: "a", Name: "Abe", Gender: GenderMale, SpouseIDs: []string{"a"}}, "own spouse"},
		{"own child", Member{ID: "a", Name: "Abe", Gender: GenderMale, ChildrenIDs: []string{"a"}}, "own child"},
		{"missing id", Member{Name: "Abe", Gender: GenderMale}, "ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateMember(tt.member)
			if tt.wantErr == "" {
				if !res.OK() {
					t.Errorf("expected clean result, got %v", res.Errors)
				}
				return
			}
			if res.OK() {
				t.Fatalf("expected error containing %q, got none", tt.wantErr)
			}
			found := false
			for _, e := range res.Errors {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v missing %q", res.Errors, tt.wantErr)
			}
		})
	}
}

func TestValidateDocument_DuplicateIDs(t *testing.T) {
	doc := Document{Members: []Member{
		{ID: "a", Name: "Abe", Gender: GenderMale},
		{ID: "a", Name: "Abel", Gender: GenderMale},
	}}

	results := ValidateDocument(doc)
	if results[0].OK() != true {
		t.Errorf("first occurrence should be clean, got %v", results[0].Errors)
	}
	if results[1].OK() {
		t.Error("duplicate ID should be flagged on the second occurrence")
	}
}

func TestValidateDocument_DanglingReferences(t *testing.T) {
	doc := Document{Members: []Member{
		{ID: "a", Name: "Abe", Gender: GenderMale, SpouseIDs: []string{"ghost"}, ChildrenIDs: []string{"phantom"}},
	}}

	results := ValidateDocument(doc)
	if len(results[0].Errors) != 2 {
		t.Errorf("expected 2 dangling reference errors, got %v", results[0].Errors)
	}
}

func TestValidateDocument_CircularAncestry(t *testing.T) {
	doc := Document{Members: []Member{
		{ID: "a", Name: "Abe", Gender: GenderMale, ChildrenIDs: []string{"b"}},
		{ID: "b", Name: "Ben", Gender: GenderMale, ChildrenIDs: []string{"a"}},
	}}

	results := ValidateDocument(doc)
	for i, res := range results {
		found := false
		for _, e := range res.Errors {
			if strings.Contains(e, "circular") {
				found = true
			}
		}
		if !found {
			t.Errorf("member %d: expected circular ancestry error, got %v", i, res.Errors)
		}
	}
}
