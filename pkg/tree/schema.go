package tree

import (
	"fmt"
	"time"

	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
)

// Validation limits for member records.
const (
	maxNameLength  = 100
	maxNotesLength = 500
	minYear        = 1800
)

// ValidationResult collects per-member validation findings.
// A member with a non-empty Errors slice is rejected (strict mode) or
// quarantined (lenient mode) by the caller.
type ValidationResult struct {
	MemberID string
	Errors   []string
}

// OK reports whether the member passed all checks.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// ValidateMember checks a single member against the schema rules:
// required fields, enum membership, year ranges, and birth-before-death.
// Cross-member rules (uniqueness, referential integrity, circular
// ancestry) live in [ValidateDocument].
func ValidateMember(m Member) ValidationResult {
	res := ValidationResult{MemberID: m.ID}
	currentYear := time.Now().Year()

	if err := kterrors.ValidateMemberID(m.ID); err != nil {
		res.Errors = append(res.Errors, kterrors.UserMessage(err))
	}
	if m.Name == "" {
		res.Errors = append(res.Errors, "name is required")
	} else if len(m.Name) > maxNameLength {
		res.Errors = append(res.Errors, "name is too long")
	}

	switch m.Gender {
	case GenderMale, GenderFemale:
	default:
		res.Errors = append(res.Errors, fmt.Sprintf("gender %q is not one of male, female", m.Gender))
	}

	if m.Status != "" && m.Status != StatusLiving && m.Status != StatusDeceased {
		res.Errors = append(res.Errors, fmt.Sprintf("status %q is not one of living, deceased", m.Status))
	}

	if m.BirthYear != 0 && (m.BirthYear < minYear || m.BirthYear > currentYear) {
		res.Errors = append(res.Errors, fmt.Sprintf("birth year %d out of range", m.BirthYear))
	}
	if m.DeathYear != 0 && (m.DeathYear < minYear || m.DeathYear > currentYear) {
		res.Errors = append(res.Errors, fmt.Sprintf("death year %d out of range", m.DeathYear))
	}
	if m.BirthYear != 0 && m.DeathYear != 0 && m.BirthYear > m.DeathYear {
		res.Errors = append(res.Errors, "birth year is after death year")
	}

	if len(m.Notes) > maxNotesLength {
		res.Errors = append(res.Errors, "notes are too long")
	}

	for _, id := range m.SpouseIDs {
		if id == m.ID {
			res.Errors = append(res.Errors, "member cannot be their own spouse")
		}
	}
	for _, id := range m.ChildrenIDs {
		if id == m.ID {
			res.Errors = append(res.Errors, "member cannot be their own child")
		}
	}

	return res
}

// ValidateDocument runs [ValidateMember] on every record and adds the
// cross-member business rules:
//
//   - IDs must be unique across the document
//   - every spouseIds / childrenIds entry must reference an existing member
//   - no circular ancestry (a member cannot be their own ancestor)
//
// Results are returned in input order, one per member, including clean ones.
func ValidateDocument(doc Document) []ValidationResult {
	results := make([]ValidationResult, len(doc.Members))

	seen := make(map[string]bool, len(doc.Members))
	exists := make(map[string]bool, len(doc.Members))
	for _, m := range doc.Members {
		exists[m.ID] = true
	}

	for i, m := range doc.Members {
		res := ValidateMember(m)

		if seen[m.ID] {
			res.Errors = append(res.Errors, fmt.Sprintf("duplicate member ID %q", m.ID))
		}
		seen[m.ID] = true

		for _, id := range m.SpouseIDs {
			if !exists[id] {
				res.Errors = append(res.Errors, fmt.Sprintf("spouse %q does not exist", id))
			}
		}
		for _, id := range m.ChildrenIDs {
			if !exists[id] {
				res.Errors = append(res.Errors, fmt.Sprintf("child %q does not exist", id))
			}
		}

		results[i] = res
	}

	// Circular ancestry needs the full parent index.
	parents := make(map[string][]string)
	for _, m := range doc.Members {
		for _, childID := range m.ChildrenIDs {
			parents[childID] = append(parents[childID], m.ID)
		}
	}
	for i, m := range doc.Members {
		if inOwnAncestry(m.ID, parents) {
			results[i].Errors = append(results[i].Errors, "circular ancestry detected")
		}
	}

	return results
}

// inOwnAncestry reports whether id is reachable from itself by walking
// parent links upward.
func inOwnAncestry(id string, parents map[string][]string) bool {
	visited := make(map[string]bool)
	queue := append([]string(nil), parents[id]...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == id {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		queue = append(queue, parents[current]...)
	}

	return false
}
