// Package view derives display decisions from a validation result. Every
// function is pure and reports ok=false when no result is available.
package view

import "github.com/cruxstack/email-validator-view-go/internal/types"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Verdict is the overall classification shown above the check cards.
type Verdict string

const (
	VerdictInvalid            Verdict = "invalid"
	VerdictValidButDisposable Verdict = "valid_but_disposable"
	VerdictValidButRoleBased  Verdict = "valid_but_role_based"
	VerdictValid              Verdict = "valid"
)

func (v Verdict) Label() string {
	switch v {
	case VerdictInvalid:
		return "Invalid Email Address"
	case VerdictValidButDisposable:
		return "Valid but Disposable Email"
	case VerdictValidButRoleBased:
		return "Valid but Role-Based Email"
	case VerdictValid:
		return "Valid Email Address"
	default:
		return ""
	}
}

// verdictRules is evaluated top to bottom; the first match wins.
var verdictRules = []struct {
	match   func(r *types.ValidationResult) bool
	verdict Verdict
}{
	{func(r *types.ValidationResult) bool { return !r.IsValid }, VerdictInvalid},
	{func(r *types.ValidationResult) bool { return r.IsDisposable }, VerdictValidButDisposable},
	{func(r *types.ValidationResult) bool { return r.IsRoleBased }, VerdictValidButRoleBased},
	{func(r *types.ValidationResult) bool { return true }, VerdictValid},
}

func OverallVerdict(r *types.ValidationResult) (Verdict, bool) {
	if r == nil {
		return "", false
	}
	for _, rule := range verdictRules {
		if rule.match(r) {
			return rule.verdict, true
		}
	}
	return "", false
}

// OverallSeverity is coarser than OverallVerdict: role-based addresses that
// are otherwise valid still count as success here.
func OverallSeverity(r *types.ValidationResult) (Severity, bool) {
	if r == nil {
		return "", false
	}
	if r.IsValid && !r.IsDisposable {
		return SeveritySuccess, true
	}
	return SeverityWarning, true
}

// StatusBadgeSeverity reads only the coarse Status field.
func StatusBadgeSeverity(r *types.ValidationResult) (Severity, bool) {
	if r == nil {
		return "", false
	}
	if r.Status == types.StatusValid {
		return SeveritySuccess, true
	}
	return SeverityError, true
}

type Check string

const (
	CheckSyntax     Check = "syntax"
	CheckDomain     Check = "domain"
	CheckMX         Check = "mx"
	CheckMailbox    Check = "mailbox"
	CheckDisposable Check = "disposable"
	CheckRoleBased  Check = "roleBased"
)

// Checks lists the per-check cards in display order.
var Checks = []Check{CheckSyntax, CheckDomain, CheckMX, CheckMailbox, CheckDisposable, CheckRoleBased}

type checkDef struct {
	label string
	value func(r *types.ValidationResult) bool
	// inverted checks are unfavorable when true
	inverted bool
}

var checkDefs = map[Check]checkDef{
	CheckSyntax:     {"Syntax", func(r *types.ValidationResult) bool { return r.SyntaxValid }, false},
	CheckDomain:     {"Domain", func(r *types.ValidationResult) bool { return r.DomainExists }, false},
	CheckMX:         {"MX Record", func(r *types.ValidationResult) bool { return r.HasMxRecord }, false},
	CheckMailbox:    {"Mailbox", func(r *types.ValidationResult) bool { return r.MailboxExists }, false},
	CheckDisposable: {"Disposable", func(r *types.ValidationResult) bool { return r.IsDisposable }, true},
	CheckRoleBased:  {"Role-Based", func(r *types.ValidationResult) bool { return r.IsRoleBased }, true},
}

func (c Check) Label() string {
	return checkDefs[c].label
}

// CheckSeverity styles one check card. Unknown checks report ok=false.
func CheckSeverity(r *types.ValidationResult, c Check) (Severity, bool) {
	def, known := checkDefs[c]
	if r == nil || !known {
		return "", false
	}
	v := def.value(r)
	switch {
	case def.inverted && v:
		return SeverityWarning, true
	case def.inverted:
		return SeveritySuccess, true
	case v:
		return SeveritySuccess, true
	default:
		return SeverityError, true
	}
}

func HasSuggestion(r *types.ValidationResult) bool {
	return r != nil && r.Suggestion != ""
}
