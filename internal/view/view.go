package view

import "github.com/cruxstack/email-validator-view-go/internal/types"

const (
	IconSuccess = "utility:success"
	IconWarning = "utility:warning"
	IconError   = "utility:close"
)

const (
	cardClassBase    = "result-card card-"
	overallClassBase = "overall-status slds-p-around_small slds-m-top_small status-"
	badgeClassBase   = "slds-badge slds-theme_"
)

// Display is the (severity, icon, label) triple handed to the rendering
// layer, together with the CSS class the hosted page applies.
type Display struct {
	Key      string   `json:"key"`
	Severity Severity `json:"severity"`
	Icon     string   `json:"icon"`
	Label    string   `json:"label"`
	Class    string   `json:"class"`
}

type View struct {
	Overall    Display   `json:"overall"`
	Badge      Display   `json:"badge"`
	Checks     []Display `json:"checks"`
	Suggestion string    `json:"suggestion,omitempty"`
}

func Icon(s Severity) string {
	switch s {
	case SeveritySuccess:
		return IconSuccess
	case SeverityWarning:
		return IconWarning
	default:
		return IconError
	}
}

// Render maps a result onto every display slot of the page. It returns
// ok=false for a nil result so callers render nothing.
func Render(r *types.ValidationResult) (View, bool) {
	if r == nil {
		return View{}, false
	}

	verdict, _ := OverallVerdict(r)
	overall, _ := OverallSeverity(r)
	badge, _ := StatusBadgeSeverity(r)

	v := View{
		Overall: Display{
			Key:      "overall",
			Severity: overall,
			Icon:     Icon(overall),
			Label:    verdict.Label(),
			Class:    overallClassBase + string(overall),
		},
		Badge: Display{
			Key:      "status",
			Severity: badge,
			Icon:     Icon(badge),
			Label:    string(r.Status),
			Class:    badgeClassBase + string(badge),
		},
		Checks: make([]Display, 0, len(Checks)),
	}

	for _, c := range Checks {
		sev, _ := CheckSeverity(r, c)
		v.Checks = append(v.Checks, Display{
			Key:      string(c),
			Severity: sev,
			Icon:     Icon(sev),
			Label:    c.Label(),
			Class:    cardClassBase + string(sev),
		})
	}

	if HasSuggestion(r) {
		v.Suggestion = r.Suggestion
	}

	return v, true
}

// Check returns the rendered card for c, if present.
func (v View) Check(c Check) (Display, bool) {
	for _, d := range v.Checks {
		if d.Key == string(c) {
			return d, true
		}
	}
	return Display{}, false
}
