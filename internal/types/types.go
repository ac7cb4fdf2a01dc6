package types

// Status is the coarse two-valued outcome reported by the validation service.
// It is independent of ValidationResult.IsValid and may disagree with it.
type Status string

const (
	StatusValid   Status = "VALID"
	StatusInvalid Status = "INVALID"
)

// ValidationResult is the composite verdict returned by a validation gateway.
// Absent booleans decode as false and an absent suggestion as "".
type ValidationResult struct {
	Status        Status `json:"status"`
	IsValid       bool   `json:"isValid"`
	SyntaxValid   bool   `json:"syntaxValid"`
	DomainExists  bool   `json:"domainExists"`
	HasMxRecord   bool   `json:"hasMxRecord"`
	MailboxExists bool   `json:"mailboxExists"`
	IsDisposable  bool   `json:"isDisposable"`
	IsRoleBased   bool   `json:"isRoleBased"`
	Suggestion    string `json:"suggestion,omitempty"`
}

type EventType string

const (
	EventInput  EventType = "input"
	EventKey    EventType = "key"
	EventSubmit EventType = "submit"
)

// UIEvent is one inbound interaction from the hosted page.
type UIEvent struct {
	Type  EventType `json:"type"`
	Value string    `json:"value,omitempty"`
	Key   string    `json:"key,omitempty"`
}

// ValidationRequest is the body accepted by the HTTP surface. Email is a
// shorthand for an input event followed by a submit.
type ValidationRequest struct {
	Email  string    `json:"email,omitempty"`
	Events []UIEvent `json:"events,omitempty"`
}
