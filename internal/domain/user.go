package domain

// User is one subscribed roster entry. Identity is the name; the roster store
// owns creation and removal, reconciliation only ever touches LastAlert.
type User struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	LastAlert string `json:"last_alert,omitempty"`
}

// ReconciliationResult is the per-user outcome of one invocation. Alerts is
// ordered ascending by alertDate and LastAlert, when present, is always its
// final element. Previous carries the roster's stored last_alert from before
// the run, so callers can tell a changed value from an idempotent rewrite.
// UpdateFailed and UpdateError are filled in by the service layer when
// persisting the derived value fails for this user.
type ReconciliationResult struct {
	Name      string         `json:"name"`
	City      string         `json:"city"`
	Alerts    []MatchedAlert `json:"alerts"`
	LastAlert *MatchedAlert  `json:"last_alert,omitempty"`
	Previous  string         `json:"previous_alert,omitempty"`

	UpdateFailed bool   `json:"update_failed,omitempty"`
	UpdateError  string `json:"update_error,omitempty"`
}
