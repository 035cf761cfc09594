package domain

// EventAction names a ledger change announced to downstream consumers.
type EventAction string

const (
	ActionCreate EventAction = "create"
	ActionUpdate EventAction = "update"
	ActionReview EventAction = "review"
)
