package generate

// themeState tracks one theme through the pipeline. Transitions are strictly
// forward: pending → validating → editing → succeeded or failed.
type themeState string

const (
	statePending    themeState = "pending"
	stateValidating themeState = "validating"
	stateEditing    themeState = "editing"
	stateSucceeded  themeState = "succeeded"
	stateFailed     themeState = "failed"
)
