package lesson

// turnDoneMsg carries the orchestrator's answer to one learner turn.
type turnDoneMsg struct {
	Reply string
	Err   error
}
