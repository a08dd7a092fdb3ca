package checkout

// Status is the client-side checkout state machine.
type Status string

const (
	StatusIdle        Status = "IDLE"
	StatusModalOpen   Status = "MODAL_OPEN"
	StatusRedirecting Status = "REDIRECTING"
	StatusCaptured    Status = "CAPTURED"
	StatusFailed      Status = "FAILED"
)

func (s Status) String() string {
	return string(s)
}

// validTransitions encodes the forward-only machine. A return
// navigation restarts the flow in a fresh session, so Idle also accepts
// the capture outcomes directly.
var validTransitions = map[Status][]Status{
	StatusIdle:        {StatusModalOpen, StatusCaptured, StatusFailed},
	StatusModalOpen:   {StatusIdle, StatusRedirecting},
	StatusRedirecting: {StatusCaptured, StatusFailed},
	StatusFailed:      {StatusModalOpen, StatusCaptured},
	StatusCaptured:    {},
}

func canTransition(from, to Status) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
