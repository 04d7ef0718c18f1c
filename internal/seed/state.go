package seed

// State tracks the pipeline through its ordered steps. Failed is absorbing:
// once a step errors, the run aborts and no later step executes.
type State int

const (
	StateNotStarted State = iota
	StateSeedingBatteries
	StateSeedingConfigurations
	StateSeedingFitments
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateSeedingBatteries:
		return "seeding-batteries"
	case StateSeedingConfigurations:
		return "seeding-configurations"
	case StateSeedingFitments:
		return "seeding-fitments"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
