package clap

// ActionType tags an Action.
type ActionType string

const (
	ActionClap  ActionType = "CLAP"
	ActionReset ActionType = "RESET"
)

// Action is the input to a Reducer. Payload is only read by ActionReset.
type Action struct {
	Type    ActionType
	Payload State
}

// ClapAction returns a clap action.
func ClapAction() Action {
	return Action{Type: ActionClap}
}

// ResetAction returns a reset action carrying the state to restore.
func ResetAction(payload State) Action {
	return Action{Type: ActionReset, Payload: payload}
}

// Reducer computes the next state. Implementations must be pure.
type Reducer func(State, Action) State

// Reduce is the built-in reducer. Unknown action types leave state unchanged.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionClap:
		next := State{
			Count:      min(state.Count+1, MaxUserClap),
			CountTotal: state.CountTotal,
			IsClicked:  true,
		}
		if state.Count < MaxUserClap {
			next.CountTotal++
		}
		return next
	case ActionReset:
		return action.Payload
	default:
		return state
	}
}

// RateLimit wraps next so that clap actions are dropped while exceeded
// reports true. Every other action passes through untouched.
func RateLimit(next Reducer, exceeded func() bool) Reducer {
	if next == nil {
		next = Reduce
	}
	return func(state State, action Action) State {
		if action.Type == ActionClap && exceeded != nil && exceeded() {
			return state
		}
		return next(state, action)
	}
}
