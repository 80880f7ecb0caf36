// Package wizard implements the conversational order-template flow: a
// finite-state machine that collects template fields from a user
// through interleaved button and free-text prompts while keeping a
// single status message in sync with the partially entered data.
package wizard

// State identifies a step of the template wizard.
type State string

const (
	// StateList renders the template list and is the re-entry point for
	// every jump back from deeper steps.
	StateList State = "list"
	// StateListInput waits for a list action: create, publish, delete,
	// delete confirmation or back.
	StateListInput State = "list_input"
	// StateCreateInit opens the status message and asks for the type.
	StateCreateInit State = "create_init"
	// StateType waits for the buy/sell choice.
	StateType State = "type"
	// StateCurrency waits for a fiat currency code.
	StateCurrency State = "currency"
	// StateAmount waits for an exact amount or an amount range.
	StateAmount State = "amount"
	// StateMargin waits for the price margin percentage.
	StateMargin State = "margin"
	// StateMethod waits for the payment method and completes the flow.
	StateMethod State = "method"
)

// nextState is the forward chain walked by advance. Jump targets
// (create, publish, delete confirmation, back, final save) are reached
// through transitionTo instead of this chain.
var nextState = map[State]State{
	StateList:       StateListInput,
	StateCreateInit: StateType,
	StateType:       StateCurrency,
	StateCurrency:   StateAmount,
	StateAmount:     StateMargin,
	StateMargin:     StateMethod,
}

func (s State) next() (State, bool) {
	n, ok := nextState[s]
	return n, ok
}

var transitionRecorder = func(from, to string) {}

// RegisterTransitionRecorder allows external packages to observe wizard
// transitions, e.g. for metrics.
func RegisterTransitionRecorder(recorder func(from, to string)) {
	if recorder == nil {
		transitionRecorder = func(string, string) {}
		return
	}

	transitionRecorder = recorder
}
