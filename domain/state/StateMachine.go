package state

// StateMachine is stateless, it only answers questions about states and transitions.
type StateMachine struct {
	States      []State      `json:"states"`
	Transitions []Transition `json:"transitions"`
}

type Category uint

const (
	InBacklog Category = iota
	InProcess
	Done
)

type State struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

type Transition struct {
	Name string `json:"name"`
	From State  `json:"from"`
	To   State  `json:"to"`
}

func NewStateMachine(states []State, transitions []Transition) *StateMachine {
	return &StateMachine{States: states, Transitions: transitions}
}

// AvailableTransitions filters transitions by source and target name; an empty name matches any state.
func (sm *StateMachine) AvailableTransitions(from, to string) []Transition {
	r := []Transition{}
	for _, t := range sm.Transitions {
		if (from == "" || from == t.From.Name) && (to == "" || to == t.To.Name) {
			r = append(r, t)
		}
	}
	return r
}

// CanTransit requires both states to be known and a transition declared between them.
func (sm *StateMachine) CanTransit(from, to string) bool {
	if from == "" || to == "" {
		return false
	}
	return len(sm.AvailableTransitions(from, to)) > 0
}

func (sm *StateMachine) FindState(name string) (State, bool) {
	for _, s := range sm.States {
		if s.Name == name {
			return s, true
		}
	}
	return State{}, false
}

// StatesIn keeps declaration order.
func (sm *StateMachine) StatesIn(category Category) []State {
	r := []State{}
	for _, s := range sm.States {
		if s.Category == category {
			r = append(r, s)
		}
	}
	return r
}
