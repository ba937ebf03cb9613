package state_test

import (
	"teamboard/domain/state"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("StateMachine", func() {
	var (
		todo     = state.State{Name: "todo", Category: state.InBacklog}
		doing    = state.State{Name: "in-progress", Category: state.InProcess}
		review   = state.State{Name: "review", Category: state.InProcess}
		done     = state.State{Name: "done", Category: state.Done}
		machine  *state.StateMachine
		start    = state.Transition{Name: "start", From: todo, To: doing}
		submit   = state.Transition{Name: "submit", From: doing, To: review}
		approve  = state.Transition{Name: "approve", From: review, To: done}
		reject   = state.Transition{Name: "reject", From: review, To: doing}
		reopened = state.Transition{Name: "rewind", From: done, To: todo}
	)

	BeforeEach(func() {
		machine = state.NewStateMachine(
			[]state.State{todo, doing, review, done},
			[]state.Transition{start, submit, approve, reject, reopened})
	})

	Describe("AvailableTransitions", func() {
		It("should filter transitions by source state", func() {
			Ω(machine.AvailableTransitions("review", "")).Should(Equal([]state.Transition{approve, reject}))
			Ω(machine.AvailableTransitions("unknown", "")).Should(BeEmpty())
		})

		It("should filter transitions by source and target state", func() {
			Ω(machine.AvailableTransitions("in-progress", "review")).Should(Equal([]state.Transition{submit}))
			Ω(machine.AvailableTransitions("todo", "done")).Should(BeEmpty())
			Ω(machine.AvailableTransitions("", "in-progress")).Should(Equal([]state.Transition{start, reject}))
		})
	})

	Describe("CanTransit", func() {
		It("should only accept declared transitions", func() {
			Ω(machine.CanTransit("todo", "in-progress")).Should(BeTrue())
			Ω(machine.CanTransit("done", "todo")).Should(BeTrue())
			Ω(machine.CanTransit("todo", "review")).Should(BeFalse())
			Ω(machine.CanTransit("", "todo")).Should(BeFalse())
			Ω(machine.CanTransit("todo", "")).Should(BeFalse())
		})
	})

	Describe("FindState and StatesIn", func() {
		It("should match names exactly", func() {
			s, found := machine.FindState("done")
			Ω(found).Should(BeTrue())
			Ω(s.Category).Should(Equal(state.Done))

			_, found = machine.FindState("DONE")
			Ω(found).Should(BeFalse())
		})

		It("should group states by category in declaration order", func() {
			Ω(machine.StatesIn(state.InProcess)).Should(Equal([]state.State{doing, review}))
			Ω(machine.StatesIn(state.Done)).Should(Equal([]state.State{done}))
		})
	})
})
