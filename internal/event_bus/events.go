package event_bus

// DocumentMutatedEvent is published by the budget document store after every
// effective mutation. The sync coordinator listens for it to schedule
// persistence.
const DocumentMutatedEvent EventType = "document.mutated"

type DocumentMutated struct {
	// DocumentID identifies the mutated budget document.
	DocumentID string
	// Change names the mutation, e.g. "expense.added" or "goal.changed".
	Change string
}
