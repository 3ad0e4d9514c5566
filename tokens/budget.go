package tokens

// Default allocation of a context window, in percent.
const (
	DefaultSystemPercent   = 20
	DefaultContextPercent  = 40
	DefaultUserPercent     = 30
	DefaultReservedPercent = 10
)

// Part names a section of a prompt budget.
type Part int

// Budget parts.
const (
	PartSystem Part = iota
	PartContext
	PartUser
	PartReserved
)

// String returns the part name.
func (p Part) String() string {
	switch p {
	case PartSystem:
		return "system"
	case PartContext:
		return "context"
	case PartUser:
		return "user"
	case PartReserved:
		return "reserved"
	default:
		return "unknown"
	}
}

// Budget splits a model's token allowance across prompt parts and checks
// texts against each part with exact counts.
type Budget struct {
	// Model is the model whose tokenizer counts the texts.
	Model string

	// Total is the whole allowance, normally the context window.
	Total int

	allot   [4]int
	counter Counter
}

// NewBudget allocates total 20% system, 40% context, 30% user, 10% reserved.
func NewBudget(total int, counter Counter, model string) *Budget {
	return NewBudgetWithAllocation(total, counter, model,
		DefaultSystemPercent, DefaultContextPercent, DefaultUserPercent, DefaultReservedPercent)
}

// NewBudgetWithAllocation allocates total by relative weights, normalized to
// their sum. All-zero weights allocate nothing.
func NewBudgetWithAllocation(total int, counter Counter, model string, system, context, user, reserved int) *Budget {
	sum := system + context + user + reserved
	if sum == 0 {
		sum = 100
	}
	b := &Budget{Model: model, Total: total, counter: counter}
	for i, w := range [4]int{system, context, user, reserved} {
		b.allot[i] = total * w / sum
	}
	return b
}

// Allotment returns the tokens allotted to part.
func (b *Budget) Allotment(part Part) int {
	if part < PartSystem || part > PartReserved {
		return 0
	}
	return b.allot[part]
}

// Fits reports whether text fits the allotment of part.
func (b *Budget) Fits(part Part, text string) (bool, error) {
	n, err := b.counter.CountTokens(text, b.Model)
	if err != nil {
		return false, err
	}
	return n <= b.Allotment(part), nil
}

// Remaining returns what is left of part after used tokens, never below zero.
func (b *Budget) Remaining(part Part, used int) int {
	return max(0, b.Allotment(part)-used)
}

// RemainingTotal returns tokens left after the used amounts and the reserved
// allotment, never below zero.
func (b *Budget) RemainingTotal(systemUsed, contextUsed, userUsed int) int {
	return max(0, b.Total-systemUsed-contextUsed-userUsed-b.allot[PartReserved])
}
