// Package quotes holds the fixed set of motivational lines served by /motivate.
package quotes

import "math/rand/v2"

var bank = [...]string{
	"You can do it!",
	"Stay focused.",
	"Don't forget why you started.",
	"One day, or day one. You decide.",
	"Be the Stark of your own story.",
}

// All returns a copy of every quote in the bank.
func All() []string {
	out := make([]string, len(bank))
	copy(out, bank[:])
	return out
}

// Picker chooses quotes uniformly at random.
type Picker struct {
	rng *rand.Rand
}

// NewPicker returns a Picker backed by rng, or by the global source when rng is nil.
func NewPicker(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

func (p *Picker) Random() string {
	if p.rng == nil {
		return bank[rand.IntN(len(bank))]
	}
	return bank[p.rng.IntN(len(bank))]
}
