package dice

import "strconv"

// Roller abstracts rolling so callers (the rules engine, mechanics) can
// inject a deterministic source in tests instead of depending on the
// package-level PRNG directly.
type Roller interface {
	Roll(expr string) (*Result, error)
	RollD20(modifier int, adv AdvantageMode) *Result
}

// realRoller is the default Roller, backed by the package PRNG.
type realRoller struct{}

// NewRealRoller returns the default, process-wide Roller.
func NewRealRoller() Roller { return realRoller{} }

func (realRoller) Roll(expr string) (*Result, error) { return Roll(expr) }

func (realRoller) RollD20(modifier int, adv AdvantageMode) *Result { return RollD20(modifier, adv) }

// ManualMockRoller replays a fixed queue of die values for tests that
// want to name the exact roll instead of picking a seed that happens to
// produce it.
type ManualMockRoller struct {
	queue []int
	pos   int
}

// NewManualMockRoller builds a ManualMockRoller over the given sequence of
// single-die values, consumed in order by each Roll/RollD20 call.
func NewManualMockRoller(values ...int) *ManualMockRoller {
	return &ManualMockRoller{queue: values}
}

func (m *ManualMockRoller) next() (int, bool) {
	if m.pos >= len(m.queue) {
		return 0, false
	}
	v := m.queue[m.pos]
	m.pos++
	return v, true
}

func (m *ManualMockRoller) Roll(expr string) (*Result, error) {
	components, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	result := &Result{Expression: expr}
	total := 0
	for _, comp := range components {
		if comp.Sides == 0 {
			result.Modifier += comp.Modifier
			total += comp.Modifier
			continue
		}
		rolls := make([]int, comp.Count)
		for i := range rolls {
			v, ok := m.next()
			if !ok {
				return nil, &ParseError{Expression: expr, Reason: "mock roller queue exhausted"}
			}
			rolls[i] = v
		}
		kept := keepDice(rolls, comp.Keep, comp.KeepN)
		subtotal := sum(kept) + comp.Modifier
		total += subtotal
		result.Modifier += comp.Modifier
		result.ComponentResults = append(result.ComponentResults, ComponentResult{
			Die: rollDieLabel(comp.Sides), Rolls: rolls, Kept: kept, Subtotal: subtotal,
		})
		if comp.Count == 1 && comp.Sides == 20 {
			result.Natural20 = rolls[0] == 20
			result.Natural1 = rolls[0] == 1
		}
	}
	result.Total = total
	return result, nil
}

func (m *ManualMockRoller) RollD20(modifier int, adv AdvantageMode) *Result {
	result := &Result{Expression: "1d20", Modifier: modifier}
	first, _ := m.next()
	rolls := []int{first}
	chosen := first
	if adv != Normal {
		second, _ := m.next()
		rolls = append(rolls, second)
		if adv == Advantage {
			chosen = maxInt(first, second)
		} else {
			chosen = minInt(first, second)
		}
	}
	result.ComponentResults = []ComponentResult{{Die: "d20", Rolls: rolls, Kept: []int{chosen}, Subtotal: chosen}}
	result.Total = chosen + modifier
	result.Natural20 = chosen == 20
	result.Natural1 = chosen == 1
	return result
}

func rollDieLabel(sides int) string {
	return "d" + strconv.Itoa(sides)
}
