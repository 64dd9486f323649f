// Package dice implements dice expressions: parsing and rolling the
// NdM±K dice notation, keep-highest/lowest, and advantage/disadvantage,
// against a process-wide, seedable PRNG.
package dice

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// ParseError reports malformed dice notation.
type ParseError struct {
	Expression string
	Reason     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid dice expression %q: %s", e.Expression, e.Reason)
}

// AdvantageMode controls whether a d20 roll is made with advantage,
// disadvantage, or normally. Combining advantage+disadvantage cancels to
// Normal — callers resolve that before calling RollD20.
type AdvantageMode int

const (
	Normal AdvantageMode = iota
	Advantage
	Disadvantage
)

func (a AdvantageMode) String() string {
	switch a {
	case Advantage:
		return "advantage"
	case Disadvantage:
		return "disadvantage"
	default:
		return "normal"
	}
}

// Resolve collapses simultaneous advantage and disadvantage to Normal.
func Resolve(hasAdvantage, hasDisadvantage bool) AdvantageMode {
	switch {
	case hasAdvantage && hasDisadvantage:
		return Normal
	case hasAdvantage:
		return Advantage
	case hasDisadvantage:
		return Disadvantage
	default:
		return Normal
	}
}

// Keep selects which dice in a component are kept after rolling.
type Keep int

const (
	KeepAll Keep = iota
	KeepHighest
	KeepLowest
)

// Component is one NdM(kh|kl)N([+-]K)? term of a dice expression.
type Component struct {
	Count    int
	Sides    int
	Keep     Keep
	KeepN    int
	Modifier int
}

// ComponentResult is the rolled outcome of a single Component.
type ComponentResult struct {
	Die      string
	Rolls    []int
	Kept     []int
	Subtotal int
}

// Result is the outcome of rolling a full dice expression.
type Result struct {
	Expression       string
	ComponentResults []ComponentResult
	Modifier         int
	Total            int
	Natural20        bool
	Natural1         bool
}

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(1))
)

// Seed reseeds the package-wide PRNG deterministically, for tests.
func Seed(seed int64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewSource(seed))
}

func rollDie(sides int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(sides) + 1
}

// Parse parses the grammar <count>d<sides>(kh<n>|kl<n>)?([+-]<int>)?, one or
// more terms joined by "+". An integer term that follows a dice term becomes
// that term's Modifier ("2d6+3" is one component); a leading integer term
// stays a flat component of its own.
func Parse(expr string) ([]Component, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, &ParseError{Expression: expr, Reason: "empty expression"}
	}

	terms := splitTerms(trimmed)
	if len(terms) == 0 {
		return nil, &ParseError{Expression: expr, Reason: "no terms found"}
	}

	components := make([]Component, 0, len(terms))
	for _, term := range terms {
		comp, err := parseTerm(term)
		if err != nil {
			return nil, &ParseError{Expression: expr, Reason: err.Error()}
		}
		// A bare ±K term is the trailing modifier of the dice term before it.
		if n := len(components); comp.Sides == 0 && n > 0 && components[n-1].Sides > 0 {
			components[n-1].Modifier += comp.Modifier
			continue
		}
		components = append(components, comp)
	}
	return components, nil
}

// splitTerms splits on '+'/'-' while keeping the sign attached to the term
// that follows it, so "1d6+2-1" yields ["1d6", "+2", "-1"].
func splitTerms(expr string) []string {
	var raw []string
	start := 0
	for i := 1; i < len(expr); i++ {
		if expr[i] == '+' || expr[i] == '-' {
			raw = append(raw, expr[start:i])
			start = i
		}
	}
	raw = append(raw, expr[start:])

	out := raw[:0]
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseTerm(term string) (Component, error) {
	negative := false
	t := term
	switch {
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	case strings.HasPrefix(t, "-"):
		negative = true
		t = t[1:]
	}

	dIdx := strings.IndexByte(t, 'd')
	if dIdx < 0 {
		n, err := strconv.Atoi(t)
		if err != nil {
			return Component{}, fmt.Errorf("term %q is neither dice notation nor an integer", term)
		}
		if negative {
			n = -n
		}
		return Component{Modifier: n}, nil
	}
	if negative {
		return Component{}, fmt.Errorf("negative dice terms are not supported in %q", term)
	}

	countStr := t[:dIdx]
	rest := t[dIdx+1:]
	count := 1
	if countStr != "" {
		n, err := strconv.Atoi(countStr)
		if err != nil || n < 1 {
			return Component{}, fmt.Errorf("invalid dice count in %q", term)
		}
		count = n
	}

	sidesStr, keep, keepN, modStr, err := splitDiceRest(rest)
	if err != nil {
		return Component{}, err
	}
	sides, err := strconv.Atoi(sidesStr)
	if err != nil || sides < 1 {
		return Component{}, fmt.Errorf("invalid dice sides in %q", term)
	}

	modifier := 0
	if modStr != "" {
		n, err := strconv.Atoi(modStr)
		if err != nil {
			return Component{}, fmt.Errorf("invalid modifier in %q", term)
		}
		modifier = n
	}

	if keepN > count {
		return Component{}, fmt.Errorf("keep count exceeds dice count in %q", term)
	}

	return Component{Count: count, Sides: sides, Keep: keep, KeepN: keepN, Modifier: modifier}, nil
}

// splitDiceRest parses "<sides>(kh<n>|kl<n>)?([+-]<int>)?" after the 'd'.
func splitDiceRest(rest string) (sides string, keep Keep, keepN int, mod string, err error) {
	keep = KeepAll
	idx := strings.IndexAny(rest, "+-")
	head := rest
	if idx >= 0 {
		head = rest[:idx]
		mod = rest[idx:]
	}

	if khIdx := strings.Index(head, "kh"); khIdx >= 0 {
		sides = head[:khIdx]
		n, e := strconv.Atoi(head[khIdx+2:])
		if e != nil || n < 1 {
			return "", 0, 0, "", fmt.Errorf("invalid kh count in %q", rest)
		}
		return sides, KeepHighest, n, mod, nil
	}
	if klIdx := strings.Index(head, "kl"); klIdx >= 0 {
		sides = head[:klIdx]
		n, e := strconv.Atoi(head[klIdx+2:])
		if e != nil || n < 1 {
			return "", 0, 0, "", fmt.Errorf("invalid kl count in %q", rest)
		}
		return sides, KeepLowest, n, mod, nil
	}
	return head, KeepAll, 0, mod, nil
}

// Roll parses and rolls a full dice expression.
func Roll(expr string) (*Result, error) {
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
			rolls[i] = rollDie(comp.Sides)
		}

		kept := keepDice(rolls, comp.Keep, comp.KeepN)
		subtotal := sum(kept) + comp.Modifier
		total += subtotal
		result.Modifier += comp.Modifier

		result.ComponentResults = append(result.ComponentResults, ComponentResult{
			Die:      fmt.Sprintf("d%d", comp.Sides),
			Rolls:    rolls,
			Kept:     kept,
			Subtotal: subtotal,
		})

		if comp.Count == 1 && comp.Sides == 20 {
			result.Natural20 = rolls[0] == 20
			result.Natural1 = rolls[0] == 1
		}
	}
	result.Total = total
	return result, nil
}

func keepDice(rolls []int, keep Keep, n int) []int {
	if keep == KeepAll || n <= 0 || n >= len(rolls) {
		out := make([]int, len(rolls))
		copy(out, rolls)
		return out
	}

	sorted := make([]int, len(rolls))
	copy(sorted, rolls)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}

	if keep == KeepHighest {
		return sorted[len(sorted)-n:]
	}
	return sorted[:n]
}

func sum(vals []int) int {
	total := 0
	for _, v := range vals {
		total += v
	}
	return total
}

// RollD20 rolls a single d20 plus modifier, honoring advantage/disadvantage.
func RollD20(modifier int, adv AdvantageMode) *Result {
	first := rollDie(20)
	result := &Result{Expression: "1d20", Modifier: modifier}

	rolls := []int{first}
	chosen := first
	if adv != Normal {
		second := rollDie(20)
		rolls = append(rolls, second)
		if adv == Advantage {
			chosen = maxInt(first, second)
		} else {
			chosen = minInt(first, second)
		}
	}

	result.ComponentResults = []ComponentResult{{
		Die:      "d20",
		Rolls:    rolls,
		Kept:     []int{chosen},
		Subtotal: chosen,
	}}
	result.Total = chosen + modifier
	result.Natural20 = chosen == 20
	result.Natural1 = chosen == 1
	return result
}

// RollWithFallback rolls primary; if it fails to parse, rolls secondary; if
// that also fails to parse, returns a canonical result with Total=1 so
// callers always get a usable roll.
func RollWithFallback(primary, secondary string) *Result {
	if result, err := Roll(primary); err == nil {
		return result
	}
	if result, err := Roll(secondary); err == nil {
		return result
	}
	return &Result{Expression: primary, Total: 1}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
