package internal

import (
	"strings"
)

// Qualify resolves a tag name as written inside nested tags to a registered name.
//
// The fully nested name (stack + name) wins when registered. Otherwise every
// registered name ending in name is scored against the nesting stack, innermost
// components weighing the most, and the best scoring candidate is returned.
// A candidate whose leading components cannot all be matched scores zero.
func Qualify(stack []string, name string, registered []string) (string, bool) {
	nesting := nestingParts(stack, name)
	specific := strings.Join(nesting, StrNameSeparator)

	known := make(map[string]struct{}, len(registered))
	for _, n := range registered {
		known[n] = struct{}{}
	}
	if _, ok := known[specific]; ok {
		return specific, true
	}

	best := StringValueEmpty
	bestScore := 0.0
	suffix := StrNameSeparator + name
	for _, candidate := range registered {
		if candidate != name && !strings.HasSuffix(candidate, suffix) {
			continue
		}
		score := specificity(candidate, nesting)
		if score > bestScore || (score == bestScore && score > 0 && preferCandidate(candidate, best)) {
			best = candidate
			bestScore = score
		}
	}
	if bestScore > 0 {
		return best, true
	}

	if _, ok := known[name]; ok {
		return name, true
	}
	return name, false
}

// nestingParts flattens the stack and appends name unless it is already innermost.
func nestingParts(stack []string, name string) []string {
	parts := make([]string, 0, len(stack)+1)
	for _, s := range stack {
		parts = append(parts, strings.Split(s, StrNameSeparator)...)
	}
	if len(parts) == 0 || parts[len(parts)-1] != name {
		parts = append(parts, strings.Split(name, StrNameSeparator)...)
	}
	return parts
}

// specificity scores how well a registered name matches the nesting parts.
func specificity(candidate string, nesting []string) float64 {
	nameParts := strings.Split(candidate, StrNameSeparator)
	if len(nesting) == 0 || nesting[len(nesting)-1] != nameParts[len(nameParts)-1] {
		return 0
	}

	score := 0.0
	value := 1.0
	for i := len(nesting) - 1; i >= 0; i-- {
		if len(nameParts) > 0 && nesting[i] == nameParts[len(nameParts)-1] {
			score += value
			nameParts = nameParts[:len(nameParts)-1]
		}
		value *= 0.1
	}
	if len(nameParts) > 0 {
		return 0
	}
	return score
}

// preferCandidate breaks ties: longer names first, then lexical order.
func preferCandidate(candidate, current string) bool {
	if current == StringValueEmpty {
		return true
	}
	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	return candidate < current
}
