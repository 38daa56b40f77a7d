package services

import (
	"fmt"
	"strings"
)

// ValuePolicy turns the cultural values of the attractions a tour newly
// covers into that tour's incremental value for the package.
type ValuePolicy struct {
	Name    string
	Combine func(values []float64) float64
}

var (
	// MaxNewValue credits a tour with its single best not-yet-covered attraction.
	MaxNewValue = ValuePolicy{Name: "max", Combine: maxOf}

	// SumNewValue credits a tour with every not-yet-covered attraction.
	SumNewValue = ValuePolicy{Name: "sum", Combine: sumOf}
)

// PolicyByName resolves "max" (or "") and "sum".
func PolicyByName(name string) (ValuePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MaxNewValue.Name:
		return MaxNewValue, nil
	case SumNewValue.Name:
		return SumNewValue, nil
	default:
		return ValuePolicy{}, fmt.Errorf("%w: unknown value policy %q", ErrInvalidArgument, name)
	}
}

func (p ValuePolicy) orDefault() ValuePolicy {
	if p.Combine == nil {
		return MaxNewValue
	}
	return p
}

func maxOf(values []float64) float64 {
	best := 0.0
	for i, v := range values {
		if i == 0 || v > best {
			best = v
		}
	}
	return best
}

func sumOf(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
