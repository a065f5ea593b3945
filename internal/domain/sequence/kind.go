// Package sequence provides the numeric sequence domain model:
// source kinds, local generators, the average aggregator and error kinds.
package sequence

import (
	"fmt"
	"strings"
)

// SourceKind identifies which generator or service supplies a sequence.
type SourceKind string

const (
	KindPrime     SourceKind = "prime"     // Generated locally
	KindFibonacci SourceKind = "fibonacci" // Fetched from the Fibonacci service
	KindEven      SourceKind = "even"      // Generated locally
	KindRandom    SourceKind = "random"    // Fetched from the random integer service
)

// AllKinds lists the recognized kinds in selector order.
var AllKinds = []SourceKind{KindPrime, KindFibonacci, KindEven, KindRandom}

// IsValid checks if the kind is one of the four recognized values.
func (k SourceKind) IsValid() bool {
	switch k {
	case KindPrime, KindFibonacci, KindEven, KindRandom:
		return true
	default:
		return false
	}
}

// IsLocal reports whether the kind is computed without network I/O.
func (k SourceKind) IsLocal() bool {
	return k == KindPrime || k == KindEven
}

// IsRemote reports whether the kind is retrieved from an external service.
func (k SourceKind) IsRemote() bool {
	return k == KindFibonacci || k == KindRandom
}

// Code returns the single-letter selector code ("p", "f", "e", "r").
func (k SourceKind) Code() string {
	switch k {
	case KindPrime:
		return "p"
	case KindFibonacci:
		return "f"
	case KindEven:
		return "e"
	case KindRandom:
		return "r"
	default:
		return ""
	}
}

// Label returns the human readable name shown in selectors.
func (k SourceKind) Label() string {
	switch k {
	case KindPrime:
		return "Prime numbers"
	case KindFibonacci:
		return "Fibonacci numbers"
	case KindEven:
		return "Even numbers"
	case KindRandom:
		return "Random numbers"
	default:
		return string(k)
	}
}

// String implements Stringer interface.
func (k SourceKind) String() string {
	return string(k)
}

// Labels returns the selector labels of AllKinds, in order.
func Labels() []string {
	labels := make([]string, 0, len(AllKinds))
	for _, k := range AllKinds {
		labels = append(labels, k.Label())
	}
	return labels
}

// ParseKind resolves a selector code, kind name or label into a SourceKind.
// Matching is case-insensitive.
func ParseKind(s string) (SourceKind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, k := range AllKinds {
		if v == k.Code() || v == string(k) || v == strings.ToLower(k.Label()) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSourceKind, s)
}
