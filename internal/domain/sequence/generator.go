package sequence

import "fmt"

// GeneratePrimes returns the first count primes in ascending order.
// A count of zero or less yields an empty sequence.
func GeneratePrimes(count int) Sequence {
	if count <= 0 {
		return Sequence{}
	}
	primes := make(Sequence, 0, count)
	for n := int64(2); len(primes) < count; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

// IsPrime reports whether n is prime using trial division up to sqrt(n).
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// GenerateEvens returns 2, 4, 6, ... truncated to count elements.
// A count of zero or less yields an empty sequence.
func GenerateEvens(count int) Sequence {
	if count <= 0 {
		return Sequence{}
	}
	evens := make(Sequence, count)
	for i := range evens {
		evens[i] = int64(2 * (i + 1))
	}
	return evens
}

// Generate produces a locally computed sequence for kind.
// Only KindPrime and KindEven are local; other kinds return ErrInvalidSourceKind.
func Generate(kind SourceKind, count int) (Sequence, error) {
	switch kind {
	case KindPrime:
		return GeneratePrimes(count), nil
	case KindEven:
		return GenerateEvens(count), nil
	default:
		return nil, fmt.Errorf("%w: %q is not generated locally", ErrInvalidSourceKind, kind)
	}
}
