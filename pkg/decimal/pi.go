package decimal

import (
	"math/big"
	"sync"
)

// guardDigits is the extra working precision carried through the Machin
// series so the final truncation to the requested digit count is exact.
const guardDigits = 10

var piCache = struct {
	sync.Mutex
	byDigits map[int]*big.Int
}{byDigits: make(map[int]*big.Int)}

// PiScaled returns floor(π·10^digits). Values are computed once per digit
// count with Machin's formula and cached for the life of the process; the
// cache is safe for concurrent callers.
func PiScaled(digits int) *big.Int {
	piCache.Lock()
	defer piCache.Unlock()

	if v, ok := piCache.byDigits[digits]; ok {
		return new(big.Int).Set(v)
	}
	v := machinPi(digits)
	piCache.byDigits[digits] = v
	return new(big.Int).Set(v)
}

// machinPi evaluates π = 16·atan(1/5) − 4·atan(1/239) at digits+guardDigits
// scaled precision, then drops the guard digits.
func machinPi(digits int) *big.Int {
	work := pow10(digits + guardDigits)

	pi := new(big.Int).Mul(big.NewInt(16), atanInvScaled(5, work))
	pi.Sub(pi, new(big.Int).Mul(big.NewInt(4), atanInvScaled(239, work)))

	return pi.Quo(pi, pow10(guardDigits))
}

// atanInvScaled computes atan(1/q)·scale by the alternating Taylor series,
// stopping at the first term that truncates to zero.
func atanInvScaled(q int64, scale *big.Int) *big.Int {
	sum := new(big.Int)
	qq := big.NewInt(q * q)

	// running power q^(2k+1)
	power := new(big.Int).Set(big.NewInt(q))

	for k := int64(0); ; k++ {
		den := new(big.Int).Mul(power, big.NewInt(2*k+1))
		term := new(big.Int).Quo(scale, den)
		if term.Sign() == 0 {
			break
		}
		if k%2 == 0 {
			sum.Add(sum, term)
		} else {
			sum.Sub(sum, term)
		}
		power.Mul(power, qq)
	}
	return sum
}
