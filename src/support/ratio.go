/*
 * Copyright 2025 Ted Dunning
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package support

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

// ErrDomain is returned when a frequency is zero, negative, infinite or NaN.
var ErrDomain = errors.New("frequency must be positive and finite")

/*
Approximate returns the exact ratio target/reference as a fraction p/q in lowest
terms.

Every float64 is a dyadic rational, so the conversion through big.Rat is exact
and the reduction by the GCD is exact as well. Scaling p and q by an integer k
afterwards gives precisely the same ratio, which is what lets the integer-mode
search step through multiples without accumulating error. Frequencies that are
not whole hertz tend to have enormous denominators; callers are expected to
notice that the multiples never land in range rather than have this function
round them.
*/
func Approximate(target, reference float64) (p, q *big.Int, err error) {
	if !positiveFinite(target) {
		return nil, nil, fmt.Errorf("%w: target %v", ErrDomain, target)
	}
	if !positiveFinite(reference) {
		return nil, nil, fmt.Errorf("%w: reference %v", ErrDomain, reference)
	}
	ratio := new(big.Rat).SetFloat64(target)
	ratio.Quo(ratio, new(big.Rat).SetFloat64(reference))
	// big.Rat keeps itself normalized, Num and Den share no factor
	return new(big.Int).Set(ratio.Num()), new(big.Int).Set(ratio.Denom()), nil
}

func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
