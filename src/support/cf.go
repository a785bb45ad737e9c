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

/*
NearestFraction finds the best approximation num/den ≈ a/b with den <= maxDenominator.

It returns num, den and the residual a/b - num/den as floating point.

The divider stages of a clock generator take a ratio of the form n + p/q with
q < 2^20. Pinning q at 2^20-1 and rounding p leaves a quantization error of up
to half a count in the fractional part which, seen through a 25MHz reference
and a small output divider, can be more than a hertz at the output. The
convergents of the continued fraction of the same value are the best rational
approximations for their denominator, so choosing the last convergent whose
denominator still fits gives errors in the micro-hertz range instead.
*/
func NearestFraction(a, b, maxDenominator uint64) (num, den uint64, eps float64) {
	num, den = continuedFraction(a, b, 0, 1, maxDenominator)
	eps = float64(a)/float64(b) - float64(num)/float64(den)
	return num, den, eps
}

/*
continuedFraction expands a/b one term at a time and folds the terms back into
a single fraction on the way out of the recursion.

Each level peels off the integer part

	a/b = floor(a/b) + rem/b = floor(a/b) + 1 / (b/rem)

and recurses on b/rem. To stop before the denominator gets too big we carry the
denominators of the two previous convergents (prev, prev2, starting at 0 and 1).
The denominator of the next convergent is prev2 + term*prev; once that passes
maxDenominator the level returns 1/0 which makes its caller collapse to just
its own term.
*/
func continuedFraction(a, b, prev, prev2, maxDenominator uint64) (num, den uint64) {
	term := a / b
	next := prev2 + term*prev
	if next > maxDenominator {
		return 1, 0
	}
	rem := a - term*b
	if rem == 0 {
		return term, 1
	}
	// a/b = term + 1/(cn/cd) = (term*cn + cd) / cn
	cn, cd := continuedFraction(b, rem, next, prev, maxDenominator)
	return term*cn + cd, cn
}
