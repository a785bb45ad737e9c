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

package si5351

import (
	"fmt"
	"math"
	"math/big"

	"si5351plan/src/support"
)

/*
Solve finds PLL and multisynth ratios that produce `target` Hz from a `reference`
Hz crystal or clock input (typically 25 or 27MHz).

Integer ratios are tried first because they give the lowest jitter. The exact
ratio target/reference is scaled by the smallest integer that puts the VCO in
the 600..900MHz band and accepted if the resulting dividers are legal.

Otherwise a fractional PLL ratio is used with an integer multisynth divider.
Below 112.5MHz the VCO band is swept upwards in SweepSamples steps and the first
VCO frequency that reaches the target within Accuracy wins. Above that the
multisynth divider has to be 6 or, from 150MHz, 4.

The result is a fresh value; Solve has no state and may be called from any
number of goroutines.
*/
func Solve(target, reference float64) (DividerSetting, error) {
	if !(target >= MinOutputFreq && target <= MaxOutputFreq) {
		vlogf(1, "output frequency %v Hz is out of range", target)
		return DividerSetting{}, fmt.Errorf("%w: %v Hz", ErrOutOfRange, target)
	}
	p, q, err := support.Approximate(target, reference)
	if err != nil {
		return DividerSetting{}, err
	}
	vlogf(1, "finding Si5351 setting for %.6f MHz", target/1e6)
	r := postDivider(target)

	if s, ok := integerSetting(p, q, reference, r); ok {
		vlogf(1, "integer mode: %v, VCO %.6f MHz", s, s.VCO(reference)/1e6)
		return s, nil
	}

	s, err := fractionalSetting(target, reference, r)
	if err != nil {
		return DividerSetting{}, err
	}
	vlogf(1, "fractional mode: %v, VCO %.6f MHz, error %.3g Hz",
		s, s.VCO(reference)/1e6, s.Error(target, reference))
	if err := validate(s); err != nil {
		vlogf(1, "rejected: %v", err)
		return DividerSetting{}, err
	}
	return s, nil
}

// postDivider keeps the multisynth output above 1MHz for low targets.
func postDivider(target float64) uint32 {
	if target > PostDividerFreq {
		return 1
	}
	n := int(math.Ceil(math.Log2(500e3) - math.Log2(target) + 1))
	if n < 0 {
		n = 0
	}
	return 1 << n
}

func integerSetting(p, q *big.Int, reference float64, r uint32) (DividerSetting, bool) {
	ref := new(big.Rat).SetFloat64(reference)
	perMultiple := new(big.Rat).Mul(ref, new(big.Rat).SetInt(p))

	// the first multiple k with reference*p*k >= MinVCOFreq
	lower := new(big.Rat).Quo(new(big.Rat).SetFloat64(MinVCOFreq), perMultiple)
	k := new(big.Int).Add(lower.Num(), lower.Denom())
	k.Sub(k, big.NewInt(1))
	k.Quo(k, lower.Denom())
	if k.Sign() <= 0 {
		k.SetInt64(1)
	}

	vco := new(big.Rat).Mul(perMultiple, new(big.Rat).SetInt(k))
	if vco.Cmp(new(big.Rat).SetFloat64(MaxVCOFreq)) > 0 {
		vlogf(2, "integer mode: VCO %s Hz overshoots", vco.FloatString(3))
		return DividerSetting{}, false
	}

	a := new(big.Int).Mul(p, k)
	d, rem := new(big.Int).QuoRem(new(big.Int).Mul(q, k), big.NewInt(int64(r)), new(big.Int))
	if rem.Sign() != 0 {
		vlogf(2, "integer mode: %s is not divisible by R = %d", new(big.Int).Mul(q, k), r)
		return DividerSetting{}, false
	}
	if !a.IsInt64() || a.Int64() < MinPllDivider || a.Int64() > MaxPllDivider {
		vlogf(2, "integer mode: a = %s out of range", a)
		return DividerSetting{}, false
	}
	if !d.IsInt64() || !integerMultisynth(d.Int64()) {
		vlogf(2, "integer mode: d = %s out of range", d)
		return DividerSetting{}, false
	}
	return DividerSetting{A: uint32(a.Int64()), B: 0, C: 1, D: uint32(d.Int64()), E: 0, F: 1, R: r}, true
}

func integerMultisynth(d int64) bool {
	return (d == 4 || d == 6 || d >= 8) && d < MaxMultisynthDivider
}

func fractionalSetting(target, reference float64, r uint32) (DividerSetting, error) {
	if target > SweepLimitFreq {
		d := uint32(6)
		if target >= DivideByFourFreq {
			d, r = 4, 1
		}
		s := feedback(target, reference, d, r, fixedFraction)
		if !withinAccuracy(s, target, reference) {
			s = feedback(target, reference, d, r, nearestFraction)
		}
		if !withinAccuracy(s, target, reference) {
			return DividerSetting{}, fmt.Errorf("%w: %v Hz is off by %.3g Hz with d = %d",
				ErrOutOfRange, target, s.Error(target, reference), d)
		}
		return s, nil
	}

	// the fixed denominator goes first so its scan order decides whenever it can
	for _, fraction := range []fractionFunc{fixedFraction, nearestFraction} {
		if s, ok := sweep(target, reference, r, fraction); ok {
			return s, nil
		}
	}
	return DividerSetting{}, fmt.Errorf("%w: no VCO frequency reaches %v Hz within %v Hz", ErrOutOfRange, target, Accuracy)
}

// sweep returns the setting for the lowest sampled VCO frequency that hits the target.
func sweep(target, reference float64, r uint32, fraction fractionFunc) (DividerSetting, bool) {
	step := (MaxVCOFreq - MinVCOFreq) / (SweepSamples - 1)
	for i := 0; i < SweepSamples; i++ {
		vco := MinVCOFreq + float64(i)*step
		d := math.Floor(vco / (target * float64(r)))
		if d < 8 || d > 2048 {
			continue
		}
		s := feedback(target, reference, uint32(d), r, fraction)
		if withinAccuracy(s, target, reference) && s.VCO(reference) >= MinVCOFreq {
			return s, true
		}
	}
	return DividerSetting{}, false
}

type fractionFunc func(x float64) (b, c uint32)

func fixedFraction(x float64) (b, c uint32) {
	return uint32(math.Round(x * FractionalDenominator)), FractionalDenominator
}

func nearestFraction(x float64) (b, c uint32) {
	num, den, _ := support.NearestFraction(uint64(math.Round(x*1e12)), 1_000_000_000_000, MaxDenominator)
	return uint32(num), uint32(den)
}

// feedback computes a + b/c for an integer multisynth divider d.
func feedback(target, reference float64, d, r uint32, fraction fractionFunc) DividerSetting {
	fmd := float64(r) * float64(d) * target / reference
	whole := math.Floor(fmd)
	b, c := fraction(fmd - whole)
	if b >= c {
		whole++
		b -= c
	}
	a := uint32(math.MaxUint32)
	if whole < math.MaxUint32 {
		a = uint32(whole)
	}
	return DividerSetting{A: a, B: b, C: c, D: d, E: 0, F: 1, R: r}
}

func withinAccuracy(s DividerSetting, target, reference float64) bool {
	return math.Abs(s.Error(target, reference)) <= Accuracy
}

func validate(s DividerSetting) error {
	switch {
	case s.A < MinPllDivider || s.A > MaxPllDivider:
		return fmt.Errorf("%w: a = %d", ErrPllDividerRange, s.A)
	case s.B > MaxNumerator:
		return fmt.Errorf("%w: b = %d", ErrPllNumeratorRange, s.B)
	case s.D < MinMultisynthDivider || s.D > MaxMultisynthDivider || s.D == 5 || s.D == 7:
		return fmt.Errorf("%w: d = %d", ErrMultisynthDividerRange, s.D)
	case s.E > MaxNumerator:
		return fmt.Errorf("%w: e = %d", ErrMultisynthNumeratorRange, s.E)
	}
	return nil
}
