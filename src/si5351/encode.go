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
	"math/bits"
)

// PackedRegisterFields holds a divider ratio n + p/q in the chip's fixed point form.
// P1 is 18 bits wide, P2 and P3 are 20 bits wide.
type PackedRegisterFields struct {
	P1, P2, P3 uint32
}

// MultisynthRegisters is everything the parameter block of a multisynth needs.
type MultisynthRegisters struct {
	Fields    PackedRegisterFields
	DivideBy4 bool
	RDiv      uint8 // log2(R), 3 bits
	Integer   bool  // no fractional part, sets the integer mode bit in clock control
}

var divideByFourFields = PackedRegisterFields{P1: 0, P2: 0, P3: 1}

// EncodePll packs a PLL feedback ratio. PLLs have no divide-by-4 mode.
func EncodePll(r PllRatio) (PackedRegisterFields, error) {
	f, err := encodeRatio(r.A, r.B, r.C)
	if err != nil {
		return PackedRegisterFields{}, fmt.Errorf("PLL %d + %d/%d: %w", r.A, r.B, r.C, err)
	}
	return f, nil
}

// EncodeMultisynth packs an output divider. DivideByFour, or a GeneralRatio
// of exactly 4 with no fraction and R = 1, becomes the fixed sentinel fields
// with the R field forced to 0.
func EncodeMultisynth(m MultisynthRatio) (MultisynthRegisters, error) {
	switch m := m.(type) {
	case DivideByFour:
		return MultisynthRegisters{Fields: divideByFourFields, DivideBy4: true, RDiv: 0, Integer: true}, nil
	case GeneralRatio:
		if m.D == 4 {
			// the chip only divides by 4 through the DIVBY4 bits
			if m.E != 0 || m.R != 1 {
				return MultisynthRegisters{}, fmt.Errorf("%w: divide by 4 with e = %d, R = %d", ErrEncodingOverflow, m.E, m.R)
			}
			return EncodeMultisynth(DivideByFour{})
		}
		rDiv, ok := rDivBits(m.R)
		if !ok {
			return MultisynthRegisters{}, fmt.Errorf("%w: R = %d is not a power of two up to 128", ErrEncodingOverflow, m.R)
		}
		f, err := encodeRatio(m.D, m.E, m.F)
		if err != nil {
			return MultisynthRegisters{}, fmt.Errorf("multisynth %d + %d/%d: %w", m.D, m.E, m.F, err)
		}
		return MultisynthRegisters{Fields: f, RDiv: rDiv, Integer: m.E == 0}, nil
	default:
		return MultisynthRegisters{}, fmt.Errorf("%w: unknown multisynth ratio %T", ErrEncodingOverflow, m)
	}
}

/*
encodeRatio applies

	P1 = floor(128*n + 128*p/q) - 512
	P2 = 128*p - q*floor(128*p/q)
	P3 = q

in integer arithmetic. Callers are not trusted, every field is range checked.
*/
func encodeRatio(n, p, q uint32) (PackedRegisterFields, error) {
	if q == 0 || q > MaxDenominator {
		return PackedRegisterFields{}, fmt.Errorf("%w: denominator %d", ErrEncodingOverflow, q)
	}
	if p >= q {
		return PackedRegisterFields{}, fmt.Errorf("%w: numerator %d not below denominator %d", ErrEncodingOverflow, p, q)
	}
	frac := 128 * uint64(p) / uint64(q)
	p1 := 128*int64(n) + int64(frac) - 512
	p2 := 128*uint64(p) - uint64(q)*frac
	if p1 < 0 || p1 >= 1<<18 {
		return PackedRegisterFields{}, fmt.Errorf("%w: P1 = %d", ErrEncodingOverflow, p1)
	}
	if p2 >= 1<<20 {
		return PackedRegisterFields{}, fmt.Errorf("%w: P2 = %d", ErrEncodingOverflow, p2)
	}
	return PackedRegisterFields{P1: uint32(p1), P2: uint32(p2), P3: q}, nil
}

// DecodeRatio recovers n + p/q from fields produced by the general formula.
func DecodeRatio(f PackedRegisterFields) (n, p, q uint32, err error) {
	if f.P1 >= 1<<18 || f.P2 >= 1<<20 || f.P3 == 0 || f.P3 >= 1<<20 {
		return 0, 0, 0, fmt.Errorf("%w: %+v", ErrEncodingOverflow, f)
	}
	if f.P2 >= f.P3 {
		return 0, 0, 0, fmt.Errorf("%w: P2 %d not below P3 %d", ErrEncodingOverflow, f.P2, f.P3)
	}
	x := uint64(f.P1) + 512
	scaled := uint64(f.P3)*(x%128) + uint64(f.P2)
	if scaled%128 != 0 {
		return 0, 0, 0, fmt.Errorf("%w: %+v is not a general ratio", ErrEncodingOverflow, f)
	}
	return uint32(x / 128), uint32(scaled / 128), f.P3, nil
}

func rDivBits(r uint32) (uint8, bool) {
	if r == 0 || r > 128 || r&(r-1) != 0 {
		return 0, false
	}
	return uint8(bits.TrailingZeros32(r)), true
}
