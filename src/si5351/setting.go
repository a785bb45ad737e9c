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

import "fmt"

// Chip limits. Frequencies are in Hz.
const (
	MinOutputFreq = 8192.0
	MaxOutputFreq = 200e6
	MinVCOFreq    = 600e6
	MaxVCOFreq    = 900e6

	// above this the multisynth runs at 6 or 4 and no sweep is needed
	SweepLimitFreq = 112.5e6
	// at or above this only divide-by-4 reaches the output
	DivideByFourFreq = 150e6
	// outputs at or below this use the R post-divider
	PostDividerFreq = 1e6

	// Accuracy is the largest acceptable |target - actual| in Hz.
	Accuracy = 0.1

	MinPllDivider        = 15
	MaxPllDivider        = 90
	MinMultisynthDivider = 4
	MaxMultisynthDivider = 900
	MaxNumerator         = 1<<20 - 1
	MaxDenominator       = 1<<20 - 1

	// FractionalDenominator is the fixed c used by the fractional search.
	FractionalDenominator = 1_048_575
	// SweepSamples is the number of VCO frequencies tried, both ends included.
	SweepSamples = 1000

	Crystal25MHz = 25e6
	Crystal27MHz = 27e6
)

// PllSelection picks which PLL feeds an output.
type PllSelection uint8

const (
	PllA PllSelection = iota
	PllB
)

func (p PllSelection) String() string {
	switch p {
	case PllA:
		return "PLLA"
	case PllB:
		return "PLLB"
	default:
		return fmt.Sprintf("PLL(%d)", uint8(p))
	}
}

/*
DividerSetting is a complete plan for one output. The PLL runs at
reference * (A + B/C) and the output is that divided by (D + E/F) and then by R.

A DividerSetting is produced by Solve and never adjusted afterwards; register
fields are derived from it with EncodePll and EncodeMultisynth each time they
are needed.
*/
type DividerSetting struct {
	A, B, C uint32 // PLL feedback ratio
	D, E, F uint32 // multisynth ratio
	R       uint32 // output post-divider, a power of two from 1 to 128
}

// PllRatio is the feedback part of a setting.
type PllRatio struct {
	A, B, C uint32
}

// MultisynthRatio is either a GeneralRatio or DivideByFour.
type MultisynthRatio interface {
	multisynth()
}

// GeneralRatio is any multisynth ratio that goes through the P1/P2/P3 formula.
type GeneralRatio struct {
	D, E, F uint32
	R       uint32
}

// DivideByFour is the hardware fast path. It has no fraction and no post-divider.
type DivideByFour struct{}

func (GeneralRatio) multisynth() {}
func (DivideByFour) multisynth() {}

func (s DividerSetting) Pll() PllRatio {
	return PllRatio{A: s.A, B: s.B, C: s.C}
}

// Multisynth returns DivideByFour when D is 4, otherwise the general ratio.
// A D of 4 with a fraction or a post-divider has no register encoding.
func (s DividerSetting) Multisynth() (MultisynthRatio, error) {
	if s.D == 4 {
		if s.E != 0 || s.R != 1 {
			return nil, fmt.Errorf("%w: divide by 4 needs e = 0 and R = 1, got e = %d, R = %d",
				ErrMultisynthDividerRange, s.E, s.R)
		}
		return DivideByFour{}, nil
	}
	return GeneralRatio{D: s.D, E: s.E, F: s.F, R: s.R}, nil
}

// IntegerMode reports whether neither stage has a fractional part.
func (s DividerSetting) IntegerMode() bool {
	return s.B == 0 && s.E == 0
}

// VCO is the PLL frequency for the given reference.
func (s DividerSetting) VCO(reference float64) float64 {
	return reference * (float64(s.A) + float64(s.B)/float64(s.C))
}

// Frequency is the output frequency for the given reference.
func (s DividerSetting) Frequency(reference float64) float64 {
	return s.VCO(reference) / (float64(s.R) * (float64(s.D) + float64(s.E)/float64(s.F)))
}

// Error is target minus the actual output frequency.
func (s DividerSetting) Error(target, reference float64) float64 {
	return target - s.Frequency(reference)
}

func (s DividerSetting) String() string {
	return fmt.Sprintf("a = %d, b = %d, c = %d, d = %d, e = %d, f = %d, R = %d", s.A, s.B, s.C, s.D, s.E, s.F, s.R)
}
