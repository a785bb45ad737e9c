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
	"errors"

	"si5351plan/src/support"
)

var (
	// ErrDomain is returned for a non-positive or non-finite frequency.
	ErrDomain = support.ErrDomain
	// ErrOutOfRange is returned when the target is outside the output band or
	// when no combination of dividers reaches it within Accuracy.
	ErrOutOfRange = errors.New("si5351: output frequency out of range")

	ErrPllDividerRange          = errors.New("si5351: PLL divider out of range")
	ErrPllNumeratorRange        = errors.New("si5351: PLL fractional numerator out of range")
	ErrMultisynthDividerRange   = errors.New("si5351: multisynth divider out of range")
	ErrMultisynthNumeratorRange = errors.New("si5351: multisynth fractional numerator out of range")

	// ErrEncodingOverflow means a ratio does not fit the P1/P2/P3 register fields.
	ErrEncodingOverflow = errors.New("si5351: register field overflow")
	ErrUnknownOutput    = errors.New("si5351: no such output")
	ErrUnknownPll       = errors.New("si5351: no such PLL")
)
