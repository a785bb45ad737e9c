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

// I2CAddress is the default 7-bit bus address.
const I2CAddress = 0x60

// Register addresses.
const (
	RegOutputEnable   = 3
	RegClk0Control    = 16
	RegPllAParameters = 26
	RegPllBParameters = 34
	RegMs0Parameters  = 42
	RegPllReset       = 177

	ParameterBlockSize = 8
	NumOutputs         = 8

	// MS6 and MS7 are integer only and laid out differently
	NumFractionalDividers = 6
)

// PllResetBoth resets PLLA and PLLB when written to RegPllReset.
const PllResetBoth = 1<<7 | 1<<5

// Clock control bits.
const (
	clkPowerUp8mA = 0x0f // 8mA drive, multisynth as source, not inverted, powered up
	clkPllB       = 1 << 5
	clkInteger    = 1 << 6
)

// PllBase is the first parameter register of PLLA or PLLB.
func PllBase(p PllSelection) (uint8, error) {
	switch p {
	case PllA:
		return RegPllAParameters, nil
	case PllB:
		return RegPllBParameters, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownPll, p)
	}
}

// MultisynthBase is the first parameter register of MS0..MS5.
func MultisynthBase(output uint8) (uint8, error) {
	if output >= NumFractionalDividers {
		return 0, fmt.Errorf("%w: multisynth %d", ErrUnknownOutput, output)
	}
	return RegMs0Parameters + ParameterBlockSize*output, nil
}

// ClockControl is the CLKn control register for CLK0..CLK7.
func ClockControl(output uint8) (uint8, error) {
	if output >= NumOutputs {
		return 0, fmt.Errorf("%w: clock %d", ErrUnknownOutput, output)
	}
	return RegClk0Control + output, nil
}

// ClockControlByte powers the output up from its own multisynth.
func ClockControlByte(pll PllSelection, integer bool) byte {
	v := byte(clkPowerUp8mA)
	if pll == PllB {
		v |= clkPllB
	}
	if integer {
		v |= clkInteger
	}
	return v
}

// Bytes lays the fields out as a PLL parameter block.
func (f PackedRegisterFields) Bytes() [ParameterBlockSize]byte {
	return f.block(0)
}

// Bytes lays the fields out as a multisynth parameter block, with the R divider
// and divide-by-4 bits sharing the third byte with the top of P1.
func (m MultisynthRegisters) Bytes() [ParameterBlockSize]byte {
	var extra byte
	if m.DivideBy4 {
		extra |= 3 << 2
	}
	extra |= (m.RDiv & 7) << 4
	return m.Fields.block(extra)
}

func (f PackedRegisterFields) block(extra byte) [ParameterBlockSize]byte {
	return [ParameterBlockSize]byte{
		byte(f.P3 >> 8),
		byte(f.P3),
		extra | byte(f.P1>>16)&0x03,
		byte(f.P1 >> 8),
		byte(f.P1),
		byte(f.P3>>12)&0xf0 | byte(f.P2>>16)&0x0f,
		byte(f.P2 >> 8),
		byte(f.P2),
	}
}
