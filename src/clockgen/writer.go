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

package clockgen

import (
	"fmt"
	"sync"

	"tinygo.org/x/drivers"

	"si5351plan/src/si5351"
)

/*
Writer puts solved settings into a Si5351 over an I2C bus.

Each parameter block goes out as a single burst starting at its base register.
A Writer serializes its own register sequences so that one chip never sees two
half-written settings interleaved; two Writers for the same chip do not
coordinate. Bus errors are returned as they are, nothing is retried.
*/
type Writer struct {
	bus     drivers.I2C
	address uint16
	mu      sync.Mutex
}

// New returns a Writer for a chip at the default address.
func New(bus drivers.I2C) *Writer {
	return NewAt(bus, si5351.I2CAddress)
}

// NewAt returns a Writer for a chip strapped to another address.
func NewAt(bus drivers.I2C, address uint16) *Writer {
	return &Writer{bus: bus, address: address}
}

// SetFrequency solves for target Hz and applies the result to one output.
func (w *Writer) SetFrequency(pll si5351.PllSelection, output uint8, target, reference float64) (si5351.DividerSetting, error) {
	s, err := si5351.Solve(target, reference)
	if err != nil {
		return si5351.DividerSetting{}, err
	}
	return s, w.Apply(pll, output, s)
}

// Apply programs the PLL, resets it, programs the output multisynth and enables
// the output. Everything is encoded before the first write, so a setting that
// can not be represented leaves the chip untouched.
func (w *Writer) Apply(pll si5351.PllSelection, output uint8, s si5351.DividerSetting) error {
	ratio, err := s.Multisynth()
	if err != nil {
		return err
	}
	pllWrites, err := pllBursts(pll, s.Pll())
	if err != nil {
		return err
	}
	msWrites, err := multisynthBursts(output, pll, ratio)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.writeAll(append(pllWrites, msWrites...)); err != nil {
		return err
	}
	return w.enableOutput(output, true)
}

// SetupPll programs one PLL and resets both.
func (w *Writer) SetupPll(pll si5351.PllSelection, r si5351.PllRatio) error {
	writes, err := pllBursts(pll, r)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeAll(writes)
}

// SetupMultisynth programs the divider of one output and points its clock
// control at the given PLL.
func (w *Writer) SetupMultisynth(output uint8, pll si5351.PllSelection, m si5351.MultisynthRatio) error {
	writes, err := multisynthBursts(output, pll, m)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeAll(writes)
}

// EnableOutput sets or clears the disable bit of one output, leaving the others alone.
func (w *Writer) EnableOutput(output uint8, enable bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enableOutput(output, enable)
}

// burst is one register write, data goes to reg and the registers after it.
type burst struct {
	reg  uint8
	data []byte
}

func pllBursts(pll si5351.PllSelection, r si5351.PllRatio) ([]burst, error) {
	base, err := si5351.PllBase(pll)
	if err != nil {
		return nil, err
	}
	fields, err := si5351.EncodePll(r)
	if err != nil {
		return nil, err
	}
	block := fields.Bytes()
	return []burst{
		{base, block[:]},
		{si5351.RegPllReset, []byte{si5351.PllResetBoth}},
	}, nil
}

func multisynthBursts(output uint8, pll si5351.PllSelection, m si5351.MultisynthRatio) ([]burst, error) {
	base, err := si5351.MultisynthBase(output)
	if err != nil {
		return nil, err
	}
	control, err := si5351.ClockControl(output)
	if err != nil {
		return nil, err
	}
	regs, err := si5351.EncodeMultisynth(m)
	if err != nil {
		return nil, err
	}
	block := regs.Bytes()
	return []burst{
		{base, block[:]},
		{control, []byte{si5351.ClockControlByte(pll, regs.Integer)}},
	}, nil
}

func (w *Writer) writeAll(writes []burst) error {
	for _, b := range writes {
		if err := w.write(b.reg, b.data...); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) enableOutput(output uint8, enable bool) error {
	if output >= si5351.NumOutputs {
		return fmt.Errorf("%w: clock %d", si5351.ErrUnknownOutput, output)
	}
	current, err := w.read(si5351.RegOutputEnable)
	if err != nil {
		return err
	}
	// a set bit disables the output
	mask := byte(1) << output
	if enable {
		current &^= mask
	} else {
		current |= mask
	}
	return w.write(si5351.RegOutputEnable, current)
}

func (w *Writer) write(reg uint8, data ...byte) error {
	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, reg)
	buf = append(buf, data...)
	if err := w.bus.Tx(w.address, buf, nil); err != nil {
		return fmt.Errorf("clockgen: writing register %d: %w", reg, err)
	}
	return nil
}

func (w *Writer) read(reg uint8) (byte, error) {
	var v [1]byte
	if err := w.bus.Tx(w.address, []byte{reg}, v[:]); err != nil {
		return 0, fmt.Errorf("clockgen: reading register %d: %w", reg, err)
	}
	return v[0], nil
}
