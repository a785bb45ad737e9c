//go:build rp2040

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

package main

import (
	"fmt"
	"machine"
	"time"

	drv "github.com/chiefMarlin/tinygo-drivers/si5351"

	"si5351plan/src/clockgen"
	"si5351plan/src/si5351"
)

const (
	reference = si5351.Crystal25MHz
	// WSPR dial frequency on 20m plus the 1500Hz audio offset
	target = 14_097_100.0
)

func main() {
	time.Sleep(1000 * time.Millisecond)

	err := machine.I2C0.Configure(machine.I2CConfig{})
	if err != nil {
		panic("Failed to configure I2C0")
	}

	// the stock driver handles probing, power-down and crystal load
	chip := drv.New(machine.I2C0)
	connected, err := chip.Connected()
	if err != nil {
		panic("Unable to read device status")
	}
	if !connected {
		panic("Unable to connect to SI5351 device")
	}
	err = chip.Configure()
	if err != nil {
		panic("Unable to configure device")
	}

	w := clockgen.New(machine.I2C0)
	s, err := w.SetFrequency(si5351.PllA, 0, target, reference)
	if err != nil {
		panic(fmt.Errorf("unable to configure output %v", err))
	}
	fmt.Printf("PLL A frequency: %.6f MHz\n", s.VCO(reference)/1e6)
	fmt.Printf("Clock 0: %.3f Hz (%v), error %.2g Hz\n", s.Frequency(reference), s, s.Error(target, reference))

	err = chip.EnableOutputs()
	if err != nil {
		panic("Unable to enable outputs")
	}
	for {
		time.Sleep(time.Hour)
	}
}
