//go:build !tinygo

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
	"flag"
	"testing"
)

func Test_Solve_verbose(t *testing.T) {
	if err := flag.Set("logtostderr", "true"); err != nil {
		t.Fatalf("setting -logtostderr: %v", err)
	}
	if err := flag.Set("v", "2"); err != nil {
		t.Fatalf("setting -v: %v", err)
	}
	defer flag.Set("v", "0")

	// each of these goes down a different logging path
	for _, f := range []float64{100e6, 160e6, 8192, 1} {
		s, err := Solve(f, Crystal25MHz)
		if err == nil {
			checkSetting(t, s, f, Crystal25MHz)
		}
	}
	if _, err := Solve(10e6, 1e6); err == nil {
		t.Errorf("Solve(10MHz, 1MHz) should be rejected")
	}
}
