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
	"math"
	"math/big"
	"testing"
)

func Test_continuedFraction(t *testing.T) {
	type args struct {
		a, b, prev, prev2, maxDenominator uint64
	}
	tests := []struct {
		name    string
		args    args
		wantNum uint64
		wantDen uint64
	}{
		{
			name:    "base case",
			args:    args{a: 10, b: 1, prev: 1, maxDenominator: 100},
			wantNum: 10,
			wantDen: 1,
		},
		{
			name:    "null case",
			args:    args{a: 0, b: 1, prev: 1, maxDenominator: 100},
			wantNum: 0,
			wantDen: 1,
		},
		{
			name:    "exact division",
			args:    args{a: 63, b: 9, prev: 0, prev2: 1, maxDenominator: 10},
			wantNum: 7,
			wantDen: 1,
		},
		{
			name:    "exact answer",
			args:    args{a: 23, b: 5, prev: 0, prev2: 1, maxDenominator: 10},
			wantNum: 23,
			wantDen: 5,
		},
		{
			name:    "limited depth",
			args:    args{a: 2300, b: 500, prev: 0, prev2: 1, maxDenominator: 7},
			wantNum: 23,
			wantDen: 5,
		},
		{
			name:    "less limited depth",
			args:    args{a: 2301, b: 500, prev: 0, prev2: 1, maxDenominator: 97},
			wantNum: 23,
			wantDen: 5,
		},
		{
			name:    "almost unlimited depth",
			args:    args{a: 451, b: 98, prev: 0, prev2: 1, maxDenominator: 99},
			wantNum: 451,
			wantDen: 98,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNum, gotDen := continuedFraction(tt.args.a, tt.args.b, tt.args.prev, tt.args.prev2, tt.args.maxDenominator)
			if gotNum != tt.wantNum || gotDen != tt.wantDen {
				t.Errorf("continuedFraction() = %d/%d, want %d/%d", gotNum, gotDen, tt.wantNum, tt.wantDen)
			}
		})
	}
}

func Test_convergents(t *testing.T) {
	steps := [][]uint64{
		{5, 3, 1},
		{7, 22, 7},
		{105, 22, 7},
		{106, 333, 106},
		{113, 355, 113},
		{33000, 355, 113},
		{33102, 103993, 33102},
		{33215, 104348, 33215},
		{50000, 104348, 33215},
		{100_000, 312689, 99532},
		{100_000_000, 219684069, 69927611},
		{100_000_000_000, 157079632679, 50000000000},
	}
	x := big.NewRat(314159265358, 100_000_000_000)
	last := big.NewRat(10, 1)
	for _, step := range steps {
		num, den := continuedFraction(314159265358, 100_000_000_000, 0, 1, step[0])
		if num != step[1] || den != step[2] {
			t.Errorf("%d => %d/%d, but wanted %d/%d", step[0], num, den, step[1], step[2])
			continue
		}
		// the residual is too small for floating point at the end of the table
		eps := new(big.Rat).Sub(big.NewRat(int64(num), int64(den)), x)
		eps.Abs(eps)
		if eps.Cmp(last) > 0 {
			t.Errorf("at %d, error increased from %s to %s", step[0], last.FloatString(15), eps.FloatString(15))
		}
		last = eps
	}
}

func Test_NearestFraction(t *testing.T) {
	type args struct {
		a, b, maxDenominator uint64
	}
	tests := []struct {
		name    string
		args    args
		wantNum uint64
		wantDen uint64
		wantEps float64
	}{
		{"exact division", args{a: 3879 * 1712, b: 1712, maxDenominator: 20}, 3879, 1, 0},
		{"famous pi", args{a: uint64(math.Round(math.Pi * 3879)), b: 3879, maxDenominator: 100}, 22, 7, math.Round(math.Pi*3879)/3879 - 22.0/7.0},
		{"famous pi, larger", args{a: uint64(math.Round(math.Pi * 3879)), b: 3879, maxDenominator: 110}, 333, 106, math.Round(math.Pi*3879)/3879 - 333.0/106.0},
		{"divider fraction", args{a: 600_000_000_000, b: 1_000_000_000_000, maxDenominator: 1<<20 - 1}, 3, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNum, gotDen, gotEps := NearestFraction(tt.args.a, tt.args.b, tt.args.maxDenominator)
			if gotNum != tt.wantNum || gotDen != tt.wantDen {
				t.Errorf("NearestFraction() = %d/%d, want %d/%d", gotNum, gotDen, tt.wantNum, tt.wantDen)
			}
			if gotEps != tt.wantEps {
				t.Errorf("NearestFraction() eps = %v, want %v", gotEps, tt.wantEps)
			}
		})
	}
}
