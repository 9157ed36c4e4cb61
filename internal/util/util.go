//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package util collects small, dependency-light helpers shared across the
// engine's packages: branchless numeric helpers, timing/memory diagnostics,
// and the handful of character classifiers FEN/SAN parsing needs.
package util

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// localePrinter formats diagnostic output (large node counts, memory
// figures) with thousands separators so perft/search logs stay readable.
var localePrinter = message.NewPrinter(language.German)

// Abs returns the absolute value of n without a branch.
func Abs(n int) int {
	mask := n >> 31
	return (n ^ mask) - mask
}

// Abs16 is Abs for int16.
func Abs16(n int16) int16 {
	mask := n >> 15
	return (n ^ mask) - mask
}

// Abs64 is Abs for int64.
func Abs64(n int64) int64 {
	mask := n >> 63
	return (n ^ mask) - mask
}

// Min returns the smaller of x and y.
func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Min64 is Min for int64.
func Min64(x, y int64) int64 {
	if x < y {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Max64 is Max for int64.
func Max64(x, y int64) int64 {
	if x > y {
		return x
	}
	return y
}

// Clamp restricts n to the closed interval [lo, hi].
func Clamp(n, lo, hi int) int {
	return Max(lo, Min(n, hi))
}

// TimeTrack logs how long has elapsed since start, labelled with name.
// Usage: defer util.TimeTrack(time.Now(), "some text")
func TimeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	_, _ = localePrinter.Printf("%s took %d ns\n", name, elapsed.Nanoseconds())
}

// Nps converts a node count and the search duration that produced it into
// nodes per second, treating a zero duration as one nanosecond to avoid
// dividing by zero.
func Nps(nodes uint64, duration time.Duration) uint64 {
	return uint64(int64(nodes) * time.Second.Nanoseconds() / (duration.Nanoseconds() + 1))
}

// MemStat renders the current heap allocation and GC counters.
func MemStat() string {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return localePrinter.Sprintf("Alloc: %d TotalAlloc: %d HeapAlloc: %d HeapObjects: %d NumGC: %d",
		mem.Alloc, mem.TotalAlloc, mem.HeapAlloc, mem.HeapObjects, mem.NumGC)
}

// GcWithStats forces a garbage collection cycle and reports memory stats
// from immediately before and after it, plus how long the cycle took.
func GcWithStats() string {
	var report strings.Builder
	fmt.Fprintf(&report, "Mem stats: %s ", MemStat())
	startGC := time.Now()
	runtime.GC()
	elapsed := time.Since(startGC)
	fmt.Fprintf(&report, "GC took: %d ms ", elapsed.Milliseconds())
	fmt.Fprintf(&report, "Mem stats: %s", MemStat())
	return report.String()
}

// IsAlpha reports whether l is an ASCII letter.
func IsAlpha(l uint8) bool {
	return (l >= 'a' && l <= 'z') || (l >= 'A' && l <= 'Z')
}

// IsLower reports whether l is an ASCII lower case letter.
func IsLower(l uint8) bool {
	return l >= 'a' && l <= 'z'
}

// IsDigit reports whether l is an ASCII digit.
func IsDigit(l uint8) bool {
	return l >= '0' && l <= '9'
}
