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

// Package config holds the engine's globally available configuration,
// populated from defaults, overridden by an optional TOML file, and finally
// overridden again by command line flags (in that order of precedence).
package config

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/frankkopp/FrankyGo/internal/util"
)

// Package-level knobs that control configuration loading itself; these sit
// outside Settings because they must be known before a config file can even
// be located.
var (
	// ConfFile is the path to the TOML config file, relative to the
	// working directory unless absolute.
	ConfFile = "./config.toml"

	// LogLevel is the general log level, overridable via cmd line or config file.
	LogLevel = 5

	// SearchLogLevel is the search-specific log level.
	SearchLogLevel = 5

	// TestLogLevel is the log level used by test-suite runs.
	TestLogLevel = 5

	// Settings holds the fully resolved configuration after Setup runs.
	Settings engineConfig

	setupDone = false
)

// engineConfig groups the three independently-loadable configuration
// sections the engine cares about.
type engineConfig struct {
	Log    logConfiguration
	Search searchConfiguration
	Eval   evalConfiguration
}

// Setup loads the config file named by ConfFile (falling back silently to
// defaults if it cannot be found or parsed) and then derives the runtime
// log levels, search parameters, and eval parameters from the result.
// Calling Setup more than once is a no-op.
func Setup() {
	if setupDone {
		return
	}
	defer func() { setupDone = true }()

	path, err := util.ResolveFile(ConfFile)
	if err != nil {
		log.Println("config file not found, using defaults:", err)
	} else if _, err := toml.DecodeFile(path, &Settings); err != nil {
		log.Println("config file could not be parsed, using defaults:", err)
	}

	setupLogLvl()
	setupSearch()
	setupEval()
}

// String renders the resolved search and eval settings via reflection, one
// field per line, for diagnostic printing at startup.
func (settings *engineConfig) String() string {
	var b strings.Builder
	writeFields := func(title string, v interface{}) {
		fmt.Fprintf(&b, "%s:\n", title)
		val := reflect.ValueOf(v).Elem()
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			fmt.Fprintf(&b, "%-2d: %-22s %-6s = %v\n", i, typ.Field(i).Name, val.Field(i).Type(), val.Field(i).Interface())
		}
	}
	writeFields("Search Config", &settings.Search)
	b.WriteString("\n")
	writeFields("Evaluation Config", &settings.Eval)
	return b.String()
}
