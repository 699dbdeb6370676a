//
// Copyright (c) 2025 Matthew Pickle and `bmsync` contributors.
//
// All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// This file is part of bmsync.
//
// bmsync is free software: you can redistribute it and/or modify it under the terms of
// the GNU Affero General Public License as published by the Free Software Foundation,
// either version 3 of the License, or (at your option) any later version.
//
// bmsync is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
// PURPOSE.  See the GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License along with
// bmsync.  If not, see <http://www.gnu.org/licenses/>.

package logging

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	log "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

const EnvBmsyncDebug = "BMSYNC_DEBUG"

const (
	Silent = -1 + iota
	Release
	Dev
)

var (
	LoggingMode = Release
	SilentMode  bool
)

var (
	// Map cli log level to log.Level
	LogLvlMap = map[int]log.Level{
		-1: math.MaxInt32,
		0:  log.ErrorLevel,
		1:  log.WarnLevel,
		2:  log.InfoLevel,
		3:  log.DebugLevel,
	}

	loggers map[string]*log.Logger

	logLevelStyles = map[log.Level]lipgloss.Style{
		log.DebugLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.DebugLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("63")),
		log.InfoLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.InfoLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("36")),
		log.WarnLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.WarnLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("178")),
		log.ErrorLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.ErrorLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("204")),
		log.FatalLevel: lipgloss.NewStyle().
			SetString(strings.ToUpper(log.FatalLevel.String())).
			MaxWidth(4).
			Foreground(lipgloss.Color("134")),
	}
)

func GetLogger(module string) *log.Logger {
	if LoggingMode == Silent || SilentMode {
		return log.New(io.Discard)
	}

	lg := log.New(os.Stderr)

	if len(module) > 0 {
		lg.SetPrefix(fmt.Sprintf("[%.4s]", strings.ToUpper(module)))
	}

	styles := log.DefaultStyles()
	styles.Levels = logLevelStyles
	lg.SetStyles(styles)
	lg.SetColorProfile(termenv.ANSI256)

	if LoggingMode == Dev {
		lg.SetTimeFormat(time.TimeOnly)
		lg.SetReportTimestamp(true)
		lg.SetReportCaller(true)
		lg.SetLevel(log.DebugLevel)
	}

	loggers[module] = lg

	return lg
}

func SetLogLevel(lvl int) {
	if lvl <= -1 {
		SilentMode = true
	}

	for _, logger := range loggers {
		logger.SetLevel(LogLvlMap[lvl])

		// Silent mode
		if lvl <= -1 {
			logger.SetOutput(io.Discard)
		} else {
			logger.SetOutput(os.Stderr)
		}
	}
}

func init() {
	loggers = make(map[string]*log.Logger)

	envDebug := os.Getenv(EnvBmsyncDebug)
	if envDebug != "" {
		lvl, err := strconv.Atoi(envDebug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s=%v: %v", EnvBmsyncDebug, envDebug, err)
		}

		if lvl < -1 {
			lvl = -1
		}
		if LogLvlMap[lvl] == log.DebugLevel {
			LoggingMode = Dev
		}
		SetLogLevel(lvl)
	}
}
