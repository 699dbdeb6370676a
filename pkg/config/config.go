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

// Package config maps the toml config file onto the per-module option
// structs. Each module (store adapter, backup service, sync pipeline)
// registers its own configurator under its section name.
package config

import (
	"fmt"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"

	"github.com/matthewpickle/bmsync/internal/logging"
)

var (
	log     = logging.GetLogger("CONF")
	configs = make(map[string]Configurator)
)

// A Configurator allows multiple packages to set and access configs which can
// be mapped to any input format (toml, cli flags, env variables ...)
type Configurator interface {
	Set(opt string, v any) error
	Get(opt string) (any, error)
	Dump() map[string]any
	MapFrom(any) error
}

type AutoConfigurator struct {
	c any
}

func (ac AutoConfigurator) Set(opt string, v any) error {
	s := structs.New(ac.c)
	f, ok := s.FieldOk(opt)
	if !ok {
		return fmt.Errorf("%s option not defined", opt)
	}

	return f.Set(v)
}

func (ac AutoConfigurator) Get(opt string) (any, error) {
	s := structs.New(ac.c)
	f, ok := s.FieldOk(opt)
	if !ok {
		return nil, fmt.Errorf("%s option not defined", opt)
	}

	return f.Value(), nil
}

func (ac AutoConfigurator) Dump() map[string]any {
	s := structs.New(ac.c)
	return s.Map()
}

func (ac AutoConfigurator) MapFrom(src any) error {
	return mapstructure.Decode(src, ac.c)
}

// AsConfigurator implements a default Configurator for a given struct or
// custom type. Use this to handle module options.
func AsConfigurator(c any) Configurator {
	return AutoConfigurator{c}
}

// RegisterConfigurator registers a module's option struct under its toml
// section name.
func RegisterConfigurator(name string, c Configurator) {
	log.Debugf("registering configurator <%s>", name)
	configs[name] = c
}

// GetModOpt returns a module option value given a module name and option name
func GetModOpt(module string, opt string) (any, error) {
	if c, ok := configs[module]; ok {
		return c.Get(opt)
	}
	return nil, fmt.Errorf("module %s not found", module)
}

// Init loads the config file if it exists. Cli flags are parsed afterwards
// and override file values.
func Init(path string) {
	exists, err := CheckConfigExists(path)
	if err != nil {
		log.Warnf("checking for config file: %s", err)
		return
	}
	if !exists {
		log.Debugf("no config file at %s", path)
		return
	}

	if err := LoadFromTomlFile(path); err != nil {
		log.Fatalf("loading config: %s", err)
	}
}
