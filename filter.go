// Copyright (c) 2025 Nguyễn Thanh Phương
// This source code is licensed under the MIT License found in the LICENSE file.

// Package ecslogger - filter.go
// Implements the level/target filter and its directive grammar. A Filter is
// built once from a directive string and is read-only afterwards, so Accepts
// needs no synchronization.

package ecslogger

import (
	"sort"
	"strings"
)

// filterRule binds a target prefix to the minimum accepted level for events
// attributed to that target.
type filterRule struct {
	target string
	level  Level
}

// Filter decides which (level, target) pairs are emitted. The zero
// configuration accepts only ERROR.
type Filter struct {
	defaultLevel Level
	rules        []filterRule // sorted by decreasing target length
	minLevel     Level        // most verbose level accepted by any rule
}

// NewFilter parses a directive string into a Filter.
//
// The grammar is a comma-separated list of clauses, each one of:
//
//	level            sets the default minimum level, e.g. "info"
//	target           accepts everything for that target, e.g. "myapp/server"
//	target=level     sets the minimum level for one target, e.g. "myapp/server=debug"
//
// Level names are matched case-insensitively. Target rules match by prefix,
// and the longest matching rule wins. Malformed clauses are skipped rather
// than reported: a misconfigured filter must never prevent the logger from
// starting, so a wholly unusable string degrades to the default "error".
func NewFilter(directives string) *Filter {
	f := &Filter{defaultLevel: ERROR}
	haveDefault := false

	for _, clause := range strings.Split(directives, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		target, levelName, hasLevel := strings.Cut(clause, "=")
		if !hasLevel {
			if lvl, ok := parseLevel(clause); ok {
				// Bare level clause; the most verbose one wins.
				if !haveDefault || lvl < f.defaultLevel {
					f.defaultLevel = lvl
				}
				haveDefault = true
				continue
			}
			// Bare target clause enables everything for that target.
			f.rules = append(f.rules, filterRule{target: clause, level: TRACE})
			continue
		}
		lvl, ok := parseLevel(levelName)
		if !ok {
			continue
		}
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		f.rules = append(f.rules, filterRule{target: target, level: lvl})
	}

	sort.SliceStable(f.rules, func(i, j int) bool {
		return len(f.rules[i].target) > len(f.rules[j].target)
	})

	f.minLevel = f.defaultLevel
	for _, r := range f.rules {
		if r.level < f.minLevel {
			f.minLevel = r.level
		}
	}
	return f
}

// Accepts reports whether an event at the given level and target passes the
// filter. It is pure and deterministic for a fixed configuration.
func (f *Filter) Accepts(level Level, target string) bool {
	return level >= f.threshold(target)
}

// MinLevel returns the most verbose level the filter accepts for any target.
// Events below it are rejected regardless of target, which makes MinLevel
// suitable for fast-path enablement checks.
func (f *Filter) MinLevel() Level {
	return f.minLevel
}

// threshold resolves the minimum accepted level for a target. Rules are
// ordered longest-target-first, so the first prefix match is the most
// specific one.
func (f *Filter) threshold(target string) Level {
	for _, r := range f.rules {
		if strings.HasPrefix(target, r.target) {
			return r.level
		}
	}
	return f.defaultLevel
}
