// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"log/slog"

	"golang.org/x/text/language"

	"fillmore-labs.com/syncguard/internal/config"
	"fillmore-labs.com/syncguard/internal/finding"
	"fillmore-labs.com/syncguard/internal/rule"
)

// Option configures specific behavior of a [New] syncguard analyzer.
type Option interface {
	apply(s *settings) error
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(s *settings) error {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		if err := opt.apply(s); err != nil {
			return err
		}
	}

	return nil
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated sources.
func WithGenerated(generated bool) Option { return behaviorOption{"generated", config.IncludeGenerated, generated} }

// WithSuppressions is an [Option] to configure whether //noinspection comments and
// @SuppressWarnings annotations are honored.
func WithSuppressions(suppressions bool) Option {
	return behaviorOption{"suppressions", config.HonorSuppressions, suppressions}
}

// WithFixes is an [Option] to configure whether findings carry quick fixes.
func WithFixes(fixes bool) Option { return behaviorOption{"fixes", config.ComputeFixes, fixes} }

type behaviorOption struct {
	name  string
	flag  config.Behavior
	value bool
}

func (o behaviorOption) apply(s *settings) error {
	s.behavior.Set(o.flag, o.value)

	return nil
}

func (o behaviorOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.value)
}

// WithRules is an [Option] enabling exactly the given rules.
func WithRules(ids ...string) Option { return rulesOption{ids: ids} }

type rulesOption struct{ ids []string }

func (o rulesOption) apply(s *settings) error {
	return s.registry.EnableOnly(o.ids...)
}

func (o rulesOption) LogAttr() slog.Attr {
	return slog.Any("rules", o.ids)
}

// WithRuleEnabled is an [Option] enabling or disabling a single rule.
func WithRuleEnabled(id string, enabled bool) Option {
	return ruleOption{id: id, attr: slog.Bool("enabled", enabled), fn: func(_ *rule.Rule, cfg *rule.Config) error {
		cfg.Enabled = enabled

		return nil
	}}
}

// WithSeverity is an [Option] overriding the severity of a rule.
func WithSeverity(id string, severity finding.Severity) Option {
	return ruleOption{id: id, attr: slog.String("severity", severity.String()), fn: func(_ *rule.Rule, cfg *rule.Config) error {
		cfg.Severity = severity

		return nil
	}}
}

// WithRuleFlag is an [Option] setting a boolean option of a rule.
func WithRuleFlag(id, name string, value bool) Option {
	return ruleOption{id: id, attr: slog.Bool(name, value), fn: func(r *rule.Rule, cfg *rule.Config) error {
		return cfg.SetFlag(r, name, value)
	}}
}

// WithRuleList is an [Option] setting a list option of a rule.
func WithRuleList(id, name string, values ...string) Option {
	return ruleOption{id: id, attr: slog.Any(name, values), fn: func(r *rule.Rule, cfg *rule.Config) error {
		return cfg.SetList(r, name, values)
	}}
}

type ruleOption struct {
	id   string
	attr slog.Attr
	fn   func(r *rule.Rule, cfg *rule.Config) error
}

func (o ruleOption) apply(s *settings) error {
	return s.registry.Configure(o.id, o.fn)
}

func (o ruleOption) LogAttr() slog.Attr {
	return slog.Group(o.id, o.attr)
}

// WithLogger is an [Option] to set the logger receiving rule failures.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(s *settings) error {
	s.logger = o.logger

	return nil
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}

// WithMessages is an [Option] to select the language of rendered messages.
func WithMessages(tag language.Tag) Option { return messagesOption{tag: tag} }

type messagesOption struct{ tag language.Tag }

func (o messagesOption) apply(s *settings) error {
	s.language = o.tag

	return nil
}

func (o messagesOption) LogAttr() slog.Attr {
	return slog.String("language", o.tag.String())
}
