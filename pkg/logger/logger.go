/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides JSON structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level and destination. Output is "stdout",
// "stderr", or a file path; file output is rotated.
type Config struct {
	Level      string `json:"level" yaml:"level"`
	Debug      bool   `json:"debug" yaml:"debug"`
	Output     string `json:"output" yaml:"output"`
	TimeFormat string `json:"time_format" yaml:"time_format"`

	// Rotation settings, used only when Output names a file.
	MaxSizeMB  int `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days"`
}

type zlogger struct {
	logger zerolog.Logger
}

// New builds a Logger from config. A nil config yields an info-level
// logger on stderr.
func New(config *Config) (Logger, error) {
	if config == nil {
		config = &Config{Level: "info", Output: "stderr"}
	}

	output, err := openOutput(config)
	if err != nil {
		return nil, err
	}

	level := zerolog.InfoLevel

	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return nil, err
		}
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	zl := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &zlogger{logger: zl}, nil
}

// NewTestLogger returns a discard-all logger for use in tests.
func NewTestLogger() Logger {
	return &zlogger{logger: zerolog.New(io.Discard)}
}

func openOutput(config *Config) (io.Writer, error) {
	switch config.Output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}

	return &lumberjack.Logger{
		Filename:   config.Output,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAgeDays,
	}, nil
}

func (z *zlogger) Trace() *zerolog.Event {
	return z.logger.Trace()
}

func (z *zlogger) Debug() *zerolog.Event {
	return z.logger.Debug()
}

func (z *zlogger) Info() *zerolog.Event {
	return z.logger.Info()
}

func (z *zlogger) Warn() *zerolog.Event {
	return z.logger.Warn()
}

func (z *zlogger) Error() *zerolog.Event {
	return z.logger.Error()
}

func (z *zlogger) Fatal() *zerolog.Event {
	return z.logger.Fatal()
}

func (z *zlogger) Panic() *zerolog.Event {
	return z.logger.Panic()
}

func (z *zlogger) With() zerolog.Context {
	return z.logger.With()
}

func (z *zlogger) WithComponent(component string) zerolog.Logger {
	return z.logger.With().Str("component", component).Logger()
}

func (z *zlogger) WithFields(fields map[string]interface{}) zerolog.Logger {
	ctx := z.logger.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}

	return ctx.Logger()
}

func (z *zlogger) SetLevel(level zerolog.Level) {
	z.logger = z.logger.Level(level)
}

func (z *zlogger) SetDebug(debug bool) {
	if debug {
		z.SetLevel(zerolog.DebugLevel)
	} else {
		z.SetLevel(zerolog.InfoLevel)
	}
}
