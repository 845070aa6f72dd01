/*
Package log provides structured logging for Signtide using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper functions
for common logging patterns. All logs include timestamps and support filtering
by severity level.

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init()
  - Thread-safe concurrent writes

Context Loggers:
  - WithComponent: add component name to all logs (batch, task, notify, ...)
  - WithRunID: add the run ID so one invocation's logs group together
  - WithAccount: add the masked account identifier

# Usage

Initializing the Logger:

	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: false,
		Output:     os.Stdout,
	})

Component Loggers:

	batchLog := log.WithComponent("batch")
	batchLog.Info().Int("accounts", 40).Msg("starting run")

	acctLog := log.WithAccount(cred.Masked())
	acctLog.Error().Err(err).Msg("login failed")

Structured log output goes to the console (or JSON when configured); the
human-readable report that gets pushed at the end of a run is accumulated
separately by the report package and is not affected by the level set here.

# Integration Points

This package integrates with:

  - pkg/batch: run lifecycle and cohort reconciliation logs
  - pkg/task: per-account sign-in progress
  - pkg/notify: push channel delivery results
  - cmd/signtide: logger initialization from configuration

Security note: account identifiers are always masked before they reach a log
field; raw credentials must never be passed to this package.
*/
package log
