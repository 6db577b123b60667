// Package testutil provides shared test helpers for claude-loop.
//
// # Fixtures
//
// fixtures.go holds sample stream-json lines as emitted by
// `claude --output-format stream-json`:
//
//   - InitLine, TextLine(s), ThinkingLine(s), ToolUseLine(name, input)
//   - ToolResultLine(s), ResultLine(subtype), DoneLine(), BlockedLine(reason)
//
// # Executor
//
// ScriptedExecutor replays canned output per invocation and records the
// arguments it was called with, so loop and CLI tests never start Claude.
//
// # Environment
//
//   - SetupInputs(t) creates a PRD, prompt and empty progress file
//   - ProcessContext(t) bounds tests that start a real process
//
// # Assertions
//
//   - AssertLinesInOrder(t, text, lines) checks each line appears exactly
//     once and in order
package testutil
