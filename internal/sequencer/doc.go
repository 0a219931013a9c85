// Package sequencer runs a fixed, ordered list of named stages.
//
// Stages run one at a time on the caller's goroutine. Each stage must finish
// before the next starts, disabled stages are never invoked, and the first
// failure stops the run. The outcome is a Result naming the completed stages
// and, on failure, the stage that failed; Result.ExitCode maps it to the
// process exit status (0 on success, -1 on failure).
//
// A Reporter observes stage starts and ends. ConsoleReporter prints each
// stage's narration line before it runs.
package sequencer
