package sequencer

import "solhello/internal/util/console"

// ConsoleReporter prints each stage's narration as it starts.
type ConsoleReporter struct {
	Console *console.Console
}

// StageStarted prints the stage message, if any.
func (r ConsoleReporter) StageStarted(st Stage) {
	if st.Message != "" {
		r.Console.Outf("{{gray}}%s{{/}}\n", st.Message)
	}
}

// StageFinished is a no-op; failures are reported once by the caller.
func (ConsoleReporter) StageFinished(Stage, error) {}
