package console_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"solhello/internal/util/console"
)

func TestConsole_StripsColourWhenDisabled(t *testing.T) {
	var out, errOut bytes.Buffer
	c := console.New(&out, &errOut, false)

	c.Outf("{{green}}stored{{/}} %d\n", 42)
	c.Errf("{{red}}failed{{/}}: %s\n", "boom")

	require.Equal(t, "stored 42\n", out.String())
	require.Equal(t, "failed: boom\n", errOut.String())
}

func TestConsole_RendersColour(t *testing.T) {
	var out bytes.Buffer
	c := console.New(&out, &out, true)

	c.Outf("{{green}}ok{{/}}")
	require.Contains(t, out.String(), "\x1b[")
	require.Contains(t, out.String(), "ok")
}
