package monitoring

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetLogWriters_RoutesStreams(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(LogWriters{Ops: &ops, Diag: &diag, Trace: &trace})
	t.Cleanup(func() { SetLogWriters(LogWriters{Ops: os.Stderr, Diag: os.Stderr}) })

	Opsf("started %s", "server")
	Diagf("render %d", 3)
	Tracef("tick %d", 7)

	checks := []struct {
		name string
		buf  *bytes.Buffer
		want string
	}{
		{"ops", &ops, "started server"},
		{"diag", &diag, "render 3"},
		{"trace", &trace, "tick 7"},
	}
	for _, c := range checks {
		out := c.buf.String()
		if !strings.Contains(out, c.want) {
			t.Errorf("%s stream = %q, want it to contain %q", c.name, out, c.want)
		}
		if !strings.Contains(out, "[modelboard]") {
			t.Errorf("%s stream missing prefix: %q", c.name, out)
		}
		if strings.Count(out, "\n") != 1 {
			t.Errorf("%s stream got %d lines, want 1", c.name, strings.Count(out, "\n"))
		}
	}
}

func TestSetLogWriters_NilDisables(t *testing.T) {
	SetLogWriters(LogWriters{})
	t.Cleanup(func() { SetLogWriters(LogWriters{Ops: os.Stderr, Diag: os.Stderr}) })

	// Must not panic with every stream disabled.
	Opsf("x")
	Diagf("y")
	Tracef("z")
}
