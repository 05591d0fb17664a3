package progress

import (
	"bytes"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Label: "Running tests", Out: &buf}
	r.Start(2)
	r.Update(1, "a.test")
	r.Update(2, "b.test")
	r.Finish()

	want := "Running tests: 2 items\n[1/2] a.test\n[2/2] b.test\nRunning tests: done\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}
