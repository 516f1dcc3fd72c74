package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

var errBase = errors.New("base")

func newTestLogger(verbose, debug bool) (Logger, *bytes.Buffer, *bytes.Buffer) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	return Logger{Verbose: verbose, Debug: debug, Out: &out, Err: &errOut}, &out, &errOut
}

func TestLogger_InfoAndDebugHiddenByDefault(t *testing.T) {
	log, out, _ := newTestLogger(false, false)

	log.Infof("info %d", 1)
	log.Debugf("debug %d", 2)

	if out.Len() != 0 {
		t.Errorf("expected no stdout output, got %q", out.String())
	}
}

func TestLogger_WarnAndErrorAlwaysShown(t *testing.T) {
	log, _, errOut := newTestLogger(false, false)

	log.Warnf("permissions %o", 0644)
	log.Errorf("failed %s", "write")

	got := errOut.String()
	if !strings.Contains(got, "[warn] permissions 644") {
		t.Errorf("missing warn line in %q", got)
	}
	if !strings.Contains(got, "[error] failed write") {
		t.Errorf("missing error line in %q", got)
	}
}

func TestLogger_Verbose(t *testing.T) {
	log, out, _ := newTestLogger(true, false)

	log.Infof("opened %s", "notes.txt")
	log.Debugf("hidden")

	if !strings.Contains(out.String(), "[info] opened notes.txt") {
		t.Errorf("missing info line in %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("debug line should be hidden in verbose mode: %q", out.String())
	}
}

func TestLogger_Debug(t *testing.T) {
	log, out, _ := newTestLogger(false, true)

	log.Debugf("id=%d", 3)

	if !strings.Contains(out.String(), "[debug] id=3") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestLogger_ErrorfAndReturn(t *testing.T) {
	log, out, errOut := newTestLogger(false, true)

	err := log.ErrorfAndReturn("failed to open %s: %w", "a.txt", errBase)
	if err == nil || err.Error() != "failed to open a.txt: base" {
		t.Fatalf("unexpected error %v", err)
	}
	if !errors.Is(err, errBase) {
		t.Errorf("expected returned error to wrap its cause")
	}
	if errOut.Len() != 0 {
		t.Errorf("returned errors should not be printed to stderr: %q", errOut.String())
	}
	if !strings.Contains(out.String(), "returning error: failed to open a.txt") {
		t.Errorf("expected debug trace, got %q", out.String())
	}
}
