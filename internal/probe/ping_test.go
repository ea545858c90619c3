package probe

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/hamed0406/netwatchdog/internal/system"
)

// fake runner you can control
type fakeRunner struct {
	out   system.Output
	err   error
	block bool

	name string
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (system.Output, error) {
	f.name, f.args = name, args
	if f.block {
		<-ctx.Done()
		return system.Output{ExitCode: -1}, ctx.Err()
	}
	return f.out, f.err
}

func TestPingChecker_Success(t *testing.T) {
	r := &fakeRunner{out: system.Output{ExitCode: 0, Stdout: "1 packets transmitted, 1 received"}}
	chk := NewPingChecker(r, 5*time.Second)

	out := chk.Check(context.Background(), "google.com")
	if !out.Success {
		t.Fatalf("want success, got %+v", out)
	}
	if r.name != "ping" {
		t.Fatalf("want ping binary, got %q", r.name)
	}
	want := []string{"-c", "1", "-W", "5", "google.com"}
	if strings.Join(r.args, " ") != strings.Join(want, " ") {
		t.Fatalf("args: want %v got %v", want, r.args)
	}
}

func TestPingChecker_NonZeroExitCarriesDiagnostic(t *testing.T) {
	r := &fakeRunner{out: system.Output{ExitCode: 2, Stderr: "ping: google.com: Temporary failure in name resolution\n"}}
	out := NewPingChecker(r, time.Second).Check(context.Background(), "google.com")
	if out.Success {
		t.Fatalf("want failure, got %+v", out)
	}
	if !strings.Contains(out.Message, "Temporary failure in name resolution") {
		t.Fatalf("diagnostic missing from message: %q", out.Message)
	}
}

func TestPingChecker_NonZeroExitWithoutOutput(t *testing.T) {
	r := &fakeRunner{out: system.Output{ExitCode: 1}}
	out := NewPingChecker(r, time.Second).Check(context.Background(), "10.255.255.1")
	if out.Success || !strings.Contains(out.Message, "exit status 1") {
		t.Fatalf("want exit status in message, got %+v", out)
	}
}

func TestPingChecker_LaunchErrorIsAFailedProbe(t *testing.T) {
	r := &fakeRunner{err: &exec.Error{Name: "ping", Err: exec.ErrNotFound}}
	out := NewPingChecker(r, time.Second).Check(context.Background(), "google.com")
	if out.Success {
		t.Fatalf("want failure, got %+v", out)
	}
	if !strings.Contains(out.Message, "failed to execute ping") {
		t.Fatalf("unexpected message: %q", out.Message)
	}
}

func TestPingChecker_TimeoutBoundsProbe(t *testing.T) {
	r := &fakeRunner{block: true}
	chk := NewPingChecker(r, 30*time.Millisecond)

	start := time.Now()
	out := chk.Check(context.Background(), "google.com")
	if out.Success {
		t.Fatalf("want failure due to timeout, got %+v", out)
	}
	if !strings.Contains(out.Message, "no reply within") {
		t.Fatalf("unexpected message: %q", out.Message)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("probe not bounded by timeout")
	}
}

func TestPingChecker_SubSecondTimeoutRoundsUp(t *testing.T) {
	chk := NewPingChecker(&fakeRunner{}, 1500*time.Millisecond)
	args := chk.Args("h")
	if args[3] != "2" {
		t.Fatalf("want -W 2, got %v", args)
	}
	chk.Timeout = time.Millisecond
	if args := chk.Args("h"); args[3] != "1" {
		t.Fatalf("want -W 1, got %v", args)
	}
}

func TestValidateTarget(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"google.com", true},
		{"192.168.1.1", true},
		{"", false},
		{"https://google.com", false},
		{"-f", false},
		{"bad host", false},
	}
	for _, c := range cases {
		if got := ValidateTarget(c.in) == nil; got != c.want {
			t.Fatalf("ValidateTarget(%q) ok=%v want %v", c.in, got, c.want)
		}
	}
}
