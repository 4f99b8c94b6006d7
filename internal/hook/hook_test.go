package hook

import (
	"context"
	"testing"
	"time"

	"voxnote/internal/config"
	"voxnote/internal/logging"
)

func TestRunEcho(t *testing.T) {
	cfg, _ := config.Default()
	cfg.Hook.Command = "/bin/echo"
	cfg.Hook.Args = []string{"-n"}

	r := NewRunner(cfg, logging.NewTestLogger())
	if !r.Enabled() {
		t.Fatalf("hook should be enabled")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.Run(ctx, Job{Text: "hello", Timestamp: time.Now()}); err != nil {
		t.Fatalf("run echo: %v", err)
	}
}

func TestDisabledWithoutCommand(t *testing.T) {
	cfg, _ := config.Default()
	r := NewRunner(cfg, logging.NewTestLogger())
	if r.Enabled() {
		t.Fatalf("hook should be disabled by default")
	}
	if err := r.Run(context.Background(), Job{Text: "x"}); err == nil {
		t.Fatalf("expected error without command")
	}
}

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs(`-u critical "voice note"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(args) != 3 || args[2] != "voice note" {
		t.Fatalf("args %v", args)
	}
	args, err = ParseArgs("   ")
	if err != nil || len(args) != 0 {
		t.Fatalf("blank args %v %v", args, err)
	}
}
