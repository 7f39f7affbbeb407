package launcher

import (
	"testing"

	"ebb/internal/config"
)

func TestLauncher_Command(t *testing.T) {
	cfg := config.TestConfig(t.TempDir())
	// sh exists on every platform the tests run on.
	cfg.Open.Openers = []string{"definitely-not-a-real-command", "sh"}

	l := NewLauncher(cfg)
	cmd, err := l.Command("http://example.com/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cmd.Args) != 2 || cmd.Args[1] != "http://example.com/article" {
		t.Errorf("expected the link as sole argument, got %v", cmd.Args)
	}
}

func TestLauncher_EmptyLink(t *testing.T) {
	cfg := config.TestConfig(t.TempDir())
	cfg.Open.Openers = []string{"sh"}

	l := NewLauncher(cfg)
	if _, err := l.Command(""); err == nil {
		t.Error("expected error for empty link, got nil")
	}
}

func TestLauncher_NoOpenerAvailable(t *testing.T) {
	cfg := config.TestConfig(t.TempDir())
	cfg.Open.Openers = []string{"definitely-not-a-real-command"}

	l := NewLauncher(cfg)
	if _, err := l.Command("http://example.com"); err == nil {
		t.Error("expected error when no opener resolves, got nil")
	}
}

func TestFindCommand(t *testing.T) {
	if got := findCommand("definitely-not-a-real-command", "sh"); got != "sh" {
		t.Errorf("expected 'sh', got %q", got)
	}
	if got := findCommand("definitely-not-a-real-command"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
