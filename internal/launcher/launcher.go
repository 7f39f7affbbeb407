// Package launcher resolves the external command used to open an entry's
// link in the user's handler.
package launcher

import (
	"fmt"
	"os/exec"

	"ebb/internal/config"
)

type Launcher struct {
	opener string
}

// NewLauncher picks the first configured opener present on PATH.
func NewLauncher(cfg *config.Config) *Launcher {
	return &Launcher{opener: findCommand(cfg.Open.Openers...)}
}

// Command builds the subprocess for the link: the opener with the link as
// its sole argument. The caller decides how to run it; the interactive loop
// blocks on its exit.
func (l *Launcher) Command(link string) (*exec.Cmd, error) {
	if link == "" {
		return nil, fmt.Errorf("entry has no link")
	}
	if l.opener == "" {
		return nil, fmt.Errorf("no opener command found")
	}
	return exec.Command(l.opener, link), nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
