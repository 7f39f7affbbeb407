package feed

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadSources reads the feeds file: one URL per line, lines starting with
// '#' and blank lines ignored. A missing or unreadable file is an error;
// the caller treats it as fatal before any fetch begins.
func LoadSources(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feeds file: %w", err)
	}
	defer f.Close()

	var sources []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sources = append(sources, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading feeds file: %w", err)
	}
	return sources, nil
}
