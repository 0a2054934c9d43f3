// Package fixture loads end-to-end TOUGH programs archived as txtar
// files under testdata/fixtures, keeping each script and its expected
// output together instead of sprawled across loose files.
package fixture

import (
	"flag"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
	"github.com/rogpeppe/go-internal/txtar"
	"github.com/tidwall/match"
)

var runE2E = flag.Bool("tough.e2e", false, "run lli-subprocess end-to-end fixtures even outside CI")

// Case is one archived end-to-end scenario: TOUGH source, the stdout it
// must produce, and the exit code the compiled program must return.
type Case struct {
	Name         string
	Source       string
	WantStdout   string
	WantExitCode int
}

// Load parses every *.txtar file in dir into a Case, sorted in natural
// order so fixture2 precedes fixture10.
func Load(dir string) ([]Case, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", dir, err)
	}
	sort.Slice(paths, func(i, j int) bool { return natural.Less(paths[i], paths[j]) })

	cases := make([]Case, 0, len(paths))
	for _, path := range paths {
		c, err := loadOne(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func loadOne(path string) (Case, error) {
	archive, err := txtar.ParseFile(path)
	if err != nil {
		return Case{}, err
	}

	c := Case{Name: strings.TrimSuffix(filepath.Base(path), ".txtar")}

	for _, f := range archive.Files {
		switch f.Name {
		case "input.tough":
			c.Source = string(f.Data)
		case "stdout.txt":
			c.WantStdout = string(f.Data)
		}
	}
	if c.Source == "" {
		return Case{}, fmt.Errorf("missing input.tough section")
	}

	c.WantExitCode, err = parseExitCode(string(archive.Comment))
	if err != nil {
		return Case{}, err
	}
	return c, nil
}

func parseExitCode(comment string) (int, error) {
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(line, "exit:")
		if !ok {
			continue
		}
		code, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return 0, fmt.Errorf("parsing exit code %q: %w", rest, err)
		}
		return code, nil
	}
	return 0, nil
}

// Filter keeps only the cases whose Name matches pattern, a shell-style
// glob evaluated with tidwall/match. An empty pattern keeps everything,
// so callers can wire it straight to an optional -fixture flag.
func Filter(cases []Case, pattern string) []Case {
	if pattern == "" {
		return cases
	}
	kept := make([]Case, 0, len(cases))
	for _, c := range cases {
		if match.Match(c.Name, pattern) {
			kept = append(kept, c)
		}
	}
	return kept
}

// SkipSlowE2E reports whether lli-subprocess fixtures should be skipped:
// true when neither CI nor -tough.e2e was requested, keeping `go test
// ./...` fast on a developer machine with no lli installed.
func SkipSlowE2E(isCI bool) bool {
	return !isCI && !*runE2E
}
