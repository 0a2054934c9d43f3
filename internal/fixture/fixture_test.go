package fixture_test

import (
	"bytes"
	"flag"
	"os"
	"os/exec"
	"testing"

	"github.com/gkampitakis/ciinfo"
	"github.com/gkampitakis/go-diff/diffmatchpatch"

	"github.com/tough-lang/tough/internal/codegen"
	"github.com/tough-lang/tough/internal/fixture"
	"github.com/tough-lang/tough/internal/lexer"
	"github.com/tough-lang/tough/internal/parser"
)

var fixtureFilter = flag.String("fixture", "", "glob pattern restricting which fixtures TestFixtures runs")

// TestFixtures compiles every testdata/fixtures/*.txtar case and runs it
// under lli, comparing stdout and exit code: a loader, a per-case
// subtest, and a skip path for environments that can't run the slow
// subprocess leg.
func TestFixtures(t *testing.T) {
	if fixture.SkipSlowE2E(ciinfo.IsCI) {
		if _, err := exec.LookPath("lli"); err != nil {
			t.Skip("lli not on PATH and not running in CI; pass -tough.e2e to force")
		}
	}

	cases, err := fixture.Load("../../testdata/fixtures")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cases = fixture.Filter(cases, *fixtureFilter)
	if len(cases) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			runCase(t, c)
		})
	}
}

func runCase(t *testing.T, c fixture.Case) {
	t.Helper()

	tokens, err := lexer.Tokenize(c.Source)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	module, err := codegen.New().Generate(program)
	if err != nil {
		t.Fatalf("codegen: %v", err)
	}

	lliPath, err := exec.LookPath("lli")
	if err != nil {
		t.Skipf("lli not on PATH: %v", err)
	}

	irFile, err := os.CreateTemp("", "tough-fixture-*.ll")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer os.Remove(irFile.Name())
	if _, err := irFile.WriteString(module.String()); err != nil {
		t.Fatalf("writing IR: %v", err)
	}
	irFile.Close()

	cmd := exec.Command(lliPath, irFile.Name())
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	runErr := cmd.Run()

	gotExit := 0
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		gotExit = exitErr.ExitCode()
	} else if runErr != nil {
		t.Fatalf("running lli: %v", runErr)
	}

	if gotExit != c.WantExitCode {
		t.Errorf("exit code = %d, want %d", gotExit, c.WantExitCode)
	}
	if stdout.String() != c.WantStdout {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(c.WantStdout, stdout.String(), false)
		t.Errorf("stdout mismatch:\n%s", dmp.DiffPrettyText(diffs))
	}
}

func TestLoadFixturesAreSortedNaturally(t *testing.T) {
	cases, err := fixture.Load("../../testdata/fixtures")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 1; i < len(cases); i++ {
		if cases[i-1].Name > cases[i].Name && len(cases[i-1].Name) == len(cases[i].Name) {
			t.Errorf("fixtures not sorted: %q before %q", cases[i-1].Name, cases[i].Name)
		}
	}
}
