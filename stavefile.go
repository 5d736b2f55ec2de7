//go:build stave

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target when running `stave` with no arguments.
var Default = All

// Aliases for common targets.
var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
	"g": Golden,
}

// binaries built from ./cmd.
var binaries = []string{"sbd-cli", "sbd-bench", "sbd-dictgen"}

// All runs the complete build pipeline: lint, test, and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

// Init ensures the module dependencies are up to date.
func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles every binary.
func Build() error {
	st.Deps(Init)
	st.Deps(Build_CLI, Build_Bench, Build_Dictgen)
	return nil
}

// Build_CLI compiles sbd-cli.
func Build_CLI() error {
	return buildBinary("sbd-cli")
}

// Build_Bench compiles sbd-bench.
func Build_Bench() error {
	return buildBinary("sbd-bench")
}

// Build_Dictgen compiles sbd-dictgen.
func Build_Dictgen() error {
	return buildBinary("sbd-dictgen")
}

func buildBinary(name string) error {
	st.Deps(Init)

	out := "bin/" + name
	rebuild, err := target.Glob(out, "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Printf("%s is up to date\n", name)
		}
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", buildLdflags(), "-o", out, "./cmd/"+name)
}

// buildLdflags returns ldflags for version injection.
func buildLdflags() string {
	version, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	return fmt.Sprintf("-X main.version=%s+%s", strings.TrimSpace(version), time.Now().UTC().Format("20060102"))
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

// TestShort runs tests in short mode.
func TestShort() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-short", "-race", "./...")
}

// Golden rewrites testdata/golden.json from current output. Review the diff
// before committing.
func Golden() error {
	return sh.RunV("go", "test", "-run", "TestGolden", ".", "-update")
}

// Fuzz runs each fuzz target for FUZZTIME (default 30s).
func Fuzz() error {
	fuzztime := os.Getenv("FUZZTIME")
	if fuzztime == "" {
		fuzztime = "30s"
	}
	targets := []struct{ pkg, name string }{
		{".", "FuzzSegmentRoundTrip"},
		{"./internal/normalize", "FuzzNormalizeIdempotent"},
	}
	for _, f := range targets {
		if err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+f.name+"$", "-fuzztime", fuzztime, f.pkg); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// Lint runs golangci-lint on the codebase.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code using gofmt and goimports.
func Fmt() error {
	if err := sh.Run("gofmt", "-w", "."); err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if err := sh.Run("goimports", "-w", "."); err != nil {
		return fmt.Errorf("goimports: %w", err)
	}
	return nil
}

// Vet runs go vet on all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	for _, a := range []string{"bin/", "coverage.out", "coverage.html"} {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install builds and installs the binaries to GOBIN.
func Install() error {
	st.Deps(Build)

	gocmd := st.GoCmd()
	bin, err := sh.Output(gocmd, "env", "GOBIN")
	if err != nil {
		return fmt.Errorf("determining GOBIN: %w", err)
	}
	if bin == "" {
		gopath, err := sh.Output(gocmd, "env", "GOPATH")
		if err != nil {
			return fmt.Errorf("determining GOPATH: %w", err)
		}
		bin = gopath + "/bin"
	}

	for _, name := range binaries {
		dst := bin + "/" + name
		if runtime.GOOS == "windows" {
			dst += ".exe"
		}
		if err := sh.Copy(dst, "bin/"+name); err != nil {
			return fmt.Errorf("installing %s: %w", name, err)
		}
		if st.Verbose() {
			fmt.Printf("Installed %s to %s\n", name, dst)
		}
	}
	return nil
}

// Dict namespace for dictionary asset targets.
type Dict st.Namespace

// Export writes the English dictionary asset to SBD_DICTIONARY
// (default testdata/en.pb).
func (Dict) Export() error {
	st.Deps(Build_Dictgen)
	return sh.RunV("./bin/sbd-dictgen", "export", "--out", dictPath())
}

// Inspect summarizes the dictionary asset.
func (Dict) Inspect() error {
	st.Deps(Build_Dictgen)
	if _, err := os.Stat(dictPath()); os.IsNotExist(err) {
		return fmt.Errorf("dictionary not found: %s (run dict:export)", dictPath())
	}
	return sh.RunV("./bin/sbd-dictgen", "inspect", dictPath())
}

func dictPath() string {
	if p := os.Getenv("SBD_DICTIONARY"); p != "" {
		return p
	}
	return "testdata/en.pb"
}

// Bench namespace for benchmark-related targets.
type Bench st.Namespace

// Run evaluates the segmenter against SBD_CORPUS (default testdata/ted).
func (Bench) Run() error {
	st.Deps(Build_Bench)
	return sh.RunV("./bin/sbd-bench", "--corpus", corpusDir())
}

// Compare ranks the built-in option profiles.
func (Bench) Compare() error {
	st.Deps(Build_Bench)
	return sh.RunV("./bin/sbd-bench", "--corpus", corpusDir(), "--compare")
}

// Prepare converts the UD English Web Treebank in UD_EWT_DIR into JSON
// documents under testdata/ud-ewt.
func (Bench) Prepare() error {
	dir := os.Getenv("UD_EWT_DIR")
	if dir == "" {
		return fmt.Errorf("UD_EWT_DIR not set")
	}
	return sh.RunV("go", "run", "scripts/process-ud-ewt.go", "-in", dir, "-out", "testdata/ud-ewt")
}

func corpusDir() string {
	if d := os.Getenv("SBD_CORPUS"); d != "" {
		return d
	}
	return "testdata/ted"
}

// CI runs the full CI pipeline (lint, test, build).
func CI() error {
	st.Deps(Init)
	st.SerialDeps(Lint, Test, Build)
	return nil
}

// Check runs quick validation (vet, lint, short tests).
func Check() error {
	st.Deps(Vet, Lint, TestShort)
	return nil
}

// Coverage generates a coverage report.
func Coverage() error {
	st.Deps(Init)
	if err := sh.RunV("go", "test", "-race", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}
