//go:build stave

package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

var Default = All

var Aliases = map[string]interface{}{
	"b": Build,
	"t": Test,
	"l": Lint,
	"c": Clean,
}

// All runs lint, test and build.
func All() error {
	st.Deps(Init)
	st.Deps(Lint, Test)
	st.Deps(Build)
	return nil
}

func Init() error {
	return sh.Run("go", "mod", "tidy")
}

// Build compiles bin/entalign with the version of the checkout.
func Build() error {
	st.Deps(Init)

	rebuild, err := target.Glob("bin/entalign", "**/*.go", "go.mod", "go.sum")
	if err != nil {
		return fmt.Errorf("checking rebuild: %w", err)
	}
	if !rebuild {
		if st.Verbose() {
			fmt.Println("entalign is up to date")
		}
		return nil
	}

	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/entalign", "./cmd/entalign")
}

func ldflags() string {
	tag, _ := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")

	return fmt.Sprintf("-X main.BuildTag=%s -X main.BuildCommit=%s",
		strings.TrimSpace(tag),
		strings.TrimSpace(commit),
	)
}

// Test runs all tests with race detection and coverage.
func Test() error {
	st.Deps(Init)
	return sh.RunV("go", "test", "-race", "-cover", "./...")
}

func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

func Fmt() error {
	return sh.Run("gofmt", "-w", ".")
}

// Clean removes build artifacts and the pipeline output.
func Clean() error {
	for _, a := range []string{"bin/", "output/"} {
		if err := sh.Rm(a); err != nil {
			return fmt.Errorf("removing %s: %w", a, err)
		}
	}
	return nil
}

// Install copies bin/entalign to GOBIN.
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

	dst := bin + "/entalign"
	if runtime.GOOS == "windows" {
		dst += ".exe"
	}
	return sh.Copy(dst, "bin/entalign")
}
