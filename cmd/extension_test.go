package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// cf-hello dumps its arguments and the FUND_ variables it received.
	script := "#!/bin/sh\necho \"args=$*\" > \"$OUT\"\nenv | grep '^FUND_' | sort >> \"$OUT\"\n"
	if err := os.WriteFile(filepath.Join(tempDir, "cf-hello"), []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write cf-hello: %v", err)
	}
	out := filepath.Join(tempDir, "out.txt")
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("OUT", out)
	t.Setenv("FUND_STORE", "sqlite")
	t.Setenv("FUND_ROLE", "guest")

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found || code != 0 {
		t.Fatalf("RunExtension() = %v, %d, want true, 0", found, code)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"args=a b", EnvStore + "=sqlite", EnvRole + "=guest", EnvStrict + "=false"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("extension output does not contain %q:\n%s", want, content)
		}
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("nope", nil); found {
		t.Errorf("RunExtension(nope) found an extension")
	}
}

func TestExtensionExitCode(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "cf-fail"), []byte("#!/bin/sh\nexit 3\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", tempDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	found, code := RunExtension("fail", nil)
	if !found || code != 3 {
		t.Errorf("RunExtension(fail) = %v, %d, want true, 3", found, code)
	}
}
