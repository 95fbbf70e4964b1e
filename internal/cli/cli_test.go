package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildBinary compiles the prayer-dashboard binary to a temp directory for testing.
func buildBinary(t *testing.T, ldflags string) string {
	t.Helper()
	if testing.Short() {
		t.Skip("builds the binary")
	}
	binPath := filepath.Join(t.TempDir(), "prayer-dashboard")

	args := []string{"build"}
	if ldflags != "" {
		args = append(args, "-ldflags", ldflags)
	}
	args = append(args, "-o", binPath, "../../cmd/prayer-dashboard")

	cmd := exec.Command("go", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}
	return binPath
}

// isolatedEnv points the binary at an empty config home.
func isolatedEnv(t *testing.T) []string {
	dir := t.TempDir()
	return append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(dir, "config"),
		"XDG_STATE_HOME="+filepath.Join(dir, "state"),
	)
}

// TestVersionFlag verifies that --version prints the version string.
func TestVersionFlag(t *testing.T) {
	binPath := buildBinary(t, "-X main.version=v1.2.3-test")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	want := "prayer-dashboard v1.2.3-test"
	if got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

// TestVersionFlag_Dev verifies the default "dev" version when no ldflags.
func TestVersionFlag_Dev(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	if got != "prayer-dashboard dev" {
		t.Errorf("--version output unexpected: %q", got)
	}
}

// TestMethodsSubcommand verifies that 'methods' prints calculation methods.
func TestMethodsSubcommand(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath, "methods")
	cmd.Env = isolatedEnv(t)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("methods failed: %v", err)
	}

	output := string(out)
	expectedMethods := []string{
		"ISNA",
		"Muslim World League",
		"Umm Al-Qura",
		"Jafari",
		"Ministry of Awqaf, Jordan",
	}
	for _, m := range expectedMethods {
		if !strings.Contains(output, m) {
			t.Errorf("methods output missing %q", m)
		}
	}
}

// TestDashboard_NeedsTerminal verifies the bare command refuses to run
// with stdin and stdout redirected.
func TestDashboard_NeedsTerminal(t *testing.T) {
	binPath := buildBinary(t, "")

	cmd := exec.Command(binPath)
	cmd.Env = isolatedEnv(t)
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatal("expected an error without a terminal")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() == 0 {
		t.Error("expected non-zero exit code")
	}
	if !strings.Contains(string(out), "needs a terminal") {
		t.Errorf("output = %q, want terminal hint", out)
	}
}

// TestHelpFlag verifies that --help shows the expected subcommands.
func TestHelpFlag(t *testing.T) {
	binPath := buildBinary(t, "")

	out, err := exec.Command(binPath, "--help").Output()
	if err != nil {
		t.Fatalf("--help failed: %v", err)
	}

	output := string(out)
	for _, sub := range []string{"today", "next", "search", "config", "methods"} {
		if !strings.Contains(output, sub) {
			t.Errorf("--help output missing subcommand %q", sub)
		}
	}
	for _, flag := range []string{"--latitude", "--method", "--school", "--log-level"} {
		if !strings.Contains(output, flag) {
			t.Errorf("--help output missing flag %q", flag)
		}
	}
}

// TestConfigSubcommands verifies config commands run against an empty home.
func TestConfigSubcommands(t *testing.T) {
	binPath := buildBinary(t, "")
	env := isolatedEnv(t)

	for _, args := range [][]string{
		{"config"},
		{"config", "path"},
		{"config", "set", "method", "4"},
		{"config", "reset"},
	} {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			cmd := exec.Command(binPath, args...)
			cmd.Env = env
			if out, err := cmd.CombinedOutput(); err != nil {
				t.Errorf("command %v failed: %v\n%s", args, err, out)
			}
		})
	}
}
