package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xlttj/monswitch/pkg/config"
	"github.com/xlttj/monswitch/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) *config.SQLiteSettingsStore {
	t.Helper()
	store, err := config.OpenSQLiteSettingsStore(filepath.Join(t.TempDir(), config.DatabaseFileName))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testEnv(in string) (Env, *bytes.Buffer) {
	var out bytes.Buffer
	return Env{In: strings.NewReader(in), Out: &out}, &out
}

func TestSettingsSetOnlyChangesGivenFlags(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveLinux(config.LinuxSettings{Address: "old", Username: "du", Password: "pw"}); err != nil {
		t.Fatalf("SaveLinux: %v", err)
	}

	env, _ := testEnv("")
	if err := RunSettings(store, []string{"set", "--address", "ubuntu.lan:2222"}, env); err != nil {
		t.Fatalf("set: %v", err)
	}

	want := config.LinuxSettings{Address: "ubuntu.lan:2222", Username: "du", Password: "pw"}
	if got := store.Linux(); got != want {
		t.Fatalf("stored = %+v, want %+v", got, want)
	}
}

func TestSettingsSetPromptsForPassword(t *testing.T) {
	store := newTestStore(t)
	env, _ := testEnv("")
	var prompted string
	env.ReadPassword = func(prompt string) (string, error) {
		prompted = prompt
		return "typed", nil
	}

	if err := RunSettings(store, []string{"set", "--username", "du"}, env); err != nil {
		t.Fatalf("set: %v", err)
	}
	if prompted == "" {
		t.Fatal("expected a password prompt")
	}
	if got := store.Value(config.KeyLinuxPassword); got != "typed" {
		t.Fatalf("password = %q", got)
	}
}

func TestSettingsShowMasksPassword(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveLinux(config.LinuxSettings{Address: "ubuntu.lan", Username: "du", Password: "hunter2"}); err != nil {
		t.Fatalf("SaveLinux: %v", err)
	}

	env, out := testEnv("")
	if err := RunSettings(store, []string{"show"}, env); err != nil {
		t.Fatalf("show: %v", err)
	}
	if strings.Contains(out.String(), "hunter2") {
		t.Fatal("password leaked in show output")
	}
	if !strings.Contains(out.String(), "ubuntu.lan") {
		t.Fatalf("missing address in %q", out.String())
	}
}

func TestSettingsClearConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		input     string
		wantKeys  int
		wantInOut string
	}{
		{"declined", []string{"clear"}, "n\n", 3, "Aborted."},
		{"confirmed", []string{"clear"}, "yes\n", 0, "Removed 3"},
		{"forced", []string{"clear", "-y"}, "", 0, "Removed 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			if err := store.SaveLinux(config.LinuxSettings{Address: "a", Username: "b", Password: "c"}); err != nil {
				t.Fatalf("SaveLinux: %v", err)
			}

			env, out := testEnv(tt.input)
			if err := RunSettings(store, tt.args, env); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if got := len(store.Keys()); got != tt.wantKeys {
				t.Errorf("keys left = %d, want %d", got, tt.wantKeys)
			}
			if !strings.Contains(out.String(), tt.wantInOut) {
				t.Errorf("output %q missing %q", out.String(), tt.wantInOut)
			}
		})
	}
}

func TestSettingsExportImport(t *testing.T) {
	src := newTestStore(t)
	if err := src.SaveLinux(config.LinuxSettings{Address: "ubuntu.lan", Username: "du", Password: "pw"}); err != nil {
		t.Fatalf("SaveLinux: %v", err)
	}
	path := filepath.Join(t.TempDir(), "monswitch.yaml")

	env, _ := testEnv("")
	if err := RunSettings(src, []string{"export", "-o", path}, env); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := newTestStore(t)
	if err := RunSettings(dst, []string{"import", "-f", path}, env); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := dst.Linux(); got != src.Linux() {
		t.Fatalf("imported %+v, want %+v", got, src.Linux())
	}
}

func TestSettingsUsageErrors(t *testing.T) {
	store := newTestStore(t)
	env, _ := testEnv("")
	for _, args := range [][]string{{}, {"bogus"}, {"import"}, {"set", "--nope"}} {
		if err := RunSettings(store, args, env); !errors.Is(err, ErrUsage) {
			t.Errorf("RunSettings(%v) = %v, want ErrUsage", args, err)
		}
	}
}
