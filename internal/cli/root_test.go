package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/kwyip/qroute/pkg/route"
)

// clearThreadEnv unsets the routing thread variables for the duration of a
// test, restoring any prior values afterwards.
func clearThreadEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{route.EnvMaxThreads, route.EnvForceMultithreading} {
		if v, ok := os.LookupEnv(key); ok {
			t.Setenv(key, v)
			os.Unsetenv(key)
		}
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"route", "topology", "cache", "serve", "completion"}
	registered := make(map[string]bool)
	for _, cmd := range root.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := defaultCacheDir()
	if err != nil {
		t.Fatalf("defaultCacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("defaultCacheDir() = %q, want %q", dir, expected)
	}
}

func TestDefaultCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := defaultCacheDir()
	if err != nil {
		t.Fatalf("defaultCacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("defaultCacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFlagOverride(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cacheDirOpt = "/var/cache/custom"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/var/cache/custom" {
		t.Errorf("cacheDir() = %q, want flag value", dir)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to json", "", []string{"json"}},
		{"single format", "qasm", []string{"qasm"}},
		{"multiple formats", "json,qasm", []string{"json", "qasm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"empty is nil", "", nil, false},
		{"single", "3", []int{3}, false},
		{"multiple", "2,0,1", []int{2, 0, 1}, false},
		{"spaces tolerated", "2, 0, 1", []int{2, 0, 1}, false},
		{"not a number", "2,x,1", nil, true},
		{"trailing comma", "2,0,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLayout(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLayout(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseLayout(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestThreadConfig(t *testing.T) {
	clearThreadEnv(t)

	tc, err := threadConfig(0, false)
	if err != nil {
		t.Fatalf("threadConfig() error: %v", err)
	}
	if tc.MaxThreads != 0 || tc.ForceMultithreading || tc.OuterParallel {
		t.Errorf("default config = %+v, want zero value", tc)
	}
}

func TestThreadConfigFlagOverrides(t *testing.T) {
	clearThreadEnv(t)

	tc, err := threadConfig(4, true)
	if err != nil {
		t.Fatalf("threadConfig() error: %v", err)
	}
	if tc.MaxThreads != 4 {
		t.Errorf("MaxThreads = %d, want 4", tc.MaxThreads)
	}
	if !tc.ForceMultithreading {
		t.Error("ForceMultithreading should be set by the flag")
	}
}

func TestThreadConfigEnvThenFlag(t *testing.T) {
	clearThreadEnv(t)
	t.Setenv(route.EnvMaxThreads, "2")

	// Flag wins over the environment.
	tc, err := threadConfig(8, false)
	if err != nil {
		t.Fatalf("threadConfig() error: %v", err)
	}
	if tc.MaxThreads != 8 {
		t.Errorf("MaxThreads = %d, want flag value 8", tc.MaxThreads)
	}
}

func TestThreadConfigRejectsNegativeFlag(t *testing.T) {
	clearThreadEnv(t)

	if _, err := threadConfig(-1, false); err == nil {
		t.Error("threadConfig(-1) should fail validation")
	}
}

func TestThreadConfigRejectsBadEnv(t *testing.T) {
	clearThreadEnv(t)
	t.Setenv(route.EnvMaxThreads, "lots")

	if _, err := threadConfig(0, false); err == nil {
		t.Error("threadConfig should fail on a non-integer environment value")
	}
}
