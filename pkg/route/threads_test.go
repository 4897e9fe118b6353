package route

import (
	"runtime"
	"testing"

	"github.com/kwyip/qroute/pkg/errors"
)

func envLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestThreadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		want    ThreadConfig
		wantErr bool
	}{
		{
			name: "unset means defaults",
			vars: nil,
			want: ThreadConfig{},
		},
		{
			name: "explicit thread count",
			vars: map[string]string{EnvMaxThreads: "8"},
			want: ThreadConfig{MaxThreads: 8},
		},
		{
			name: "force multithreading true",
			vars: map[string]string{EnvForceMultithreading: "true"},
			want: ThreadConfig{ForceMultithreading: true},
		},
		{
			name: "force multithreading mixed case",
			vars: map[string]string{EnvForceMultithreading: "TRUE"},
			want: ThreadConfig{ForceMultithreading: true},
		},
		{
			name: "force multithreading numeric",
			vars: map[string]string{EnvForceMultithreading: "1"},
			want: ThreadConfig{ForceMultithreading: true},
		},
		{
			name: "force multithreading off",
			vars: map[string]string{EnvForceMultithreading: "0"},
			want: ThreadConfig{},
		},
		{
			name:    "non-numeric thread count",
			vars:    map[string]string{EnvMaxThreads: "abc"},
			wantErr: true,
		},
		{
			name:    "zero thread count",
			vars:    map[string]string{EnvMaxThreads: "0"},
			wantErr: true,
		},
		{
			name:    "negative thread count",
			vars:    map[string]string{EnvMaxThreads: "-3"},
			wantErr: true,
		},
		{
			name:    "bad boolean",
			vars:    map[string]string{EnvForceMultithreading: "banana"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ThreadConfigFromEnv(envLookup(tt.vars))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("ThreadConfigFromEnv() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ThreadConfigFromEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestThreadConfigValidate(t *testing.T) {
	if err := (ThreadConfig{MaxThreads: 0}).Validate(); err != nil {
		t.Errorf("Validate() with zero MaxThreads = %v, want nil", err)
	}
	if err := (ThreadConfig{MaxThreads: 4}).Validate(); err != nil {
		t.Errorf("Validate() with positive MaxThreads = %v, want nil", err)
	}

	err := (ThreadConfig{MaxThreads: -1}).Validate()
	if err == nil {
		t.Fatal("Validate() with negative MaxThreads = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestThreadConfigWorkers(t *testing.T) {
	cpus := runtime.NumCPU()

	tests := []struct {
		name string
		tc   ThreadConfig
		want int
	}{
		{
			name: "explicit single worker",
			tc:   ThreadConfig{MaxThreads: 1},
			want: 1,
		},
		{
			name: "default is cpu count",
			tc:   ThreadConfig{},
			want: cpus,
		},
		{
			name: "request above cpu count is capped",
			tc:   ThreadConfig{MaxThreads: cpus + 7},
			want: cpus,
		},
		{
			name: "outer parallel collapses the pool",
			tc:   ThreadConfig{MaxThreads: 8, OuterParallel: true},
			want: 1,
		},
		{
			name: "outer parallel with default threads still collapses",
			tc:   ThreadConfig{OuterParallel: true},
			want: 1,
		},
		{
			name: "force overrides the guard",
			tc:   ThreadConfig{OuterParallel: true, ForceMultithreading: true},
			want: cpus,
		},
		{
			name: "force with explicit single worker",
			tc:   ThreadConfig{MaxThreads: 1, OuterParallel: true, ForceMultithreading: true},
			want: 1,
		},
		{
			name: "force without outer parallelism changes nothing",
			tc:   ThreadConfig{MaxThreads: 1, ForceMultithreading: true},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tc.Workers(); got != tt.want {
				t.Errorf("Workers() = %d, want %d", got, tt.want)
			}
		})
	}
}
