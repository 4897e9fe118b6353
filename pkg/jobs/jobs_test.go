package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kwyip/qroute/pkg/route"
)

func TestNewJob(t *testing.T) {
	req := Request{Circuit: "{}", CircuitFormat: "json", Topology: "line:3"}

	a := New(req)
	b := New(req)

	if a.Status != StatusQueued {
		t.Errorf("Status = %q, want %q", a.Status, StatusQueued)
	}
	if a.ID == "" || b.ID == "" {
		t.Error("job IDs should be set")
	}
	if a.ID == b.ID {
		t.Error("job IDs should be unique")
	}
	if a.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if a.Finished() {
		t.Error("new job should not be finished")
	}
}

func TestJobLifecycle(t *testing.T) {
	j := New(Request{Topology: "line:3"})

	j.Start()
	if j.Status != StatusRunning || j.StartedAt == nil {
		t.Errorf("after Start: status=%q startedAt=%v", j.Status, j.StartedAt)
	}
	if j.Finished() {
		t.Error("running job should not be finished")
	}

	res := &route.Result{SwapCount: 2}
	j.Complete(res)
	if j.Status != StatusDone || j.Result != res || j.FinishedAt == nil {
		t.Errorf("after Complete: %+v", j)
	}
	if !j.Finished() {
		t.Error("done job should be finished")
	}

	f := New(Request{Topology: "line:3"})
	f.Start()
	f.Fail(errors.New("boom"))
	if f.Status != StatusFailed || f.Error != "boom" {
		t.Errorf("after Fail: status=%q error=%q", f.Status, f.Error)
	}
	if !f.Finished() {
		t.Error("failed job should be finished")
	}
}

func TestRequestPipelineOptions(t *testing.T) {
	req := Request{
		Circuit:       "{}",
		CircuitFormat: "json",
		Topology:      "grid:2x2",
		Seed:          7,
		Trials:        4,
		AttemptCap:    9,
		Layout:        []int{1, 0},
		Formats:       []string{"qasm"},
	}

	opts := req.PipelineOptions()
	if opts.Circuit != req.Circuit || opts.CircuitFormat != req.CircuitFormat {
		t.Errorf("circuit fields not carried over: %+v", opts)
	}
	if opts.Topology != req.Topology || opts.Seed != req.Seed || opts.Trials != req.Trials {
		t.Errorf("routing fields not carried over: %+v", opts)
	}
	if opts.AttemptCap != req.AttemptCap || len(opts.Layout) != 2 || len(opts.Formats) != 1 {
		t.Errorf("remaining fields not carried over: %+v", opts)
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	j := New(Request{Topology: "line:3"})
	if err := store.Put(ctx, j); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != j.ID || got.Status != StatusQueued {
		t.Errorf("Get() = %+v, want %+v", got, j)
	}

	// The store copies on Put, so later mutations stay invisible until the
	// next Put.
	j.Start()
	again, _ := store.Get(ctx, j.ID)
	if again.Status != StatusQueued {
		t.Errorf("stored job changed without Put: %q", again.Status)
	}

	if err := store.Put(ctx, j); err != nil {
		t.Fatal(err)
	}
	updated, _ := store.Get(ctx, j.ID)
	if updated.Status != StatusRunning {
		t.Errorf("Status = %q after update, want %q", updated.Status, StatusRunning)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		j := New(Request{Topology: "line:3"})
		j.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		ids = append(ids, j.ID)
		if err := store.Put(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d jobs, want 3", len(all))
	}
	// Newest first
	if all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("List() order = [%s %s %s], want newest first", all[0].ID, all[1].ID, all[2].ID)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].ID != ids[2] {
		t.Errorf("List(2) = %d jobs starting with %s", len(limited), limited[0].ID)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	j := New(Request{Topology: "line:3"})
	if err := store.Put(ctx, j); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, j.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, j.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, j.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	oldDone := New(Request{Topology: "line:3"})
	oldDone.Complete(&route.Result{})
	oldDone.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)

	oldRunning := New(Request{Topology: "line:3"})
	oldRunning.Start()
	oldRunning.CreatedAt = time.Now().UTC().Add(-2 * time.Hour)

	freshDone := New(Request{Topology: "line:3"})
	freshDone.Complete(&route.Result{})

	for _, j := range []*Job{oldDone, oldRunning, freshDone} {
		if err := store.Put(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := store.Cleanup(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Cleanup() removed %d jobs, want 1", removed)
	}

	if _, err := store.Get(ctx, oldDone.ID); !errors.Is(err, ErrNotFound) {
		t.Error("old finished job should be removed")
	}
	if _, err := store.Get(ctx, oldRunning.ID); err != nil {
		t.Error("running job should survive cleanup regardless of age")
	}
	if _, err := store.Get(ctx, freshDone.ID); err != nil {
		t.Error("recently finished job should survive cleanup")
	}
}
