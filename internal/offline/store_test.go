package offline

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestListOnEmptyEntityIsEmpty(t *testing.T) {
	store := openTestStore(t)
	rows, err := store.List(context.Background(), "jobs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty list, got %d rows", len(rows))
	}
}

func TestPutAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "jobs", "a", []byte(`{"title":"flyers"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, "jobs", "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"title":"flyers"}` {
		t.Fatalf("unexpected payload %q", got)
	}

	// Same id, other entity: its own bucket.
	if _, err := store.Get(ctx, "customers", "a"); err == nil {
		t.Fatalf("expected miss for other entity")
	}
}

func TestSnapshotReplacesEntity(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "jobs", "old", []byte(`1`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	err := store.Snapshot(ctx, "jobs", map[string][]byte{
		"a": []byte(`2`),
		"b": []byte(`3`),
	})
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	rows, err := store.List(ctx, "jobs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected snapshot to replace entity rows, got %d", len(rows))
	}
	if _, err := store.Get(ctx, "jobs", "old"); err == nil {
		t.Fatalf("expected old row to be gone after snapshot")
	}
}

func TestEnqueueAndDrainOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, payload := range []string{"first", "second", "third"} {
		if err := store.Enqueue(ctx, "jobs", "update_status", []byte(payload)); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	actions, err := store.PendingActions(ctx)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("expected 3 pending actions, got %d", len(actions))
	}
	for i, want := range []string{"first", "second", "third"} {
		if string(actions[i].Payload) != want {
			t.Fatalf("action %d out of order: got %q want %q", i, actions[i].Payload, want)
		}
	}

	if err := store.DeleteAction(ctx, actions[0].ID); err != nil {
		t.Fatalf("delete action: %v", err)
	}
	actions, err = store.PendingActions(ctx)
	if err != nil {
		t.Fatalf("pending after delete: %v", err)
	}
	if len(actions) != 2 || string(actions[0].Payload) != "second" {
		t.Fatalf("expected remaining actions in order, got %+v", actions)
	}
}
