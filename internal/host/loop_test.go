package host

import (
	"context"
	"testing"
	"time"

	"github.com/1broseidon/subcover/internal/settings"
)

func TestLoop_MarkDirtyCoalesces(t *testing.T) {
	store := settings.NewStore(settings.Defaults())
	l := NewLoop(nil, &fakeWindow{}, store, nil)

	store.SetSize(1200, 200)
	store.SetSize(1300, 200)
	store.SetSize(1400, 200)

	if n := len(l.dirty); n != 1 {
		t.Fatalf("dirty queue length = %d, want 1", n)
	}
}

func TestLoop_UnchangedSettingsDoNotMarkDirty(t *testing.T) {
	store := settings.NewStore(settings.Defaults())
	l := NewLoop(nil, &fakeWindow{}, store, nil)

	store.SetSize(1000, 200)
	if n := len(l.dirty); n != 0 {
		t.Fatalf("dirty queue length = %d, want 0", n)
	}
}

func TestLoop_DoHonoursContext(t *testing.T) {
	store := settings.NewStore(settings.Defaults())
	l := NewLoop(nil, &fakeWindow{}, store, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ran := false
	if err := l.Do(ctx, func() { ran = true }); err == nil {
		t.Fatalf("expected Do to time out without a running loop")
	}
	if ran {
		t.Fatalf("fn ran without a loop")
	}
}

func TestLoop_DoRunsOnLoopGoroutine(t *testing.T) {
	store := settings.NewStore(settings.Defaults())
	l := NewLoop(nil, &fakeWindow{}, store, nil)

	// Stand-in for Serve's call dispatch.
	go func() {
		fn := <-l.calls
		fn()
	}()

	ran := false
	if err := l.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !ran {
		t.Fatalf("fn did not run")
	}
}
