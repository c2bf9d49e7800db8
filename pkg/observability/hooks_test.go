package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingLayoutHooks struct {
	starts    int
	completes int
	lastErr   error
}

func (h *recordingLayoutHooks) OnLayoutStart(ctx context.Context, project string, componentCount int) {
	h.starts++
}

func (h *recordingLayoutHooks) OnLayoutComplete(ctx context.Context, project string, nodeCount, edgeCount int, duration time.Duration, err error) {
	h.completes++
	h.lastErr = err
}

type recordingStoreHooks struct {
	loads, saves, clears int
}

func (h *recordingStoreHooks) OnPositionsLoad(ctx context.Context, project string, count int, err error) {
	h.loads++
}

func (h *recordingStoreHooks) OnPositionsSave(ctx context.Context, project string, count int, err error) {
	h.saves++
}

func (h *recordingStoreHooks) OnPositionsClear(ctx context.Context, project string, err error) {
	h.clears++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Must not panic.
	Layout().OnLayoutStart(context.Background(), "p", 3)
	Layout().OnLayoutComplete(context.Background(), "p", 3, 2, time.Millisecond, nil)
	Store().OnPositionsLoad(context.Background(), "p", 0, nil)
	Store().OnPositionsSave(context.Background(), "p", 3, nil)
	Store().OnPositionsClear(context.Background(), "p", nil)
}

func TestSetLayoutHooks(t *testing.T) {
	defer Reset()

	h := &recordingLayoutHooks{}
	SetLayoutHooks(h)

	Layout().OnLayoutStart(context.Background(), "p", 3)
	wantErr := errors.New("boom")
	Layout().OnLayoutComplete(context.Background(), "p", 0, 0, time.Millisecond, wantErr)

	if h.starts != 1 || h.completes != 1 {
		t.Errorf("expected 1 start and 1 complete, got %d and %d", h.starts, h.completes)
	}
	if !errors.Is(h.lastErr, wantErr) {
		t.Errorf("expected the error passed through, got %v", h.lastErr)
	}
}

func TestSetStoreHooks(t *testing.T) {
	defer Reset()

	h := &recordingStoreHooks{}
	SetStoreHooks(h)

	Store().OnPositionsLoad(context.Background(), "p", 0, nil)
	Store().OnPositionsSave(context.Background(), "p", 5, nil)
	Store().OnPositionsClear(context.Background(), "p", nil)

	if h.loads != 1 || h.saves != 1 || h.clears != 1 {
		t.Errorf("expected one call each, got loads=%d saves=%d clears=%d",
			h.loads, h.saves, h.clears)
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	defer Reset()

	SetLayoutHooks(nil)
	SetStoreHooks(nil)

	if Layout() == nil || Store() == nil {
		t.Error("expected nil registrations to keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	SetLayoutHooks(&recordingLayoutHooks{})
	SetStoreHooks(&recordingStoreHooks{})
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("expected layout hooks restored to no-op")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("expected store hooks restored to no-op")
	}
}
