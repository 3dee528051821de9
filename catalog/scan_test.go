package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestFullScan_RequestCount(t *testing.T) {
	tests := []struct {
		name         string
		rows         int
		pageSize     int
		wantRequests int
	}{
		{"empty table", 0, 10, 1},
		{"partial page", 7, 10, 1},
		{"exact page", 10, 10, 2},
		{"exact multiple", 20, 10, 3},
		{"one past multiple", 21, 10, 3},
		{"default page size exact multiple", 2 * DefaultPageSize, 0, 3},
		{"default page size one past", 2*DefaultPageSize + 1, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore(makeRows(tt.rows))
			var opts []ScanOption
			if tt.pageSize > 0 {
				opts = append(opts, WithPageSize(tt.pageSize))
			}

			tools, err := FullScan(context.Background(), store, opts...)
			if err != nil {
				t.Fatalf("FullScan failed: %v", err)
			}
			if len(tools) != tt.rows {
				t.Errorf("len(tools) = %d, want %d", len(tools), tt.rows)
			}
			if got := store.requestCount(); got != tt.wantRequests {
				t.Errorf("requests = %d, want %d", got, tt.wantRequests)
			}
		})
	}
}

func TestFullScan_SequentialOffsetsAndQuery(t *testing.T) {
	store := newMemStore(makeRows(25))

	tools, err := FullScan(context.Background(), store, WithPageSize(10))
	if err != nil {
		t.Fatalf("FullScan failed: %v", err)
	}

	if got := store.offsets(); !reflect.DeepEqual(got, []int{0, 10, 20}) {
		t.Errorf("offsets = %v, want [0 10 20]", got)
	}
	for _, q := range store.queries {
		if !q.EnabledOnly || q.Limit != 10 || !reflect.DeepEqual(q.OrderBy, DefaultOrder) {
			t.Errorf("unexpected query %+v", q)
		}
	}
	for i, tool := range tools {
		if want := makeRows(25)[i].ID; tool.ID != want {
			t.Fatalf("tools[%d].ID = %q, want %q", i, tool.ID, want)
		}
	}
}

func TestFullScan_FailureDiscardsPartialResult(t *testing.T) {
	store := newMemStore(makeRows(30))
	boom := errors.New("502 bad gateway")
	store.fail(20, boom)

	tools, err := FullScan(context.Background(), store, WithPageSize(10))
	if tools != nil {
		t.Errorf("tools = %d rows, want nil", len(tools))
	}

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("error = %v, want *ScanError", err)
	}
	if scanErr.Offset != 20 {
		t.Errorf("ScanError.Offset = %d, want 20", scanErr.Offset)
	}
	if !errors.Is(err, boom) {
		t.Error("ScanError does not unwrap to the store error")
	}
	if got := store.requestCount(); got != 3 {
		t.Errorf("requests = %d, want 3", got)
	}
}

func TestFullScan_CancelDuringPageAwaitsAndDrops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reqErr error
	store := funcStore{scan: func(reqCtx context.Context, q PageQuery) ([]Row, error) {
		cancel()
		reqErr = reqCtx.Err()
		return makeRows(q.Limit), nil
	}}

	tools, err := FullScan(ctx, store, WithPageSize(5))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if tools != nil {
		t.Errorf("tools = %v, want nil", tools)
	}
	if reqErr != nil {
		t.Errorf("in-flight request saw cancellation: %v", reqErr)
	}
}

func TestFullScan_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := newMemStore(makeRows(3))

	if _, err := FullScan(ctx, store); !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if got := store.requestCount(); got != 0 {
		t.Errorf("requests = %d, want 0", got)
	}
}

func TestFullScan_Validation(t *testing.T) {
	if _, err := FullScan(context.Background(), nil); !errors.Is(err, ErrNilStore) {
		t.Errorf("nil store error = %v, want ErrNilStore", err)
	}
	if _, err := FullScan(context.Background(), newMemStore(nil), WithPageSize(0)); !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("zero page size error = %v, want ErrInvalidPageSize", err)
	}
}

func TestFullScan_NormalizesRows(t *testing.T) {
	store := newMemStore([]Row{{ID: "x", Category: "Audio Tools", Kind: "AUDIO"}})

	tools, err := FullScan(context.Background(), store)
	if err != nil {
		t.Fatalf("FullScan failed: %v", err)
	}
	if tools[0].Category != CategoryAudio || tools[0].Kind != KindAudio {
		t.Errorf("tool = %+v", tools[0])
	}
}
