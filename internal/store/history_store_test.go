package store_test

import (
	"context"
	"testing"
	"time"

	"moola/internal/domain"
	"moola/internal/store"
)

func TestHistory_AppendListNewestFirst(t *testing.T) {
	ctx := context.Background()
	var history domain.HistoryStore = store.NewHistoryFileStore(t.TempDir())

	for i, id := range []string{"tx-1", "tx-2", "tx-3"} {
		tx := domain.Transaction{
			ID:        id,
			Service:   domain.ServiceAirtime,
			Amount:    int64(100 * (i + 1)),
			Status:    domain.TransactionSuccess,
			CreatedAt: time.Unix(int64(i), 0).UTC(),
		}
		if err := history.Append(ctx, tx); err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	got, err := history.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "tx-3" || got[1].ID != "tx-2" {
		t.Fatalf("list = %+v", got)
	}

	all, err := history.List(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("all = %d records, err=%v", len(all), err)
	}
}

func TestHistory_EmptyList(t *testing.T) {
	got, err := store.NewHistoryFileStore(t.TempDir()).List(context.Background(), 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v err=%v", got, err)
	}
}
