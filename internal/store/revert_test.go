package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRevertSnapshot_Roundtrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	rows := []RowSnapshot{
		{RowNo: 3, Values: []string{"Geneva L2", "", "Standard"}},
		{RowNo: 5, Values: []string{"Virtual L1", "x", ""}},
	}
	if err := s.SaveRevertSnapshot(RevertSessionKey, rows, time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := s.GetRevertSnapshot(RevertSessionKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatalf("snapshot should be found")
	}
	if len(got) != 2 || got[0].RowNo != 3 || got[1].Values[0] != "Virtual L1" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestRevertSnapshot_MissingKey(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, found, err := s.GetRevertSnapshot(RevertSessionKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("missing key should report not found")
	}
}

func TestRevertSnapshot_Expired(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	rows := []RowSnapshot{{RowNo: 1, Values: []string{"a"}}}
	if err := s.SaveRevertSnapshot(RevertSessionKey, rows, -time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	// ttl <= 0 回退为默认值，这里直接把过期时间改到过去
	if _, err := s.db.Exec(`UPDATE revert_snapshots SET expires_at = ? WHERE key = ?`,
		time.Now().Add(-time.Minute).Unix(), RevertSessionKey); err != nil {
		t.Fatalf("expire: %v", err)
	}

	_, found, err := s.GetRevertSnapshot(RevertSessionKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatalf("expired snapshot should report not found")
	}

	// 过期读取顺带清除，后续读取同样为空
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM revert_snapshots`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expired snapshot should be purged, %d left", count)
	}
}

func TestRevertSnapshot_OverwriteAndDelete(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	first := []RowSnapshot{{RowNo: 1, Values: []string{"old"}}}
	second := []RowSnapshot{{RowNo: 2, Values: []string{"new"}}}

	if err := s.SaveRevertSnapshot(RevertSessionKey, first, time.Hour); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := s.SaveRevertSnapshot(RevertSessionKey, second, time.Hour); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, found, err := s.GetRevertSnapshot(RevertSessionKey)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if len(got) != 1 || got[0].RowNo != 2 {
		t.Fatalf("second save should overwrite first: %+v", got)
	}

	if err := s.DeleteRevertSnapshot(RevertSessionKey); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, found, err = s.GetRevertSnapshot(RevertSessionKey)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if found {
		t.Fatalf("deleted snapshot should not be found")
	}
}
