package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// RevertSessionKey 回滚快照的固定会话键：只保留一份未消费的快照，
// 再次提交会静默覆盖前一份（last-commit-wins）。
const RevertSessionKey = "revert:last"

// DefaultRevertTTL 快照默认有效期
const DefaultRevertTTL = time.Hour

// RowSnapshot 单行的提交前快照
type RowSnapshot struct {
	RowNo  int      `json:"rowNo"`
	Values []string `json:"values"`
}

// SaveRevertSnapshot 保存一批行的提交前快照，覆盖同键旧快照
func (s *Store) SaveRevertSnapshot(key string, rows []RowSnapshot, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultRevertTTL
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal revert snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO revert_snapshots (key, payload, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = ?, expires_at = ?, created_at = CURRENT_TIMESTAMP
	`, key, string(payload), time.Now().Add(ttl).Unix(), string(payload), time.Now().Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("save revert snapshot: %w", err)
	}
	return nil
}

// GetRevertSnapshot 读取未过期的快照。不存在或已过期返回 found=false，
// 过期快照顺带清除。
func (s *Store) GetRevertSnapshot(key string) (rows []RowSnapshot, found bool, err error) {
	var (
		payload   string
		expiresAt int64
	)
	err = s.db.QueryRow(`SELECT payload, expires_at FROM revert_snapshots WHERE key = ?`, key).
		Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load revert snapshot: %w", err)
	}

	if time.Now().Unix() >= expiresAt {
		_ = s.DeleteRevertSnapshot(key)
		return nil, false, nil
	}

	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, false, fmt.Errorf("unmarshal revert snapshot: %w", err)
	}
	return rows, true, nil
}

// DeleteRevertSnapshot 删除快照（回滚成功后调用，快照只消费一次）
func (s *Store) DeleteRevertSnapshot(key string) error {
	_, err := s.db.Exec(`DELETE FROM revert_snapshots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete revert snapshot: %w", err)
	}
	return nil
}
