package store

import (
	"database/sql"
	"fmt"
)

// BatchLog 一次提交的审计记录
type BatchLog struct {
	ID           int64  `json:"id"`
	BatchID      string `json:"batchId"`
	Applied      int    `json:"applied"`
	NewCount     int    `json:"newCount"`
	BalanceCount int    `json:"balanceCount"`
	ErrorCount   int    `json:"errorCount"`
	Summary      string `json:"summary"`
	CreatedAt    string `json:"createdAt"`
}

// CreateBatchLog 写入批次日志
func (s *Store) CreateBatchLog(batchID string, applied, newCount, balanceCount, errorCount int, summary string) error {
	_, err := s.db.Exec(`
		INSERT INTO batch_logs (batch_id, applied, new_count, balance_count, error_count, summary)
		VALUES (?, ?, ?, ?, ?, ?)
	`, batchID, applied, newCount, balanceCount, errorCount, summary)
	if err != nil {
		return fmt.Errorf("failed to create batch log: %w", err)
	}
	return nil
}

// LastBatchLog 最近一次提交的日志，没有则返回 found=false
func (s *Store) LastBatchLog() (BatchLog, bool, error) {
	var log BatchLog
	err := s.db.QueryRow(`
		SELECT id, batch_id, applied, new_count, balance_count, error_count, summary, created_at
		FROM batch_logs ORDER BY id DESC LIMIT 1
	`).Scan(&log.ID, &log.BatchID, &log.Applied, &log.NewCount, &log.BalanceCount, &log.ErrorCount, &log.Summary, &log.CreatedAt)
	if err == sql.ErrNoRows {
		return BatchLog{}, false, nil
	}
	if err != nil {
		return BatchLog{}, false, fmt.Errorf("failed to load last batch log: %w", err)
	}
	return log, true, nil
}

// ListBatchLogs 按时间倒序列出批次日志
func (s *Store) ListBatchLogs(limit int) ([]BatchLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, batch_id, applied, new_count, balance_count, error_count, summary, created_at
		FROM batch_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch logs: %w", err)
	}
	defer rows.Close()

	var logs []BatchLog
	for rows.Next() {
		var log BatchLog
		if err := rows.Scan(&log.ID, &log.BatchID, &log.Applied, &log.NewCount, &log.BalanceCount, &log.ErrorCount, &log.Summary, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
