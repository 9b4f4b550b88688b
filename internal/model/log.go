package model

import "strconv"

// LogEntryType 核对日志条目类型
type LogEntryType string

const (
	LogTypeNew     LogEntryType = "NEW"
	LogTypeBalance LogEntryType = "BALANCE"
	LogTypeError   LogEntryType = "ERROR"
)

// RowNA 未解析到目标行时的占位行号
const RowNA = "N/A"

// LogEntry 一条核对结果（预演与提交共用）
type LogEntry struct {
	Row     string       `json:"row"` // 花名册行号，未解析为 "N/A"
	Type    LogEntryType `json:"type"`
	Details string       `json:"details"`
}

// NewLogEntry 构造日志条目，rowNo <= 0 记为 N/A
func NewLogEntry(rowNo int, typ LogEntryType, details string) LogEntry {
	row := RowNA
	if rowNo > 0 {
		row = strconv.Itoa(rowNo)
	}
	return LogEntry{Row: row, Type: typ, Details: details}
}

// BatchResult 一次提交的汇总
type BatchResult struct {
	BatchID  string     `json:"batchId"`
	Applied  int        `json:"applied"`
	NewCount int        `json:"newCount"`
	Balances int        `json:"balances"`
	Errors   int        `json:"errors"`
	Summary  string     `json:"summary"`
	Entries  []LogEntry `json:"entries"`
}
