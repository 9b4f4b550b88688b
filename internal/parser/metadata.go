package parser

import "strings"

// AttendeeMeta 参会人元数据列再解析出的子字段
type AttendeeMeta struct {
	Source       string `json:"source,omitempty"`
	CertPlan     string `json:"certPlan,omitempty"`
	CertCategory string `json:"certCategory,omitempty"`
	CertStatus   string `json:"certStatus,omitempty"`
	LocationDate string `json:"locationDate,omitempty"`
	Travel       string `json:"travel,omitempty"`
}

// L1 布局的固定段偏移
const (
	l1SourceIdx       = 2
	l1CertPlanIdx     = 3
	l1CertCategoryIdx = 4
	l1MinSegments     = 4

	l2BodyStartIdx = 2
	l2MinSegments  = 5
)

// ParseMetaData 解析 L1 报名的元数据串。
// 布局为固定偏移的逗号分隔段，行程信息始终是最后一段。
// 段数不足视为格式不完整，跳过而非报错。
func ParseMetaData(blob string) (AttendeeMeta, bool) {
	segments := splitQuoted(blob)
	if len(segments) < l1MinSegments {
		return AttendeeMeta{}, false
	}

	meta := AttendeeMeta{
		Source: segmentAt(segments, l1SourceIdx),
		Travel: segments[len(segments)-1],
	}

	// 认证方案段可能带 ": <期限>" 后缀，只取方案名
	if plan := segmentAt(segments, l1CertPlanIdx); plan != "" {
		meta.CertPlan = strings.TrimSpace(strings.SplitN(plan, ":", 2)[0])
	}
	meta.CertCategory = segmentAt(segments, l1CertCategoryIdx)

	return meta, true
}

// ParseMetaDataL2 解析 L2 报名的元数据串。
// 至少 5 段；末两段依次为认证状态与行程，中间各段合并为地点/日期自由文本。
func ParseMetaDataL2(blob string) (AttendeeMeta, bool) {
	segments := splitQuoted(blob)
	if len(segments) < l2MinSegments {
		return AttendeeMeta{}, false
	}

	n := len(segments)
	meta := AttendeeMeta{
		CertStatus: segments[n-2],
		Travel:     segments[n-1],
	}
	if l2BodyStartIdx < n-2 {
		meta.LocationDate = strings.Join(segments[l2BodyStartIdx:n-2], ", ")
	}

	return meta, true
}

// splitQuoted 按逗号分段，引号内的逗号不拆分。
// 源数据里自由文本段（地址、行程）常含逗号并被导出工具加了引号，
// 所以不能用朴素的 strings.Split。
func splitQuoted(s string) []string {
	var (
		segments []string
		b        strings.Builder
		inQuote  bool
	)

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			segments = append(segments, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	segments = append(segments, strings.TrimSpace(b.String()))

	if len(segments) == 1 && segments[0] == "" {
		return nil
	}
	return segments
}

// segmentAt 取段，越界返回空串
func segmentAt(segments []string, idx int) string {
	if idx < 0 || idx >= len(segments) {
		return ""
	}
	return segments[idx]
}
