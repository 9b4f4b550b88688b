package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// WorkshopTitle 从标题解析出的 {地点, 级别}
type WorkshopTitle struct {
	Location string `json:"location"`
	Level    int    `json:"level"`
}

// String 规范显示形式 "<Location> L<n>"
func (t WorkshopTitle) String() string {
	return fmt.Sprintf("%s L%d", t.Location, t.Level)
}

// Canonical 规范匹配键：去重音、小写、压缩空白的 "<location> l<n>"
func (t WorkshopTitle) Canonical() string {
	return CanonicalizeTitle(t.String())
}

// 标题来自两套系统：市场文案与内部排期，两种格式都要尝试，先匹配者生效。
// 两个字段缺一不可，只认出级别或只认出地点都视为不可解析。
var (
	// 品牌格式: "Animal Flow Level/Nivel <n> <Location> (...)"
	brandTitleRe = regexp.MustCompile(`(?i)Animal Flow\s+(?:Level|Nivel)\s*(\d+)\s+(.+?)\s*\(`)
	// 缩写格式: "<Location> L<n>"（含 Virtual 排期标题）
	shortTitleRe = regexp.MustCompile(`(?i)^(.+?)\s+L(\d+)\b`)
)

// ParseTitle 解析自由文本标题，两种格式均不匹配时 ok 为 false
func ParseTitle(raw string) (WorkshopTitle, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return WorkshopTitle{}, false
	}

	if m := brandTitleRe.FindStringSubmatch(raw); m != nil {
		level, _ := strconv.Atoi(m[1])
		return WorkshopTitle{Location: strings.TrimSpace(m[2]), Level: level}, true
	}

	if m := shortTitleRe.FindStringSubmatch(raw); m != nil {
		level, _ := strconv.Atoi(m[2])
		return WorkshopTitle{Location: strings.TrimSpace(m[1]), Level: level}, true
	}

	return WorkshopTitle{}, false
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalizeTitle 生成规范匹配键：去重音、小写、去标点、压缩空白。
// 幂等：对已规范化的串再调用结果不变。
func CanonicalizeTitle(s string) string {
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
