package parser

import "strings"

// 经验调参值：阈值与停用词针对现有标题词表调出，不做通用化推广。
const (
	// TokenSimilarityThreshold 词重叠相似度阈值
	TokenSimilarityThreshold = 0.4
	// MinTokenLength 参与重叠统计的最小词长
	MinTokenLength = 3
)

// TitleStopwords 主地点提取时跳过的词：品牌、级别、培训、语言代码。
// "virtual" 不是停用词：线上场次把它当作地点用（"Virtual L1"）。
var TitleStopwords = map[string]bool{
	"animal":   true,
	"flow":     true,
	"level":    true,
	"nivel":    true,
	"training": true,
	"workshop": true,
	"eng":      true,
	"esp":      true,
	"l1":       true,
	"l2":       true,
	"l3":       true,
}

// TitleMatcher 标题模糊匹配器。
// 标题在语言（英/西）、标点、缩写上都不稳定，只做精确匹配会漏掉有效报名，
// 因此按由严到宽的顺序逐级降级，先成功者生效，绝不降级到"永远匹配"。
type TitleMatcher struct{}

// NewTitleMatcher 创建匹配器
func NewTitleMatcher() *TitleMatcher {
	return &TitleMatcher{}
}

// Match 判定两个规范化标题是否指同一场次
func (m *TitleMatcher) Match(a, b string) bool {
	a = CanonicalizeTitle(a)
	b = CanonicalizeTitle(b)
	if a == "" || b == "" {
		return false
	}

	// 1. 精确相等
	if a == b {
		return true
	}

	// 2. 任一方向的完整包含
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	// 3. 词重叠相似度
	if m.tokenSimilarity(a, b) > TokenSimilarityThreshold {
		return true
	}

	// 4. 兜底：主地点词相等
	la := mainLocationToken(a)
	lb := mainLocationToken(b)
	return la != "" && lb != "" && la == lb
}

// tokenSimilarity 相似度 = 共同词数 / max(词数A, 词数B)，仅统计长度大于 2 的词
func (m *TitleMatcher) tokenSimilarity(a, b string) float64 {
	tokensA := significantTokens(a)
	tokensB := significantTokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}

	matches := 0
	for _, t := range tokensA {
		if setB[t] {
			matches++
		}
	}

	denom := len(tokensA)
	if len(tokensB) > denom {
		denom = len(tokensB)
	}
	return float64(matches) / float64(denom)
}

// significantTokens 拆词并过滤短词
func significantTokens(s string) []string {
	var out []string
	for _, t := range strings.Fields(s) {
		if len(t) >= MinTokenLength {
			out = append(out, t)
		}
	}
	return out
}

// mainLocationToken 取第一个非停用词作为主地点词，没有则返回空串
func mainLocationToken(s string) string {
	for _, t := range strings.Fields(s) {
		if !TitleStopwords[t] {
			return t
		}
	}
	return ""
}
