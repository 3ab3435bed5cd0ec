// Package section 将一段自由文本按标题关键字切分为固定的几个小节。
//
// 扫描是逐行的有限状态机：某行只要以子串形式包含任意一个标签，就被视为标题行，
// 游标切换到标签列表中第一个匹配的标签（按列表顺序，而非在行中出现的位置），
// 标题行本身丢弃。正文中恰好出现标签文字的行也会被当成标题，这是已知的误判。
// 更稳健的做法是让模型输出带分隔符的结构化格式，这里保留基于关键字的行为。
package section

import "strings"

// DefaultLabels 竞品分析的五个固定小节
var DefaultLabels = []string{
	"Content Strategy",
	"Keyword Analysis",
	"Market Presence",
	"Competitive Advantages",
	"Actionable Recommendations",
}

// Sectionize 切分文本，结果中始终包含 labels 的全部 key，未匹配的为空字符串
func Sectionize(text string, labels []string) map[string]string {
	out := make(map[string]string, len(labels))
	for _, l := range labels {
		out[l] = ""
	}

	var (
		current string
		active  bool
		buf     []string
	)
	flush := func() {
		if active && len(buf) > 0 {
			out[current] = strings.Join(buf, "\n")
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if label, ok := match(line, labels); ok {
			flush()
			current, active = label, true
			continue
		}
		if line == "" || !active {
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return out
}

// match 返回列表顺序中第一个出现在 line 里的标签
func match(line string, labels []string) (string, bool) {
	for _, l := range labels {
		if l != "" && strings.Contains(line, l) {
			return l, true
		}
	}
	return "", false
}
