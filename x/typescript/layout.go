package typescript

import "github.com/CodMac/ng-di-transform/model"

func isHorizontalSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// lineBreak 返回 offset 附近使用的换行符
func lineBreak(src []byte, offset int) string {
	if offset > len(src) {
		offset = len(src)
	}
	for i := offset; i < len(src); i++ {
		if src[i] == '\n' {
			return crlf(src, i)
		}
	}
	for i := offset - 1; i >= 0; i-- {
		if src[i] == '\n' {
			return crlf(src, i)
		}
	}
	return "\n"
}

func crlf(src []byte, newline int) string {
	if newline > 0 && src[newline-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// lineStart 返回 offset 所在行的行首
func lineStart(src []byte, offset int) int {
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

// lineIndent 返回 offset 所在行行首的空白
func lineIndent(src []byte, offset int) string {
	start := lineStart(src, offset)
	end := start
	for end < len(src) && isHorizontalSpace(src[end]) {
		end++
	}
	return string(src[start:end])
}

// lineEnd 返回 offset 之后第一个换行符之后的位置；没有换行时返回 len(src)
func lineEnd(src []byte, offset int) int {
	for offset < len(src) {
		if src[offset] == '\n' {
			return offset + 1
		}
		offset++
	}
	return offset
}

// blankLineEnd 若 offset 开始的一行只有空白，返回该行结束位置，否则返回 -1
func blankLineEnd(src []byte, offset int) int {
	i := offset
	for i < len(src) && (isHorizontalSpace(src[i]) || src[i] == '\r') {
		i++
	}
	if i < len(src) && src[i] == '\n' {
		return i + 1
	}
	return -1
}

// prevBlankLineStart 若行首 offset 的上一行只有空白，返回上一行的行首，否则返回 -1
func prevBlankLineStart(src []byte, offset int) int {
	if offset == 0 || src[offset-1] != '\n' {
		return -1
	}
	start := lineStart(src, offset-1)
	if blankLineEnd(src, start) == offset {
		return start
	}
	return -1
}

// closesBlock offset 所在行的第一个非空白字符是否为 '}'
func closesBlock(src []byte, offset int) bool {
	i := offset
	for i < len(src) && isHorizontalSpace(src[i]) {
		i++
	}
	return i < len(src) && src[i] == '}'
}

// removalRange 计算删除一个成员时需要删除的区间，
// 独占一行的成员连同换行一起删除，并避免留下连续的空行。
func removalRange(src []byte, span model.Span) model.Span {
	start := lineStart(src, span.Start)
	ownsStart := true
	for i := start; i < span.Start; i++ {
		if !isHorizontalSpace(src[i]) {
			ownsStart = false
			break
		}
	}

	end := span.End
	for end < len(src) && (isHorizontalSpace(src[end]) || src[end] == '\r') {
		end++
	}
	ownsEnd := end >= len(src) || src[end] == '\n'

	switch {
	case ownsStart && ownsEnd:
		end = lineEnd(src, end)
		prev := prevBlankLineStart(src, start)
		if prev < 0 {
			return model.Span{Start: start, End: end}
		}
		if next := blankLineEnd(src, end); next >= 0 {
			return model.Span{Start: start, End: next}
		}
		if closesBlock(src, end) {
			return model.Span{Start: prev, End: end}
		}
		return model.Span{Start: start, End: end}
	case ownsStart:
		// 成员后面同一行还有内容
		return model.Span{Start: span.Start, End: end}
	default:
		from := span.Start
		for from > 0 && isHorizontalSpace(src[from-1]) {
			from--
		}
		return model.Span{Start: from, End: span.End}
	}
}
