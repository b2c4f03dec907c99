package core

import (
	"errors"
	"fmt"
	"sort"
)

var ErrOverlappingEdits = errors.New("overlapping text edits")

// TextEdit 表示一次文本替换
type TextEdit struct {
	StartOffset int // 起始字节（包含）
	EndOffset   int // 结束字节（不包含）
	NewText     string
}

// EditBuilder 累积一个文件的文本编辑
type EditBuilder struct {
	Edits []TextEdit
}

func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange 将 [start, end) 替换为 newText
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

func (b *EditBuilder) Len() int { return len(b.Edits) }

// ApplyEdits 返回应用编辑后的新源码，不修改 source。
// 同一位置的多个插入按添加顺序出现在结果中。
func ApplyEdits(source []byte, edits []TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := edits[order[a]], edits[order[b]]
		if ea.StartOffset != eb.StartOffset {
			return ea.StartOffset > eb.StartOffset
		}
		// 起点相同时先替换区间，再处理插入
		if ra, rb := ea.EndOffset > ea.StartOffset, eb.EndOffset > eb.StartOffset; ra != rb {
			return ra
		}
		return order[a] > order[b]
	})

	out := append([]byte(nil), source...)
	limit := len(source)
	for _, idx := range order {
		e := edits[idx]
		if e.StartOffset < 0 || e.EndOffset < e.StartOffset || e.EndOffset > len(source) {
			return nil, fmt.Errorf("edit [%d,%d) out of range (source has %d bytes)", e.StartOffset, e.EndOffset, len(source))
		}
		if e.EndOffset > limit {
			return nil, fmt.Errorf("%w: [%d,%d)", ErrOverlappingEdits, e.StartOffset, e.EndOffset)
		}
		limit = e.StartOffset

		tail := append([]byte(e.NewText), out[e.EndOffset:]...)
		out = append(out[:e.StartOffset], tail...)
	}
	return out, nil
}
