package reconcile

import (
	"strings"

	"github.com/cmac1989/AFWorkshopMover/internal/model"
	"github.com/cmac1989/AFWorkshopMover/internal/parser"
)

// DefaultFullCapacitySentinel 容量标记达到该值表示场次已满
const DefaultFullCapacitySentinel = "25"

// Resolver 座位解析器：把报名按输入顺序映射到花名册行。
// 贪心、顺序相关：不跨报名回溯，与源数据只追加、人工维护的性质一致。
type Resolver struct {
	matcher          *parser.TitleMatcher
	capacitySentinel string
}

// NewResolver 创建解析器
func NewResolver(capacitySentinel string) *Resolver {
	if capacitySentinel == "" {
		capacitySentinel = DefaultFullCapacitySentinel
	}
	return &Resolver{
		matcher:          parser.NewTitleMatcher(),
		capacitySentinel: capacitySentinel,
	}
}

// Cursors 每个规范标题已占用的最后行号。
// 显式随调用传入传出，解析过程本身无共享状态，便于测试。
type Cursors map[string]int

// Resolve 计算报名下标到花名册行号的映射。
// 同一标题的重复场次按输入顺序依次填充：游标记录上一次占用的行，
// 下一条同标题报名从游标之后继续扫描，保证一轮解析内一个空位只被占用一次。
// 无法解析的记录与补缴记录不占用游标。
func (r *Resolver) Resolve(regs []*model.Registration, roster []*model.RosterRow, cursors Cursors) (model.Assignment, Cursors) {
	if cursors == nil {
		cursors = make(Cursors)
	}
	assignment := make(model.Assignment)

	for i, reg := range regs {
		switch reg.Kind {
		case model.KindInvalid:
			continue
		case model.KindBalanceUpdate:
			if rowNo := r.resolveBalance(reg, roster); rowNo > 0 {
				assignment[i] = rowNo
			}
		case model.KindNewRegistration:
			key := parser.CanonicalizeTitle(reg.Title)
			if rowNo := r.resolveNew(reg, roster, cursors[key]); rowNo > 0 {
				assignment[i] = rowNo
				cursors[key] = rowNo
			}
		}
	}

	return assignment, cursors
}

// resolveBalance 补缴记录：从头扫描，标题模糊匹配且姓名精确匹配的第一行。
// 补缴针对的是已占用的行，不做空位/容量约束。
func (r *Resolver) resolveBalance(reg *model.Registration, roster []*model.RosterRow) int {
	first, last := reg.FullName()
	for _, row := range roster {
		if !r.matcher.Match(reg.Title, row.Title()) {
			continue
		}
		if nameEqual(model.CellAt(row.Cells, model.FieldFirstName), first) &&
			nameEqual(model.CellAt(row.Cells, model.FieldLastName), last) {
			return row.RowNo
		}
	}
	return 0
}

// resolveNew 新报名：从上一游标之后开始扫描第一处可用空位。
// 可用 = 标题匹配 + 票种为空 + 容量未满 + 背景色标记可用。
func (r *Resolver) resolveNew(reg *model.Registration, roster []*model.RosterRow, after int) int {
	for _, row := range roster {
		if row.RowNo <= after {
			continue
		}
		if !r.matcher.Match(reg.Title, row.Title()) {
			continue
		}
		if strings.TrimSpace(row.Ticket()) != "" {
			continue
		}
		if strings.TrimSpace(row.Capacity()) == r.capacitySentinel {
			continue
		}
		if !colorMarksAvailable(row.Color) {
			continue
		}
		return row.RowNo
	}
	return 0
}

// nameEqual 姓名比较：裁剪空白后不区分大小写
func nameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// colorMarksAvailable 背景色是否标记为可用空位。
// 空值与白色（不区分大小写与格式）均视为可用。
func colorMarksAvailable(color string) bool {
	c := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	switch c {
	case "", "WHITE", "FFFFFF", "FFFFFFFF":
		return true
	}
	return false
}
