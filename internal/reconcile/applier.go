package reconcile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmac1989/AFWorkshopMover/internal/model"
	"github.com/cmac1989/AFWorkshopMover/internal/parser"
)

// PricingConfig 分档定价（提交时按最终解析标题的级别取档）
type PricingConfig struct {
	BaseRate float64 `toml:"base_rate"` // 常规场次
	TierRate float64 `toml:"tier_rate"` // L2/L3 场次
}

// DefaultPricing 默认定价
var DefaultPricing = PricingConfig{BaseRate: 350, TierRate: 475}

// CellWrite 一次单元格写入
type CellWrite struct {
	Field model.Field
	Value string
}

// RowDelta 针对一行花名册的写回增量，预演与提交共用同一份计算结果
type RowDelta struct {
	RegIndex int
	RowNo    int
	Kind     model.RecordKind
	Writes   []CellWrite
	Note     string // 提交时附在标题单元格上的批注
	Details  string // 预演日志描述
}

// RowWriter 花名册写回目标（由 sheet 包实现）
type RowWriter interface {
	SetCell(rowNo, col int, value string) error
	MarkRowCompleted(rowNo int) error
	AddNote(rowNo, col int, note string) error
}

// Applier 字段更新器：计算增量并按模式预演或提交
type Applier struct {
	pricing PricingConfig
}

// NewApplier 创建更新器
func NewApplier(pricing PricingConfig) *Applier {
	if pricing.BaseRate == 0 && pricing.TierRate == 0 {
		pricing = DefaultPricing
	}
	return &Applier{pricing: pricing}
}

// Plan 为已解析的映射计算逐行增量，并生成完整的核对日志。
// 未解析到目标行的记录生成 ERROR 条目（行号 N/A），不中断其余记录。
func (a *Applier) Plan(regs []*model.Registration, assignment model.Assignment, roster []*model.RosterRow) ([]RowDelta, []model.LogEntry) {
	byRowNo := make(map[int]*model.RosterRow, len(roster))
	for _, row := range roster {
		byRowNo[row.RowNo] = row
	}

	var (
		deltas  []RowDelta
		entries []model.LogEntry
	)

	for i, reg := range regs {
		if reg.Kind == model.KindInvalid {
			entries = append(entries, model.NewLogEntry(0, model.LogTypeError,
				fmt.Sprintf("标题无法解析: %q (%s %s)", reg.RawTitle, reg.FirstName, reg.LastName)))
			continue
		}

		rowNo, ok := assignment[i]
		if !ok {
			entries = append(entries, model.NewLogEntry(0, model.LogTypeError,
				fmt.Sprintf("未找到目标行: %s (%s %s)", reg.Title, reg.FirstName, reg.LastName)))
			continue
		}

		target := byRowNo[rowNo]
		if target == nil {
			entries = append(entries, model.NewLogEntry(0, model.LogTypeError,
				fmt.Sprintf("目标行 %d 不在花名册快照内: %s", rowNo, reg.Title)))
			continue
		}

		var delta RowDelta
		if reg.Kind == model.KindBalanceUpdate {
			delta = a.planBalance(i, reg, target)
			entries = append(entries, model.NewLogEntry(rowNo, model.LogTypeBalance, delta.Details))
		} else {
			delta = a.planNew(i, reg, target)
			entries = append(entries, model.NewLogEntry(rowNo, model.LogTypeNew, delta.Details))
		}
		deltas = append(deltas, delta)
	}

	return deltas, entries
}

// planBalance 补缴：读当前实付金额，加上本次金额后写回
func (a *Applier) planBalance(regIndex int, reg *model.Registration, target *model.RosterRow) RowDelta {
	current := parseAmount(model.CellAt(target.Cells, model.FieldAmountPaid))
	add := parseAmount(reg.AmountPaid)
	sum := current + add

	return RowDelta{
		RegIndex: regIndex,
		RowNo:    target.RowNo,
		Kind:     model.KindBalanceUpdate,
		Writes: []CellWrite{
			{Field: model.FieldAmountPaid, Value: formatAmount(sum)},
		},
		Note: fmt.Sprintf("补缴 %s（交易号 %s）", reg.AmountPaid, reg.Transaction),
		Details: fmt.Sprintf("%s %s 补缴 %s：实付 %s → %s",
			reg.FirstName, reg.LastName, formatAmount(add), formatAmount(current), formatAmount(sum)),
	}
}

// planNew 新报名：写入全部非空字段，费用按最终标题级别分档推导，
// L1/L2 再解析元数据串并写入子字段。
func (a *Applier) planNew(regIndex int, reg *model.Registration, target *model.RosterRow) RowDelta {
	totalCost := a.pricing.BaseRate
	if reg.Level == 2 || reg.Level == 3 {
		totalCost = a.pricing.TierRate
	}

	writes := []CellWrite{
		{Field: model.FieldTicketType, Value: reg.TicketType},
		{Field: model.FieldTotalCost, Value: formatAmount(totalCost)},
	}

	optional := []CellWrite{
		{Field: model.FieldTransaction, Value: reg.Transaction},
		{Field: model.FieldFirstName, Value: reg.FirstName},
		{Field: model.FieldLastName, Value: reg.LastName},
		{Field: model.FieldEmail, Value: reg.Email},
		{Field: model.FieldDate, Value: reg.Date},
		{Field: model.FieldCoupon, Value: reg.Coupon},
		{Field: model.FieldCouponCode, Value: reg.CouponCode},
		{Field: model.FieldAffiliate, Value: reg.Affiliate},
		{Field: model.FieldNotes, Value: reg.Notes},
		{Field: model.FieldAmountPaid, Value: reg.AmountPaid},
		{Field: model.FieldBalance, Value: reg.Balance},
		{Field: model.FieldWaiver, Value: reg.Waiver},
		{Field: model.FieldResidency, Value: reg.Residency},
		{Field: model.FieldPhone, Value: reg.Phone},
		{Field: model.FieldMetadata, Value: reg.Metadata},
	}
	var written []string
	for _, w := range optional {
		if w.Value != "" {
			writes = append(writes, w)
			written = append(written, string(w.Field))
		}
	}

	writes = append(writes, a.metaWrites(reg)...)

	return RowDelta{
		RegIndex: regIndex,
		RowNo:    target.RowNo,
		Kind:     model.KindNewRegistration,
		Writes:   writes,
		Note:     fmt.Sprintf("报名导入（交易号 %s）", reg.Transaction),
		Details: fmt.Sprintf("%s %s → %s，费用 %s，写入字段: %s",
			reg.FirstName, reg.LastName, reg.Title, formatAmount(totalCost), strings.Join(written, ", ")),
	}
}

// metaWrites 元数据子字段写入。解析失败（段数不足等）直接跳过，
// 主字段写入照常进行。
func (a *Applier) metaWrites(reg *model.Registration) []CellWrite {
	if reg.Metadata == "" {
		return nil
	}

	var (
		meta parser.AttendeeMeta
		ok   bool
	)
	switch reg.Level {
	case 1:
		meta, ok = parser.ParseMetaData(reg.Metadata)
	case 2:
		meta, ok = parser.ParseMetaDataL2(reg.Metadata)
	default:
		return nil
	}
	if !ok {
		return nil
	}

	var writes []CellWrite
	for _, w := range []CellWrite{
		{Field: model.FieldSource, Value: meta.Source},
		{Field: model.FieldCertPlan, Value: meta.CertPlan},
		{Field: model.FieldCertCategory, Value: meta.CertCategory},
		{Field: model.FieldCertStatus, Value: meta.CertStatus},
		{Field: model.FieldLocationDate, Value: meta.LocationDate},
		{Field: model.FieldTravel, Value: meta.Travel},
	} {
		if w.Value != "" {
			writes = append(writes, w)
		}
	}
	return writes
}

// Commit 执行一组增量。逐行写入；新报名行写完后做完成标记并附批注。
func (a *Applier) Commit(deltas []RowDelta, w RowWriter) error {
	for _, d := range deltas {
		for _, write := range d.Writes {
			if err := w.SetCell(d.RowNo, model.Col(write.Field), write.Value); err != nil {
				return fmt.Errorf("write row %d field %s: %w", d.RowNo, write.Field, err)
			}
		}
		if d.Kind == model.KindNewRegistration {
			if err := w.MarkRowCompleted(d.RowNo); err != nil {
				return fmt.Errorf("mark row %d: %w", d.RowNo, err)
			}
		}
		if d.Note != "" {
			if err := w.AddNote(d.RowNo, model.Col(model.FieldTitle), d.Note); err != nil {
				return fmt.Errorf("note row %d: %w", d.RowNo, err)
			}
		}
	}
	return nil
}

// parseAmount 金额安全转换：剔除货币符号与千分位
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(s, "€")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// formatAmount 金额输出：整数不带小数位
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
