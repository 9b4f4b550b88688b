package parser

import (
	"strings"

	"github.com/cmac1989/AFWorkshopMover/internal/model"
)

// 票种单元格的判定字面量
const (
	ticketHeaderLabel  = "ticket"  // 表头行
	balanceTicketLabel = "balance" // 补缴记录
)

// Extractor 报名记录提取器：把报名表一行原始数据转成结构化记录
type Extractor struct{}

// NewExtractor 创建提取器
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract 提取单行。返回 nil 表示该行应跳过（空行或表头行）。
// 标题无法解析时仍返回 KindInvalid 的最小记录供诊断，不静默丢弃。
// 费用档位不在此处推导：它依赖提交时最终解析出的标题。
func (e *Extractor) Extract(rowNo int, row []string) *model.Registration {
	rawTitle := strings.TrimSpace(model.CellAt(row, model.FieldTitle))
	if rawTitle == "" {
		return nil // 空行
	}

	ticket := strings.TrimSpace(model.CellAt(row, model.FieldTicketType))
	if strings.EqualFold(ticket, ticketHeaderLabel) {
		return nil // 表头行
	}

	title, ok := ParseTitle(rawTitle)
	if !ok {
		return &model.Registration{
			SourceRow: rowNo,
			Kind:      model.KindInvalid,
			RawTitle:  rawTitle,
			FirstName: strings.TrimSpace(model.CellAt(row, model.FieldFirstName)),
			LastName:  strings.TrimSpace(model.CellAt(row, model.FieldLastName)),
		}
	}

	kind := model.KindNewRegistration
	if strings.EqualFold(ticket, balanceTicketLabel) {
		kind = model.KindBalanceUpdate
	}

	return &model.Registration{
		SourceRow: rowNo,
		Kind:      kind,
		Title:     title.String(),
		RawTitle:  rawTitle,
		Location:  title.Location,
		Level:     title.Level,

		TicketType:  ticket,
		Transaction: strings.TrimSpace(model.CellAt(row, model.FieldTransaction)),
		FirstName:   strings.TrimSpace(model.CellAt(row, model.FieldFirstName)),
		LastName:    strings.TrimSpace(model.CellAt(row, model.FieldLastName)),
		Email:       strings.TrimSpace(model.CellAt(row, model.FieldEmail)),
		Date:        strings.TrimSpace(model.CellAt(row, model.FieldDate)),
		TotalCost:   strings.TrimSpace(model.CellAt(row, model.FieldTotalCost)),
		Coupon:      strings.TrimSpace(model.CellAt(row, model.FieldCoupon)),
		CouponCode:  strings.TrimSpace(model.CellAt(row, model.FieldCouponCode)),
		Affiliate:   strings.TrimSpace(model.CellAt(row, model.FieldAffiliate)),
		Notes:       strings.TrimSpace(model.CellAt(row, model.FieldNotes)),
		AmountPaid:  strings.TrimSpace(model.CellAt(row, model.FieldAmountPaid)),
		Balance:     strings.TrimSpace(model.CellAt(row, model.FieldBalance)),
		Waiver:      strings.TrimSpace(model.CellAt(row, model.FieldWaiver)),
		Residency:   strings.TrimSpace(model.CellAt(row, model.FieldResidency)),
		Phone:       strings.TrimSpace(model.CellAt(row, model.FieldPhone)),
		Metadata:    strings.TrimSpace(model.CellAt(row, model.FieldMetadata)),
	}
}

// ExtractAll 批量提取，保持输入顺序（解析是顺序敏感的贪心过程）
func (e *Extractor) ExtractAll(rows [][]string) []*model.Registration {
	var out []*model.Registration
	for i, row := range rows {
		if rec := e.Extract(i+1, row); rec != nil {
			out = append(out, rec)
		}
	}
	return out
}
