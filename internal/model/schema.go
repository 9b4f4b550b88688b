package model

import "fmt"

// Field 行内语义字段名（报名表与花名册共用同一列布局）
type Field string

const (
	FieldTitle       Field = "title"
	FieldTicketType  Field = "ticket_type"
	FieldCapacity    Field = "capacity"
	FieldTransaction Field = "transaction"
	FieldFirstName   Field = "first_name"
	FieldLastName    Field = "last_name"
	FieldEmail       Field = "email"
	FieldDate        Field = "date"
	FieldTotalCost   Field = "total_cost"
	FieldCoupon      Field = "coupon"
	FieldCouponCode  Field = "coupon_code"
	FieldAffiliate   Field = "affiliate"
	FieldNotes       Field = "notes"
	FieldAmountPaid  Field = "amount_paid"
	FieldBalance     Field = "balance"
	FieldWaiver      Field = "waiver"
	FieldResidency   Field = "residency"
	FieldPhone       Field = "phone"
	FieldMetadata    Field = "metadata"

	// 参会人元数据子字段（仅写回，来源于 metadata 列的再解析）
	FieldSource       Field = "source"
	FieldCertPlan     Field = "cert_plan"
	FieldCertCategory Field = "cert_category"
	FieldCertStatus   Field = "cert_status"
	FieldLocationDate Field = "location_date"
	FieldTravel       Field = "travel"
)

// Columns 字段到列号的映射（0 基），在此声明一次，提取与写回共用。
// 列位置即 schema：表头没有可靠的列名，位置是唯一约定。
var Columns = map[Field]int{
	FieldTitle:       0,
	FieldTicketType:  5,
	FieldCapacity:    6,
	FieldTransaction: 7,
	FieldFirstName:   8,
	FieldLastName:    9,
	FieldEmail:       10,
	FieldDate:        12,
	FieldTotalCost:   13,
	FieldCoupon:      14,
	FieldCouponCode:  15,
	FieldAffiliate:   16,
	FieldNotes:       17,
	FieldAmountPaid:  18,
	FieldBalance:     19,
	FieldWaiver:      20,
	FieldResidency:   21,
	FieldPhone:       22,
	FieldMetadata:    23,

	FieldSource:       24,
	FieldCertPlan:     25,
	FieldCertCategory: 26,
	FieldCertStatus:   27,
	FieldLocationDate: 28,
	FieldTravel:       29,
}

// RowWidth 一行的列数（最大列号 + 1）
var RowWidth = func() int {
	max := 0
	for _, idx := range Columns {
		if idx > max {
			max = idx
		}
	}
	return max + 1
}()

// Col 取字段列号，未知字段返回 -1
func Col(f Field) int {
	idx, ok := Columns[f]
	if !ok {
		return -1
	}
	return idx
}

// CellAt 按字段取单元格值，越界返回空串
func CellAt(row []string, f Field) string {
	idx := Col(f)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ValidateColumns 校验列映射无重复（启动时调用一次）
func ValidateColumns() error {
	seen := make(map[int]Field, len(Columns))
	for f, idx := range Columns {
		if idx < 0 {
			return fmt.Errorf("field %s has negative column %d", f, idx)
		}
		if prev, ok := seen[idx]; ok {
			return fmt.Errorf("fields %s and %s share column %d", prev, f, idx)
		}
		seen[idx] = f
	}
	return nil
}
