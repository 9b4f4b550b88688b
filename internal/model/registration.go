package model

// RecordKind 报名记录分类（提取器判定一次，下游按类型分派）
type RecordKind string

const (
	KindNewRegistration RecordKind = "new"     // 新报名
	KindBalanceUpdate   RecordKind = "balance" // 补缴/尾款更新
	KindInvalid         RecordKind = "invalid" // 标题无法解析，仅保留诊断信息
)

// Registration 从报名表单行提取出的结构化记录
type Registration struct {
	SourceRow int        `json:"sourceRow"` // 报名表中的行号（1 基）
	Kind      RecordKind `json:"kind"`

	Title    string `json:"title"`    // 规范化标题 "<Location> L<n>"
	RawTitle string `json:"rawTitle"` // 原始标题文本（诊断用）
	Location string `json:"location"`
	Level    int    `json:"level"`

	TicketType  string `json:"ticketType"`
	Transaction string `json:"transaction"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Date        string `json:"date"`
	TotalCost   string `json:"totalCost"`
	Coupon      string `json:"coupon"`
	CouponCode  string `json:"couponCode"`
	Affiliate   string `json:"affiliate"`
	Notes       string `json:"notes"`
	AmountPaid  string `json:"amountPaid"`
	Balance     string `json:"balance"`
	Waiver      string `json:"waiver"`
	Residency   string `json:"residency"`
	Phone       string `json:"phone"`
	Metadata    string `json:"metadata"` // 参会人元数据原始串，提交时再解析
}

// FullName 规范化姓名（用于补缴记录与花名册行的精确匹配）
func (r *Registration) FullName() (first, last string) {
	return r.FirstName, r.LastName
}

// RosterRow 花名册中的一行（持久记录，报名最终合并进来）
type RosterRow struct {
	RowNo int      `json:"rowNo"` // 花名册中的行号（1 基）
	Cells []string `json:"cells"`
	Color string   `json:"color"` // 首列背景色（空 / 白 视为可用）
}

// Title 花名册行标题
func (r *RosterRow) Title() string { return CellAt(r.Cells, FieldTitle) }

// Ticket 票种单元格（为空表示空位）
func (r *RosterRow) Ticket() string { return CellAt(r.Cells, FieldTicketType) }

// Capacity 容量标记单元格
func (r *RosterRow) Capacity() string { return CellAt(r.Cells, FieldCapacity) }

// Assignment 报名下标到花名册行号的部分映射（缺席表示未找到目标）
type Assignment map[int]int
