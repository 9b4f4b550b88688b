package reconcile

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/cmac1989/AFWorkshopMover/internal/model"
	"github.com/cmac1989/AFWorkshopMover/internal/parser"
	"github.com/cmac1989/AFWorkshopMover/internal/sheet"
	"github.com/cmac1989/AFWorkshopMover/internal/store"
)

// Notifier 批次通知接口（邮件等，由 notify 包实现）
type Notifier interface {
	SendBatchResult(result model.BatchResult) error
}

// Options 核对选项
type Options struct {
	SourceSheet      string        // 报名表 Sheet 名
	RosterSheet      string        // 花名册 Sheet 名
	CapacitySentinel string        // 容量已满标记值
	Pricing          PricingConfig // 分档定价
	RevertTTL        time.Duration // 回滚快照有效期
}

// Coordinator 核对协调器：一轮批处理的完整编排。
// 单写者、串行调用假设：游标与占用状态只在单轮内有效，
// 并发互斥由部署层保证，核心不处理。
type Coordinator struct {
	store     *store.Store
	notifier  Notifier // 可为 nil
	opts      Options
	extractor *parser.Extractor
	resolver  *Resolver
	applier   *Applier
}

// NewCoordinator 创建协调器
func NewCoordinator(st *store.Store, notifier Notifier, opts Options) *Coordinator {
	return &Coordinator{
		store:     st,
		notifier:  notifier,
		opts:      opts,
		extractor: parser.NewExtractor(),
		resolver:  NewResolver(opts.CapacitySentinel),
		applier:   NewApplier(opts.Pricing),
	}
}

// SetSheets 运行期更新 Sheet 名（配置接口修改后即时生效，空值不变）
func (c *Coordinator) SetSheets(source, roster string) {
	if source != "" {
		c.opts.SourceSheet = source
	}
	if roster != "" {
		c.opts.RosterSheet = roster
	}
}

// Reconcile 做一轮核对。previewOnly 为真时只生成日志不写回；
// 为假时提交全部已解析记录。
func (c *Coordinator) Reconcile(workbookPath string, previewOnly bool) ([]model.LogEntry, error) {
	result, err := c.run(workbookPath, !previewOnly, nil)
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// ApplySelected 只提交给定下标的记录（下标即预演日志条目的序号，
// 与提取出的报名顺序一一对应），返回汇总描述。
func (c *Coordinator) ApplySelected(workbookPath string, selected []int) (model.BatchResult, error) {
	sel := make(map[int]bool, len(selected))
	for _, i := range selected {
		sel[i] = true
	}
	return c.run(workbookPath, true, sel)
}

// run 一轮批处理：整簿快照 → 提取 → 解析 → 增量计算 →（可选）提交。
// selected 为 nil 表示提交全部。
func (c *Coordinator) run(workbookPath string, commit bool, selected map[int]bool) (model.BatchResult, error) {
	wb, err := sheet.Open(workbookPath)
	if err != nil {
		return model.BatchResult{}, err
	}
	defer wb.Close()

	// 批开始时读取一次完整快照，批内不再增量读取
	sourceGrid, err := wb.ReadGrid(c.opts.SourceSheet)
	if err != nil {
		return model.BatchResult{}, err
	}
	rosterGrid, err := wb.ReadGrid(c.opts.RosterSheet)
	if err != nil {
		return model.BatchResult{}, err
	}
	colors, err := wb.ReadColumnColors(c.opts.RosterSheet, len(rosterGrid))
	if err != nil {
		return model.BatchResult{}, err
	}

	regs := c.extractor.ExtractAll(sourceGrid)
	roster := sheet.RosterRows(rosterGrid, colors)

	assignment, _ := c.resolver.Resolve(regs, roster, nil)
	deltas, entries := c.applier.Plan(regs, assignment, roster)

	// 计数按选中范围统计：每条报名恰好产生一条日志，
	// 条目下标即报名下标，可直接用 selected 过滤
	result := model.BatchResult{Entries: entries}
	for i, e := range entries {
		if selected != nil && !selected[i] {
			continue
		}
		switch e.Type {
		case model.LogTypeNew:
			result.NewCount++
		case model.LogTypeBalance:
			result.Balances++
		case model.LogTypeError:
			result.Errors++
		}
	}

	if !commit {
		return result, nil
	}

	if selected != nil {
		filtered := deltas[:0]
		for _, d := range deltas {
			if selected[d.RegIndex] {
				filtered = append(filtered, d)
			}
		}
		deltas = filtered
	}

	if len(deltas) == 0 {
		result.Summary = "没有可提交的记录"
		return result, nil
	}

	// 提交前按行拍快照，供限时回滚
	if err := c.snapshotRows(deltas, roster); err != nil {
		return result, err
	}

	if err := c.applier.Commit(deltas, wb.Writer(c.opts.RosterSheet)); err != nil {
		return result, err
	}
	if err := wb.Save(); err != nil {
		return result, err
	}

	result.BatchID = fmt.Sprintf("b_%s", uuid.New().String()[:8])
	result.Applied = len(deltas)
	result.Summary = fmt.Sprintf("批次 %s 已提交：%d 行写回（新报名 %d，补缴 %d，错误 %d）",
		result.BatchID, result.Applied, result.NewCount, result.Balances, result.Errors)

	if err := c.store.CreateBatchLog(result.BatchID, result.Applied,
		result.NewCount, result.Balances, result.Errors, result.Summary); err != nil {
		log.Printf("写入批次日志失败: %v", err)
	}

	if c.notifier != nil {
		if err := c.notifier.SendBatchResult(result); err != nil {
			log.Printf("发送批次通知失败: %v", err)
		}
	}

	return result, nil
}

// snapshotRows 保存受影响行的提交前整行值（补齐到 schema 宽度，
// 恢复时整行覆盖才能清掉本次写入的单元格）
func (c *Coordinator) snapshotRows(deltas []RowDelta, roster []*model.RosterRow) error {
	byRowNo := make(map[int]*model.RosterRow, len(roster))
	for _, row := range roster {
		byRowNo[row.RowNo] = row
	}

	snapshots := make([]store.RowSnapshot, 0, len(deltas))
	seen := make(map[int]bool, len(deltas))
	for _, d := range deltas {
		if seen[d.RowNo] {
			continue // 同一行多次命中只存最初的前值
		}
		seen[d.RowNo] = true

		var cells []string
		if row := byRowNo[d.RowNo]; row != nil {
			cells = row.Cells
		}
		snapshots = append(snapshots, store.RowSnapshot{
			RowNo:  d.RowNo,
			Values: sheet.PadRow(cells),
		})
	}

	return c.store.SaveRevertSnapshot(store.RevertSessionKey, snapshots, c.opts.RevertTTL)
}

// RevertLastBatch 回滚最近一次提交：把快照中的行值原样写回。
// 快照不存在或已过期是正常情况，返回提示而非错误；快照只消费一次。
func (c *Coordinator) RevertLastBatch(workbookPath string) (string, error) {
	rows, found, err := c.store.GetRevertSnapshot(store.RevertSessionKey)
	if err != nil {
		return "", err
	}
	if !found {
		return "没有可回滚的批次（未提交过或快照已过期）", nil
	}

	wb, err := sheet.Open(workbookPath)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	writer := wb.Writer(c.opts.RosterSheet)
	for _, row := range rows {
		if err := writer.SetRow(row.RowNo, row.Values); err != nil {
			return "", fmt.Errorf("restore row %d: %w", row.RowNo, err)
		}
	}
	if err := wb.Save(); err != nil {
		return "", err
	}

	if err := c.store.DeleteRevertSnapshot(store.RevertSessionKey); err != nil {
		log.Printf("删除回滚快照失败: %v", err)
	}

	return fmt.Sprintf("已回滚 %d 行", len(rows)), nil
}
