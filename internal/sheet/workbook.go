package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cmac1989/AFWorkshopMover/internal/model"
)

// 已导入行的完成标记样式
const (
	completedFillColor = "#D9EAD3" // 浅绿
	noteAuthor         = "afmover"
)

// Workbook 花名册工作簿：核对引擎对表格存储的全部读写都经由此层
type Workbook struct {
	file *excelize.File
	path string

	completedStyle int // 懒加载的完成标记样式 ID
}

// Open 打开工作簿文件
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{file: f, path: path, completedStyle: -1}, nil
}

// NewInMemory 新建内存工作簿（测试用）
func NewInMemory() *Workbook {
	return &Workbook{file: excelize.NewFile(), completedStyle: -1}
}

// File 暴露底层文件（测试与构造夹具用）
func (w *Workbook) File() *excelize.File { return w.file }

// ReadGrid 读取整个矩形值区域。批处理以此为一致性快照，不做增量读取。
func (w *Workbook) ReadGrid(sheetName string) ([][]string, error) {
	rows, err := w.file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	return rows, nil
}

// ReadColumnColors 读取某 Sheet 首列各行的背景填充色（与值区域平行）
func (w *Workbook) ReadColumnColors(sheetName string, rowCount int) ([]string, error) {
	colors := make([]string, rowCount)
	for i := 0; i < rowCount; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		styleID, err := w.file.GetCellStyle(sheetName, cell)
		if err != nil {
			return nil, fmt.Errorf("read style %s!%s: %w", sheetName, cell, err)
		}
		style, err := w.file.GetStyle(styleID)
		if err != nil || style == nil {
			continue // 无样式即默认白底
		}
		if len(style.Fill.Color) > 0 {
			colors[i] = style.Fill.Color[0]
		}
	}
	return colors, nil
}

// SetCell 写单个单元格（col 为 0 基列号）
func (w *Workbook) SetCell(sheetName string, rowNo, col int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(sheetName, cell, value)
}

// SetRow 整行写入（从 A 列起连续覆盖）
func (w *Workbook) SetRow(sheetName string, rowNo int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return w.file.SetSheetRow(sheetName, cell, &row)
}

// MarkRowCompleted 给整行打完成标记（浅绿填充 + 加粗）
func (w *Workbook) MarkRowCompleted(sheetName string, rowNo int) error {
	if w.completedStyle < 0 {
		styleID, err := w.file.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{completedFillColor}, Pattern: 1},
			Font: &excelize.Font{Bold: true},
		})
		if err != nil {
			return fmt.Errorf("create completed style: %w", err)
		}
		w.completedStyle = styleID
	}

	start, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(model.RowWidth, rowNo)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheetName, start, end, w.completedStyle)
}

// AddNote 给单元格附文字批注
func (w *Workbook) AddNote(sheetName string, rowNo, col int, note string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, rowNo)
	if err != nil {
		return err
	}
	return w.file.AddComment(sheetName, excelize.Comment{
		Cell:      cell,
		Author:    noteAuthor,
		Text:      note,
		Paragraph: []excelize.RichTextRun{{Text: note}},
	})
}

// Save 落盘
func (w *Workbook) Save() error {
	if w.path == "" {
		return nil // 内存工作簿
	}
	if err := w.file.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Close 关闭底层文件
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetWriter 绑定到单个 Sheet 的写入器，实现核对引擎的写回接口
type SheetWriter struct {
	wb        *Workbook
	sheetName string
}

// Writer 绑定某个 Sheet
func (w *Workbook) Writer(sheetName string) *SheetWriter {
	return &SheetWriter{wb: w, sheetName: sheetName}
}

// SetCell 写单元格
func (sw *SheetWriter) SetCell(rowNo, col int, value string) error {
	return sw.wb.SetCell(sw.sheetName, rowNo, col, value)
}

// MarkRowCompleted 完成标记
func (sw *SheetWriter) MarkRowCompleted(rowNo int) error {
	return sw.wb.MarkRowCompleted(sw.sheetName, rowNo)
}

// AddNote 附批注
func (sw *SheetWriter) AddNote(rowNo, col int, note string) error {
	return sw.wb.AddNote(sw.sheetName, rowNo, col, note)
}

// SetRow 整行写入（回滚恢复用）
func (sw *SheetWriter) SetRow(rowNo int, values []string) error {
	return sw.wb.SetRow(sw.sheetName, rowNo, values)
}

// RosterRows 把值区域与颜色合成花名册行切片
func RosterRows(grid [][]string, colors []string) []*model.RosterRow {
	rows := make([]*model.RosterRow, 0, len(grid))
	for i, cells := range grid {
		color := ""
		if i < len(colors) {
			color = colors[i]
		}
		rows = append(rows, &model.RosterRow{
			RowNo: i + 1,
			Cells: cells,
			Color: color,
		})
	}
	return rows
}

// PadRow 把行补齐到 schema 宽度（快照与恢复需要整行覆盖）
func PadRow(cells []string) []string {
	if len(cells) >= model.RowWidth {
		return cells
	}
	out := make([]string, model.RowWidth)
	copy(out, cells)
	return out
}
