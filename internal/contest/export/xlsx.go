// Package export writes committed scoreboards to spreadsheet files.
package export

import (
	"context"
	"os"
	"path/filepath"

	"icpcboard/internal/contest/model"
	appErr "icpcboard/pkg/errors"
	"icpcboard/pkg/utils/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	boardSheet   = "Scoreboard"
	summarySheet = "Summary"
)

// XLSXExporter saves the final scoreboard as an .xlsx workbook.
type XLSXExporter struct {
	path string
}

// NewXLSXExporter creates an exporter writing to path.
func NewXLSXExporter(path string) *XLSXExporter {
	return &XLSXExporter{path: path}
}

// Export builds the workbook for snap and saves it, creating parent directories.
func (e *XLSXExporter) Export(ctx context.Context, snap *model.Snapshot) error {
	if e.path == "" {
		return appErr.New(appErr.ExportFailed).WithMessage("export path is empty")
	}
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return appErr.Wrapf(err, appErr.ExportFailed, "create export dir %s", dir)
		}
	}
	f, err := e.build(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(e.path); err != nil {
		return appErr.Wrapf(err, appErr.ExportFailed, "save %s", e.path)
	}
	logger.Info(ctx, "scoreboard exported", zap.String("path", e.path), zap.Int("teams", len(snap.Standings)))
	return nil
}

func (e *XLSXExporter) build(snap *model.Snapshot) (*excelize.File, error) {
	if snap == nil {
		return nil, appErr.New(appErr.ExportFailed).WithMessage("no committed scoreboard")
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", boardSheet); err != nil {
		_ = f.Close()
		return nil, appErr.Wrap(err, appErr.ExportFailed)
	}

	problems := 0
	if len(snap.Standings) > 0 {
		problems = len(snap.Standings[0].Cells)
	}
	headers := []interface{}{"Rank", "Team", "Solved", "Penalty"}
	for id := 0; id < problems; id++ {
		headers = append(headers, model.ProblemLabel(id))
	}
	rows := [][]interface{}{headers}
	for _, st := range snap.Standings {
		row := []interface{}{st.Rank, st.Team, st.Solved, st.Penalty}
		for _, c := range st.Cells {
			row = append(row, c.String())
		}
		rows = append(rows, row)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err == nil {
			err = f.SetSheetRow(boardSheet, cell, &row)
		}
		if err != nil {
			_ = f.Close()
			return nil, appErr.Wrap(err, appErr.ExportFailed)
		}
	}

	if err := styleHeader(f, len(headers)); err != nil {
		_ = f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		_ = f.Close()
		return nil, appErr.Wrap(err, appErr.ExportFailed)
	}
	summary := [][]interface{}{
		{"Snapshot", snap.Seq},
		{"Frozen", snap.Frozen},
		{"Teams", len(snap.Standings)},
		{"Problems", problems},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err == nil {
			err = f.SetSheetRow(summarySheet, cell, &row)
		}
		if err != nil {
			_ = f.Close()
			return nil, appErr.Wrap(err, appErr.ExportFailed)
		}
	}
	return f, nil
}

func styleHeader(f *excelize.File, columns int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"EEEEEE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return appErr.Wrapf(err, appErr.ExportFailed, "create header style")
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return appErr.Wrapf(err, appErr.ExportFailed, "header range")
	}
	if err := f.SetCellStyle(boardSheet, "A1", last, headerStyle); err != nil {
		return appErr.Wrapf(err, appErr.ExportFailed, "apply header style")
	}
	if err := f.SetColWidth(boardSheet, "B", "B", 24); err != nil {
		return appErr.Wrapf(err, appErr.ExportFailed, "set team column width")
	}
	return nil
}
