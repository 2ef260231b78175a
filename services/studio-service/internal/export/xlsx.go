package export

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
)

const SheetName = "Appointments"

// XLSX writes the same columns as CSV into a single Appointments sheet.
func XLSX(w io.Writer, appointments []model.Appointment) error {
	file := excelize.NewFile()
	file.NewSheet(SheetName)
	file.DeleteSheet("Sheet1")

	writeXLSXRow(file, 1, Header)
	for i, a := range appointments {
		writeXLSXRow(file, i+2, Row(a))
	}
	return file.Write(w)
}

func writeXLSXRow(file *excelize.File, row int, cells []string) {
	for col, cell := range cells {
		file.SetCellValue(SheetName, cellName(col, row), cell)
	}
}

// cellName converts a zero-based column and one-based row to an A1 reference.
// Exports never exceed 26 columns.
func cellName(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
