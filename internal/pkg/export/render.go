package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/xuri/excelize/v2"
)

func renderCSV(reports []model.Report, tpl *template, cols []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(cols))
	for i, key := range cols {
		header[i] = tpl.header(key)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	row := make([]string, len(cols))
	for i := range reports {
		for j, key := range cols {
			row[j] = tpl.value(&reports[i], key)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderJSON emits an array of objects whose keys follow the template's
// column order. Plain maps would marshal with sorted keys, so objects are
// written pair by pair.
func renderJSON(reports []model.Report, tpl *template, cols []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := range reports {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, key := range cols {
			if j > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(tpl.header(key))
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(tpl.value(&reports[i], key))
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func renderXLSX(reports []model.Report, tpl *template, cols []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reports"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := make([]any, len(cols))
	for i, key := range cols {
		header[i] = tpl.header(key)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i := range reports {
		row := make([]any, len(cols))
		for j, key := range cols {
			row[j] = tpl.value(&reports[i], key)
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
