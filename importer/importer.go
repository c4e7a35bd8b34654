// Package importer parses uploaded spreadsheet files into candidate attendee
// records. Only the first sheet is read, the header row is skipped and the
// four ordered columns are mapped to churchName, name, code and birthDate.
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/festivalhq/festival-backend/db"
	"github.com/xuri/excelize/v2"
)

// column order of the registration sheets
const (
	colChurchName = iota
	colName
	colCode
	colBirthDate
)

// ParseUsers reads an xlsx spreadsheet and returns the candidate attendee
// records of its first sheet. Rows with any of the four fields missing or
// empty are silently dropped. An empty sheet, or one where every row is
// incomplete, yields an empty slice and no error.
func ParseUsers(r io.Reader) ([]db.User, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open spreadsheet: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []db.User{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	users := []db.User{}
	for i, row := range rows {
		if i == 0 {
			// header row
			continue
		}
		user := db.User{
			ChurchName: cell(row, colChurchName),
			Name:       cell(row, colName),
			Code:       cell(row, colCode),
			BirthDate:  cell(row, colBirthDate),
		}
		if user.Name == "" || user.ChurchName == "" || user.Code == "" || user.BirthDate == "" {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// cell returns the trimmed cell at the given column, tolerating short rows
// (the xlsx reader drops trailing empty cells).
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
