package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/festivalhq/festival-backend/errors"
	qt "github.com/frankban/quicktest"
	"github.com/xuri/excelize/v2"
)

// buildImportSheet writes the given rows into a fresh workbook and returns
// its xlsx serialization. The first row is expected to be the header.
func buildImportSheet(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// uploadFile performs a multipart upload of the given content to the import
// endpoint and returns the response body and status code.
func uploadFile(t *testing.T, fieldName, fileName string, content []byte) ([]byte, int) {
	t.Helper()
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := form.Close(); err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, testURL(usersImportEndpoint), body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return respBody, resp.StatusCode
}

func TestImportUsersHandler(t *testing.T) {
	c := qt.New(t)
	defer func() {
		if err := testDB.Reset(); err != nil {
			c.Logf("error resetting test database: %v", err)
		}
	}()

	header := []any{"Church", "Name", "Code", "Birth date"}

	// no file field in the form
	resp, code := uploadFile(t, "attachment", "users.xlsx", buildImportSheet(t, [][]any{header}))
	c.Assert(code, qt.Equals, http.StatusBadRequest)
	c.Assert(strings.TrimSpace(string(resp)), qt.Equals, string(mustMarshal(errors.ErrNoFileProvided)))

	// the upload has to be a spreadsheet
	resp, code = uploadFile(t, "file", "users.xlsx", []byte("this is not a spreadsheet"))
	c.Assert(code, qt.Equals, http.StatusBadRequest)
	c.Assert(string(resp), qt.Contains, `"code":40015`)

	// incomplete rows are dropped, the rest is inserted
	sheet := buildImportSheet(t, [][]any{
		header,
		{"St. Mark", "Alice", "A-1", "1990-01-01"},
		{"St. Mark", "", "B-1", "1991-02-02"},
		{"St. Luke", "Bob", "B-2", "1992-03-03"},
	})
	resp, code = uploadFile(t, "file", "users.xlsx", sheet)
	c.Assert(code, qt.Equals, http.StatusOK)
	var imported ImportUsersResponse
	c.Assert(json.Unmarshal(resp, &imported), qt.IsNil)
	c.Assert(imported.Count, qt.Equals, 2)
	c.Assert(imported.Users, qt.HasLen, 2)
	c.Assert(imported.Users[0].Name, qt.Equals, "Alice")
	c.Assert(imported.Users[0].ID.IsZero(), qt.IsFalse)

	// importing the same sheet again collides with the stored records
	resp, code = uploadFile(t, "file", "users.xlsx", sheet)
	c.Assert(code, qt.Equals, http.StatusConflict)
	c.Assert(string(resp), qt.Contains, `"code":40901`)

	// a sheet where every row is incomplete imports nothing but succeeds
	emptyish := buildImportSheet(t, [][]any{
		header,
		{"St. Mark", "Carol"},
		{"", "", "", ""},
	})
	resp, code = uploadFile(t, "file", "users.xlsx", emptyish)
	c.Assert(code, qt.Equals, http.StatusOK)
	c.Assert(json.Unmarshal(resp, &imported), qt.IsNil)
	c.Assert(imported.Count, qt.Equals, 0)
	c.Assert(imported.Users, qt.HasLen, 0)
}
