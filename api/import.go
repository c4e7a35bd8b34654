package api

import (
	goerrors "errors"
	"io"
	"net/http"
	"os"

	"github.com/festivalhq/festival-backend/db"
	"github.com/festivalhq/festival-backend/errors"
	"github.com/festivalhq/festival-backend/importer"
	"go.vocdoni.io/dvote/log"
)

// importUsersHandler handles the bulk import of attendees from an uploaded
// spreadsheet. The upload is spooled to a temporary file that is removed after
// parsing regardless of the outcome. The filtered batch is inserted in a
// single operation: any duplicate name or code fails the whole import with a
// conflict naming the colliding key, while a batch with zero valid rows
// succeeds with an empty insert.
func (a *API) importUsersHandler(w http.ResponseWriter, r *http.Request) {
	// 32 MB is the default used by FormFile() function
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		errors.ErrNoFileProvided.WithErr(err).Write(w)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		errors.ErrNoFileProvided.Write(w)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warnw("failed to close uploaded file", "error", err)
		}
	}()
	users, err := parseUploadedSheet(file)
	if err != nil {
		errors.ErrInvalidSpreadsheet.WithErr(err).Write(w)
		return
	}
	inserted, err := a.db.AddUsers(users)
	if err != nil {
		if goerrors.Is(err, db.ErrAlreadyExists) {
			errors.ErrDuplicateConflict.WithErr(err).Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &ImportUsersResponse{
		Message: "Users imported successfully",
		Count:   len(inserted),
		Users:   inserted,
	})
}

// parseUploadedSheet spools the upload to a temporary file and parses the
// candidate attendee records from it. The temporary file is a request-scoped
// artifact, removed before returning in every path.
func parseUploadedSheet(upload io.Reader) ([]db.User, error) {
	tmp, err := os.CreateTemp("", "festival-import-*.xlsx")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := tmp.Close(); err != nil {
			log.Warnw("failed to close temporary import file", "error", err)
		}
		if err := os.Remove(tmp.Name()); err != nil {
			log.Warnw("failed to remove temporary import file", "error", err, "path", tmp.Name())
		}
	}()
	if _, err := io.Copy(tmp, upload); err != nil {
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return importer.ParseUsers(tmp)
}
