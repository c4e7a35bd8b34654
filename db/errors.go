package db

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrAlreadyExists = fmt.Errorf("duplicate key")
	ErrInvalidData   = fmt.Errorf("invalid data provided")
)

// duplicateKeyIndexRgx extracts the field name from the index name included in
// a MongoDB duplicate key error message (e.g. "index: code_1 dup key").
var duplicateKeyIndexRgx = regexp.MustCompile(`index: (\w+?)_\d+ dup key`)

// wrapDuplicateKey translates a MongoDB duplicate key error into
// ErrAlreadyExists, annotated with the offending field so callers can report
// which unique key collided. Any other error is returned unchanged.
func wrapDuplicateKey(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if m := duplicateKeyIndexRgx.FindStringSubmatch(err.Error()); m != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, m[1])
	}
	return ErrAlreadyExists
}
