package validator

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
)

type testPayload struct {
	Name string `validate:"required"`
	Code string `validate:"required,min=3"`
}

func TestValidate(t *testing.T) {
	c := qt.New(t)
	v := New()

	// a valid struct passes
	c.Assert(v.Validate(&testPayload{Name: "Alice", Code: "A-1"}), qt.IsNil)

	// every offending field is reported with a readable message
	err := v.Validate(&testPayload{Code: "x"})
	c.Assert(err, qt.IsNotNil)
	var verrs ValidationErrors
	c.Assert(errors.As(err, &verrs), qt.IsTrue)
	c.Assert(verrs, qt.HasLen, 2)
	c.Assert(verrs[0].Field, qt.Equals, "Name")
	c.Assert(verrs[0].Message, qt.Equals, "This field is required")
	c.Assert(verrs[1].Field, qt.Equals, "Code")
	c.Assert(verrs[1].Message, qt.Equals, "Must be at least 3 characters long")
	c.Assert(err.Error(), qt.Contains, "Name: This field is required")
}
