package db

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestAddAdmin(t *testing.T) {
	defer func() {
		if err := testDB.Reset(); err != nil {
			t.Error(err)
		}
	}()
	c := qt.New(t)

	// lookup of an admin that does not exist
	_, err := testDB.AdminByName("superadmin")
	c.Assert(err, qt.ErrorIs, ErrNotFound)

	// admins with missing fields are rejected
	_, err = testDB.AddAdmin(&Admin{AdminName: "superadmin"})
	c.Assert(err, qt.ErrorIs, ErrInvalidData)
	_, err = testDB.AddAdmin(&Admin{Password: "hashedpassword"})
	c.Assert(err, qt.ErrorIs, ErrInvalidData)

	// create a valid admin
	id, err := testDB.AddAdmin(&Admin{AdminName: "superadmin", Password: "hashedpassword"})
	c.Assert(err, qt.IsNil)
	c.Assert(id.IsZero(), qt.IsFalse)

	admin, err := testDB.AdminByName("superadmin")
	c.Assert(err, qt.IsNil)
	c.Assert(admin.ID, qt.Equals, id)
	c.Assert(admin.AdminName, qt.Equals, "superadmin")
	c.Assert(admin.Password, qt.Equals, "hashedpassword")

	// a second admin with the same name hits the unique index
	_, err = testDB.AddAdmin(&Admin{AdminName: "superadmin", Password: "otherpassword"})
	c.Assert(err, qt.ErrorIs, ErrAlreadyExists)
	c.Assert(err.Error(), qt.Contains, "adminName")
}
