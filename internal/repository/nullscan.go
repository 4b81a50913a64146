package repository

import (
	"fmt"
	"strconv"
	"time"

	"github.com/iliyamo/lost-and-found/internal/model"
)

// Scanners for columns that come back NULL when a LEFT JOIN finds no row.
// They leave the destination at its zero value on NULL instead of failing
// the scan; the caller decides presence from the joined primary key.

type sqlString struct{ v *string }

func (s *sqlString) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		*s.v = ""
	case string:
		*s.v = t
	case []byte:
		*s.v = string(t)
	default:
		return fmt.Errorf("cannot scan %T into string", src)
	}
	return nil
}

type sqlStatus struct{ v *model.ItemStatus }

func (s *sqlStatus) Scan(src any) error {
	var raw string
	if err := (&sqlString{&raw}).Scan(src); err != nil {
		return err
	}
	*s.v = model.ItemStatus(raw)
	return nil
}

type sqlUint struct{ v *uint64 }

func (s *sqlUint) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		*s.v = 0
	case int64:
		*s.v = uint64(t)
	case uint64:
		*s.v = t
	case []byte:
		n, err := strconv.ParseUint(string(t), 10, 64)
		if err != nil {
			return err
		}
		*s.v = n
	default:
		return fmt.Errorf("cannot scan %T into uint64", src)
	}
	return nil
}

type sqlTime struct{ v *time.Time }

func (s *sqlTime) Scan(src any) error {
	switch t := src.(type) {
	case nil:
		*s.v = time.Time{}
	case time.Time:
		*s.v = t
	default:
		return fmt.Errorf("cannot scan %T into time.Time", src)
	}
	return nil
}
