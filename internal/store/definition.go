package store

import (
	"errors"
	"slices"

	"github.com/ThomasAtome/technical-assignment-store/internal/permission"
)

// Definition names a store shape and carries the permissions declared for
// its fields. All Store instances built from one Definition share the
// same declarations; the per-instance DefaultPolicy covers everything
// else.
type Definition struct {
	name  string
	perms map[string]permission.Permission
}

// NewDefinition creates an empty definition with the given name.
func NewDefinition(name string) *Definition {
	return &Definition{
		name:  name,
		perms: make(map[string]permission.Permission),
	}
}

// Name returns the definition's name.
func (d *Definition) Name() string {
	return d.name
}

// Declare attaches a permission to a field. The level string is validated
// eagerly: an unrecognized value returns InvalidPermissionError and
// registers nothing. The empty string declares the field with level none.
func (d *Definition) Declare(field, level string) error {
	p, err := permission.Parse(level)
	if err != nil {
		var pe *permission.InvalidPermissionError
		if errors.As(err, &pe) {
			pe.Field = field
		}
		return err
	}
	d.perms[field] = p
	return nil
}

// MustDeclare is Declare for static registration blocks where the level
// is a compile-time constant. Panics on an invalid level.
func (d *Definition) MustDeclare(field, level string) *Definition {
	if err := d.Declare(field, level); err != nil {
		panic(err)
	}
	return d
}

// Lookup returns the permission declared for field, if any.
func (d *Definition) Lookup(field string) (permission.Permission, bool) {
	if d == nil {
		return "", false
	}
	p, ok := d.perms[field]
	return p, ok
}

// Fields returns the names of all declared fields in sorted order.
func (d *Definition) Fields() []string {
	if d == nil {
		return nil
	}
	fields := make([]string, 0, len(d.perms))
	for f := range d.perms {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}
