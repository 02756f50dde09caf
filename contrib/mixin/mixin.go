// Package mixin provides common attribute sets for diagram classes.
//
// These mixins are OPTIONAL and provided as convenient starting points.
// Users are encouraged to create their own mixins tailored to their needs.
//
// Available mixins:
//   - ID: adds a final UUID identifier attribute
//   - CreateTime: adds a final createdAt timestamp attribute
//   - UpdateTime: adds an updatedAt timestamp attribute
//   - Time: combines CreateTime and UpdateTime
//   - SoftDelete: adds a deletedAt attribute for soft deletion
//   - TenantID: adds a tenantId attribute for multi-tenancy
//   - TimeSoftDelete: combines Time and SoftDelete
//
// Usage:
//
//	order := &diagram.Class{Name: "Order", Stereotype: "entity"}
//	mixin.Apply(order, mixin.ID{}, mixin.Time{})
//
// Custom mixins:
//
// For project-specific needs, implement the Mixin interface:
//
//	type Audit struct{}
//
//	func (Audit) Attributes() []*diagram.Attribute {
//		return []*diagram.Attribute{
//			{Name: "createdBy", Type: "String", Visibility: diagram.Private, Final: true},
//			{Name: "updatedBy", Type: "String", Visibility: diagram.Private},
//		}
//	}
package mixin

import (
	"strings"

	"github.com/syssam/forma/diagram"
)

// Mixin is a reusable bundle of class attributes.
type Mixin interface {
	Attributes() []*diagram.Attribute
}

// Apply appends each mixin's attributes to the class in order. Attributes
// whose name the class already declares are skipped, so applying a mixin
// twice, or over a hand-written attribute, never duplicates members.
func Apply(c *diagram.Class, mixins ...Mixin) {
	for _, m := range mixins {
		for _, a := range m.Attributes() {
			if declares(c, a.Name) {
				continue
			}
			c.Attributes = append(c.Attributes, a)
		}
	}
}

func declares(c *diagram.Class, name string) bool {
	for _, a := range c.Attributes {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

// ID adds a UUID identifier attribute. The attribute is final and maps to
// the primary key column.
//
// Rendered member:
//
//	-id : UUID {readOnly}
type ID struct{}

// Attributes of the id mixin.
func (ID) Attributes() []*diagram.Attribute {
	return []*diagram.Attribute{
		{Name: "id", Type: "UUID", Visibility: diagram.Private, Final: true},
	}
}

// id mixin must implement the Mixin interface.
var _ Mixin = (*ID)(nil)

// CreateTime adds a createdAt timestamp attribute. The attribute is final
// since creation time never changes after the row is written.
//
// Rendered member:
//
//	-createdAt : Date {readOnly}
type CreateTime struct{}

// Attributes of the create time mixin.
func (CreateTime) Attributes() []*diagram.Attribute {
	return []*diagram.Attribute{
		{Name: "createdAt", Type: "Date", Visibility: diagram.Private, Final: true},
	}
}

// create time mixin must implement the Mixin interface.
var _ Mixin = (*CreateTime)(nil)

// UpdateTime adds an updatedAt timestamp attribute.
//
// Rendered member:
//
//	-updatedAt : Date
type UpdateTime struct{}

// Attributes of the update time mixin.
func (UpdateTime) Attributes() []*diagram.Attribute {
	return []*diagram.Attribute{
		{Name: "updatedAt", Type: "Date", Visibility: diagram.Private},
	}
}

// update time mixin must implement the Mixin interface.
var _ Mixin = (*UpdateTime)(nil)

// Time composes CreateTime and UpdateTime.
//
// This is the most common mixin for tracking entity timestamps.
type Time struct{}

// Attributes of the time mixin.
func (Time) Attributes() []*diagram.Attribute {
	return append(
		CreateTime{}.Attributes(),
		UpdateTime{}.Attributes()...,
	)
}

// time mixin must implement the Mixin interface.
var _ Mixin = (*Time)(nil)

// SoftDelete adds a deletedAt timestamp attribute. Rows are marked deleted
// by setting it; an unset value means the row is live.
//
// Rendered member:
//
//	-deletedAt : Date
type SoftDelete struct{}

// Attributes of the soft delete mixin.
func (SoftDelete) Attributes() []*diagram.Attribute {
	return []*diagram.Attribute{
		{Name: "deletedAt", Type: "Date", Visibility: diagram.Private},
	}
}

// soft delete mixin must implement the Mixin interface.
var _ Mixin = (*SoftDelete)(nil)

// TenantID adds a tenantId attribute for multi-tenant deployments. The
// attribute is final since rows never move between tenants.
//
// Rendered member:
//
//	-tenantId : UUID {readOnly}
type TenantID struct{}

// Attributes of the tenant id mixin.
func (TenantID) Attributes() []*diagram.Attribute {
	return []*diagram.Attribute{
		{Name: "tenantId", Type: "UUID", Visibility: diagram.Private, Final: true},
	}
}

// tenant id mixin must implement the Mixin interface.
var _ Mixin = (*TenantID)(nil)

// TimeSoftDelete composes Time and SoftDelete.
type TimeSoftDelete struct{}

// Attributes of the time soft delete mixin.
func (TimeSoftDelete) Attributes() []*diagram.Attribute {
	return append(
		Time{}.Attributes(),
		SoftDelete{}.Attributes()...,
	)
}

// time soft delete mixin must implement the Mixin interface.
var _ Mixin = (*TimeSoftDelete)(nil)
