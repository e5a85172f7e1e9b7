package models

import "time"

// Relationship category labels offered in onboarding and settings
var RelationshipOptions = []struct {
	Value string
	Label string
}{
	{"mother", "어머니"},
	{"father", "아버지"},
	{"grandmother", "할머니"},
	{"grandfather", "할아버지"},
	{"other", "기타"},
}

// ParentChildRelationship links a child account to the parent it sends
// questions to. The parent usually has no account, so ParentUserID is
// almost always nil.
type ParentChildRelationship struct {
	ID           int64
	ChildUserID  int64
	ParentUserID *int64
	ParentName   string
	ParentPhone  string
	Relationship string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRelationship reports whether value is one of the offered categories.
func ValidRelationship(value string) bool {
	for _, opt := range RelationshipOptions {
		if opt.Value == value {
			return true
		}
	}
	return false
}
