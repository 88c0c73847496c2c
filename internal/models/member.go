package models

import "gorm.io/gorm"

// Gender is a closed enumeration; free-text genders from clients are rejected
// rather than stored as-is, with Unknown as the explicit catch-all.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// Valid reports whether g is one of the known gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

// AvatarType selects the avatar artwork category for a member.
type AvatarType string

const (
	AvatarPerson   AvatarType = "person"
	AvatarAnimal   AvatarType = "animal"
	AvatarRobot    AvatarType = "robot"
	AvatarAbstract AvatarType = "abstract"
	AvatarOther    AvatarType = "other"
)

// Valid reports whether a is one of the known avatar categories.
func (a AvatarType) Valid() bool {
	switch a {
	case AvatarPerson, AvatarAnimal, AvatarRobot, AvatarAbstract, AvatarOther:
		return true
	}
	return false
}

// Member is a node in a family tree graph, scoped to one Application.
// The partial unique index allows at most one is_self member per application;
// a second insert fails at the store, which keeps the invariant safe under
// concurrent requests.
type Member struct {
	gorm.Model
	ApplicationID uint       `json:"application_id" gorm:"index;uniqueIndex:uix_members_self,where:is_self"`
	Nickname      string     `json:"nickname"`
	Gender        Gender     `json:"gender" gorm:"type:varchar(20)"`
	AvatarType    AvatarType `json:"avatar_type" gorm:"type:varchar(20)"`
	IsSelf        bool       `json:"is_self"`
}

// CreateMemberRequest defines the request body for adding a member
type CreateMemberRequest struct {
	Nickname   string `json:"nickname" validate:"required,max=100"`
	Gender     string `json:"gender" validate:"required"`
	AvatarType string `json:"avatar_type"`
	IsSelf     bool   `json:"is_self"`
}

// UpdateMemberRequest defines the request body for editing a member
type UpdateMemberRequest struct {
	Nickname   string `json:"nickname,omitempty" validate:"omitempty,max=100"`
	Gender     string `json:"gender,omitempty"`
	AvatarType string `json:"avatar_type,omitempty"`
}
