package models

import "gorm.io/gorm"

// RelationType is a closed enumeration of edge kinds. The write path stores
// only the direction the caller gave; the tree read path synthesizes the
// inverse via Inverse.
type RelationType string

const (
	RelationParent  RelationType = "parent"
	RelationChild   RelationType = "child"
	RelationSpouse  RelationType = "spouse"
	RelationSibling RelationType = "sibling"
	RelationOther   RelationType = "other"
)

// Valid reports whether t is one of the known relation types.
func (t RelationType) Valid() bool {
	switch t {
	case RelationParent, RelationChild, RelationSpouse, RelationSibling, RelationOther:
		return true
	}
	return false
}

// Inverse returns the relation type seen from the other endpoint:
// parent and child flip, the symmetric types map to themselves.
func (t RelationType) Inverse() RelationType {
	switch t {
	case RelationParent:
		return RelationChild
	case RelationChild:
		return RelationParent
	default:
		return t
	}
}

// Relation is a directed, typed edge between two Members of the same
// Application. The composite unique index makes a duplicate (from, to, type)
// insert fail at the store.
type Relation struct {
	gorm.Model
	ApplicationID uint         `json:"application_id" gorm:"index;uniqueIndex:uix_relations_edge"`
	FromMemberID  uint         `json:"from_member_id" gorm:"index;uniqueIndex:uix_relations_edge"`
	ToMemberID    uint         `json:"to_member_id" gorm:"index;uniqueIndex:uix_relations_edge"`
	Type          RelationType `json:"type" gorm:"type:varchar(20);uniqueIndex:uix_relations_edge"`
}

// CreateRelationRequest defines the request body for adding a relation
type CreateRelationRequest struct {
	FromMemberID uint   `json:"from_member_id" validate:"required"`
	ToMemberID   uint   `json:"to_member_id" validate:"required"`
	Type         string `json:"type" validate:"required"`
}

// TreeRelative is one resolved neighbor of a member in the tree view.
type TreeRelative struct {
	MemberID   uint       `json:"member_id"`
	Nickname   string     `json:"nickname"`
	Gender     Gender     `json:"gender"`
	AvatarType AvatarType `json:"avatar_type"`
}

// TreeMember is a member plus its neighbors grouped by relation type,
// inverse edges included.
type TreeMember struct {
	Member    Member                          `json:"member"`
	Relatives map[RelationType][]TreeRelative `json:"relatives"`
}

// TreeView is the renderable form of one application's family graph.
// CycleMemberIDs lists members sitting on a parent/child cycle; a non-empty
// list flags a data integrity problem without failing the read.
type TreeView struct {
	ApplicationID  uint         `json:"application_id"`
	Members        []TreeMember `json:"members"`
	CycleMemberIDs []uint       `json:"cycle_member_ids,omitempty"`
}
