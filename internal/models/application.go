package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// Application kinds with special server-side behavior. Kind is an open tag:
// clients may create applications of other kinds, they just get no extras.
const (
	KindFamilyTree = "family_tree"
	KindDecision   = "decision"
)

// Application is a user-owned container for one decision or tree instance.
type Application struct {
	gorm.Model
	OwnerID uint   `json:"owner_id" gorm:"index"`
	Kind    string `json:"kind" gorm:"type:varchar(50)"`
	Title   string `json:"title"`
}

// ApplicationItem is an ordered configuration entry of an Application.
// Items are only ever replaced wholesale, never edited individually.
type ApplicationItem struct {
	gorm.Model
	ApplicationID uint   `json:"application_id" gorm:"index"`
	Position      int    `json:"position"`
	Label         string `json:"label"`
	Value         string `json:"value"`
}

// ApplicationResult is an append-only outcome snapshot, stored in MongoDB.
type ApplicationResult struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ApplicationID uint               `json:"application_id" bson:"application_id"`
	Outcome       string             `json:"outcome" bson:"outcome"`
	Detail        string             `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// CreateApplicationRequest defines the request body for creating an application
type CreateApplicationRequest struct {
	Kind  string `json:"kind" validate:"required,max=50"`
	Title string `json:"title" validate:"required,max=200"`
}

// ReplaceItemsRequest defines the request body for the wholesale item replace
type ReplaceItemsRequest struct {
	Items []ItemInput `json:"items" validate:"required,dive"`
}

// ItemInput is one entry of a ReplaceItemsRequest; order in the list is the
// stored order.
type ItemInput struct {
	Label string `json:"label" validate:"required,max=200"`
	Value string `json:"value" validate:"max=2000"`
}

// AppendResultRequest defines the request body for recording an outcome
type AppendResultRequest struct {
	Outcome string `json:"outcome" validate:"required,max=500"`
	Detail  string `json:"detail" validate:"max=2000"`
}
