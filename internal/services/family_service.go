package services

import (
	"context"

	"github.com/decidly/backend/internal/models"
	"github.com/decidly/backend/internal/repositories"
	"go.uber.org/zap"
)

// DefaultResultLimit caps RecentResults reads when the caller gives no limit.
const DefaultResultLimit = 10

// FamilyService maintains application containers and their family graph:
// members, typed relations and the derived tree view. Ownership of the
// application is checked once at the handler boundary via GetApplication;
// the member and relation operations trust the application id they receive.
type FamilyService struct {
	apps      repositories.ApplicationRepository
	members   repositories.MemberRepository
	relations repositories.RelationRepository
	results   repositories.ResultRepository
	logger    *zap.Logger
}

// NewFamilyService creates a new FamilyService
func NewFamilyService(
	apps repositories.ApplicationRepository,
	members repositories.MemberRepository,
	relations repositories.RelationRepository,
	results repositories.ResultRepository,
	logger *zap.Logger,
) *FamilyService {
	return &FamilyService{
		apps:      apps,
		members:   members,
		relations: relations,
		results:   results,
		logger:    logger,
	}
}

// CreateApplication persists a new container for ownerID. For the
// family_tree kind it additionally seeds the owner's self member; that seed
// is best-effort; a failure is logged and the application stands without it.
func (s *FamilyService) CreateApplication(ownerID uint, kind, title string) (*models.Application, error) {
	if kind == "" || title == "" {
		return nil, validationf("kind and title are required")
	}

	app := &models.Application{OwnerID: ownerID, Kind: kind, Title: title}
	if err := s.apps.CreateApplication(app); err != nil {
		return nil, storeErr(err)
	}

	if kind == models.KindFamilyTree {
		self := &models.Member{
			ApplicationID: app.ID,
			Nickname:      "Me",
			Gender:        models.GenderUnknown,
			AvatarType:    models.AvatarPerson,
			IsSelf:        true,
		}
		if err := s.members.CreateMember(self); err != nil {
			s.logger.Warn("failed to seed self member for family tree",
				zap.Uint("application_id", app.ID),
				zap.Uint("owner_id", ownerID),
				zap.Error(err))
		}
	}

	return app, nil
}

// GetApplications lists the caller's applications, newest first.
func (s *FamilyService) GetApplications(ownerID uint) ([]models.Application, error) {
	apps, err := s.apps.GetApplicationsByOwner(ownerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return apps, nil
}

// GetApplication loads one application and verifies callerID owns it. This is
// the single ownership gate all application-scoped handlers go through.
func (s *FamilyService) GetApplication(callerID, applicationID uint) (*models.Application, error) {
	app, err := s.apps.GetApplicationByID(applicationID)
	if err != nil {
		return nil, storeErr(err)
	}
	if app.OwnerID != callerID {
		return nil, forbiddenf("application %d does not belong to the caller", applicationID)
	}
	return app, nil
}

// DeleteApplication removes an application and everything scoped to it.
func (s *FamilyService) DeleteApplication(callerID, applicationID uint) error {
	if _, err := s.GetApplication(callerID, applicationID); err != nil {
		return err
	}
	if err := s.apps.DeleteApplication(applicationID); err != nil {
		return storeErr(err)
	}
	return nil
}

// CreateMember adds a member to an application. A manually flagged is_self
// member is allowed; the store rejects a second one per application, which
// surfaces as ErrConflict.
func (s *FamilyService) CreateMember(applicationID uint, nickname, gender, avatarType string, isSelf bool) (*models.Member, error) {
	if nickname == "" || gender == "" {
		return nil, validationf("nickname and gender are required")
	}
	g := models.Gender(gender)
	if !g.Valid() {
		return nil, validationf("unknown gender %q", gender)
	}
	if avatarType == "" {
		avatarType = string(models.AvatarPerson)
	}
	a := models.AvatarType(avatarType)
	if !a.Valid() {
		return nil, validationf("unknown avatar type %q", avatarType)
	}

	member := &models.Member{
		ApplicationID: applicationID,
		Nickname:      nickname,
		Gender:        g,
		AvatarType:    a,
		IsSelf:        isSelf,
	}
	if err := s.members.CreateMember(member); err != nil {
		return nil, storeErr(err)
	}
	return member, nil
}

// UpdateMember applies the non-empty fields of req to a member of the given
// application.
func (s *FamilyService) UpdateMember(applicationID, memberID uint, req models.UpdateMemberRequest) (*models.Member, error) {
	member, err := s.members.GetMemberByID(memberID)
	if err != nil {
		return nil, storeErr(err)
	}
	if member.ApplicationID != applicationID {
		return nil, notFoundf("member %d not in application %d", memberID, applicationID)
	}

	if req.Nickname != "" {
		member.Nickname = req.Nickname
	}
	if req.Gender != "" {
		g := models.Gender(req.Gender)
		if !g.Valid() {
			return nil, validationf("unknown gender %q", req.Gender)
		}
		member.Gender = g
	}
	if req.AvatarType != "" {
		a := models.AvatarType(req.AvatarType)
		if !a.Valid() {
			return nil, validationf("unknown avatar type %q", req.AvatarType)
		}
		member.AvatarType = a
	}

	if err := s.members.UpdateMember(member); err != nil {
		return nil, storeErr(err)
	}
	return member, nil
}

// DeleteMember removes a member together with every relation touching it.
func (s *FamilyService) DeleteMember(applicationID, memberID uint) error {
	member, err := s.members.GetMemberByID(memberID)
	if err != nil {
		return storeErr(err)
	}
	if member.ApplicationID != applicationID {
		return notFoundf("member %d not in application %d", memberID, applicationID)
	}
	if err := s.members.DeleteMember(memberID); err != nil {
		return storeErr(err)
	}
	return nil
}

// CreateRelation adds a typed edge between two members of the application.
// Self-loops and endpoints outside the application are rejected before the
// write; duplicate edges are rejected by the store's unique index.
func (s *FamilyService) CreateRelation(applicationID, fromID, toID uint, relationType string) (*models.Relation, error) {
	if fromID == 0 || toID == 0 || relationType == "" {
		return nil, validationf("from, to and type are required")
	}
	if fromID == toID {
		return nil, validationf("a member cannot relate to itself")
	}
	t := models.RelationType(relationType)
	if !t.Valid() {
		return nil, validationf("unknown relation type %q", relationType)
	}

	for _, id := range []uint{fromID, toID} {
		member, err := s.members.GetMemberByID(id)
		if err != nil {
			return nil, storeErr(err)
		}
		if member.ApplicationID != applicationID {
			return nil, validationf("member %d not in application %d", id, applicationID)
		}
	}

	relation := &models.Relation{
		ApplicationID: applicationID,
		FromMemberID:  fromID,
		ToMemberID:    toID,
		Type:          t,
	}
	if err := s.relations.CreateRelation(relation); err != nil {
		return nil, storeErr(err)
	}
	return relation, nil
}

// DeleteRelation removes a relation of the given application.
func (s *FamilyService) DeleteRelation(applicationID, relationID uint) error {
	relation, err := s.relations.GetRelationByID(relationID)
	if err != nil {
		return storeErr(err)
	}
	if relation.ApplicationID != applicationID {
		return notFoundf("relation %d not in application %d", relationID, applicationID)
	}
	if err := s.relations.DeleteRelation(relationID); err != nil {
		return storeErr(err)
	}
	return nil
}

// FamilyTree loads the application's members and relations and derives the
// renderable tree view.
func (s *FamilyService) FamilyTree(applicationID uint) (*models.TreeView, error) {
	members, err := s.members.GetMembersByApplication(applicationID)
	if err != nil {
		return nil, storeErr(err)
	}
	relations, err := s.relations.GetRelationsByApplication(applicationID)
	if err != nil {
		return nil, storeErr(err)
	}
	return buildTreeView(applicationID, members, relations), nil
}

// ReplaceItems swaps the application's item list for the given one.
func (s *FamilyService) ReplaceItems(applicationID uint, inputs []models.ItemInput) ([]models.ApplicationItem, error) {
	items := make([]models.ApplicationItem, 0, len(inputs))
	for i, in := range inputs {
		if in.Label == "" {
			return nil, validationf("item %d has no label", i)
		}
		items = append(items, models.ApplicationItem{
			ApplicationID: applicationID,
			Position:      i,
			Label:         in.Label,
			Value:         in.Value,
		})
	}
	if err := s.apps.ReplaceItems(applicationID, items); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

// GetItems returns the application's items in stored order.
func (s *FamilyService) GetItems(applicationID uint) ([]models.ApplicationItem, error) {
	items, err := s.apps.GetItems(applicationID)
	if err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

// AppendResult records an outcome snapshot for the application.
func (s *FamilyService) AppendResult(ctx context.Context, applicationID uint, outcome, detail string) (*models.ApplicationResult, error) {
	if outcome == "" {
		return nil, validationf("outcome is required")
	}
	result := &models.ApplicationResult{
		ApplicationID: applicationID,
		Outcome:       outcome,
		Detail:        detail,
	}
	if err := s.results.AppendResult(ctx, result); err != nil {
		return nil, storeErr(err)
	}
	return result, nil
}

// RecentResults returns the newest snapshots, capped at limit
// (DefaultResultLimit when limit is not positive).
func (s *FamilyService) RecentResults(ctx context.Context, applicationID uint, limit int64) ([]models.ApplicationResult, error) {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	results, err := s.results.RecentResults(ctx, applicationID, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}
