package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/decidly/backend/internal/models"
	"gorm.io/gorm"
)

// In-memory repository fakes. They honor the same contracts as the Postgres
// implementations, including the unique-index behaviors the engines lean on:
// one friendship row per pair, one (from, to, type) edge, one self member per
// application, answer-once on questions. Deletes remove rows outright and
// free their unique-index slots, matching the unscoped deletes in the real
// repositories; the repositories package covers that equivalence against a
// migrated database.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByFirebaseUID(uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUsersByIDs(ids []uint) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SearchUsers(query string, excludeID uint) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.User
	for _, u := range r.users {
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeApplicationRepo struct {
	mu     sync.Mutex
	nextID uint
	apps   map[uint]*models.Application
	items  map[uint][]models.ApplicationItem
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:  map[uint]*models.Application{},
		items: map[uint][]models.ApplicationItem{},
	}
}

func (r *fakeApplicationRepo) CreateApplication(app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	app.ID = r.nextID
	app.CreatedAt = time.Now()
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) GetApplicationByID(id uint) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeApplicationRepo) GetApplicationsByOwner(ownerID uint) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) DeleteApplication(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.apps, id)
	delete(r.items, id)
	return nil
}

func (r *fakeApplicationRepo) ReplaceItems(applicationID uint, items []models.ApplicationItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[applicationID] = append([]models.ApplicationItem(nil), items...)
	return nil
}

func (r *fakeApplicationRepo) GetItems(applicationID uint) ([]models.ApplicationItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ApplicationItem(nil), r.items[applicationID]...), nil
}

type fakeMemberRepo struct {
	mu        sync.Mutex
	nextID    uint
	members   map[uint]*models.Member
	relations *fakeRelationRepo // for the delete cascade
}

func newFakeMemberRepo(relations *fakeRelationRepo) *fakeMemberRepo {
	return &fakeMemberRepo{members: map[uint]*models.Member{}, relations: relations}
}

func (r *fakeMemberRepo) CreateMember(member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if member.IsSelf {
		for _, m := range r.members {
			if m.ApplicationID == member.ApplicationID && m.IsSelf {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	r.nextID++
	member.ID = r.nextID
	member.CreatedAt = time.Now()
	cp := *member
	r.members[member.ID] = &cp
	return nil
}

func (r *fakeMemberRepo) GetMemberByID(id uint) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.members[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMemberRepo) GetMembersByApplication(applicationID uint) ([]models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Member
	for id := uint(1); id <= r.nextID; id++ {
		if m, ok := r.members[id]; ok && m.ApplicationID == applicationID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) UpdateMember(member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[member.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *member
	r.members[member.ID] = &cp
	return nil
}

func (r *fakeMemberRepo) DeleteMember(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
	r.relations.deleteTouching(id)
	return nil
}

type fakeRelationRepo struct {
	mu        sync.Mutex
	nextID    uint
	relations map[uint]*models.Relation
}

func newFakeRelationRepo() *fakeRelationRepo {
	return &fakeRelationRepo{relations: map[uint]*models.Relation{}}
}

func (r *fakeRelationRepo) CreateRelation(relation *models.Relation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.relations {
		if existing.ApplicationID == relation.ApplicationID &&
			existing.FromMemberID == relation.FromMemberID &&
			existing.ToMemberID == relation.ToMemberID &&
			existing.Type == relation.Type {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	relation.ID = r.nextID
	cp := *relation
	r.relations[relation.ID] = &cp
	return nil
}

func (r *fakeRelationRepo) GetRelationByID(id uint) (*models.Relation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rel, ok := r.relations[id]; ok {
		cp := *rel
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRelationRepo) GetRelationsByApplication(applicationID uint) ([]models.Relation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Relation
	for _, rel := range r.relations {
		if rel.ApplicationID == applicationID {
			out = append(out, *rel)
		}
	}
	return out, nil
}

func (r *fakeRelationRepo) DeleteRelation(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.relations, id)
	return nil
}

func (r *fakeRelationRepo) deleteTouching(memberID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rel := range r.relations {
		if rel.FromMemberID == memberID || rel.ToMemberID == memberID {
			delete(r.relations, id)
		}
	}
}

type fakeFriendshipRepo struct {
	mu       sync.Mutex
	nextID   uint
	requests map[uint]*models.FriendRequest
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{requests: map[uint]*models.FriendRequest{}}
}

func (r *fakeFriendshipRepo) CreateFriendRequest(req *models.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.PairKey(req.SenderID, req.ReceiverID)
	for _, existing := range r.requests {
		if existing.PairKey == key {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	req.ID = r.nextID
	req.PairKey = key
	req.Status = models.FriendStatusPending
	req.CreatedAt = time.Now()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeFriendshipRepo) GetFriendRequestByID(id uint) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, ok := r.requests[id]; ok {
		cp := *req
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFriendshipRepo) GetFriendRequestByPair(userA, userB uint) (*models.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.PairKey(userA, userB)
	for _, req := range r.requests {
		if req.PairKey == key {
			cp := *req
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFriendshipRepo) GetPendingReceived(userID uint) ([]models.FriendRequest, error) {
	return r.filter(func(req *models.FriendRequest) bool {
		return req.ReceiverID == userID && req.Status == models.FriendStatusPending
	}), nil
}

func (r *fakeFriendshipRepo) GetPendingSent(userID uint) ([]models.FriendRequest, error) {
	return r.filter(func(req *models.FriendRequest) bool {
		return req.SenderID == userID && req.Status == models.FriendStatusPending
	}), nil
}

func (r *fakeFriendshipRepo) GetAcceptedByUser(userID uint) ([]models.FriendRequest, error) {
	return r.filter(func(req *models.FriendRequest) bool {
		return (req.SenderID == userID || req.ReceiverID == userID) && req.Status == models.FriendStatusAccepted
	}), nil
}

func (r *fakeFriendshipRepo) filter(keep func(*models.FriendRequest) bool) []models.FriendRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FriendRequest
	for _, req := range r.requests {
		if keep(req) {
			out = append(out, *req)
		}
	}
	return out
}

func (r *fakeFriendshipRepo) AreFriends(userA, userB uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.PairKey(userA, userB)
	for _, req := range r.requests {
		if req.PairKey == key && req.Status == models.FriendStatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFriendshipRepo) UpdateFriendRequestStatus(id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, ok := r.requests[id]; ok {
		req.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeFriendshipRepo) DeleteFriendRequest(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.requests, id)
	return nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	nextID    uint
	questions map[uint]*models.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[uint]*models.Question{}}
}

func (r *fakeQuestionRepo) CreateQuestion(question *models.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	question.ID = r.nextID
	question.CreatedAt = time.Now()
	cp := *question
	r.questions[question.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) GetQuestionByID(id uint) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q, ok := r.questions[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) SetAnswer(id uint, answer string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok || q.Answer != nil {
		return false, nil
	}
	now := time.Now()
	q.Answer = &answer
	q.AnsweredAt = &now
	return true, nil
}

func (r *fakeQuestionRepo) GetQuestionsByUser(userID uint, applicationID *uint) ([]models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Question
	for id := uint(1); id <= r.nextID; id++ {
		q, ok := r.questions[id]
		if !ok {
			continue
		}
		if q.FromUserID != userID && q.ToUserID != userID {
			continue
		}
		if applicationID != nil && (q.ApplicationID == nil || *q.ApplicationID != *applicationID) {
			continue
		}
		out = append(out, *q)
	}
	return out, nil
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results []models.ApplicationResult
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{}
}

func (r *fakeResultRepo) AppendResult(_ context.Context, result *models.ApplicationResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	result.CreatedAt = time.Now()
	r.results = append(r.results, *result)
	return nil
}

func (r *fakeResultRepo) RecentResults(_ context.Context, applicationID uint, limit int64) ([]models.ApplicationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ApplicationResult
	for i := len(r.results) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.results[i].ApplicationID == applicationID {
			out = append(out, r.results[i])
		}
	}
	return out, nil
}
