package services

import (
	"testing"

	"github.com/decidly/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type questionFixture struct {
	svc    *QuestionService
	social *SocialService
	ids    []uint
}

func newQuestionFixture(t *testing.T, names ...string) *questionFixture {
	t.Helper()
	users := newFakeUserRepo()
	friendships := newFakeFriendshipRepo()
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		u := &models.User{Name: name, Email: name + "@example.com"}
		require.NoError(t, users.CreateUser(u))
		ids = append(ids, u.ID)
	}
	return &questionFixture{
		svc:    NewQuestionService(newFakeQuestionRepo(), friendships, users),
		social: NewSocialService(friendships, users, zap.NewNop()),
		ids:    ids,
	}
}

func (f *questionFixture) befriend(t *testing.T, a, b uint) {
	t.Helper()
	req, err := f.social.SendFriendRequest(a, b)
	require.NoError(t, err)
	_, err = f.social.AcceptFriendRequest(b, req.ID)
	require.NoError(t, err)
}

func TestSendQuestionRequiresFriendship(t *testing.T) {
	f := newQuestionFixture(t, "alice", "bob")
	alice, bob := f.ids[0], f.ids[1]

	_, err := f.svc.SendQuestion(alice, bob, "Coffee or tea?", []string{"Coffee", "Tea"}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	f.befriend(t, alice, bob)

	q, err := f.svc.SendQuestion(alice, bob, "Coffee or tea?", []string{"Coffee", "Tea"}, nil)
	require.NoError(t, err)
	assert.False(t, q.Answered())
}

func TestSendQuestionPendingRequestIsNotEnough(t *testing.T) {
	f := newQuestionFixture(t, "alice", "bob")
	alice, bob := f.ids[0], f.ids[1]

	_, err := f.social.SendFriendRequest(alice, bob)
	require.NoError(t, err)

	_, err = f.svc.SendQuestion(alice, bob, "Coffee or tea?", []string{"Coffee", "Tea"}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendQuestionValidation(t *testing.T) {
	f := newQuestionFixture(t, "alice", "bob")
	alice, bob := f.ids[0], f.ids[1]
	f.befriend(t, alice, bob)

	_, err := f.svc.SendQuestion(alice, bob, "", []string{"A"}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.SendQuestion(alice, bob, "Pick one", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.SendQuestion(alice, bob, "Pick one", []string{"A", ""}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.SendQuestion(alice, alice, "Pick one", []string{"A"}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnswerQuestionScenario(t *testing.T) {
	f := newQuestionFixture(t, "alice", "bob")
	alice, bob := f.ids[0], f.ids[1]
	f.befriend(t, alice, bob)

	q, err := f.svc.SendQuestion(alice, bob, "Coffee or tea?", []string{"Coffee", "Tea"}, nil)
	require.NoError(t, err)

	// Off-menu answer rejected.
	_, err = f.svc.AnswerQuestion(bob, q.ID, "Juice")
	assert.ErrorIs(t, err, ErrValidation)

	answered, err := f.svc.AnswerQuestion(bob, q.ID, "Tea")
	require.NoError(t, err)
	require.NotNil(t, answered.Answer)
	assert.Equal(t, "Tea", *answered.Answer)
	assert.NotNil(t, answered.AnsweredAt)

	// Second answer conflicts and the stored answer stays put.
	_, err = f.svc.AnswerQuestion(bob, q.ID, "Coffee")
	assert.ErrorIs(t, err, ErrConflict)

	partition, err := f.svc.MyQuestions(bob, nil)
	require.NoError(t, err)
	require.Len(t, partition.Received, 1)
	assert.Equal(t, "Tea", *partition.Received[0].Answer)
}

func TestAnswerQuestionRetrySameAnswerStillConflicts(t *testing.T) {
	f := newQuestionFixture(t, "alice", "bob")
	alice, bob := f.ids[0], f.ids[1]
	f.befriend(t, alice, bob)

	q, err := f.svc.SendQuestion(alice, bob, "Coffee or tea?", []string{"Coffee", "Tea"}, nil)
	require.NoError(t, err)

	_, err = f.svc.AnswerQuestion(bob, q.ID, "Tea")
	require.NoError(t, err)

	// A retried answer does not double-apply; exactly one stored answer.
	_, err = f.svc.AnswerQuestion(bob, q.ID, "Tea")
	assert.ErrorIs(t, err, ErrConflict)

	stored, err := f.svc.MyQuestions(bob, nil)
	require.NoError(t, err)
	require.Len(t, stored.Received, 1)
	assert.Equal(t, "Tea", *stored.Received[0].Answer)
}

func TestOnlyAddresseeMayAnswer(t *testing.T) {
	f := newQuestionFixture(t, "alice", "bob", "carol")
	alice, bob, carol := f.ids[0], f.ids[1], f.ids[2]
	f.befriend(t, alice, bob)

	q, err := f.svc.SendQuestion(alice, bob, "Coffee or tea?", []string{"Coffee", "Tea"}, nil)
	require.NoError(t, err)

	_, err = f.svc.AnswerQuestion(alice, q.ID, "Tea")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.AnswerQuestion(carol, q.ID, "Tea")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.AnswerQuestion(bob, 999, "Tea")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMyQuestionsPartitionAndFilter(t *testing.T) {
	f := newQuestionFixture(t, "alice", "bob")
	alice, bob := f.ids[0], f.ids[1]
	f.befriend(t, alice, bob)

	appID := uint(42)
	_, err := f.svc.SendQuestion(alice, bob, "Scoped", []string{"A"}, &appID)
	require.NoError(t, err)
	_, err = f.svc.SendQuestion(alice, bob, "Unscoped", []string{"A"}, nil)
	require.NoError(t, err)
	_, err = f.svc.SendQuestion(bob, alice, "Reply", []string{"A"}, nil)
	require.NoError(t, err)

	all, err := f.svc.MyQuestions(alice, nil)
	require.NoError(t, err)
	assert.Len(t, all.Sent, 2)
	assert.Len(t, all.Received, 1)
	assert.Equal(t, bob, all.Sent[0].User.ID)
	assert.Equal(t, bob, all.Received[0].User.ID)

	scoped, err := f.svc.MyQuestions(alice, &appID)
	require.NoError(t, err)
	require.Len(t, scoped.Sent, 1)
	assert.Equal(t, "Scoped", scoped.Sent[0].Text)
	assert.Empty(t, scoped.Received)
}
