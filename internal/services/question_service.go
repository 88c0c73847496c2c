package services

import (
	"github.com/decidly/backend/internal/models"
	"github.com/decidly/backend/internal/repositories"
)

// QuestionService lets a user send a structured multiple-choice question to a
// friend and records at most one answer per question. The friends guard lives
// here, not in the handlers: a question can never be created for a
// non-friend no matter which surface calls in.
type QuestionService struct {
	questions   repositories.QuestionRepository
	friendships repositories.FriendshipRepository
	users       repositories.UserRepository
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	questions repositories.QuestionRepository,
	friendships repositories.FriendshipRepository,
	users repositories.UserRepository,
) *QuestionService {
	return &QuestionService{questions: questions, friendships: friendships, users: users}
}

// SendQuestion creates an unanswered question addressed to an accepted
// friend, optionally scoped to one application.
func (s *QuestionService) SendQuestion(callerID, toUserID uint, text string, options []string, applicationID *uint) (*models.Question, error) {
	if text == "" {
		return nil, validationf("question text is required")
	}
	if len(options) == 0 {
		return nil, validationf("at least one answer option is required")
	}
	for _, opt := range options {
		if opt == "" {
			return nil, validationf("answer options must not be empty")
		}
	}
	if toUserID == callerID {
		return nil, validationf("cannot send a question to yourself")
	}

	friends, err := s.friendships.AreFriends(callerID, toUserID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !friends {
		return nil, validationf("user %d is not an accepted friend", toUserID)
	}

	question := &models.Question{
		FromUserID:    callerID,
		ToUserID:      toUserID,
		ApplicationID: applicationID,
		Text:          text,
		Options:       options,
	}
	if err := s.questions.CreateQuestion(question); err != nil {
		return nil, storeErr(err)
	}
	return question, nil
}

// AnswerQuestion records the addressee's answer. The answer must be one of
// the question's options, and only the first answer sticks: a retry or a
// second choice gets ErrConflict while the stored answer stays untouched.
func (s *QuestionService) AnswerQuestion(callerID, questionID uint, answer string) (*models.Question, error) {
	question, err := s.questions.GetQuestionByID(questionID)
	if err != nil {
		return nil, storeErr(err)
	}
	if question.ToUserID != callerID {
		return nil, forbiddenf("question %d is not addressed to the caller", questionID)
	}
	if !question.HasOption(answer) {
		return nil, validationf("%q is not one of the question's options", answer)
	}
	if question.Answered() {
		return nil, conflictf("question %d is already answered", questionID)
	}

	applied, err := s.questions.SetAnswer(questionID, answer)
	if err != nil {
		return nil, storeErr(err)
	}
	if !applied {
		// Lost the race to another answer between the read and the update.
		return nil, conflictf("question %d is already answered", questionID)
	}

	updated, err := s.questions.GetQuestionByID(questionID)
	if err != nil {
		return nil, storeErr(err)
	}
	return updated, nil
}

// MyQuestions partitions the caller's questions into sent and received,
// optionally filtered to one application, each joined with the counterpart's
// profile.
func (s *QuestionService) MyQuestions(callerID uint, applicationID *uint) (*models.QuestionsPartition, error) {
	questions, err := s.questions.GetQuestionsByUser(callerID, applicationID)
	if err != nil {
		return nil, storeErr(err)
	}

	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		if q.FromUserID == callerID {
			ids = append(ids, q.ToUserID)
		} else {
			ids = append(ids, q.FromUserID)
		}
	}
	users, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		return nil, storeErr(err)
	}
	byID := make(map[uint]models.UserProfile, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Profile()
	}

	partition := &models.QuestionsPartition{
		Sent:     []models.QuestionView{},
		Received: []models.QuestionView{},
	}
	for _, q := range questions {
		if q.FromUserID == callerID {
			partition.Sent = append(partition.Sent, models.QuestionView{Question: q, User: byID[q.ToUserID]})
		} else {
			partition.Received = append(partition.Received, models.QuestionView{Question: q, User: byID[q.FromUserID]})
		}
	}
	return partition, nil
}
