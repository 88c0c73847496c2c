package handlers

import (
	"net/http"
	"strconv"

	"github.com/decidly/backend/internal/middleware"
	"github.com/decidly/backend/internal/models"
	"github.com/decidly/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// QuestionHandler handles HTTP requests related to questions
type QuestionHandler struct {
	questionService *services.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// RegisterQuestionRoutes registers question-related routes
func (h *QuestionHandler) RegisterQuestionRoutes(g *echo.Group) {
	g.POST("/questions", h.SendQuestion)
	g.PUT("/questions/:id/answer", h.AnswerQuestion)
	g.GET("/questions", h.GetMyQuestions)
}

// SendQuestion sends a multiple-choice question to a friend
func (h *QuestionHandler) SendQuestion(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)

	var req models.SendQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	question, err := h.questionService.SendQuestion(userID, req.ToUserID, req.Text, req.Options, req.ApplicationID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, question)
}

// AnswerQuestion records the addressee's answer to a question
func (h *QuestionHandler) AnswerQuestion(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid question ID")
	}

	var req models.AnswerQuestionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	question, err := h.questionService.AnswerQuestion(userID, uint(questionID), req.Answer)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, question)
}

// GetMyQuestions partitions the caller's questions into sent and received,
// optionally filtered by ?application_id=
func (h *QuestionHandler) GetMyQuestions(c echo.Context) error {
	userID, _ := middleware.CurrentUserID(c)

	var applicationID *uint
	if raw := c.QueryParam("application_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid application_id")
		}
		id := uint(parsed)
		applicationID = &id
	}

	partition, err := h.questionService.MyQuestions(userID, applicationID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, partition)
}
