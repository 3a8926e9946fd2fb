package controller

import (
	"errors"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// QuestionCreateRequest 新建题目请求
// swagger:model QuestionCreateRequest
type QuestionCreateRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	QuestionType  string   `json:"questionType"`
}

// CreateQuestion godoc
// @Summary 新建题目
// @Description 在指定测验下创建题目（仅 Instructor）
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path string true "测验ID"
// @Param   body body QuestionCreateRequest true "题目内容"
// @Success 201 {object} util.Response{data=model.QuizQuestion} "创建成功"
// @Failure 400 {object} util.Response "选项不足或答案不在选项中"
// @Router /api/quizzes/{quizId}/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	var req QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := &model.QuizQuestion{
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Points:        req.Points,
		QuestionType:  req.QuestionType,
	}

	if err := c.QuizService.CreateQuestion(ctx.Request.Context(), ctx.Param("quizId"), question); err != nil {
		if errors.Is(err, util.ErrTooFewOptions) || errors.Is(err, util.ErrAnswerNotInOptions) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, "Question created successfully", question)
}

// GetQuizQuestions godoc
// @Summary 测验题目列表
// @Description 获取指定测验的题目，正确答案不下发
// @Tags 测验
// @Produce  json
// @Param   quizId path string true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizQuestion} "成功"
// @Router /api/quizzes/{quizId}/questions [get]
func (c *QuizController) GetQuizQuestions(ctx *gin.Context) {
	questions, err := c.QuizService.GetQuizQuestions(ctx.Request.Context(), ctx.Param("quizId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, "Questions retrieved successfully", questions)
}

// GetAllQuestions godoc
// @Summary 全部题目
// @Description 管理端全量题库，含正确答案（仅 Instructor）
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.QuizQuestion} "成功"
// @Router /api/quizzes/questions [get]
func (c *QuizController) GetAllQuestions(ctx *gin.Context) {
	questions, err := c.QuizService.GetAllQuizQuestions(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, "Questions retrieved successfully", questions)
}

// AttemptRequest 答题提交请求
// swagger:model AttemptRequest
type AttemptRequest struct {
	QuizID     string `json:"quizId" binding:"required"`
	Score      *int   `json:"score" binding:"required,gte=0,lte=100"`
	CourseSlug string `json:"courseSlug"`
}

// SubmitAttempt godoc
// @Summary 提交答题结果
// @Description 记录一次答题，通过且关联课程时自动推进课程进度
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Param   body body AttemptRequest true "答题结果"
// @Success 201 {object} util.Response{data=model.QuizAttempt} "记录成功"
// @Router /api/users/{userId}/quizzes/attempt [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	var req AttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, _, err := c.QuizService.SubmitAttempt(ctx.Request.Context(), ctx.Param("userId"), req.QuizID, *req.Score, req.CourseSlug)
	if err != nil {
		if errors.Is(err, util.ErrInvalidUserID) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// 提示语只看"通过且带课程"，报名缺失导致的静默跳过不影响文案
	message := "Quiz attempt recorded"
	if attempt.Passed && req.CourseSlug != "" {
		message += " and progress updated"
	}
	util.Created(ctx, message, attempt)
}

// GetUserAttempts godoc
// @Summary 用户答题历史
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt} "成功"
// @Router /api/users/{userId}/quiz-attempts [get]
func (c *QuizController) GetUserAttempts(ctx *gin.Context) {
	attempts, err := c.QuizService.GetUserAttempts(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrInvalidUserID) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Attempts retrieved successfully", attempts)
}
