package service

import (
	"context"
	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/logger"
	"learning_platform_backend/pkg/monitoring"
	"sync"
	"time"

	"go.uber.org/zap"
)

type QuizService struct {
	QuestionRepo   QuestionRepo
	AttemptRepo    AttemptRepo
	EnrollmentRepo EnrollmentRepo

	mu                sync.RWMutex
	passScore         int
	progressIncrement int
}

func NewQuizService(questionRepo QuestionRepo, attemptRepo AttemptRepo, enrollmentRepo EnrollmentRepo, quizCfg config.QuizConfig) *QuizService {
	return &QuizService{
		QuestionRepo:      questionRepo,
		AttemptRepo:       attemptRepo,
		EnrollmentRepo:    enrollmentRepo,
		passScore:         quizCfg.PassScore,
		progressIncrement: quizCfg.ProgressIncrement,
	}
}

// UpdateConfig 配置热更新回调（configwatcher 触发）
func (s *QuizService) UpdateConfig(quizCfg config.QuizConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passScore = quizCfg.PassScore
	s.progressIncrement = quizCfg.ProgressIncrement
}

func (s *QuizService) thresholds() (passScore, increment int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passScore, s.progressIncrement
}

// CreateQuestion 题目入库前校验选项数量和正确答案归属，不做内容去重
func (s *QuizService) CreateQuestion(ctx context.Context, quizID string, question *model.QuizQuestion) error {
	if len(question.Options) < 2 {
		return util.ErrTooFewOptions
	}
	valid := false
	for _, option := range question.Options {
		if option == question.CorrectAnswer {
			valid = true
			break
		}
	}
	if !valid {
		return util.ErrAnswerNotInOptions
	}

	question.QuizID = quizID
	question.CreatedAt = time.Now().UTC()
	return s.QuestionRepo.Insert(ctx, question)
}

// GetQuizQuestions 答题端读取，正确答案一律抹掉
func (s *QuizService) GetQuizQuestions(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	questions, err := s.QuestionRepo.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	redacted := make([]model.QuizQuestion, 0, len(questions))
	for _, q := range questions {
		redacted = append(redacted, q.Redacted())
	}
	return redacted, nil
}

// GetAllQuizQuestions 管理端全量视图，含正确答案
func (s *QuizService) GetAllQuizQuestions(ctx context.Context) ([]model.QuizQuestion, error) {
	return s.QuestionRepo.FindAll(ctx)
}

// SubmitAttempt 记录一次答题。通过线按当前配置判定；通过且带课程、
// 且该用户确有此报名时，课程进度加固定增量（封顶100）并回写 completed。
// 没有对应报名时静默跳过加成，答题与报名是解耦的。
// 报名更新和答题插入是两次独立写，后者失败不回滚前者。
// 返回值第二项表示本次是否触发了进度加成。
func (s *QuizService) SubmitAttempt(ctx context.Context, userID, quizID string, score int, courseSlug string) (*model.QuizAttempt, bool, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, false, err
	}

	passScore, increment := s.thresholds()
	passed := score >= passScore

	attempt := &model.QuizAttempt{
		UserID:      oid,
		QuizID:      quizID,
		CourseSlug:  courseSlug,
		Score:       score,
		Passed:      passed,
		AttemptedAt: time.Now().UTC(),
	}

	progressUpdated := false
	if passed && courseSlug != "" {
		enrollment, err := s.EnrollmentRepo.FindByUserAndSlug(ctx, oid, courseSlug)
		if err != nil {
			return nil, false, err
		}
		if enrollment != nil {
			newProgress := min(enrollment.Progress+increment, 100)
			completed := newProgress >= 100

			now := time.Now().UTC()
			if err := s.EnrollmentRepo.UpdateProgress(ctx, enrollment.ID, newProgress, &completed, now); err != nil {
				return nil, false, err
			}

			attempt.ProgressIncrement = increment
			attempt.NewProgress = newProgress
			progressUpdated = true

			logger.Log.Debug("quiz pass bumped course progress",
				zap.String("userId", userID),
				zap.String("courseSlug", courseSlug),
				zap.Int("newProgress", newProgress))
		}
	}

	if err := s.AttemptRepo.Insert(ctx, attempt); err != nil {
		return nil, false, err
	}

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	monitoring.QuizAttemptCounter.WithLabelValues(outcome).Inc()

	return attempt, progressUpdated, nil
}

func (s *QuizService) GetUserAttempts(ctx context.Context, userID string) ([]model.QuizAttempt, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.AttemptRepo.FindByUser(ctx, oid)
}
