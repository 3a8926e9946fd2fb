package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	QuizQuestionsCollection = "quiz_questions"
	QuizProgressCollection  = "quiz_progress"
)

// QuizQuestion 题目，quiz_id 是自由分组键，不指向任何 quiz 实体。
// swagger:model QuizQuestion
type QuizQuestion struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	QuizID        string        `bson:"quiz_id" json:"quizId"`
	Question      string        `bson:"question" json:"question"`
	Options       []string      `bson:"options" json:"options"`
	CorrectAnswer string        `bson:"correct_answer" json:"correctAnswer,omitempty"`
	Explanation   string        `bson:"explanation" json:"explanation"`
	Points        int           `bson:"points" json:"points"`
	QuestionType  string        `bson:"question_type" json:"questionType"`
	CreatedAt     time.Time     `bson:"created_at" json:"-"`
}

// Redacted 返回去掉正确答案的拷贝，供答题端读取题目时使用。
func (q QuizQuestion) Redacted() QuizQuestion {
	q.CorrectAnswer = ""
	return q
}

// QuizAttempt 答题记录，提交后不可变。
// ProgressIncrement/NewProgress 仅在本次提交触发了课程进度增长时写入。
// swagger:model QuizAttempt
type QuizAttempt struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            bson.ObjectID `bson:"user_id" json:"userId"`
	QuizID            string        `bson:"quiz_id" json:"quizId"`
	CourseSlug        string        `bson:"course_slug,omitempty" json:"courseSlug,omitempty"`
	Score             int           `bson:"score" json:"score"`
	Passed            bool          `bson:"passed" json:"passed"`
	AttemptedAt       time.Time     `bson:"attempted_at" json:"attemptedAt"`
	ProgressIncrement int           `bson:"progress_increment,omitempty" json:"progressIncrement,omitempty"`
	NewProgress       int           `bson:"new_progress,omitempty" json:"newProgress,omitempty"`
}
