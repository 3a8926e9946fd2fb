package service

import (
	"context"
	"strings"
	"time"

	"learning_platform_backend/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// 内存版仓储实现，行为对齐 internal/repository 的 Mongo 实现：
// 查不到返回 (nil, nil)，更新/删除返回受影响条数。

type fakeUserRepo struct {
	users map[bson.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[bson.ObjectID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.M) (int64, error) {
	user, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	for key, value := range fields {
		switch key {
		case "email":
			user.Email = value.(string)
		case "first_name":
			user.FirstName = value.(string)
		case "last_name":
			user.LastName = value.(string)
		case "role":
			user.Role = value.(model.UserRole)
		case "is_active":
			user.IsActive = value.(bool)
		}
	}
	return 1, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id bson.ObjectID) (int64, error) {
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

type fakeProfileRepo struct {
	profiles map[bson.ObjectID]*model.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[bson.ObjectID]*model.Profile)}
}

func (r *fakeProfileRepo) Insert(ctx context.Context, profile *model.Profile) error {
	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}
	clone := *profile
	clone.RegisteredCourses = append([]string(nil), profile.RegisteredCourses...)
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) FindByUser(ctx context.Context, userID bson.ObjectID) (*model.Profile, error) {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) AddCourse(ctx context.Context, userID bson.ObjectID, slug string) error {
	profile, ok := r.profiles[userID]
	if !ok {
		return nil
	}
	for _, existing := range profile.RegisteredCourses {
		if existing == slug {
			return nil
		}
	}
	profile.RegisteredCourses = append(profile.RegisteredCourses, slug)
	return nil
}

func (r *fakeProfileRepo) RemoveCourseFromAll(ctx context.Context, slug string) error {
	for _, profile := range r.profiles {
		kept := profile.RegisteredCourses[:0]
		for _, existing := range profile.RegisteredCourses {
			if existing != slug {
				kept = append(kept, existing)
			}
		}
		profile.RegisteredCourses = kept
	}
	return nil
}

func (r *fakeProfileRepo) DeleteByUser(ctx context.Context, userID bson.ObjectID) error {
	delete(r.profiles, userID)
	return nil
}

type fakeEnrollmentRepo struct {
	enrollments []*model.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{}
}

func (r *fakeEnrollmentRepo) Insert(ctx context.Context, enrollment *model.Enrollment) error {
	if enrollment.ID.IsZero() {
		enrollment.ID = bson.NewObjectID()
	}
	clone := *enrollment
	r.enrollments = append(r.enrollments, &clone)
	return nil
}

func (r *fakeEnrollmentRepo) FindByUserAndSlug(ctx context.Context, userID bson.ObjectID, slug string) (*model.Enrollment, error) {
	for _, e := range r.enrollments {
		if e.UserID == userID && e.CourseSlug == slug {
			clone := *e
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range r.enrollments {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) UpdateProgress(ctx context.Context, id bson.ObjectID, progress int, completed *bool, lastAccessed time.Time) error {
	for _, e := range r.enrollments {
		if e.ID == id {
			e.Progress = progress
			if completed != nil {
				e.Completed = *completed
			}
			la := lastAccessed
			e.LastAccessed = &la
			return nil
		}
	}
	return nil
}

func (r *fakeEnrollmentRepo) DeleteBySlug(ctx context.Context, slug string) (int64, error) {
	var removed int64
	kept := r.enrollments[:0]
	for _, e := range r.enrollments {
		if e.CourseSlug == slug {
			removed++
		} else {
			kept = append(kept, e)
		}
	}
	r.enrollments = kept
	return removed, nil
}

func (r *fakeEnrollmentRepo) DeleteByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	var removed int64
	kept := r.enrollments[:0]
	for _, e := range r.enrollments {
		if e.UserID == userID {
			removed++
		} else {
			kept = append(kept, e)
		}
	}
	r.enrollments = kept
	return removed, nil
}

func (r *fakeEnrollmentRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.enrollments)), nil
}

func (r *fakeEnrollmentRepo) CountBySlug(ctx context.Context, slug string) (int64, error) {
	var n int64
	for _, e := range r.enrollments {
		if e.CourseSlug == slug {
			n++
		}
	}
	return n, nil
}

func (r *fakeEnrollmentRepo) CountDistinctUsers(ctx context.Context) (int, error) {
	seen := make(map[bson.ObjectID]bool)
	for _, e := range r.enrollments {
		seen[e.UserID] = true
	}
	return len(seen), nil
}

func (r *fakeEnrollmentRepo) PopularCourses(ctx context.Context, limit int) ([]model.SlugCount, error) {
	counts := make(map[string]int64)
	for _, e := range r.enrollments {
		counts[e.CourseSlug]++
	}
	out := make([]model.SlugCount, 0, len(counts))
	for slug, count := range counts {
		out = append(out, model.SlugCount{Slug: slug, Count: count})
	}
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEnrollmentRepo) RecentBySlug(ctx context.Context, slug string, limit int) ([]model.EnrollmentWithUser, error) {
	var out []model.EnrollmentWithUser
	for _, e := range r.enrollments {
		if e.CourseSlug != slug {
			continue
		}
		out = append(out, model.EnrollmentWithUser{
			ID:           e.ID,
			Progress:     e.Progress,
			Completed:    e.Completed,
			EnrolledAt:   e.EnrolledAt,
			LastAccessed: e.LastAccessed,
		})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeCatalogRepo struct {
	courses map[string]*model.CatalogCourse
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{courses: make(map[string]*model.CatalogCourse)}
}

func (r *fakeCatalogRepo) Insert(ctx context.Context, course *model.CatalogCourse) error {
	if course.ID.IsZero() {
		course.ID = bson.NewObjectID()
	}
	clone := *course
	r.courses[course.Slug] = &clone
	return nil
}

func (r *fakeCatalogRepo) FindBySlug(ctx context.Context, slug string) (*model.CatalogCourse, error) {
	course, ok := r.courses[slug]
	if !ok {
		return nil, nil
	}
	clone := *course
	return &clone, nil
}

func (r *fakeCatalogRepo) Find(ctx context.Context, category, difficulty, search string) ([]model.CatalogCourse, error) {
	var out []model.CatalogCourse
	for _, course := range r.courses {
		if category != "" && course.Category != category {
			continue
		}
		if difficulty != "" && course.Difficulty != difficulty {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			hay := strings.ToLower(course.Title + " " + course.Description + " " + strings.Join(course.Tags, " "))
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		out = append(out, *course)
	}
	return out, nil
}

func (r *fakeCatalogRepo) UpdateBySlug(ctx context.Context, slug string, fields bson.M) error {
	course, ok := r.courses[slug]
	if !ok {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "title":
			course.Title = value.(string)
		case "description":
			course.Description = value.(string)
		case "category":
			course.Category = value.(string)
		case "difficulty":
			course.Difficulty = value.(string)
		case "thumbnail":
			course.Thumbnail = value.(string)
		case "updated_at":
			t := value.(time.Time)
			course.UpdatedAt = &t
		}
	}
	return nil
}

func (r *fakeCatalogRepo) DeleteBySlug(ctx context.Context, slug string) (int64, error) {
	if _, ok := r.courses[slug]; !ok {
		return 0, nil
	}
	delete(r.courses, slug)
	return 1, nil
}

func (r *fakeCatalogRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(r.courses)), nil
}

func (r *fakeCatalogRepo) GroupByField(ctx context.Context, field string) ([]model.ValueCount, error) {
	counts := make(map[string]int64)
	for _, course := range r.courses {
		switch field {
		case "category":
			counts[course.Category]++
		case "difficulty":
			counts[course.Difficulty]++
		}
	}
	out := make([]model.ValueCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, model.ValueCount{Value: value, Count: count})
	}
	return out, nil
}

type fakeQuestionRepo struct {
	questions []*model.QuizQuestion
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{}
}

func (r *fakeQuestionRepo) Insert(ctx context.Context, question *model.QuizQuestion) error {
	if question.ID.IsZero() {
		question.ID = bson.NewObjectID()
	}
	clone := *question
	r.questions = append(r.questions, &clone)
	return nil
}

func (r *fakeQuestionRepo) FindByQuiz(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	var out []model.QuizQuestion
	for _, q := range r.questions {
		if q.QuizID == quizID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) FindAll(ctx context.Context) ([]model.QuizQuestion, error) {
	out := make([]model.QuizQuestion, 0, len(r.questions))
	for _, q := range r.questions {
		out = append(out, *q)
	}
	return out, nil
}

type fakeAttemptRepo struct {
	attempts []*model.QuizAttempt
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{}
}

func (r *fakeAttemptRepo) Insert(ctx context.Context, attempt *model.QuizAttempt) error {
	if attempt.ID.IsZero() {
		attempt.ID = bson.NewObjectID()
	}
	clone := *attempt
	r.attempts = append(r.attempts, &clone)
	return nil
}

func (r *fakeAttemptRepo) FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) DeleteByUser(ctx context.Context, userID bson.ObjectID) error {
	kept := r.attempts[:0]
	for _, a := range r.attempts {
		if a.UserID != userID {
			kept = append(kept, a)
		}
	}
	r.attempts = kept
	return nil
}

type fakeGameRepo struct {
	games []*model.GameProgress
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{}
}

func (r *fakeGameRepo) Insert(ctx context.Context, progress *model.GameProgress) error {
	if progress.ID.IsZero() {
		progress.ID = bson.NewObjectID()
	}
	clone := *progress
	r.games = append(r.games, &clone)
	return nil
}

func (r *fakeGameRepo) FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.GameProgress, error) {
	var out []model.GameProgress
	for _, g := range r.games {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGameRepo) FindByUserAndGame(ctx context.Context, userID bson.ObjectID, gameID string) (*model.GameProgress, error) {
	for _, g := range r.games {
		if g.UserID == userID && g.GameID == gameID {
			clone := *g
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeGameRepo) Update(ctx context.Context, id bson.ObjectID, level, xp int, lastPlayed time.Time) error {
	for _, g := range r.games {
		if g.ID == id {
			g.Level = level
			g.XP = xp
			lp := lastPlayed
			g.LastPlayed = &lp
			return nil
		}
	}
	return nil
}

func (r *fakeGameRepo) DeleteByUser(ctx context.Context, userID bson.ObjectID) error {
	kept := r.games[:0]
	for _, g := range r.games {
		if g.UserID != userID {
			kept = append(kept, g)
		}
	}
	r.games = kept
	return nil
}
