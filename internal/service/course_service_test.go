package service

import (
	"context"
	"testing"

	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func newCourseService() (*CourseService, *fakeEnrollmentRepo, *fakeProfileRepo, *fakeCatalogRepo) {
	enrollments := newFakeEnrollmentRepo()
	profiles := newFakeProfileRepo()
	catalog := newFakeCatalogRepo()
	return NewCourseService(enrollments, profiles, catalog), enrollments, profiles, catalog
}

func seedCatalogCourse(t *testing.T, catalog *fakeCatalogRepo, slug, category, difficulty string) {
	t.Helper()
	require.NoError(t, catalog.Insert(context.Background(), &model.CatalogCourse{
		Slug:       slug,
		Title:      slug,
		Category:   category,
		Difficulty: difficulty,
	}))
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()

	t.Run("creates enrollment and mirrors profile", func(t *testing.T) {
		svc, _, profiles, catalog := newCourseService()
		seedCatalogCourse(t, catalog, "intro_python", "Programming", model.DifficultyBeginner)

		userID := bson.NewObjectID()
		require.NoError(t, profiles.Insert(ctx, &model.Profile{UserID: userID}))

		enrollment, err := svc.Enroll(ctx, userID.Hex(), "intro_python", "", "")
		require.NoError(t, err)
		assert.Equal(t, 0, enrollment.Progress)
		assert.False(t, enrollment.Completed)
		assert.NotNil(t, enrollment.LastAccessed)
		assert.Equal(t, "Programming", enrollment.Category)
		assert.Equal(t, model.DifficultyBeginner, enrollment.Difficulty)

		profile, err := profiles.FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Contains(t, profile.RegisteredCourses, "intro_python")
	})

	t.Run("rejects unknown course", func(t *testing.T) {
		svc, _, _, _ := newCourseService()
		_, err := svc.Enroll(ctx, bson.NewObjectID().Hex(), "no_such_course", "", "")
		assert.ErrorIs(t, err, util.ErrCourseNotFound)
	})

	t.Run("rejects duplicate enrollment", func(t *testing.T) {
		svc, _, profiles, catalog := newCourseService()
		seedCatalogCourse(t, catalog, "basic_math", "Mathematics", model.DifficultyBeginner)

		userID := bson.NewObjectID()
		require.NoError(t, profiles.Insert(ctx, &model.Profile{UserID: userID}))

		_, err := svc.Enroll(ctx, userID.Hex(), "basic_math", "", "")
		require.NoError(t, err)

		_, err = svc.Enroll(ctx, userID.Hex(), "basic_math", "", "")
		assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
	})

	t.Run("rejects malformed user id", func(t *testing.T) {
		svc, _, _, catalog := newCourseService()
		seedCatalogCourse(t, catalog, "basic_math", "Mathematics", model.DifficultyBeginner)

		_, err := svc.Enroll(ctx, "not-an-object-id", "basic_math", "", "")
		assert.ErrorIs(t, err, util.ErrInvalidUserID)
	})
}

func TestGetUserCourseProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("missing enrollment", func(t *testing.T) {
		svc, _, _, _ := newCourseService()
		_, _, err := svc.GetUserCourseProgress(ctx, bson.NewObjectID().Hex(), "intro_python")
		assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
	})

	t.Run("catalog entry may be gone", func(t *testing.T) {
		svc, enrollments, _, _ := newCourseService()
		userID := bson.NewObjectID()
		require.NoError(t, enrollments.Insert(ctx, &model.Enrollment{
			UserID:     userID,
			CourseSlug: "retired_course",
			Progress:   40,
		}))

		enrollment, course, err := svc.GetUserCourseProgress(ctx, userID.Hex(), "retired_course")
		require.NoError(t, err)
		assert.Equal(t, 40, enrollment.Progress)
		assert.Nil(t, course)
	})
}

func TestUpdateProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("sets progress and touches last accessed", func(t *testing.T) {
		svc, enrollments, _, _ := newCourseService()
		userID := bson.NewObjectID()
		require.NoError(t, enrollments.Insert(ctx, &model.Enrollment{
			UserID:     userID,
			CourseSlug: "intro_python",
		}))

		enrollment, err := svc.UpdateProgress(ctx, userID.Hex(), "intro_python", 55, nil)
		require.NoError(t, err)
		assert.Equal(t, 55, enrollment.Progress)
		assert.False(t, enrollment.Completed)
		assert.NotNil(t, enrollment.LastAccessed)

		stored, err := enrollments.FindByUserAndSlug(ctx, userID, "intro_python")
		require.NoError(t, err)
		assert.Equal(t, 55, stored.Progress)
	})

	t.Run("nil completed keeps stored flag", func(t *testing.T) {
		svc, enrollments, _, _ := newCourseService()
		userID := bson.NewObjectID()
		require.NoError(t, enrollments.Insert(ctx, &model.Enrollment{
			UserID:     userID,
			CourseSlug: "intro_python",
			Completed:  true,
			Progress:   100,
		}))

		enrollment, err := svc.UpdateProgress(ctx, userID.Hex(), "intro_python", 80, nil)
		require.NoError(t, err)
		assert.True(t, enrollment.Completed)
	})

	t.Run("explicit completed wins", func(t *testing.T) {
		svc, enrollments, _, _ := newCourseService()
		userID := bson.NewObjectID()
		require.NoError(t, enrollments.Insert(ctx, &model.Enrollment{
			UserID:     userID,
			CourseSlug: "intro_python",
		}))

		completed := true
		enrollment, err := svc.UpdateProgress(ctx, userID.Hex(), "intro_python", 50, &completed)
		require.NoError(t, err)
		assert.True(t, enrollment.Completed)
		assert.Equal(t, 50, enrollment.Progress)
	})

	t.Run("rejects out of range progress", func(t *testing.T) {
		svc, _, _, _ := newCourseService()
		_, err := svc.UpdateProgress(ctx, bson.NewObjectID().Hex(), "intro_python", 101, nil)
		assert.ErrorIs(t, err, util.ErrProgressRange)

		_, err = svc.UpdateProgress(ctx, bson.NewObjectID().Hex(), "intro_python", -1, nil)
		assert.ErrorIs(t, err, util.ErrProgressRange)
	})

	t.Run("missing enrollment", func(t *testing.T) {
		svc, _, _, _ := newCourseService()
		_, err := svc.UpdateProgress(ctx, bson.NewObjectID().Hex(), "intro_python", 10, nil)
		assert.ErrorIs(t, err, util.ErrEnrollmentNotFound)
	})
}
