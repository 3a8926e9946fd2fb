package controller

import (
	"errors"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// EnrollRequest 报名请求。category/difficulty 可选，
// 课程目录里有对应条目时以目录快照为准。
// swagger:model EnrollRequest
type EnrollRequest struct {
	CourseSlug string `json:"courseSlug" binding:"required"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// Enroll godoc
// @Summary 报名课程
// @Description 为用户创建一条课程报名记录，初始进度为0
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Param   body body EnrollRequest true "报名信息"
// @Success 201 {object} util.Response{data=model.Enrollment} "报名成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Failure 409 {object} util.Response "重复报名"
// @Router /api/users/{userId}/courses [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.CourseService.Enroll(ctx.Request.Context(), ctx.Param("userId"), req.CourseSlug, req.Category, req.Difficulty)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidUserID):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course not found in catalog")
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Conflict(ctx, "Already enrolled in this course")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, "Course enrolled successfully", enrollment)
}

// GetUserCourses godoc
// @Summary 用户课程列表
// @Description 获取用户的全部报名记录
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Success 200 {object} util.Response{data=[]model.Enrollment} "成功"
// @Router /api/users/{userId}/courses [get]
func (c *CourseController) GetUserCourses(ctx *gin.Context) {
	courses, err := c.CourseService.GetUserCourses(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrInvalidUserID) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Courses retrieved successfully", courses)
}

// GetCourseProgress godoc
// @Summary 单课程进度
// @Description 获取用户某门课的报名进度，附带目录条目（可能为空）
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Param   courseSlug path string true "课程slug"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "报名记录不存在"
// @Router /api/users/{userId}/courses/{courseSlug} [get]
func (c *CourseController) GetCourseProgress(ctx *gin.Context) {
	enrollment, course, err := c.CourseService.GetUserCourseProgress(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("courseSlug"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidUserID):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFound(ctx, "Course enrollment not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Progress retrieved successfully", gin.H{"enrollment": enrollment, "course": course})
}

// ProgressUpdateRequest 进度更新请求。completed 缺省时保持原值。
// swagger:model ProgressUpdateRequest
type ProgressUpdateRequest struct {
	Progress  *int  `json:"progress" binding:"required,gte=0,lte=100"`
	Completed *bool `json:"completed"`
}

// UpdateCourseProgress godoc
// @Summary 更新课程进度
// @Description 直接设置用户某门课的进度百分比
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Param   courseSlug path string true "课程slug"
// @Param   body body ProgressUpdateRequest true "进度"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 400 {object} util.Response "进度超出范围"
// @Failure 404 {object} util.Response "报名记录不存在"
// @Router /api/users/{userId}/courses/{courseSlug}/progress [patch]
func (c *CourseController) UpdateCourseProgress(ctx *gin.Context) {
	var req ProgressUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.CourseService.UpdateProgress(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("courseSlug"), *req.Progress, req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidUserID), errors.Is(err, util.ErrProgressRange):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFound(ctx, "Course enrollment not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Progress updated successfully", enrollment)
}
