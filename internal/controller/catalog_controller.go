package controller

import (
	"errors"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type CatalogController struct {
	CatalogService *service.CatalogService
	StorageService *service.StorageService
}

func NewCatalogController(catalogService *service.CatalogService, storageService *service.StorageService) *CatalogController {
	return &CatalogController{
		CatalogService: catalogService,
		StorageService: storageService,
	}
}

// ListCourses godoc
// @Summary 课程目录
// @Description 按类别、难度、关键字筛选课程，无筛选时走缓存
// @Tags 课程目录
// @Produce  json
// @Param   category query string false "类别"
// @Param   difficulty query string false "难度"
// @Param   search query string false "标题/描述/标签模糊匹配"
// @Success 200 {object} util.Response{data=[]model.CatalogCourse} "成功"
// @Router /api/courses/catalog [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.CatalogService.ListCourses(
		ctx.Request.Context(),
		ctx.Query("category"),
		ctx.Query("difficulty"),
		ctx.Query("search"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, "Courses retrieved successfully", courses)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程目录
// @Produce  json
// @Param   slug path string true "课程slug"
// @Success 200 {object} util.Response{data=model.CatalogCourse} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/catalog/{slug} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	course, err := c.CatalogService.GetCourse(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Course retrieved successfully", course)
}

// CourseCreateRequest 新建课程请求
// swagger:model CourseCreateRequest
type CourseCreateRequest struct {
	Slug          string   `json:"slug" binding:"required"`
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"required"`
	Difficulty    string   `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
	Duration      int      `json:"duration"`
	TotalQuizzes  int      `json:"totalQuizzes"`
	TotalLessons  int      `json:"totalLessons"`
	Instructor    string   `json:"instructor"`
	Prerequisites []string `json:"prerequisites"`
	Tags          []string `json:"tags"`
}

// CreateCourse godoc
// @Summary 新建课程
// @Description 创建课程目录条目（仅 Instructor）
// @Tags 课程目录
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CourseCreateRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.CatalogCourse} "创建成功"
// @Failure 409 {object} util.Response "slug已存在"
// @Router /api/courses/catalog [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.CatalogCourse{
		Slug:          req.Slug,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		Duration:      req.Duration,
		TotalQuizzes:  req.TotalQuizzes,
		TotalLessons:  req.TotalLessons,
		Instructor:    req.Instructor,
		Prerequisites: req.Prerequisites,
		Tags:          req.Tags,
	}

	if err := c.CatalogService.CreateCourse(ctx.Request.Context(), course); err != nil {
		if errors.Is(err, util.ErrSlugExists) {
			util.Conflict(ctx, "Course with this slug already exists")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, "Course created successfully", course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Description 更新课程目录条目，slug 不可修改，原样回传当前 slug 视为未变更（仅 Instructor）
// @Tags 课程目录
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "课程slug"
// @Param   body body object true "要更新的字段"
// @Success 200 {object} util.Response{data=model.CatalogCourse} "成功"
// @Failure 400 {object} util.Response "尝试修改slug或无更新字段"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/catalog/{slug} [put]
func (c *CatalogController) UpdateCourse(ctx *gin.Context) {
	var fields map[string]interface{}
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	update := bson.M{}
	for k, v := range fields {
		update[k] = v
	}

	course, err := c.CatalogService.UpdateCourse(ctx.Request.Context(), ctx.Param("slug"), update)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSlugImmutable), errors.Is(err, util.ErrNoUpdateFields):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Course updated successfully", course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 删除课程并级联清理所有报名与画像引用（仅 Instructor）
// @Tags 课程目录
// @Security ApiKeyAuth
// @Param   slug path string true "课程slug"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/catalog/{slug} [delete]
func (c *CatalogController) DeleteCourse(ctx *gin.Context) {
	if err := c.CatalogService.DeleteCourse(ctx.Request.Context(), ctx.Param("slug")); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.NoContent(ctx)
}

// Stats godoc
// @Summary 目录统计
// @Description 课程总数、报名总数、去重用户数、热门课程和分布
// @Tags 课程目录
// @Produce  json
// @Success 200 {object} util.Response{data=model.CatalogStats} "成功"
// @Router /api/courses/catalog/stats [get]
func (c *CatalogController) Stats(ctx *gin.Context) {
	stats, err := c.CatalogService.Stats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, "Stats retrieved successfully", stats)
}

// GetCourseEnrollments godoc
// @Summary 课程报名明细
// @Description 单门课的报名总数和最近报名用户（仅 Instructor）
// @Tags 课程目录
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "课程slug"
// @Param   limit query int false "最近报名条数，默认10"
// @Success 200 {object} util.Response{data=service.CourseEnrollments} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{slug}/enrollments [get]
func (c *CatalogController) GetCourseEnrollments(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	enrollments, err := c.CatalogService.GetCourseEnrollments(ctx.Request.Context(), ctx.Param("slug"), limit)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Enrollments retrieved successfully", enrollments)
}

// UploadThumbnail godoc
// @Summary 上传课程缩略图
// @Description 上传缩略图到对象存储并回写课程条目（仅 Instructor）
// @Tags 课程目录
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   slug path string true "课程slug"
// @Param   file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/catalog/{slug}/thumbnail [post]
func (c *CatalogController) UploadThumbnail(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	slug := ctx.Param("slug")
	filename := "thumbnails/" + slug + "_" + strconv.FormatInt(time.Now().Unix(), 10) + filepath.Ext(file.Filename)
	contentType := file.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.CatalogService.SetThumbnail(ctx.Request.Context(), slug, url); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Thumbnail uploaded successfully", gin.H{"thumbnail": url})
}
