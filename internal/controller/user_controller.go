package controller

import (
	"errors"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetAllUsers godoc
// @Summary 用户列表
// @Description 获取全部用户（仅 Instructor）
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Router /api/users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	users, err := c.UserService.GetAllUsers(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, "Users retrieved successfully", users)
}

// GetUser godoc
// @Summary 用户详情
// @Description 获取单个用户及其画像
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "用户ID格式错误"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{userId} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, profile, err := c.UserService.GetUser(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}
	util.Success(ctx, "User retrieved successfully", gin.H{"user": user, "profile": profile})
}

// UserUpdateRequest 全量更新请求（PUT）
// swagger:model UserUpdateRequest
type UserUpdateRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=User Student Instructor"`
	IsActive  bool   `json:"isActive"`
}

// UpdateUser godoc
// @Summary 更新用户
// @Description 全量更新用户信息
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Param   body body UserUpdateRequest true "用户信息"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{userId} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req UserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(ctx.Request.Context(), ctx.Param("userId"), service.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.UserRole(req.Role),
		IsActive:  req.IsActive,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}
	util.Success(ctx, "User updated successfully", user)
}

// UserPatchRequest 局部更新请求（PATCH），缺省字段不改动
// swagger:model UserPatchRequest
type UserPatchRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role" binding:"omitempty,oneof=User Student Instructor"`
	IsActive  *bool   `json:"isActive"`
}

// PatchUser godoc
// @Summary 局部更新用户
// @Description 只更新请求里出现的字段
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Param   body body UserPatchRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "没有可更新字段"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{userId} [patch]
func (c *UserController) PatchUser(ctx *gin.Context) {
	var req UserPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	patch := service.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
	}
	if req.Role != nil {
		role := model.UserRole(*req.Role)
		patch.Role = &role
	}

	user, err := c.UserService.PatchUser(ctx.Request.Context(), ctx.Param("userId"), patch)
	if err != nil {
		if errors.Is(err, util.ErrNoUpdateFields) {
			util.BadRequest(ctx, err.Error())
			return
		}
		c.handleUserError(ctx, err)
		return
	}
	util.Success(ctx, "User updated successfully", user)
}

// DeleteUser godoc
// @Summary 删除用户
// @Description 删除用户并级联清理画像、报名、答题和游戏数据
// @Tags 用户
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{userId} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	if err := c.UserService.DeleteUser(ctx.Request.Context(), ctx.Param("userId")); err != nil {
		c.handleUserError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

func (c *UserController) handleUserError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidUserID):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "User not found")
	default:
		util.LogInternalError(ctx, err)
	}
}
