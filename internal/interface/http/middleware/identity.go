package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/asfundyarkhan/ticktok-sub001/pkg/errors"
	"github.com/asfundyarkhan/ticktok-sub001/pkg/response"
)

// userIDKey gin context中用户ID的键
const userIDKey = "user_id"

// HeaderUserID 网关注入的用户身份头
// 登录/鉴权在上游网关完成(本服务不做会话管理),
// 网关校验通过后把用户ID放进该请求头
const HeaderUserID = "X-User-ID"

// Identity 身份提取中间件
// 缺少或非法的用户ID直接拒绝,后续handler可安全调用MustGetUserID
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderUserID)
		if raw == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(userIDKey, uint(userID))
		c.Next()
	}
}

// MustGetUserID 获取当前用户ID
// 只能在Identity中间件之后的handler中调用
func MustGetUserID(c *gin.Context) uint {
	userID, exists := c.Get(userIDKey)
	if !exists {
		panic("middleware.Identity未挂载,无法获取用户ID")
	}
	return userID.(uint)
}
