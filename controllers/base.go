// file: controllers/base.go
package controllers

import (
	"strconv"

	"vibebuild/middlewares"
	"vibebuild/services"
	"vibebuild/utils"

	"github.com/gin-gonic/gin"
)

// actorResolver 控制器公共部分：把登录态解析成显式 Actor 传给服务层，
// 核心服务不接触任何全局凭证
type actorResolver struct {
	identity *services.IdentityService
}

// currentActor 组装调用主体；失败时已写好响应，调用方直接 return
func (r *actorResolver) currentActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		utils.Error(c, 4001, "未登录")
		return services.Actor{}, false
	}
	actor, err := r.identity.ActorOf(c.Request.Context(), userID)
	if err != nil {
		utils.FromError(c, err)
		return services.Actor{}, false
	}
	return actor, true
}

// pathID 解析路径里的数字 ID
func pathID(c *gin.Context, name string) (uint32, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		utils.Error(c, 1002, "无效的 "+name)
		return 0, false
	}
	return uint32(id), true
}
