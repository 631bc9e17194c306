package router

import "github.com/gin-gonic/gin"

// Module is a feature's route bundle. Each module hangs its endpoints off
// the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
