// Package auth implements the dashboard's mock login: any credentials are
// accepted and a fresh session token is issued. The session gate only
// checks the token's presence.
package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type loginReq struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

func login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.User) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": uuid.New().String(),
		"user":  gin.H{"user": req.User, "name": "Admin Luminus"},
	})
}

// Register attaches the auth routes to the given router group.
func Register(rg *gin.RouterGroup) {
	rg.POST("/login", login)
}
