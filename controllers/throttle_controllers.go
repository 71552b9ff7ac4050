package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/little-lemon-api/utils"
)

// ThrottleCheck and ThrottleCheckAuth do nothing but sit behind their
// rate limiters, letting clients observe the 429 behaviour.
func ThrottleCheck(c *gin.Context) {
	utils.RespondMessage(c, http.StatusOK, "successful")
}

func ThrottleCheckAuth(c *gin.Context) {
	utils.RespondMessage(c, http.StatusOK, "message for the logged in users only")
}
