// controllers/auth.go
package controllers

import (
	"net/http"

	"tilecrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// The site has a single shared password, so every session has this subject.
const siteUser = "site"

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	issuer       *utils.TokenIssuer
	passwordHash string
	secureCookie bool
}

func NewAuthController(issuer *utils.TokenIssuer, passwordHash string, secureCookie bool) *AuthController {
	return &AuthController{issuer: issuer, passwordHash: passwordHash, secureCookie: secureCookie}
}

// Login exchanges the site password for a session token.
func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if a.passwordHash == "" || !utils.CheckPasswordHash(input.Password, a.passwordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := a.issuer.GenerateToken(siteUser)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate token")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookie, token, int(a.issuer.TTL().Seconds()), "/", "", a.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (a *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookie, "", -1, "/", "", a.secureCookie, true)
	c.Status(http.StatusNoContent)
}

func (a *AuthController) Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "authenticated": true})
}
