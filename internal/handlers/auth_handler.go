package handlers

import (
	"net/http"

	"gocab/internal/services"
	"gocab/internal/utils"
	"gocab/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthHandler struct {
	sessions services.SessionService
	cache    services.CacheService
}

func NewAuthHandler(sessions services.SessionService, cache services.CacheService) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		cache:    cache,
	}
}

type loginRequest struct {
	Phone string `json:"phone" validate:"required,phone_number"`
}

// Login issues a session for a phone number. The phone-to-user mapping is
// kept in redis so the same phone keeps the same identity across logins.
func (h *AuthHandler) Login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	userID, err := h.userIDForPhone(c, request.Phone)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	tokens, err := h.sessions.IssueTokens(c.Request.Context(), userID, request.Phone)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to issue session")
		return
	}

	utils.SuccessResponse(c, "Logged in", gin.H{
		"user_id": userID.Hex(),
		"tokens":  tokens,
	})
}

// Logout revokes the current access token.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, exists := c.Get("token")
	if !exists {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), token.(string)); err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Logged out", nil)
}

func (h *AuthHandler) userIDForPhone(c *gin.Context, phone string) (primitive.ObjectID, error) {
	key := utils.CacheUserPrefix + "phone:" + phone

	var stored string
	if err := h.cache.Get(c.Request.Context(), key, &stored); err == nil {
		if id, err := primitive.ObjectIDFromHex(stored); err == nil {
			return id, nil
		}
	}

	id := primitive.NewObjectID()
	if err := h.cache.Set(c.Request.Context(), key, id.Hex(), 0); err != nil {
		return primitive.NilObjectID, err
	}

	return id, nil
}
