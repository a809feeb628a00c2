package controllers

import (
	"errors"
	"net/http"

	"axelmotors/database"
	"axelmotors/models"

	"github.com/gin-gonic/gin"
)

// PutUser creates the user on first sight or merges the profile fields, then
// issues a token for the email in the path.
func (h *Handler) PutUser(context *gin.Context) {
	email := context.Param("email")

	var profile models.Profile
	if !bindOptionalJSON(context, &profile) {
		return
	}

	result, err := h.store.UpsertUser(context.Request.Context(), email, profile)
	if err != nil {
		h.abortWithError(context, err)
		return
	}

	signedToken, err := h.tokens.GenerateToken(email)
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error generating tokens"})
		context.Abort()
		return
	}

	context.JSON(http.StatusOK, UpsertUserResponse{Result: result, Token: signedToken})
}

func (h *Handler) GetUsers(context *gin.Context) {
	users, err := h.store.ListUsers(context.Request.Context())
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, users)
}

func (h *Handler) PutProfile(context *gin.Context) {
	email := context.Query("email")
	if email == "" {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "email query parameter is required"})
		context.Abort()
		return
	}

	var profile models.Profile
	if !bindOptionalJSON(context, &profile) {
		return
	}

	result, err := h.store.UpsertUser(context.Request.Context(), email, profile)
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, result)
}

func (h *Handler) MakeAdmin(context *gin.Context) {
	email := context.Param("email")
	result, err := h.store.SetUserRole(context.Request.Context(), email, models.RoleAdmin)
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, result)
}

// GetAdmin reports whether the user holds the admin role. Unknown users are
// not admins.
func (h *Handler) GetAdmin(context *gin.Context) {
	user, err := h.store.FindUserByEmail(context.Request.Context(), context.Param("email"))
	if errors.Is(err, database.ErrNotFound) {
		context.JSON(http.StatusOK, AdminResponse{Admin: false})
		return
	}
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, AdminResponse{Admin: user.IsAdmin()})
}
