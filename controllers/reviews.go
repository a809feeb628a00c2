package controllers

import (
	"net/http"

	"axelmotors/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateReview(context *gin.Context) {
	var payload ReviewPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Does not bind schema"})
		context.Abort()
		return
	}

	review := &models.Review{
		Email:   payload.Email,
		Name:    payload.Name,
		Rating:  payload.Rating,
		Comment: payload.Comment,
	}
	if review.Email == "" {
		review.Email = CallerEmail(context)
	}

	if err := h.store.CreateReview(context.Request.Context(), review); err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusCreated, review)
}

func (h *Handler) GetReviews(context *gin.Context) {
	reviews, err := h.store.ListReviews(context.Request.Context())
	if err != nil {
		h.abortWithError(context, err)
		return
	}
	context.JSON(http.StatusOK, reviews)
}
