package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nadiraputri/seruput/internal/data"
	"github.com/nadiraputri/seruput/internal/helpers"
	"github.com/nadiraputri/seruput/internal/middleware"
)

type UpdateReviewRequest struct {
	TimeStamp             string `json:"time_stamp" binding:"required"`
	DrinkID               string `json:"drink_id" binding:"required"`
	ReviewText            string `json:"review_text" binding:"required"`
	Rating                int    `json:"rating" binding:"required"`
	ReviewPictureLocation string `json:"review_picture_location"`
}

// CreateReview inserts the review, then performs the reviewIds follow-up.
// The repository's Create deliberately leaves that append to its caller.
func CreateReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	in := data.NewReview{
		DrinkID:    c.PostForm("drink_id"),
		UserID:     userID.(string),
		ReviewText: c.PostForm("review_text"),
	}
	rating, err := helpers.StringToInt(c.PostForm("rating"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid rating format.")
		return
	}
	in.Rating = rating

	if fileHeader, err := c.FormFile("review_picture"); err == nil {
		upload, err := helpers.ReceiveUpload(c, fileHeader)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		location, err := repos.Pictures.SaveUpload(*upload)
		if err != nil {
			helpers.RespondWithAppError(c, err)
			return
		}
		in.ReviewPictureLocation = location
	}

	reviewID, err := repos.Reviews.Create(c.Request.Context(), in)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}

	if err := repos.Users.AddReview(c.Request.Context(), reviewID, userID.(string)); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Review created successfully.",
		"review_id": reviewID,
	})
}

func UpdateReview(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	err := repos.Reviews.Update(c.Request.Context(), data.UpdateReview{
		ReviewID:              c.Param("id"),
		TimeStamp:             req.TimeStamp,
		DrinkID:               req.DrinkID,
		UserID:                userID.(string),
		ReviewText:            req.ReviewText,
		Rating:                req.Rating,
		ReviewPictureLocation: req.ReviewPictureLocation,
	})
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully."})
}

func DeleteReview(c *gin.Context) {
	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	if err := repos.Reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully."})
}

func GetReview(c *gin.Context) {
	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	review, err := repos.Reviews.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
