package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nadiraputri/seruput/internal/data"
	"github.com/nadiraputri/seruput/internal/helpers"
	"github.com/nadiraputri/seruput/internal/middleware"
	"github.com/nadiraputri/seruput/internal/models"
)

type UpdateProfileRequest struct {
	FirstName              string                 `json:"first_name" binding:"required"`
	LastName               string                 `json:"last_name" binding:"required"`
	Email                  string                 `json:"email" binding:"required,email"`
	PhoneNumber            string                 `json:"phone_number" binding:"required"`
	Password               string                 `json:"password" binding:"required"`
	ReviewIDs              []string               `json:"review_ids"`
	ProfilePictureLocation string                 `json:"profile_picture_location"`
	DrinkReserved          []models.ReservedDrink `json:"drink_reserved"`
	Role                   string                 `json:"role" binding:"required"`
}

func GetProfile(c *gin.Context) {
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

	profile, err := repos.Users.GetByID(c.Request.Context(), userID.(string))
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile is a full field replacement keyed by email.
func UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	err := repos.Users.Update(c.Request.Context(), data.UpdateUser{
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Email:                  req.Email,
		PhoneNumber:            req.PhoneNumber,
		Password:               req.Password,
		ReviewIDs:              req.ReviewIDs,
		ProfilePictureLocation: req.ProfilePictureLocation,
		DrinkReserved:          req.DrinkReserved,
		Role:                   req.Role,
	})
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully."})
}

func GetReservations(c *gin.Context) {
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

	reservations, err := repos.Users.GetReservations(c.Request.Context(), userID.(string))
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

func ReserveDrink(c *gin.Context) {
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

	reserved, err := repos.Users.ReserveDrink(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reserved": reserved})
}
