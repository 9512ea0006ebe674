package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nadiraputri/seruput/internal/data"
	"github.com/nadiraputri/seruput/internal/helpers"
	"github.com/nadiraputri/seruput/internal/middleware"
)

type CreateDrinkRequest struct {
	Name      string `json:"name" binding:"required"`
	Available *bool  `json:"available" binding:"required"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

func ListDrinks(c *gin.Context) {
	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	drinks, err := repos.Drinks.GetAll(c.Request.Context())
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drinks": drinks})
}

func GetDrink(c *gin.Context) {
	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	drink, err := repos.Drinks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, drink)
}

func CreateDrink(c *gin.Context) {
	var req CreateDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	drinkID, err := repos.Drinks.Create(c.Request.Context(), data.NewDrink{
		Name:      req.Name,
		Available: *req.Available,
	})
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Drink created successfully.",
		"drink_id": drinkID,
	})
}

func SetDrinkAvailability(c *gin.Context) {
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	if err := repos.Drinks.SetAvailability(c.Request.Context(), c.Param("id"), *req.Available); err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Drink availability updated."})
}
