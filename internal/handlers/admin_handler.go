package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nadiraputri/seruput/internal/helpers"
	"github.com/nadiraputri/seruput/internal/middleware"
)

func ListUsers(c *gin.Context) {
	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	users, err := repos.Users.GetAll(c.Request.Context())
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Reconcile runs the consistency pass over the three collections and reports
// what it repaired.
func Reconcile(c *gin.Context) {
	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	report, err := repos.Reconciler.Run(c.Request.Context())
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
