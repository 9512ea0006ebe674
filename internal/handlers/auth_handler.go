package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nadiraputri/seruput/internal/data"
	"github.com/nadiraputri/seruput/internal/helpers"
	"github.com/nadiraputri/seruput/internal/middleware"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user from a multipart form so an optional profile
// picture can ride along under the "profile_picture" field.
func Register(c *gin.Context) {
	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	in := data.NewUser{
		FirstName:   c.PostForm("first_name"),
		LastName:    c.PostForm("last_name"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phone_number"),
		Password:    c.PostForm("password"),
		Role:        c.PostForm("role"),
	}
	if in.Role == "" {
		in.Role = "user"
	}

	if fileHeader, err := c.FormFile("profile_picture"); err == nil {
		upload, err := helpers.ReceiveUpload(c, fileHeader)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		in.Upload = upload
	}

	userID, err := repos.Users.Create(c.Request.Context(), in)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user_id": userID,
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	repos := middleware.GetRepositories(c)
	if repos == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Repositories not found.")
		return
	}

	profile, err := repos.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.RespondWithAppError(c, err)
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": profile.UserID,
		"role":    profile.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  profile,
	})
}
