package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/nadiraputri/seruput/internal/data"
)

// RepositoryMiddleware injects the repository bundle into the request context
// so handlers share one explicitly constructed handle.
func RepositoryMiddleware(repos *data.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("repos", repos)
		c.Next()
	}
}

func GetRepositories(c *gin.Context) *data.Repositories {
	repos, exists := c.Get("repos")
	if !exists {
		return nil
	}
	return repos.(*data.Repositories)
}
