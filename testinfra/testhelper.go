package testinfra

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"teamboard/persistence"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

func ExecuteRequest(req *http.Request, engine *gin.Engine) (int, string, *http.Response) {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	resp := w.Result()
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), resp
}

// BuildSession builds a signed-in session for the given user.
func BuildSession(uid types.ID, name string) *session.Session {
	return &session.Session{
		Context:  context.Background(),
		Token:    "token-" + uid.String(),
		Identity: session.Identity{ID: uid, Name: name},
	}
}

// UseMemoryStore switches the active store to a fresh in-memory store and returns it.
func UseMemoryStore() *persistence.MemoryStore {
	store := persistence.NewMemoryStore()
	persistence.ActiveStore = store
	return store
}

// InjectSession installs a middleware which signs every request in with the session.
func InjectSession(engine *gin.Engine, s *session.Session) {
	engine.Use(func(c *gin.Context) {
		session.InjectSessionIntoGinContext(c, s)
		c.Next()
	})
}
