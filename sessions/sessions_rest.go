package sessions

import (
	"net/http"
	"teamboard/account"
	"teamboard/bizerror"
	"teamboard/session"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

var PathSessions = "/v1/sessions"

// LoginLimiter throttles login attempts across the process.
var LoginLimiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 20)

func RegisterSessionsHandler(r *gin.Engine) {
	g := r.Group(PathSessions)
	g.POST("", SimpleLoginHandler)
	g.DELETE("", SimpleLogoutHandler)
}

func SimpleLogoutHandler(c *gin.Context) {
	token, _ := c.Cookie(session.KeySecToken) // ErrNoCookie
	if token != "" {
		session.TokenCache.Delete(token)
	}
	c.SetCookie(session.KeySecToken, "", -1, "/", "", false, false)
	c.AbortWithStatus(http.StatusNoContent)
}

func SimpleLoginHandler(c *gin.Context) {
	if !LoginLimiter.Allow() {
		panic(bizerror.ErrTooManyRequests)
	}
	login := session.LoginRequest{}
	if err := c.ShouldBindBodyWith(&login, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	user, err := account.VerifyCredentialFunc(c.Request.Context(), login.Name, login.Password)
	if err != nil {
		panic(err)
	}

	token := uuid.New().String()
	s := session.Session{
		Token:       token,
		Identity:    session.Identity{ID: user.ID, Name: user.Name, Nickname: user.Nickname},
		SigningTime: time.Now(),
	}
	session.TokenCache.Set(token, &s, cache.DefaultExpiration)

	c.SetCookie(session.KeySecToken, token, int(session.TokenExpiration/time.Second), "/", "", false, false)
	c.JSON(http.StatusOK, &s)
}
