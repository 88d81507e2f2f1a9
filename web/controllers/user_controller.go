package controllers

import (
	"net/http"
	"time"

	"github.com/kataras/iris/v12"
	irissessions "github.com/kataras/iris/v12/sessions"

	"github.com/example/ministore/internal/datamodels/user"
	"github.com/example/ministore/internal/service"
	"github.com/example/ministore/internal/session"
)

// UserController handles the storefront's form-style login and logout.
// JSON clients use /api/login instead; both paths share the same session.
type UserController struct {
	userService *service.UserService
	sessions    *session.Manager
}

func NewUserController(userSvc *service.UserService, mgr *session.Manager) *UserController {
	return &UserController{userService: userSvc, sessions: mgr}
}

// PostLogin handles the login form, binds the identity to the cookie
// session and redirects back to the front page.
func (c *UserController) PostLogin(ctx iris.Context) {
	username := ctx.FormValue("username")
	password := ctx.FormValue("password")

	if username == "" || password == "" {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.ContentType("text/html; charset=utf-8")
		_, _ = ctx.WriteString("<h2>Username and password are required.</h2>")
		return
	}

	id, err := c.userService.Authenticate(ctx.Request().Context(), username, password, user.RoleUser)
	if err != nil {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.ContentType("text/html; charset=utf-8")
		_, _ = ctx.WriteString("<h2>Login failed: " + err.Error() + "</h2>")
		return
	}

	s := c.sessions.Get(irissessions.Get(ctx).ID())
	s.SetUser(id)
	s.ClearCart()

	ctx.SetCookie(&http.Cookie{
		Name:  "username",
		Value: id.Username,
		Path:  "/",
	})
	ctx.Redirect("/", iris.StatusFound)
}

// Logout drops the session, cart included, and clears the cookie.
func (c *UserController) Logout(ctx iris.Context) {
	sess := irissessions.Get(ctx)
	c.sessions.Drop(sess.ID())
	sess.Destroy()

	ctx.SetCookie(&http.Cookie{
		Name:    "username",
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	})
	ctx.Redirect("/", iris.StatusFound)
}
