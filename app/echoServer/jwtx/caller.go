// app/echoServer/jwtx/caller.go
package jwtx

import (
	"errors"

	"github.com/labstack/echo/v4"

	"bookreserve/model"
)

// CallerFromContext builds the request's caller from the claims the auth
// middleware stashed on the echo context.
func CallerFromContext(c echo.Context) (model.Caller, error) {
	uid, ok := c.Get("user_id").(int64)
	if !ok || uid == 0 {
		return model.Caller{}, errors.New("no user in context")
	}
	role, _ := c.Get("role").(string)
	return model.Caller{
		UserID:    uid,
		Moderator: role == model.RoleModerator,
	}, nil
}
