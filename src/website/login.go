package website

import (
	"errors"
	"net/http"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/auth"
	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/logging"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/tpdata"
)

func Login(c *RequestContext) ResponseData {
	if c.CurrentUser != nil {
		return c.RejectRequest("already_logged_in", "You are already logged in.")
	}

	form, err := c.GetFormValues()
	if err != nil {
		return c.RejectRequest("bad_form", "request must contain form data")
	}

	username := form.Get("username")
	password := form.Get("password")
	if username == "" || password == "" {
		return c.RejectRequest("missing_credentials", "You must provide both a username and password")
	}

	redirect := form.Get("redirect")
	if redirect == "" {
		redirect = "/"
	}

	user, err := tpdata.FetchUserByUsername(c, c.Conn, username)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return c.ErrorResponse(http.StatusUnauthorized)
		} else {
			return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to look up user by username"))
		}
	}

	success, err := tryLogin(c, user, password)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}
	if !success {
		return c.ErrorResponse(http.StatusUnauthorized)
	}

	res := c.Redirect(redirect, http.StatusSeeOther)
	err = loginUser(c, user, &res)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, err)
	}
	return res
}

func Logout(c *RequestContext) ResponseData {
	redir := c.Req.URL.Query().Get("redirect")
	if redir == "" {
		redir = "/"
	}

	res := c.Redirect(redir, http.StatusSeeOther)
	logoutUser(c, &res)

	return res
}

func tryLogin(c *RequestContext, user *models.User, password string) (bool, error) {
	hashed, err := auth.ParsePasswordString(user.Password)
	if err != nil {
		return false, oops.New(err, "failed to parse password string")
	}

	passwordsMatch, err := auth.CheckPassword(password, hashed)
	if err != nil {
		return false, oops.New(err, "failed to check password against hash")
	}

	return passwordsMatch, nil
}

func loginUser(c *RequestContext, user *models.User, responseData *ResponseData) error {
	_, err := c.Conn.Exec(c,
		`
		UPDATE tp_user
		SET last_login = $1
		WHERE id = $2
		`,
		time.Now(),
		user.ID,
	)
	if err != nil {
		return oops.New(err, "failed to update last_login for user")
	}

	session, err := auth.CreateSession(c, c.Conn, user.ID)
	if err != nil {
		return oops.New(err, "failed to create session")
	}

	responseData.SetCookie(auth.NewSessionCookie(session))
	return nil
}

func logoutUser(c *RequestContext, res *ResponseData) {
	sessionCookie, err := c.Req.Cookie(auth.SessionCookieName)
	if err == nil {
		// clear the session from the db immediately, no expiration
		err := auth.DeleteSession(c, c.Conn, sessionCookie.Value)
		if err != nil {
			logging.Error().Err(err).Msg("failed to delete session on logout")
		}
	}

	res.SetCookie(auth.DeleteSessionCookie)
}
