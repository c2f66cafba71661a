package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"time"

	"git.tidepool.community/tidepool/tidepool/src/config"
	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/jobs"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/utils"
	"github.com/jpillora/backoff"
)

const SessionCookieName = "TidepoolSession"
const CSRFFieldName = "csrf_token"

const sessionDuration = time.Hour * 24 * 14

func makeOpaqueToken(length int) string {
	tokenBytes := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, tokenBytes); err != nil {
		panic(oops.New(err, "failed to generate token"))
	}
	return base64.URLEncoding.EncodeToString(tokenBytes)[:length]
}

var ErrNoSession = errors.New("no session found")

func GetSession(ctx context.Context, conn db.ConnOrTx, id string) (*models.Session, error) {
	sess, err := db.QueryOne[models.Session](ctx, conn,
		`
		SELECT $columns
		FROM session
		WHERE id = $1 AND expires_at > CURRENT_TIMESTAMP
		`,
		id,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, ErrNoSession
		}
		return nil, oops.New(err, "failed to get session")
	}

	return sess, nil
}

func CreateSession(ctx context.Context, conn db.ConnOrTx, userID int) (*models.Session, error) {
	session := models.Session{
		ID:        makeOpaqueToken(40),
		UserID:    userID,
		CSRFToken: makeOpaqueToken(30),
		ExpiresAt: time.Now().Add(sessionDuration),
	}

	_, err := conn.Exec(ctx,
		`
		INSERT INTO session (id, user_id, csrf_token, expires_at)
		VALUES ($1, $2, $3, $4)
		`,
		session.ID, session.UserID, session.CSRFToken, session.ExpiresAt,
	)
	if err != nil {
		return nil, oops.New(err, "failed to persist session")
	}

	return &session, nil
}

// Deletes a session by id. If no session with that id exists, no error is
// returned.
func DeleteSession(ctx context.Context, conn db.ConnOrTx, id string) error {
	_, err := conn.Exec(ctx, "DELETE FROM session WHERE id = $1", id)
	if err != nil {
		return oops.New(err, "failed to delete session")
	}

	return nil
}

func NewSessionCookie(session *models.Session) *http.Cookie {
	return &http.Cookie{
		Name:  SessionCookieName,
		Value: session.ID,

		Domain:  config.Config.Auth.CookieDomain,
		Path:    "/",
		Expires: session.ExpiresAt,

		Secure:   config.Config.Auth.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

var DeleteSessionCookie = &http.Cookie{
	Name:   SessionCookieName,
	Domain: config.Config.Auth.CookieDomain,
	Path:   "/",
	MaxAge: -1,
}

func DeleteExpiredSessions(ctx context.Context, conn db.ConnOrTx) (int64, error) {
	tag, err := conn.Exec(ctx, "DELETE FROM session WHERE expires_at <= CURRENT_TIMESTAMP")
	if err != nil {
		return 0, oops.New(err, "failed to delete expired sessions")
	}

	return tag.RowsAffected(), nil
}

func PeriodicallyDeleteExpiredSessions(conn db.ConnOrTx) *jobs.Job {
	job := jobs.New("delete expired sessions")
	go func() {
		defer job.Finish()

		boff := backoff.Backoff{
			Min: 1 * time.Minute,
			Max: 30 * time.Minute,
		}

		for {
			n, err := DeleteExpiredSessions(job.Ctx, conn)
			if err == nil {
				boff.Reset()
				if n > 0 {
					job.Logger.Info().Int64("deleted", n).Msg("Deleted expired sessions")
				}
			} else {
				job.Logger.Error().Err(err).Msg("failed to delete expired sessions")
			}

			if err := utils.SleepContext(job.Ctx, boff.Duration()); err != nil {
				return
			}
		}
	}()
	return job
}
