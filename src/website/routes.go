package website

import (
	"net/http"

	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/tpurl"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewWebsiteRoutes(conn *pgxpool.Pool) http.Handler {
	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			setDBConn(conn),
			panicCatcherMiddleware,
			logContextErrorsMiddleware,
			loadCommonData,
		},
	}

	routes.GET(tpurl.RegexHomepage, Homepage)

	routes.POST(tpurl.RegexLogin, Login)
	routes.AnyMethod(tpurl.RegexLogout, Logout)

	routes.GET(tpurl.RegexForumThread, ContentView(models.ContentTypeForumThread))
	routes.GET(tpurl.RegexProject, ContentView(models.ContentTypeProject))
	routes.GET(tpurl.RegexMusicPost, ContentView(models.ContentTypeMusicPost))
	routes.GET(tpurl.RegexTimelineUpdate, ContentView(models.ContentTypeTimelineUpdate))
	routes.GET(tpurl.RegexEvent, ContentView(models.ContentTypeEvent))
	routes.GET(tpurl.RegexDevLog, ContentView(models.ContentTypeDevLog))

	authedRoutes := routes.WithMiddleware(needsAuth, csrfMiddleware)
	authedRoutes.POST(tpurl.RegexUpload, AssetUpload)

	adminRoutes := routes.WithMiddleware(adminsOnly)
	adminFormRoutes := adminRoutes.WithMiddleware(csrfMiddleware)
	adminFormRoutes.POST(tpurl.RegexAdminMove, AdminMove)
	adminRoutes.GET(tpurl.RegexAdminMoveList, AdminMoveList)

	routes.AnyMethod(tpurl.RegexCatchAll, FourOhFour)

	return router
}

func setDBConn(conn *pgxpool.Pool) Middleware {
	return func(h Handler) Handler {
		return func(c *RequestContext) ResponseData {
			c.Conn = conn
			return h(c)
		}
	}
}

func Homepage(c *RequestContext) ResponseData {
	var res ResponseData
	res.WriteJson(map[string]any{
		"name": "Tidepool",
	})
	return res
}
