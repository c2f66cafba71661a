package website

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRouting(t *testing.T) {
	router := &Router{}
	routes := RouteBuilder{Router: router}

	routes.GET(regexp.MustCompile(`^/widgets/(?P<id>[^/]+)$`), func(c *RequestContext) ResponseData {
		var res ResponseData
		res.Write([]byte("widget " + c.PathParams["id"]))
		return res
	})
	routes.POST(regexp.MustCompile(`^/widgets$`), func(c *RequestContext) ResponseData {
		var res ResponseData
		res.StatusCode = http.StatusCreated
		return res
	})
	routes.AnyMethod(regexp.MustCompile("^"), func(c *RequestContext) ResponseData {
		return ResponseData{StatusCode: http.StatusNotFound}
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	t.Run("path params", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/widgets/w123")
		if assert.Nil(t, err) {
			defer res.Body.Close()
			assert.Equal(t, http.StatusOK, res.StatusCode)

			var body bytes.Buffer
			body.ReadFrom(res.Body)
			assert.Equal(t, "widget w123", body.String())
		}
	})

	t.Run("method matters", func(t *testing.T) {
		res, err := http.Post(srv.URL+"/widgets", "application/x-www-form-urlencoded", nil)
		if assert.Nil(t, err) {
			defer res.Body.Close()
			assert.Equal(t, http.StatusCreated, res.StatusCode)
		}

		res, err = http.Get(srv.URL + "/widgets")
		if assert.Nil(t, err) {
			defer res.Body.Close()
			assert.Equal(t, http.StatusNotFound, res.StatusCode)
		}
	})

	t.Run("unknown paths fall through to the catchall", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/nope")
		if assert.Nil(t, err) {
			defer res.Body.Close()
			assert.Equal(t, http.StatusNotFound, res.StatusCode)
		}
	})
}

func TestLogContextErrors(t *testing.T) {
	err1 := errors.New("test error 1")
	err2 := errors.New("test error 2")

	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Print("sanity check")

	assert.Contains(t, buf.String(), "sanity check")

	router := &Router{}
	routes := RouteBuilder{
		Router: router,
		Middlewares: []Middleware{
			func(h Handler) Handler {
				return func(c *RequestContext) ResponseData {
					c.Logger = &logger
					return logContextErrorsMiddleware(h)(c)
				}
			},
		},
	}

	routes.GET(regexp.MustCompile("^/test$"), func(c *RequestContext) ResponseData {
		return c.ErrorResponse(http.StatusInternalServerError, err1, err2)
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	res, err := http.Get(srv.URL + "/test")
	if assert.Nil(t, err) {
		defer res.Body.Close()

		t.Logf("Log contents: %s", buf.String())

		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

		assert.Contains(t, buf.String(), err1.Error())
		assert.Contains(t, buf.String(), err2.Error())
	}
}
