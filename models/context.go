package models

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	e "github.com/microcosm-cc/registry/errors"
)

// SessionCookie is the cookie holding the session id
const SessionCookie string = "sid"

type Context struct {
	Request        *http.Request
	ResponseWriter http.ResponseWriter
	Auth           AuthType
	RouteVars      map[string]string
	StartTime      time.Time
	IP             net.IP
	RequestID      string
}

// AuthType is who is making the request. User is nil for anonymous requests.
type AuthType struct {
	User      *UserType
	SessionID string
	Method    string
}

type StandardResponse struct {
	Status int         `json:"status"`
	Data   interface{} `json:"data"`
	Errors []string    `json:"error"`
}

// MakeContext builds the request context and resolves the viewer from the
// session cache. A session id sent in the Authorization header must be valid.
// A stale cookie is treated as anonymous, as a logout on another device drops
// the shared session.
func MakeContext(
	request *http.Request,
	responseWriter http.ResponseWriter,
	sessions *Sessions,
) (
	*Context,
	int,
	error,
) {

	var c *Context = new(Context)
	c.Request = request
	c.ResponseWriter = responseWriter
	c.RouteVars = mux.Vars(request)
	c.StartTime = time.Now()
	c.IP = GetRequestIP(request)
	c.RequestID = uuid.NewString()

	if sessions == nil {
		return c, http.StatusOK, nil
	}

	status, err := c.authenticate(sessions)
	if err != nil {
		return c, status, err
	}

	return c, http.StatusOK, nil
}

func GetRequestIP(request *http.Request) net.IP {
	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return net.ParseIP(host)
}

func (c *Context) authenticate(sessions *Sessions) (int, error) {

	// Expected header is: "Authorization: Bearer sid"
	if atHeader := c.Request.Header.Get("Authorization"); atHeader != "" {
		authParts := strings.Split(strings.Trim(atHeader, " "), " ")

		if len(authParts) != 2 || authParts[0] != "Bearer" {
			glog.Warningf(`Authorization must be 'Bearer sid': %s`, atHeader)
			return http.StatusUnauthorized, e.New(
				"context.authenticate",
				e.InvalidSession,
				"Authorization header must be in the format 'Bearer sid'",
			)
		}

		user, status, err := sessions.GetSession(authParts[1])
		if err != nil {
			return status, err
		}

		c.Auth = AuthType{User: &user, SessionID: authParts[1], Method: "header"}
		return http.StatusOK, nil
	}

	cookie, err := c.Request.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return http.StatusOK, nil
	}

	user, status, err := sessions.GetSession(cookie.Value)
	if err != nil {
		if status == http.StatusInternalServerError {
			return status, err
		}
		if glog.V(2) {
			glog.Infof("%s: stale session cookie %s", c.RequestID, cookie.Value)
		}
		return http.StatusOK, nil
	}

	c.Auth = AuthType{User: &user, SessionID: cookie.Value, Method: "cookie"}
	return http.StatusOK, nil
}

func (c *Context) GetHTTPMethod() string {
	m := c.Request.Method

	if m == "POST" {
		if c.Request.Header.Get("X-HTTP-Method-Override") != "" {
			m = strings.ToUpper(c.Request.Header.Get("X-HTTP-Method-Override"))
		}
		if c.Request.URL.Query().Get("method") != "" {
			m = strings.ToUpper(c.Request.URL.Query().Get("method"))
		}

		switch m {
		case "DELETE":
		case "GET":
		case "HEAD":
		case "OPTIONS":
		case "POST":
		default:
			// If it wasn't one of the above then let's just use what we know
			// is safe
			return c.Request.Method
		}
	}

	return m
}

func (c *Context) Respond(
	data interface{},
	statusCode int,
	errors []string,
) error {

	// make the standard response object
	obj := StandardResponse{
		Status: statusCode,
		Data:   data,
		Errors: errors,
	}

	// Prevent content type detection, a.k.a. sniffing
	c.ResponseWriter.Header().Set("Content-Type", "application/json")
	c.ResponseWriter.Header().Set("X-Content-Type-Options", "nosniff")

	// Cache headers
	if c.Auth.User == nil &&
		statusCode == http.StatusOK &&
		c.GetHTTPMethod() == "GET" {
		// Public, cache for a short while
		c.ResponseWriter.Header().Set(`Cache-Control`, `public, max-age=300`)
		c.ResponseWriter.Header().Set(`Vary`, `Authorization, Cookie`)
	} else {
		// Potentially private, do not cache
		c.ResponseWriter.Header().Set(`Cache-Control`, `no-cache, max-age=0`)
		c.ResponseWriter.Header().Set(`Vary`, `Authorization, Cookie`)
	}

	output, err := json.Marshal(obj)
	if err != nil {
		glog.Errorf("%s: json.Marshal(obj) %+v", c.RequestID, err)
		http.Error(c.ResponseWriter, err.Error(), http.StatusInternalServerError)
		return err
	}

	// Prevent chunking
	c.ResponseWriter.Header().Set("Content-Length", strconv.Itoa(len(output)))

	if glog.V(2) {
		glog.Infof(
			"%s: %s %s %d %s",
			c.RequestID,
			c.GetHTTPMethod(),
			c.Request.URL.Path,
			statusCode,
			time.Since(c.StartTime),
		)
	}

	return c.WriteResponse(output, statusCode)
}

// WriteResponse ultimately does the job of writing the response
func (c *Context) WriteResponse(output []byte, statusCode int) error {

	c.ResponseWriter.WriteHeader(statusCode)

	// HEAD requests return no body and are used to check headers for cache
	// invalidation functions
	if c.GetHTTPMethod() == "HEAD" {
		return nil
	}

	_, err := c.ResponseWriter.Write(output)

	// We only log at error severity when an error is not the result of the
	// client disconnecting. "broken pipe" is a syscall.EPIPE error that
	// indicates client disconnection.
	if err != nil {
		opErr, ok := err.(*net.OpError)
		if !ok || opErr.Err != syscall.EPIPE {
			glog.Errorf(
				"Error writing %s response to %s : %+v\n",
				c.GetHTTPMethod(),
				c.Request.URL.String(),
				err,
			)
			return err
		}

		// Broken pipe, which is expected, but we log as warning in case
		// multiple clients do this at once and it hints at network issues
		glog.Warningf(
			"Error writing %s response to %s : %+v\n",
			c.GetHTTPMethod(),
			c.Request.URL.String(),
			err,
		)
		return err
	}

	return nil
}

func (c *Context) RespondWithOptions(options []string) error {
	c.ResponseWriter.Header().Set("Allow", strings.Join(options, ","))
	c.ResponseWriter.Header().Set("Content-Length", "0")
	c.ResponseWriter.WriteHeader(http.StatusOK)
	return nil
}

// RespondWithStatus responds with custom status code and an empty
// StandardResponse struct
func (c *Context) RespondWithStatus(statusCode int) error {
	return c.Respond(nil, statusCode, nil)
}

// RespondWithError responds with the status description in the errors list
func (c *Context) RespondWithError(statusCode int) error {
	return c.RespondWithErrorMessage(http.StatusText(statusCode), statusCode)
}

// RespondWithErrorMessage responds with custom code and an error message
func (c *Context) RespondWithErrorMessage(
	message string,
	statusCode int,
) error {

	return c.Respond(nil, statusCode, []string{message})
}

// RespondWithErrorDetail responds with detailed error code and message in the
// "data" object.
func (c *Context) RespondWithErrorDetail(err error, statusCode int) error {
	return c.Respond(err, statusCode, []string{err.Error()})
}

// RespondWithData responds with the specified data
func (c *Context) RespondWithData(data interface{}) error {
	return c.Respond(data, http.StatusOK, nil)
}

// RespondWithOK responds with OK status (200) and no data
func (c *Context) RespondWithOK() error {
	return c.RespondWithData(nil)
}

// RespondWithSeeOther responds with 302 Found
func (c *Context) RespondWithSeeOther(location string) error {
	c.ResponseWriter.Header().Set("Location", location)
	return c.RespondWithStatus(http.StatusFound)
}

// RespondWithNotFound responds with 404 Not Found
func (c *Context) RespondWithNotFound() error {
	return c.RespondWithError(http.StatusNotFound)
}
