// Package server serves conversions over HTTP and websockets.
package server

import (
	"encoding/base64"
	"errors"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/tmpim/retrolcd"
	"github.com/tmpim/retrolcd/host"
)

// MaxUploadSize bounds request bodies and websocket image frames.
const MaxUploadSize = 16 << 20

var upgrader = websocket.Upgrader{
	HandshakeTimeout: 5 * time.Second,
}

// Server converts uploaded images.
type Server struct {
	conv   *retrolcd.Converter
	logger *log.Logger
	echo   *echo.Echo
}

// Response is the body of a successful conversion.
type Response struct {
	Image  string `json:"image"`
	Device string `json:"device"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Stage string `json:"stage,omitempty"`
}

// DeviceResponse is the body of a device lookup.
type DeviceResponse struct {
	Name        string `json:"name"`
	Known       bool   `json:"known"`
	PixelAspect string `json:"pixelAspect"`
}

// New returns a server. Access logs go to accessLog and conversion logs to
// logger; either may be nil.
func New(logger *log.Logger, accessLog io.Writer) *Server {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	if accessLog == nil {
		accessLog = os.Stdout
	}

	s := &Server{
		conv:   retrolcd.New(logger),
		logger: logger,
		echo:   echo.New(),
	}

	e := s.echo
	e.HideBanner = true
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Output: accessLog,
	}))
	e.Use(middleware.Recover())

	api := e.Group("/api")
	api.POST("/convert", s.handleConvert, middleware.BodyLimit("16M"))
	api.GET("/device", s.handleDevice)
	api.GET("/devices", s.handleDevices)
	api.GET("/client", s.handleClient)

	return s
}

// Handler returns the server's HTTP handler. Everything except the
// websocket endpoint is gzip compressed.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/client", s.echo)
	mux.Handle("/", gzhttp.GzipHandler(s.echo))
	return mux
}

// Start listens on addr until the listener fails.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleConvert(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, &ErrorResponse{
			Error: "missing file: " + err.Error(),
		})
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := ioutil.ReadAll(io.LimitReader(f, MaxUploadSize))
	if err != nil {
		return err
	}

	params, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
	}

	resp, err := s.convert(params, data)
	if err != nil {
		return c.JSON(statusOf(err), errorResponse(err))
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDevice(c echo.Context) error {
	w, werr := strconv.Atoi(c.QueryParam("width"))
	h, herr := strconv.Atoi(c.QueryParam("height"))
	if werr != nil || herr != nil {
		return c.JSON(http.StatusBadRequest, &ErrorResponse{
			Error: "width and height must be integers",
		})
	}

	d := retrolcd.LookupDevice(w, h)
	return c.JSON(http.StatusOK, &DeviceResponse{
		Name:        d.Name,
		Known:       d.Known(),
		PixelAspect: d.PixelAspect.String(),
	})
}

func (s *Server) handleDevices(c echo.Context) error {
	return c.JSON(http.StatusOK, retrolcd.Devices())
}

func (s *Server) convert(form host.Form, data []byte) (*Response, error) {
	req, err := host.FromForm(form)
	if err != nil {
		return nil, err
	}

	res, err := s.conv.Convert(data, req)
	if err != nil {
		return nil, err
	}

	return &Response{
		Image:  base64.StdEncoding.EncodeToString(res.PNG),
		Device: res.Device.Name,
		Width:  res.Image.Rect.Dx(),
		Height: res.Image.Rect.Dy(),
	}, nil
}

func statusOf(err error) int {
	kind, ok := retrolcd.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch kind {
	case retrolcd.KindDecodeFailure:
		return http.StatusUnsupportedMediaType
	case retrolcd.KindEmptyInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func errorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{Error: err.Error()}
	var e *retrolcd.Error
	if errors.As(err, &e) {
		resp.Kind = e.Kind.String()
		resp.Stage = e.Stage
	}
	return resp
}
