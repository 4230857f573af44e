package server

import (
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
)

// Fields are the form fields of a websocket conversion request, sent as a
// JSON object in a text frame ahead of the image.
type Fields map[string]string

// Get returns the named field, or "" if absent.
func (f Fields) Get(key string) string {
	return f[key]
}

var errNoFields = errors.New("image frame sent before request fields")

func (s *Server) handleClient(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ws.SetReadLimit(MaxUploadSize)
	s.serveClient(ws)
	return nil
}

// serveClient answers each binary image frame with a text frame holding
// the conversion, using the fields from the latest text frame.
func (s *Server) serveClient(ws *websocket.Conn) {
	var fields Fields

	for {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			s.logger.Println("retrolcd server: client disconnected:", err)
			return
		}

		switch msgType {
		case websocket.TextMessage:
			var next Fields
			if err := json.Unmarshal(data, &next); err != nil {
				s.logger.Println("retrolcd server: bad request fields:", err)
				if !s.reply(ws, &ErrorResponse{Error: "bad request fields: " + err.Error()}) {
					return
				}
				continue
			}
			fields = next

		case websocket.BinaryMessage:
			if fields == nil {
				if !s.reply(ws, &ErrorResponse{Error: errNoFields.Error()}) {
					return
				}
				continue
			}

			var ok bool
			resp, err := s.convert(fields, data)
			if err != nil {
				ok = s.reply(ws, errorResponse(err))
			} else {
				ok = s.reply(ws, resp)
			}
			if !ok {
				return
			}
		}
	}
}

func (s *Server) reply(ws *websocket.Conn, v interface{}) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Println("retrolcd server: encoding reply:", err)
		return false
	}

	if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Println("retrolcd server: writing reply:", err)
		return false
	}
	return true
}
