package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsCommand is a client request on the session socket.
type wsCommand struct {
	Type   string         `mapstructure:"type"`
	Field  string         `mapstructure:"field"`
	Value  string         `mapstructure:"value"`
	ID     uint64         `mapstructure:"id"`
	Fields map[string]any `mapstructure:"fields"`
}

// wsMessage is a server frame on the session socket.
type wsMessage struct {
	Type    string                  `json:"type"`
	Command string                  `json:"command,omitempty"`
	Result  string                  `json:"result,omitempty"`
	Error   string                  `json:"error,omitempty"`
	Session *domain.SessionSnapshot `json:"session,omitempty"`
	Diff    json.RawMessage         `json:"diff,omitempty"`
}

// SessionSocket handles GET /sessions/{id}/ws.
// The first frame is the full snapshot; later frames are diffs and command
// results.
func (s *Server) SessionSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "session_id", sess.ID(), "err", err)
		return
	}
	defer conn.Close()

	diffs, cancel := s.Streams.Subscribe(sess.ID())
	defer cancel()

	out := make(chan wsMessage, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg wsMessage
			select {
			case m, ok := <-out:
				if !ok {
					return
				}
				msg = m
			case d, ok := <-diffs:
				if !ok {
					return
				}
				msg = wsMessage{Type: "diff", Diff: json.RawMessage(d)}
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	snap := sess.Snapshot()
	out <- wsMessage{Type: "snapshot", Session: &snap}
	s.logger.Info("WebSocket: client connected", "session_id", sess.ID())

	for {
		var raw map[string]any
		if err := conn.ReadJSON(&raw); err != nil {
			break
		}
		reply := s.handleCommand(r.Context(), sess, raw)
		select {
		case out <- reply:
		case <-done:
		}
	}

	close(out)
	<-done
	s.logger.Info("WebSocket: client disconnected", "session_id", sess.ID())
}

func (s *Server) handleCommand(ctx context.Context, sess *contact.Session, raw map[string]any) wsMessage {
	var cmd wsCommand
	if err := mapstructure.Decode(raw, &cmd); err != nil {
		return wsMessage{Type: "error", Error: fmt.Sprintf("invalid command: %v", err)}
	}

	reply := wsMessage{Type: "result", Command: cmd.Type}
	switch cmd.Type {
	case "update_field":
		field, err := domain.ParseField(cmd.Field)
		if err == nil {
			err = sess.UpdateField(field, cmd.Value)
		}
		if err != nil {
			return wsMessage{Type: "error", Command: cmd.Type, Error: err.Error()}
		}
		reply.Result = "ok"
	case "patch_fields":
		patch, err := decodeFieldPatch(cmd.Fields)
		if err == nil {
			err = patch.apply(sess)
		}
		if err != nil {
			return wsMessage{Type: "error", Command: cmd.Type, Error: err.Error()}
		}
		reply.Result = "ok"
	case "submit":
		reply.Result = sess.Submit(ctx).String()
	case "dismiss":
		reply.Result = fmt.Sprintf("%t", sess.Queue().Remove(cmd.ID))
	default:
		return wsMessage{Type: "error", Command: cmd.Type, Error: "unknown command"}
	}
	return reply
}
