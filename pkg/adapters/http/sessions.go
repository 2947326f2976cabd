package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"
	"github.com/var1d/folio/internal/presentation/graph"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
)

// session resolves {id} and makes sure its changes reach the streams.
func (s *Server) session(r *http.Request) (*contact.Session, error) {
	sess, err := s.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}
	s.track(sess)
	return sess, nil
}

// track forwards snapshot diffs of sess to its stream topic. Idempotent.
func (s *Server) track(sess *contact.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := sess.ID()
	if _, ok := s.tracked[id]; ok {
		return
	}

	last := sess.Snapshot()
	s.tracked[id] = sess.Subscribe(func(snap domain.SessionSnapshot) {
		diff := domain.Diff(&last, &snap)
		last = snap
		if diff == nil {
			return
		}
		if b, err := json.Marshal(diff); err == nil {
			s.Streams.Broadcast(id, string(b))
		}
	})
}

func (s *Server) untrack(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if untrack, ok := s.tracked[id]; ok {
		untrack()
		delete(s.tracked, id)
	}
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.Sessions.List())
}

// OpenSession handles POST /sessions. The body is optional.
func (s *Server) OpenSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
		s.writeError(w, badRequest("invalid request body", err))
		return
	}

	sess, err := s.Sessions.Open(body.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.track(sess)
	writeJSON(w, s.logger, http.StatusCreated, sess.Snapshot())
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, sess.Snapshot())
}

// CloseSession handles DELETE /sessions/{id}.
func (s *Server) CloseSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.untrack(id)
	if err := s.Sessions.Close(id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateField handles PUT /sessions/{id}/fields/{field}.
func (s *Server) UpdateField(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	field, err := domain.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var body struct {
		Value *string `json:"value"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if body.Value == nil {
		s.writeError(w, badRequest("missing value", nil))
		return
	}

	if err := sess.UpdateField(field, *body.Value); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, sess.Snapshot())
}

// fieldPatch receives a partial field map. Absent keys stay nil.
type fieldPatch struct {
	Name    *string `mapstructure:"name"`
	Email   *string `mapstructure:"email"`
	Message *string `mapstructure:"message"`
}

func (p fieldPatch) apply(sess *contact.Session) error {
	values := make(map[domain.Field]string, 3)
	for field, v := range map[domain.Field]*string{
		domain.FieldName:    p.Name,
		domain.FieldEmail:   p.Email,
		domain.FieldMessage: p.Message,
	} {
		if v != nil {
			values[field] = *v
		}
	}
	return sess.UpdateFields(values)
}

// decodeFieldPatch checks every key against the known fields (so typos get
// a suggestion) and decodes the values.
func decodeFieldPatch(raw map[string]any) (fieldPatch, error) {
	normalized := make(map[string]any, len(raw))
	for k, v := range raw {
		field, err := domain.ParseField(k)
		if err != nil {
			return fieldPatch{}, err
		}
		normalized[string(field)] = v
	}

	var patch fieldPatch
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &patch,
	})
	if err != nil {
		return fieldPatch{}, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return fieldPatch{}, badRequest("invalid field values", err)
	}
	return patch, nil
}

// PatchFields handles PATCH /sessions/{id}/fields.
func (s *Server) PatchFields(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var raw map[string]any
	if err := decodeBody(r, &raw); err != nil {
		s.writeError(w, err)
		return
	}
	patch, err := decodeFieldPatch(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := patch.apply(sess); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, sess.Snapshot())
}

type submitBody struct {
	Result  string                 `json:"result"`
	Session domain.SessionSnapshot `json:"session"`
}

// Submit handles POST /sessions/{id}/submit.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res := sess.Submit(r.Context())
	writeJSON(w, s.logger, submitStatus(res), submitBody{Result: res.String(), Session: sess.Snapshot()})
}

// GetSessionDiagram handles GET /sessions/{id}/diagram.
func (s *Server) GetSessionDiagram(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(&graph.Overlay{Current: sess.Status()})))
}

// ListNotifications handles GET /sessions/{id}/notifications.
func (s *Server) ListNotifications(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, sess.Queue().List())
}

// AddNotification handles POST /sessions/{id}/notifications.
func (s *Server) AddNotification(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var body struct {
		Message  string `json:"message"`
		Severity string `json:"severity"`
	}
	if err := decodeBody(r, &body); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		s.writeError(w, badRequest("missing message", nil))
		return
	}
	severity, err := domain.ParseSeverity(body.Severity)
	if err != nil {
		s.writeError(w, badRequest("invalid severity", err))
		return
	}

	id := sess.Queue().Add(body.Message, severity)
	if id == 0 {
		s.writeError(w, domain.ErrSessionClosed)
		return
	}
	writeJSON(w, s.logger, http.StatusCreated, map[string]uint64{"id": id})
}

// DismissNotification handles DELETE /sessions/{id}/notifications/{nid}.
func (s *Server) DismissNotification(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	nid, err := strconv.ParseUint(chi.URLParam(r, "nid"), 10, 64)
	if err != nil {
		s.writeError(w, badRequest("invalid notification id", err))
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]bool{"removed": sess.Queue().Remove(nid)})
}

// SubscribeSessionEvents handles GET /sessions/{id}/events (SSE).
// The optional watch parameter (status, fields, notifications) filters diffs.
func (s *Server) SubscribeSessionEvents(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var watchList []string
	if watch := r.URL.Query().Get("watch"); watch != "" {
		for _, f := range strings.Split(watch, ",") {
			watchList = append(watchList, strings.TrimSpace(f))
		}
	}

	initial, _ := json.Marshal(sess.Snapshot())
	s.stream(w, r, sess.ID(), fmt.Sprintf("event: snapshot\ndata: %s\n\n", initial), func(msg string) bool {
		return keepDiff(msg, watchList)
	})
}

// keepDiff reports whether a diff touches any watched part.
func keepDiff(msg string, watchList []string) bool {
	if len(watchList) == 0 {
		return true
	}
	var diff domain.SnapshotDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watchList {
		switch field {
		case "status":
			if diff.Status != nil {
				return true
			}
		case "fields":
			if len(diff.Fields) > 0 {
				return true
			}
		case "notifications":
			if diff.Notifications != nil {
				return true
			}
		}
	}
	return false
}

// stream writes SSE frames for topic until the client goes away.
func (s *Server) stream(w http.ResponseWriter, r *http.Request, topic, initial string, keep func(string) bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SSE: streaming not supported")
		return
	}

	ch, cancel := s.Streams.Subscribe(topic)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if initial != "" {
		fmt.Fprint(w, initial)
	}
	flusher.Flush()
	s.logger.Info("SSE: client subscribed", "topic", topic)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "topic", topic)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if keep != nil && !keep(msg) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
