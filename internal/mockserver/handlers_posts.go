package mockserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
)

const defaultPageSize = 10

// scopeFromForm reads scope and clubId from a parsed form.
func scopeFromForm(r *http.Request) (string, int64, error) {
	scope := r.FormValue("scope")
	switch scope {
	case api.ScopeGlobal:
		return scope, 0, nil
	case api.ScopeClub:
		id, err := strconv.ParseInt(r.FormValue("clubId"), 10, 64)
		if err != nil || id <= 0 {
			return "", 0, fmt.Errorf("%w: clubId is required for CLUB scope", errBadRequest)
		}
		return scope, id, nil
	default:
		return "", 0, fmt.Errorf("%w: scope must be GLOBAL or CLUB", errBadRequest)
	}
}

func (s *Server) postFromForm(r *http.Request) (api.Post, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return api.Post{}, fmt.Errorf("%w: expected multipart form", errBadRequest)
	}
	scope, clubID, err := scopeFromForm(r)
	if err != nil {
		return api.Post{}, err
	}
	p := api.Post{
		Scope:   scope,
		ClubID:  clubID,
		Title:   strings.TrimSpace(r.FormValue("title")),
		Content: strings.TrimSpace(r.FormValue("content")),
		Tags:    r.MultipartForm.Value["tags"],
	}
	if p.Title == "" || p.Content == "" {
		return api.Post{}, fmt.Errorf("%w: title and content are required", errBadRequest)
	}
	if p.Images, err = s.saveUploads(r, "images"); err != nil {
		return api.Post{}, err
	}
	return p, nil
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defaultPageSize)
	writeData(w, http.StatusOK, s.store.listPosts(userIDFrom(r.Context()), page, limit))
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "postID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	p, err := s.store.post(userIDFrom(r.Context()), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	in, err := s.postFromForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.store.createPost(userIDFrom(r.Context()), in, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, p)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "postID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	in, err := s.postFromForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.store.updatePost(userIDFrom(r.Context()), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "postID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	if err := s.store.deletePost(userIDFrom(r.Context()), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "postID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	st, err := s.store.toggleLike(userIDFrom(r.Context()), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, st)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	in, err := s.eventFromForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ev, err := s.store.createEvent(userIDFrom(r.Context()), in, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, ev)
}

func (s *Server) eventFromForm(r *http.Request) (api.Event, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return api.Event{}, fmt.Errorf("%w: expected multipart form", errBadRequest)
	}
	scope, clubID, err := scopeFromForm(r)
	if err != nil {
		return api.Event{}, err
	}
	ev := api.Event{
		Scope:           scope,
		ClubID:          clubID,
		Type:            r.FormValue("type"),
		Title:           strings.TrimSpace(r.FormValue("title")),
		Content:         strings.TrimSpace(r.FormValue("content")),
		LocationName:    r.FormValue("locationName"),
		LocationAddress: r.FormValue("locationAddress"),
		LocationLink:    r.FormValue("locationLink"),
		StartsAt:        r.FormValue("startsAt"),
		EndsAt:          r.FormValue("endsAt"),
		Tags:            r.MultipartForm.Value["tags"],
	}
	if ev.Type == "" || ev.Title == "" || ev.Content == "" {
		return api.Event{}, fmt.Errorf("%w: type, title and content are required", errBadRequest)
	}
	if ev.Capacity, err = strconv.Atoi(r.FormValue("capacity")); err != nil || ev.Capacity <= 0 {
		return api.Event{}, fmt.Errorf("%w: capacity must be a positive number", errBadRequest)
	}

	start, err := time.Parse(api.DateTimeLayout, ev.StartsAt)
	if err != nil {
		return api.Event{}, fmt.Errorf("%w: startsAt: %v", errBadRequest, err)
	}
	end, err := time.Parse(api.DateTimeLayout, ev.EndsAt)
	if err != nil {
		return api.Event{}, fmt.Errorf("%w: endsAt: %v", errBadRequest, err)
	}
	if !end.After(start) {
		return api.Event{}, fmt.Errorf("%w: event must end after it starts", errBadRequest)
	}

	if ev.Images, err = s.saveUploads(r, "images"); err != nil {
		return api.Event{}, err
	}
	return ev, nil
}
