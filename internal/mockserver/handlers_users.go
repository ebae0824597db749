package mockserver

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/clubhub/internal/filex"
)

const maxUploadMemory = 10 << 20

// saveUpload stores an optional file part and returns the path it is
// served from. Without an upload directory the content is discarded.
func (s *Server) saveUpload(r *http.Request, field string) (string, error) {
	paths, err := s.saveUploads(r, field)
	if err != nil || len(paths) == 0 {
		return "", err
	}
	return paths[0], nil
}

func (s *Server) saveUploads(r *http.Request, field string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var out []string
	for _, fh := range r.MultipartForm.File[field] {
		name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
		if s.uploadDir != "" {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			err = filex.WriteFile(s.uploadDir, name, f)
			f.Close()
			if err != nil {
				return nil, err
			}
		}
		out = append(out, "/uploads/"+name)
	}
	return out, nil
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.user(userIDFrom(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form")
		return
	}
	image, err := s.saveUpload(r, "profileImage")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	u, err := s.store.updateUser(userIDFrom(r.Context()), strings.TrimSpace(r.FormValue("nickname")), image)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, u)
}

func (s *Server) deleteProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := s.store.clearProfileImage(userIDFrom(r.Context())); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updatePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}
	if err := s.store.setPassword(userIDFrom(r.Context()), body.Password); err != nil {
		s.fail(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "password updated")
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id := userIDFrom(r.Context())
	if err := s.store.deleteUser(id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info(r.Context(), "account deleted", "user_id", id)
	clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
