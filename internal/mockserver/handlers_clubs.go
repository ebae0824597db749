package mockserver

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
)

func (s *Server) listClubs(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.listClubs())
}

func (s *Server) myClubs(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.joins(userIDFrom(r.Context())))
}

func (s *Server) getClub(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "clubID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid club id")
		return
	}
	c, err := s.store.club(id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (s *Server) createClub(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart form")
		return
	}
	in := api.Club{
		ClubName:     strings.TrimSpace(r.FormValue("clubName")),
		Intro:        r.FormValue("intro"),
		LocationName: r.FormValue("locationName"),
		Description:  r.FormValue("description"),
		ClubType:     r.FormValue("clubType"),
		Tags:         r.MultipartForm.Value["tags"],
	}
	if in.ClubName == "" {
		writeError(w, http.StatusBadRequest, "club name is required")
		return
	}
	if in.ClubType != api.ClubTypeClub && in.ClubType != api.ClubTypeCrew {
		writeError(w, http.StatusBadRequest, "club type must be CLUB or CREW")
		return
	}
	image, err := s.saveUpload(r, "clubImage")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	in.ClubImage = image

	c, err := s.store.createClub(userIDFrom(r.Context()), in, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

// clubAction runs a membership change for the caller and answers 204.
func (s *Server) clubAction(w http.ResponseWriter, r *http.Request, fn func(clubID, userID int64) error) {
	clubID, ok := pathID(r, "clubID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid club id")
		return
	}
	if err := fn(clubID, userIDFrom(r.Context())); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) applyToClub(w http.ResponseWriter, r *http.Request) {
	s.clubAction(w, r, func(clubID, userID int64) error {
		return s.store.apply(clubID, userID, s.now())
	})
}

func (s *Server) cancelApplication(w http.ResponseWriter, r *http.Request) {
	s.clubAction(w, r, s.store.cancelApplication)
}

func (s *Server) leaveClub(w http.ResponseWriter, r *http.Request) {
	s.clubAction(w, r, s.store.leave)
}

func (s *Server) myJoinStatus(w http.ResponseWriter, r *http.Request) {
	clubID, ok := pathID(r, "clubID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid club id")
		return
	}
	st, err := s.store.joinStatus(clubID, userIDFrom(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, st)
}

func (s *Server) pendingApplications(w http.ResponseWriter, r *http.Request) {
	clubID, ok := pathID(r, "clubID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid club id")
		return
	}
	apps, err := s.store.applications(clubID, userIDFrom(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, apps)
}

// memberAction runs an admin change on another user of the club.
func (s *Server) memberAction(w http.ResponseWriter, r *http.Request, fn func(clubID, actor, target int64) error) {
	clubID, ok := pathID(r, "clubID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid club id")
		return
	}
	target, ok := pathID(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := fn(clubID, userIDFrom(r.Context()), target); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) approveApplication(w http.ResponseWriter, r *http.Request) {
	s.memberAction(w, r, func(clubID, actor, target int64) error {
		return s.store.decide(clubID, actor, target, true)
	})
}

func (s *Server) rejectApplication(w http.ResponseWriter, r *http.Request) {
	s.memberAction(w, r, func(clubID, actor, target int64) error {
		return s.store.decide(clubID, actor, target, false)
	})
}

func (s *Server) kickMember(w http.ResponseWriter, r *http.Request) {
	s.memberAction(w, r, s.store.kick)
}

func (s *Server) clubMembers(w http.ResponseWriter, r *http.Request) {
	clubID, ok := pathID(r, "clubID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid club id")
		return
	}
	members, err := s.store.members(clubID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, members)
}
