package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/validate"
	"github.com/dmitrijs2005/clubhub/internal/logging"
)

// ClubListing is a club annotated with the caller's active membership.
type ClubListing struct {
	api.Club
	IsMine bool
}

type ClubService interface {
	List(ctx context.Context) ([]ClubListing, error)
	Mine(ctx context.Context) ([]api.ClubJoin, error)
	Get(ctx context.Context, clubID int64) (api.Club, error)
	Create(ctx context.Context, in api.ClubInput) (api.Club, error)
	Apply(ctx context.Context, clubID int64) error
	CancelApplication(ctx context.Context, clubID int64) error
	Leave(ctx context.Context, clubID int64) error
	Status(ctx context.Context, clubID int64) (api.JoinStatus, error)
	Members(ctx context.Context, clubID int64) ([]api.Member, error)
	Applications(ctx context.Context, clubID int64) ([]api.Application, error)
	Approve(ctx context.Context, clubID, userID int64) error
	Reject(ctx context.Context, clubID, userID int64) error
	Kick(ctx context.Context, clubID, userID int64) error
}

type clubService struct {
	api API
	log logging.Logger
}

func NewClubService(a API, log logging.Logger) ClubService {
	if log == nil {
		log = logging.Nop()
	}
	return &clubService{api: a, log: log}
}

// List returns all clubs with the caller's active clubs first. Failing to
// load the memberships only loses the annotation.
func (s *clubService) List(ctx context.Context) ([]ClubListing, error) {
	clubs, err := s.api.Clubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs error: %w", err)
	}

	mine := make(map[int64]bool)
	joins, err := s.api.MyClubs(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load memberships", "err", err)
	}
	for _, j := range joins {
		if j.Status == api.JoinActive {
			mine[j.ClubID] = true
		}
	}

	out := make([]ClubListing, len(clubs))
	for i, c := range clubs {
		out[i] = ClubListing{Club: c, IsMine: mine[c.ClubID]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsMine && !out[j].IsMine })
	return out, nil
}

func (s *clubService) Mine(ctx context.Context) ([]api.ClubJoin, error) {
	return s.api.MyClubs(ctx)
}

func (s *clubService) Get(ctx context.Context, clubID int64) (api.Club, error) {
	return s.api.Club(ctx, clubID)
}

func (s *clubService) Create(ctx context.Context, in api.ClubInput) (api.Club, error) {
	var typeErr error
	if in.ClubType != api.ClubTypeClub && in.ClubType != api.ClubTypeCrew {
		typeErr = &validate.FieldError{Field: "clubType", Message: "must be CLUB or CREW"}
	}
	if err := errors.Join(
		validate.ClubName(in.ClubName),
		validate.Intro(in.Intro),
		validate.Location(in.LocationName),
		validate.Description(in.Description),
		typeErr,
	); err != nil {
		return api.Club{}, err
	}

	club, err := s.api.CreateClub(ctx, in)
	if err != nil {
		return api.Club{}, fmt.Errorf("create club error: %w", err)
	}
	return club, nil
}

func (s *clubService) Apply(ctx context.Context, clubID int64) error {
	return s.api.ApplyToClub(ctx, clubID)
}

func (s *clubService) CancelApplication(ctx context.Context, clubID int64) error {
	return s.api.CancelApplication(ctx, clubID)
}

func (s *clubService) Leave(ctx context.Context, clubID int64) error {
	return s.api.LeaveClub(ctx, clubID)
}

func (s *clubService) Status(ctx context.Context, clubID int64) (api.JoinStatus, error) {
	return s.api.MyJoinStatus(ctx, clubID)
}

func (s *clubService) Members(ctx context.Context, clubID int64) ([]api.Member, error) {
	return s.api.ClubMembers(ctx, clubID)
}

func (s *clubService) Applications(ctx context.Context, clubID int64) ([]api.Application, error) {
	return s.api.PendingApplications(ctx, clubID)
}

func (s *clubService) Approve(ctx context.Context, clubID, userID int64) error {
	return s.api.ApproveApplication(ctx, clubID, userID)
}

func (s *clubService) Reject(ctx context.Context, clubID, userID int64) error {
	return s.api.RejectApplication(ctx, clubID, userID)
}

func (s *clubService) Kick(ctx context.Context, clubID, userID int64) error {
	return s.api.KickMember(ctx, clubID, userID)
}
