package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/validate"
)

type PostService interface {
	List(ctx context.Context, page int) ([]api.Post, error)
	Get(ctx context.Context, postID int64) (api.Post, error)
	Create(ctx context.Context, in api.PostInput) (api.Post, error)
	Update(ctx context.Context, postID int64, in api.PostInput) (api.Post, error)
	Delete(ctx context.Context, postID int64) error
	ToggleLike(ctx context.Context, postID int64) (api.LikeState, error)
}

type postService struct {
	api API
}

func NewPostService(a API) PostService {
	return &postService{api: a}
}

func (s *postService) List(ctx context.Context, page int) ([]api.Post, error) {
	return s.api.Posts(ctx, page, api.DefaultPageSize)
}

func (s *postService) Get(ctx context.Context, postID int64) (api.Post, error) {
	return s.api.Post(ctx, postID)
}

func (s *postService) Create(ctx context.Context, in api.PostInput) (api.Post, error) {
	if err := validatePost(in); err != nil {
		return api.Post{}, err
	}
	post, err := s.api.CreatePost(ctx, in)
	if err != nil {
		return api.Post{}, fmt.Errorf("create post error: %w", err)
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, postID int64, in api.PostInput) (api.Post, error) {
	if err := validatePost(in); err != nil {
		return api.Post{}, err
	}
	post, err := s.api.UpdatePost(ctx, postID, in)
	if err != nil {
		return api.Post{}, fmt.Errorf("update post error: %w", err)
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, postID int64) error {
	return s.api.DeletePost(ctx, postID)
}

func (s *postService) ToggleLike(ctx context.Context, postID int64) (api.LikeState, error) {
	return s.api.ToggleLike(ctx, postID)
}

func validatePost(in api.PostInput) error {
	return errors.Join(
		validateScope(in.Scope, in.ClubID),
		validate.Title(in.Title),
		validate.Content(in.Content),
	)
}

// validateScope requires a club for club-scoped content.
func validateScope(scope string, clubID int64) error {
	switch scope {
	case api.ScopeGlobal:
		return nil
	case api.ScopeClub:
		if clubID <= 0 {
			return &validate.FieldError{Field: "clubId", Message: "is required for club scope"}
		}
		return nil
	default:
		return &validate.FieldError{Field: "scope", Message: "must be GLOBAL or CLUB"}
	}
}

type EventService interface {
	Create(ctx context.Context, in api.EventInput) (api.Event, error)
}

type eventService struct {
	api API
}

func NewEventService(a API) EventService {
	return &eventService{api: a}
}

func (s *eventService) Create(ctx context.Context, in api.EventInput) (api.Event, error) {
	var capacityErr error
	if in.Capacity <= 0 {
		capacityErr = &validate.FieldError{Field: "capacity", Message: "must be positive"}
	}
	if err := errors.Join(
		validateScope(in.Scope, in.ClubID),
		validate.Required("type", in.Type),
		validate.Title(in.Title),
		validate.Content(in.Content),
		validate.Location(in.LocationName),
		capacityErr,
		validate.DateTimeRange(in.StartsAt, in.EndsAt),
	); err != nil {
		return api.Event{}, err
	}

	ev, err := s.api.CreateEvent(ctx, in)
	if err != nil {
		return api.Event{}, fmt.Errorf("create event error: %w", err)
	}
	return ev, nil
}
