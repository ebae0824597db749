package mockserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/common"
)

var (
	errConflict  = errors.New("conflict")
	errForbidden = errors.New("forbidden")
)

type user struct {
	api.User
	passwordHash []byte
}

type membership struct {
	status    string
	role      string
	createdAt time.Time
}

type club struct {
	api.Club
	members map[int64]*membership
}

type post struct {
	api.Post
	likes map[int64]bool
}

type refreshToken struct {
	userID  int64
	expires time.Time
}

// store is the in-memory data of the mock backend. All methods are safe for
// concurrent use and return copies.
type store struct {
	mu   sync.Mutex
	cost int

	// last issued id per entity kind
	ids map[string]int64

	users   map[int64]*user
	emails  map[string]int64
	clubs   map[int64]*club
	posts   map[int64]*post
	events  map[int64]api.Event
	refresh map[string]refreshToken
}

func newStore(bcryptCost int) *store {
	return &store{
		cost:    bcryptCost,
		ids:     make(map[string]int64),
		users:   make(map[int64]*user),
		emails:  make(map[string]int64),
		clubs:   make(map[int64]*club),
		posts:   make(map[int64]*post),
		events:  make(map[int64]api.Event),
		refresh: make(map[string]refreshToken),
	}
}

func (s *store) id(kind string) int64 {
	s.ids[kind]++
	return s.ids[kind]
}

func (s *store) createUser(email, password, nickname, image string) (api.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return api.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.emails[key]; ok {
		return api.User{}, errConflict
	}
	u := &user{
		User:         api.User{UserID: s.id("user"), Email: email, Nickname: nickname, ProfileImage: image},
		passwordHash: hash,
	}
	s.users[u.UserID] = u
	s.emails[key] = u.UserID
	return u.User, nil
}

func (s *store) authenticate(email, password string) (api.User, error) {
	s.mu.Lock()
	id, ok := s.emails[strings.ToLower(email)]
	var u user
	if ok {
		u = *s.users[id]
	}
	s.mu.Unlock()

	if !ok {
		return api.User{}, common.ErrorUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return api.User{}, common.ErrorUnauthorized
	}
	return u.User, nil
}

func (s *store) user(id int64) (api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return api.User{}, common.ErrorNotFound
	}
	return u.User, nil
}

func (s *store) updateUser(id int64, nickname, image string) (api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return api.User{}, common.ErrorNotFound
	}
	if nickname != "" {
		u.Nickname = nickname
	}
	if image != "" {
		u.ProfileImage = image
	}
	return u.User, nil
}

func (s *store) clearProfileImage(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.ProfileImage = ""
	return nil
}

func (s *store) setPassword(id int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.passwordHash = hash
	return nil
}

// deleteUser removes the account, its memberships and its refresh tokens.
func (s *store) deleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(s.emails, strings.ToLower(u.Email))
	delete(s.users, id)
	for _, c := range s.clubs {
		delete(c.members, id)
	}
	for token, rt := range s.refresh {
		if rt.userID == id {
			delete(s.refresh, token)
		}
	}
	return nil
}

func (s *store) issueRefresh(userID int64, ttl time.Duration, now time.Time) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.refresh[token] = refreshToken{userID: userID, expires: now.Add(ttl)}
	s.mu.Unlock()
	return token
}

// rotateRefresh consumes token and issues its replacement.
func (s *store) rotateRefresh(token string, ttl time.Duration, now time.Time) (int64, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.refresh[token]
	if !ok {
		return 0, "", common.ErrorUnauthorized
	}
	delete(s.refresh, token)
	if !now.Before(rt.expires) {
		return 0, "", common.ErrTokenExpired
	}
	if _, ok := s.users[rt.userID]; !ok {
		return 0, "", common.ErrorUnauthorized
	}

	next := uuid.NewString()
	s.refresh[next] = refreshToken{userID: rt.userID, expires: now.Add(ttl)}
	return rt.userID, next, nil
}

func (s *store) revokeRefresh(token string) {
	s.mu.Lock()
	delete(s.refresh, token)
	s.mu.Unlock()
}

func (c *club) view() api.Club {
	out := c.Club
	out.Tags = append([]string{}, c.Tags...)
	out.MemberCount = 0
	for _, m := range c.members {
		if m.status == api.JoinActive {
			out.MemberCount++
		}
	}
	return out
}

func (s *store) createClub(owner int64, in api.Club, now time.Time) (api.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[owner]; !ok {
		return api.Club{}, common.ErrorNotFound
	}
	for _, c := range s.clubs {
		if strings.EqualFold(c.ClubName, in.ClubName) {
			return api.Club{}, errConflict
		}
	}
	in.ClubID = s.id("club")
	c := &club{Club: in, members: map[int64]*membership{
		owner: {status: api.JoinActive, role: api.RoleLeader, createdAt: now},
	}}
	s.clubs[c.ClubID] = c
	return c.view(), nil
}

func (s *store) listClubs() []api.Club {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Club, 0, len(s.clubs))
	for _, c := range s.clubs {
		out = append(out, c.view())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out
}

func (s *store) club(id int64) (api.Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clubs[id]
	if !ok {
		return api.Club{}, common.ErrorNotFound
	}
	return c.view(), nil
}

func (s *store) joins(userID int64) []api.ClubJoin {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []api.ClubJoin{}
	for _, c := range s.clubs {
		if m, ok := c.members[userID]; ok {
			out = append(out, api.ClubJoin{ClubID: c.ClubID, ClubName: c.ClubName, Status: m.status, Role: m.role})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClubID < out[j].ClubID })
	return out
}

// withClub runs fn on the club under the store lock.
func (s *store) withClub(id int64, fn func(c *club) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clubs[id]
	if !ok {
		return common.ErrorNotFound
	}
	return fn(c)
}

func (c *club) canManage(userID int64) bool {
	m, ok := c.members[userID]
	return ok && m.status == api.JoinActive && (m.role == api.RoleLeader || m.role == api.RoleManager)
}

func (s *store) apply(clubID, userID int64, now time.Time) error {
	return s.withClub(clubID, func(c *club) error {
		if m, ok := c.members[userID]; ok && m.status != api.JoinRejected {
			return errConflict
		}
		c.members[userID] = &membership{status: api.JoinPending, role: api.RoleMember, createdAt: now}
		return nil
	})
}

func (s *store) cancelApplication(clubID, userID int64) error {
	return s.withClub(clubID, func(c *club) error {
		m, ok := c.members[userID]
		if !ok || m.status != api.JoinPending {
			return common.ErrorNotFound
		}
		delete(c.members, userID)
		return nil
	})
}

func (s *store) leave(clubID, userID int64) error {
	return s.withClub(clubID, func(c *club) error {
		m, ok := c.members[userID]
		if !ok || m.status != api.JoinActive {
			return common.ErrorNotFound
		}
		if m.role == api.RoleLeader {
			return errForbidden
		}
		delete(c.members, userID)
		return nil
	})
}

func (s *store) joinStatus(clubID, userID int64) (api.JoinStatus, error) {
	var out api.JoinStatus
	err := s.withClub(clubID, func(c *club) error {
		m, ok := c.members[userID]
		if !ok {
			return common.ErrorNotFound
		}
		out = api.JoinStatus{Status: m.status, Role: m.role}
		return nil
	})
	return out, err
}

func (s *store) applications(clubID, actor int64) ([]api.Application, error) {
	out := []api.Application{}
	err := s.withClub(clubID, func(c *club) error {
		if !c.canManage(actor) {
			return errForbidden
		}
		for uid, m := range c.members {
			if m.status != api.JoinPending {
				continue
			}
			u := s.users[uid]
			out = append(out, api.Application{UserID: uid, Nickname: u.Nickname, ProfileImage: u.ProfileImage, CreatedAt: m.createdAt})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}

func (s *store) decide(clubID, actor, applicant int64, approve bool) error {
	return s.withClub(clubID, func(c *club) error {
		if !c.canManage(actor) {
			return errForbidden
		}
		m, ok := c.members[applicant]
		if !ok || m.status != api.JoinPending {
			return common.ErrorNotFound
		}
		if approve {
			m.status = api.JoinActive
		} else {
			m.status = api.JoinRejected
		}
		return nil
	})
}

func (s *store) kick(clubID, actor, member int64) error {
	return s.withClub(clubID, func(c *club) error {
		if !c.canManage(actor) || actor == member {
			return errForbidden
		}
		m, ok := c.members[member]
		if !ok || m.status != api.JoinActive {
			return common.ErrorNotFound
		}
		if m.role == api.RoleLeader {
			return errForbidden
		}
		delete(c.members, member)
		return nil
	})
}

func (s *store) members(clubID int64) ([]api.Member, error) {
	out := []api.Member{}
	err := s.withClub(clubID, func(c *club) error {
		for uid, m := range c.members {
			if m.status != api.JoinActive {
				continue
			}
			u := s.users[uid]
			out = append(out, api.Member{UserID: uid, Nickname: u.Nickname, Role: m.role, ProfileImage: u.ProfileImage})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, err
}

// checkScope requires an active membership for club-scoped content.
// Callers hold the lock.
func (s *store) checkScope(scope string, clubID, userID int64) error {
	if scope != api.ScopeClub {
		return nil
	}
	c, ok := s.clubs[clubID]
	if !ok {
		return common.ErrorNotFound
	}
	if m, ok := c.members[userID]; !ok || m.status != api.JoinActive {
		return errForbidden
	}
	return nil
}

func (p *post) view(viewer int64) api.Post {
	out := p.Post
	out.Tags = append([]string{}, p.Tags...)
	out.Images = append([]string{}, p.Images...)
	out.LikeCount = len(p.likes)
	out.IsLiked = p.likes[viewer]
	return out
}

func (s *store) createPost(author int64, in api.Post, now time.Time) (api.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[author]
	if !ok {
		return api.Post{}, common.ErrorNotFound
	}
	if err := s.checkScope(in.Scope, in.ClubID, author); err != nil {
		return api.Post{}, err
	}
	in.PostID = s.id("post")
	in.AuthorID = author
	in.AuthorName = u.Nickname
	in.CreatedAt = now
	p := &post{Post: in, likes: map[int64]bool{}}
	s.posts[p.PostID] = p
	return p.view(author), nil
}

// listPosts pages through posts newest first; page starts at 1.
func (s *store) listPosts(viewer int64, page, limit int) []api.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PostID > all[j].PostID })

	out := []api.Post{}
	start := (page - 1) * limit
	for i := start; i < len(all) && i < start+limit; i++ {
		out = append(out, all[i].view(viewer))
	}
	return out
}

func (s *store) post(viewer, id int64) (api.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return api.Post{}, common.ErrorNotFound
	}
	return p.view(viewer), nil
}

func (s *store) updatePost(actor, id int64, in api.Post) (api.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return api.Post{}, common.ErrorNotFound
	}
	if p.AuthorID != actor {
		return api.Post{}, errForbidden
	}
	if err := s.checkScope(in.Scope, in.ClubID, actor); err != nil {
		return api.Post{}, err
	}
	p.Scope, p.ClubID = in.Scope, in.ClubID
	p.Title, p.Content, p.Tags = in.Title, in.Content, in.Tags
	if len(in.Images) > 0 {
		p.Images = in.Images
	}
	return p.view(actor), nil
}

func (s *store) deletePost(actor, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return common.ErrorNotFound
	}
	if p.AuthorID != actor {
		return errForbidden
	}
	delete(s.posts, id)
	return nil
}

func (s *store) toggleLike(userID, id int64) (api.LikeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return api.LikeState{}, common.ErrorNotFound
	}
	if p.likes[userID] {
		delete(p.likes, userID)
	} else {
		p.likes[userID] = true
	}
	return api.LikeState{IsLiked: p.likes[userID], LikeCount: len(p.likes)}, nil
}

func (s *store) createEvent(author int64, in api.Event, now time.Time) (api.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkScope(in.Scope, in.ClubID, author); err != nil {
		return api.Event{}, err
	}
	in.EventID = s.id("event")
	in.CreatedAt = now
	s.events[in.EventID] = in
	return in, nil
}
