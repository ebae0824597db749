package mockserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/common"
)

func TestStore_RotateRefreshConsumesToken(t *testing.T) {
	s := newStore(bcrypt.MinCost)
	u, err := s.createUser("a@b.c", "pw", "a", "")
	require.NoError(t, err)

	now := time.Now()
	first := s.issueRefresh(u.UserID, time.Hour, now)

	id, second, err := s.rotateRefresh(first, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, u.UserID, id)
	assert.NotEqual(t, first, second)

	_, _, err = s.rotateRefresh(first, time.Hour, now)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestStore_RotateRefreshExpired(t *testing.T) {
	s := newStore(bcrypt.MinCost)
	u, err := s.createUser("a@b.c", "pw", "a", "")
	require.NoError(t, err)

	now := time.Now()
	token := s.issueRefresh(u.UserID, time.Minute, now)

	_, _, err = s.rotateRefresh(token, time.Minute, now.Add(time.Minute))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestStore_Authenticate(t *testing.T) {
	s := newStore(bcrypt.MinCost)
	_, err := s.createUser("A@b.c", "pw", "a", "")
	require.NoError(t, err)

	u, err := s.authenticate("a@B.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "a", u.Nickname)

	_, err = s.authenticate("a@b.c", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = s.authenticate("x@b.c", "pw")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestStore_ClubRules(t *testing.T) {
	s := newStore(bcrypt.MinCost)
	now := time.Now()
	lead, _ := s.createUser("l@b.c", "pw", "lead", "")
	mem, _ := s.createUser("m@b.c", "pw", "mem", "")

	c, err := s.createClub(lead.UserID, api.Club{ClubName: "Go", ClubType: api.ClubTypeClub}, now)
	require.NoError(t, err)

	_, err = s.createClub(mem.UserID, api.Club{ClubName: "go", ClubType: api.ClubTypeClub}, now)
	assert.ErrorIs(t, err, errConflict)

	assert.ErrorIs(t, s.leave(c.ClubID, lead.UserID), errForbidden)
	assert.ErrorIs(t, s.apply(c.ClubID, lead.UserID, now), errConflict)

	require.NoError(t, s.apply(c.ClubID, mem.UserID, now))
	assert.ErrorIs(t, s.decide(c.ClubID, mem.UserID, mem.UserID, true), errForbidden)
	require.NoError(t, s.decide(c.ClubID, lead.UserID, mem.UserID, false))

	// rejected applicants may apply again
	require.NoError(t, s.apply(c.ClubID, mem.UserID, now))
	require.NoError(t, s.cancelApplication(c.ClubID, mem.UserID))
	assert.ErrorIs(t, s.cancelApplication(c.ClubID, mem.UserID), common.ErrorNotFound)

	assert.ErrorIs(t, s.kick(c.ClubID, lead.UserID, lead.UserID), errForbidden)
}

func TestStore_PostPaging(t *testing.T) {
	s := newStore(bcrypt.MinCost)
	u, _ := s.createUser("a@b.c", "pw", "a", "")
	for i := 0; i < 5; i++ {
		_, err := s.createPost(u.UserID, api.Post{Scope: api.ScopeGlobal, Title: "t", Content: "c"}, time.Now())
		require.NoError(t, err)
	}

	first := s.listPosts(u.UserID, 1, 2)
	require.Len(t, first, 2)
	assert.Greater(t, first[0].PostID, first[1].PostID)

	assert.Len(t, s.listPosts(u.UserID, 3, 2), 1)
	assert.Empty(t, s.listPosts(u.UserID, 4, 2))
}

func TestStore_ClubPostNeedsMembership(t *testing.T) {
	s := newStore(bcrypt.MinCost)
	lead, _ := s.createUser("l@b.c", "pw", "lead", "")
	other, _ := s.createUser("o@b.c", "pw", "other", "")
	c, err := s.createClub(lead.UserID, api.Club{ClubName: "Go"}, time.Now())
	require.NoError(t, err)

	_, err = s.createPost(other.UserID, api.Post{Scope: api.ScopeClub, ClubID: c.ClubID}, time.Now())
	assert.ErrorIs(t, err, errForbidden)

	_, err = s.createPost(lead.UserID, api.Post{Scope: api.ScopeClub, ClubID: c.ClubID}, time.Now())
	assert.NoError(t, err)
}

func TestStore_DeleteUserDropsMemberships(t *testing.T) {
	s := newStore(bcrypt.MinCost)
	lead, _ := s.createUser("l@b.c", "pw", "lead", "")
	mem, _ := s.createUser("m@b.c", "pw", "mem", "")
	c, _ := s.createClub(lead.UserID, api.Club{ClubName: "Go"}, time.Now())
	require.NoError(t, s.apply(c.ClubID, mem.UserID, time.Now()))
	require.NoError(t, s.decide(c.ClubID, lead.UserID, mem.UserID, true))
	token := s.issueRefresh(mem.UserID, time.Hour, time.Now())

	require.NoError(t, s.deleteUser(mem.UserID))

	got, err := s.club(c.ClubID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)
	_, _, err = s.rotateRefresh(token, time.Hour, time.Now())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
