package api

import (
	"time"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
)

// Membership states reported by the backend.
const (
	JoinPending  = "PENDING"
	JoinActive   = "ACTIVE"
	JoinRejected = "REJECTED"
)

// Club roles.
const (
	RoleLeader  = "LEADER"
	RoleManager = "MANAGER"
	RoleMember  = "MEMBER"
)

// Visibility of posts and events.
const (
	ScopeGlobal = "GLOBAL"
	ScopeClub   = "CLUB"
)

// Club kinds.
const (
	ClubTypeClub = "CLUB"
	ClubTypeCrew = "CREW"
)

// DateTimeLayout is the local date-time format the backend expects for
// event times.
const DateTimeLayout = "2006-01-02T15:04"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken string `json:"accessToken"`
}

type User struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type Club struct {
	ClubID       int64    `json:"clubId"`
	ClubName     string   `json:"clubName"`
	Intro        string   `json:"intro"`
	Description  string   `json:"description"`
	LocationName string   `json:"locationName"`
	ClubType     string   `json:"clubType"`
	Tags         []string `json:"tags"`
	ClubImage    string   `json:"clubImage,omitempty"`
	MemberCount  int      `json:"memberCount"`
}

// ClubJoin is one of the caller's memberships.
type ClubJoin struct {
	ClubID   int64  `json:"clubId"`
	ClubName string `json:"clubName"`
	Status   string `json:"status"`
	Role     string `json:"role"`
}

type JoinStatus struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

// CanManage reports whether the membership grants admin operations.
func (s JoinStatus) CanManage() bool {
	return s.Status == JoinActive && (s.Role == RoleLeader || s.Role == RoleManager)
}

type Application struct {
	UserID       int64     `json:"userId"`
	Nickname     string    `json:"nickname"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Member struct {
	UserID       int64  `json:"userId"`
	Nickname     string `json:"nickname"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type Post struct {
	PostID       int64     `json:"postId"`
	Scope        string    `json:"scope"`
	ClubID       int64     `json:"clubId,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorID     int64     `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Tags         []string  `json:"tags"`
	Images       []string  `json:"images"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	IsLiked      bool      `json:"isLiked"`
	CreatedAt    time.Time `json:"createdAt"`
}

type LikeState struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount int  `json:"likeCount"`
}

type Event struct {
	EventID         int64     `json:"eventId"`
	Scope           string    `json:"scope"`
	ClubID          int64     `json:"clubId,omitempty"`
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	LocationName    string    `json:"locationName"`
	LocationAddress string    `json:"locationAddress"`
	LocationLink    string    `json:"locationLink"`
	Capacity        int       `json:"capacity"`
	StartsAt        string    `json:"startsAt"`
	EndsAt          string    `json:"endsAt"`
	Tags            []string  `json:"tags"`
	Images          []string  `json:"images"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Inputs for the multipart calls.

type SignupInput struct {
	Email        string
	Password     string
	Nickname     string
	ProfileImage *formdata.File
}

type ProfileInput struct {
	Nickname     string
	ProfileImage *formdata.File
}

type ClubInput struct {
	ClubName     string
	Intro        string
	LocationName string
	Description  string
	ClubType     string
	Tags         []string
	ClubImage    *formdata.File
}

type PostInput struct {
	Scope   string
	ClubID  int64
	Title   string
	Content string
	Tags    []string
	Images  []formdata.File
}

type EventInput struct {
	Scope           string
	ClubID          int64
	Type            string
	Title           string
	Content         string
	LocationName    string
	LocationAddress string
	LocationLink    string
	Capacity        int
	StartsAt        time.Time
	EndsAt          time.Time
	Tags            []string
	Images          []formdata.File
}
