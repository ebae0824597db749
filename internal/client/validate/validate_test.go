package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		v     string
		login bool
		ok    bool
	}{
		{"login with at", "kim@uni", true, true},
		{"login without at", "kim.uni.ac", true, false},
		{"signup two letter tld", "kim@uni.ac", false, true},
		{"signup missing tld", "kim@uni", false, false},
		{"signup simple", "kim@uni.com", false, true},
		{"signup dotted local", "kim.lee@uni.com", false, false},
		{"empty", " ", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email(tt.v, tt.login)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("anything", true))
	assert.Error(t, Password("", true))

	assert.NoError(t, Password("Abcdef1!", false))
	assert.Error(t, Password("Abcde1!", false), "too short")
	assert.Error(t, Password("Abcdefghijklmnopqr1!x", false), "too long")
	assert.Error(t, Password("abcdef1!", false), "no upper case")
	assert.Error(t, Password("ABCDEF1!", false), "no lower case")
	assert.Error(t, Password("Abcdefg!", false), "no digit")
	assert.Error(t, Password("Abcdefg1", false), "no special character")
}

func TestPasswordConfirm(t *testing.T) {
	assert.NoError(t, PasswordConfirm("Abcdef1!", "Abcdef1!"))
	assert.Error(t, PasswordConfirm("Abcdef1!", ""))
	assert.Error(t, PasswordConfirm("Abcdef1!", "Abcdef1?"))
}

func TestNickname(t *testing.T) {
	assert.NoError(t, Nickname("김철수"))
	assert.NoError(t, Nickname("abcdefghij"))
	assert.Error(t, Nickname("abcdefghijk"))
	assert.Error(t, Nickname("kim lee"))
	assert.Error(t, Nickname("  "))
}

func TestBoundedFields(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) error
		max   int
	}{
		{"clubName", ClubName, MaxClubNameLen},
		{"intro", Intro, MaxIntroLen},
		{"locationName", Location, MaxLocationLen},
		{"description", Description, MaxDescriptionLen},
		{"title", Title, MaxTitleLen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.check(strings.Repeat("가", tt.max)))

			err := tt.check(strings.Repeat("a", tt.max+1))
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.name, fe.Field)

			assert.ErrorIs(t, tt.check(""), ErrInvalid)
		})
	}
}

func TestContentAndRequired(t *testing.T) {
	assert.NoError(t, Content("x"))
	assert.Error(t, Content("\n\t"))
	assert.NoError(t, Required("type", "MEETUP"))
	assert.EqualError(t, Required("type", ""), "type: is required")
}

func TestDateTimeRange(t *testing.T) {
	start := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, DateTimeRange(start, start.Add(time.Minute)))
	assert.Error(t, DateTimeRange(start, start))
	assert.Error(t, DateTimeRange(start, start.Add(-time.Hour)))
	assert.Error(t, DateTimeRange(time.Time{}, start))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"go", "club", "study"}, ParseTags("#go, club  #study,go ,, #"))
	assert.Empty(t, ParseTags("   "))
}

func TestJoinedErrors(t *testing.T) {
	err := errors.Join(Nickname(""), Email("bad", false), Title("ok"))
	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, []string{"nickname", "email"}, Fields(err))
	assert.Nil(t, Fields(nil))
}
