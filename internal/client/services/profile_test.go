package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
	"github.com/dmitrijs2005/clubhub/internal/client/validate"
)

func TestUpdateNickname(t *testing.T) {
	fa := &fakeAPI{}
	svc := NewProfileService(fa, &fakeTokens{})

	u, err := svc.UpdateNickname(context.Background(), "lee")
	require.NoError(t, err)
	require.Equal(t, "lee", u.Nickname)
	require.Equal(t, api.ProfileInput{Nickname: "lee"}, fa.LastProfile)

	_, err = svc.UpdateNickname(context.Background(), "way too long nick")
	require.ErrorIs(t, err, validate.ErrInvalid)
}

func TestUpdateImage(t *testing.T) {
	fa := &fakeAPI{}
	svc := NewProfileService(fa, &fakeTokens{})

	_, err := svc.UpdateImage(context.Background(), formdata.File{Name: "a.png", Content: []byte("x")})
	require.NoError(t, err)
	require.NotNil(t, fa.LastProfile.ProfileImage)
	require.Equal(t, "a.png", fa.LastProfile.ProfileImage.Name)
	require.Empty(t, fa.LastProfile.Nickname)

	fa.UpdateProfileErr = errors.New("413")
	_, err = svc.UpdateImage(context.Background(), formdata.File{Name: "a.png"})
	require.True(t, strings.HasPrefix(err.Error(), "update profile error:"))
}

func TestChangePassword(t *testing.T) {
	fa := &fakeAPI{}
	svc := NewProfileService(fa, &fakeTokens{})

	require.NoError(t, svc.ChangePassword(context.Background(), "N3w!pass", "N3w!pass"))
	require.Equal(t, "N3w!pass", fa.LastPassword)

	err := svc.ChangePassword(context.Background(), "N3w!pass", "different")
	require.Equal(t, []string{"passwordConfirm"}, validate.Fields(err))

	fa.UpdatePasswordErr = errors.New("400")
	err = svc.ChangePassword(context.Background(), "N3w!pass", "N3w!pass")
	require.True(t, strings.HasPrefix(err.Error(), "change password error:"))
}

func TestDeleteAccount(t *testing.T) {
	ft := &fakeTokens{token: "tok"}
	fa := &fakeAPI{}
	svc := NewProfileService(fa, ft)

	require.NoError(t, svc.DeleteAccount(context.Background()))
	require.False(t, ft.IsLoggedIn(context.Background()))

	ft.token = "tok"
	fa.DeleteAccountErr = errors.New("500")
	require.Error(t, svc.DeleteAccount(context.Background()))
	require.True(t, ft.IsLoggedIn(context.Background()), "token kept when the server refused")
}

func TestMeAndDeleteImage(t *testing.T) {
	fa := &fakeAPI{MeRet: api.User{UserID: 3, Nickname: "kim"}}
	svc := NewProfileService(fa, &fakeTokens{})

	u, err := svc.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "kim", u.Nickname)
	require.NoError(t, svc.DeleteImage(context.Background()))
	require.Equal(t, []string{"Me", "DeleteProfileImage"}, fa.Calls)
}
