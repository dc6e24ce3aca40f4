package figure

import (
	"encoding/json"
	"testing"

	"avatar-wardrobe/models"

	"github.com/stretchr/testify/require"
)

func TestNewAvatar(t *testing.T) {
	require.Equal(t, "hd-180", NewAvatar(models.GenderMale).String())
	require.Equal(t, "hd-600", NewAvatar(models.GenderFemale).String())
}

func TestFromFigureString(t *testing.T) {
	t.Run("decoded figure replaces the default body", func(t *testing.T) {
		a := FromFigureString("hr-100-45.ch-210-66", models.GenderFemale)
		require.Equal(t, models.GenderFemale, a.Gender())
		require.Equal(t, "hr-100-45.ch-210-66", a.String())
	})

	t.Run("empty string keeps the default", func(t *testing.T) {
		a := FromFigureString("", models.GenderMale)
		require.Equal(t, "hd-180", a.String())
	})
}

func TestAvatarCopyOnWrite(t *testing.T) {
	base := NewAvatar(models.GenderMale)

	withHair, err := base.WithSet("hr", "100", "45")
	require.NoError(t, err)
	require.Equal(t, "hd-180", base.String())
	require.Equal(t, "hr-100-45.hd-180", withHair.String())

	female := withHair.WithGender(models.GenderFemale)
	require.Equal(t, models.GenderMale, withHair.Gender())
	require.Equal(t, withHair.String(), female.String())

	_, err = base.WithSet("zz", "1", "")
	require.ErrorIs(t, err, ErrUnknownTypeCode)
}

func TestAvatarWithColorLayer(t *testing.T) {
	a, err := NewAvatar(models.GenderMale).WithSet("ch", "3030", "1-2")
	require.NoError(t, err)

	updated, err := a.WithColorLayer("ch", 1, "9")
	require.NoError(t, err)
	require.Equal(t, "hd-180.ch-3030-1-9", updated.String())
	require.Equal(t, "hd-180.ch-3030-1-2", a.String())

	_, err = a.WithColorLayer("ch", -1, "9")
	require.ErrorIs(t, err, ErrLayerOutOfRange)

	_, err = a.WithColorLayer("xx", 0, "9")
	require.ErrorIs(t, err, ErrUnknownTypeCode)
}

func TestAvatarWithFigureString(t *testing.T) {
	a, err := NewAvatar(models.GenderMale).WithSet("hr", "100", "")
	require.NoError(t, err)

	require.Equal(t, a, a.WithFigureString(""))
	require.Equal(t, "lg-270", a.WithFigureString("lg-270").String())
}

func TestImageURLs(t *testing.T) {
	a := FromFigureString("hd-180-1.ch-210-66", models.GenderMale)

	require.Equal(t,
		"https://www.habbo.com/habbo-imaging/avatarimage?size=l&direction=2&head_direction=3&gender=M&figure=hd-180-1.ch-210-66",
		a.FullBodyImage("3", "2"),
	)
	require.Equal(t,
		"https://www.habbo.com/habbo-imaging/avatarimage?headonly=1&direction=4&head_direction=2&gender=M&figure=hd-180-1.ch-210-66",
		a.HeadOnlyImage("2", "4"),
	)

	empty := NewAvatarWithFigure(models.GenderFemale, Figure{})
	im := Imaging{BaseURL: "http://render.local/avatar"}
	require.Equal(t, "http://render.local/avatar?size=l&direction=2&head_direction=2&gender=F", im.FullBody(empty, "2", "2"))
}

func TestAvatarJSON(t *testing.T) {
	a := FromFigureString("hd-180-1", models.GenderMale)

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var got Avatar
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, a, got)
}
