package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"avatar-wardrobe/figure"
	"avatar-wardrobe/models"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := imaging.New(width, height, color.NRGBA{R: 0x20, G: 0x80, B: 0xC0, A: 0xFF})
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	return cfg.Width, cfg.Height
}

func TestOptimizeImage(t *testing.T) {
	out, err := OptimizeImage(testPNG(t, 640, 1100), "thumb")
	require.NoError(t, err)
	w, h := decodeSize(t, out)
	require.Equal(t, maxSizeThumb, h)
	require.LessOrEqual(t, w, maxSizeThumb)

	// small renders are not upscaled
	out, err = OptimizeImage(testPNG(t, 64, 110), "medium")
	require.NoError(t, err)
	w, h = decodeSize(t, out)
	require.Equal(t, 64, w)
	require.Equal(t, 110, h)

	_, err = OptimizeImage([]byte("not an image"), "thumb")
	require.Error(t, err)
}

func TestPlaceholderImage(t *testing.T) {
	full, err := PlaceholderImage(ViewFull, "thumb")
	require.NoError(t, err)
	w, h := decodeSize(t, full)
	require.Equal(t, maxSizeThumb/2, w)
	require.Equal(t, maxSizeThumb, h)

	head, err := PlaceholderImage(ViewHead, "medium")
	require.NoError(t, err)
	w, h = decodeSize(t, head)
	require.Equal(t, w, h)
}

func TestAvatarImageServiceFetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	var lastQuery atomic.Value
	render := testPNG(t, 64, 110)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		lastQuery.Store(r.URL.RawQuery)
		w.Header().Set("Content-Type", "image/png")
		w.Write(render)
	}))
	defer server.Close()

	s := NewAvatarImageService(server.URL, NewImageCache(t.TempDir()))
	avatar := figure.FromFigureString("hd-180-1.ch-210-66", models.GenderMale)

	first, err := s.GetImage(context.Background(), avatar, ViewHead, "thumb")
	require.NoError(t, err)
	require.Equal(t, "headonly=1&direction=2&head_direction=2&gender=M&figure=hd-180-1.ch-210-66", lastQuery.Load())

	second, err := s.GetImage(context.Background(), avatar, ViewHead, "thumb")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, int32(1), hits.Load())

	// another view is another cache entry
	_, err = s.GetImage(context.Background(), avatar, "", "thumb")
	require.NoError(t, err)
	require.Equal(t, int32(2), hits.Load())
	require.Equal(t, "size=l&direction=2&head_direction=2&gender=M&figure=hd-180-1.ch-210-66", lastQuery.Load())
}

func TestAvatarImageServicePlaceholderOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render failed", http.StatusBadGateway)
	}))
	defer server.Close()

	cache := NewImageCache(t.TempDir())
	s := NewAvatarImageService(server.URL, cache)
	avatar := figure.NewAvatar(models.GenderFemale)

	data, err := s.GetImage(context.Background(), avatar, ViewFull, "thumb")
	require.NoError(t, err)
	w, h := decodeSize(t, data)
	require.Equal(t, maxSizeThumb/2, w)
	require.Equal(t, maxSizeThumb, h)

	require.False(t, cache.Exists(cache.Path("F", "hd-600", ViewFull, "thumb")))
}

func TestImageCachePath(t *testing.T) {
	cache := NewImageCache("cache-dir")
	a := cache.Path("M", "hd-180", ViewFull, "thumb")
	require.Equal(t, a, cache.Path("M", "hd-180", ViewFull, "thumb"))
	require.NotEqual(t, a, cache.Path("F", "hd-180", ViewFull, "thumb"))
	require.NotEqual(t, a, cache.Path("M", "hd-180", ViewFull, "medium"))
	require.Contains(t, a, "cache-dir")

	require.Equal(t, defaultAvatarCacheDir, NewImageCache("").dir)
}

func TestRenderURL(t *testing.T) {
	s := NewAvatarImageService("", nil)
	avatar := figure.NewAvatar(models.GenderMale)
	require.Equal(t, "https://www.habbo.com/habbo-imaging/avatarimage?size=l&direction=2&head_direction=2&gender=M&figure=hd-180", s.RenderURL(avatar, ViewFull))
}
