package admitcard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetLoaderEmptyConfigLoadsNothing(t *testing.T) {
	assets, err := (&AssetLoader{}).Load(context.Background())
	require.NoError(t, err)

	assert.Nil(t, assets.Logo)
	assert.Nil(t, assets.Stamp)
}

func TestAssetLoaderReadsLogoAndFetchesStamp(t *testing.T) {
	data := testPNG(t)

	logoPath := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logoPath, data, 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Served without a Content-Type on purpose: the type is sniffed.
		w.Write(data)
	}))
	defer srv.Close()

	loader := &AssetLoader{LogoPath: logoPath, StampURL: srv.URL + "/stamp", Client: srv.Client()}
	assets, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, assets.Logo)
	assert.Equal(t, LogoName, assets.Logo.Name)
	assert.Equal(t, "PNG", assets.Logo.Type)

	require.NotNil(t, assets.Stamp)
	assert.Equal(t, StampName, assets.Stamp.Name)
	assert.Equal(t, data, assets.Stamp.Data)
}

func TestAssetLoaderMissingLogo(t *testing.T) {
	loader := &AssetLoader{LogoPath: filepath.Join(t.TempDir(), "nope.png")}

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAssetLoaderStampServerError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := (&AssetLoader{StampURL: srv.URL}).Load(context.Background())
	assert.ErrorContains(t, err, "fetch stamp")
	assert.ErrorContains(t, err, "404")
}

func TestAssetLoaderUnreachableStamp(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := (&AssetLoader{StampURL: url}).Load(context.Background())
	assert.Error(t, err)
}

func TestAssetLoaderRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := (&AssetLoader{StampURL: srv.URL}).Load(context.Background())
	assert.ErrorContains(t, err, "unsupported image type")
}

func TestAssetLoaderHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&AssetLoader{StampURL: srv.URL}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssetLoaderRejectsOversizedStamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, maxImageBytes+1))
	}))
	defer srv.Close()

	_, err := (&AssetLoader{StampURL: srv.URL, Client: srv.Client()}).Load(context.Background())
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.ErrorContains(t, err, "fetch stamp")
}

func TestAssetLoaderAcceptsStampAtSizeLimit(t *testing.T) {
	data := testPNG(t)
	padded := make([]byte, maxImageBytes)
	copy(padded, data)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(padded)
	}))
	defer srv.Close()

	assets, err := (&AssetLoader{StampURL: srv.URL, Client: srv.Client()}).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, assets.Stamp.Data, maxImageBytes)
}
