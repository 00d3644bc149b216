package admitcard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// Image names used when registering assets with the renderer.
const (
	LogoName  = "logo"
	StampName = "stamp"
)

// maxImageBytes caps remote downloads.
const maxImageBytes = 4 << 20

// ErrImageTooLarge is returned when a downloaded image exceeds maxImageBytes.
var ErrImageTooLarge = errors.New("image too large")

// Asset is a raster image embedded in the document.
type Asset struct {
	Name string
	// Type is the renderer image type: "PNG", "JPG" or "GIF".
	Type string
	Data []byte
}

// Assets are the optional images of an admit card. A nil field leaves
// that image off the page.
type Assets struct {
	Logo  *Asset
	Stamp *Asset
}

// AssetSource supplies the images for one generation call.
type AssetSource interface {
	Load(ctx context.Context) (Assets, error)
}

// AssetLoader reads the logo from disk and downloads the approval stamp.
// Both are fetched on every Load, so a replaced file or an unreachable
// stamp server shows up on the next generation.
type AssetLoader struct {
	LogoPath string
	StampURL string
	Client   *http.Client
}

// Load implements AssetSource. Empty LogoPath or StampURL skips that image.
func (l *AssetLoader) Load(ctx context.Context) (Assets, error) {
	var assets Assets

	if l.LogoPath != "" {
		data, err := os.ReadFile(l.LogoPath)
		if err != nil {
			return Assets{}, fmt.Errorf("admitcard: read logo: %w", err)
		}
		assets.Logo, err = newAsset(LogoName, data)
		if err != nil {
			return Assets{}, fmt.Errorf("admitcard: logo %s: %w", l.LogoPath, err)
		}
	}

	if l.StampURL != "" {
		data, err := l.fetch(ctx, l.StampURL)
		if err != nil {
			return Assets{}, fmt.Errorf("admitcard: fetch stamp: %w", err)
		}
		assets.Stamp, err = newAsset(StampName, data)
		if err != nil {
			return Assets{}, fmt.Errorf("admitcard: stamp %s: %w", l.StampURL, err)
		}
	}

	return assets, nil
}

func (l *AssetLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	// One byte past the cap tells a full-size image from a truncated one.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%w: over %d bytes", ErrImageTooLarge, maxImageBytes)
	}

	return data, nil
}

// newAsset sniffs the image format from its content rather than trusting
// file extensions or Content-Type headers.
func newAsset(name string, data []byte) (*Asset, error) {
	mtype := mimetype.Detect(data)

	var imageType string
	switch {
	case mtype.Is("image/png"):
		imageType = "PNG"
	case mtype.Is("image/jpeg"):
		imageType = "JPG"
	case mtype.Is("image/gif"):
		imageType = "GIF"
	default:
		return nil, fmt.Errorf("unsupported image type %s", mtype.String())
	}

	return &Asset{Name: name, Type: imageType, Data: data}, nil
}
