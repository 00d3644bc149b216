package admitcard

import (
	"bytes"
	"context"
	"time"

	"github.com/aanand-mishra/exam-portal/internal/types"
)

// AdmitCard is a rendered admit card and its download name.
type AdmitCard struct {
	Filename string
	PDF      []byte
}

// Generator ties asset loading, layout and rendering together. It keeps no
// per-call state, so one Generator can serve concurrent requests.
type Generator struct {
	layout Layout
	assets AssetSource
	now    func() time.Time
}

// NewGenerator returns a Generator. A nil now defaults to time.Now; it is
// only consulted for the copyright year.
func NewGenerator(layout Layout, assets AssetSource, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{layout: layout, assets: assets, now: now}
}

// Generate renders the admit card for rec. The record is not validated:
// a short RegNo yields a shortened registration code. Asset and render
// failures are returned unchanged; no partial card is produced.
func (g *Generator) Generate(ctx context.Context, rec types.StudentRecord) (*AdmitCard, error) {
	var assets Assets
	if g.assets != nil {
		var err error
		assets, err = g.assets.Load(ctx)
		if err != nil {
			return nil, err
		}
	}

	doc := g.layout.Build(rec, assets, g.now().Year())

	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		return nil, err
	}

	return &AdmitCard{
		Filename: Filename(rec.RegNo),
		PDF:      buf.Bytes(),
	}, nil
}
