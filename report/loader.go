package report

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/carbocation/roga/reportsource"
)

// SourceLoader reads report sources from local disk or, when Client is set,
// from Google Storage.
type SourceLoader struct {
	Client  *storage.Client
	Options reportsource.Options
}

func (s SourceLoader) Load(ctx context.Context, location string, layout reportsource.Layout) (*reportsource.Table, error) {
	opts := s.Options
	opts.Layout = &layout

	return reportsource.Open(ctx, location, s.Client, opts)
}
