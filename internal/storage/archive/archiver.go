package archive

import (
	"context"
	"encoding/json"
	"path"

	"go.uber.org/zap"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// Archiver writes analysis reports as JSON blobs, laid out by state and
// city so market-level sweeps are a single prefix listing.
type Archiver struct {
	backend Backend
	logger  *zap.Logger
}

// NewArchiver creates an archiver over the given backend.
func NewArchiver(backend Backend, logger ...*zap.Logger) *Archiver {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Archiver{backend: backend, logger: l}
}

// ReportPath is the canonical blob path for a report:
// reports/<STATE>/<city>/<id>.json.
func ReportPath(r core.AnalysisReport) string {
	return path.Join("reports", r.Facts.State, r.Facts.City, r.ID+".json")
}

// Store writes the report. The report must already carry an ID.
func (a *Archiver) Store(ctx context.Context, r core.AnalysisReport) (string, error) {
	if r.ID == "" {
		return "", core.WrapError(core.ErrStorageFailed, errMissingReportID)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return "", core.WrapError(core.ErrStorageFailed, err)
	}

	p := ReportPath(r)
	if err := a.backend.Write(ctx, p, data); err != nil {
		return "", core.WrapError(core.ErrStorageFailed, err)
	}

	a.logger.Debug("report archived", zap.String("path", p))
	return p, nil
}

// Load reads a report back from its blob path.
func (a *Archiver) Load(ctx context.Context, blobPath string) (*core.AnalysisReport, error) {
	data, err := a.backend.Read(ctx, blobPath)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	var r core.AnalysisReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return &r, nil
}

// ListMarket returns the blob paths archived for a state, optionally
// narrowed to one city.
func (a *Archiver) ListMarket(ctx context.Context, state, city string) ([]string, error) {
	prefix := path.Join("reports", state, city)
	paths, err := a.backend.List(ctx, prefix)
	if err != nil {
		return nil, core.WrapError(core.ErrStorageFailed, err)
	}
	return paths, nil
}
