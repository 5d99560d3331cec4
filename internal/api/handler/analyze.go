// Package handler implements the JSON API endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/alert"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/job"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/response"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/engine"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/metrics"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/archive"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/buyer"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/report"
)

// AnalyzeHandler runs property analyses over the buyer pool and persists
// the resulting reports.
type AnalyzeHandler struct {
	analyzer *engine.Analyzer
	buyers   buyer.Store
	reports  report.Store
	jobs     *job.Store
	archiver *archive.Archiver
	alerts   *alert.Evaluator
	metrics  *metrics.Registry
	logger   *zap.Logger
}

// NewAnalyzeHandler creates a new analyze handler. The archiver, alert
// evaluator, and metrics registry may be nil.
func NewAnalyzeHandler(analyzer *engine.Analyzer, buyers buyer.Store, reports report.Store, jobs *job.Store, archiver *archive.Archiver, alerts *alert.Evaluator, reg *metrics.Registry, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		buyers:   buyers,
		reports:  reports,
		jobs:     jobs,
		archiver: archiver,
		alerts:   alerts,
		metrics:  reg,
		logger:   logger,
	}
}

// Analyze handles POST /api/analyze: one property in, one report out.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var in core.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}

	rep, err := h.analyze(r.Context(), in)
	if err != nil {
		h.writeAnalyzeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, rep)
}

// AnalyzeBatch handles POST /api/analyze/batch: a list of properties is
// analyzed in the background; the job id is returned immediately.
func (h *AnalyzeHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var inputs []core.PropertyInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, err))
		return
	}
	if len(inputs) == 0 {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrConfigInvalid, errors.New("empty batch")))
		return
	}

	j := h.jobs.Create("batch_analyze", len(inputs))
	go h.runBatch(j.ID, inputs)

	response.JSON(w, http.StatusAccepted, j)
}

// GetJob handles GET /api/jobs/{id}.
func (h *AnalyzeHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.jobs.Get(r.PathValue("id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, err)
		return
	}
	response.JSON(w, http.StatusOK, j)
}

func (h *AnalyzeHandler) analyze(ctx context.Context, in core.PropertyInput) (*core.AnalysisReport, error) {
	buyers, err := h.buyers.List(ctx, buyer.ListFilter{})
	if err != nil {
		return nil, err
	}

	rep, err := h.analyzer.Analyze(in, buyers)
	if err != nil {
		return nil, err
	}

	id, err := h.reports.Save(ctx, rep)
	if err != nil {
		return nil, err
	}
	rep.ID = id

	if h.archiver != nil {
		// Archival is best effort; the report is already stored.
		if _, err := h.archiver.Store(ctx, rep); err != nil {
			h.logger.Warn("report archival failed",
				zap.String("report_id", id),
				zap.Error(err),
			)
		}
	}

	if h.alerts != nil {
		if fired := h.alerts.Evaluate(rep); len(fired) > 0 {
			h.logger.Info("deal alerts fired",
				zap.String("report_id", id),
				zap.Int("alerts", len(fired)),
			)
		}
	}

	if h.metrics != nil {
		h.metrics.RecordReportStored()
		h.metrics.SetBuyerPoolSize(len(buyers))
	}
	return &rep, nil
}

func (h *AnalyzeHandler) runBatch(jobID string, inputs []core.PropertyInput) {
	h.jobs.Update(jobID, func(j *job.Job) { j.Status = job.StatusRunning })

	ctx := context.Background()
	ids := make([]string, 0, len(inputs))
	for i, in := range inputs {
		rep, err := h.analyze(ctx, in)
		if err != nil {
			h.logger.Warn("batch analysis failed",
				zap.String("job_id", jobID),
				zap.Int("index", i),
				zap.Error(err),
			)
			h.jobs.Update(jobID, func(j *job.Job) {
				j.Status = job.StatusFailed
				var coreErr *core.Error
				if errors.As(err, &coreErr) {
					j.Error = coreErr
				} else {
					j.Error = core.WrapError(core.ErrStorageFailed, err)
				}
			})
			return
		}
		ids = append(ids, rep.ID)
		h.jobs.Update(jobID, func(j *job.Job) { j.Progress = i + 1 })
	}

	h.jobs.Update(jobID, func(j *job.Job) {
		j.Status = job.StatusComplete
		j.Result = map[string]any{"report_ids": ids}
	})
}

func (h *AnalyzeHandler) writeAnalyzeError(w http.ResponseWriter, err error) {
	var valErr *core.ValidationError
	if errors.As(err, &valErr) {
		if h.metrics != nil {
			h.metrics.RecordValidationFailure()
		}
		response.Error(w, http.StatusUnprocessableEntity, err)
		return
	}
	if errors.Is(err, core.ErrNoStrategies) {
		response.Error(w, http.StatusBadRequest, err)
		return
	}
	h.logger.Error("analysis failed", zap.Error(err))
	response.Error(w, http.StatusInternalServerError, err)
}
