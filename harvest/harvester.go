package harvest

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/opendata-swiss/dcatapchharvest/config"
	"github.com/opendata-swiss/dcatapchharvest/errors"
	"github.com/opendata-swiss/dcatapchharvest/metric"
	"github.com/opendata-swiss/dcatapchharvest/profile"
	"github.com/opendata-swiss/dcatapchharvest/rdfx"
)

// Harvester drives one source through parse, guid derivation, and
// reconciliation against the dataset store. Fetching pages is the
// caller's job; the Harvester consumes raw page bytes.
type Harvester struct {
	Store     DatasetStore
	Activity  ActivityLog
	Deriver   *GUIDDeriver
	Parser    *profile.Parser
	Resolver  *profile.Resolver
	Config    *config.Config
	Metrics   *metric.Metrics
	Log       *slog.Logger
	SourceURL string
}

// PageResult summarizes one processed page.
type PageResult struct {
	Created   int
	Updated   int
	Unchanged int
	Skipped   int
	Failed    int

	// GUIDs are the identifiers seen on this page, for end-of-run
	// deletion reconciliation.
	GUIDs []string

	Pagination profile.Pagination
}

func (h *Harvester) logger() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ProcessPage parses one page of source RDF and reconciles every
// dataset on it. Individual dataset failures are counted and logged;
// only an unusable page is an error.
func (h *Harvester) ProcessPage(ctx context.Context, data []byte, format rdfx.Format) (*PageResult, error) {
	start := time.Now()
	log := h.logger()

	g, err := rdfx.DecodeBytes(data, format)
	if err != nil {
		h.Metrics.RecordPage(h.SourceURL, "failed")
		h.Metrics.RecordError(h.SourceURL, "parse")
		return nil, errors.Wrap(err, "harvest", "ProcessPage", "decoding page")
	}

	datasets, err := h.Parser.ParseDatasets(g)
	if err != nil {
		h.Metrics.RecordPage(h.SourceURL, "failed")
		h.Metrics.RecordError(h.SourceURL, "no_datasets")
		return nil, errors.Wrap(err, "harvest", "ProcessPage", "extracting datasets")
	}
	h.Metrics.RecordParsed(h.SourceURL, len(datasets))

	result := &PageResult{Pagination: profile.ExtractPagination(g)}
	for _, d := range datasets {
		h.processDataset(ctx, d, result, log)
	}

	h.Metrics.RecordPage(h.SourceURL, "ok")
	h.Metrics.RecordPageDuration(h.SourceURL, time.Since(start))
	return result, nil
}

func (h *Harvester) processDataset(ctx context.Context, d *profile.Dataset, result *PageResult, log *slog.Logger) {
	if h.Config.IdentifierExcluded(d.Identifier) {
		log.Info("dataset excluded by configuration", "identifier", d.Identifier)
		h.Metrics.RecordSkipped(h.SourceURL, "excluded_identifier")
		result.Skipped++
		return
	}
	if license := h.excludedLicense(d); license != "" {
		log.Info("dataset excluded for license", "identifier", d.Identifier, "license", license)
		h.Metrics.RecordSkipped(h.SourceURL, "excluded_license")
		result.Skipped++
		return
	}
	h.rewriteResourceHosts(d)
	if h.Resolver != nil {
		d.SetExtra("uri", h.Resolver.DatasetURI(d, ""))
	}

	guid, err := h.Deriver.Derive(ctx, d, h.SourceURL)
	if err != nil {
		log.Error("rejecting dataset without usable guid",
			"identifier", d.Identifier, "error", err)
		h.Metrics.RecordError(h.SourceURL, "guid")
		result.Failed++
		return
	}
	result.GUIDs = append(result.GUIDs, guid)

	existing, err := h.Store.Show(ctx, guid)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		h.createDataset(ctx, d, guid, result, log)
	case err != nil:
		log.Error("store lookup failed", "guid", guid, "error", err)
		h.Metrics.RecordError(h.SourceURL, "store")
		result.Failed++
	default:
		h.updateDataset(ctx, d, existing, result, log)
	}
}

// excludedLicense returns the first excluded license found on the
// dataset's resources, or "". One excluded resource excludes the whole
// dataset, never just the resource.
func (h *Harvester) excludedLicense(d *profile.Dataset) string {
	for _, r := range d.Resources {
		if h.Config.LicenseExcluded(r.License) {
			return r.License
		}
	}
	return ""
}

func (h *Harvester) rewriteResourceHosts(d *profile.Dataset) {
	for _, r := range d.Resources {
		r.URL = h.Config.RewriteHost(r.URL)
		r.DownloadURL = h.Config.RewriteHost(r.DownloadURL)
	}
}

func (h *Harvester) createDataset(ctx context.Context, d *profile.Dataset, guid string, result *PageResult, log *slog.Logger) {
	if d.Name == "" {
		d.Name = datasetName(d)
	}
	created, err := h.Store.Create(ctx, d)
	if err != nil {
		log.Error("create failed", "guid", guid, "error", err)
		h.Metrics.RecordError(h.SourceURL, "store")
		result.Failed++
		return
	}
	log.Info("dataset created", "guid", guid, "id", created.ID)
	h.Metrics.RecordWritten(h.SourceURL, "create")
	result.Created++
}

func (h *Harvester) updateDataset(ctx context.Context, d, existing *profile.Dataset, result *PageResult, log *slog.Logger) {
	d.ID = existing.ID
	d.Name = existing.Name
	ReconcileResourceIDs(d.Resources, existing.Resources)
	for _, r := range d.Resources {
		if r.PackageID == "" {
			r.PackageID = existing.ID
		}
	}

	changed, reason := DetectChange(existing, d, log)
	if !changed {
		h.Metrics.RecordUnchanged(h.SourceURL)
		result.Unchanged++
		return
	}

	if _, err := h.Store.Update(ctx, d); err != nil {
		log.Error("update failed", "id", existing.ID, "error", err)
		h.Metrics.RecordError(h.SourceURL, "store")
		result.Failed++
		return
	}
	if h.Activity != nil {
		h.Activity.RecordChange(ctx, existing.ID, reason)
	}
	log.Info("dataset updated", "id", existing.ID, "reason", reason)
	h.Metrics.RecordWritten(h.SourceURL, "update")
	result.Updated++
}

// datasetName derives a storage name for a new dataset from its title,
// falling back to the identifier.
func datasetName(d *profile.Dataset) string {
	if name := profile.MungeTag(d.FlatTitle()); name != "" {
		return name
	}
	return profile.MungeTag(d.Identifier)
}

// ReconcileDeletions computes which stored guids vanished from the
// source this run. A run in which every stored dataset would vanish is
// treated as a source outage: nothing is deleted and ErrOnlyDeletions
// is returned so the operator sees the anomaly.
func ReconcileDeletions(existingGUIDs []string, seen map[string]struct{}) ([]string, error) {
	var gone []string
	for _, guid := range existingGUIDs {
		if _, ok := seen[guid]; !ok {
			gone = append(gone, guid)
		}
	}
	if len(existingGUIDs) > 0 && len(gone) == len(existingGUIDs) {
		return nil, errors.ErrOnlyDeletions
	}
	return gone, nil
}
