package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/presence-audit/internal/audit"
	"github.com/sells-group/presence-audit/internal/config"
	"github.com/sells-group/presence-audit/internal/dataset"
	"github.com/sells-group/presence-audit/internal/fetcher"
	"github.com/sells-group/presence-audit/internal/model"
	"github.com/sells-group/presence-audit/internal/resolve"
	"github.com/sells-group/presence-audit/internal/source"
)

// auditEnv holds the components shared by the data commands.
type auditEnv struct {
	Builder *audit.Builder
	Loader  *source.Loader
	Store   *dataset.Store
}

// initAudit validates the config for mode and wires resolver, builder,
// fetchers, loader and dataset store.
func initAudit(c *config.Config, mode string) (*auditEnv, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	table := resolve.DefaultSynonyms()
	if c.Resolver.SynonymsFile != "" {
		t, err := resolve.LoadSynonyms(c.Resolver.SynonymsFile)
		if err != nil {
			return nil, err
		}
		table = t
	}

	platforms := model.DefaultPlatforms()
	resolver := resolve.New(table, platforms, resolve.WithAccentFolding(c.Resolver.FoldAccents))
	builder := audit.NewBuilder(resolver, platforms)

	timeout := time.Duration(c.Fetch.TimeoutSecs) * time.Second
	httpFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.Fetch.UserAgent,
		Timeout:    timeout,
		MaxRetries: c.Fetch.MaxRetries,
		RatePerSec: c.Fetch.RatePerSec,
	})
	ftpFetcher := fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: timeout})
	loader := source.NewLoader(httpFetcher, ftpFetcher, source.WithCacheBust(c.Source.CacheBust))

	specs, err := sourceSpecs(c.Source)
	if err != nil {
		return nil, err
	}

	return &auditEnv{
		Builder: builder,
		Loader:  loader,
		Store:   dataset.NewStore(loader, builder, specs),
	}, nil
}

// sourceSpecs lists URLs before files, each in configured order.
func sourceSpecs(sc config.SourceConfig) ([]source.Spec, error) {
	format, err := source.ParseFormat(sc.Format)
	if err != nil {
		return nil, err
	}
	urls, files := sc.Locations()
	specs := make([]source.Spec, 0, len(urls)+len(files))
	for _, u := range urls {
		specs = append(specs, source.Spec{URL: u, Format: format, Sheet: sc.Sheet})
	}
	for _, f := range files {
		specs = append(specs, source.Spec{File: f, Format: format, Sheet: sc.Sheet})
	}
	return specs, nil
}

// loadDataset performs the first refresh. An unreachable source is
// reported as "no data".
func loadDataset(ctx context.Context, env *auditEnv) (*dataset.Dataset, error) {
	ds, err := env.Store.Refresh(ctx)
	if err != nil {
		if source.IsUnavailable(err) {
			return nil, eris.Wrap(err, "no data")
		}
		return nil, err
	}
	return ds, nil
}

// writeOutput sends fn's output to path, or to stdout when path is "" or "-".
func writeOutput(stdout io.Writer, path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create output file")
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrap(err, "close output file")
	}
	zap.L().Info("report written", zap.String("path", path))
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	return eris.Wrap(enc.Close(), "close yaml encoder")
}
