// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-papers/internal/cache"
	"github.com/pdiddy/pubmed-papers/internal/classify"
	"github.com/pdiddy/pubmed-papers/internal/httputil"
	"github.com/pdiddy/pubmed-papers/internal/pipeline"
	"github.com/pdiddy/pubmed-papers/internal/pubmed"
	"github.com/pdiddy/pubmed-papers/internal/secrets"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

func runExport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return export(ctx, viper.GetViper(), args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// export runs one search-and-export pass for query with settings from v.
// Progress and per-record diagnostics go to out, setup notes to errOut.
func export(ctx context.Context, v *viper.Viper, query string, out, errOut io.Writer) error {
	cfg, err := runConfig(v)
	if err != nil {
		return err
	}

	s, err := secrets.Load(v.GetString("secrets_dir"), errOut)
	if err != nil {
		return err
	}
	s.Apply(&cfg.PubMed)
	if cfg.Debug && len(s) > 0 {
		fmt.Fprintf(errOut, "Loaded secrets: %v\n", s.Keys())
	}

	classifier, err := classify.New(cfg.Classifier)
	if err != nil {
		return err
	}

	getter := httputil.NewClient(cfg.PubMed.HTTPConfig, out)
	client := pubmed.NewClient(cfg.PubMed, getter, cfg.Debug, out)

	var store *cache.Store
	if cfg.CachePath != "" {
		store, err = cache.Open(cfg.CachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		client.Cache = store
	}

	runner := &pipeline.Runner{
		Source:       client,
		Classifier:   classifier,
		RequestDelay: cfg.PubMed.RequestDelay,
		Debug:        cfg.Debug,
		Out:          out,
	}
	if _, err := runner.Run(ctx, query, cfg.OutputFile); err != nil {
		return err
	}

	if cfg.Debug && store != nil {
		n, err := store.Len(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "warning: %v\n", err)
		} else {
			fmt.Fprintf(out, "Cache %s holds %d responses\n", cfg.CachePath, n)
		}
	}
	return nil
}

// runConfig assembles and validates a RunConfig from v.
func runConfig(v *viper.Viper) (types.RunConfig, error) {
	cfg := types.RunConfig{
		PubMed: types.PubMedConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:      v.GetDuration("http.timeout"),
				UserAgent:    v.GetString("http.user_agent"),
				MaxRetries:   v.GetInt("http.max_retries"),
				RequestDelay: v.GetDuration("http.request_delay"),
			},
			Detail:  types.DetailMode(v.GetString("detail")),
			APIKey:  v.GetString("ncbi.api_key"),
			Email:   v.GetString("ncbi.email"),
			Tool:    v.GetString("ncbi.tool"),
			BaseURL: v.GetString("ncbi.base_url"),
		},
		OutputFile: v.GetString("file"),
		Classifier: v.GetString("classifier"),
		CachePath:  v.GetString("cache"),
		Debug:      v.GetBool("debug"),
	}

	switch cfg.PubMed.Detail {
	case "":
		cfg.PubMed.Detail = types.DetailSummary
	case types.DetailSummary, types.DetailFetch:
	default:
		return cfg, fmt.Errorf("unsupported detail mode %q: use summary or fetch", cfg.PubMed.Detail)
	}
	if cfg.OutputFile == "" {
		return cfg, fmt.Errorf("output file is required")
	}
	if cfg.PubMed.Timeout < 0 || cfg.PubMed.RequestDelay < 0 {
		return cfg, fmt.Errorf("timeout and delay must not be negative")
	}
	return cfg, nil
}
