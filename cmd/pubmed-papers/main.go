// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-papers CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd searches PubMed and exports the matching papers.
var rootCmd = &cobra.Command{
	Use:   "pubmed-papers <query>",
	Short: "Export PubMed search results to a CSV file",
	Long: `pubmed-papers searches PubMed for papers matching a query, fetches the
details of every match in search order, and writes one row per paper:

  PubmedID, Title, PublicationDate, Non-academic Author(s),
  Company Affiliation(s), Corresponding Author Email

Papers whose details cannot be fetched or parsed are written as empty rows.
A failed search exits with status 1 and leaves the output file untouched.
The output format follows the file extension: .csv (default), .yaml/.yml
or .json.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runExport,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.Version = version

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-papers.yaml or ~/.config/pubmed-papers/pubmed-papers.yaml)")

	f := rootCmd.Flags()
	f.BoolP("debug", "d", false, "print request URLs and per-paper progress")
	f.StringP("file", "f", "papers.csv", "output file (.csv, .yaml, .yml or .json)")
	f.String("detail", "summary", "detail endpoint: summary (esummary) or fetch (efetch, includes affiliations)")
	f.String("classifier", "none", "author classifier: none or affiliation")
	f.String("cache", "", "SQLite file caching detail responses between runs")
	f.Duration("timeout", 30*time.Second, "HTTP request timeout (0 = none)")
	f.Duration("delay", 0, "pause between detail requests")
	f.Int("max-retries", 3, "retries on HTTP 429 (negative disables)")
	f.String("secrets-dir", ".secrets", "directory holding ncbi-api-key and ncbi-email files")

	bindings := map[string]string{
		"debug":              "debug",
		"file":               "file",
		"detail":             "detail",
		"classifier":         "classifier",
		"cache":              "cache",
		"http.timeout":       "timeout",
		"http.request_delay": "delay",
		"http.max_retries":   "max-retries",
		"secrets_dir":        "secrets-dir",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetDefault("http.user_agent", "pubmed-papers/"+version)
	viper.SetDefault("ncbi.tool", "pubmed-papers")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-papers"))
		}
	}

	viper.SetEnvPrefix("PUBMED_PAPERS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
