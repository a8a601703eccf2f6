package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"hufschlaeger.net/jira-issues-exporter/internal/cli"
	"hufschlaeger.net/jira-issues-exporter/internal/config"
	"hufschlaeger.net/jira-issues-exporter/internal/repository/excel"
	"hufschlaeger.net/jira-issues-exporter/internal/repository/jira"
	"hufschlaeger.net/jira-issues-exporter/internal/service"
)

// Exit-Codes nach Fehlerkategorie. 0 gilt auch für "keine Treffer".
const (
	exitOK     = 0
	exitConfig = 1
	exitAuth   = 2
	exitQuery  = 3
	exitExport = 4
)

func main() {
	cfg, err := cli.ParseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(exitOK)
		}
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(exitConfig)
	}

	exporter, err := service.NewExporter(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(exitConfig)
	}

	if err := exporter.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(exitCode(err))
	}

	os.Exit(exitOK)
}

func exitCode(err error) int {
	var authErr *jira.AuthError
	var queryErr *jira.QueryError
	var exportErr *excel.ExportError

	switch {
	case errors.Is(err, config.ErrMissingCredentials):
		return exitConfig
	case errors.As(err, &authErr):
		return exitAuth
	case errors.As(err, &queryErr):
		return exitQuery
	case errors.As(err, &exportErr), errors.Is(err, excel.ErrNoData):
		return exitExport
	}
	return exitConfig
}
