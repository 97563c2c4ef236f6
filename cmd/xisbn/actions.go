package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"xisbn/internal/platform/xisbn"
)

const (
	exitTransport  = 1
	exitValidation = 2
)

func lookupAction(c *cli.Context) error {
	logger := newLogger(c)
	client, opts, isbn, err := prepare(c)
	if err != nil {
		return err
	}

	start := time.Now()
	body, err := client.Lookup(c.Context, isbn, opts)
	if err != nil {
		var verr *xisbn.ValidationError
		if errors.As(err, &verr) {
			logger.Error("invalid lookup parameters", "field", verr.Field, "error", verr.Message)
			return cli.Exit(verr.Message, exitValidation)
		}
		logger.Error("lookup failed", "isbn", isbn, "error", err)
		return cli.Exit(fmt.Sprintf("lookup failed: %v", err), exitTransport)
	}
	logger.Info("lookup complete", "isbn", isbn, "bytes", len(body), "duration", time.Since(start))

	_, err = fmt.Fprint(c.App.Writer, body)
	return err
}

func urlAction(c *cli.Context) error {
	client, opts, isbn, err := prepare(c)
	if err != nil {
		return err
	}

	u, err := client.BuildURL(isbn, opts)
	if err != nil {
		return cli.Exit(err.Error(), exitValidation)
	}
	_, err = fmt.Fprintln(c.App.Writer, u)
	return err
}

func prepare(c *cli.Context) (*xisbn.Client, xisbn.Options, string, error) {
	if c.NArg() != 1 {
		return nil, xisbn.Options{}, "", cli.Exit("expected exactly one ISBN argument", exitValidation)
	}

	fc, err := loadFileConfig(c.String("config"))
	if err != nil {
		return nil, xisbn.Options{}, "", cli.Exit(err.Error(), exitValidation)
	}

	return newClient(c, fc), requestOptions(c, fc), c.Args().First(), nil
}

func newClient(c *cli.Context, fc fileConfig) *xisbn.Client {
	var opts []xisbn.Option

	if u := firstSet(c, "base-url", fc.BaseURL); u != "" {
		opts = append(opts, xisbn.WithBaseURL(u))
	}
	if c.IsSet("timeout") {
		opts = append(opts, xisbn.WithTimeout(c.Duration("timeout")))
	} else if fc.Timeout != "" {
		d, _ := time.ParseDuration(fc.Timeout)
		opts = append(opts, xisbn.WithTimeout(d))
	}
	if fc.UserAgent != "" {
		opts = append(opts, xisbn.WithUserAgent(fc.UserAgent))
	}
	if c.Bool("lenient") || fc.Lenient {
		opts = append(opts, xisbn.WithPrefixMatching())
	}
	return xisbn.NewClient(opts...)
}

// requestOptions leaves unset flags absent. Pass-through credentials fall back
// to the config file.
func requestOptions(c *cli.Context, fc fileConfig) xisbn.Options {
	opts := xisbn.Options{
		Method:         flagValue(c, "method"),
		ResponseFormat: flagValue(c, "format"),
		Library:        flagValue(c, "library"),
		StartIndex:     flagValue(c, "start-index"),
		ResultCount:    flagValue(c, "count"),
		AffiliateID:    flagValue(c, "ai"),
		Token:          flagValue(c, "token"),
		Hash:           flagValue(c, "hash"),
	}
	if c.IsSet("fl") {
		opts.Fields = c.StringSlice("fl")
	}

	fallback := []struct {
		dst **string
		v   string
	}{
		{&opts.AffiliateID, fc.AffiliateID},
		{&opts.Token, fc.Token},
		{&opts.Hash, fc.Hash},
	}
	for _, f := range fallback {
		if *f.dst == nil && f.v != "" {
			*f.dst = xisbn.String(f.v)
		}
	}
	return opts
}

func flagValue(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	return xisbn.String(c.String(name))
}

func firstSet(c *cli.Context, name, fallback string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return fallback
}

func exitCode(err error) int {
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return exitTransport
}
