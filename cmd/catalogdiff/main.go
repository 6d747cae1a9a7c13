// Command catalogdiff compares the Jupiterp course catalog with the umd.io
// course list of one semester and prints the codes found in only one of them.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-audit/internal/audit"
	"catalog-audit/internal/config"
	"catalog-audit/internal/export"
	"catalog-audit/internal/logger"
	"catalog-audit/internal/providers/jupiterp"
	"catalog-audit/internal/providers/umdio"
	"catalog-audit/internal/sftpclient"
)

type uploadFunc func(ctx context.Context, cfg sftpclient.Config, localPath, remoteName string) error

// env is everything run needs from the outside world.
type env struct {
	Log       logrus.FieldLogger
	Stdout    io.Writer
	Transport http.RoundTripper // nil means http.DefaultTransport
	Upload    uploadFunc
}

func main() {
	var (
		configPath = flag.String("config", os.Getenv("AUDIT_CONFIG"), "optional config file (yaml, json or toml)")
		semester   = flag.String("semester", "", "umd.io semester code, e.g. 202508")
		prefix     = flag.String("prefix", "", "only compare courses of this department, e.g. CMSC")
		pageSize   = flag.Int("page-size", 0, "jupiterp page size (1..500)")
		outPath    = flag.String("out", "", "also write the diff to this file (.csv or .json)")
		uploadSFTP = flag.Bool("sftp", false, "upload the -out file via SFTP")
	)
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}
	if *semester != "" {
		cfg.Semester = *semester
	}
	if *prefix != "" {
		cfg.Prefix = config.NormalizePrefix(*prefix)
	}
	if *pageSize != 0 {
		cfg.PageSize = *pageSize
	}
	if *outPath != "" {
		cfg.ReportPath = *outPath
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}

	log, err := logger.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		logrus.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *uploadSFTP, env{
		Log:    log,
		Stdout: os.Stdout,
		Upload: sftpclient.UploadFile,
	})
	stop()
	if err != nil {
		log.WithError(err).Error("audit failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, uploadSFTP bool, e env) error {
	if uploadSFTP && cfg.ReportPath == "" {
		return errors.New("sftp upload needs a report path (-out or AUDIT_REPORT_PATH)")
	}

	jc := jupiterp.New(cfg.JupiterpBaseURL, cfg.RequestTimeout, e.Log)
	uc := umdio.New(cfg.UMDIOBaseURL, cfg.RequestTimeout, e.Log)
	if e.Transport != nil {
		jc.HTTP.Transport = e.Transport
		uc.HTTP.Transport = e.Transport
	}

	// The server filter and the local filter must see the same prefix.
	prefix := config.NormalizePrefix(cfg.Prefix)
	res, err := audit.Run(ctx, audit.Options{
		A:      jupiterp.Provider{C: jc, PageSize: cfg.PageSize, Prefix: prefix},
		B:      umdio.Provider{C: uc, Semester: cfg.Semester},
		Prefix: prefix,
		Log:    e.Log,
	})
	if err != nil {
		return err
	}

	if err := export.WriteText(e.Stdout, res); err != nil {
		return err
	}

	if cfg.ReportPath == "" {
		return nil
	}
	if err := export.WriteReportFile(cfg.ReportPath, res); err != nil {
		return err
	}
	e.Log.WithField("path", cfg.ReportPath).Info("wrote report")

	if !uploadSFTP {
		return nil
	}

	upCfg := sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		KnownHostsFile:        cfg.SFTPKnownHosts,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
	}

	upCtx, upCancel := context.WithTimeout(ctx, 5*time.Minute)
	defer upCancel()

	remoteName := filepath.Base(cfg.ReportPath)
	if err := e.Upload(upCtx, upCfg, cfg.ReportPath, remoteName); err != nil {
		return err
	}
	e.Log.WithFields(logrus.Fields{
		"addr": upCfg.Addr(),
		"dir":  upCfg.RemoteDir,
		"file": remoteName,
	}).Info("uploaded report")
	return nil
}
