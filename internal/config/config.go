package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"catalog-audit/internal/providers/jupiterp"
)

type Config struct {
	// Catalogs
	JupiterpBaseURL string
	UMDIOBaseURL    string
	PageSize        int
	Semester        string
	Prefix          string
	RequestTimeout  time.Duration

	LogLevel   string
	ReportPath string

	// SFTP
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPKnownHosts            string
	SFTPInsecureIgnoreHostKey bool
}

// setting binds a config key to its env var and default.
type setting struct {
	key string
	env string
	def any
}

var settings = []setting{
	{"jupiterp_base_url", "JUPITERP_BASE_URL", "http://api.jupiterp.com/v0"},
	{"umdio_base_url", "UMDIO_BASE_URL", "http://api.umd.io/v1"},
	{"page_size", "AUDIT_PAGE_SIZE", jupiterp.DefaultPageSize},
	{"semester", "AUDIT_SEMESTER", "202508"},
	{"prefix", "AUDIT_PREFIX", ""},
	{"request_timeout", "AUDIT_REQUEST_TIMEOUT", 30 * time.Second},
	{"log_level", "LOG_LEVEL", "info"},
	{"report_path", "AUDIT_REPORT_PATH", ""},
	{"sftp_host", "SFTP_HOST", ""},
	{"sftp_port", "SFTP_PORT", 22},
	{"sftp_user", "SFTP_USER", ""},
	{"sftp_pass", "SFTP_PASS", ""},
	{"sftp_dir", "SFTP_DIR", "/inbound"},
	{"sftp_known_hosts", "SFTP_KNOWN_HOSTS", ""},
	{"sftp_insecure_ignore_hostkey", "SFTP_INSECURE_IGNORE_HOSTKEY", true},
}

// Load reads .env (if present), the environment and the optional config file
// named by AUDIT_CONFIG.
func Load() (Config, error) {
	return LoadFile(os.Getenv("AUDIT_CONFIG"))
}

// LoadFile is Load with an explicit config file. An empty path means no file.
// Environment variables win over the file; defaults fill the rest.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		if err := v.BindEnv(s.key, s.env); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", s.env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	return Config{
		JupiterpBaseURL: v.GetString("jupiterp_base_url"),
		UMDIOBaseURL:    v.GetString("umdio_base_url"),
		PageSize:        v.GetInt("page_size"),
		Semester:        strings.TrimSpace(v.GetString("semester")),
		Prefix:          NormalizePrefix(v.GetString("prefix")),
		RequestTimeout:  v.GetDuration("request_timeout"),

		LogLevel:   v.GetString("log_level"),
		ReportPath: v.GetString("report_path"),

		SFTPHost:                  v.GetString("sftp_host"),
		SFTPPort:                  v.GetInt("sftp_port"),
		SFTPUser:                  v.GetString("sftp_user"),
		SFTPPass:                  v.GetString("sftp_pass"),
		SFTPDir:                   v.GetString("sftp_dir"),
		SFTPKnownHosts:            v.GetString("sftp_known_hosts"),
		SFTPInsecureIgnoreHostKey: v.GetBool("sftp_insecure_ignore_hostkey"),
	}, nil
}

// Validate checks the settings an audit run depends on.
func (c Config) Validate() error {
	var errs []error

	if err := checkBaseURL("jupiterp base url", c.JupiterpBaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := checkBaseURL("umdio base url", c.UMDIOBaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.PageSize < 1 || c.PageSize > jupiterp.MaxPageSize {
		errs = append(errs, fmt.Errorf("page size %d out of range 1..%d", c.PageSize, jupiterp.MaxPageSize))
	}
	if c.Semester == "" {
		errs = append(errs, errors.New("semester is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func checkBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s %q: want scheme://host", name, raw)
	}
	return nil
}

// NormalizePrefix trims and upper-cases a department prefix. Jupiterp matches
// prefixes case-sensitively and course codes are upper case.
func NormalizePrefix(p string) string {
	return strings.ToUpper(strings.TrimSpace(p))
}
