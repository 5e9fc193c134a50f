package database

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/TFMV/azquery/pkg/config"
	"github.com/TFMV/azquery/pkg/errors"
)

// BuildDSN renders the connection string for kind from cfg.
func BuildDSN(kind Kind, cfg *config.ConnectionConfig) (string, error) {
	if cfg == nil {
		return "", errors.New(errors.CodeConfiguration, "connection config is required")
	}

	switch kind {
	case KindSQLServer:
		return sqlServerURL(cfg, false), nil
	case KindAzureAD:
		return sqlServerURL(cfg, true), nil
	case KindPostgres:
		return postgresDSN(cfg), nil
	case KindDuckDB:
		return cfg.Database, nil
	case KindODBC:
		return odbcDSN(cfg), nil
	default:
		return "", errors.New(errors.CodeConfiguration, fmt.Sprintf("unsupported driver kind %d", kind))
	}
}

// splitServer pulls the host, port and named instance out of the forms SQL
// Server tooling accepts: "host", "host:port", "tcp:host,port", "host\instance".
func splitServer(server string, port int) (host string, p int, instance string) {
	host = strings.TrimSpace(server)
	host = strings.TrimPrefix(host, "tcp:")
	p = port

	if i := strings.Index(host, `\`); i >= 0 {
		host, instance = host[:i], host[i+1:]
	}
	if i := strings.LastIndex(host, ","); i >= 0 {
		if n, err := strconv.Atoi(host[i+1:]); err == nil && p == 0 {
			p = n
		}
		host = host[:i]
	}
	if h, ps, err := net.SplitHostPort(host); err == nil {
		if n, err := strconv.Atoi(ps); err == nil && p == 0 {
			p = n
		}
		host = h
	}
	return host, p, instance
}

func sqlServerURL(cfg *config.ConnectionConfig, azureAD bool) string {
	host, port, instance := splitServer(cfg.Server, cfg.Port)
	if port > 0 {
		host = net.JoinHostPort(host, strconv.Itoa(port))
	}

	q := url.Values{}
	q.Set("database", cfg.Database)
	if azureAD {
		q.Set("fedauth", "ActiveDirectoryPassword")
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     host,
		RawQuery: q.Encode(),
	}
	if instance != "" {
		u.Path = instance
	}
	return u.String()
}

func postgresDSN(cfg *config.ConnectionConfig) string {
	host, port, _ := splitServer(cfg.Server, cfg.Port)

	parts := []string{"host=" + quotePQ(host)}
	if port > 0 {
		parts = append(parts, "port="+strconv.Itoa(port))
	}
	parts = append(parts,
		"user="+quotePQ(cfg.Username),
		"password="+quotePQ(cfg.Password),
		"dbname="+quotePQ(cfg.Database),
	)
	return strings.Join(parts, " ")
}

// quotePQ quotes a libpq keyword value when it is empty or has spaces,
// quotes or backslashes.
func quotePQ(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func odbcDSN(cfg *config.ConnectionConfig) string {
	driver := strings.TrimSpace(cfg.Driver)
	if !strings.HasPrefix(driver, "{") {
		driver = "{" + driver + "}"
	}

	server := strings.TrimSpace(cfg.Server)
	if cfg.Port > 0 {
		server = fmt.Sprintf("%s,%d", server, cfg.Port)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DRIVER=%s;", driver)
	fmt.Fprintf(&b, "SERVER=%s;", odbcValue(server))
	fmt.Fprintf(&b, "DATABASE=%s;", odbcValue(cfg.Database))
	fmt.Fprintf(&b, "UID=%s;", odbcValue(cfg.Username))
	fmt.Fprintf(&b, "PWD=%s;", odbcValue(cfg.Password))
	return b.String()
}

// odbcValue braces attribute values that would otherwise break the
// connection string.
func odbcValue(v string) string {
	if !strings.ContainsAny(v, ";{}=") && strings.TrimSpace(v) == v {
		return v
	}
	return "{" + strings.ReplaceAll(v, "}", "}}") + "}"
}
