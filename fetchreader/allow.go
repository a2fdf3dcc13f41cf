package fetchreader

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"path"
	"strings"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/config"
	"github.com/hairyhenderson/go-urlreader/internal"
)

const allowKey = "backend.reading.allow"

// AllowRule permits reading from a host, optionally restricted to some path
// prefixes.
type AllowRule struct {
	// Host is a hostname, optionally with a port. A leading "*." matches any
	// subdomain, but not the domain itself.
	Host string
	// Paths are allowed path prefixes. All paths are allowed when empty.
	Paths []string
}

var _ urlreader.Predicate = AllowRule{}

// ReadAllowRule reads a single allow rule.
func ReadAllowRule(c *config.Config) (AllowRule, error) {
	host, err := c.String("host")
	if err != nil {
		return AllowRule{}, err
	}

	if host == "" || strings.ContainsAny(host, "/?#") {
		return AllowRule{}, fmt.Errorf("invalid host %q", host)
	}

	paths, _, err := c.OptionalStringArray("paths")
	if err != nil {
		return AllowRule{}, err
	}

	for _, p := range paths {
		if !strings.HasPrefix(p, "/") {
			return AllowRule{}, fmt.Errorf("invalid path %q: must be absolute", p)
		}
	}

	return AllowRule{Host: strings.ToLower(host), Paths: paths}, nil
}

// ReadAllowRules reads all valid rules under "backend.reading.allow". Invalid
// rules are logged and skipped.
func ReadAllowRules(cfg *config.Config, logger *slog.Logger) []AllowRule {
	logger = internal.LoggerOrDiscard(logger)

	items, ok, err := cfg.OptionalArray(allowKey)
	if err != nil {
		logger.Warn("ignoring fetch allow list", slog.String("key", allowKey), slog.Any("err", err))

		return []AllowRule{}
	}

	if !ok {
		return []AllowRule{}
	}

	rules := make([]AllowRule, 0, len(items))

	for i, item := range items {
		c, err := cfg.Element(allowKey, i, item)
		if err != nil {
			logger.Debug("skipping invalid allow rule", slog.Int("index", i), slog.Any("err", err))

			continue
		}

		rule, err := ReadAllowRule(c)
		if err != nil {
			logger.Debug("skipping invalid allow rule", slog.Int("index", i), slog.Any("err", err))

			continue
		}

		rules = append(rules, rule)
	}

	return rules
}

// Match - implements urlreader.Predicate
func (a AllowRule) Match(u *url.URL) bool {
	if u == nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	return a.matchHost(u) && a.matchPath(u)
}

func (a AllowRule) matchHost(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	ruleHost := a.Host

	if h, port, err := net.SplitHostPort(a.Host); err == nil {
		if u.Port() != port {
			return false
		}

		ruleHost = h
	}

	if suffix, ok := strings.CutPrefix(ruleHost, "*"); ok {
		return strings.HasPrefix(suffix, ".") && strings.HasSuffix(host, suffix) && len(host) > len(suffix)
	}

	return host == ruleHost
}

func (a AllowRule) matchPath(u *url.URL) bool {
	if len(a.Paths) == 0 {
		return true
	}

	p := path.Clean("/" + u.Path)
	if strings.HasSuffix(u.Path, "/") && p != "/" {
		p += "/"
	}

	for _, prefix := range a.Paths {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}

	return false
}

func (a AllowRule) String() string {
	if len(a.Paths) == 0 {
		return "host=" + a.Host
	}

	return fmt.Sprintf("host=%s, paths=%s", a.Host, strings.Join(a.Paths, ","))
}

// AllowList matches a URL allowed by any of its rules.
type AllowList []AllowRule

var _ urlreader.Predicate = AllowList(nil)

// Match - implements urlreader.Predicate
func (l AllowList) Match(u *url.URL) bool {
	for _, rule := range l {
		if rule.Match(u) {
			return true
		}
	}

	return false
}

func (l AllowList) String() string {
	s := make([]string, len(l))
	for i, rule := range l {
		s[i] = "(" + rule.String() + ")"
	}

	return "allow=" + strings.Join(s, " ")
}
