package urlreader

import (
	"net/url"
	"strings"
)

// Predicate decides whether a reader is responsible for a URL.
type Predicate interface {
	Match(u *url.URL) bool
}

// PredicateFunc adapts an ordinary function to a Predicate.
type PredicateFunc func(u *url.URL) bool

// Match - implements Predicate
func (f PredicateFunc) Match(u *url.URL) bool {
	if f == nil || u == nil {
		return false
	}

	return f(u)
}

// HostPredicate matches URLs whose hostname is exactly the given host. Ports,
// paths and query strings are not considered, and the comparison is
// case-insensitive.
type HostPredicate string

var (
	_ Predicate = PredicateFunc(nil)
	_ Predicate = HostPredicate("")
	_ Predicate = HostSuffixPredicate("")
)

// Match - implements Predicate
func (h HostPredicate) Match(u *url.URL) bool {
	if u == nil || h == "" {
		return false
	}

	return strings.EqualFold(u.Hostname(), string(h))
}

func (h HostPredicate) String() string {
	return "host=" + string(h)
}

// HostSuffixPredicate matches URLs whose hostname is the given host or any
// subdomain of it. "bucket.s3.amazonaws.com" matches "amazonaws.com", but
// "notamazonaws.com" does not.
type HostSuffixPredicate string

// Match - implements Predicate
func (h HostSuffixPredicate) Match(u *url.URL) bool {
	if u == nil || h == "" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	suffix := strings.ToLower(string(h))

	return host == suffix || strings.HasSuffix(host, "."+suffix)
}

func (h HostSuffixPredicate) String() string {
	return "host=*." + string(h)
}
