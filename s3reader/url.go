package s3reader

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hairyhenderson/go-urlreader"
	"github.com/hairyhenderson/go-urlreader/integration"
)

const defaultRegion = "us-east-1"

// location identifies an object (or prefix) in a bucket.
type location struct {
	bucket string
	key    string
	region string
}

// parseURL interprets u according to the integration's addressing style.
func parseURL(u *url.URL, cfg integration.AWSS3Config) (location, error) {
	if !urlreader.HostSuffixPredicate(cfg.Host).Match(u) {
		return location{}, fmt.Errorf("%w: %s does not belong to host %s",
			urlreader.ErrInvalidURL, u.Redacted(), cfg.Host)
	}

	p := strings.TrimPrefix(u.Path, "/")

	if cfg.S3ForcePathStyle || cfg.Endpoint != "" {
		return pathStyle(u, p, regionOr(cfg.Region, ""))
	}

	host := strings.ToLower(u.Hostname())
	sub := strings.TrimSuffix(strings.TrimSuffix(host, strings.ToLower(cfg.Host)), ".")

	bucket, region, ok := splitS3Host(sub)
	if !ok {
		return location{}, fmt.Errorf("%w: %s is not an S3 URL", urlreader.ErrInvalidURL, u.Redacted())
	}

	region = regionOr(region, cfg.Region)

	if bucket == "" {
		return pathStyle(u, p, region)
	}

	return location{bucket: bucket, key: p, region: region}, nil
}

func pathStyle(u *url.URL, p, region string) (location, error) {
	bucket, key, _ := strings.Cut(p, "/")
	if bucket == "" {
		return location{}, fmt.Errorf("%w: no bucket in %s", urlreader.ErrInvalidURL, u.Redacted())
	}

	return location{bucket: bucket, key: key, region: region}, nil
}

// splitS3Host splits the part of a hostname in front of the S3 domain into
// the bucket (empty for path-style hosts) and region (empty when absent).
// Bucket names may contain dots, so the rightmost "s3" label is used.
func splitS3Host(sub string) (bucket, region string, ok bool) {
	labels := strings.Split(sub, ".")

	for i := len(labels) - 1; i >= 0; i-- {
		l := labels[i]

		switch {
		case l == "s3":
		case strings.HasPrefix(l, "s3-"):
			switch region = strings.TrimPrefix(l, "s3-"); region {
			case "external-1":
				region = defaultRegion
			case "accelerate":
				region = ""
			}
		default:
			continue
		}

		rest := labels[i+1:]
		if region == "" && len(rest) > 0 {
			region = rest[len(rest)-1]
		}

		return strings.Join(labels[:i], "."), region, true
	}

	return "", "", false
}

func regionOr(region, def string) string {
	switch {
	case region != "":
		return region
	case def != "":
		return def
	default:
		return defaultRegion
	}
}
