package integration

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/hairyhenderson/go-urlreader/config"
)

// AWSHost is the parent domain of all public AWS S3 endpoints.
const AWSHost = "amazonaws.com"

// AWSS3Config is an AWS S3 (or S3-compatible) integration.
type AWSS3Config struct {
	// Host matched against URL hostnames, including subdomains. Defaults to
	// AWSHost, or to the endpoint's hostname when Endpoint is set.
	Host string
	// Endpoint overrides the S3 service endpoint, for S3-compatible stores.
	Endpoint string
	// Region used when a URL doesn't specify one.
	Region string
	// AccessKeyID and SecretAccessKey are static credentials. When both are
	// empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
	// S3ForcePathStyle indicates that URLs carry the bucket as the first path
	// segment rather than in the hostname.
	S3ForcePathStyle bool
}

// ReadAWSS3Config reads a single AWS S3 integration entry.
func ReadAWSS3Config(c *config.Config) (AWSS3Config, error) {
	out := AWSS3Config{}

	var err error

	out.Endpoint, err = optionalString(c, "endpoint", "")
	if err != nil {
		return out, err
	}

	defHost := AWSHost

	if out.Endpoint != "" {
		u, err := url.Parse(out.Endpoint)
		if err != nil || u.Scheme == "" || u.Hostname() == "" {
			return out, fmt.Errorf("invalid %s %q: must be an absolute URL", fullKey(c, "endpoint"), out.Endpoint)
		}

		defHost = u.Hostname()
	}

	out.Host, err = optionalString(c, "host", defHost)
	if err != nil {
		return out, err
	}

	out.Region, err = optionalString(c, "region", "")
	if err != nil {
		return out, err
	}

	forcePathStyle, _, err := c.OptionalBool("s3ForcePathStyle")
	if err != nil {
		return out, err
	}

	out.S3ForcePathStyle = forcePathStyle

	out.AccessKeyID, err = optionalString(c, "accessKeyId", "")
	if err != nil {
		return out, err
	}

	out.SecretAccessKey, err = optionalString(c, "secretAccessKey", "")
	if err != nil {
		return out, err
	}

	if (out.AccessKeyID == "") != (out.SecretAccessKey == "") {
		return out, errors.New("accessKeyId and secretAccessKey must be given together")
	}

	return out, nil
}

// ReadAWSS3Configs reads all valid entries under "integrations.awsS3", in
// order.
func ReadAWSS3Configs(cfg *config.Config, logger *slog.Logger) []AWSS3Config {
	return readAll(cfg, logger, "integrations.awsS3", ReadAWSS3Config)
}
