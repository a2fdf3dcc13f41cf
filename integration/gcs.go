package integration

import (
	"log/slog"

	"github.com/hairyhenderson/go-urlreader/config"
)

// GCSHost is the public host for Google Cloud Storage object URLs.
const GCSHost = "storage.cloud.google.com"

// GCSConfig is a Google Cloud Storage integration, authenticating as a
// service account.
type GCSConfig struct {
	// Host matched against URL hostnames. Defaults to GCSHost.
	Host string
	// ClientEmail is the service account's email address.
	ClientEmail string
	// PrivateKey is the service account's PEM-encoded private key.
	PrivateKey string
}

// ReadGCSConfig reads a single GCS integration entry.
func ReadGCSConfig(c *config.Config) (GCSConfig, error) {
	host, err := optionalString(c, "host", GCSHost)
	if err != nil {
		return GCSConfig{}, err
	}

	email, err := requiredString(c, "clientEmail")
	if err != nil {
		return GCSConfig{}, err
	}

	key, err := requiredString(c, "privateKey")
	if err != nil {
		return GCSConfig{}, err
	}

	return GCSConfig{Host: host, ClientEmail: email, PrivateKey: key}, nil
}

// ReadGCSConfigs reads all valid entries under "integrations.gcs", in order.
func ReadGCSConfigs(cfg *config.Config, logger *slog.Logger) []GCSConfig {
	return readAll(cfg, logger, "integrations.gcs", ReadGCSConfig)
}
