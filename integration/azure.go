package integration

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/hairyhenderson/go-urlreader/config"
)

// AzureBlobHostSuffix is appended to the account name to form the default
// host of an Azure Blob Storage account.
const AzureBlobHostSuffix = "blob.core.windows.net"

// AzureBlobConfig is an Azure Blob Storage integration using a shared
// account key.
type AzureBlobConfig struct {
	// Host matched against URL hostnames. Defaults to
	// "<AccountName>.blob.core.windows.net".
	Host string
	// Endpoint is the blob service URL. Defaults to "https://<Host>".
	Endpoint    string
	AccountName string
	AccountKey  string
}

// ReadAzureBlobConfig reads a single Azure Blob Storage integration entry.
func ReadAzureBlobConfig(c *config.Config) (AzureBlobConfig, error) {
	out := AzureBlobConfig{}

	var err error

	out.AccountName, err = requiredString(c, "accountName")
	if err != nil {
		return out, err
	}

	out.AccountKey, err = requiredString(c, "accountKey")
	if err != nil {
		return out, err
	}

	out.Host, err = optionalString(c, "host", out.AccountName+"."+AzureBlobHostSuffix)
	if err != nil {
		return out, err
	}

	out.Endpoint, err = optionalString(c, "endpoint", "https://"+out.Host)
	if err != nil {
		return out, err
	}

	u, err := url.Parse(out.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return out, fmt.Errorf("invalid %s %q: must be an absolute URL", fullKey(c, "endpoint"), out.Endpoint)
	}

	out.Endpoint = strings.TrimSuffix(out.Endpoint, "/")

	return out, nil
}

// ReadAzureBlobConfigs reads all valid entries under
// "integrations.azureBlobStorage", in order.
func ReadAzureBlobConfigs(cfg *config.Config, logger *slog.Logger) []AzureBlobConfig {
	return readAll(cfg, logger, "integrations.azureBlobStorage", ReadAzureBlobConfig)
}
