package integration

import (
	"testing"

	"github.com/hairyhenderson/go-urlreader/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAzureBlobConfig(t *testing.T) {
	actual, err := ReadAzureBlobConfig(config.New(map[string]any{
		"accountName": "myaccount",
		"accountKey":  "a2V5",
	}))
	require.NoError(t, err)
	assert.Equal(t, AzureBlobConfig{
		Host:        "myaccount.blob.core.windows.net",
		Endpoint:    "https://myaccount.blob.core.windows.net",
		AccountName: "myaccount",
		AccountKey:  "a2V5",
	}, actual)

	actual, err = ReadAzureBlobConfig(config.New(map[string]any{
		"accountName": "devstoreaccount1",
		"accountKey":  "a2V5",
		"host":        "127.0.0.1",
		"endpoint":    "http://127.0.0.1:10000/devstoreaccount1/",
	}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", actual.Host)
	assert.Equal(t, "http://127.0.0.1:10000/devstoreaccount1", actual.Endpoint)

	_, err = ReadAzureBlobConfig(config.New(map[string]any{"accountName": "myaccount"}))
	require.ErrorIs(t, err, config.ErrMissing)

	_, err = ReadAzureBlobConfig(config.New(map[string]any{"accountKey": "a2V5"}))
	require.ErrorIs(t, err, config.ErrMissing)

	_, err = ReadAzureBlobConfig(config.New(map[string]any{
		"accountName": "a", "accountKey": "b", "endpoint": "not a url",
	}))
	require.Error(t, err)
}

func TestReadAzureBlobConfigs(t *testing.T) {
	cfg := config.New(map[string]any{"integrations": map[string]any{"azureBlobStorage": []any{
		map[string]any{"accountName": "one", "accountKey": "k1"},
		map[string]any{"accountName": "two"},
		map[string]any{"accountName": "three", "accountKey": "k3"},
	}}})

	actual := ReadAzureBlobConfigs(cfg, nil)
	require.Len(t, actual, 2)
	assert.Equal(t, "one", actual[0].AccountName)
	assert.Equal(t, "three", actual[1].AccountName)
}
