package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pronostico/internal/repository"
)

func TestKeyService(t *testing.T) {
	settings := repository.NewSettingsMemory()
	svc := NewKeyServiceImpl(settings, " env-key ")

	key, err := svc.GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)

	require.NoError(t, svc.SetAPIKey("  saved-key\n"))
	key, err = svc.GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "saved-key", key)

	err = svc.SetAPIKey("   ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "api_key", verr.Field)

	key, err = svc.GetAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "saved-key", key)
}

func TestKeyService_NoDefault(t *testing.T) {
	svc := NewKeyServiceImpl(repository.NewSettingsMemory(), "")

	key, err := svc.GetAPIKey()
	require.NoError(t, err)
	assert.Empty(t, key)
}
