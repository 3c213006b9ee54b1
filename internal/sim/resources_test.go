package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"driftlab.io/driftlab/internal/domain"
	apperrors "driftlab.io/driftlab/internal/pkg/errors"
)

func TestResourceLifecycle_Ready(t *testing.T) {
	s := newTestSim(t, nil)

	res := s.CreateResource("database", map[string]any{"size": "small"})
	require.Equal(t, domain.ResourceProvisioning, res.Status)
	require.Empty(t, res.Endpoint)

	eventually(t, 2*time.Second, func() bool {
		got, _ := s.GetResource(res.ID)
		return got.Status == domain.ResourceInitializing
	}, "resource never reached initializing")

	eventually(t, 2*time.Second, func() bool {
		got, _ := s.GetResource(res.ID)
		return got.Status == domain.ResourceReady
	}, "resource never became ready")

	got, err := s.GetResource(res.ID)
	require.NoError(t, err)
	require.Contains(t, got.Endpoint, res.ID)
}

func TestResourceLifecycle_Error(t *testing.T) {
	s := newTestSim(t, func(c *Config) { c.ResourceSuccessRate = 0 })

	res := s.CreateResource("database", nil)

	eventually(t, 2*time.Second, func() bool {
		got, _ := s.GetResource(res.ID)
		return got.Status == domain.ResourceError
	}, "resource never errored")

	got, _ := s.GetResource(res.ID)
	require.Equal(t, "Provisioning failed - insufficient capacity", got.Error)
	require.Empty(t, got.Endpoint)
}

func TestConnectResource_GatedOnReady(t *testing.T) {
	s := newTestSim(t, func(c *Config) {
		// Hold the resource in provisioning while we probe.
		c.ResourceInitDelay = time.Hour
	})

	res := s.CreateResource("cache", nil)

	_, err := s.ConnectResource(res.ID)
	appErr, ok := apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeResourceNotReady, appErr.Code)
	require.Equal(t, 503, appErr.HTTPStatus)

	_, err = s.ConnectResource("missing")
	appErr, ok = apperrors.IsAppError(err)
	require.True(t, ok)
	require.Equal(t, apperrors.CodeResourceNotFound, appErr.Code)
}

func TestConnectResource_FreshCredentialPerCall(t *testing.T) {
	s := newTestSim(t, nil)

	res := s.CreateResource("cache", nil)
	eventually(t, 2*time.Second, func() bool {
		got, _ := s.GetResource(res.ID)
		return got.Status == domain.ResourceReady
	}, "resource never became ready")

	first, err := s.ConnectResource(res.ID)
	require.NoError(t, err)
	second, err := s.ConnectResource(res.ID)
	require.NoError(t, err)

	require.Equal(t, first.ConnectionString, second.ConnectionString)
	require.Equal(t, "demo", first.Credentials.User)
	require.NotEqual(t, first.Credentials.Token, second.Credentials.Token,
		"each connect must mint a fresh credential")
}
