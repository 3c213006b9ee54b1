package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
	"driftlab.io/driftlab/internal/sim"
)

func createUser(t *testing.T, r *gin.Engine, username, bio string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
		"username": username,
		"bio":      bio,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)["user_id"].(string)
}

func TestCreateUser_CanonicalReadImmediate(t *testing.T) {
	_, r := newTestServer(t, nil)

	id := createUser(t, r, "alice", "security researcher")

	got := doJSON(t, r, http.MethodGet, "/api/users/"+id, nil)
	require.Equal(t, http.StatusOK, got.Code)
	require.Equal(t, "alice", decodeBody(t, got)["username"])
}

func TestPublicProfile_LagsBehindCanonical(t *testing.T) {
	_, r := newTestServer(t, func(c *sim.Config) { c.CachedAfter = time.Hour })

	id := createUser(t, r, "bob", "bio here")

	// Canonical read works at once; the cached view has not caught up.
	pub := doJSON(t, r, http.MethodGet, "/api/users/"+id+"/public", nil)
	require.Equal(t, http.StatusNotFound, pub.Code)
	assertErrorCode(t, pub, apperrors.CodeNotYetPropagated)
}

func TestPublicProfile_AfterPropagation(t *testing.T) {
	_, r := newTestServer(t, nil)

	id := createUser(t, r, "carol", "likes graphs")

	eventually(t, 2*time.Second, func() bool {
		pub := doJSON(t, r, http.MethodGet, "/api/users/"+id+"/public", nil)
		return pub.Code == http.StatusOK
	}, "cached view never filled")

	pub := decodeBody(t, doJSON(t, r, http.MethodGet, "/api/users/"+id+"/public", nil))
	require.Equal(t, "carol", pub["username"])
	require.Equal(t, "likes graphs", pub["bio"])
	// Public projection never includes email or id.
	require.NotContains(t, pub, "email")
	require.NotContains(t, pub, "id")
}

func TestPublicProfile_UnknownUser(t *testing.T) {
	_, r := newTestServer(t, nil)

	pub := doJSON(t, r, http.MethodGet, "/api/users/nope/public", nil)
	require.Equal(t, http.StatusNotFound, pub.Code)
	assertErrorCode(t, pub, apperrors.CodeUserNotFound)
}

func TestSearch_OnlySeesSearchView(t *testing.T) {
	_, r := newTestServer(t, func(c *sim.Config) { c.SearchAfter = time.Hour })

	createUser(t, r, "dave", "kernel hacker")

	res := decodeBody(t, doJSON(t, r, http.MethodGet, "/api/search?q=dave", nil))
	require.Empty(t, res["results"])
}

func TestSearch_MatchesAfterPropagation(t *testing.T) {
	_, r := newTestServer(t, nil)

	createUser(t, r, "erin", "Fuzzing Enthusiast")

	eventually(t, 2*time.Second, func() bool {
		res := decodeBody(t, doJSON(t, r, http.MethodGet, "/api/search?q=fuzzing", nil))
		return len(res["results"].([]any)) == 1
	}, "search view never filled")
}

func TestAnalytics_SlowestTier(t *testing.T) {
	_, r := newTestServer(t, nil)

	createUser(t, r, "frank", "has a bio")

	res := decodeBody(t, doJSON(t, r, http.MethodGet, "/api/analytics/users", nil))
	require.EqualValues(t, 0, res["total_users"])

	eventually(t, 2*time.Second, func() bool {
		res := decodeBody(t, doJSON(t, r, http.MethodGet, "/api/analytics/users", nil))
		return res["total_users"].(float64) == 1
	}, "analytics view never filled")

	res = decodeBody(t, doJSON(t, r, http.MethodGet, "/api/analytics/users", nil))
	agg := res["aggregated_data"].(map[string]any)
	require.EqualValues(t, 1, agg["with_bio"])
	require.EqualValues(t, 0, agg["with_email"])
}

func TestFeed_IncludesJoinsAndOrderActivity(t *testing.T) {
	_, r := newTestServer(t, nil)

	createUser(t, r, "grace", "bio")
	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"product_id": "widget",
		"quantity":   1,
	})
	id := decodeBody(t, w)["order_id"].(string)

	eventually(t, 2*time.Second, func() bool {
		got := doJSON(t, r, http.MethodGet, "/api/orders/"+id, nil)
		return decodeBody(t, got)["status"] == "completed"
	}, "order never completed")

	feed := decodeBody(t, doJSON(t, r, http.MethodGet, "/api/feed", nil))["feed"].([]any)
	var types []string
	for _, item := range feed {
		types = append(types, item.(map[string]any)["type"].(string))
	}
	require.Contains(t, types, "user_joined")
	require.Contains(t, types, "order_processing")
}
