package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadCodecRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"state":"success"}`)

	encoded, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(encoded)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)

	// header length pointing past the buffer
	encoded, err := encodePayload(http.StatusOK, http.Header{}, nil)
	require.NoError(t, err)
	_, _, _, ok = decodePayload(encoded[:6])
	assert.False(t, ok)
}

func TestCacheKeyChangesWithVersion(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/rooms")
		return c
	}

	base := cacheKey("cache", "rooms", "0", newCtx("/v1/rooms?page=1"))
	sameAgain := cacheKey("cache", "rooms", "0", newCtx("/v1/rooms?page=1"))
	assert.Equal(t, base, sameAgain)

	bumped := cacheKey("cache", "rooms", "1", newCtx("/v1/rooms?page=1"))
	assert.NotEqual(t, base, bumped, "a version bump must retire old entries")

	otherQuery := cacheKey("cache", "rooms", "0", newCtx("/v1/rooms?page=2"))
	assert.NotEqual(t, base, otherQuery)
}
