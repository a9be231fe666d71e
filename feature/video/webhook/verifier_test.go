package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"media-manager/feature/video/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func signBody(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifier_Verify(t *testing.T) {
	v := NewVerifier(testSecret, false)
	body := []byte(`{"type": "asset.created", "data": {"id": "asset-1"}}`)
	header := signBody(testSecret, time.Now().Unix(), body)

	ev, err := v.Verify(body, header)
	require.NoError(t, err)
	assert.Equal(t, state.EventAssetCreated, ev.Type)
	assert.Equal(t, "asset-1", ev.ProviderAssetID)
}

func TestVerifier_WrongSecret(t *testing.T) {
	v := NewVerifier(testSecret, false)
	body := []byte(`{"type": "asset.created", "data": {}}`)
	header := signBody("whsec_other", time.Now().Unix(), body)

	_, err := v.Verify(body, header)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestVerifier_TamperedBody(t *testing.T) {
	v := NewVerifier(testSecret, false)
	body := []byte(`{"type": "asset.created", "data": {"id": "asset-1"}}`)
	header := signBody(testSecret, time.Now().Unix(), body)

	tampered := []byte(`{"type": "asset.created", "data": {"id": "asset-2"}}`)
	_, err := v.Verify(tampered, header)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestVerifier_MalformedHeader(t *testing.T) {
	v := NewVerifier(testSecret, false)
	body := []byte(`{}`)

	for _, header := range []string{"", "v1=abc", "t=123", "garbage"} {
		_, err := v.Verify(body, header)
		assert.ErrorIs(t, err, ErrVerification, "header %q", header)
	}
}

func TestVerifier_StaleTimestamp(t *testing.T) {
	v := NewVerifier(testSecret, false)
	body := []byte(`{"type": "asset.created", "data": {}}`)
	header := signBody(testSecret, time.Now().Add(-time.Hour).Unix(), body)

	_, err := v.Verify(body, header)
	assert.ErrorIs(t, err, ErrVerification)
}

func TestVerifier_MultipleDigests(t *testing.T) {
	v := NewVerifier(testSecret, false)
	body := []byte(`{"type": "asset.ready", "data": {"id": "asset-1"}}`)
	// Secret rotation can send more than one digest; any match passes.
	header := signBody(testSecret, time.Now().Unix(), body) + ",v1=deadbeef"

	ev, err := v.Verify(body, header)
	require.NoError(t, err)
	assert.Equal(t, state.EventAssetReady, ev.Type)
}

func TestVerifier_SkipMode(t *testing.T) {
	v := NewVerifier("", true)
	body := []byte(`{"type": "asset.errored", "data": {"id": "asset-1"}}`)

	ev, err := v.Verify(body, "")
	require.NoError(t, err)
	assert.Equal(t, state.EventAssetErrored, ev.Type)
}
