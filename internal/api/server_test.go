package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/accounts"
	"fenrir/internal/ledger"
	"fenrir/internal/platform"
	"fenrir/internal/wire"
)

func newTestServer() *Server {
	return New(platform.New(), "")
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s.Handler(), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Up", body)
}

func TestHandleDepositAndAccount(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	rec := doJSON(t, h, http.MethodPost, "/account/deposit", wire.DepositArgs{Signer: "ALICE", Amount: 100})
	assert.Equal(t, http.StatusOK, rec.Code)

	var tx ledger.Tx
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tx))
	assert.Equal(t, ledger.NewDeposit("ALICE", 100), tx)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/account?signer=ALICE", nil)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var balance uint64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balance))
	assert.Equal(t, uint64(100), balance)
}

func TestHandleAccount_UnknownSignerReturns500WithAccountError(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/account?signer=GHOST", nil)
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var accErr accounts.AccountError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accErr))
	assert.Equal(t, accounts.NotFound, accErr.Kind)
	assert.Equal(t, "GHOST", accErr.Signer)
}

func TestHandleSubmitOrder_FullRoundTrip(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	doJSON(t, h, http.MethodPost, "/account/deposit", wire.DepositArgs{Signer: "ALICE", Amount: 100})
	doJSON(t, h, http.MethodPost, "/account/deposit", wire.DepositArgs{Signer: "BOB", Amount: 100})

	rec := doJSON(t, h, http.MethodPost, "/submit_order", wire.OrderArgs{
		Signer: "ALICE", Side: 1 /* Sell */, Price: 10, Amount: 2,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/submit_order", wire.OrderArgs{
		Signer: "BOB", Side: 0 /* Buy */, Price: 10, Amount: 2,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orderbook", nil)
	h.ServeHTTP(rec, req)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleMatchOrder_IsStatelessProbe(t *testing.T) {
	s := newTestServer()
	h := s.Handler()

	body := map[string]any{
		"order": map[string]any{"price": 10, "amount": 1, "side": "Buy", "signer": "BOB"},
		"asks": []map[string]any{
			{"price": 10, "amount": 1, "remaining": 1, "side": "Sell", "signer": "ALICE", "ordinal": 1},
		},
		"bids": []map[string]any{},
	}

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match_order", bytes.NewReader(raw))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result wire.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Receipt.Matches, 1)
	assert.Equal(t, "ALICE", result.Receipt.Matches[0].Signer)
	assert.Empty(t, result.OrderBook)

	// Running it again with the same input produces the same receipt: no
	// persistent side effects leaked across calls.
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodPost, "/match_order", bytes.NewReader(raw))
	h.ServeHTTP(rec2, req2)
	assert.JSONEq(t, rec.Body.String(), rec2.Body.String())
}
