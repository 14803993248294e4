package vpagateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestGateway(t *testing.T, keyName, secret string) (*Gateway, uuid.UUID) {
	t.Helper()
	hash, err := HashSecret(secret)
	if err != nil {
		t.Fatalf("hash secret: %v", err)
	}
	id := uuid.New()
	gw := New([]byte("test-gateway-secret"), []APIKey{{ID: id, Name: keyName, HashedSecret: hash}}, 0)
	return gw, id
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func mustToken(t *testing.T, h http.Handler, keyID uuid.UUID, secret string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/v1/tokens", "", tokenRequest{KeyID: keyID.String(), Secret: secret})
	if rec.Code != http.StatusCreated {
		t.Fatalf("token request: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	return resp.Token
}

func Test_Gateway_token_auth_flow(t *testing.T) {
	assert := assert.New(t)
	gw, keyID := newTestGateway(t, "tester", "hunter2")
	r := gw.Router()

	// wrong secret rejected
	rec := doJSON(t, r, http.MethodPost, "/v1/tokens", "", tokenRequest{KeyID: keyID.String(), Secret: "wrong"})
	assert.Equal(http.StatusUnauthorized, rec.Code)

	// correct secret issues a usable token
	tok := mustToken(t, r, keyID, "hunter2")
	assert.NotEmpty(tok)

	rec = doJSON(t, r, http.MethodPost, "/v1/grammars", "", createGrammarRequest{Grammar: "S:\n  \"a\" -> \"a\"\n"})
	assert.Equal(http.StatusUnauthorized, rec.Code, "missing token must be rejected")

	rec = doJSON(t, r, http.MethodPost, "/v1/grammars", tok, createGrammarRequest{Grammar: "S:\n  \"a\" -> \"a\"\n"})
	assert.Equal(http.StatusCreated, rec.Code)
}

func Test_Gateway_grammar_lifecycle(t *testing.T) {
	assert := assert.New(t)
	gw, keyID := newTestGateway(t, "tester", "hunter2")
	r := gw.Router()
	tok := mustToken(t, r, keyID, "hunter2")

	rec := doJSON(t, r, http.MethodPost, "/v1/grammars", tok, createGrammarRequest{
		Grammar: "N:\n  [\"\\(\" N=N \"\\)\"] -> \"[\" N \"]\"\n  \"a\" -> \"a\"\n",
	})
	if !assert.Equal(http.StatusCreated, rec.Code) {
		return
	}
	var created createGrammarResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); !assert.NoError(err) {
		return
	}

	recognizePath := "/v1/grammars/" + created.ID + "/recognize"
	rec = doJSON(t, r, http.MethodPost, recognizePath, tok, inputRequest{Input: "((a))"})
	var recResp recognizeResponse
	json.Unmarshal(rec.Body.Bytes(), &recResp)
	assert.True(recResp.Accepted)

	translatePath := "/v1/grammars/" + created.ID + "/translate"
	rec = doJSON(t, r, http.MethodPost, translatePath, tok, inputRequest{Input: "((a))"})
	var transResp translateResponse
	json.Unmarshal(rec.Body.Bytes(), &transResp)
	assert.True(transResp.Accepted)
	assert.Equal("[[a]]", transResp.Output)

	parsePath := "/v1/grammars/" + created.ID + "/parse"
	rec = doJSON(t, r, http.MethodPost, parsePath, tok, inputRequest{Input: "z"})
	var parseResp parseResponse
	json.Unmarshal(rec.Body.Bytes(), &parseResp)
	assert.False(parseResp.Accepted)
}

func Test_Gateway_unknown_grammar_id_is_404(t *testing.T) {
	assert := assert.New(t)
	gw, keyID := newTestGateway(t, "tester", "hunter2")
	r := gw.Router()
	tok := mustToken(t, r, keyID, "hunter2")

	rec := doJSON(t, r, http.MethodPost, "/v1/grammars/"+uuid.New().String()+"/recognize", tok, inputRequest{Input: "a"})
	assert.Equal(http.StatusNotFound, rec.Code)
}

func Test_Gateway_grammar_is_scoped_to_owning_key(t *testing.T) {
	assert := assert.New(t)
	hashA, _ := HashSecret("secret-a")
	hashB, _ := HashSecret("secret-b")
	keyA := uuid.New()
	keyB := uuid.New()
	gw := New([]byte("test-gateway-secret"), []APIKey{
		{ID: keyA, Name: "a", HashedSecret: hashA},
		{ID: keyB, Name: "b", HashedSecret: hashB},
	}, 0)
	r := gw.Router()

	tokA := mustToken(t, r, keyA, "secret-a")
	tokB := mustToken(t, r, keyB, "secret-b")

	rec := doJSON(t, r, http.MethodPost, "/v1/grammars", tokA, createGrammarRequest{Grammar: "S:\n  \"a\" -> \"a\"\n"})
	if !assert.Equal(http.StatusCreated, rec.Code) {
		return
	}
	var created createGrammarResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); !assert.NoError(err) {
		return
	}

	recognizePath := "/v1/grammars/" + created.ID + "/recognize"
	rec = doJSON(t, r, http.MethodPost, recognizePath, tokB, inputRequest{Input: "a"})
	assert.Equal(http.StatusNotFound, rec.Code, "key b must not see a grammar owned by key a")

	rec = doJSON(t, r, http.MethodPost, recognizePath, tokA, inputRequest{Input: "a"})
	assert.Equal(http.StatusOK, rec.Code, "key a must still see its own grammar")
}

func Test_Gateway_healthz_requires_no_auth(t *testing.T) {
	assert := assert.New(t)
	gw, _ := newTestGateway(t, "tester", "hunter2")
	r := gw.Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(http.StatusOK, rec.Code)
}

func Test_Gateway_unauthed_errors_are_delayed(t *testing.T) {
	assert := assert.New(t)
	hash, _ := HashSecret("hunter2")
	keyID := uuid.New()
	gw := New([]byte("sekret"), []APIKey{{ID: keyID, Name: "tester", HashedSecret: hash}}, 10*time.Millisecond)
	r := gw.Router()

	start := time.Now()
	rec := doJSON(t, r, http.MethodPost, "/v1/grammars", "", createGrammarRequest{Grammar: "S:\n  \"a\" -> \"a\"\n"})
	elapsed := time.Since(start)
	assert.Equal(http.StatusUnauthorized, rec.Code)
	assert.GreaterOrEqual(elapsed, 10*time.Millisecond)
}
