package vpagateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type endpointFunc func(req *http.Request) result

// endpoint wraps an endpointFunc into an http.HandlerFunc, recovering from
// panics and writing whatever result the func produced.
func (gw *Gateway) endpoint(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		ep(req).write(w, req)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) {
	if p := recover(); p != nil {
		errResult(http.StatusInternalServerError, "an internal server error occurred",
			"panic: %v\n%s", p, debug.Stack()).write(w, req)
	}
}

func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if contentType != "" && contentType != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(body))
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}
	return nil
}

func requireGrammarID(req *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(req, "id")
	if idStr == "" {
		return uuid.UUID{}, fmt.Errorf("parameter does not exist")
	}
	return uuid.Parse(idStr)
}

type tokenRequest struct {
	KeyID  string `json:"key_id"`
	Secret string `json:"secret"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// epCreateToken exchanges an API key ID and secret for a bearer token.
func (gw *Gateway) epCreateToken(req *http.Request) result {
	var body tokenRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	keyID, err := uuid.Parse(body.KeyID)
	if err != nil {
		return jsonBadRequest("key_id: not a valid ID", "bad key_id: %s", err.Error())
	}

	gw.mu.RLock()
	key, ok := gw.keys[keyID]
	gw.mu.RUnlock()
	if !ok || !checkSecret(key, body.Secret) {
		return jsonUnauthorized("invalid key or secret", "key '%s': bad credentials", body.KeyID)
	}

	tok, err := generateToken(gw.secret, key)
	if err != nil {
		return jsonInternalServerError("generate token: " + err.Error())
	}

	return jsonCreated(tokenResponse{Token: tok}, "key '%s' issued token", key.Name)
}

type createGrammarRequest struct {
	Grammar string `json:"grammar"`
}

type createGrammarResponse struct {
	ID string `json:"id"`
}

// epCreateGrammar compiles a grammar and stores the resulting
// recognizer/translator pair under a new ID.
func (gw *Gateway) epCreateGrammar(req *http.Request) result {
	var body createGrammarRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}
	if body.Grammar == "" {
		return jsonBadRequest("grammar: property is empty or missing from request", "empty grammar")
	}

	owner, _ := authenticatedKey(req)
	id, err := gw.compile(body.Grammar, owner)
	if err != nil {
		return jsonBadRequest(err.Error(), "grammar compile failed: %s", err.Error())
	}

	return jsonCreated(createGrammarResponse{ID: id.String()}, "compiled grammar %s", id)
}

type inputRequest struct {
	Input string `json:"input"`
}

type recognizeResponse struct {
	Accepted bool `json:"accepted"`
}

func (gw *Gateway) epRecognize(req *http.Request) result {
	id, err := requireGrammarID(req)
	if err != nil {
		return jsonBadRequest("id: not a valid grammar ID", err.Error())
	}
	owner, _ := authenticatedKey(req)
	g, ok := gw.grammar(id, owner)
	if !ok {
		return jsonNotFound("grammar %s not found", id)
	}

	var body inputRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	accepted := g.recognizer.Recognize(normalizeInput(body.Input))
	return jsonOK(recognizeResponse{Accepted: accepted}, "grammar %s: recognize -> %t", id, accepted)
}

type parseResponse struct {
	Accepted bool        `json:"accepted"`
	Tree     interface{} `json:"tree,omitempty"`
}

func (gw *Gateway) epParse(req *http.Request) result {
	id, err := requireGrammarID(req)
	if err != nil {
		return jsonBadRequest("id: not a valid grammar ID", err.Error())
	}
	owner, _ := authenticatedKey(req)
	g, ok := gw.grammar(id, owner)
	if !ok {
		return jsonNotFound("grammar %s not found", id)
	}

	var body inputRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	tree, _, accepted := g.recognizer.Parse(normalizeInput(body.Input))
	if !accepted {
		return jsonOK(parseResponse{Accepted: false}, "grammar %s: parse rejected", id)
	}
	return jsonOK(parseResponse{Accepted: true, Tree: nodeToJSON(tree)}, "grammar %s: parse accepted", id)
}

type translateResponse struct {
	Accepted bool   `json:"accepted"`
	Output   string `json:"output,omitempty"`
}

func (gw *Gateway) epTranslate(req *http.Request) result {
	id, err := requireGrammarID(req)
	if err != nil {
		return jsonBadRequest("id: not a valid grammar ID", err.Error())
	}
	owner, _ := authenticatedKey(req)
	g, ok := gw.grammar(id, owner)
	if !ok {
		return jsonNotFound("grammar %s not found", id)
	}

	var body inputRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error(), err.Error())
	}

	output, ok := g.translator.Translate(normalizeInput(body.Input))
	if !ok {
		return jsonOK(translateResponse{Accepted: false}, "grammar %s: translate rejected", id)
	}
	return jsonOK(translateResponse{Accepted: true, Output: output}, "grammar %s: translate accepted", id)
}

func (gw *Gateway) epHealthz(req *http.Request) result {
	return jsonOK(map[string]string{"status": "ok"}, "health check")
}
