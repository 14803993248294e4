// Package vpagateway exposes the VPL generator as an HTTP service: grammars
// are uploaded and compiled once, then addressed by ID for recognize, parse,
// and translate operations.
package vpagateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// result is a prepared HTTP response: a status, a JSON body, and an internal
// log message that is never shown to the caller.
type result struct {
	status      int
	resp        interface{}
	internalMsg string
	hdrs        [][2]string
}

func jsonOK(respObj interface{}, internalMsg ...interface{}) result {
	return response(http.StatusOK, respObj, "OK", internalMsg)
}

func jsonCreated(respObj interface{}, internalMsg ...interface{}) result {
	return response(http.StatusCreated, respObj, "created", internalMsg)
}

func jsonBadRequest(userMsg string, internalMsg ...interface{}) result {
	return errResult(http.StatusBadRequest, userMsg, "bad request", internalMsg)
}

func jsonNotFound(internalMsg ...interface{}) result {
	return errResult(http.StatusNotFound, "the requested grammar was not found", "not found", internalMsg)
}

func jsonUnauthorized(userMsg string, internalMsg ...interface{}) result {
	if userMsg == "" {
		userMsg = "you are not authorized to do that"
	}
	return errResult(http.StatusUnauthorized, userMsg, "unauthorized", internalMsg).
		withHeader("WWW-Authenticate", `Bearer realm="vpagen gateway"`)
}

func jsonInternalServerError(internalMsg ...interface{}) result {
	return errResult(http.StatusInternalServerError, "an internal server error occurred", "internal error", internalMsg)
}

func response(status int, respObj interface{}, defaultMsg string, internalMsg []interface{}) result {
	return result{status: status, resp: respObj, internalMsg: formatMsg(defaultMsg, internalMsg)}
}

func errResult(status int, userMsg, defaultMsg string, internalMsg []interface{}) result {
	return result{
		status:      status,
		resp:        errorBody{Error: userMsg, Status: status},
		internalMsg: formatMsg(defaultMsg, internalMsg),
	}
}

// formatMsg treats internalMsg[0] as the format string and internalMsg[1:]
// as its args, falling back to defaultMsg when internalMsg is empty -
// matching the convention call sites use when they pass a fmt string as the
// first variadic argument.
func formatMsg(defaultMsg string, internalMsg []interface{}) string {
	if len(internalMsg) == 0 {
		return defaultMsg
	}
	msgFmt, ok := internalMsg[0].(string)
	if !ok {
		return defaultMsg
	}
	if len(internalMsg) == 1 {
		return msgFmt
	}
	return fmt.Sprintf(msgFmt, internalMsg[1:]...)
}

func (r result) withHeader(name, val string) result {
	r.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return r
}

type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func (r result) write(w http.ResponseWriter, req *http.Request) {
	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}

	if r.status == http.StatusNoContent || r.resp == nil {
		w.WriteHeader(r.status)
		logResponse(req, r)
		return
	}

	body, err := json.Marshal(r.resp)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"could not marshal response","status":500}`))
		logResponse(req, result{status: http.StatusInternalServerError, internalMsg: "marshal response: " + err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)
	w.Write(body)
	logResponse(req, r)
}

func logResponse(req *http.Request, r result) {
	level := "INFO "
	if r.status >= 400 {
		level = "ERROR"
	}
	remoteIP := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, r.status, r.internalMsg)
}
