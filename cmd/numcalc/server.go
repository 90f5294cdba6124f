package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"honnef.co/go/numerics"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func newHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /compute", handleCompute)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	return recoverPanics(mux)
}

func recoverPanics(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in %s: %v\n%s", r.URL.Path, rec, debug.Stack())
				writeJSON(w, http.StatusInternalServerError, errorBody{"internal server error"})
			}
		}()
		h.ServeHTTP(w, r)
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func handleCompute(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var p numerics.Params
	if err := dec.Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{"invalid JSON: " + err.Error()})
		return
	}
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, errorBody{"invalid JSON: trailing data"})
		return
	}

	resp, err := compute(&p)
	if err != nil {
		log.Printf("compute %q: %v", p.Method, err)
		writeJSON(w, http.StatusBadRequest, errorBody{err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func compute(p *numerics.Params) (*numerics.Response, error) {
	req, err := p.Request()
	if err != nil {
		return nil, err
	}
	resp, err := numerics.Run(req)
	if err != nil {
		var perr *numerics.ParseError
		if errors.As(err, &perr) {
			return nil, errors.New(perr.Error() + ". Use x as the variable and functions such as sin(x), sqrt(x), pi or e")
		}
		return nil, err
	}
	return resp, nil
}

// writeJSON encodes v before sending the status line. If v cannot be
// encoded, the client gets a 500 error instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("encoding response: %v", err)
		status = http.StatusInternalServerError
		b, _ = json.Marshal(errorBody{"internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(b, '\n')); err != nil {
		log.Printf("writing response: %v", err)
	}
}
