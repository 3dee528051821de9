package auth

import (
	"fmt"
	"net/http"
)

// Transport is an http.RoundTripper that adds credentials to each request.
//
// When APIKey is set it is sent in the "apikey" header. The Authorization
// header carries a bearer token from Tokens, or the API key when Tokens is
// nil. Requests that already carry an Authorization header are left alone.
type Transport struct {
	Base   http.RoundTripper
	APIKey string
	Tokens TokenSource
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if t.APIKey != "" {
		r.Header.Set("apikey", t.APIKey)
	}

	if r.Header.Get("Authorization") == "" {
		var bearer string
		switch {
		case t.Tokens != nil:
			tok, err := t.Tokens.Token(r.Context())
			if err != nil {
				if req.Body != nil {
					_ = req.Body.Close()
				}
				return nil, fmt.Errorf("auth: obtain token: %w", err)
			}
			bearer = tok
		case t.APIKey != "":
			bearer = t.APIKey
		}
		if bearer != "" {
			r.Header.Set("Authorization", "Bearer "+bearer)
		}
	}

	return t.base().RoundTrip(r)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// Client returns an *http.Client that uses t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}
