// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

func TestClientGet_ReturnsBody(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<eSearchResult/>"))
	}))
	defer ts.Close()

	c := NewClient(types.HTTPConfig{UserAgent: "test/0.1"}, nil)
	body, err := c.Get(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, "<eSearchResult/>", string(body))
	assert.Equal(t, "test/0.1", gotUA)
}

func TestClientGet_NonOKIsStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := NewClient(types.HTTPConfig{}, nil)
	_, err := c.Get(context.Background(), ts.URL)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, ts.URL, se.URL)
	assert.Equal(t, "HTTP 500", err.Error())
}

func TestClientGet_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewClient(types.HTTPConfig{}, nil)
	_, err := c.Get(context.Background(), url)
	require.Error(t, err)

	var se *StatusError
	assert.False(t, errors.As(err, &se))
}
