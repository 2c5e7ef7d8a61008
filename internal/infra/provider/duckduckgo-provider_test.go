package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuckDuckGoQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "量子コンピュータ", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		fmt.Fprint(w, `{"Heading":"Quantum computing","AbstractText":"A quantum computer exploits quantum mechanics."}`)
	}))
	defer srv.Close()

	dp := NewDuckDuckGoProvider(newTestLogger(), newTestClient(), srv.URL)
	ans, err := dp.Query(context.Background(), "量子コンピュータ")
	require.NoError(t, err)
	require.NotNil(t, ans)

	assert.Equal(t, "duckduckgo", ans.Source)
	assert.Equal(t, "Quantum computing", ans.Title)
	assert.Contains(t, ans.Text, "quantum mechanics")
}

func TestDuckDuckGoQueryEmptyAbstractMeansNoAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Heading":"something","AbstractText":""}`)
	}))
	defer srv.Close()

	dp := NewDuckDuckGoProvider(newTestLogger(), newTestClient(), srv.URL)
	ans, err := dp.Query(context.Background(), "あいまいな話")
	require.NoError(t, err)
	assert.Nil(t, ans)
}

func TestDuckDuckGoQueryHeadingFallsBackToQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Heading":"","AbstractText":"Some abstract."}`)
	}))
	defer srv.Close()

	dp := NewDuckDuckGoProvider(newTestLogger(), newTestClient(), srv.URL)
	ans, err := dp.Query(context.Background(), "検索語")
	require.NoError(t, err)
	require.NotNil(t, ans)
	assert.Equal(t, "検索語", ans.Title)
}

func TestDuckDuckGoQueryEmptyInput(t *testing.T) {
	dp := NewDuckDuckGoProvider(newTestLogger(), newTestClient(), "http://unused.invalid")
	ans, err := dp.Query(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, ans)
}
