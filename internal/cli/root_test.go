package cli

import (
	"bytes"
	"testing"
	"time"

	"scrollfeed/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOptions() Options {
	return Options{
		APIURL:   "http://localhost:8080",
		Corpus:   200,
		Latency:  500 * time.Millisecond,
		Limit:    20,
		Interval: 30 * time.Second,
		Margin:   5,
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Options) {}},
		{name: "local ignores api url", mutate: func(o *Options) { o.Local = true; o.APIURL = "" }},
		{name: "zero limit", mutate: func(o *Options) { o.Limit = 0 }, wantErr: "--limit"},
		{name: "sub-second interval", mutate: func(o *Options) { o.Interval = 500 * time.Millisecond }, wantErr: "--interval"},
		{name: "negative margin", mutate: func(o *Options) { o.Margin = -1 }, wantErr: "--margin"},
		{name: "negative min spinner", mutate: func(o *Options) { o.MinSpinner = -time.Second }, wantErr: "--min-spinner"},
		{name: "relative api url", mutate: func(o *Options) { o.APIURL = "localhost" }, wantErr: "--api-url"},
		{name: "negative corpus", mutate: func(o *Options) { o.Local = true; o.Corpus = -1 }, wantErr: "--corpus"},
		{name: "negative latency", mutate: func(o *Options) { o.Local = true; o.Latency = -time.Second }, wantErr: "--latency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd("test")

	for _, name := range []string{"api-url", "local", "corpus", "latency", "limit", "interval", "margin", "min-spinner", "auto-refresh", "log-file", "debug"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "30s", cmd.Flags().Lookup("interval").DefValue)
	assert.Equal(t, "20", cmd.Flags().Lookup("limit").DefValue)
}

func TestNewRootCmd_RejectsInvalidFlags(t *testing.T) {
	cmd := NewRootCmd("test")
	cmd.SetArgs([]string{"--limit", "0"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit must be positive")
}

func TestNewProvider_Local(t *testing.T) {
	o := validOptions()
	o.Local = true
	o.Corpus = 30
	o.Latency = 0

	p, insert, err := newProvider(o, nil)
	require.NoError(t, err)
	require.NotNil(t, insert)

	res, err := p.FetchPage(t.Context(), pageRequest(2, 20))
	require.NoError(t, err)
	assert.Len(t, res.Records, 10)
	assert.False(t, res.HasMore)

	require.NoError(t, insert(t.Context(), 5))
	res, err = p.FetchPage(t.Context(), pageRequest(1, 1))
	require.NoError(t, err)
	assert.Equal(t, 35, res.TotalCount)
}

func TestNewProvider_RemoteRejectsBadURL(t *testing.T) {
	o := validOptions()
	o.APIURL = "ftp://example.com"

	_, _, err := newProvider(o, nil)
	assert.Error(t, err)
}

func TestOpenLogger(t *testing.T) {
	o := validOptions()
	logger, closeLog, err := openLogger(o)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	closeLog()

	o.LogFile = t.TempDir() + "/scroll.log"
	o.Debug = true
	logger, closeLog, err = openLogger(o)
	require.NoError(t, err)
	logger.Debug("hello")
	closeLog()
}

func pageRequest(page, limit int) entity.PageRequest {
	return entity.PageRequest{Page: page, Limit: limit}
}
