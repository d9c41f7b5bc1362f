package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mirrorBody(contest int) []byte {
	body, _ := json.Marshal(map[string]any{
		"concurso": contest,
		"dezenas": []string{
			"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12", "13", "14", "15",
		},
		"data": "10/06/2024",
	})
	return body
}

func TestMirrorClient_FetchLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		w.Write(mirrorBody(3000))
	}))
	defer server.Close()

	client := NewMirrorClient(MirrorOptions{
		LatestURL:  server.URL + "/latest",
		ContestURL: server.URL + "/%d",
		Timeout:    2 * time.Second,
	})

	payload, err := client.FetchLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3000, payload.ContestNumber())
}

func TestMirrorClient_FetchContest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2999", r.URL.Path)
		w.Write(mirrorBody(2999))
	}))
	defer server.Close()

	client := NewMirrorClient(MirrorOptions{
		LatestURL:  server.URL + "/latest",
		ContestURL: server.URL + "/%d",
		Timeout:    2 * time.Second,
	})

	payload, err := client.FetchContest(context.Background(), 2999)
	require.NoError(t, err)
	assert.Equal(t, 2999, payload.ContestNumber())
}

func TestMirrorClient_failureKinds(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    FailureKind
	}{
		{
			name: "contest mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write(mirrorBody(2500))
			},
			want: KindMismatch,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			want: KindNotFound,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			want: KindTransient,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("oops"))
			},
			want: KindMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewMirrorClient(MirrorOptions{
				LatestURL:  server.URL + "/latest",
				ContestURL: server.URL + "/%d",
				Timeout:    2 * time.Second,
			})

			_, err := client.FetchContest(context.Background(), 2999)
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}
