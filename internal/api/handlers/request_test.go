package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("ok", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "x"}`))
		require.NoError(t, DecodeJSON(r, &p))
		assert.Equal(t, "x", p.Name)
	})

	t.Run("empty body", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		assert.ErrorIs(t, DecodeJSON(r, &p), ErrEmptyBody)
	})

	t.Run("unknown field", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "x", "extra": 1}`))
		assert.Error(t, DecodeJSON(r, &p))
	})
}

func TestPathInt64(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "12", want: 12},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": tt.raw})
			got, err := PathInt64(r, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?from=2025-10-01&flag=true&n=7", nil)

	from, err := OptionalQueryDate(r, "from")
	require.NoError(t, err)
	require.NotNil(t, from)
	assert.Equal(t, "2025-10-01", from.String())

	to, err := OptionalQueryDate(r, "to")
	require.NoError(t, err)
	assert.Nil(t, to)

	flag, err := OptionalQueryBool(r, "flag")
	require.NoError(t, err)
	assert.True(t, flag)

	n, err := OptionalQueryInt64(r, "n")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, int64(7), *n)

	bad := httptest.NewRequest(http.MethodGet, "/?from=01-10-2025", nil)
	_, err = OptionalQueryDate(bad, "from")
	assert.Error(t, err)
}
