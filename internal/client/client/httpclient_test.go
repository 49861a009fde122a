package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophdiary/internal/logging"
	"github.com/dmitrijs2005/gophdiary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, 5*time.Second, logging.Discard())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.org", 0, logging.Discard())
	require.Error(t, err)

	_, err = NewHTTPClient("://bad", 0, logging.Discard())
	require.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	var got models.Credentials
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(w, http.StatusOK, map[string]any{
			"token": "t1",
			"user":  map[string]any{"id": 2, "name": "Test", "email": "user", "age": 30, "role": "USER"},
		})
	})

	res, err := c.Login(context.Background(), models.Credentials{Email: "user", Password: "user"})
	require.NoError(t, err)
	assert.Equal(t, models.Credentials{Email: "user", Password: "user"}, got)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, int64(2), res.User.ID)
	assert.Equal(t, models.RoleUser, res.User.Role)
}

func TestLogin_ErrorMessageFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "error field", status: 401, body: `{"error":"invalid email or password","message":"ignored"}`, wantMsg: "invalid email or password"},
		{name: "message field", status: 400, body: `{"message":"email is required"}`, wantMsg: "email is required"},
		{name: "no json", status: 500, body: `oops`, wantMsg: "login failed"},
		{name: "blank fields", status: 403, body: `{"error":"  ","message":""}`, wantMsg: "login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Login(context.Background(), models.Credentials{Email: "a", Password: "b"})
			var ae *AuthError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.wantMsg, ae.Message)
			assert.Equal(t, tt.status, ae.Status)
		})
	}
}

func TestLogin_MissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"id": 1}})
	})

	_, err := c.Login(context.Background(), models.Credentials{})
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "login failed", ae.Message)
}

func TestLogin_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewHTTPClient(srv.URL, time.Second, logging.Discard())
	require.NoError(t, err)

	_, err = c.Login(context.Background(), models.Credentials{Email: "a", Password: "b"})
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "login failed", ae.Message)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRegister_PostsProfile(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "registered",
			"user":    map[string]any{"id": 7, "name": "Ann", "email": "ann@example.org", "age": 20, "role": "USER"},
		})
	})

	res, err := c.Register(context.Background(), models.Profile{Name: "Ann", Email: "ann@example.org", Password: "pw", Age: 20})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ann", "email": "ann@example.org", "password": "pw", "age": float64(20)}, got)
	assert.Equal(t, "registered", res.Message)
	assert.Equal(t, int64(7), res.User.ID)
}

func TestRegister_Rejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "email already registered"})
	})

	_, err := c.Register(context.Background(), models.Profile{})
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "email already registered", ae.Message)
}

func TestSearchDiaries_QueryOnlyCarriesSetParams(t *testing.T) {
	var rawQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/diaries/search", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []models.Diary{{ID: 1, Weather: models.WeatherRainy}})
	})

	got, err := c.SearchDiaries(context.Background(), "tok", models.SearchFilter{AuthorID: 2, Weather: models.WeatherRainy})
	require.NoError(t, err)
	assert.Equal(t, "authorId=2&weather=RAINY", rawQuery)
	require.Len(t, got, 1)
}

func TestBuildSearchQuery_AllParams(t *testing.T) {
	q := BuildSearchQuery(models.SearchFilter{AuthorID: 5, Keyword: "sea side", Weather: models.WeatherSunny, Mood: models.MoodHappy})
	assert.Equal(t, "authorId=5&keyword=sea+side&mood=HAPPY&weather=SUNNY", q.Encode())
}

func TestListDiaries(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/diaries/author/2", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":1,"title":"a","authorId":2,"createdAt":"2025-01-02T03:04:05"},{"id":2,"title":"b","authorId":2}]`)
	})

	got, err := c.ListDiaries(context.Background(), "tok", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Title)
	assert.Equal(t, 2025, got[0].CreatedAt.Year())
}

func TestCreateDiary(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/diaries", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("authorId"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusCreated, models.Diary{ID: 10, Title: "t", AuthorID: 2})
	})

	d, err := c.CreateDiary(context.Background(), "tok", 2, models.DiaryInput{Title: "t", Content: "c", Weather: models.WeatherSunny, Mood: models.MoodHappy})
	require.NoError(t, err)
	assert.Equal(t, int64(10), d.ID)
	assert.Equal(t, []any{}, body["tags"])
	assert.Equal(t, false, body["isPrivate"])
}

func TestUpdateDiary_SendsPartialBody(t *testing.T) {
	var raw []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/diaries/42", r.URL.Path)
		raw, _ = io.ReadAll(r.Body)
		writeJSON(w, http.StatusOK, models.Diary{ID: 42, Title: "new"})
	})

	title := "new"
	d, err := c.UpdateDiary(context.Background(), "tok", 42, models.DiaryPatch{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"new"}`, string(raw))
	assert.Equal(t, "new", d.Title)
}

func TestDeleteDiary_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/diaries/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteDiary(context.Background(), "tok", 42))
}

func TestDiaryCalls_401IsSessionExpired(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
	})

	err := c.DeleteDiary(context.Background(), "stale", 42)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDiaryCalls_OtherStatusesCarryMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/diaries/author/1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "author not found"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListDiaries(context.Background(), "tok", 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "author not found", apiErr.Message)
	assert.False(t, errors.Is(err, ErrSessionExpired))

	err = c.DeleteDiary(context.Background(), "tok", 1)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "API call failed: 500", apiErr.Message)
}

func TestDiaryCalls_NoTokenNoHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []models.Diary{})
	})

	_, err := c.ListDiaries(context.Background(), "", 1)
	require.NoError(t, err)
}

func TestDiaryCalls_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := NewHTTPClient(srv.URL, time.Second, logging.Discard())
	require.NoError(t, err)

	_, err = c.ListDiaries(context.Background(), "tok", 1)
	require.ErrorIs(t, err, ErrUnavailable)
}
