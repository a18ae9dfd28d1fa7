package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtailor/internal/config"
	"jobtailor/internal/dto"
	"jobtailor/internal/model"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(&config.APIConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	return client, server
}

func TestCredentialsLoginSendsFormData(t *testing.T) {
	var gotContentType, gotUsername, gotPassword string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		r.ParseForm()
		gotUsername = r.PostFormValue("username")
		gotPassword = r.PostFormValue("password")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dto.AuthResponse{AccessToken: "tok-123", TokenType: "bearer"})
	}))
	defer server.Close()

	auth, err := client.CredentialsLogin(context.Background(), "jane@example.com", "hunter2")

	require.NoError(t, err)
	assert.Contains(t, gotContentType, "application/x-www-form-urlencoded")
	assert.Equal(t, "jane@example.com", gotUsername)
	assert.Equal(t, "hunter2", gotPassword)
	assert.Equal(t, "tok-123", auth.AccessToken)
	assert.Equal(t, "bearer", auth.TokenType)
}

func TestGoogleSignInSendsTokens(t *testing.T) {
	var gotBody dto.GoogleSignInRequest
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dto.AuthResponse{AccessToken: "tok-456", TokenType: "bearer"})
	}))
	defer server.Close()

	auth, err := client.GoogleSignIn(context.Background(), "id-token", "access-token")

	require.NoError(t, err)
	assert.Equal(t, "id-token", gotBody.IDToken)
	assert.Equal(t, "access-token", gotBody.AccessToken)
	assert.Equal(t, "tok-456", auth.AccessToken)
}

func TestBearerTokenAttachedWhenSet(t *testing.T) {
	var gotAuth string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.User{ID: "u1", Email: "jane@example.com"})
	}))
	defer server.Close()

	client.SetToken("tok-123")
	user, err := client.GetUser(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestAPIErrorParsesDetail(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}))
	defer server.Close()

	_, err := client.CredentialsLogin(context.Background(), "jane@example.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Incorrect username or password", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "Incorrect username or password")
}

func TestAPIErrorParsesMessageFallback(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database unavailable"}`))
	}))
	defer server.Close()

	_, err := client.GetUser(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "database unavailable", apiErr.Message)
}

func TestAPIErrorPlainTextBody(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream timed out\n"))
	}))
	defer server.Close()

	_, err := client.GetStats(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream timed out", apiErr.Message)
}

func TestStartGenerationUnwrapsEnvelope(t *testing.T) {
	var gotReq dto.StartGenerationRequest
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/application/start-generation", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"job_application":{"id":"app-1","job_title":"Backend Engineer","resume_generation_status":"started","events":[]}}`))
	}))
	defer server.Close()

	snapshot, err := client.StartGeneration(context.Background(), dto.StartGenerationRequest{
		JobRole:        "Backend Engineer",
		JobDescription: "Build services",
		Company:        "Acme",
	})

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", gotReq.JobRole)
	assert.Equal(t, "Acme", gotReq.Company)
	assert.Equal(t, "app-1", snapshot.ID)
	assert.Equal(t, model.GenerationStarted, snapshot.ResumeGenerationStatus)
}

func TestStartGenerationAcceptsBareSnapshot(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"app-2","job_title":"SRE","events":[]}`))
	}))
	defer server.Close()

	snapshot, err := client.StartGeneration(context.Background(), dto.StartGenerationRequest{JobRole: "SRE"})

	require.NoError(t, err)
	assert.Equal(t, "app-2", snapshot.ID)
}

func TestListJobApplicationsPagination(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/application/list", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"app-1","job_title":"Backend Engineer","company_name":"Acme","created_at":"2026-08-01T10:00:00Z"}],"total":31,"has_next":true}`))
	}))
	defer server.Close()

	page, err := client.ListJobApplications(context.Background(), 20, 10)

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 31, page.Total)
	assert.True(t, page.HasNext)
}

func TestSearchJobApplicationsSendsTerm(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/application/search", r.URL.Path)
		assert.Equal(t, "acme", r.URL.Query().Get("search_term"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[],"total":0,"has_next":false}`))
	}))
	defer server.Close()

	page, err := client.SearchJobApplications(context.Background(), "acme", 0, 10)

	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
}

func TestDeleteJobApplication(t *testing.T) {
	var gotMethod, gotPath string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := client.DeleteJobApplication(context.Background(), "app-1")

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/application/app-1", gotPath)
}

func TestUpdateGeneratedCoverLetter(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		assert.Equal(t, "/application/app-1/cover-letter", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"app-1","generated_cover_letter":"Dear team,","events":[]}`))
	}))
	defer server.Close()

	snapshot, err := client.UpdateGeneratedCoverLetter(context.Background(), "app-1", "Dear team,")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "Dear team,", gotBody["cover_letter_content"])
	assert.Equal(t, "Dear team,", snapshot.GeneratedCoverLetter)
}

func TestUploadResumeSendsMultipart(t *testing.T) {
	var gotFilename, gotContents string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			gotFilename = header.Filename
			contents, _ := io.ReadAll(file)
			gotContents = string(contents)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := client.UploadResume(context.Background(), "resume.pdf", strings.NewReader("%PDF-1.7 fake"))

	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", gotFilename)
	assert.Equal(t, "%PDF-1.7 fake", gotContents)
}

func TestGetStats(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/application/stats", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_created":12,"created_this_month":3,"completed":9}`))
	}))
	defer server.Close()

	stats, err := client.GetStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalCreated)
	assert.Equal(t, 3, stats.CreatedThisMonth)
	assert.Equal(t, 9, stats.Completed)
}

func TestTransportErrorWrapped(t *testing.T) {
	client := NewClient(&config.APIConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})

	_, err := client.GetUser(context.Background())

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
