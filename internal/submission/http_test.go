// Copyright (c) 2026 marsAI. All rights reserved.

package submission_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/platform/ctxutil"
	"github.com/marsai/festival/internal/platform/i18n"
	"github.com/marsai/festival/internal/submission"
)

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details []struct {
		Field   string `json:"field"`
		Rule    string `json:"rule"`
		Message string `json:"message"`
	} `json:"details"`
	Meta map[string]any `json:"meta"`
}

func serve(h *harness, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	request := httptest.NewRequest(method, target, body)
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	request = request.WithContext(ctxutil.WithLocale(request.Context(), i18n.English))

	recorder := httptest.NewRecorder()
	submission.NewHandler(h.service).Routes().ServeHTTP(recorder, request)
	return recorder
}

func jsonBody(s string) *bytes.Buffer { return bytes.NewBufferString(s) }

func TestHTTP_DraftLifecycle(t *testing.T) {
	h := newHarness()

	created := serve(h, http.MethodPost, "/", nil, "")
	require.Equal(t, http.StatusCreated, created.Code)

	var envelope struct {
		Data submission.Draft `json:"data"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &envelope))
	id := envelope.Data.ID
	require.NotEmpty(t, id)

	patched := serve(h, http.MethodPatch, "/"+id, jsonBody(`{"director":{"first_name":"Léa"}}`), "application/json")
	require.Equal(t, http.StatusOK, patched.Code)
	assert.Equal(t, "Léa", h.drafts.get(id).Director.FirstName)

	advanced := serve(h, http.MethodPost, "/"+id+"/advance", nil, "")
	require.Equal(t, http.StatusUnprocessableEntity, advanced.Code)

	var failure errorBody
	require.NoError(t, json.Unmarshal(advanced.Body.Bytes(), &failure))
	assert.Equal(t, "STEP_INVALID", failure.Code)
	assert.Equal(t, "Please fill in all required fields", failure.Error)
	assert.EqualValues(t, submission.StepDirector, failure.Meta["step"])
	assert.NotEmpty(t, failure.Details)

	discarded := serve(h, http.MethodDelete, "/"+id, nil, "")
	assert.Equal(t, http.StatusNoContent, discarded.Code)
	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/"+id, nil, "").Code)
}

func TestHTTP_InvalidJSON(t *testing.T) {
	h := newHarness()
	id := h.seed(completeDraft())

	recorder := serve(h, http.MethodPatch, "/"+id, jsonBody(`{"film":`), "application/json")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHTTP_GoTo(t *testing.T) {
	h := newHarness()
	draft := completeDraft()
	draft.Step = submission.StepDirector
	draft.Film.Duration = "90"
	id := h.seed(draft)

	recorder := serve(h, http.MethodPut, "/"+id+"/step", jsonBody(`{"step":4}`), "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var failure errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &failure))
	assert.EqualValues(t, submission.StepFilm, failure.Meta["step"])
	require.Len(t, failure.Details, 1)
	assert.Equal(t, "Must be between 1 and 60", failure.Details[0].Message)
}

func TestHTTP_Submit(t *testing.T) {
	h := newHarness()
	id := h.seed(completeDraft())

	recorder := serve(h, http.MethodPost, "/"+id+"/submit", nil, "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"title":"Les Marées"`)
	assert.Len(t, h.repo.submissions, 1)
}

func TestHTTP_SubmitAgeIneligible(t *testing.T) {
	h := newHarness()
	draft := completeDraft()
	draft.Director.BirthDate = "2008-03-02"
	id := h.seed(draft)

	recorder := serve(h, http.MethodPost, "/"+id+"/submit", nil, "")
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var failure errorBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &failure))
	assert.EqualValues(t, submission.StepDirector, failure.Meta["step"])
	require.Len(t, failure.Details, 1)
	assert.Equal(t, "AGE_INELIGIBLE", failure.Details[0].Rule)
	assert.Equal(t, submission.FieldBirthDate, failure.Details[0].Field)
}

func multipartFile(t *testing.T, field, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHTTP_UploadMedia(t *testing.T) {
	h := newHarness()
	id := h.seed(completeDraft())

	t.Run("poster", func(t *testing.T) {
		body, contentType := multipartFile(t, "file", "poster.jpg", "jpeg-bytes")
		recorder := serve(h, http.MethodPost, "/"+id+"/media/poster", body, contentType)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, strings.HasPrefix(h.drafts.get(id).Deliverables.PosterFile, "drafts/"+id+"/poster/"))
	})

	t.Run("missing file part", func(t *testing.T) {
		body, contentType := multipartFile(t, "other", "poster.jpg", "jpeg-bytes")
		recorder := serve(h, http.MethodPost, "/"+id+"/media/poster", body, contentType)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		body, contentType := multipartFile(t, "file", "trailer.mp4", "x")
		recorder := serve(h, http.MethodPost, "/"+id+"/media/trailer", body, contentType)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHTTP_Collaborators(t *testing.T) {
	h := newHarness()
	id := h.seed(completeDraft())

	added := serve(h, http.MethodPost, "/"+id+"/collaborators", nil, "")
	require.Equal(t, http.StatusCreated, added.Code)
	assert.Contains(t, added.Body.String(), `"meta":{"index":0}`)

	updated := serve(h, http.MethodPut, "/"+id+"/collaborators/0", jsonBody(`{"first_name":"Bo","email":"bo@example.com"}`), "application/json")
	require.Equal(t, http.StatusOK, updated.Code)

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodDelete, "/"+id+"/collaborators/x", nil, "").Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodDelete, "/"+id+"/collaborators/0", nil, "").Code)
	assert.Empty(t, h.drafts.get(id).Collaborators)
}
