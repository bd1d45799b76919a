package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/interfaces/http/middleware"
	"github.com/glambooking/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{shared.CodeUnauthenticated, http.StatusUnauthorized},
		{shared.CodeForbidden, http.StatusForbidden},
		{shared.CodeSubscriptionRequired, http.StatusForbidden},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeNoProfile, http.StatusNotFound},
		{shared.CodeGone, http.StatusGone},
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.CodeInvalidInput, http.StatusBadRequest},
		{shared.CodeAlreadyExists, http.StatusConflict},
		{shared.CodeInvalidState, http.StatusConflict},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.code))
		})
	}
}

func errorEngine(h *BaseHandler, err error) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/fail", func(c *gin.Context) { h.HandleError(c, err) })
	return engine
}

func TestHandleError(t *testing.T) {
	t.Run("domain error keeps its message", func(t *testing.T) {
		h := newBaseHandler(nil)
		w := testutil.Do(t, errorEngine(&h, shared.NewGoneError("Invitation has expired")), testutil.Request{Path: "/fail"})
		assert.Equal(t, "Invitation has expired", testutil.AssertError(t, w, http.StatusGone))
	})

	t.Run("wrapped domain error", func(t *testing.T) {
		h := newBaseHandler(nil)
		err := fmt.Errorf("cancel: %w", shared.ErrForbidden)
		w := testutil.Do(t, errorEngine(&h, err), testutil.Request{Path: "/fail"})
		assert.Equal(t, "Forbidden", testutil.AssertError(t, w, http.StatusForbidden))
	})

	t.Run("unknown error is logged and hidden", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		h := newBaseHandler(zap.New(core))

		w := testutil.Do(t, errorEngine(&h, errors.New("connection refused")), testutil.Request{
			Path:    "/fail",
			Headers: map[string]string{"X-Request-ID": "req-42"},
		})
		assert.Equal(t, internalErrorMessage, testutil.AssertError(t, w, http.StatusInternalServerError))
		assert.NotContains(t, w.Body.String(), "connection refused")

		entries := logs.FilterMessage("Request failed").All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-42", fields["request_id"])
		assert.Equal(t, http.MethodGet, fields["method"])
		assert.Equal(t, "/fail", fields["path"])
	})
}

func TestPathIDAndBusinessIDQuery(t *testing.T) {
	h := newBaseHandler(nil)
	engine := gin.New()
	engine.GET("/items/:id", func(c *gin.Context) {
		id, ok := h.pathID(c, "id", "Item not found")
		if !ok {
			return
		}
		businessID, ok := h.businessIDQuery(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "businessId": businessID})
	})

	w := testutil.Do(t, engine, testutil.Request{Path: "/items/nope"})
	assert.Equal(t, "Item not found", testutil.AssertError(t, w, http.StatusNotFound))

	id := testutil.NewTestUUID("item")
	w = testutil.Do(t, engine, testutil.Request{Path: "/items/" + id.String() + "?businessId=bad"})
	assert.Equal(t, "businessId must be a valid UUID", testutil.AssertError(t, w, http.StatusBadRequest))

	w = testutil.Do(t, engine, testutil.Request{Path: "/items/" + id.String()})
	require.Equal(t, http.StatusOK, w.Code)
	body := testutil.JSON(t, w)
	assert.Equal(t, id.String(), body["id"])
	assert.Nil(t, body["businessId"])
}
