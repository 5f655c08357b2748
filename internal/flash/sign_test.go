package flash

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type brokenMethod struct{}

func (brokenMethod) Alg() string { return "broken" }

func (brokenMethod) Verify(string, []byte, interface{}) error {
	return errors.New("broken")
}

func (brokenMethod) Sign(string, interface{}) ([]byte, error) {
	return nil, errors.New("key unavailable")
}

func TestStore_AddLogsSigningFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	store := NewStore("secret", false, slog.New(slog.NewTextHandler(&logs, nil)))
	store.method = brokenMethod{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	store.Add(c, CategoryError, "lost")

	assert.Contains(t, logs.String(), "Failed to sign flash cookie")
	assert.Contains(t, logs.String(), "key unavailable")
	assert.Empty(t, w.Result().Cookies())

	// Still shown when this request renders a view
	assert.Equal(t, []Message{{Category: CategoryError, Text: "lost"}}, store.Consume(c))
}
