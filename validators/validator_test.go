package validators

import (
	"net/http"
	"testing"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsMalformedPayloads(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name    string
		payload interface{}
	}{
		{"register without email", models.RegisterRequest{Name: "Ana", Password: "longenough1"}},
		{"register with short password", models.RegisterRequest{Name: "Ana", Email: "a@b.c", Password: "short"}},
		{"post without content", models.CreatePostRequest{}},
		{"event without title", models.CreateEventRequest{Description: "potluck"}},
		{"device with bad platform", models.RegisterDeviceRequest{Token: "tok", Platform: "blackberry"}},
		{"group with bad image url", models.CreateGroupRequest{Name: "Choir", Description: "sing", ImageURL: "not-a-url"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.payload)
			require.Error(t, err)

			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok, "validation failures must surface as HTTP errors")
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		})
	}
}

func TestValidateAcceptsWellFormedPayloads(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "longenough1",
	}))
	assert.NoError(t, v.Validate(models.SendMessageRequest{Content: "see you sunday"}))
	assert.NoError(t, v.Validate(models.RegisterDeviceRequest{Token: "tok", Platform: "ios"}))
}
