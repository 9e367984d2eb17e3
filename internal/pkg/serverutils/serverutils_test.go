package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Message string `json:"message" validate:"required,max=5"`
	Kind    string `query:"kind" validate:"omitempty,oneof=a b"`
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		req    sampleRequest
		fields []string
	}{
		{"valid", sampleRequest{Message: "hi"}, nil},
		{"missing message", sampleRequest{}, []string{"message"}},
		{"too long and bad kind", sampleRequest{Message: "too long", Kind: "c"}, []string{"message", "kind"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(tt.req)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			got := make([]string, 0, len(verr.Errors))
			for _, fe := range verr.Errors {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return ValidateRequest(sampleRequest{})
	})
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("db exploded")
	})

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/validation", 400, "Invalid request"},
		{"/missing", 404, "Session not found"},
		{"/boom", 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body BaseResponse[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
