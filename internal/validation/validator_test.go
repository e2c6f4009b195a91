package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/aivladyslavai/MarketingKreis-sub000/internal/errors"
	"github.com/aivladyslavai/MarketingKreis-sub000/internal/validation"
)

type createItemRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Channel string `json:"channel" validate:"max=100"`
	Status  string `json:"status" validate:"omitempty,oneof=IDEA DRAFT REVIEW APPROVED SCHEDULED PUBLISHED BLOCKED ARCHIVED"`
	Email   string `json:"owner_email" validate:"omitempty,email"`
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	err := v.Validate(createItemRequest{
		Title:   "Q4 Landing Page",
		Channel: "Website",
		Status:  "DRAFT",
		Email:   "owner@example.com",
	})
	assert.NoError(t, err)
}

func TestValidator_Errors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       createItemRequest
		wantField string
	}{
		{
			name:      "missing title",
			req:       createItemRequest{Status: "DRAFT"},
			wantField: "title",
		},
		{
			name:      "invalid status",
			req:       createItemRequest{Title: "x", Status: "LIMBO"},
			wantField: "status",
		},
		{
			name:      "invalid email",
			req:       createItemRequest{Title: "x", Email: "not-an-email"},
			wantField: "owner_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, domainerrors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantField)
		})
	}
}
