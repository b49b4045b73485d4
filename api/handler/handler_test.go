package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"license-hub/service"
	"license-hub/storage/sqlstore"
	"license-hub/types"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrMissingFile, http.StatusBadRequest},
		{fmt.Errorf("%w: %q", types.ErrInvalidStatus, "x"), http.StatusBadRequest},
		{fmt.Errorf("%w: id=3", service.ErrBaseNotFound), http.StatusNotFound},
		{sqlstore.ErrNotFound, http.StatusNotFound},
		{errors.New("openai: 429"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, httpStatus(tc.err, http.StatusBadGateway), tc.err.Error())
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	assert.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, v := range []string{"", "0", "-1", "abc"} {
		_, err := parseID(v)
		assert.Error(t, err, v)
	}
}

func TestChecked(t *testing.T) {
	assert.True(t, checked("true"))
	assert.True(t, checked("on"))
	assert.False(t, checked(""))
	assert.False(t, checked("false"))
}

func TestToAgreementDTO(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	parent := uint(1)

	dto := toAgreementDTO(&sqlstore.Agreement{
		ID:         2,
		Title:      "Amendment",
		Status:     types.StatusActive,
		StartDate:  &start,
		Indefinite: false,
		ParentID:   &parent,
	})
	assert.Equal(t, "2026-01-15", dto.StartDate)
	assert.Equal(t, "", dto.EndDate)
	assert.Equal(t, &parent, dto.ParentID)

	assert.Empty(t, toAgreementDTOs(nil))
	assert.NotNil(t, toAgreementDTOs(nil))
}
