package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/engine"
	dm "github.com/iWorld-y/marketing_agent/app/marketing_agent/pkg/model"
)

func TestParseSegments(t *testing.T) {
	segs, err := parseSegments([]string{"New Customers=first_time_buyers", " VIP "})
	require.NoError(t, err)
	assert.Equal(t, []dm.Segment{
		{Name: "New Customers", Characteristics: "first_time_buyers"},
		{Name: "VIP"},
	}, segs)

	_, err = parseSegments(nil)
	assert.True(t, errors.Is(err, engine.ErrInvalidInput))

	_, err = parseSegments([]string{"a", "b", "c", "d"})
	assert.True(t, errors.Is(err, engine.ErrInvalidInput))

	_, err = parseSegments([]string{"=x"})
	assert.True(t, errors.Is(err, engine.ErrInvalidInput))
}
