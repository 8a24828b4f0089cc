package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("resolve start: %w", NotFound("location not found: %s", "nowhere"))

	require.Equal(t, KindNotFound, KindOf(err))
	require.True(t, IsKind(err, KindNotFound))
	require.False(t, IsKind(err, KindUpstreamFormat))
	require.EqualError(t, err, "resolve start: location not found: nowhere")
}

func TestKindOfPlainError(t *testing.T) {
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
	require.False(t, IsKind(nil, KindInternal))
}

func TestUpstreamUnavailableCarriesTrail(t *testing.T) {
	err := UpstreamUnavailable([]string{"url=a code=500", "url=b code=503"}, "directions unavailable")

	require.Equal(t, KindUpstreamUnavailable, KindOf(err))
	require.Equal(t, []string{"url=a code=500", "url=b code=503"}, TrailOf(err))
}

func TestErrorIncludesCause(t *testing.T) {
	cause := errors.New("missing main.temp")
	err := UpstreamFormat(cause, "unexpected current weather payload")

	require.ErrorIs(t, err, cause)
	require.EqualError(t, err, "unexpected current weather payload: missing main.temp")
}

func TestHasAnyHelpers(t *testing.T) {
	require.True(t, HasAny("약한 비", "비", "눈"))
	require.False(t, HasAny("맑음", "비", "눈"))
	require.True(t, HasAnyFold("Light RAIN", "rain"))
	require.True(t, HasAnySuffix("서울역", "역", "터미널", "공항"))
	require.False(t, HasAnySuffix("서울", "역", "터미널", "공항"))
}
