package route

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-route-assistant/internal/common"
	"github.com/i474232898/weather-route-assistant/internal/location"
)

func decode(t *testing.T, raw string) ProviderResponse {
	t.Helper()
	var resp ProviderResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return resp
}

func TestNormalizeConvertsUnitsAndPath(t *testing.T) {
	resp := decode(t, `{
		"code": 0,
		"message": "길찾기를 성공하였습니다.",
		"route": {
			"trafast": [{
				"summary": {"distance": 12345, "duration": 1234567, "tollFare": 1100, "fuelPrice": 1822},
				"path": [[126.9707, 37.5547], [127.0276, 37.4979], [1.0]]
			}]
		}
	}`)

	routes, err := Normalize(resp)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	r := routes[0]
	require.Equal(t, "trafast", r.Type)
	require.Equal(t, 12.3, r.DistanceKm)
	require.Equal(t, 20.6, r.DurationMin)
	require.Equal(t, 1100.0, r.Toll)
	require.Equal(t, 1822.0, r.Fuel)
	require.Equal(t, []location.Coordinate{{Lon: 126.9707, Lat: 37.5547}, {Lon: 127.0276, Lat: 37.4979}}, r.Path)
}

func TestNormalizeDefaultsMissingNumbers(t *testing.T) {
	resp := decode(t, `{"route":{"traoptimal":[{"summary":{}},{"path":[]}]}}`)

	routes, err := Normalize(resp)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	for _, r := range routes {
		require.Equal(t, "traoptimal", r.Type)
		require.Zero(t, r.DistanceKm)
		require.Zero(t, r.DurationMin)
		require.Zero(t, r.Toll)
		require.Zero(t, r.Fuel)
		require.Empty(t, r.Path)
	}
}

func TestNormalizeMultipleTagsSorted(t *testing.T) {
	resp := decode(t, `{"route":{
		"trafast":[{"summary":{"distance":1000}}],
		"meta":{"note":"not a list"},
		"comfort":[{"summary":{"distance":2000}}]
	}}`)

	routes, err := Normalize(resp)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	require.Equal(t, "comfort", routes[0].Type)
	require.Equal(t, "trafast", routes[1].Type)
}

func TestNormalizeNoListGroupsIsNoRoute(t *testing.T) {
	for _, raw := range []string{
		`{}`,
		`{"route":{}}`,
		`{"route":{"trafast":{"summary":{}}}}`,
		`{"route":{"trafast":[]}}`,
	} {
		routes, err := Normalize(decode(t, raw))
		require.Nil(t, routes)
		require.True(t, common.IsKind(err, common.KindNotFound), raw)
		require.EqualError(t, err, "no route found")
	}
}

func TestNormalizeNoRouteIncludesProviderMessage(t *testing.T) {
	_, err := Normalize(decode(t, `{"code":1,"message":"출발지와 도착지가 동일합니다."}`))
	require.EqualError(t, err, "no route found: 출발지와 도착지가 동일합니다.")
}

func TestNormalizeSkipsBadValuesWithoutDroppingSiblings(t *testing.T) {
	resp := decode(t, `{"route":{"trafast":[
		{"summary":{"distance":1000,"duration":60000},"path":[[127.0,"37.4"],[127.1,37.5]]},
		{"summary":{"distance":2000,"tollFare":"free"},"path":[[126.9,37.5]]},
		"garbage"
	]}}`)

	routes, err := Normalize(resp)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	require.Equal(t, 1.0, routes[0].DistanceKm)
	require.Equal(t, 1.0, routes[0].DurationMin)
	require.Equal(t, []location.Coordinate{{Lon: 127.1, Lat: 37.5}}, routes[0].Path)

	require.Equal(t, 2.0, routes[1].DistanceKm)
	require.Zero(t, routes[1].Toll)
	require.Equal(t, []location.Coordinate{{Lon: 126.9, Lat: 37.5}}, routes[1].Path)
}
