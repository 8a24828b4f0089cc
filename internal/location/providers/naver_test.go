package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i474232898/weather-route-assistant/internal/common"
	"github.com/i474232898/weather-route-assistant/internal/location"
	"github.com/i474232898/weather-route-assistant/internal/upstream"
)

func newUpstream() *upstream.Client {
	return upstream.NewClient(&http.Client{Timeout: 5 * time.Second}, "test", upstream.DefaultBreakerSettings())
}

func TestNaverGeocoderFallsBackToSecondEndpoint(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "id", r.Header.Get("X-NCP-APIGW-API-KEY-ID"))
		require.Equal(t, "secret", r.Header.Get("X-NCP-APIGW-API-KEY"))
		require.Equal(t, "서울역", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"status":"OK","addresses":[{"x":"126.9707","y":"37.5547"}]}`))
	}))
	defer up.Close()

	g := NewNaverGeocoder(newUpstream(), MapsCredentials{KeyID: "id", Key: "secret"}, []string{down.URL, up.URL}, time.Second, zap.NewNop())
	coord, err := g.Geocode(context.Background(), "서울역")
	require.NoError(t, err)
	require.Equal(t, location.Coordinate{Lon: 126.9707, Lat: 37.5547}, coord)
}

func TestNaverGeocoderNoAddresses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","addresses":[]}`))
	}))
	defer srv.Close()

	g := NewNaverGeocoder(newUpstream(), MapsCredentials{}, []string{srv.URL, srv.URL}, time.Second, zap.NewNop())
	_, err := g.Geocode(context.Background(), "없는 주소")
	require.True(t, common.IsKind(err, common.KindNotFound))
}

func TestNaverGeocoderSkipsBlankCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"addresses":[{"x":"","y":"37.1"}]}`))
	}))
	defer srv.Close()

	g := NewNaverGeocoder(newUpstream(), MapsCredentials{}, []string{srv.URL}, time.Second, zap.NewNop())
	_, err := g.Geocode(context.Background(), "q")
	require.True(t, common.IsKind(err, common.KindNotFound))
}

func TestNaverGeocoderAllEndpointsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewNaverGeocoder(newUpstream(), MapsCredentials{}, []string{srv.URL, srv.URL}, time.Second, zap.NewNop())
	_, err := g.Geocode(context.Background(), "q")
	require.True(t, common.IsKind(err, common.KindUpstreamUnavailable))
	require.Len(t, common.TrailOf(err), 2)
}

func TestNaverLocalSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "cid", r.Header.Get("X-Naver-Client-Id"))
		require.Equal(t, "csecret", r.Header.Get("X-Naver-Client-Secret"))
		require.Equal(t, "5", r.URL.Query().Get("display"))
		require.Equal(t, "1", r.URL.Query().Get("start"))
		_, _ = w.Write([]byte(`{"items":[
			{"title":"<b>서울역</b>","roadAddress":"서울특별시 용산구 한강대로 405","address":"서울특별시 용산구 동자동 43-205"},
			{"title":"서울역 버스환승센터","roadAddress":"","address":"서울특별시 중구 봉래동2가"}
		]}`))
	}))
	defer srv.Close()

	s := NewNaverLocalSearch(newUpstream(), SearchCredentials{ClientID: "cid", ClientSecret: "csecret"}, srv.URL, time.Second, zap.NewNop())
	places, err := s.SearchPlaces(context.Background(), "서울역")
	require.NoError(t, err)
	require.Len(t, places, 2)
	require.Equal(t, "서울특별시 용산구 한강대로 405", places[0].PreferredAddress())
	require.Equal(t, "서울특별시 중구 봉래동2가", places[1].PreferredAddress())
}

func TestNaverLocalSearchMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	s := NewNaverLocalSearch(newUpstream(), SearchCredentials{}, srv.URL, time.Second, zap.NewNop())
	_, err := s.SearchPlaces(context.Background(), "q")
	require.True(t, common.IsKind(err, common.KindUpstreamFormat))
}
