package locations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"travel-gateway/internal/gateway/gatewaytest"
	"travel-gateway/internal/interfaces/mock"
	"travel-gateway/internal/models"
)

func scored(code string, score int) models.LocationResult {
	loc := models.LocationResult{IataCode: code, Name: code}
	if score > 0 {
		loc.Analytics = &models.LocationAnalytics{}
		loc.Analytics.Travelers.Score = score
	}
	return loc
}

func TestService_Search(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockProviderAPI(ctrl)
	gw, clk := gatewaytest.New(t, api)
	svc := NewService(gw, zap.NewNop())
	ctx := context.Background()

	api.EXPECT().
		SearchLocations(gomock.Any(), models.LocationQuery{Keyword: "Par", SubType: DefaultSubType, Limit: DefaultLimit}).
		Return([]models.LocationResult{scored("PRX", 0), scored("PAR", 90), scored("ORY", 40)}, nil).
		Times(2)

	first, err := svc.Search(ctx, models.LocationQuery{Keyword: "Par"})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	require.Len(t, first.Data, 3)
	assert.Equal(t, []string{"PAR", "ORY", "PRX"}, []string{first.Data[0].IataCode, first.Data[1].IataCode, first.Data[2].IataCode})

	second, err := svc.Search(ctx, models.LocationQuery{Keyword: "PAR", SubType: DefaultSubType, Limit: 10})
	require.NoError(t, err)
	assert.True(t, second.Cached, "keywords are case-insensitive in the cache")
	assert.Equal(t, "PAR", second.Data[0].IataCode)

	clk.Add(24 * time.Hour)
	third, err := svc.Search(ctx, models.LocationQuery{Keyword: "Par"})
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestService_Search_Limits(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "default", limit: 0, want: DefaultLimit},
		{name: "explicit", limit: 5, want: 5},
		{name: "capped", limit: 100, want: MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := mock.NewMockProviderAPI(ctrl)
			gw, _ := gatewaytest.New(t, api)
			svc := NewService(gw, zap.NewNop())

			api.EXPECT().
				SearchLocations(gomock.Any(), models.LocationQuery{Keyword: "LON", SubType: "AIRPORT", Limit: tt.want}).
				Return(nil, nil)

			_, err := svc.Search(context.Background(), models.LocationQuery{Keyword: "LON", SubType: "AIRPORT", Limit: tt.limit})
			require.NoError(t, err)
		})
	}
}

func TestService_Search_ShortKeyword(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockProviderAPI(ctrl)
	gw, _ := gatewaytest.New(t, api)
	svc := NewService(gw, zap.NewNop())

	for _, keyword := range []string{"", "P", "  x "} {
		_, err := svc.Search(context.Background(), models.LocationQuery{Keyword: keyword})
		assert.ErrorIs(t, err, models.ErrInvalidRequest, keyword)
		assert.Equal(t, models.KindRequest, models.KindOf(err))
	}
	assert.Equal(t, int64(0), gw.Queue().Stats().TotalRequests)
}
