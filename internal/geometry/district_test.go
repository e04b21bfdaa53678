package geometry

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoulmarket/server/config"
	"seoulmarket/server/internal/models"
)

func TestDistrictCollection(t *testing.T) {
	stats := StatsFromPrices([]models.DistrictPrice{
		{District: "강남구", Count: 3, Mean: 150000, Max: 200000},
	})

	fc := DistrictCollection(config.SeoulDistricts, []string{"강남구", "서초구", "해운대구"}, stats)
	require.Len(t, fc.Features, 2)

	gangnam := fc.Features[0]
	point, ok := gangnam.Geometry.(orb.Point)
	require.True(t, ok)
	assert.InDelta(t, 127.0473, point.Lon(), 0.0001)
	assert.InDelta(t, 37.5172, point.Lat(), 0.0001)
	assert.Equal(t, "Gangnam-gu", gangnam.Properties["english_name"])
	assert.Len(t, gangnam.Properties["geohash"], 6)
	assert.True(t, strings.HasPrefix(gangnam.Properties["geohash"].(string), "wydm"))
	assert.Equal(t, 3, gangnam.Properties["count"])
	assert.Equal(t, int64(150000), gangnam.Properties["mean"])

	seocho := fc.Features[1]
	assert.Equal(t, 0, seocho.Properties["count"])
	assert.Nil(t, seocho.Properties["mean"])

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"FeatureCollection"`)
}

func TestBounds(t *testing.T) {
	fc := DistrictCollection(config.SeoulDistricts, config.GetDistrictNames(), nil)
	require.Len(t, fc.Features, 25)

	b := Bounds(fc)
	assert.InDelta(t, 126.8495, b.Min.Lon(), 0.0001)
	assert.InDelta(t, 127.1238, b.Max.Lon(), 0.0001)
	assert.InDelta(t, 37.4569, b.Min.Lat(), 0.0001)
	assert.InDelta(t, 37.6688, b.Max.Lat(), 0.0001)
}
