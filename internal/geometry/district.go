package geometry

import (
	"github.com/mmcloughlin/geohash"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"seoulmarket/server/config"
	"seoulmarket/server/internal/models"
)

// geohashPrecision of 6 gives cells of roughly 1.2km by 0.6km.
const geohashPrecision = 6

// DistrictStats is what the map shows per district.
type DistrictStats struct {
	Count int
	Mean  int64
}

// DistrictCollection builds one Point feature per district present in the
// data, in the given order. Districts missing from the catalog are skipped
// since they have no known location.
func DistrictCollection(catalog []config.District, districts []string, stats map[string]DistrictStats) *geojson.FeatureCollection {
	byName := make(map[string]config.District, len(catalog))
	for _, d := range catalog {
		byName[d.Name] = d
	}

	fc := geojson.NewFeatureCollection()
	for _, name := range districts {
		d, ok := byName[name]
		if !ok || len(d.Center) != 2 {
			continue
		}

		f := geojson.NewFeature(orb.Point{d.Center[1], d.Center[0]})
		f.Properties["name"] = d.Name
		f.Properties["english_name"] = d.EnglishName
		f.Properties["geohash"] = geohash.EncodeWithPrecision(d.Center[0], d.Center[1], geohashPrecision)
		if s, ok := stats[name]; ok {
			f.Properties["count"] = s.Count
			f.Properties["mean"] = s.Mean
		} else {
			f.Properties["count"] = 0
			f.Properties["mean"] = nil
		}
		fc.Append(f)
	}
	return fc
}

// StatsFromPrices indexes district price aggregates by district name.
func StatsFromPrices(prices []models.DistrictPrice) map[string]DistrictStats {
	out := make(map[string]DistrictStats, len(prices))
	for _, p := range prices {
		out[p.District] = DistrictStats{Count: p.Count, Mean: p.Mean}
	}
	return out
}

// Bounds returns the bounding box of the collection's points.
func Bounds(fc *geojson.FeatureCollection) orb.Bound {
	var mp orb.MultiPoint
	for _, f := range fc.Features {
		if p, ok := f.Geometry.(orb.Point); ok {
			mp = append(mp, p)
		}
	}
	return mp.Bound()
}
