package config

// District is one of Seoul's autonomous districts (gu).
type District struct {
	Name        string    `json:"name"`
	EnglishName string    `json:"english_name"`
	Center      []float64 `json:"center"`
}

// SeoulDistricts lists the 25 districts with approximate centroids
// as [lat, lng].
var SeoulDistricts = []District{
	{Name: "강남구", EnglishName: "Gangnam-gu", Center: []float64{37.5172, 127.0473}},
	{Name: "강동구", EnglishName: "Gangdong-gu", Center: []float64{37.5301, 127.1238}},
	{Name: "강북구", EnglishName: "Gangbuk-gu", Center: []float64{37.6396, 127.0257}},
	{Name: "강서구", EnglishName: "Gangseo-gu", Center: []float64{37.5509, 126.8495}},
	{Name: "관악구", EnglishName: "Gwanak-gu", Center: []float64{37.4784, 126.9516}},
	{Name: "광진구", EnglishName: "Gwangjin-gu", Center: []float64{37.5385, 127.0823}},
	{Name: "구로구", EnglishName: "Guro-gu", Center: []float64{37.4954, 126.8874}},
	{Name: "금천구", EnglishName: "Geumcheon-gu", Center: []float64{37.4569, 126.8955}},
	{Name: "노원구", EnglishName: "Nowon-gu", Center: []float64{37.6542, 127.0568}},
	{Name: "도봉구", EnglishName: "Dobong-gu", Center: []float64{37.6688, 127.0471}},
	{Name: "동대문구", EnglishName: "Dongdaemun-gu", Center: []float64{37.5744, 127.0400}},
	{Name: "동작구", EnglishName: "Dongjak-gu", Center: []float64{37.5124, 126.9393}},
	{Name: "마포구", EnglishName: "Mapo-gu", Center: []float64{37.5663, 126.9019}},
	{Name: "서대문구", EnglishName: "Seodaemun-gu", Center: []float64{37.5791, 126.9368}},
	{Name: "서초구", EnglishName: "Seocho-gu", Center: []float64{37.4837, 127.0324}},
	{Name: "성동구", EnglishName: "Seongdong-gu", Center: []float64{37.5633, 127.0371}},
	{Name: "성북구", EnglishName: "Seongbuk-gu", Center: []float64{37.5894, 127.0167}},
	{Name: "송파구", EnglishName: "Songpa-gu", Center: []float64{37.5145, 127.1059}},
	{Name: "양천구", EnglishName: "Yangcheon-gu", Center: []float64{37.5170, 126.8665}},
	{Name: "영등포구", EnglishName: "Yeongdeungpo-gu", Center: []float64{37.5264, 126.8962}},
	{Name: "용산구", EnglishName: "Yongsan-gu", Center: []float64{37.5326, 126.9905}},
	{Name: "은평구", EnglishName: "Eunpyeong-gu", Center: []float64{37.6027, 126.9291}},
	{Name: "종로구", EnglishName: "Jongno-gu", Center: []float64{37.5735, 126.9790}},
	{Name: "중구", EnglishName: "Jung-gu", Center: []float64{37.5641, 126.9979}},
	{Name: "중랑구", EnglishName: "Jungnang-gu", Center: []float64{37.6063, 127.0925}},
}

// GetDistrictByName looks a district up by its Korean or English name.
func GetDistrictByName(name string) *District {
	for i := range SeoulDistricts {
		d := &SeoulDistricts[i]
		if d.Name == name || d.EnglishName == name {
			return d
		}
	}
	return nil
}

// GetDistrictNames returns the Korean district names.
func GetDistrictNames() []string {
	names := make([]string, len(SeoulDistricts))
	for i, d := range SeoulDistricts {
		names[i] = d.Name
	}
	return names
}
