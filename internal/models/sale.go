package models

import (
	"strings"
	"time"
)

// HouseType is the verbatim HOUSE_TYPE label used by the sales dataset.
type HouseType string

const (
	AnyHouseType HouseType = ""

	Apartment  HouseType = "아파트"
	StudioFlat HouseType = "오피스텔"
	Villa1     HouseType = "연립다세대"
	Villa2     HouseType = "단독다가구"
)

// HouseTypes lists the known categories in display order.
var HouseTypes = []HouseType{Apartment, StudioFlat, Villa1, Villa2}

// Label returns the English name shown on the dashboard.
func (h HouseType) Label() string {
	switch h {
	case Apartment:
		return "Apartment"
	case StudioFlat:
		return "Studio Flat"
	case Villa1:
		return "Vila type1"
	case Villa2:
		return "Vila type2"
	case AnyHouseType:
		return "All"
	default:
		return string(h)
	}
}

// Slug returns the identifier used in query strings.
func (h HouseType) Slug() string {
	switch h {
	case Apartment:
		return "apartment"
	case StudioFlat:
		return "studio"
	case Villa1:
		return "villa1"
	case Villa2:
		return "villa2"
	default:
		return string(h)
	}
}

// ParseHouseType accepts a Korean label, a slug or an English label.
// An empty string yields AnyHouseType.
func ParseHouseType(s string) (HouseType, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AnyHouseType, true
	}
	for _, h := range HouseTypes {
		if s == string(h) || strings.EqualFold(s, h.Slug()) || strings.EqualFold(s, h.Label()) {
			return h, true
		}
	}
	return AnyHouseType, false
}

// SaleRecord is one sale transaction. Amount is in units of 10,000 won.
type SaleRecord struct {
	Index        string    `json:"index"`
	District     string    `json:"district"`
	Neighborhood string    `json:"neighborhood"`
	Building     string    `json:"building"`
	HouseType    HouseType `json:"house_type"`
	Amount       int64     `json:"amount"`
	BuildYear    int       `json:"build_year"`
	DealYMD      int       `json:"deal_ymd"`
	DealDate     time.Time `json:"deal_date"`
	DealYear     int       `json:"deal_year"`
	DealMonth    int       `json:"deal_month"`
}
