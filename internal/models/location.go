package models

// LocationResult is an airport or city returned by a location search
type LocationResult struct {
	Type           string             `json:"type"`
	SubType        string             `json:"subType"`
	Name           string             `json:"name"`
	DetailedName   string             `json:"detailedName,omitempty"`
	ID             string             `json:"id"`
	TimeZoneOffset string             `json:"timeZoneOffset,omitempty"`
	IataCode       string             `json:"iataCode"`
	GeoCode        GeoCode            `json:"geoCode"`
	Address        LocationAddress    `json:"address"`
	Analytics      *LocationAnalytics `json:"analytics,omitempty"`
}

type LocationAddress struct {
	CityName    string `json:"cityName"`
	CityCode    string `json:"cityCode"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`
	StateCode   string `json:"stateCode,omitempty"`
	RegionCode  string `json:"regionCode,omitempty"`
}

type LocationAnalytics struct {
	Travelers struct {
		Score int `json:"score"`
	} `json:"travelers"`
}

// TravelerScore returns the popularity score, 0 when absent
func (l LocationResult) TravelerScore() int {
	if l.Analytics == nil {
		return 0
	}
	return l.Analytics.Travelers.Score
}

// LocationQuery are the inputs of a location search
type LocationQuery struct {
	Keyword     string `json:"keyword" validate:"required,min=2"`
	SubType     string `json:"subType,omitempty"`
	CountryCode string `json:"countryCode,omitempty" validate:"omitempty,len=2,alpha"`
	Limit       int    `json:"limit,omitempty" validate:"min=0"`
}

// LocationSearchResult is what the location service returns
type LocationSearchResult struct {
	Data   []LocationResult `json:"data"`
	Cached bool             `json:"cached"`
}

// ConnectionStatus reports the outcome of a provider connectivity test
type ConnectionStatus struct {
	Success     bool   `json:"success"`
	Environment string `json:"environment"`
	Message     string `json:"message"`
}
