package models

// TravelClass is a cabin class accepted by flight search
type TravelClass string

const (
	TravelClassEconomy        TravelClass = "ECONOMY"
	TravelClassPremiumEconomy TravelClass = "PREMIUM_ECONOMY"
	TravelClassBusiness       TravelClass = "BUSINESS"
	TravelClassFirst          TravelClass = "FIRST"
)

// FlightSearchParams are the inputs of a flight offer search
type FlightSearchParams struct {
	Origin        string      `json:"origin" validate:"required,len=3,alpha"`
	Destination   string      `json:"destination" validate:"required,len=3,alpha"`
	DepartureDate string      `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate    string      `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Adults        int         `json:"adults" validate:"min=1,max=9"`
	Children      int         `json:"children,omitempty" validate:"min=0,max=8"`
	Infants       int         `json:"infants,omitempty" validate:"min=0,ltefield=Adults"`
	TravelClass   TravelClass `json:"travelClass,omitempty" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	NonStop       *bool       `json:"nonStop,omitempty"`
	MaxPrice      int         `json:"maxPrice,omitempty" validate:"min=0"`
	Max           int         `json:"max,omitempty" validate:"min=0"`
	CurrencyCode  string      `json:"currencyCode,omitempty" validate:"omitempty,len=3"`
}

// CacheParams returns the parameter set used for the cache key
func (p FlightSearchParams) CacheParams() map[string]interface{} {
	params := map[string]interface{}{
		"origin":        p.Origin,
		"destination":   p.Destination,
		"departureDate": p.DepartureDate,
		"adults":        p.Adults,
	}
	if p.ReturnDate != "" {
		params["returnDate"] = p.ReturnDate
	}
	if p.Children > 0 {
		params["children"] = p.Children
	}
	if p.Infants > 0 {
		params["infants"] = p.Infants
	}
	if p.TravelClass != "" {
		params["travelClass"] = string(p.TravelClass)
	}
	if p.NonStop != nil {
		params["nonStop"] = *p.NonStop
	}
	if p.MaxPrice > 0 {
		params["maxPrice"] = p.MaxPrice
	}
	if p.Max > 0 {
		params["max"] = p.Max
	}
	if p.CurrencyCode != "" {
		params["currencyCode"] = p.CurrencyCode
	}
	return params
}

// FlightOffer is a provider flight offer
type FlightOffer struct {
	Type                     string            `json:"type"`
	ID                       string            `json:"id"`
	Source                   string            `json:"source"`
	InstantTicketingRequired bool              `json:"instantTicketingRequired"`
	NonHomogeneous           bool              `json:"nonHomogeneous"`
	OneWay                   bool              `json:"oneWay"`
	LastTicketingDate        string            `json:"lastTicketingDate"`
	NumberOfBookableSeats    int               `json:"numberOfBookableSeats"`
	Itineraries              []Itinerary       `json:"itineraries"`
	Price                    FlightPrice       `json:"price"`
	PricingOptions           PricingOptions    `json:"pricingOptions"`
	ValidatingAirlineCodes   []string          `json:"validatingAirlineCodes"`
	TravelerPricings         []TravelerPricing `json:"travelerPricings"`
}

type Itinerary struct {
	Duration string          `json:"duration"`
	Segments []FlightSegment `json:"segments"`
}

type FlightSegment struct {
	Departure       FlightEndpoint    `json:"departure"`
	Arrival         FlightEndpoint    `json:"arrival"`
	CarrierCode     string            `json:"carrierCode"`
	Number          string            `json:"number"`
	Aircraft        AircraftRef       `json:"aircraft"`
	Operating       *OperatingCarrier `json:"operating,omitempty"`
	Duration        string            `json:"duration"`
	ID              string            `json:"id"`
	NumberOfStops   int               `json:"numberOfStops"`
	BlacklistedInEU bool              `json:"blacklistedInEU"`
}

type AircraftRef struct {
	Code string `json:"code"`
}

type OperatingCarrier struct {
	CarrierCode string `json:"carrierCode"`
}

type FlightEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type FlightPrice struct {
	Currency           string      `json:"currency"`
	Total              string      `json:"total"`
	Base               string      `json:"base"`
	Fees               []FeeDetail `json:"fees,omitempty"`
	GrandTotal         string      `json:"grandTotal"`
	AdditionalServices []FeeDetail `json:"additionalServices,omitempty"`
}

type FeeDetail struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

type PricingOptions struct {
	FareType                []string `json:"fareType"`
	IncludedCheckedBagsOnly bool     `json:"includedCheckedBagsOnly"`
}

type TravelerPricing struct {
	TravelerID           string        `json:"travelerId"`
	FareOption           string        `json:"fareOption"`
	TravelerType         string        `json:"travelerType"`
	Price                TravelerPrice `json:"price"`
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment"`
}

type TravelerPrice struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
	Base     string `json:"base"`
}

type FareDetails struct {
	SegmentID           string       `json:"segmentId"`
	Cabin               TravelClass  `json:"cabin"`
	FareBasis           string       `json:"fareBasis"`
	Class               string       `json:"class"`
	IncludedCheckedBags *CheckedBags `json:"includedCheckedBags,omitempty"`
}

type CheckedBags struct {
	Weight     int    `json:"weight,omitempty"`
	WeightUnit string `json:"weightUnit,omitempty"`
	Quantity   int    `json:"quantity,omitempty"`
}

// FlightDictionaries are the lookup tables returned alongside a flight search
type FlightDictionaries struct {
	Locations  map[string]LocationDictionary `json:"locations,omitempty"`
	Aircraft   map[string]string             `json:"aircraft,omitempty"`
	Currencies map[string]string             `json:"currencies,omitempty"`
	Carriers   map[string]string             `json:"carriers,omitempty"`
}

type LocationDictionary struct {
	CityCode    string `json:"cityCode"`
	CountryCode string `json:"countryCode"`
}

// FlightSearchResponse is the provider response of a flight offer search
type FlightSearchResponse struct {
	Data         []FlightOffer       `json:"data"`
	Dictionaries *FlightDictionaries `json:"dictionaries,omitempty"`
	Meta         *ResponseMeta       `json:"meta,omitempty"`
}

type ResponseMeta struct {
	Count int               `json:"count"`
	Links map[string]string `json:"links,omitempty"`
}

// FlightSearchResult is what the flight service returns from a search
type FlightSearchResult struct {
	Data         []FlightOffer       `json:"data"`
	Dictionaries *FlightDictionaries `json:"dictionaries,omitempty"`
	Cached       bool                `json:"cached"`
}

// PriceConfirmation is the outcome of re-pricing an offer before booking
type PriceConfirmation struct {
	Data           FlightOffer `json:"data"`
	PriceChanged   bool        `json:"priceChanged"`
	OriginalPrice  string      `json:"originalPrice"`
	ConfirmedPrice string      `json:"confirmedPrice"`
}

// TravelerInfo identifies a passenger on a flight order
type TravelerInfo struct {
	ID          string             `json:"id" validate:"required"`
	DateOfBirth string             `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Name        TravelerName       `json:"name"`
	Gender      string             `json:"gender" validate:"oneof=MALE FEMALE"`
	Contact     TravelerContact    `json:"contact"`
	Documents   []TravelerDocument `json:"documents,omitempty"`
}

type TravelerName struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type TravelerContact struct {
	EmailAddress string  `json:"emailAddress" validate:"required,email"`
	Phones       []Phone `json:"phones"`
}

type Phone struct {
	DeviceType         string `json:"deviceType"`
	CountryCallingCode string `json:"countryCallingCode"`
	Number             string `json:"number"`
}

type TravelerDocument struct {
	DocumentType     string `json:"documentType"`
	BirthPlace       string `json:"birthPlace,omitempty"`
	IssuanceLocation string `json:"issuanceLocation,omitempty"`
	IssuanceDate     string `json:"issuanceDate,omitempty"`
	Number           string `json:"number"`
	ExpiryDate       string `json:"expiryDate"`
	IssuanceCountry  string `json:"issuanceCountry"`
	ValidityCountry  string `json:"validityCountry,omitempty"`
	Nationality      string `json:"nationality"`
	Holder           bool   `json:"holder"`
}

// ContactInfo is the booking contact of a flight order
type ContactInfo struct {
	EmailAddress string  `json:"emailAddress" validate:"required,email"`
	Phones       []Phone `json:"phones"`
	CompanyName  string  `json:"companyName,omitempty"`
	Purpose      string  `json:"purpose"`
}

// AssociatedRecord links a flight order to a reservation system record
type AssociatedRecord struct {
	Reference        string `json:"reference"`
	CreationDate     string `json:"creationDate"`
	OriginSystemCode string `json:"originSystemCode"`
}

// FlightOrderResponse is the provider response of a flight order creation
type FlightOrderResponse struct {
	ID                string             `json:"id"`
	AssociatedRecords []AssociatedRecord `json:"associatedRecords"`
}

// FlightOrder is the result of a flight booking
type FlightOrder struct {
	OrderID           string             `json:"orderId"`
	Reference         string             `json:"reference"`
	AssociatedRecords []AssociatedRecord `json:"associatedRecords"`
}

// FlightOfferDisplay is the presentation shape of a flight offer
type FlightOfferDisplay struct {
	ID               string            `json:"id"`
	Airline          string            `json:"airline"`
	AirlineName      string            `json:"airlineName,omitempty"`
	FlightNumber     string            `json:"flightNumber"`
	DepartureTime    string            `json:"departureTime"`
	ArrivalTime      string            `json:"arrivalTime"`
	DepartureAirport string            `json:"departureAirport"`
	ArrivalAirport   string            `json:"arrivalAirport"`
	Duration         string            `json:"duration"`
	Stops            int               `json:"stops"`
	Price            float64           `json:"price"`
	Currency         string            `json:"currency"`
	Cabin            TravelClass       `json:"cabin"`
	SeatsAvailable   int               `json:"seatsAvailable"`
	IsOneWay         bool              `json:"isOneWay"`
	Outbound         FlightLegDisplay  `json:"outbound"`
	Inbound          *FlightLegDisplay `json:"inbound,omitempty"`
}

type FlightLegDisplay struct {
	Departure EndpointDisplay  `json:"departure"`
	Arrival   EndpointDisplay  `json:"arrival"`
	Duration  string           `json:"duration"`
	Segments  []SegmentDisplay `json:"segments"`
}

type SegmentDisplay struct {
	Airline      string          `json:"airline"`
	FlightNumber string          `json:"flightNumber"`
	Aircraft     string          `json:"aircraft"`
	Departure    EndpointDisplay `json:"departure"`
	Arrival      EndpointDisplay `json:"arrival"`
	Duration     string          `json:"duration"`
}

type EndpointDisplay struct {
	Time     string `json:"time"`
	Airport  string `json:"airport"`
	Terminal string `json:"terminal,omitempty"`
}

// FlightOrderRequest is a flight order sent to the provider
type FlightOrderRequest struct {
	Offer           FlightOffer
	Travelers       []TravelerInfo
	Contact         ContactInfo
	Remark          string
	TicketingOption string
}
