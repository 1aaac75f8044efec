package models

// HotelSearchParams are the inputs of a hotel offer search
type HotelSearchParams struct {
	CityCode     string   `json:"cityCode,omitempty" validate:"omitempty,len=3,alpha"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Radius       int      `json:"radius,omitempty" validate:"min=0"`
	RadiusUnit   string   `json:"radiusUnit,omitempty" validate:"omitempty,oneof=KM MILE"`
	HotelIDs     []string `json:"hotelIds,omitempty"`
	CheckInDate  string   `json:"checkInDate" validate:"required,datetime=2006-01-02"`
	CheckOutDate string   `json:"checkOutDate" validate:"required,datetime=2006-01-02"`
	Adults       int      `json:"adults" validate:"min=1,max=9"`
	RoomQuantity int      `json:"roomQuantity,omitempty" validate:"min=0,max=9"`
	PriceRange   string   `json:"priceRange,omitempty"`
	Currency     string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	Ratings      []string `json:"ratings,omitempty" validate:"dive,oneof=1 2 3 4 5"`
	Amenities    []string `json:"amenities,omitempty"`
	BoardType    string   `json:"boardType,omitempty" validate:"omitempty,oneof=ROOM_ONLY BREAKFAST HALF_BOARD FULL_BOARD ALL_INCLUSIVE"`
	BestRateOnly *bool    `json:"bestRateOnly,omitempty"`
}

// HotelListOptions narrow a by-city or by-geocode hotel list lookup
type HotelListOptions struct {
	Radius     int      `json:"radius,omitempty"`
	RadiusUnit string   `json:"radiusUnit,omitempty"`
	Ratings    []string `json:"ratings,omitempty"`
	Amenities  []string `json:"amenities,omitempty"`
}

// HotelBasic is an entry of a hotel list lookup
type HotelBasic struct {
	ChainCode  string      `json:"chainCode,omitempty"`
	IataCode   string      `json:"iataCode"`
	DupeID     int64       `json:"dupeId"`
	Name       string      `json:"name"`
	HotelID    string      `json:"hotelId"`
	GeoCode    GeoCode     `json:"geoCode"`
	Address    CountryOnly `json:"address"`
	LastUpdate string      `json:"lastUpdate,omitempty"`
}

type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CountryOnly struct {
	CountryCode string `json:"countryCode"`
}

// HotelListResult is what the hotel service returns from a list lookup
type HotelListResult struct {
	Data   []HotelBasic `json:"data"`
	Cached bool         `json:"cached"`
}

// HotelOffer is a provider hotel offer with its room options
type HotelOffer struct {
	Type      string      `json:"type"`
	Hotel     HotelInfo   `json:"hotel"`
	Available bool        `json:"available"`
	Offers    []RoomOffer `json:"offers"`
	Self      string      `json:"self,omitempty"`
}

type HotelInfo struct {
	Type        string        `json:"type"`
	HotelID     string        `json:"hotelId"`
	ChainCode   string        `json:"chainCode,omitempty"`
	DupeID      string        `json:"dupeId,omitempty"`
	Name        string        `json:"name"`
	CityCode    string        `json:"cityCode"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Address     *HotelAddress `json:"address,omitempty"`
	Contact     *HotelContact `json:"contact,omitempty"`
	Description *TextBlock    `json:"description,omitempty"`
	Amenities   []string      `json:"amenities,omitempty"`
	Rating      string        `json:"rating,omitempty"`
	Media       []HotelMedia  `json:"media,omitempty"`
}

type HotelAddress struct {
	Lines       []string `json:"lines,omitempty"`
	PostalCode  string   `json:"postalCode,omitempty"`
	CityName    string   `json:"cityName,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
}

type HotelContact struct {
	Phone string `json:"phone,omitempty"`
	Fax   string `json:"fax,omitempty"`
	Email string `json:"email,omitempty"`
}

type TextBlock struct {
	Lang string `json:"lang,omitempty"`
	Text string `json:"text"`
}

type HotelMedia struct {
	URI      string `json:"uri"`
	Category string `json:"category"`
}

type RoomOffer struct {
	ID           string        `json:"id"`
	CheckInDate  string        `json:"checkInDate"`
	CheckOutDate string        `json:"checkOutDate"`
	RateCode     string        `json:"rateCode"`
	Category     string        `json:"category,omitempty"`
	Description  *TextBlock    `json:"description,omitempty"`
	BoardType    string        `json:"boardType,omitempty"`
	Room         *RoomDetails  `json:"room,omitempty"`
	Guests       RoomGuests    `json:"guests"`
	Price        HotelPrice    `json:"price"`
	Policies     *RoomPolicies `json:"policies,omitempty"`
	Self         string        `json:"self,omitempty"`
}

type RoomDetails struct {
	Type          string         `json:"type,omitempty"`
	TypeEstimated *RoomEstimated `json:"typeEstimated,omitempty"`
	Description   *TextBlock     `json:"description,omitempty"`
}

type RoomEstimated struct {
	Category string `json:"category,omitempty"`
	Beds     int    `json:"beds,omitempty"`
	BedType  string `json:"bedType,omitempty"`
}

type RoomGuests struct {
	Adults    int   `json:"adults"`
	ChildAges []int `json:"childAges,omitempty"`
}

type HotelPrice struct {
	Currency     string    `json:"currency"`
	Base         string    `json:"base,omitempty"`
	Total        string    `json:"total"`
	SellingTotal string    `json:"sellingTotal,omitempty"`
	Taxes        []TaxInfo `json:"taxes,omitempty"`
}

type TaxInfo struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Code        string `json:"code,omitempty"`
	Percentage  string `json:"percentage,omitempty"`
	Included    bool   `json:"included,omitempty"`
	Description string `json:"description,omitempty"`
}

type RoomPolicies struct {
	PaymentType  string        `json:"paymentType,omitempty"`
	Cancellation *Cancellation `json:"cancellation,omitempty"`
}

type Cancellation struct {
	Type           string     `json:"type,omitempty"`
	Description    *TextBlock `json:"description,omitempty"`
	Amount         string     `json:"amount,omitempty"`
	NumberOfNights int        `json:"numberOfNights,omitempty"`
	Percentage     string     `json:"percentage,omitempty"`
	Deadline       string     `json:"deadline,omitempty"`
}

// HotelOffersResult is what the hotel service returns from an offer search
type HotelOffersResult struct {
	Data   []HotelOffer `json:"data"`
	Cached bool         `json:"cached"`
}

// HotelOfferResult is what the hotel service returns for a single offer
type HotelOfferResult struct {
	Data   *HotelOffer `json:"data"`
	Cached bool        `json:"cached"`
}

// HotelGuest is a guest named on a hotel booking
type HotelGuest struct {
	TID       int    `json:"tid,omitempty"`
	Title     string `json:"title,omitempty"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// PaymentCard is the card used to guarantee a hotel booking
type PaymentCard struct {
	VendorCode string `json:"vendorCode" validate:"required,len=2"`
	CardNumber string `json:"cardNumber" validate:"required,numeric"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	HolderName string `json:"holderName" validate:"required"`
}

// HotelBooking is the result of a hotel booking
type HotelBooking struct {
	BookingID              string `json:"bookingId"`
	ProviderConfirmationID string `json:"providerConfirmationId"`
}

// HotelOfferDisplay is the presentation shape of a hotel offer
type HotelOfferDisplay struct {
	ID                 string   `json:"id"`
	HotelID            string   `json:"hotelId"`
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	Rating             int      `json:"rating"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	PricePerNight      float64  `json:"pricePerNight"`
	TotalPrice         float64  `json:"totalPrice"`
	Currency           string   `json:"currency"`
	RoomType           string   `json:"roomType"`
	BedType            string   `json:"bedType"`
	BedCount           int      `json:"bedCount"`
	BoardType          string   `json:"boardType,omitempty"`
	CancellationPolicy string   `json:"cancellationPolicy,omitempty"`
	Amenities          []string `json:"amenities"`
	Image              string   `json:"image,omitempty"`
	CheckIn            string   `json:"checkIn"`
	CheckOut           string   `json:"checkOut"`
}

// HotelOffersRequest is a fully-defaulted hotel offer search sent to the provider
type HotelOffersRequest struct {
	HotelIDs     []string
	CheckInDate  string
	CheckOutDate string
	Adults       int
	RoomQuantity int
	Currency     string
	PriceRange   string
	BoardType    string
	BestRateOnly bool
}

// HotelBookingRequest is a hotel booking sent to the provider
type HotelBookingRequest struct {
	OfferID       string
	Guests        []HotelGuest
	PaymentMethod string
	Payment       PaymentCard
}

// HotelBookingResponse is one booking record returned by the provider
type HotelBookingResponse struct {
	ID                     string `json:"id"`
	ProviderConfirmationID string `json:"providerConfirmationId"`
}
