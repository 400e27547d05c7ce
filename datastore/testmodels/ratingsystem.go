package testmodels

import (
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/suparena/dictstore/registry"
	"github.com/suparena/dictstore/schema"
)

// Division is a rating band within a rating system.
type Division struct {
	Name      string `json:"name"`
	MinRating int    `json:"minRating"`
	MaxRating int    `json:"maxRating"`
}

// RatingSystem declares a field of every storage kind, plus nullable and
// JSON-stored fields, so store tests cover the whole codec surface.
type RatingSystem struct {
	// Name of the rating system.
	Name string

	// A description of the rating system.
	Description *string

	// site Url
	SiteURL string

	Active       bool
	Tier         uint8
	Logo         []byte
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	EntryFee     decimal.Decimal
	KFactor      float64
	Volatility   float32
	ExternalID   uuid.UUID
	PlayerCount  int32
	MatchesRated int64
	SeasonLength time.Duration
	Retired      *bool

	// Stored as JSON text.
	Founded   strfmt.Date
	Contact   strfmt.Email
	Divisions []Division
}

func init() {
	registry.Register(func(b *schema.Builder[RatingSystem]) {
		b.String("Name", func(r *RatingSystem) *string { return &r.Name })
		b.NullableString("Description", func(r *RatingSystem) **string { return &r.Description })
		b.String("SiteUrl", func(r *RatingSystem) *string { return &r.SiteURL })
		b.Bool("Active", func(r *RatingSystem) *bool { return &r.Active })
		b.Byte("Tier", func(r *RatingSystem) *uint8 { return &r.Tier })
		b.Binary("Logo", func(r *RatingSystem) *[]byte { return &r.Logo })
		b.Time("CreatedAt", func(r *RatingSystem) *time.Time { return &r.CreatedAt })
		b.NullableTime("UpdatedAt", func(r *RatingSystem) **time.Time { return &r.UpdatedAt })
		b.Decimal("EntryFee", func(r *RatingSystem) *decimal.Decimal { return &r.EntryFee })
		b.Float64("KFactor", func(r *RatingSystem) *float64 { return &r.KFactor })
		b.Float32("Volatility", func(r *RatingSystem) *float32 { return &r.Volatility })
		b.UUID("ExternalId", func(r *RatingSystem) *uuid.UUID { return &r.ExternalID })
		b.Int32("PlayerCount", func(r *RatingSystem) *int32 { return &r.PlayerCount })
		b.Int64("MatchesRated", func(r *RatingSystem) *int64 { return &r.MatchesRated })
		b.Duration("SeasonLength", func(r *RatingSystem) *time.Duration { return &r.SeasonLength })
		b.NullableBool("Retired", func(r *RatingSystem) **bool { return &r.Retired })
		schema.JSON(b, "Founded", func(r *RatingSystem) *strfmt.Date { return &r.Founded })
		schema.JSON(b, "Contact", func(r *RatingSystem) *strfmt.Email { return &r.Contact })
		schema.JSON(b, "Divisions", func(r *RatingSystem) *[]Division { return &r.Divisions })
	})
}

// SampleRatingSystem returns a fully populated RatingSystem. Times are in UTC
// at 100ns precision so decoded values compare equal on every backend.
func SampleRatingSystem(name string) RatingSystem {
	description := "Oakville Table Tennis Club ladder"
	updated := time.Date(2025, 3, 1, 18, 30, 15, 250000000, time.UTC)
	retired := false
	founded, _ := time.Parse(strfmt.RFC3339FullDate, "1998-09-12")
	return RatingSystem{
		Name:         name,
		Description:  &description,
		SiteURL:      "https://ttoakville.example.com",
		Active:       true,
		Tier:         3,
		Logo:         []byte{0x89, 0x50, 0x4e, 0x47},
		CreatedAt:    time.Date(2024, 11, 5, 9, 0, 0, 123456700, time.UTC),
		UpdatedAt:    &updated,
		EntryFee:     decimal.RequireFromString("12.5"),
		KFactor:      32.5,
		Volatility:   0.06,
		ExternalID:   uuid.MustParse("1b4e28ba-2fa1-11d2-883f-0016d3cca427"),
		PlayerCount:  148,
		MatchesRated: 98231,
		SeasonLength: 16 * 7 * 24 * time.Hour,
		Retired:      &retired,
		Founded:      strfmt.Date(founded),
		Contact:      strfmt.Email("ratings@ttoakville.example.com"),
		Divisions: []Division{
			{Name: "Premier", MinRating: 2000, MaxRating: 3000},
			{Name: "Open", MinRating: 0, MaxRating: 1999},
		},
	}
}
