// Package siterepo persists site aggregates, including the atomic fund
// movements the dispatch rules depend on.
package siterepo

import (
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/site"

	"github.com/google/uuid"
)

// SiteDTO represents the database structure for persisting site aggregates.
type SiteDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Address     string    `gorm:"type:varchar(512);not null"`
	Latitude    *float64  `gorm:"type:double precision"`
	Longitude   *float64  `gorm:"type:double precision"`
	CurrentFund int       `gorm:"type:int;not null"`
	MinimumFund int       `gorm:"type:int;not null"`
	Status      string    `gorm:"type:varchar(32);not null;index"`
}

// TableName overrides GORM's default naming to use "sites".
func (SiteDTO) TableName() string {
	return "sites"
}

func fromDomain(aggregate *site.Site) SiteDTO {
	dto := SiteDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Address:     aggregate.Address(),
		CurrentFund: aggregate.CurrentFund(),
		MinimumFund: aggregate.MinimumFund(),
		Status:      string(aggregate.Status()),
	}

	if point := aggregate.Coordinates(); point != nil {
		latitude := point.Latitude()
		longitude := point.Longitude()
		dto.Latitude = &latitude
		dto.Longitude = &longitude
	}

	return dto
}

func toDomain(dto SiteDTO) (*site.Site, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var coordinates *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		coordinates = &point
	}

	return site.RestoreSite(id, dto.Name, dto.Address, coordinates, dto.CurrentFund, dto.MinimumFund, site.Status(dto.Status))
}
