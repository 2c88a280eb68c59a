package catalogue

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BoundingBox is a geographic extent in decimal degrees.
type BoundingBox struct {
	WestBoundLongitude decimal.Decimal `json:"west_bound_longitude"`
	EastBoundLongitude decimal.Decimal `json:"east_bound_longitude"`
	SouthBoundLatitude decimal.Decimal `json:"south_bound_latitude"`
	NorthBoundLatitude decimal.Decimal `json:"north_bound_latitude"`
}

// Equal compares coordinates numerically, so "-3" equals "-3.0".
func (b BoundingBox) Equal(o BoundingBox) bool {
	return b.WestBoundLongitude.Equal(o.WestBoundLongitude) &&
		b.EastBoundLongitude.Equal(o.EastBoundLongitude) &&
		b.SouthBoundLatitude.Equal(o.SouthBoundLatitude) &&
		b.NorthBoundLatitude.Equal(o.NorthBoundLatitude)
}

// FormatBoundingBox renders the inline tag string stored on DatasetGeospatialData.
func FormatBoundingBox(b BoundingBox) string {
	return fmt.Sprintf(
		"<westBoundLongitude>%s</westBoundLongitude><eastBoundLongitude>%s</eastBoundLongitude><southBoundLatitude>%s</southBoundLatitude><northBoundLatitude>%s</northBoundLatitude>",
		b.WestBoundLongitude.String(),
		b.EastBoundLongitude.String(),
		b.SouthBoundLatitude.String(),
		b.NorthBoundLatitude.String(),
	)
}

// TemporalExtent is a UTC time window; either end may be unknown.
type TemporalExtent struct {
	Begin *time.Time `json:"begin,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

type ResourceFunction int

const (
	ResourceFunctionInformation ResourceFunction = iota
	ResourceFunctionDownload
	ResourceFunctionFileAccess
	ResourceFunctionBrowse
)

func (f ResourceFunction) String() string {
	switch f {
	case ResourceFunctionInformation:
		return "Information"
	case ResourceFunctionDownload:
		return "Download"
	case ResourceFunctionFileAccess:
		return "FileAccess"
	case ResourceFunctionBrowse:
		return "Browse"
	default:
		return fmt.Sprintf("ResourceFunction(%d)", int(f))
	}
}

// ParseResourceFunction maps the catalogue's function string case-insensitively.
// Missing or unrecognised values are Information.
func ParseResourceFunction(raw string) ResourceFunction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "download":
		return ResourceFunctionDownload
	case "fileaccess":
		return ResourceFunctionFileAccess
	case "browse":
		return ResourceFunctionBrowse
	default:
		return ResourceFunctionInformation
	}
}

// OnlineResource is one entry of the catalogue JSON "onlineResources" list.
type OnlineResource struct {
	URL         string           `json:"url"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Type        *string          `json:"type,omitempty"`
	Function    ResourceFunction `json:"function"`
}
