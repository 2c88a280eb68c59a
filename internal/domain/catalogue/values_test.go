package catalogue

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceFunction(t *testing.T) {
	cases := []struct {
		in   string
		want ResourceFunction
	}{
		{"download", ResourceFunctionDownload},
		{"DOWNLOAD", ResourceFunctionDownload},
		{"fileAccess", ResourceFunctionFileAccess},
		{"browse", ResourceFunctionBrowse},
		{"information", ResourceFunctionInformation},
		{"", ResourceFunctionInformation},
		{"offlineAccess", ResourceFunctionInformation},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseResourceFunction(tc.in), "input %q", tc.in)
	}
}

func TestFormatBoundingBox(t *testing.T) {
	b := BoundingBox{
		WestBoundLongitude: decimal.RequireFromString("-3"),
		EastBoundLongitude: decimal.RequireFromString("0"),
		SouthBoundLatitude: decimal.RequireFromString("51"),
		NorthBoundLatitude: decimal.RequireFromString("54.5"),
	}
	assert.Equal(t,
		"<westBoundLongitude>-3</westBoundLongitude><eastBoundLongitude>0</eastBoundLongitude><southBoundLatitude>51</southBoundLatitude><northBoundLatitude>54.5</northBoundLatitude>",
		FormatBoundingBox(b),
	)
}

func TestBoundingBoxEqualIgnoresScale(t *testing.T) {
	a := BoundingBox{WestBoundLongitude: decimal.RequireFromString("-3.0")}
	b := BoundingBox{WestBoundLongitude: decimal.RequireFromString("-3")}
	assert.True(t, a.Equal(b))
}

func TestDocumentTypeRoundTrip(t *testing.T) {
	for _, dt := range AllDocumentTypes() {
		parsed, err := ParseDocumentType(dt.String())
		require.NoError(t, err)
		assert.Equal(t, dt, parsed)
	}
	_, err := ParseDocumentType("rdfxml")
	assert.Error(t, err)
}
