package stations

import "github.com/coastwatch/buoyant/internal/models"

// Minimal bundled station lists used when the upstream downloads fail at
// provisioning time. Enough to keep the major coastal metros working;
// the real lists replace these on the next successful provision.

var fallbackBuoyStations = []models.Station{
	{ID: "44013", Name: "Boston 16 NM East of Boston, MA", Latitude: 42.346, Longitude: -70.651},
	{ID: "44065", Name: "New York Harbor Entrance", Latitude: 40.369, Longitude: -73.703},
	{ID: "41009", Name: "Canaveral 20 NM East of Cape Canaveral, FL", Latitude: 28.508, Longitude: -80.185},
	{ID: "42035", Name: "Galveston, TX", Latitude: 29.232, Longitude: -94.413},
	{ID: "46221", Name: "Santa Monica Bay, CA", Latitude: 33.854, Longitude: -118.633},
	{ID: "46026", Name: "San Francisco, CA", Latitude: 37.754, Longitude: -122.839},
	{ID: "46088", Name: "New Dungeness, WA", Latitude: 48.334, Longitude: -123.165},
	{ID: "51201", Name: "Waimea Bay, HI", Latitude: 21.671, Longitude: -158.118},
	{ID: "51202", Name: "Mokapu Point, HI", Latitude: 21.414, Longitude: -157.68},
	{ID: "46060", Name: "West Orca Bay, AK", Latitude: 60.584, Longitude: -146.805},
	{ID: "41053", Name: "San Juan, PR", Latitude: 18.474, Longitude: -66.099},
	{ID: "52200", Name: "Ipan, Guam", Latitude: 13.354, Longitude: 144.788},
}

var fallbackTideStations = []models.Station{
	{ID: "8443970", Name: "Boston, MA", Latitude: 42.3539, Longitude: -71.0503},
	{ID: "8518750", Name: "The Battery, NY", Latitude: 40.7006, Longitude: -74.0142},
	{ID: "8723214", Name: "Virginia Key, FL", Latitude: 25.7314, Longitude: -80.1618},
	{ID: "8771450", Name: "Galveston Pier 21, TX", Latitude: 29.31, Longitude: -94.7933},
	{ID: "9410170", Name: "San Diego, CA", Latitude: 32.7142, Longitude: -117.1736},
	{ID: "9414290", Name: "San Francisco, CA", Latitude: 37.8063, Longitude: -122.4659},
	{ID: "9447130", Name: "Seattle, WA", Latitude: 47.6026, Longitude: -122.3393},
	{ID: "1612340", Name: "Honolulu, HI", Latitude: 21.3067, Longitude: -157.867},
	{ID: "9455920", Name: "Anchorage, AK", Latitude: 61.2375, Longitude: -149.89},
	{ID: "9755371", Name: "San Juan, PR", Latitude: 18.4592, Longitude: -66.1164},
	{ID: "1630000", Name: "Apra Harbor, Guam", Latitude: 13.4434, Longitude: 144.6564},
}
