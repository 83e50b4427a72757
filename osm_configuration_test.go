package osmnet

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultNetworkConfiguration(t *testing.T) {
	cfg := DefaultNetworkConfiguration()
	if err := cfg.validate(); err != nil {
		t.Error(err)
	}
	if cfg.IsValidHighway(HIGHWAY_SERVICE) || cfg.IsValidHighway(HIGHWAY_ROAD) {
		t.Errorf("Service and road should not be valid by default")
	}
	if !cfg.IsMainHighway(HIGHWAY_TERTIARY_LINK) || cfg.IsMainHighway(HIGHWAY_RESIDENTIAL) {
		t.Errorf("Main graph should include tertiary_link and exclude residential")
	}
	if cfg.IsODAllowed(HIGHWAY_MOTORWAY) || !cfg.IsODAllowed(HIGHWAY_PRIMARY) {
		t.Errorf("Motorway should be OD forbidden while primary should not")
	}
	if speed, ok := cfg.DefaultSpeed(HIGHWAY_SECONDARY, true); !ok || speed != 50 {
		t.Errorf("Urban secondary speed should be %f, but got %f", 50.0, speed)
	}
	if speed, ok := cfg.DefaultSpeed(HIGHWAY_SECONDARY, false); !ok || speed != 80 {
		t.Errorf("Rural secondary speed should be %f, but got %f", 80.0, speed)
	}
	if speed, ok := cfg.SpeedCode("FR:walk"); !ok || speed != 20 {
		t.Errorf("'FR:walk' speed should be %f, but got %f", 20.0, speed)
	}
	if !cfg.IsUrbanLanduse("retail") || cfg.IsUrbanLanduse("forest") {
		t.Errorf("Retail should be urban landuse while forest should not")
	}
	if cfg.UrbanBufferMeters() != DEFAULT_URBAN_BUFFER_METERS {
		t.Errorf("Urban buffer should be %f, but got %f", DEFAULT_URBAN_BUFFER_METERS, cfg.UrbanBufferMeters())
	}
}

func TestParseNetworkConfiguration(t *testing.T) {
	data := []byte(`
valid_highways: [primary, secondary, service]
speed_codes:
  "DE:urban": 50
urban_buffer_meters: 100
name_max_length: 20
capacity:
  primary: 1800
`)
	cfg, err := ParseNetworkConfiguration(data)
	if err != nil {
		t.Error(err)
		return
	}
	if !cfg.IsValidHighway(HIGHWAY_SERVICE) || cfg.IsValidHighway(HIGHWAY_RESIDENTIAL) {
		t.Errorf("Valid highways should be replaced")
	}
	if _, ok := cfg.SpeedCode("FR:urban"); ok {
		t.Errorf("Speed codes should be replaced")
	}
	if speed, ok := cfg.SpeedCode("DE:urban"); !ok || speed != 50 {
		t.Errorf("'DE:urban' speed should be %f, but got %f", 50.0, speed)
	}
	if cfg.UrbanBufferMeters() != 100 {
		t.Errorf("Urban buffer should be %f, but got %f", 100.0, cfg.UrbanBufferMeters())
	}
	if cfg.NameMaxLength() != 20 {
		t.Errorf("Name max length should be %d, but got %d", 20, cfg.NameMaxLength())
	}
	if capacity, ok := cfg.Capacity(HIGHWAY_PRIMARY); !ok || capacity != 1800 {
		t.Errorf("Primary capacity should be %f, but got %f", 1800.0, capacity)
	}
	if _, ok := cfg.Capacity(HIGHWAY_SECONDARY); ok {
		t.Errorf("Secondary capacity should be absent")
	}
	// Sections which are not provided keep defaults
	if !cfg.IsMainHighway(HIGHWAY_PRIMARY) || cfg.DefaultLanes(HIGHWAY_MOTORWAY) != 2 {
		t.Errorf("Main highways and default lanes should keep default values")
	}
}

func TestParseNetworkConfigurationErrors(t *testing.T) {
	bad := []string{
		"valid_highways: [primary, footway]\n",
		"default_lanes:\n  primary: 0\n",
		"default_speed_rural:\n  primary: -10\n",
		"default_speed_urban:\n  primary: 40\n",
		"urban_buffer_meters: -1\n",
		"name_max_length: 2\n",
		"speed_codes:\n  \"FR:urban\": 0\n",
		"valid_highways: primary\n",
	}
	for _, data := range bad {
		if _, err := ParseNetworkConfiguration([]byte(data)); err == nil {
			t.Errorf("Configuration should be rejected:\n%s", data)
		}
	}
}

func TestLoadNetworkConfiguration(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "network.yaml")
	err := os.WriteFile(fname, []byte("urban_landuse: [residential]\n"), 0644)
	if err != nil {
		t.Error(err)
		return
	}
	cfg, err := LoadNetworkConfiguration(fname)
	if err != nil {
		t.Error(err)
		return
	}
	if !cfg.IsUrbanLanduse("residential") || cfg.IsUrbanLanduse("retail") {
		t.Errorf("Urban landuse should be replaced")
	}
	_, err = LoadNetworkConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Errorf("Missing file should produce error")
	}
}

func TestHighwayType(t *testing.T) {
	if getHighwayType("footway") != 0 {
		t.Errorf("Unknown highway should be mapped to 0")
	}
	ht := getHighwayType("living_street")
	if ht != HIGHWAY_LIVING_STREET || ht.Code() != 11 || ht.String() != "living_street" {
		t.Errorf("Living street should have code %d, but got %d (%s)", 11, ht.Code(), ht)
	}
	if HIGHWAY_SERVICE.Code() != 15 {
		t.Errorf("Service should have code %d, but got %d", 15, HIGHWAY_SERVICE.Code())
	}
}
