package osmnet

import (
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_URBAN_BUFFER_METERS = 50.0
	DEFAULT_NAME_MAX_LENGTH     = 50
)

// NetworkConfiguration holds lookup tables used by every stage of network building.
// It must not be modified once it has been passed to the Parser
type NetworkConfiguration struct {
	// Ways with `highway` tag outside of this set are ignored
	validHighways highwayTypeSet
	// Road classes considered as arterial ones
	mainHighways highwayTypeSet
	// Road classes which can't be used as origin / destination connectors
	odForbidden highwayTypeSet

	defaultLanes      map[HighwayType]int
	defaultSpeedRural map[HighwayType]float64
	defaultSpeedUrban map[HighwayType]float64
	// PCE per hour per lane. Road classes without entry have no capacity
	capacity map[HighwayType]float64
	// `maxspeed` codes which take precedence over numeric values
	speedCodes map[string]float64

	urbanLanduse      map[string]struct{}
	urbanBufferMeters float64
	nameMaxLength     int
}

// DefaultNetworkConfiguration returns configuration for a French regional extract
func DefaultNetworkConfiguration() *NetworkConfiguration {
	return &NetworkConfiguration{
		validHighways: newHighwayTypeSet(
			HIGHWAY_MOTORWAY,
			HIGHWAY_TRUNK,
			HIGHWAY_PRIMARY,
			HIGHWAY_SECONDARY,
			HIGHWAY_MOTORWAY_LINK,
			HIGHWAY_TRUNK_LINK,
			HIGHWAY_PRIMARY_LINK,
			HIGHWAY_SECONDARY_LINK,
			HIGHWAY_TERTIARY,
			HIGHWAY_TERTIARY_LINK,
			HIGHWAY_LIVING_STREET,
			HIGHWAY_UNCLASSIFIED,
			HIGHWAY_RESIDENTIAL,
		),
		mainHighways: newHighwayTypeSet(
			HIGHWAY_MOTORWAY,
			HIGHWAY_TRUNK,
			HIGHWAY_PRIMARY,
			HIGHWAY_SECONDARY,
			HIGHWAY_MOTORWAY_LINK,
			HIGHWAY_TRUNK_LINK,
			HIGHWAY_PRIMARY_LINK,
			HIGHWAY_SECONDARY_LINK,
			HIGHWAY_TERTIARY,
			HIGHWAY_TERTIARY_LINK,
		),
		odForbidden: newHighwayTypeSet(
			HIGHWAY_MOTORWAY,
			HIGHWAY_TRUNK,
			HIGHWAY_MOTORWAY_LINK,
			HIGHWAY_TRUNK_LINK,
		),
		defaultLanes: map[HighwayType]int{
			HIGHWAY_MOTORWAY:       2,
			HIGHWAY_TRUNK:          2,
			HIGHWAY_PRIMARY:        1,
			HIGHWAY_SECONDARY:      1,
			HIGHWAY_TERTIARY:       1,
			HIGHWAY_UNCLASSIFIED:   1,
			HIGHWAY_RESIDENTIAL:    1,
			HIGHWAY_MOTORWAY_LINK:  1,
			HIGHWAY_TRUNK_LINK:     1,
			HIGHWAY_PRIMARY_LINK:   1,
			HIGHWAY_SECONDARY_LINK: 1,
			HIGHWAY_TERTIARY_LINK:  1,
			HIGHWAY_LIVING_STREET:  1,
			HIGHWAY_ROAD:           1,
			HIGHWAY_SERVICE:        1,
		},
		defaultSpeedRural: map[HighwayType]float64{
			HIGHWAY_MOTORWAY:       130,
			HIGHWAY_TRUNK:          110,
			HIGHWAY_PRIMARY:        80,
			HIGHWAY_SECONDARY:      80,
			HIGHWAY_TERTIARY:       80,
			HIGHWAY_UNCLASSIFIED:   20,
			HIGHWAY_RESIDENTIAL:    30,
			HIGHWAY_MOTORWAY_LINK:  90,
			HIGHWAY_TRUNK_LINK:     70,
			HIGHWAY_PRIMARY_LINK:   50,
			HIGHWAY_SECONDARY_LINK: 50,
			HIGHWAY_TERTIARY_LINK:  50,
			HIGHWAY_LIVING_STREET:  20,
			HIGHWAY_ROAD:           20,
			HIGHWAY_SERVICE:        20,
		},
		defaultSpeedUrban: map[HighwayType]float64{
			HIGHWAY_MOTORWAY:       130,
			HIGHWAY_TRUNK:          110,
			HIGHWAY_PRIMARY:        50,
			HIGHWAY_SECONDARY:      50,
			HIGHWAY_TERTIARY:       50,
			HIGHWAY_UNCLASSIFIED:   20,
			HIGHWAY_RESIDENTIAL:    30,
			HIGHWAY_MOTORWAY_LINK:  90,
			HIGHWAY_TRUNK_LINK:     70,
			HIGHWAY_PRIMARY_LINK:   50,
			HIGHWAY_SECONDARY_LINK: 50,
			HIGHWAY_TERTIARY_LINK:  50,
			HIGHWAY_LIVING_STREET:  20,
			HIGHWAY_ROAD:           20,
			HIGHWAY_SERVICE:        20,
		},
		capacity: map[HighwayType]float64{
			HIGHWAY_MOTORWAY:       2000,
			HIGHWAY_TRUNK:          2000,
			HIGHWAY_PRIMARY:        1500,
			HIGHWAY_SECONDARY:      800,
			HIGHWAY_MOTORWAY_LINK:  1500,
			HIGHWAY_TRUNK_LINK:     1500,
			HIGHWAY_PRIMARY_LINK:   1500,
			HIGHWAY_SECONDARY_LINK: 800,
			HIGHWAY_TERTIARY:       600,
			HIGHWAY_TERTIARY_LINK:  600,
			HIGHWAY_LIVING_STREET:  300,
			HIGHWAY_UNCLASSIFIED:   600,
			HIGHWAY_RESIDENTIAL:    600,
			HIGHWAY_ROAD:           300,
			HIGHWAY_SERVICE:        300,
		},
		speedCodes: map[string]float64{
			"FR:walk":  20,
			"FR:urban": 50,
			"FR:rural": 80,
		},
		// See ref.: https://wiki.openstreetmap.org/wiki/Key:landuse
		urbanLanduse: map[string]struct{}{
			"commercial":        {},
			"construction":      {},
			"education":         {},
			"industrial":        {},
			"residential":       {},
			"retail":            {},
			"village_green":     {},
			"recreation_ground": {},
			"military":          {},
			"garages":           {},
			"religious":         {},
		},
		urbanBufferMeters: DEFAULT_URBAN_BUFFER_METERS,
		nameMaxLength:     DEFAULT_NAME_MAX_LENGTH,
	}
}

// IsValidHighway checks if ways of given road class take part in the network
func (cfg *NetworkConfiguration) IsValidHighway(highway HighwayType) bool {
	return cfg.validHighways.has(highway)
}

// IsMainHighway checks if given road class belongs to the main graph
func (cfg *NetworkConfiguration) IsMainHighway(highway HighwayType) bool {
	return cfg.mainHighways.has(highway)
}

// IsODAllowed checks if edges of given road class can be used as origin / destination connectors
func (cfg *NetworkConfiguration) IsODAllowed(highway HighwayType) bool {
	return !cfg.odForbidden.has(highway)
}

// DefaultLanes returns default number of lanes for given road class (1 if class is unknown)
func (cfg *NetworkConfiguration) DefaultLanes(highway HighwayType) int {
	if lanes, ok := cfg.defaultLanes[highway]; ok {
		return lanes
	}
	return 1
}

// DefaultSpeed returns default speed (km/h) for given road class
func (cfg *NetworkConfiguration) DefaultSpeed(highway HighwayType, urban bool) (float64, bool) {
	if urban {
		speed, ok := cfg.defaultSpeedUrban[highway]
		return speed, ok
	}
	speed, ok := cfg.defaultSpeedRural[highway]
	return speed, ok
}

// Capacity returns capacity for given road class. Second value is false if class has no capacity defined
func (cfg *NetworkConfiguration) Capacity(highway HighwayType) (float64, bool) {
	capacity, ok := cfg.capacity[highway]
	return capacity, ok
}

// SpeedCode returns speed for country specific `maxspeed` value, e.g. 'FR:urban'
func (cfg *NetworkConfiguration) SpeedCode(code string) (float64, bool) {
	speed, ok := cfg.speedCodes[code]
	return speed, ok
}

// IsUrbanLanduse checks if `landuse` tag value describes urban area
func (cfg *NetworkConfiguration) IsUrbanLanduse(landuse string) bool {
	_, ok := cfg.urbanLanduse[landuse]
	return ok
}

// UrbanBufferMeters returns margin which urban areas are expanded by
func (cfg *NetworkConfiguration) UrbanBufferMeters() float64 {
	return cfg.urbanBufferMeters
}

// NameMaxLength returns max number of characters in edge name
func (cfg *NetworkConfiguration) NameMaxLength() int {
	return cfg.nameMaxLength
}

// configurationFile is YAML representation of NetworkConfiguration. Keys are `highway` tag values
type configurationFile struct {
	ValidHighways     []string           `yaml:"valid_highways"`
	MainHighways      []string           `yaml:"main_highways"`
	ODForbidden       []string           `yaml:"od_forbidden"`
	DefaultLanes      map[string]int     `yaml:"default_lanes"`
	DefaultSpeedRural map[string]float64 `yaml:"default_speed_rural"`
	DefaultSpeedUrban map[string]float64 `yaml:"default_speed_urban"`
	Capacity          map[string]float64 `yaml:"capacity"`
	SpeedCodes        map[string]float64 `yaml:"speed_codes"`
	UrbanLanduse      []string           `yaml:"urban_landuse"`
	UrbanBufferMeters *float64           `yaml:"urban_buffer_meters"`
	NameMaxLength     *int               `yaml:"name_max_length"`
}

// LoadNetworkConfiguration reads YAML file and returns configuration. Sections which are not provided keep default values
func LoadNetworkConfiguration(fname string) (*NetworkConfiguration, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read configuration file")
	}
	return ParseNetworkConfiguration(data)
}

// ParseNetworkConfiguration returns configuration from YAML content
func ParseNetworkConfiguration(data []byte) (*NetworkConfiguration, error) {
	file := configurationFile{}
	err := yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, errors.Wrap(err, "Can't unmarshal configuration")
	}
	cfg := DefaultNetworkConfiguration()
	if file.ValidHighways != nil {
		if cfg.validHighways, err = parseHighwaySet(file.ValidHighways); err != nil {
			return nil, errors.Wrap(err, "Bad 'valid_highways'")
		}
	}
	if file.MainHighways != nil {
		if cfg.mainHighways, err = parseHighwaySet(file.MainHighways); err != nil {
			return nil, errors.Wrap(err, "Bad 'main_highways'")
		}
	}
	if file.ODForbidden != nil {
		if cfg.odForbidden, err = parseHighwaySet(file.ODForbidden); err != nil {
			return nil, errors.Wrap(err, "Bad 'od_forbidden'")
		}
	}
	if file.DefaultLanes != nil {
		cfg.defaultLanes = make(map[HighwayType]int, len(file.DefaultLanes))
		for highway, lanes := range file.DefaultLanes {
			highwayType := getHighwayType(highway)
			if highwayType == 0 {
				return nil, fmt.Errorf("Bad 'default_lanes': unknown highway '%s'", highway)
			}
			if lanes < 1 {
				return nil, fmt.Errorf("Bad 'default_lanes': number of lanes for '%s' should be positive, got %d", highway, lanes)
			}
			cfg.defaultLanes[highwayType] = lanes
		}
	}
	if file.DefaultSpeedRural != nil {
		if cfg.defaultSpeedRural, err = parsePositiveByHighway(file.DefaultSpeedRural); err != nil {
			return nil, errors.Wrap(err, "Bad 'default_speed_rural'")
		}
	}
	if file.DefaultSpeedUrban != nil {
		if cfg.defaultSpeedUrban, err = parsePositiveByHighway(file.DefaultSpeedUrban); err != nil {
			return nil, errors.Wrap(err, "Bad 'default_speed_urban'")
		}
	}
	if file.Capacity != nil {
		if cfg.capacity, err = parsePositiveByHighway(file.Capacity); err != nil {
			return nil, errors.Wrap(err, "Bad 'capacity'")
		}
	}
	if file.SpeedCodes != nil {
		cfg.speedCodes = make(map[string]float64, len(file.SpeedCodes))
		for code, speed := range file.SpeedCodes {
			if !isPositiveFinite(speed) {
				return nil, fmt.Errorf("Bad 'speed_codes': speed for '%s' should be positive, got %f", code, speed)
			}
			cfg.speedCodes[code] = speed
		}
	}
	if file.UrbanLanduse != nil {
		cfg.urbanLanduse = make(map[string]struct{}, len(file.UrbanLanduse))
		for _, landuse := range file.UrbanLanduse {
			cfg.urbanLanduse[landuse] = struct{}{}
		}
	}
	if file.UrbanBufferMeters != nil {
		if *file.UrbanBufferMeters < 0 || math.IsNaN(*file.UrbanBufferMeters) {
			return nil, fmt.Errorf("Bad 'urban_buffer_meters': should be non-negative, got %f", *file.UrbanBufferMeters)
		}
		cfg.urbanBufferMeters = *file.UrbanBufferMeters
	}
	if file.NameMaxLength != nil {
		if *file.NameMaxLength < 4 {
			return nil, fmt.Errorf("Bad 'name_max_length': should be at least 4, got %d", *file.NameMaxLength)
		}
		cfg.nameMaxLength = *file.NameMaxLength
	}
	err = cfg.validate()
	if err != nil {
		return nil, errors.Wrap(err, "Inconsistent configuration")
	}
	return cfg, nil
}

// validate checks that every valid road class has both default speeds, so imputation can't fail
func (cfg *NetworkConfiguration) validate() error {
	for highway := range cfg.validHighways {
		if _, ok := cfg.defaultSpeedRural[highway]; !ok {
			return fmt.Errorf("No rural default speed for '%s'", highway)
		}
		if _, ok := cfg.defaultSpeedUrban[highway]; !ok {
			return fmt.Errorf("No urban default speed for '%s'", highway)
		}
	}
	return nil
}

func parseHighwaySet(values []string) (highwayTypeSet, error) {
	set := make(highwayTypeSet, len(values))
	for _, value := range values {
		highwayType := getHighwayType(value)
		if highwayType == 0 {
			return nil, fmt.Errorf("Unknown highway '%s'", value)
		}
		set[highwayType] = struct{}{}
	}
	return set, nil
}

func parsePositiveByHighway(values map[string]float64) (map[HighwayType]float64, error) {
	result := make(map[HighwayType]float64, len(values))
	for highway, value := range values {
		highwayType := getHighwayType(highway)
		if highwayType == 0 {
			return nil, fmt.Errorf("Unknown highway '%s'", highway)
		}
		if !isPositiveFinite(value) {
			return nil, fmt.Errorf("Value for '%s' should be positive, got %f", highway, value)
		}
		result[highwayType] = value
	}
	return result, nil
}

func isPositiveFinite(value float64) bool {
	return value > 0 && !math.IsInf(value, 0) && !math.IsNaN(value)
}
