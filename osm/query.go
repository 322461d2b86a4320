package osm

import (
	"fmt"
	"time"
)

// defaultAccess excludes private ways for every filtered network type.
const defaultAccess = `["access"!~"private"]`

// wayFilters are Overpass tag filters per network type.
var wayFilters = map[NetworkType]string{
	Drive: `["highway"]["area"!~"yes"]` + defaultAccess +
		`["highway"!~"abandoned|bridleway|bus_guideway|construction|corridor|cycleway|elevator|escalator|footway|no|path|pedestrian|planned|platform|proposed|raceway|razed|service|steps|track"]` +
		`["motor_vehicle"!~"no"]["motorcar"!~"no"]` +
		`["service"!~"alley|driveway|emergency_access|parking|parking_aisle|private"]`,
	Walk: `["highway"]["area"!~"yes"]` + defaultAccess +
		`["highway"!~"abandoned|bus_guideway|construction|cycleway|motor|no|planned|platform|proposed|raceway|razed"]` +
		`["foot"!~"no"]["service"!~"private"]`,
	Bike: `["highway"]["area"!~"yes"]` + defaultAccess +
		`["highway"!~"abandoned|bus_guideway|construction|corridor|elevator|escalator|footway|motor|no|planned|platform|proposed|raceway|razed|steps"]` +
		`["bicycle"!~"no"]["service"!~"private"]`,
	All: `["highway"]["area"!~"yes"]` +
		`["highway"!~"abandoned|construction|no|planned|platform|proposed|raceway|razed"]`,
}

// OverpassQuery builds the query that downloads every way of the given
// network type inside an Overpass area, plus the nodes those ways reference.
func OverpassQuery(areaID int64, nt NetworkType, timeout time.Duration) (string, error) {
	filter, ok := wayFilters[nt]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNetworkType, nt)
	}
	secs := int(timeout / time.Second)
	if secs <= 0 {
		secs = 180
	}

	return fmt.Sprintf(
		"[out:json][timeout:%d];area(%d)->.searchArea;(way%s(area.searchArea););(._;>;);out;",
		secs, areaID, filter,
	), nil
}
